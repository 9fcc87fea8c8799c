package services

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bikeshare/internal/dataprocessing"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/pkg/contracts/domain"
)

// DatasetLoader loads a city's trip table with calendar fields derived
type DatasetLoader interface {
	Load(ctx context.Context, city domain.City) (*domain.TripTable, error)
}

// StatisticsEngine computes the statistics groups over a filtered table
type StatisticsEngine interface {
	ComputeTimed(ctx context.Context, table *domain.TripTable) (domain.Statistics, domain.StageTimings, error)
}

// AnalysisRequest is the text form of an analysis as callers type it.
// Month and Day default to "all" when empty.
type AnalysisRequest struct {
	City  string `json:"city" validate:"required,city"`
	Month string `json:"month" validate:"omitempty,month"`
	Day   string `json:"day" validate:"omitempty,day"`
}

// AnalysisService runs the load, filter and statistics pipeline for one request
type AnalysisService struct {
	loader   DatasetLoader
	engine   StatisticsEngine
	metrics  *infrastructure.PipelineMetrics
	validate *validator.Validate
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewAnalysisService creates an analysis service. metrics may be nil.
func NewAnalysisService(loader DatasetLoader, engine StatisticsEngine, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AnalysisService{
		loader:   loader,
		engine:   engine,
		metrics:  metrics,
		validate: NewRequestValidator(),
		logger:   logger.With(slog.String("component", "analysis_service")),
		tracer:   otel.Tracer(infrastructure.InstrumentationName),
	}
}

// NewRequestValidator returns a validator that knows the city, month and day tags
func NewRequestValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("city", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseCity(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseMonth(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDay(fl.Field().String())
		return err == nil
	})

	// report JSON names, which are also the query parameter names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Parse validates req and converts it into a city and filter criteria
func (s *AnalysisService) Parse(req AnalysisRequest) (domain.City, domain.FilterCriteria, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", domain.FilterCriteria{}, validationError(err)
	}

	city, _ := domain.ParseCity(req.City)
	criteria := domain.NoFilter()
	if req.Month != "" {
		criteria.Month, _ = domain.ParseMonth(req.Month)
	}
	if req.Day != "" {
		criteria.Day, _ = domain.ParseDay(req.Day)
	}
	return city, criteria, nil
}

// RunAnalysis validates req and runs the pipeline for it
func (s *AnalysisService) RunAnalysis(ctx context.Context, req AnalysisRequest) (*domain.PipelineResult, error) {
	city, criteria, err := s.Parse(req)
	if err != nil {
		s.logger.WarnContext(ctx, "analysis request rejected",
			slog.String("city", req.City),
			slog.String("month", req.Month),
			slog.String("day", req.Day),
			slog.String("error", err.Error()))
		s.metrics.RecordAnalysis(ctx, "invalid", 0, string(apperrors.ErrTypeValidation))
		return nil, err
	}
	return s.RunAnalysisTyped(ctx, city, criteria)
}

// RunAnalysisTyped runs load, filter and statistics for already parsed inputs.
// A load or parse failure aborts the run; no partial result is returned.
func (s *AnalysisService) RunAnalysisTyped(ctx context.Context, city domain.City, criteria domain.FilterCriteria) (*domain.PipelineResult, error) {
	id := uuid.NewString()
	ctx = infrastructure.WithAnalysisID(infrastructure.EnsureTraceID(ctx), id)

	ctx, span := s.tracer.Start(ctx, "services.RunAnalysis",
		trace.WithAttributes(
			attribute.String("analysis.id", id),
			attribute.String("city", string(city)),
			attribute.Int("month", int(criteria.Month)),
			attribute.Int("day", int(criteria.Day)),
		))
	defer span.End()

	logger := s.logger.With(slog.String("city", string(city)))

	started := time.Now()
	fail := func(stage string, err error) (*domain.PipelineResult, error) {
		errType := string(apperrors.TypeOf(err))
		if errType == "" {
			errType = "INTERNAL"
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				errType = "CANCELLED"
			}
		}
		span.SetStatus(codes.Error, err.Error())
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordAnalysis(ctx, string(city), time.Since(started), errType)
		logger.ErrorContext(ctx, "analysis failed",
			slog.String("stage", stage),
			slog.String("error_type", errType),
			slog.String("error", err.Error()))
		return nil, err
	}

	var timings domain.StageTimings

	stageStart := time.Now()
	table, err := s.loader.Load(ctx, city)
	if err != nil {
		return fail("load", err)
	}
	timings.Load = time.Since(stageStart)
	s.recordStage(ctx, city, "load", timings.Load)

	logger.InfoContext(ctx, "dataset ready",
		slog.Int("rows", table.Len()),
		slog.Duration("elapsed", timings.Load))

	stageStart = time.Now()
	filtered, err := dataprocessing.Filter(table, criteria)
	if err != nil {
		return fail("filter", err)
	}
	timings.Filter = time.Since(stageStart)
	s.recordStage(ctx, city, "filter", timings.Filter)

	logger.InfoContext(ctx, "rows selected",
		slog.String("filter", criteria.String()),
		slog.Int("rows", filtered.Len()),
		slog.Int("total_rows", table.Len()))

	stats, groupTimings, err := s.engine.ComputeTimed(ctx, filtered)
	if err != nil {
		return fail("statistics", err)
	}
	timings.Time = groupTimings.Time
	timings.Stations = groupTimings.Stations
	timings.Durations = groupTimings.Durations
	timings.Users = groupTimings.Users
	s.recordStage(ctx, city, dataprocessing.GroupTime, timings.Time)
	s.recordStage(ctx, city, dataprocessing.GroupStations, timings.Stations)
	s.recordStage(ctx, city, dataprocessing.GroupDurations, timings.Durations)
	s.recordStage(ctx, city, dataprocessing.GroupUsers, timings.Users)
	s.metrics.RecordRows(ctx, string(city), table.Len(), filtered.Len(), stats.Durations.Excluded)

	elapsed := time.Since(started)
	s.metrics.RecordAnalysis(ctx, string(city), elapsed, "")
	span.SetAttributes(attribute.Int("rows.selected", stats.Rows), attribute.Bool("empty", stats.Empty))

	logger.InfoContext(ctx, "analysis completed",
		slog.Int("rows", stats.Rows),
		slog.Bool("empty", stats.Empty),
		slog.Int("durations_excluded", stats.Durations.Excluded),
		slog.Duration("elapsed", elapsed))

	return &domain.PipelineResult{
		ID:         id,
		City:       city,
		Criteria:   criteria,
		TotalRows:  table.Len(),
		Table:      filtered,
		Stats:      stats,
		Timings:    timings,
		FinishedAt: time.Now().UTC(),
	}, nil
}

func (s *AnalysisService) recordStage(ctx context.Context, city domain.City, stage string, d time.Duration) {
	s.metrics.RecordStage(ctx, string(city), stage, d)
}

// validationError turns validator output into a VALIDATION AppError listing each field
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("invalid analysis request", err)
	}

	fields := make([]apperrors.ValidationError, 0, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.ValidationError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
		names = append(names, fe.Field())
	}

	return apperrors.NewValidationError("invalid "+strings.Join(names, ", "), nil).
		WithContext("errors", fields)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "city":
		return "must be one of: chicago, new york city, washington"
	case "month":
		return "must be all or a month from january to june"
	case "day":
		return "must be all or a day name such as monday"
	default:
		return "is invalid"
	}
}
