package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/pkg/contracts/domain"
)

// cancelCheckInterval is how many rows are decoded between context checks
const cancelCheckInterval = 10000

// Loader reads a city's trip dataset into a TripTable
type Loader struct {
	sources config.DataSources
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewLoader creates a loader over the given city to path mapping
func NewLoader(sources config.DataSources, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		sources: sources,
		logger:  logger.With(slog.String("component", "loader")),
		tracer:  otel.Tracer(infrastructure.InstrumentationName),
	}
}

// Sources returns the mapping the loader resolves cities through
func (l *Loader) Sources() config.DataSources {
	return l.sources
}

// Load resolves city to its source and reads it. The returned table already
// carries derived calendar fields. No partial table is returned on error.
func (l *Loader) Load(ctx context.Context, city domain.City) (*domain.TripTable, error) {
	path, ok := l.sources[city]
	if !ok || path == "" {
		return nil, apperrors.NewSourceNotFoundError(string(city), nil)
	}

	table, err := l.LoadPath(ctx, city, path)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrTypeSourceNotFound) {
			return nil, apperrors.NewSourceNotFoundError(string(city), err)
		}
		return nil, err
	}
	return table, nil
}

// LoadPath reads the file at path as city's dataset
func (l *Loader) LoadPath(ctx context.Context, city domain.City, path string) (*domain.TripTable, error) {
	ctx, span := l.tracer.Start(ctx, "dataprocessing.Load",
		trace.WithAttributes(attribute.String("city", string(city)), attribute.String("path", path)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	raw, err := readSource(path)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		l.logger.ErrorContext(ctx, "failed to read source",
			slog.String("city", string(city)),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	table, invalid, err := l.decode(ctx, city, path, raw)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		l.logger.ErrorContext(ctx, "failed to decode source",
			slog.String("city", string(city)),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	if invalid > 0 {
		l.logger.WarnContext(ctx, "trip durations excluded from duration statistics",
			slog.String("city", string(city)),
			slog.Int("rows", invalid))
	}

	span.SetAttributes(attribute.Int("rows", table.Len()))
	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("city", string(city)),
		slog.String("path", path),
		slog.String("sheet", raw.sheet),
		slog.Int("rows", table.Len()),
		slog.Bool("has_gender", table.Schema.HasGender),
		slog.Bool("has_birth_year", table.Schema.HasBirthYear),
		slog.Duration("elapsed", time.Since(started)))

	return table, nil
}

func (l *Loader) decode(ctx context.Context, city domain.City, path string, raw *rawTable) (*domain.TripTable, int, error) {
	dec, err := newRowDecoder(raw.header, raw.excelSerials)
	if err != nil {
		return nil, 0, withPath(err, path)
	}

	rows := make([]domain.TripRecord, 0, len(raw.rows))
	for i, row := range raw.rows {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}
		if isBlankRow(row) {
			continue
		}
		rec, err := dec.decode(row, i+1)
		if err != nil {
			return nil, 0, withPath(err, path)
		}
		rows = append(rows, rec)
	}

	table := &domain.TripTable{
		City:   city,
		Source: path,
		Schema: dec.schema,
		Rows:   rows,
	}
	return DeriveCalendar(table), dec.invalidDurations, nil
}

// withPath tags an application error with the source it came from
func withPath(err error, path string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		appErr.WithContext("path", path)
	}
	return err
}
