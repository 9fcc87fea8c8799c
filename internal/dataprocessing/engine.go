package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"bikeshare/internal/infrastructure"
	"bikeshare/pkg/contracts/domain"
)

// Statistics group names used in spans, logs and metrics
const (
	GroupTime      = "time"
	GroupStations  = "stations"
	GroupDurations = "durations"
	GroupUsers     = "users"
)

// Engine computes the four statistics groups over one read-only table
type Engine struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewEngine creates a statistics engine
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger: logger.With(slog.String("component", "statistics_engine")),
		tracer: otel.Tracer(infrastructure.InstrumentationName),
	}
}

// Compute runs the four groups concurrently. The result equals running them in sequence.
func (e *Engine) Compute(ctx context.Context, table *domain.TripTable) (domain.Statistics, error) {
	stats, _, err := e.ComputeTimed(ctx, table)
	return stats, err
}

// ComputeTimed is Compute plus the wall time each group took
func (e *Engine) ComputeTimed(ctx context.Context, table *domain.TripTable) (domain.Statistics, domain.StageTimings, error) {
	var (
		stats   domain.Statistics
		timings domain.StageTimings
	)

	g, gctx := errgroup.WithContext(ctx)

	// each goroutine writes only its own group and timing field
	g.Go(func() error {
		return e.run(gctx, GroupTime, table, &timings.Time, func() {
			stats.Time = TimeStatistics(table)
		})
	})
	g.Go(func() error {
		return e.run(gctx, GroupStations, table, &timings.Stations, func() {
			stats.Stations = StationStatistics(table)
		})
	})
	g.Go(func() error {
		return e.run(gctx, GroupDurations, table, &timings.Durations, func() {
			stats.Durations = DurationStatistics(table)
		})
	})
	g.Go(func() error {
		return e.run(gctx, GroupUsers, table, &timings.Users, func() {
			stats.Users = UserStatistics(table)
		})
	})

	if err := g.Wait(); err != nil {
		return domain.Statistics{}, domain.StageTimings{}, err
	}

	stats.Rows = table.Len()
	stats.Empty = stats.Rows == 0

	e.logger.DebugContext(ctx, "statistics computed",
		slog.Int("rows", stats.Rows),
		slog.Bool("empty", stats.Empty),
		slog.Int("durations_excluded", stats.Durations.Excluded))

	return stats, timings, nil
}

func (e *Engine) run(ctx context.Context, group string, table *domain.TripTable, elapsed *time.Duration, compute func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, span := e.tracer.Start(ctx, "dataprocessing.Statistics",
		trace.WithAttributes(attribute.String("group", group), attribute.Int("rows", table.Len())))
	defer span.End()

	started := time.Now()
	compute()
	*elapsed = time.Since(started)
	return nil
}
