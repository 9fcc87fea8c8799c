package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"bikeshare/internal/config"
	"bikeshare/internal/dataprocessing"
	apierrors "bikeshare/internal/errors"
	"bikeshare/internal/files"
	"bikeshare/internal/infrastructure"
	customMiddleware "bikeshare/internal/middleware"
	"bikeshare/internal/services"
	handlers "bikeshare/internal/transport/http"
	"bikeshare/pkg/contracts"
)

// Application represents the web service container
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	Logger          *slog.Logger
	OTelProviders   *infrastructure.OTelProviders
	ErrorHandler    *apierrors.ErrorHandler
	AnalysisService *services.AnalysisService
	HealthService   *services.HealthService
}

// NewApplication loads configuration from configFile and the environment,
// then builds the logger, telemetry and the HTTP stack on top of it
func NewApplication(configFile string) (*Application, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFile(configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("data_dir", cfg.Data.Dir))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	return New(cfg, logger, otelProviders)
}

// New wires services and routes from an already loaded configuration
func New(cfg *config.Config, logger *slog.Logger, otelProviders *infrastructure.OTelProviders) (*Application, error) {
	if otelProviders == nil {
		otelProviders = &infrastructure.OTelProviders{}
	}
	if otelProviders.Logger == nil {
		otelProviders.Logger = logger
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		ErrorHandler:  apierrors.NewErrorHandler(logger, false),
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the pipeline stages and the services on top of them
func (a *Application) initializeServices() error {
	sources := a.Config.DataSources()

	metrics, err := infrastructure.CreatePipelineMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	loader := dataprocessing.NewLoader(sources, a.Logger)
	engine := dataprocessing.NewEngine(a.Logger)
	a.AnalysisService = services.NewAnalysisService(loader, engine, metrics, a.Logger)

	// sources are already resolved against the data dir
	a.HealthService = services.NewHealthService(files.NewDiscovery(""), sources, a.Logger)

	return nil
}

// setupRouter configures the Chi router
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Order: RequestID → RealIP → OTel → Logger → Recoverer
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
	if err != nil {
		a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
	} else {
		r.Use(otelMiddleware.Handler)
	}

	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.ErrorHandler))
	r.Use(customMiddleware.StripSlashes)
	r.Use(customMiddleware.SecurityHeaders)

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		a.setupAPIRoutes(r)
	})

	// Scraping stays outside the rate limiter
	r.Handle("/metrics", handlers.NewMetricsHandler(a.OTelProviders.Registry, a.ErrorHandler))

	a.Router = r
}

// setupAPIRoutes registers the JSON endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	r.Get("/health", healthHandler.HealthCheck)
	r.Get("/health/ready", healthHandler.ReadinessCheck)
	r.Get("/health/live", healthHandler.LivenessCheck)
	r.Get("/version", healthHandler.Version)

	analysisHandler := handlers.NewAnalysisHandler(
		a.AnalysisService,
		a.HealthService,
		a.Config.Data.PageSize,
		a.Logger,
		a.ErrorHandler,
	)

	r.Group(func(r chi.Router) {
		if a.Config.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.RateLimit.RPS,
				a.Config.RateLimit.Burst,
				a.Logger,
				a.ErrorHandler,
			).Handler)
		}
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))

		r.Get("/cities", analysisHandler.ListCities)
		r.Mount("/analysis", analysisHandler.Routes())
	})
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start begins serving on the configured port. Server failures after
// startup cancel the application through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	listener, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}

	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("address", listener.Addr().String()),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

// Run serves until interrupted or the server fails
func (a *Application) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.Info("Received shutdown signal")

	// the signal context is already done, so shut down on a fresh one
	return a.Stop(context.Background())
}

// performStartupHealthCheck warns about city sources that cannot be loaded
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	start := time.Now()
	datasets := a.HealthService.Datasets(ctx)
	missing := files.Missing(datasets)

	for _, ds := range missing {
		attrs := []any{
			slog.String("city", string(ds.City)),
			slog.String("path", ds.Path),
			slog.String("problem", ds.Problem),
		}
		if ds.Suggestion != "" {
			attrs = append(attrs, slog.String("suggestion", ds.Suggestion))
		}
		a.Logger.WarnContext(ctx, "Data source unavailable", attrs...)
	}

	if len(missing) > 0 {
		return fmt.Errorf("startup health check: %d of %d data sources unavailable", len(missing), len(datasets))
	}

	a.Logger.InfoContext(ctx, "Startup health check passed",
		slog.Int("sources", len(datasets)),
		slog.Duration("duration", time.Since(start)))
	return nil
}
