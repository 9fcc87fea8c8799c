package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"bikeshare/internal/config"
	"bikeshare/internal/files"
	"bikeshare/pkg/contracts"
)

// DatasetCatalog describes the configured city sources
type DatasetCatalog interface {
	Describe(sources config.DataSources) []files.DatasetInfo
}

// HealthService provides health check functionality
type HealthService struct {
	version   contracts.VersionInfo
	catalog   DatasetCatalog
	sources   config.DataSources
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewHealthService creates a new health service over the configured sources
func NewHealthService(catalog DatasetCatalog, sources config.DataSources, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	version := contracts.GetVersionInfo()
	logger.Info("HealthService initialized",
		slog.String("version", version.Version),
		slog.Int("sources", len(sources)))

	return &HealthService{
		version:   version,
		catalog:   catalog,
		sources:   sources,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version.Version,
	}
}

// ReadinessCheck reports ready when every configured city source can be read
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version.Version,
		Services:  make(map[string]interface{}),
	}

	data := hs.checkDataHealth()
	status.Services["data"] = data

	if data.Status != "ready" {
		status.Status = "not_ready"
		hs.logger.WarnContext(ctx, "ReadinessCheck: not ready",
			slog.String("reason", data.Message))
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version.Version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() contracts.VersionInfo {
	return hs.version
}

// Datasets describes each configured city source
func (hs *HealthService) Datasets(ctx context.Context) []files.DatasetInfo {
	if hs.catalog == nil {
		return nil
	}
	return hs.catalog.Describe(hs.sources)
}

// checkDataHealth checks that every configured source exists
func (hs *HealthService) checkDataHealth() ServiceHealth {
	if hs.catalog == nil || len(hs.sources) == 0 {
		return ServiceHealth{
			Status:  "not_ready",
			Message: "no data sources configured",
		}
	}

	missing := files.Missing(hs.catalog.Describe(hs.sources))
	if len(missing) > 0 {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("%d of %d sources unavailable, first: %s (%s)", len(missing), len(hs.sources), missing[0].City, missing[0].Problem),
		}
	}

	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d sources available", len(hs.sources)),
		Uptime:  time.Since(hs.startTime).String(),
	}
}
