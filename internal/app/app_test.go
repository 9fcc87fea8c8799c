package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/config"
	apierrors "bikeshare/internal/errors"
	"bikeshare/internal/shared/testutil"
)

// newTestApp wires the application over a temp data dir holding the sample Chicago trips
func newTestApp(t *testing.T, mutate func(cfg *config.Config)) (*Application, *testutil.LogCapture) {
	t.Helper()

	dir := t.TempDir()
	testutil.WriteTripsCSV(t, dir, "chicago.csv", testutil.ChicagoHeader, testutil.SampleChicagoTrips())

	cfg := config.Default()
	cfg.Data.Dir = dir
	cfg.Data.Sources = map[string]string{"chicago": "chicago.csv"}
	cfg.RateLimit.Enabled = false
	cfg.Server.Port = 0
	if mutate != nil {
		mutate(cfg)
	}

	logger, logs := testutil.NewTestLogger(t)
	app, err := New(cfg, logger, nil)
	require.NoError(t, err)
	return app, logs
}

func get(t *testing.T, app *Application, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestNew(t *testing.T) {
	app, _ := newTestApp(t, nil)

	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.AnalysisService)
	assert.NotNil(t, app.HealthService)
	assert.Equal(t, ":0", app.Server.Addr)
	assert.Equal(t, app.Config.Server.ReadTimeout, app.Server.ReadTimeout)
}

func TestRoutes_Health(t *testing.T) {
	app, _ := newTestApp(t, nil)

	tests := []struct {
		target     string
		wantStatus int
		wantField  string
		wantValue  any
	}{
		{"/api/health", http.StatusOK, "status", "ok"},
		{"/api/health/ready", http.StatusOK, "status", "ready"},
		{"/api/health/live", http.StatusOK, "status", "alive"},
		{"/api/version", http.StatusOK, "version", nil},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec, body := get(t, app, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			if tt.wantValue != nil {
				assert.Equal(t, tt.wantValue, body[tt.wantField])
			}
		})
	}
}

func TestRoutes_NotReadyWhenSourceMissing(t *testing.T) {
	app, _ := newTestApp(t, func(cfg *config.Config) {
		cfg.Data.Sources["washington"] = "washington.csv"
	})

	rec, body := get(t, app, "/api/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not_ready", body["status"])
}

func TestRoutes_Analysis(t *testing.T) {
	app, _ := newTestApp(t, nil)

	rec, body := get(t, app, "/api/analysis?city=chicago")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chicago", body["city"])
	assert.EqualValues(t, 5, body["total_rows"])

	stats := body["statistics"].(map[string]any)
	assert.EqualValues(t, 5, stats["rows"])
	assert.EqualValues(t, 3, stats["time"].(map[string]any)["most_common_month"])
	assert.Equal(t, "Clark St", stats["stations"].(map[string]any)["most_common_start_station"])
}

func TestRoutes_AnalysisFiltered(t *testing.T) {
	app, _ := newTestApp(t, nil)

	rec, body := get(t, app, "/api/analysis?city=chicago&month=march&day=friday")
	require.Equal(t, http.StatusOK, rec.Code)

	stats := body["statistics"].(map[string]any)
	assert.EqualValues(t, 3, stats["rows"])
	assert.EqualValues(t, 2700, stats["durations"].(map[string]any)["total_seconds"])
}

func TestRoutes_AnalysisErrors(t *testing.T) {
	app, _ := newTestApp(t, nil)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantType   string
	}{
		{"unknown city", "/api/analysis?city=boston", http.StatusBadRequest, apierrors.TypeValidation},
		{"missing city", "/api/analysis", http.StatusBadRequest, apierrors.TypeValidation},
		{"month out of range", "/api/analysis?city=chicago&month=july", http.StatusBadRequest, apierrors.TypeValidation},
		{"city without source", "/api/analysis?city=washington", http.StatusNotFound, apierrors.TypeSourceAbsent},
		{"bad limit", "/api/analysis/rows?city=chicago&limit=0", http.StatusBadRequest, apierrors.TypeValidation},
		{"unknown route", "/api/trips", http.StatusNotFound, apierrors.TypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := get(t, app, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Contains(t, rec.Header().Get("Content-Type"), "json")
		})
	}
}

func TestRoutes_Rows(t *testing.T) {
	app, _ := newTestApp(t, nil)

	rec, body := get(t, app, "/api/analysis/rows?city=chicago&limit=2&offset=2")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.EqualValues(t, 5, body["total"])
	assert.EqualValues(t, 2, body["limit"])
	assert.EqualValues(t, 4, body["next_offset"])

	rows := body["rows"].([]any)
	require.Len(t, rows, 2)
	assert.Equal(t, "Wabash Ave", rows[0].(map[string]any)["end_station"])
}

func TestRoutes_RowsDefaultPageSize(t *testing.T) {
	app, _ := newTestApp(t, func(cfg *config.Config) {
		cfg.Data.PageSize = 3
	})

	_, body := get(t, app, "/api/analysis/rows?city=chicago")
	assert.Len(t, body["rows"].([]any), 3)
	assert.EqualValues(t, 3, body["next_offset"])

	_, body = get(t, app, "/api/analysis/rows?city=chicago&offset=3")
	assert.Len(t, body["rows"].([]any), 2)
	assert.NotContains(t, body, "next_offset")
}

func TestRoutes_Cities(t *testing.T) {
	app, _ := newTestApp(t, nil)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cities", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var datasets []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &datasets))
	require.Len(t, datasets, 1)
	assert.Equal(t, "chicago", datasets[0]["city"])
	assert.Equal(t, true, datasets[0]["available"])
	assert.Equal(t, "csv", datasets[0]["format"])
}

func TestRoutes_MetricsDisabled(t *testing.T) {
	app, _ := newTestApp(t, nil)

	rec, body := get(t, app, "/metrics")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, apierrors.TypeServiceDown, body["type"])
}

func TestRoutes_RateLimit(t *testing.T) {
	app, _ := newTestApp(t, func(cfg *config.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.RPS = 0.001
		cfg.RateLimit.Burst = 1
	})

	rec, _ := get(t, app, "/api/cities")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body := get(t, app, "/api/cities")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, apierrors.TypeRateLimit, body["type"])

	// health probes are not rate limited
	rec, _ = get(t, app, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApplication_StartStop(t *testing.T) {
	app, logs := newTestApp(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, app.Start(ctx, cancel))
	testutil.AssertLogContains(t, logs, slog.LevelInfo, "Application started successfully")
	testutil.AssertLogContains(t, logs, slog.LevelInfo, "Startup health check passed")

	require.NoError(t, app.Stop(context.Background()))
	assert.True(t, logs.ContainsMessage("Application shutdown complete"))
	assert.NoError(t, ctx.Err(), "a clean shutdown does not cancel the application")
}

func TestApplication_performStartupHealthCheck(t *testing.T) {
	app, logs := newTestApp(t, func(cfg *config.Config) {
		cfg.Data.Sources["new york city"] = "new_york_city.csv"
	})

	err := app.performStartupHealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 data sources unavailable")
	testutil.AssertLogAttr(t, logs, "city", "new york city")
	testutil.AssertLogAttr(t, logs, "problem", "file not found")
}
