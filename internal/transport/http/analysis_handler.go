package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"bikeshare/internal/config"
	apierrors "bikeshare/internal/errors"
	"bikeshare/internal/files"
	"bikeshare/internal/middleware"
	"bikeshare/internal/services"
	"bikeshare/pkg/contracts/domain"
)

// AnalysisRunner runs the load, filter and statistics pipeline for a request
type AnalysisRunner interface {
	RunAnalysis(ctx context.Context, req services.AnalysisRequest) (*domain.PipelineResult, error)
}

// DatasetLister reports the configured cities and whether their sources exist
type DatasetLister interface {
	Datasets(ctx context.Context) []files.DatasetInfo
}

// RowsPage is one page of the filtered trip table
type RowsPage struct {
	AnalysisID string                `json:"analysis_id"`
	City       domain.City           `json:"city"`
	Criteria   domain.FilterCriteria `json:"criteria"`
	Schema     domain.Schema         `json:"schema"`
	Total      int                   `json:"total"`
	Offset     int                   `json:"offset"`
	Limit      int                   `json:"limit"`
	NextOffset *int                  `json:"next_offset,omitempty"`
	Rows       []domain.TripRecord   `json:"rows"`
}

// AnalysisHandler serves statistics and raw rows over HTTP
type AnalysisHandler struct {
	service      AnalysisRunner
	datasets     DatasetLister
	query        *middleware.QueryParamValidator
	pageSize     int
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalysisHandler creates a new analysis handler. pageSize is the default row page size.
func NewAnalysisHandler(service AnalysisRunner, datasets DatasetLister, pageSize int, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	return &AnalysisHandler{
		service:      service,
		datasets:     datasets,
		query:        middleware.NewQueryParamValidator(logger, errorHandler),
		pageSize:     pageSize,
		logger:       logger.With(slog.String("handler", "analysis")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetAnalysis)
	r.Get("/rows", h.GetRows)

	return r
}

// GetAnalysis handles GET /api/analysis?city=&month=&day=
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.RunAnalysis(r.Context(), requestFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// GetRows handles GET /api/analysis/rows?city=&month=&day=&offset=&limit=
func (h *AnalysisHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	offset, ok := h.query.ValidateInt(w, r, "offset", 0, math.MaxInt32, 0)
	if !ok {
		return
	}
	limit, ok := h.query.ValidateInt(w, r, "limit", 1, config.MaxPageSize, h.pageSize)
	if !ok {
		return
	}

	result, err := h.service.RunAnalysis(r.Context(), requestFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page := RowsPage{
		AnalysisID: result.ID,
		City:       result.City,
		Criteria:   result.Criteria,
		Total:      result.Table.Len(),
		Offset:     offset,
		Limit:      limit,
		Rows:       result.Table.Page(offset, limit),
	}
	if result.Table != nil {
		page.Schema = result.Table.Schema
	}
	if page.Rows == nil {
		page.Rows = []domain.TripRecord{}
	}
	if next := offset + len(page.Rows); len(page.Rows) > 0 && next < page.Total {
		page.NextOffset = &next
	}

	render.JSON(w, r, page)
}

// ListCities handles GET /api/cities
func (h *AnalysisHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	datasets := h.datasets.Datasets(r.Context())
	if datasets == nil {
		datasets = []files.DatasetInfo{}
	}
	render.JSON(w, r, datasets)
}

func requestFromQuery(r *http.Request) services.AnalysisRequest {
	q := r.URL.Query()
	return services.AnalysisRequest{
		City:  q.Get("city"),
		Month: q.Get("month"),
		Day:   q.Get("day"),
	}
}
