package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

type contextKey int

const (
	traceIDKey contextKey = iota
	analysisIDKey
)

// WithTraceID stores the request trace ID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GetTraceID returns the trace ID stored in ctx, or ""
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// EnsureTraceID gives CLI runs, which have no HTTP request, a trace ID of their own
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, uuid.NewString())
}

// WithAnalysisID tags everything logged under ctx with one pipeline run
func WithAnalysisID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, analysisIDKey, id)
}

// GetAnalysisID returns the analysis ID stored in ctx, or ""
func GetAnalysisID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(analysisIDKey).(string)
	return id
}
