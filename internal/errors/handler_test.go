package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"bikeshare/internal/shared/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "source not found",
			err:        NewSourceNotFoundError("boston", nil),
			wantStatus: http.StatusNotFound,
			wantType:   TypeSourceAbsent,
		},
		{
			name:       "parsing error",
			err:        fmt.Errorf("load: %w", NewParsingError("row 4: bad Start Time", nil)),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDataParsing,
		},
		{
			name:       "validation error",
			err:        NewValidationError("unknown day", nil),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "api error",
			err:        InvalidParameter("month", errors.New("unknown month \"july\"")),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logHandler := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false)

			r := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
			w := httptest.NewRecorder()

			handler.HandleError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var problem map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
			assert.Equal(t, tt.wantType, problem["type"])
			assert.Equal(t, float64(tt.wantStatus), problem["status"])
			assert.Equal(t, "/api/analysis", problem["instance"])
			assert.Contains(t, problem, "trace_id")

			assert.True(t, logHandler.ContainsMessage("request failed"))
		})
	}
}

func TestErrorHandler_LogLevelFollowsStatus(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)
	r := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)

	handler.HandleError(httptest.NewRecorder(), r, NewValidationError("unknown month", nil))
	handler.HandleError(httptest.NewRecorder(), r, errors.New("boom"))

	testutil.AssertLogCount(t, logs, slog.LevelWarn, "request failed", 1)
	testutil.AssertLogCount(t, logs, slog.LevelError, "request failed", 1)
}

func TestErrorHandler_StorageErrorHidesCause(t *testing.T) {
	handler := NewErrorHandler(nil, false)
	r := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)

	problem := handler.ErrorToProblem(NewSourceError("data/chicago.csv", errors.New("/secret/path: permission denied")), r)

	assert.Equal(t, http.StatusInternalServerError, problem.Status)
	assert.Equal(t, "failed to read source", problem.Detail)
	assert.Equal(t, string(ErrTypeStorage), problem.Extensions["error_code"])
}

func TestErrorHandler_ContextBecomesExtensions(t *testing.T) {
	handler := NewErrorHandler(nil, false)
	r := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)

	problem := handler.ErrorToProblem(NewSourceNotFoundError("boston", nil), r)

	assert.Equal(t, "boston", problem.Extensions["city"])
	assert.Equal(t, "SOURCE_NOT_FOUND", problem.Extensions["error_code"])
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	logger, logHandler := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, true)

	r := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
	w := httptest.NewRecorder()

	handler.HandlePanic(w, r, "nil map")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "nil map")
	assert.True(t, logHandler.ContainsMessage("panic recovered"))
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	p := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", "").
		WithExtension("trace_id", "abc")

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "abc", got["trace_id"])
	assert.NotContains(t, got, "detail")
	assert.NotContains(t, got, "instance")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(ErrTypeSourceNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(ErrTypeParsing))
	assert.Equal(t, http.StatusBadRequest, StatusFor(ErrTypeValidation))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(ErrTypeConfig))
}
