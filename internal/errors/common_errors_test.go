package errors

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewValidationError("month must be january through june", nil),
			want: "[VALIDATION] month must be january through june",
		},
		{
			name: "with cause",
			err:  NewParsingError("row 3: bad Start Time", fmt.Errorf("invalid layout")),
			want: "[PARSING] row 3: bad Start Time: invalid layout",
		},
		{
			name: "source not found",
			err:  NewSourceNotFoundError("boston", nil),
			want: `[SOURCE_NOT_FOUND] no data source for city "boston"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("open chicago.csv: no such file")
	err := NewSourceNotFoundError("chicago", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "chicago", err.Context["city"])
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", NewParsingError("bad header", nil))

	assert.Equal(t, ErrTypeParsing, TypeOf(wrapped))
	assert.True(t, IsType(wrapped, ErrTypeParsing))
	assert.False(t, IsType(wrapped, ErrTypeSourceNotFound))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.False(t, IsType(nil, ErrTypeParsing))
}

func TestNewSourceError(t *testing.T) {
	_, statErr := os.Stat(filepath.Join(t.TempDir(), "washington.csv"))
	missing := NewSourceError("data/washington.csv", statErr)
	assert.Equal(t, ErrTypeSourceNotFound, missing.Type)
	assert.Equal(t, "data/washington.csv", missing.Context["path"])

	denied := NewSourceError("data/chicago.csv", os.ErrPermission)
	assert.Equal(t, ErrTypeStorage, denied.Type)
	assert.True(t, errors.Is(denied, os.ErrPermission))
}

func TestNewRowError(t *testing.T) {
	err := NewRowError(7, "Start Time", errors.New(`unrecognized timestamp "soon"`))

	assert.Equal(t, ErrTypeParsing, err.Type)
	assert.Equal(t, `[PARSING] row 7: invalid Start Time: unrecognized timestamp "soon"`, err.Error())
	assert.Equal(t, 7, err.Context["row"])
	assert.Equal(t, "Start Time", err.Context["column"])
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeStorage, Message: "read failed"}
	err.WithContext("path", "data/washington.csv").WithContext("row", 12)

	require.Len(t, err.Context, 2)
	assert.Equal(t, 12, err.Context["row"])
}
