package errors

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStableCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad"), ErrorTypeValidation, http.StatusNotAcceptable},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("dup"), ErrorTypeConflict, http.StatusConflict},
		{"storage", NewStorageError("down"), ErrorTypeStorage, http.StatusInternalServerError},
		{"credential", NewCredentialError("no entropy"), ErrorTypeCredential, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantCode, StatusCode(tt.err))
		})
	}
}

func TestWrappedAppErrorIsDetected(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := fmt.Errorf("creating plan: %w", NewStorageError("Unable to save plan").WithCause(cause))

	assert.True(t, IsStorageError(err))
	assert.False(t, IsConflictError(err))
	assert.ErrorIs(t, err, cause)

	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "disk on fire", appErr.Details)
	assert.Equal(t, "storage_error: Unable to save plan (disk on fire)", appErr.Error())
}

func TestStatusCodeForPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusCode(stderrors.New("boom")))
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	reporter := NewLogReporter(logger)

	reporter.Report(context.Background(), "Plan Entry Error", NewValidationError("Tier 1 term is required."))
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "Plan Entry Error")
	assert.Contains(t, out, "code=406")

	buf.Reset()
	reporter.Report(context.Background(), "Category Database Error", NewStorageError("Unable to save category."))
	assert.Contains(t, buf.String(), "level=ERROR")

	buf.Reset()
	reporter.Report(context.Background(), "nothing", nil)
	assert.Empty(t, buf.String())
}
