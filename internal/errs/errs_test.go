package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "TOO_MANY_REQUESTS", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)))
}

func TestNewValidationFailedError(t *testing.T) {
	err := NewValidationFailedError("Validation failed", []FieldError{
		{Field: "email", Error: "bad email"},
		{Field: "title", Error: "bad title"},
	})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.True(t, err.Override)
	assert.Equal(t, map[string]string{"email": "bad email", "title": "bad title"}, err.FieldErrorMap())
}

func TestHTTPError_IsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("creating task: %w", NewNotFoundError("Task not found", true, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "NOT_FOUND", httpErr.Code)
}

func TestNewInternalServerError_HidesCause(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), err.Error())
	assert.False(t, err.Override)
}
