package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runValidate(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs(append([]string{"validate"}, args...))

	err := root.Execute()

	var body map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body), out.String())
	return body, err
}

func TestValidateCmd_Valid(t *testing.T) {
	body, err := runValidate(t, "--title", "Buy groceries", "--email", "user@example.com")

	require.NoError(t, err)
	assert.Equal(t, true, body["valid"])
	assert.Empty(t, body["errors"])
}

func TestValidateCmd_InvalidReportsEveryField(t *testing.T) {
	body, err := runValidate(t, "--title", "Task1", "--email", "nope", "--locale", "en")

	assert.ErrorIs(t, err, errInvalidSubmission)
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, map[string]any{
		"title": "Title must contain only letters and spaces",
		"email": "Email must be a string in a valid format",
	}, body["errors"])
}

func TestValidateCmd_DefaultLocaleIsRussian(t *testing.T) {
	body, err := runValidate(t, "--title", "Ok", "--email", "nope")

	assert.ErrorIs(t, err, errInvalidSubmission)
	assert.Equal(t, map[string]any{
		"email": "Email должен быть строкой и иметь правильный формат",
	}, body["errors"])
}

func TestValidateCmd_UnknownLocale(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"validate", "--title", "Ok", "--locale", "fr"})

	assert.Error(t, root.Execute())
}

func TestPreviewEmailCmd(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"preview-email"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Buy groceries")

	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"preview-email", "--template", "welcome"})
	assert.Error(t, root.Execute())
}

func TestRunUntilStopped_ReturnsStartFailure(t *testing.T) {
	log := zerolog.Nop()
	bindErr := errors.New("listen tcp :8080: bind: address already in use")

	shutdownCalled := false
	err := runUntilStopped(context.Background(), &log,
		func() error { return bindErr },
		func(context.Context) error {
			shutdownCalled = true
			return nil
		},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, bindErr)
	assert.True(t, shutdownCalled)
}

func TestRunUntilStopped_CleanShutdownOnCancel(t *testing.T) {
	log := zerolog.Nop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stopped := make(chan struct{})
	err := runUntilStopped(ctx, &log,
		func() error {
			<-stopped
			return nil
		},
		func(context.Context) error {
			close(stopped)
			return nil
		},
	)

	assert.NoError(t, err)
}

func TestValidateCmd_MissingFlagsAreEmpty(t *testing.T) {
	body, err := runValidate(t, "--title", "Ok", "--locale", "en")

	assert.ErrorIs(t, err, errInvalidSubmission)
	assert.Equal(t, map[string]any{
		"email": "Email must be a string in a valid format",
	}, body["errors"])
}
