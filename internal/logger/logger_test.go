package logger

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/taskform/internal/config"
)

func TestNewLoggerService_WithoutLicenseKey(t *testing.T) {
	svc, err := NewLoggerService(config.DefaultObservabilityConfig())
	require.NoError(t, err)

	assert.Nil(t, svc.GetApplication())
	svc.Shutdown()
}

func TestLoggerService_NilSafe(t *testing.T) {
	var svc *LoggerService
	assert.Nil(t, svc.GetApplication())
}

func TestNewLoggerWithService_Level(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	l := NewLoggerWithService(cfg, nil)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := map[zerolog.Level]tracelog.LogLevel{
		zerolog.TraceLevel: tracelog.LogLevelTrace,
		zerolog.DebugLevel: tracelog.LogLevelDebug,
		zerolog.InfoLevel:  tracelog.LogLevelInfo,
		zerolog.WarnLevel:  tracelog.LogLevelWarn,
		zerolog.ErrorLevel: tracelog.LogLevelError,
		zerolog.Disabled:   tracelog.LogLevelNone,
	}

	for in, want := range tests {
		assert.Equal(t, want, GetPgxTraceLogLevel(in), in.String())
	}
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	l := zerolog.Nop()
	assert.Equal(t, l, WithTraceContext(l, nil))
}

func TestFromContext_FallsBackToNop(t *testing.T) {
	l := FromContext(context.Background(), "logger")
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}
