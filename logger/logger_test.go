package logger_test

import (
	"bytes"
	"errors"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/tojson/logger"
)

var (
	siteRegexp = regexp.MustCompile(`logger/logger_test\.go:\d+`)
	msgRegexp  = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(b *bytes.Buffer, ll logger.LogLevel) logger.Logger {
	return logger.New(
		logger.WithLevel(ll),
		logger.WithLogger(log.New(b, "", 0)),
	)
}

func TestTojsonLoggerLevels(t *testing.T) {
	for _, tc := range []struct {
		name     string
		level    logger.LogLevel
		fn       func(logger.Logger, string, *logger.LogContext)
		expected string
	}{
		{"Debug-At-Debug", logger.LogLevelDebug, logger.Logger.Debug, "[DEBUG]"},
		{"Debug-At-Info", logger.LogLevelInfo, logger.Logger.Debug, ""},
		{"Info-At-Info", logger.LogLevelInfo, logger.Logger.Info, "[INFO]"},
		{"Warn-At-Error", logger.LogLevelError, logger.Logger.Warn, ""},
		{"Error-At-Warn", logger.LogLevelWarn, logger.Logger.Error, "[ERROR]"},
		{"Fatal-At-Error", logger.LogLevelError, logger.Logger.Fatal, "[FATAL]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			t.Setenv("SENTRY_DSN", "")
			b := new(bytes.Buffer)
			l := newTestLogger(b, tc.level)

			// Act
			tc.fn(l, "such fun!", nil)

			// Assert
			if tc.expected == "" {
				require.Zero(t, b.Len())
				return
			}

			require.Contains(t, b.String(), tc.expected)
			require.Equal(t, "such fun!", msgRegexp.FindStringSubmatch(b.String())[1])
			require.Equal(t, tc.level, l.LogLevel())
		})
	}
}

func TestTojsonLoggerCallSite(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")
	b := new(bytes.Buffer)
	l := newTestLogger(b, logger.LogLevelDebug)

	// Act
	l.Info("where am I", nil)

	// Assert
	require.Regexp(t, siteRegexp, b.String())

	// Arrange
	b.Reset()

	// Act
	l.Info("where am I", &logger.LogContext{Caller: "somewhere/else.go:1", Error: errors.New("oops")})

	// Assert
	require.Contains(t, b.String(), "somewhere/else.go:1")
	require.Contains(t, b.String(), `log_context: {"error":"oops"}`)
}

func TestNewLogLevel(t *testing.T) {
	require.Equal(t, logger.LogLevelDebug, logger.NewLogLevel("DEBUG"))
	require.Equal(t, logger.LogLevelFatal, logger.NewLogLevel("FATAL"))
	require.Equal(t, logger.LogLevelUnk, logger.NewLogLevel("debug"))
	require.Equal(t, "[WARN]", logger.LogLevelWarn.String())
	require.Equal(t, "[UNK]", logger.LogLevelUnk.String())
}
