package logger

import (
	"fmt"
	"log"
	"os"
	"path"
	"regexp"
	"runtime"

	"github.com/fatih/color"
)

const knownFrames = 2

var modulePathRegex = regexp.MustCompile("tojson.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// NewLogLevel parses val into a LogLevel, or LogLevelUnk.
func NewLogLevel(val string) LogLevel {
	switch val {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelDebug:
		return "[DEBUG]"
	case LogLevelInfo:
		return "[INFO]"
	case LogLevelWarn:
		return "[WARN]"
	case LogLevelError:
		return "[ERROR]"
	case LogLevelFatal:
		return "[FATAL]"
	default:
		return "[UNK]"
	}
}

// TojsonLogger implements Logger using log.
type TojsonLogger struct {
	skip int
	env  string
	l    *log.Logger
	ll   LogLevel
}

// New constructs a Logger.
//
// Logs are printed to os.Stdout by default at the INFO level.
// If SENTRY_DSN is set, New wraps the TojsonLogger in a SentryLogger.
func New(opts ...LoggerOptFn) Logger {
	l := &TojsonLogger{
		env: getEnvOrString("ENVIRONMENT", "DEVELOPMENT"),
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		l.Info("SENTRY_DSN set, configuring SentryLogger", nil)
		return NewSentryLogger(l, dsn)
	}

	return l
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
func (l *TojsonLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *TojsonLogger) Debug(msg string, ctx *LogContext) {
	l.log(color.WhiteString, LogLevelDebug, msg, ctx)
}

// Error writes an error log.
func (l *TojsonLogger) Error(msg string, ctx *LogContext) {
	l.log(color.RedString, LogLevelError, msg, ctx)
}

// Fatal writes a fatal log.
func (l *TojsonLogger) Fatal(msg string, ctx *LogContext) {
	l.log(color.MagentaString, LogLevelFatal, msg, ctx)
}

// Info writes an info log.
func (l *TojsonLogger) Info(msg string, ctx *LogContext) {
	l.log(color.BlueString, LogLevelInfo, msg, ctx)
}

// Warn writes a warning log.
func (l *TojsonLogger) Warn(msg string, ctx *LogContext) {
	l.log(color.YellowString, LogLevelWarn, msg, ctx)
}

// LogLevel returns the LogLevel set for the TojsonLogger.
func (l *TojsonLogger) LogLevel() LogLevel { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *TojsonLogger) Skip() int { return l.skip }

// log prints the message at level, including ctx if available,
// when level is at or above the TojsonLogger's LogLevel.
func (l *TojsonLogger) log(colorizer func(string, ...any) string, level LogLevel, msg string, ctx *LogContext) {
	if l.ll > level {
		return
	}

	_, file, line, _ := runtime.Caller(knownFrames + l.skip)

	where := fmt.Sprintf(callerTmpl, callSite(file), line)
	if ctx != nil && ctx.Caller != "" {
		where = ctx.Caller
	}

	out := colorizer("%s %s '%s'", level, where, msg)
	if ctx == nil {
		l.l.Println(out)
		return
	}

	l.l.Println(out, "log_context:", ctx)
}

// callSite trims file down to a path relative to the module,
// or the file and the directory it is in,
// e.g., /home/dlk/my-project/main.go => my-project/main.go
func callSite(file string) string {
	if match := modulePathRegex.FindString(file); match != "" {
		return match
	}

	dir, f := path.Split(file)
	return path.Join(path.Base(dir), f)
}

func getEnvOrString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return def
}
