package logger

import "log"

// A LoggerOptFn is a functional option configuring a TojsonLogger when constructing a new one.
type LoggerOptFn func(*TojsonLogger)

// WithEnv sets the environment TojsonLogger is operating in.
func WithEnv(env string) LoggerOptFn {
	return func(l *TojsonLogger) {
		l.env = env
	}
}

// WithLevel sets the log level TojsonLogger uses.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *TojsonLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger TojsonLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *TojsonLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *TojsonLogger) {
		l.skip = skip
	}
}
