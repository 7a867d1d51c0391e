package resp

import (
	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/logger"
)

// A RendererOptFn mutates the provided *Renderer in some way.
// A RendererOptFn is used when constructing a new Renderer.
type RendererOptFn func(*Renderer)

// WithDebug sets whether JSON bodies are indented by four spaces.
func WithDebug(debug bool) RendererOptFn {
	return func(rr *Renderer) {
		rr.debug = debug
	}
}

// WithEnv turns on debug output in debugging environments.
func WithEnv(env tojson.Environment) RendererOptFn { return WithDebug(env.Debug()) }

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(l logger.Logger) RendererOptFn {
	return func(rr *Renderer) {
		rr.logger = l
	}
}
