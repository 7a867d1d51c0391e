package resp_test

import (
	"bytes"
	"log"

	"github.com/xy-planning-network/tojson/http/resp"
	"github.com/xy-planning-network/tojson/logger"
)

const (
	jsonMediaType     = "application/json"
	jsonUTF8MediaType = "application/json; charset=utf-8"
)

type stringer struct{}

func (stringer) String() string { return "i am a stringer" }

// newRenderer constructs a *resp.Renderer logging into the returned buffer.
func newRenderer(opts ...resp.RendererOptFn) (*resp.Renderer, *bytes.Buffer) {
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))
	return resp.NewRenderer(append([]resp.RendererOptFn{resp.WithLogger(l)}, opts...)...), b
}
