package resp

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/logger"
)

const rendererFrames = 1

// A Renderer turns values into *Response.
//
// Most oftentimes, a single Renderer suffices for an application.
// A Renderer holds no per-request state and is safe for concurrent use.
type Renderer struct {
	// Indent JSON bodies for humans
	debug bool

	logger logger.Logger
}

// NewRenderer constructs a *Renderer using the RendererOptFns passed in.
func NewRenderer(opts ...RendererOptFn) *Renderer {
	rr := new(Renderer)
	for _, opt := range opts {
		opt(rr)
	}

	if rr.logger == nil {
		rr.logger = logger.New()
	}

	if l, ok := rr.logger.(logger.SkipLogger); ok {
		rr.logger = l.AddSkip(l.Skip() + rendererFrames)
	}

	return rr
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
)

// Default returns the package-wide *Renderer.
//
// Its debug flag follows the DEBUG environment variable
// and falls back to whether ENVIRONMENT is a debugging one.
func Default() *Renderer {
	defaultOnce.Do(func() {
		env := tojson.EnvVarOrEnv("ENVIRONMENT", tojson.Production)
		defaultRenderer = NewRenderer(WithDebug(tojson.EnvVarOrBool("DEBUG", env.Debug())))
	})

	return defaultRenderer
}

// Debug asserts whether the Renderer indents JSON bodies.
func (rr *Renderer) Debug() bool { return rr.debug }

// A Result is either a *Response or, when one could not be made,
// the value that was to be rendered.
type Result struct {
	Response *Response

	// Value is the original value, set only when Response is nil.
	Value any

	// Err explains why Response is nil.
	Err error
}

// Ok asserts whether the Result holds a *Response.
func (res Result) Ok() bool { return res.Response != nil }

// Render renders v according to opts.
//
// A *Response passes through untouched, ignoring opts.
// Otherwise, opts.Class is called with opts.Params on top of a default JSON content type.
// Then, a non-nil v is encoded as JSON, or written as is when opts.Verbatim is set.
// A nil v leaves the body empty.
//
// Render never returns an error: when the Class rejects its Params
// or v cannot be written, the Result holds v itself instead of a *Response.
func (rr *Renderer) Render(v any, opts Options) Result {
	if r, ok := v.(*Response); ok {
		return Result{Response: r}
	}

	class := opts.Class
	if class == nil {
		class = HTTPResponse
	}

	r, err := class(Params{ParamContentType: jsonContentType}.merge(opts.Params))
	if err != nil {
		return Result{Value: v, Err: err}
	}

	if v == nil {
		return Result{Response: r}
	}

	if opts.Verbatim {
		if err := writeVerbatim(r, v); err != nil {
			return Result{Value: v, Err: err}
		}

		return Result{Response: r}
	}

	b, err := encode(v, rr.debug)
	if err != nil {
		return Result{Value: v, Err: fmt.Errorf("%w: %T: %s", ErrEncode, v, err)}
	}

	if opts.EnsureASCII {
		if err := writeASCII(r, b); err != nil {
			return Result{Value: v, Err: err}
		}

		return Result{Response: r}
	}

	addCharset(r.Header())
	r.Write(b)
	return Result{Response: r}
}

// Render renders v with the Default Renderer.
func Render(v any, opts Options) Result { return Default().Render(v, opts) }

// Respond writes res to w.
//
// When res holds no *Response, Respond logs why
// and responds with a generic 500 JSON body.
func (rr *Renderer) Respond(w http.ResponseWriter, r *http.Request, res Result) {
	if res.Ok() {
		res.Response.ServeHTTP(w, r)
		return
	}

	rr.logger.Error("cannot render response", &logger.LogContext{
		Error:   res.Err,
		Request: r,
		Data:    map[string]any{"type": fmt.Sprintf("%T", res.Value)},
	})

	body := map[string]any{"success": false, "message": http.StatusText(http.StatusInternalServerError)}
	rr.Render(body, Options{Class: ServerError}).Response.ServeHTTP(w, r)
}

// addCharset appends "; charset=utf-8" to the Content-Type in h,
// unless it is empty or already specifies a charset.
func addCharset(h http.Header) {
	ct := h.Get("Content-Type")
	if ct == "" || strings.Contains(strings.ToLower(ct), "charset=") {
		return
	}

	h.Set("Content-Type", ct+"; charset=utf-8")
}

// writeVerbatim writes v into r without encoding it.
func writeVerbatim(r *Response, v any) error {
	var err error
	switch t := v.(type) {
	case string:
		_, err = r.WriteString(t)
	case []byte:
		_, err = r.Write(t)
	case json.RawMessage:
		_, err = r.Write(t)
	case io.Reader:
		_, err = io.Copy(r, t)
	case fmt.Stringer:
		_, err = r.WriteString(t.String())
	default:
		_, err = fmt.Fprint(r, t)
	}

	return err
}
