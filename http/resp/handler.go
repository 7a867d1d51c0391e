package resp

import "net/http"

// A HandlerFunc handles a request by returning a value to render
// and, optionally, Opts overriding the defaults for this call only.
//
// Returning a *Response skips rendering.
type HandlerFunc func(r *http.Request) (any, []Opt)

// AsJSON adapts fn into an http.Handler rendering what fn returns.
//
// For every request, the Opts fn returns are applied to a copy of defaults,
// so overrides made while handling one request never leak into the next.
func (rr *Renderer) AsJSON(defaults Options, fn HandlerFunc) http.Handler {
	defaults = defaults.Clone()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, overrides := fn(r)
		rr.Respond(w, r, rr.Render(v, defaults.With(overrides...)))
	})
}

// AsJSON adapts fn using the Default Renderer.
func AsJSON(defaults Options, fn HandlerFunc) http.Handler { return Default().AsJSON(defaults, fn) }
