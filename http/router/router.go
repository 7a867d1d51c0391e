package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/middleware"
	"github.com/xy-planning-network/tojson/http/resp"
)

// A Route maps a path and HTTP method to an [http.Handler].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []middleware.Adapter
}

// Router routes requests for JSON resources to their handlers.
type Router struct {
	env           tojson.Environment
	everyReqStack []middleware.Adapter
	r             *mux.Router
	rr            *resp.Renderer
}

// New constructs a [*Router] for the given environment.
//
// Requests matching no Route are answered with a 404 JSON body rendered by rr,
// and requests matching a Route's path but not its method with a 405 JSON body.
// If rr is nil, resp.Default is used.
func New(env tojson.Environment, rr *resp.Renderer) *Router {
	if rr == nil {
		rr = resp.Default()
	}

	r := &Router{env: env, r: mux.NewRouter(), rr: rr}
	r.r.NotFoundHandler = r.status(resp.NotFound, http.StatusNotFound)
	r.r.MethodNotAllowedHandler = r.status(resp.FixedStatus(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)

	return r
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(middlewares)+len(route.Middlewares)+1)
		mws = append(mws, middleware.ReportPanic(r.rr, r.env))
		mws = append(mws, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)

		r.r.Handle(route.Path, middleware.Chain(route.Handler, mws...)).Methods(route.Method)
	}
}

// ProtectedRoutes registers the set of Routes behind gate,
// typically built by middleware.RequireLogin.
// The given middlewares are applied before gate,
// so they can, e.g., load the current user gate checks.
func (r *Router) ProtectedRoutes(gate middleware.Adapter, routes []Route, middlewares ...middleware.Adapter) {
	mws := make([]middleware.Adapter, 0, len(middlewares)+1)
	mws = append(mws, middlewares...)
	mws = append(mws, gate)
	r.HandleRoutes(routes, mws...)
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		env:           r.env,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		rr:            r.rr,
		everyReqStack: append([]middleware.Adapter(nil), r.everyReqStack...),
	}
}

// status answers with a JSON body describing code.
func (r *Router) status(class resp.Class, code int) http.Handler {
	body := map[string]any{"success": false, "message": http.StatusText(code)}
	return r.rr.AsJSON(resp.Options{Class: class}, func(*http.Request) (any, []resp.Opt) {
		return body, nil
	})
}
