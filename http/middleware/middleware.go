package middleware

import (
	"net/http"
)

// An Adapter allows chaining middlewares together.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	//NOTE: Loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter hands off to the next handler without doing anything.
func NoopAdapter(h http.Handler) http.Handler { return h }

// A Stage inspects a request before the handler it guards sees it.
//
// A Stage returns either the request to hand off, possibly derived from r,
// or a non-nil http.Handler answering the request in place of the rest of the chain.
type Stage func(r *http.Request) (*http.Request, http.Handler)

// Staged composes stages into an Adapter.
// Stages run in order and the first one answering the request short-circuits the others.
func Staged(stages ...Stage) Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, stage := range stages {
				var answer http.Handler
				r, answer = stage(r)
				if answer != nil {
					answer.ServeHTTP(w, r)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
