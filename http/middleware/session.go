package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/session"
)

// InjectSession stores the session associated with the *http.Request under tojson.SessionKey.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// NOTE: a session that cannot be decoded is replaced by a new one
			s, _ := store.GetSession(r)
			ctx := context.WithValue(r.Context(), tojson.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
