package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/tojson"
)

// RequestIDHeader echoes the ID RequestID assigns to a request.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under tojson.RequestIDKey
// and echoes it in the response's RequestIDHeader.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)

			ctx := context.WithValue(r.Context(), tojson.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
