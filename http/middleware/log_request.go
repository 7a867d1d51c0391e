package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/logger"
)

// LogRequest logs the request's method, requested URL, and originating IP address
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following query keys:
// - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri := r.URL.Path
			q := r.URL.Query()
			if q.Has("password") {
				q.Set("password", logger.MaskVal)
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri}
			if ip, ok := r.Context().Value(tojson.IPAddrKey).(string); ok && ip != "" {
				strs = append([]string{ip}, strs...)
			}

			var lc *logger.LogContext
			if id, ok := r.Context().Value(tojson.RequestIDKey).(string); ok {
				lc = &logger.LogContext{Data: map[string]any{"requestID": id}}
			}

			ls.Info(strings.Join(strs, " "), lc)
			h.ServeHTTP(w, r)
		})
	}
}
