package middleware

import (
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/resp"
)

const sentryFlushTimeout = 2 * time.Second

// ReportPanic recovers panics, reports them to Sentry
// and answers the request with a generic 500 JSON body.
//
// In development, panics are left to the http.Server.
func ReportPanic(rr *resp.Renderer, env tojson.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	if rr == nil {
		rr = resp.Default()
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
		Timeout:         sentryFlushTimeout,
	})

	return func(h http.Handler) http.Handler {
		reported := sh.Handle(h)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					respondServerError(rr, w, r)
				}
			}()

			reported.ServeHTTP(w, r)
		})
	}
}
