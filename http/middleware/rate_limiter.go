package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/resp"
	"golang.org/x/time/rate"
)

const (
	visitorRate   rate.Limit = 5
	visitorBurst             = 20
	visitorExpiry            = 60 * time.Minute
)

// TooManyRequests is the Class RateLimit answers with.
var TooManyRequests = resp.FixedStatus(http.StatusTooManyRequests)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	val map[string]Visitor
	sync.Mutex
}

func NewVisitors() *Visitors { return &Visitors{val: make(map[string]Visitor)} }

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
//
// Newly created visitors are limited to 5 requests every second with bursts of up to 20.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(visitorRate, visitorBurst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len reports the number of Visitors tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()
	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorExpiry {
			delete(vs.val, ip)
		}
	}
}

// RateLimit answers requests from an IP address exceeding its Visitor's limit
// with a 429 JSON body, slowing down guessing of Basic credentials.
//
// The IP address is read from tojson.IPAddrKey, as stored by InjectIPAddress,
// or parsed from the request otherwise.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
func RateLimit(rr *resp.Renderer, visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	if rr == nil {
		rr = resp.Default()
	}

	body := map[string]any{"success": false, "message": http.StatusText(http.StatusTooManyRequests)}
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, ok := r.Context().Value(tojson.IPAddrKey).(string)
			if !ok {
				ip = GetIPAddress(r)
			}

			if !visitors.Fetch(ip).Limiter.Allow() {
				rr.Respond(w, r, rr.Render(body, resp.Options{Class: TooManyRequests}))
				return
			}

			visitors.cleanup()
			h.ServeHTTP(w, r)
		})
	}
}
