package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/tojson"
)

// unknownIP stands in for an address GetIPAddress cannot find.
const unknownIP = "0.0.0.0"

// IANA defined IPv4 non-public ranges
var privatePrefixes = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress grabs the IP address of the *http.Request
// and promotes it to *http.Request.Context under tojson.IPAddrKey,
// where LogRequest and RateLimit find it.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetIPAddress(r)
			h.ServeHTTP(w, r.Clone(context.WithValue(r.Context(), tojson.IPAddrKey, ip)))
		})
	}
}

// GetIPAddress parses "X-Forwarded-For" and "X-Real-Ip" headers for the IP address
// from the request, falling back to the address of the peer.
//
// GetIPAddress skips addresses from non-public ranges in headers
// and returns "0.0.0.0" when none is left.
func GetIPAddress(r *http.Request) string {
	for _, h := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addresses := strings.Split(r.Header.Get(h), ",")
		// march from right to left until we get a public address
		// that will be the address right before our proxy.
		for i := len(addresses) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(addresses[i]))
			if err != nil || !isPublic(addr) {
				continue
			}

			return addr.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return unknownIP
	}

	if _, err := netip.ParseAddr(host); err != nil {
		return unknownIP
	}

	return host
}

// isPublic checks whether addr can be routed on the internet.
//
// Only IPv4 private subnets are checked.
func isPublic(addr netip.Addr) bool {
	if !addr.IsGlobalUnicast() {
		return false
	}

	addr = addr.Unmap()
	if !addr.Is4() {
		return true
	}

	for _, p := range privatePrefixes {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
