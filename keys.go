package tojson

// A Key stashes values in a request's context.Context.
type Key string

const (
	// CurrentUserKey stashes the principal authenticated for a request,
	// whether loaded from a session or verified from Basic credentials.
	CurrentUserKey Key = "CurrentUserKey"

	// IPAddrKey stashes the originating IP address of an HTTP request.
	IPAddrKey Key = "IPAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "tojson context key: " + string(k)
}
