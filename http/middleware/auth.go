package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/resp"
	"github.com/xy-planning-network/tojson/logger"
)

const (
	// AuthorizationHeader carries Basic credentials.
	AuthorizationHeader = "Authorization"

	// ForwardedAuthorizationHeader carries Basic credentials
	// when a proxy renamed AuthorizationHeader.
	ForwardedAuthorizationHeader = "X-Forwarded-Authorization"

	basicScheme = "basic"
)

// The User defines the principal of a request in the context of middleware.
type User interface {
	// HasAccess asserts whether the principal is active.
	HasAccess() bool

	// IsAuthenticated asserts whether the principal was identified by a session or credentials.
	IsAuthenticated() bool
}

// A CredentialVerifier exchanges a username and password for the User they identify.
//
// Verify returns a nil User, an error, or both when the credentials identify no one.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (User, error)
}

// VerifierFunc adapts a function into a CredentialVerifier.
type VerifierFunc func(ctx context.Context, username, password string) (User, error)

// Verify implements CredentialVerifier.
func (fn VerifierFunc) Verify(ctx context.Context, username, password string) (User, error) {
	return fn(ctx, username, password)
}

// An AuthConfig configures RequireLogin.
//
// Construct one with NewAuthConfig; the zero value accepts nothing.
type AuthConfig struct {
	// ErrorBody is rendered as JSON when a request is not authorized.
	ErrorBody any

	// AcceptSessionAuth authorizes requests whose principal is authenticated,
	// i.e., loaded from a session by CurrentUser.
	AcceptSessionAuth bool

	// AcceptBasicAuth authorizes requests carrying Basic credentials Verifier accepts.
	AcceptBasicAuth bool

	// Verifier checks Basic credentials.
	Verifier CredentialVerifier

	// Logger receives the reason a request was rejected at the DEBUG level.
	Logger logger.Logger
}

// DefaultErrorBody is the body of a forbidden response unless WithErrorBody overrides it.
func DefaultErrorBody() map[string]any {
	return map[string]any{"success": false, "message": "Logging in is required"}
}

// An AuthOpt overrides a default of an AuthConfig.
type AuthOpt func(*AuthConfig)

// NewAuthConfig constructs an AuthConfig accepting session authentication only,
// answering rejected requests with DefaultErrorBody.
func NewAuthConfig(opts ...AuthOpt) AuthConfig {
	cfg := AuthConfig{
		ErrorBody:         DefaultErrorBody(),
		AcceptSessionAuth: true,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithBasicAuth accepts Basic credentials v verifies.
func WithBasicAuth(v CredentialVerifier) AuthOpt {
	return func(cfg *AuthConfig) {
		cfg.AcceptBasicAuth = v != nil
		cfg.Verifier = v
	}
}

// WithErrorBody sets the body rendered when a request is not authorized.
func WithErrorBody(body any) AuthOpt {
	return func(cfg *AuthConfig) {
		cfg.ErrorBody = body
	}
}

// WithAuthLogger sets the Logger receiving rejections.
func WithAuthLogger(l logger.Logger) AuthOpt {
	return func(cfg *AuthConfig) {
		cfg.Logger = l
	}
}

// WithoutSessionAuth stops authorizing requests by their session.
func WithoutSessionAuth() AuthOpt {
	return func(cfg *AuthConfig) {
		cfg.AcceptSessionAuth = false
	}
}

// RequireLogin returns an Adapter handing off only authorized requests.
// A request is authorized when either:
//   - cfg.AcceptSessionAuth is set and the User under tojson.CurrentUserKey is authenticated
//   - cfg.AcceptBasicAuth is set and its Basic credentials identify a User with access
//
// A User identified by Basic credentials is stored under tojson.CurrentUserKey
// for the remainder of the request only; no session is started.
//
// Any other request is answered with cfg.ErrorBody rendered as JSON through resp.Forbidden.
//
// If rr is nil, resp.Default is used.
func RequireLogin(rr *resp.Renderer, cfg AuthConfig) Adapter {
	return Staged(LoginStage(rr, cfg))
}

// LoginStage is the Stage of RequireLogin.
func LoginStage(rr *resp.Renderer, cfg AuthConfig) Stage {
	if rr == nil {
		rr = resp.Default()
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.New()
	}

	body := cfg.ErrorBody
	if body == nil {
		body = DefaultErrorBody()
	}

	forbidden := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rr.Respond(w, r, rr.Render(body, resp.Options{Class: resp.Forbidden}))
	})

	return func(r *http.Request) (*http.Request, http.Handler) {
		if cfg.AcceptSessionAuth {
			if u, ok := r.Context().Value(tojson.CurrentUserKey).(User); ok && u.IsAuthenticated() {
				return r, nil
			}
		}

		if !cfg.AcceptBasicAuth {
			cfg.Logger.Debug("request not authorized", &logger.LogContext{Request: r})
			return r, forbidden
		}

		u, err := verifyBasic(r, cfg.Verifier)
		if err != nil {
			cfg.Logger.Debug("request not authorized", &logger.LogContext{Error: err, Request: r})
			return r, forbidden
		}

		// NOTE: the principal lives only as long as the request
		return r.Clone(context.WithValue(r.Context(), tojson.CurrentUserKey, u)), nil
	}
}

// verifyBasic parses the Basic credentials of r and exchanges them for a User with access.
func verifyBasic(r *http.Request, v CredentialVerifier) (User, error) {
	if v == nil {
		return nil, ErrNoVerifier
	}

	username, password, err := BasicCredentials(r.Header)
	if err != nil {
		return nil, err
	}

	u, err := v.Verify(r.Context(), username, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoAccess, err)
	}

	if u == nil || !u.HasAccess() {
		return nil, ErrNoAccess
	}

	return u, nil
}

// BasicCredentials parses the username and password out of the AuthorizationHeader in h,
// or the ForwardedAuthorizationHeader when the former is absent.
//
// The header value must be exactly a scheme and a token, separated by whitespace.
// The scheme is matched case-insensitively against "Basic".
// The token must be standard base64 and decode to "username:password".
// The password may contain colons.
func BasicCredentials(h http.Header) (username, password string, err error) {
	val := h.Get(AuthorizationHeader)
	if val == "" {
		val = h.Get(ForwardedAuthorizationHeader)
	}

	if val == "" {
		return "", "", ErrNoCredentials
	}

	parts := strings.Fields(val)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: want a scheme and a token", ErrMalformedCredentials)
	}

	if !strings.EqualFold(parts[0], basicScheme) {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, parts[0])
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrMalformedCredentials, err)
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", fmt.Errorf("%w: missing colon", ErrMalformedCredentials)
	}

	return username, password, nil
}
