package middleware

import "errors"

var (
	ErrMalformedCredentials = errors.New("malformed credentials")
	ErrNoCredentials        = errors.New("no credentials")
	ErrNoVerifier           = errors.New("no credential verifier")
	ErrUnsupportedScheme    = errors.New("unsupported authorization scheme")
	ErrNoAccess             = errors.New("principal has no access")
)
