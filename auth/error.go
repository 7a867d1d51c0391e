package auth

import "errors"

var (
	ErrBadCredentials = errors.New("bad credentials")
	ErrNotValid       = errors.New("not valid")
	ErrUnexpected     = errors.New("unexpected")
)
