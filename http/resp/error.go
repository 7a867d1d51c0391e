package resp

import "errors"

var (
	ErrEncode       = errors.New("cannot encode")
	ErrInvalidParam = errors.New("invalid param")
	ErrUnknownParam = errors.New("unknown param")
)
