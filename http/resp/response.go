package resp

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
)

var (
	_ http.ResponseWriter = new(Response)
	_ http.Handler        = new(Response)
)

// A Response is a fully formed HTTP response held in memory.
//
// A Response is an http.ResponseWriter, so handlers may build one directly,
// and an http.Handler, so it can be written out to a client.
type Response struct {
	// Code is the HTTP status code.
	Code int

	// Reason overrides the status text when the Response is rendered for logs.
	Reason string

	header http.Header
	body   bytes.Buffer
}

// NewResponse constructs a *Response with the status code and an empty set of headers.
func NewResponse(code int) *Response {
	return &Response{Code: code, header: make(http.Header)}
}

// Body returns the bytes written to the Response so far.
func (r *Response) Body() []byte { return r.body.Bytes() }

// Header implements http.ResponseWriter.
func (r *Response) Header() http.Header {
	if r.header == nil {
		r.header = make(http.Header)
	}

	return r.header
}

// ServeHTTP writes the headers, status code and body of the Response to w.
func (r *Response) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h := w.Header()
	for k, vs := range r.Header() {
		h[k] = append([]string(nil), vs...)
	}

	code := r.Code
	if code == 0 {
		code = http.StatusOK
	}

	w.WriteHeader(code)
	w.Write(r.body.Bytes())
}

// Status returns the status line of the Response, e.g., "403 Forbidden".
func (r *Response) Status() string {
	reason := r.Reason
	if reason == "" {
		reason = http.StatusText(r.Code)
	}

	return fmt.Sprintf("%d %s", r.Code, reason)
}

// Write implements http.ResponseWriter.
func (r *Response) Write(b []byte) (int, error) { return r.body.Write(b) }

// WriteHeader implements http.ResponseWriter.
func (r *Response) WriteHeader(code int) { r.Code = code }

// WriteString appends s to the body of the Response.
func (r *Response) WriteString(s string) (int, error) { return r.body.WriteString(s) }

// A Class constructs a *Response from Params.
//
// A Class returns ErrUnknownParam for keys it does not recognize
// and ErrInvalidParam for values it cannot use.
type Class func(p Params) (*Response, error)

// HTTPResponse is the default Class.
// It responds with 200 unless ParamStatus sets another code.
func HTTPResponse(p Params) (*Response, error) { return construct(http.StatusOK, true, p) }

// FixedStatus returns a Class that always responds with code.
// The Class rejects ParamStatus.
func FixedStatus(code int) Class {
	return func(p Params) (*Response, error) { return construct(code, false, p) }
}

var (
	BadRequest   = FixedStatus(http.StatusBadRequest)
	Forbidden    = FixedStatus(http.StatusForbidden)
	NotFound     = FixedStatus(http.StatusNotFound)
	ServerError  = FixedStatus(http.StatusInternalServerError)
	Unauthorized = FixedStatus(http.StatusUnauthorized)
)

// construct builds a *Response out of p.
// Headers from ParamHeaders are applied after ParamContentType,
// so an explicit "Content-Type" header wins.
func construct(code int, statusAllowed bool, p Params) (*Response, error) {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := NewResponse(code)
	for _, k := range keys {
		switch k {
		case ParamStatus:
			if !statusAllowed {
				return nil, fmt.Errorf("%w: %q, status is fixed at %d", ErrUnknownParam, k, code)
			}

			status, ok := p[k].(int)
			if !ok || status < 100 || status > 999 {
				return nil, fmt.Errorf("%w: %q must be an int between 100 and 999, got %v", ErrInvalidParam, k, p[k])
			}

			r.Code = status

		case ParamContentType:
			ct, ok := p[k].(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidParam, k, p[k])
			}

			if ct != "" {
				r.header.Set("Content-Type", ct)
			}

		case ParamReason:
			reason, ok := p[k].(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidParam, k, p[k])
			}

			r.Reason = reason

		case ParamHeaders:
			// NOTE: applied below

		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownParam, k)
		}
	}

	h, err := p.headers()
	if err != nil {
		return nil, err
	}

	for k, vs := range h {
		r.header[k] = vs
	}

	return r, nil
}
