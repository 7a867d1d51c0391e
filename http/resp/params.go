package resp

import (
	"fmt"
	"net/http"
)

// Keys recognized in Params by the Classes this package provides.
const (
	ParamContentType = "content_type"
	ParamHeaders     = "headers"
	ParamReason      = "reason"
	ParamStatus      = "status"
)

const jsonContentType = "application/json"

// Params are construction parameters forwarded to a Class.
//
// Values under ParamHeaders are an http.Header or a map[string]string.
type Params map[string]any

// Clone returns a copy of p that shares no maps with it.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}

	c := make(Params, len(p))
	for k, v := range p {
		switch t := v.(type) {
		case http.Header:
			c[k] = t.Clone()
		case map[string]string:
			m := make(map[string]string, len(t))
			for hk, hv := range t {
				m[hk] = hv
			}
			c[k] = m
		default:
			c[k] = v
		}
	}

	return c
}

// merge returns a new Params holding the key-value pairs of p
// overwritten by those of over.
func (p Params) merge(over Params) Params {
	m := make(Params, len(p)+len(over))
	for k, v := range p.Clone() {
		m[k] = v
	}

	for k, v := range over.Clone() {
		m[k] = v
	}

	return m
}

// headers reads the value under ParamHeaders as an http.Header
// that may be mutated without affecting p.
func (p Params) headers() (http.Header, error) {
	switch t := p[ParamHeaders].(type) {
	case nil:
		return make(http.Header), nil
	case http.Header:
		return t.Clone(), nil
	case map[string]string:
		h := make(http.Header, len(t))
		for k, v := range t {
			h.Set(k, v)
		}
		return h, nil
	default:
		return nil, fmt.Errorf("%w: %q is %T", ErrInvalidParam, ParamHeaders, t)
	}
}
