package resp

import "net/http"

// Options configure how a Renderer renders a value.
//
// The zero value renders JSON through HTTPResponse.
type Options struct {
	// Class constructs the *Response; nil means HTTPResponse.
	Class Class

	// Verbatim writes the value into the body as is instead of encoding it as JSON.
	Verbatim bool

	// EnsureASCII escapes all non-ASCII characters in the JSON body.
	// When false, "; charset=utf-8" is added to a Content-Type lacking a charset.
	EnsureASCII bool

	// Params are forwarded to Class, on top of a default "application/json" content type.
	Params Params
}

// Clone returns a copy of o whose Params can be mutated without affecting o.
func (o Options) Clone() Options {
	o.Params = o.Params.Clone()
	return o
}

// With applies opts to a copy of o, leaving o untouched.
func (o Options) With(opts ...Opt) Options {
	c := o.Clone()
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// An Opt overrides Options for a single call.
type Opt func(*Options)

// ContentType sets the content type the Class sets on the *Response.
func ContentType(ct string) Opt { return Param(ParamContentType, ct) }

// EnsureASCII escapes all non-ASCII characters in the JSON body.
func EnsureASCII() Opt {
	return func(o *Options) {
		o.EnsureASCII = true
	}
}

// Header adds the header key-value pair to ParamHeaders.
func Header(key, val string) Opt {
	return func(o *Options) {
		var h http.Header
		switch t := o.Params[ParamHeaders].(type) {
		case http.Header:
			h = t
		case map[string]string:
			h = make(http.Header, len(t)+1)
			for k, v := range t {
				h.Set(k, v)
			}
		default:
			h = make(http.Header)
		}

		h.Add(key, val)
		Param(ParamHeaders, h)(o)
	}
}

// Jsonify sets whether the value is encoded as JSON (true) or written verbatim (false).
func Jsonify(b bool) Opt {
	return func(o *Options) {
		o.Verbatim = !b
	}
}

// Param sets the construction parameter key to val.
func Param(key string, val any) Opt {
	return func(o *Options) {
		if o.Params == nil {
			o.Params = make(Params)
		}

		o.Params[key] = val
	}
}

// Status sets the status code for Classes that accept one.
func Status(code int) Opt { return Param(ParamStatus, code) }

// UseClass sets the Class constructing the *Response.
func UseClass(c Class) Opt {
	return func(o *Options) {
		o.Class = c
	}
}

// Verbatim writes the value into the body as is.
func Verbatim() Opt { return Jsonify(false) }
