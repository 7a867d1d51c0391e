package logger

import (
	"encoding"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
)

const (
	callerTmpl = "%s:%d"

	// MaskVal replaces credentials in a LogContext.
	MaskVal = "xxxxxx"
)

var (
	_ encoding.TextMarshaler = LogContext{}

	// maskedHeaders carry credentials and are never logged as is.
	maskedHeaders = []string{"Authorization", "Cookie", "X-Forwarded-Authorization"}

	// maskedFormKeys carry credentials and are never logged as is.
	maskedFormKeys = []string{"password"}
)

// LogUser is the interface exposing attributes of a user to a LogContext.
type LogUser interface {
	// GetID retrieves the application's identifier for a user.
	GetID() uint

	// GetEmail retrieves the email address of the user.
	GetEmail() string
}

// A LogContext provides additional information and configuration
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Caller overrides the caller file and line number with the provided value.
	//
	// Caller is not logged in the text of a LogContext.
	Caller string

	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request

	// User is the principal acting during the logging event.
	User LogUser
}

// MarshalText converts LogContext into a JSON representation,
// eliminating zero-value fields and masking credentials.
//
// MarshalText implements [encoding.TextMarshaler].
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if lc.Request != nil {
		r := map[string]any{
			"method": lc.Request.Method,
			"url":    lc.Request.URL.String(),
			"header": maskHeader(lc.Request.Header),
		}

		if lc.Request.Form != nil {
			r["form"] = maskForm(lc.Request.Form)
		}

		m["request"] = r
	}

	if lc.User != nil {
		u := make(map[string]any)
		if id := lc.User.GetID(); id != 0 {
			u["id"] = id
		}

		if email := lc.User.GetEmail(); email != "" {
			u["email"] = email
		}

		if len(u) > 0 {
			m["user"] = u
		}
	}

	return json.Marshal(m)
}

// String stringifies LogContext as a JSON representation of it.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err)
	}

	return string(b)
}

// CurrentCaller retrieves the caller for the caller of CurrentCaller,
// formatted for using as a value in LogContext.Caller.
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf(callerTmpl, callSite(file), line)
}

// maskHeader copies h, replacing the values of credential-bearing headers.
func maskHeader(h http.Header) http.Header {
	masked := h.Clone()
	if masked == nil {
		return http.Header{}
	}

	for _, k := range maskedHeaders {
		if masked.Get(k) != "" {
			masked.Set(k, MaskVal)
		}
	}

	return masked
}

// maskForm copies vals, squashing the values of credential-bearing keys.
func maskForm(vals url.Values) url.Values {
	masked := make(url.Values, len(vals))
	for k, v := range vals {
		masked[k] = append([]string(nil), v...)
	}

	for _, k := range maskedFormKeys {
		if _, ok := masked[k]; ok {
			masked[k] = []string{MaskVal}
		}
	}

	return masked
}
