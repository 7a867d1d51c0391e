package resp_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/resp"
)

func TestRenderJSONRoundTrip(t *testing.T) {
	rr, _ := newRenderer()
	for _, tc := range []struct {
		name string
		v    any
	}{
		{"Map", map[string]any{"success": true, "count": float64(3)}},
		{"Slice", []any{"a", float64(1), nil, true}},
		{"String", "hello"},
		{"Number", float64(21)},
		{"Bool", false},
		{"Nested", map[string]any{"data": map[string]any{"go": []any{"rocks"}}}},
		{"Unicode", map[string]any{"name": "Édmund 😀"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			res := rr.Render(tc.v, resp.Options{})

			// Assert
			require.True(t, res.Ok())
			require.Nil(t, res.Err)
			require.Equal(t, http.StatusOK, res.Response.Code)
			require.Equal(t, jsonUTF8MediaType, res.Response.Header().Get("Content-Type"))

			var actual any
			require.Nil(t, json.Unmarshal(res.Response.Body(), &actual))
			require.Equal(t, tc.v, actual)
		})
	}
}

func TestRenderIndentation(t *testing.T) {
	v := map[string]any{"b": []int{1, 2}, "a": 1}

	// Arrange
	rr, _ := newRenderer()

	// Act
	res := rr.Render(v, resp.Options{})

	// Assert
	require.False(t, rr.Debug())
	require.Equal(t, `{"a":1,"b":[1,2]}`, string(res.Response.Body()))

	// Arrange
	rr, _ = newRenderer(resp.WithDebug(true))

	// Act
	res = rr.Render(v, resp.Options{})

	// Assert
	require.True(t, rr.Debug())
	require.Equal(t, "{\n    \"a\": 1,\n    \"b\": [\n        1,\n        2\n    ]\n}", string(res.Response.Body()))

	// Arrange
	rr, _ = newRenderer(resp.WithEnv(tojson.Production))

	// Act
	res = rr.Render(v, resp.Options{})

	// Assert
	require.Equal(t, `{"a":1,"b":[1,2]}`, string(res.Response.Body()))
}

func TestRenderDoesNotEscapeHTML(t *testing.T) {
	rr, _ := newRenderer()
	res := rr.Render("<b>&</b>", resp.Options{})
	require.Equal(t, `"<b>&</b>"`, string(res.Response.Body()))
}

func TestRenderEnsureASCII(t *testing.T) {
	// Arrange
	rr, _ := newRenderer()
	v := map[string]string{"name": "Édmund 😀"}

	// Act
	res := rr.Render(v, resp.Options{EnsureASCII: true})

	// Assert
	require.True(t, res.Ok())
	require.Equal(t, `{"name":"\u00c9dmund \ud83d\ude00"}`, string(res.Response.Body()))
	require.Equal(t, jsonMediaType, res.Response.Header().Get("Content-Type"))

	var actual map[string]string
	require.Nil(t, json.Unmarshal(res.Response.Body(), &actual))
	require.Equal(t, v, actual)

	for _, b := range res.Response.Body() {
		require.Less(t, b, byte(0x80))
	}
}

func TestRenderCharset(t *testing.T) {
	rr, _ := newRenderer()
	for _, tc := range []struct {
		name     string
		ct       string
		expected string
	}{
		{"Default", jsonMediaType, jsonUTF8MediaType},
		{"Custom", "application/vnd.api+json", "application/vnd.api+json; charset=utf-8"},
		{"Already-Set", "application/json; charset=latin1", "application/json; charset=latin1"},
		{"Already-Set-Upper", "application/json; Charset=UTF-8", "application/json; Charset=UTF-8"},
		{"Empty", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			res := rr.Render(map[string]int{"a": 1}, resp.Options{}.With(resp.ContentType(tc.ct)))

			// Assert
			require.True(t, res.Ok())
			require.Equal(t, tc.expected, res.Response.Header().Get("Content-Type"))
		})
	}
}

func TestRenderVerbatim(t *testing.T) {
	rr, _ := newRenderer()
	for _, tc := range []struct {
		name     string
		v        any
		expected string
	}{
		{"String", `My custom string, "not" JSON`, `My custom string, "not" JSON`},
		{"Bytes", []byte("raw bytes"), "raw bytes"},
		{"Raw-Message", json.RawMessage(`{"pre":"encoded"}`), `{"pre":"encoded"}`},
		{"Reader", strings.NewReader("streamed"), "streamed"},
		{"Stringer", stringer{}, "i am a stringer"},
		{"Int", 21, "21"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			res := rr.Render(tc.v, resp.Options{Verbatim: true})

			// Assert
			require.True(t, res.Ok())
			require.Equal(t, tc.expected, string(res.Response.Body()))
			require.Equal(t, jsonMediaType, res.Response.Header().Get("Content-Type"))
		})
	}

	// Arrange + Act
	res := rr.Render("jsonify off", resp.Options{}.With(resp.Jsonify(false)))

	// Assert
	require.Equal(t, "jsonify off", string(res.Response.Body()))
}

func TestRenderNil(t *testing.T) {
	rr, _ := newRenderer()
	for _, opts := range []resp.Options{
		{},
		{Verbatim: true},
		{EnsureASCII: true},
		{Params: resp.Params{resp.ParamStatus: http.StatusNoContent}},
	} {
		res := rr.Render(nil, opts)
		require.True(t, res.Ok())
		require.Empty(t, res.Response.Body())
	}
}

func TestRenderPassThrough(t *testing.T) {
	// Arrange
	rr, _ := newRenderer()
	r := resp.NewResponse(http.StatusTeapot)
	r.WriteString("short and stout")

	for _, opts := range []resp.Options{
		{},
		{Class: resp.Forbidden, Verbatim: true, EnsureASCII: true},
		{Params: resp.Params{"nonsense": true}},
	} {
		// Act
		res := rr.Render(r, opts)

		// Assert
		require.Same(t, r, res.Response)
		require.Equal(t, http.StatusTeapot, res.Response.Code)
		require.Equal(t, "short and stout", string(res.Response.Body()))
		require.Empty(t, res.Response.Header())
	}
}

func TestRenderParams(t *testing.T) {
	// Arrange
	rr, _ := newRenderer()

	// Act
	res := rr.Render(map[string]bool{"ok": false}, resp.Options{}.With(
		resp.Status(http.StatusUnauthorized),
		resp.Header("WWW-Authenticate", `Basic realm="Restricted"`),
		resp.Param(resp.ParamReason, "Who Goes There"),
	))

	// Assert
	require.True(t, res.Ok())
	require.Equal(t, http.StatusUnauthorized, res.Response.Code)
	require.Equal(t, "401 Who Goes There", res.Response.Status())
	require.Equal(t, `Basic realm="Restricted"`, res.Response.Header().Get("WWW-Authenticate"))
	require.Equal(t, jsonUTF8MediaType, res.Response.Header().Get("Content-Type"))

	// Arrange + Act
	res = rr.Render("x", resp.Options{Params: resp.Params{
		resp.ParamHeaders: map[string]string{"content-type": "text/plain", "x-custom": "yes"},
	}})

	// Assert
	require.True(t, res.Ok())
	require.Equal(t, "text/plain; charset=utf-8", res.Response.Header().Get("Content-Type"))
	require.Equal(t, "yes", res.Response.Header().Get("X-Custom"))

	// Arrange + Act
	res = rr.Render(map[string]bool{"success": false}, resp.Options{Class: resp.Forbidden})

	// Assert
	require.True(t, res.Ok())
	require.Equal(t, http.StatusForbidden, res.Response.Code)
	require.Equal(t, "403 Forbidden", res.Response.Status())
}

func TestRenderFallback(t *testing.T) {
	rr, _ := newRenderer()
	for _, tc := range []struct {
		name     string
		v        any
		opts     resp.Options
		expected error
	}{
		{
			"Fixed-Status",
			map[string]int{"a": 1},
			resp.Options{Class: resp.Forbidden, Params: resp.Params{resp.ParamStatus: http.StatusOK}},
			resp.ErrUnknownParam,
		},
		{
			"Unknown-Param",
			"value",
			resp.Options{Params: resp.Params{"mimetype": "text/html"}},
			resp.ErrUnknownParam,
		},
		{
			"Status-Not-Int",
			"value",
			resp.Options{Params: resp.Params{resp.ParamStatus: "401"}},
			resp.ErrInvalidParam,
		},
		{
			"Status-Out-Of-Range",
			"value",
			resp.Options{Params: resp.Params{resp.ParamStatus: 42}},
			resp.ErrInvalidParam,
		},
		{
			"Headers-Wrong-Type",
			"value",
			resp.Options{Params: resp.Params{resp.ParamHeaders: []string{"X-Nope"}}},
			resp.ErrInvalidParam,
		},
		{
			"Content-Type-Wrong-Type",
			"value",
			resp.Options{Params: resp.Params{resp.ParamContentType: 1}},
			resp.ErrInvalidParam,
		},
		{
			"Class-Error",
			"value",
			resp.Options{Class: func(resp.Params) (*resp.Response, error) { return nil, tojson.ErrUnexpected }},
			tojson.ErrUnexpected,
		},
		{
			"Cannot-Encode",
			map[string]any{"ch": make(chan int)},
			resp.Options{},
			resp.ErrEncode,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			res := rr.Render(tc.v, tc.opts)

			// Assert
			require.False(t, res.Ok())
			require.Nil(t, res.Response)
			require.Equal(t, tc.v, res.Value)
			require.ErrorIs(t, res.Err, tc.expected)
		})
	}
}

func TestRenderDoesNotMutateOptions(t *testing.T) {
	// Arrange
	rr, _ := newRenderer()
	h := http.Header{"X-Shared": []string{"1"}}
	opts := resp.Options{Params: resp.Params{resp.ParamHeaders: h}}

	// Act
	res := rr.Render("a", opts)
	res.Response.Header().Set("X-Shared", "2")
	res.Response.Header().Set("X-Extra", "3")

	// Assert
	require.Equal(t, http.Header{"X-Shared": []string{"1"}}, h)
	require.Len(t, opts.Params, 1)
}
