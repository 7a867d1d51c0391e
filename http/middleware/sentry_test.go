package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/middleware"
)

func TestReportPanic(t *testing.T) {
	// Arrange + Act
	actual := middleware.ReportPanic(nil, tojson.Development)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("oh no") })

	// Act
	require.NotPanics(t, func() {
		middleware.ReportPanic(newRenderer(), tojson.Testing)(panicky).ServeHTTP(w, r)
	})

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"success": false, "message": "Internal Server Error"}`, w.Body.String())

	// Arrange
	w = httptest.NewRecorder()

	// Act
	middleware.ReportPanic(newRenderer(), tojson.Testing)(teapotHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
}
