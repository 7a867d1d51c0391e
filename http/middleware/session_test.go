package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/middleware"
	"github.com/xy-planning-network/tojson/http/session"
)

func TestInjectSession(t *testing.T) {
	// Arrange + Act
	actual := middleware.InjectSession(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	actual = middleware.InjectSession(session.Stub{ID: 3})

	// Assert
	actual(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		val, ok := rx.Context().Value(tojson.SessionKey).(session.UserSessionable)
		require.True(t, ok)

		id, err := val.UserID()
		require.Nil(t, err)
		require.Equal(t, uint(3), id)
	})).ServeHTTP(w, r)
}
