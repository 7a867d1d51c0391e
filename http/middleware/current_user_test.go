package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/middleware"
	"github.com/xy-planning-network/tojson/http/session"
)

func newTestUserStore(u middleware.User, err error) middleware.UserStorer {
	return func(_ context.Context, id uint) (middleware.User, error) {
		return u, err
	}
}

func TestCurrentUser(t *testing.T) {
	// Arrange + Act
	actual := middleware.CurrentUser(nil, nil, nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	tcs := []struct {
		name     string
		sess     any
		storer   middleware.UserStorer
		expected middleware.User
		code     int
		deleted  int
	}{
		{
			name:     "No-Session",
			storer:   newTestUserStore(testUser{id: 1, active: true}, nil),
			expected: tojson.AnonymousUser{},
			code:     http.StatusTeapot,
		},
		{
			name:     "No-User",
			sess:     session.Stub{},
			storer:   newTestUserStore(testUser{id: 1, active: true}, nil),
			expected: tojson.AnonymousUser{},
			code:     http.StatusTeapot,
		},
		{
			name:     "User",
			sess:     session.Stub{ID: 1},
			storer:   newTestUserStore(testUser{id: 1, active: true}, nil),
			expected: testUser{id: 1, active: true},
			code:     http.StatusTeapot,
		},
		{
			name:     "Stale-User",
			sess:     session.Stub{ID: 1},
			storer:   newTestUserStore(nil, tojson.ErrNotExist),
			expected: tojson.AnonymousUser{},
			code:     http.StatusTeapot,
			deleted:  1,
		},
		{
			name:     "No-Access",
			sess:     session.Stub{ID: 1},
			storer:   newTestUserStore(testUser{id: 1}, nil),
			expected: tojson.AnonymousUser{},
			code:     http.StatusTeapot,
		},
		{
			name:    "Session-Failure",
			sess:    session.Stub{ID: 1, Err: errors.New("redis is down")},
			storer:  newTestUserStore(testUser{id: 1, active: true}, nil),
			code:    http.StatusInternalServerError,
			deleted: 1,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var deleted int
			l, _ := newLogger()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			if s, ok := tc.sess.(session.Stub); ok {
				s.Deleted = &deleted
				r = r.Clone(context.WithValue(r.Context(), tojson.SessionKey, session.UserSessionable(s)))
			}

			// Act
			middleware.CurrentUser(newRenderer(), tc.storer, l)(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
				require.Equal(t, tc.expected, rx.Context().Value(tojson.CurrentUserKey))
				wx.WriteHeader(http.StatusTeapot)
			})).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.deleted, deleted)
		})
	}
}

func TestCurrentUserNoStore(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r = r.Clone(context.WithValue(r.Context(), tojson.SessionKey, session.UserSessionable(session.Stub{ID: 1})))

	// Act
	middleware.CurrentUser(newRenderer(), newTestUserStore(testUser{id: 1, active: true}, nil), nil)(teapotHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	require.Equal(t, "no-cache", w.Header().Get("Pragma"))
}

func TestCurrentUserThenRequireLogin(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r = r.Clone(context.WithValue(r.Context(), tojson.SessionKey, session.UserSessionable(session.Stub{ID: 1})))

	l, _ := newLogger()
	h := middleware.Chain(
		teapotHandler(),
		middleware.CurrentUser(newRenderer(), newTestUserStore(testUser{id: 1, active: true}, nil), l),
		middleware.RequireLogin(newRenderer(), middleware.NewAuthConfig(middleware.WithAuthLogger(l))),
	)

	// Act
	h.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)

	// Arrange
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	h.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusForbidden, w.Code)
}
