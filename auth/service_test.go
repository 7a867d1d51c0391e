package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/auth"
	"golang.org/x/crypto/bcrypt"
)

type finderFunc func(ctx context.Context, email string) (tojson.User, error)

func (fn finderFunc) FindByEmail(ctx context.Context, email string) (tojson.User, error) {
	return fn(ctx, email)
}

func newTestService(t *testing.T, users ...tojson.User) *auth.Service {
	t.Helper()

	s, err := auth.NewService(finderFunc(func(_ context.Context, email string) (tojson.User, error) {
		for _, u := range users {
			if u.Email == email {
				return u, nil
			}
		}

		return tojson.User{}, fmt.Errorf("%w: %s", tojson.ErrNotExist, email)
	}), auth.WithCost(bcrypt.MinCost))
	require.Nil(t, err)

	return s
}

func TestNewService(t *testing.T) {
	// Act
	s, err := auth.NewService(nil)

	// Assert
	require.ErrorIs(t, err, auth.ErrNotValid)
	require.Nil(t, s)

	// Act
	s, err = auth.NewService(finderFunc(nil), auth.WithCost(bcrypt.MaxCost+1))

	// Assert
	require.ErrorIs(t, err, auth.ErrNotValid)
	require.Nil(t, s)
}

func TestServiceVerify(t *testing.T) {
	// Arrange
	hasher := newTestService(t)
	hashed, err := hasher.HashPassword("hunter2")
	require.Nil(t, err)

	active := tojson.User{ID: 1, AccessState: tojson.AccessGranted, Email: "dev@example.com", Password: hashed}
	revoked := tojson.User{ID: 2, AccessState: tojson.AccessRevoked, Email: "gone@example.com", Password: hashed}
	s := newTestService(t, active, revoked)

	tcs := []struct {
		name     string
		email    string
		password string
		expected *tojson.User
		err      error
	}{
		{"Match", active.Email, "hunter2", &active, nil},
		{"Match-Without-Access", revoked.Email, "hunter2", &revoked, nil},
		{"Wrong-Password", active.Email, "hunter3", nil, auth.ErrBadCredentials},
		{"Unknown-Email", "who@example.com", "hunter2", nil, auth.ErrBadCredentials},
		{"Empty-Email", "", "hunter2", nil, auth.ErrBadCredentials},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := s.Verify(context.Background(), tc.email, tc.password)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.expected == nil {
				require.Nil(t, actual)
				return
			}

			require.Equal(t, *tc.expected, actual)
			require.Equal(t, tc.expected.HasAccess(), actual.HasAccess())
		})
	}
}

func TestServiceVerifyUnexpected(t *testing.T) {
	// Arrange
	s, err := auth.NewService(finderFunc(func(context.Context, string) (tojson.User, error) {
		return tojson.User{}, errors.New("connection refused")
	}), auth.WithCost(bcrypt.MinCost))
	require.Nil(t, err)

	// Act
	actual, err := s.Verify(context.Background(), "dev@example.com", "hunter2")

	// Assert
	require.ErrorIs(t, err, auth.ErrUnexpected)
	require.Nil(t, actual)
}
