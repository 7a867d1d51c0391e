package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/middleware"
	"golang.org/x/crypto/bcrypt"
)

var _ middleware.CredentialVerifier = new(Service)

// A UserFinder looks up the User registered under an email address.
//
// FindByEmail returns an error wrapping tojson.ErrNotExist when there is none.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (tojson.User, error)
}

// Service verifies credentials against the Users a UserFinder knows about.
type Service struct {
	cost   int
	finder UserFinder

	// hashed stands in for the password of a User that does not exist,
	// keeping the time spent on unknown emails the same.
	hashed []byte
}

// NewService constructs a *Service looking Users up in finder.
func NewService(finder UserFinder, opts ...ServiceOpt) (*Service, error) {
	if finder == nil {
		return nil, fmt.Errorf("%w: UserFinder cannot be nil", ErrNotValid)
	}

	s := &Service{cost: bcrypt.DefaultCost, finder: finder}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("tojson"), s.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	s.hashed = hashed
	return s, nil
}

// A ServiceOpt configures a *Service.
type ServiceOpt func(*Service) error

// WithCost sets the bcrypt cost HashPassword uses.
func WithCost(cost int) ServiceOpt {
	return func(s *Service) error {
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return fmt.Errorf("%w: cost %d is outside [%d, %d]", ErrNotValid, cost, bcrypt.MinCost, bcrypt.MaxCost)
		}

		s.cost = cost
		return nil
	}
}

// HashPassword hashes password with bcrypt, ready to be stored as tojson.User.Password.
func (s *Service) HashPassword(password string) ([]byte, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotValid, err)
	}

	return hashed, nil
}

// Verify returns the User registered under email when password matches their hash.
//
// Verify returns ErrBadCredentials when no User is registered under email
// or password does not match.
// Whether the User has access is left to the caller.
func (s *Service) Verify(ctx context.Context, email, password string) (middleware.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", ErrBadCredentials)
	}

	u, err := s.finder.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, tojson.ErrNotExist):
		bcrypt.CompareHashAndPassword(s.hashed, []byte(password))
		return nil, ErrBadCredentials

	case err != nil:
		return nil, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	if err := bcrypt.CompareHashAndPassword(u.Password, []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	return u, nil
}
