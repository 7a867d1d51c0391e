package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xy-planning-network/tojson"
	"gorm.io/gorm"
)

// UsersMigration creates the table tojson.User is stored in.
var UsersMigration = Migration{
	Key: "20240101000000_create_users",
	Executor: func(tx *gorm.DB) error {
		return tx.Exec(`
			CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				created_at timestamptz NOT NULL DEFAULT now(),
				updated_at timestamptz NOT NULL DEFAULT now(),
				deleted_at timestamptz,
				access_state text NOT NULL DEFAULT 'invited',
				email text NOT NULL,
				password bytea NOT NULL,
				CONSTRAINT users_email UNIQUE (email)
			)
		`).Error
	},
}

// A UserStore reads and writes tojson.User records.
//
// Each method opens a new GORM session, so a UserStore is safe for concurrent use.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore constructs a *UserStore backed by db.
func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{db: db} }

// Create inserts u, filling in its ID and timestamps.
//
// If another User has the same email address, ErrNotValid returns.
func (s *UserStore) Create(ctx context.Context, u *tojson.User) error {
	if u == nil || u.Email == "" || len(u.Password) == 0 {
		return fmt.Errorf("%w: User requires an email address and password", tojson.ErrMissingData)
	}

	u.Email = normalizeEmail(u.Email)
	err := s.db.WithContext(ctx).Create(u).Error
	switch {
	case err == nil:
		return nil

	case errUniqViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: email %q is taken", tojson.ErrNotValid, u.Email)

	default:
		return fmt.Errorf("%w: failed creating User: %s", tojson.ErrUnexpected, err)
	}
}

// FindByEmail retrieves the User registered under email, ignoring case.
//
// If there is none, an error wrapping tojson.ErrNotExist returns.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (tojson.User, error) {
	var u tojson.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	return u, notExist(err, "email "+email)
}

// FindByID retrieves the User with id.
//
// If there is none, an error wrapping tojson.ErrNotExist returns.
func (s *UserStore) FindByID(ctx context.Context, id uint) (tojson.User, error) {
	var u tojson.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	return u, notExist(err, fmt.Sprintf("id %d", id))
}

// notExist translates GORM errors into tojson errors.
func notExist(err error, what string) error {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: User with %s", tojson.ErrNotExist, what)

	default:
		return fmt.Errorf("%w: %s", tojson.ErrUnexpected, err)
	}
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }
