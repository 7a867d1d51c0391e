package tojson

import (
	"database/sql"
	"time"
)

// AccessState is a string representation of the broadest, general access
// a User has to a tojson application.
type AccessState string

const (
	AccessGranted AccessState = "granted"
	AccessInvited AccessState = "invited"
	AccessRevoked AccessState = "revoked"
)

// String implements fmt.Stringer.
func (as AccessState) String() string { return string(as) }

// A User is the principal a request acts on behalf of.
//
// A User is authenticated either by a session holding its ID
// or, per request, by HTTP Basic credentials matching Email and Password.
type User struct {
	ID          uint         `json:"id"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	DeletedAt   sql.NullTime `json:"-"`
	AccessState AccessState  `json:"accessState"`
	Email       string       `json:"email"`

	// Password is a bcrypt hash.
	Password []byte `json:"-"`
}

// HasAccess asserts whether the User is active.
func (u User) HasAccess() bool { return u.AccessState == AccessGranted && !u.DeletedAt.Valid }

// IsAuthenticated asserts whether the User is a stored record,
// as opposed to a zero-value placeholder.
func (u User) IsAuthenticated() bool { return u.ID != 0 }

// GetID implements logger.LogUser.
func (u User) GetID() uint { return u.ID }

// GetEmail implements logger.LogUser.
func (u User) GetEmail() string { return u.Email }

// An AnonymousUser stands in for the principal of a request
// no session or credentials identify.
type AnonymousUser struct{}

func (AnonymousUser) HasAccess() bool       { return false }
func (AnonymousUser) IsAuthenticated() bool { return false }
