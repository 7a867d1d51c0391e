package ranger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/middleware"
	"github.com/xy-planning-network/tojson/http/resp"
	"github.com/xy-planning-network/tojson/http/session"
	"github.com/xy-planning-network/tojson/logger"
	"github.com/xy-planning-network/tojson/postgres"
	"gorm.io/gorm"
)

// A RangerOption configures a *Ranger under construction.
//
// Components left unset by RangerOptions are configured by defaults afterwards,
// so a RangerOption cannot rely on another component being set.
type RangerOption func(rng *Ranger) error

// WithAuth appends opts to those configuring Gate,
// e.g., middleware.WithErrorBody.
func WithAuth(opts ...middleware.AuthOpt) RangerOption {
	return func(rng *Ranger) error {
		rng.authOpts = append(rng.authOpts, opts...)
		return nil
	}
}

// WithContext exposes the provided context.Context to the tojson app.
// The context.Context is the base of every request the server handles.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		if ctx == nil {
			return fmt.Errorf("%w: context cannot be nil", tojson.ErrNotValid)
		}

		rng.ctx = ctx
		return nil
	}
}

// WithDB uses the provided *gorm.DB to store users.
//
// WithDB assumes a connection has already been established and migrations ran.
func WithDB(db *gorm.DB) RangerOption {
	return func(rng *Ranger) error {
		rng.db = db
		return nil
	}
}

// WithEnv casts the provided string into a valid Environment.
func WithEnv(env string) RangerOption {
	return func(rng *Ranger) error {
		e := tojson.Environment(env)
		if err := e.Valid(); err != nil {
			return fmt.Errorf("%w: %q", err, env)
		}

		rng.env = e
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the tojson app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		rng.l = l
		return nil
	}
}

// WithMigrations appends migrations to those run when connecting to the default database.
func WithMigrations(migrations ...postgres.Migration) RangerOption {
	return func(rng *Ranger) error {
		rng.migrations = append(rng.migrations, migrations...)
		return nil
	}
}

// WithRenderer exposes the provided *resp.Renderer to the tojson app.
func WithRenderer(rr *resp.Renderer) RangerOption {
	return func(rng *Ranger) error {
		rng.Renderer = rr
		return nil
	}
}

// WithServer serves the tojson app with the provided *http.Server.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		rng.srv = s
		return nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the tojson app.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) error {
		rng.sessions = store
		return nil
	}
}

// WithUsers looks up users in store instead of the default database.
func WithUsers(store UserStore) RangerOption {
	return func(rng *Ranger) error {
		rng.users = store
		return nil
	}
}

// WithVerifier checks Basic credentials with v, accepting them on Gate.
func WithVerifier(v middleware.CredentialVerifier) RangerOption {
	return func(rng *Ranger) error {
		rng.verifier = v
		return nil
	}
}
