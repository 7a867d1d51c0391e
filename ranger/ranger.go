package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/auth"
	"github.com/xy-planning-network/tojson/http/middleware"
	"github.com/xy-planning-network/tojson/http/resp"
	"github.com/xy-planning-network/tojson/http/router"
	"github.com/xy-planning-network/tojson/http/session"
	"github.com/xy-planning-network/tojson/logger"
	"github.com/xy-planning-network/tojson/postgres"
	"gorm.io/gorm"
)

// A UserStore looks up the Users requests act on behalf of.
type UserStore interface {
	auth.UserFinder
	FindByID(ctx context.Context, id uint) (tojson.User, error)
}

// A Ranger manages and exposes all components of a tojson app to one another.
type Ranger struct {
	*resp.Renderer
	*router.Router

	authOpts   []middleware.AuthOpt
	ctx        context.Context
	cancel     context.CancelFunc
	db         *gorm.DB
	env        tojson.Environment
	gate       middleware.Adapter
	l          logger.Logger
	migrations []postgres.Migration
	sessions   session.SessionStorer
	srv        *http.Server
	url        *url.URL
	users      UserStore
	verifier   middleware.CredentialVerifier
}

// New constructs a Ranger from the provided options.
// Options passed into New are applied first,
// then defaults configure every component the options left unset.
func New(opts ...RangerOption) (*Ranger, error) {
	r := &Ranger{ctx: context.Background()}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("%w: %s", tojson.ErrBadConfig, err)
		}
	}

	for _, fn := range defaults() {
		if err := fn(r); err != nil {
			return nil, fmt.Errorf("%w: %s", tojson.ErrBadConfig, err)
		}
	}

	return r, nil
}

func (r *Ranger) EmitDB() *gorm.DB                        { return r.db }
func (r *Ranger) EmitEnv() tojson.Environment             { return r.env }
func (r *Ranger) EmitLogger() logger.Logger               { return r.l }
func (r *Ranger) EmitSessionStore() session.SessionStorer { return r.sessions }
func (r *Ranger) EmitUsers() UserStore                    { return r.users }

// Gate returns the middleware.Adapter guarding routes registered with Protect.
func (r *Ranger) Gate() middleware.Adapter { return r.gate }

// Protect registers routes behind Gate.
func (r *Ranger) Protect(routes ...router.Route) { r.ProtectedRoutes(r.gate, routes) }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ctx, stop := signal.NotifyContext(
		r.ctx,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	ctx, r.cancel = context.WithCancel(ctx)

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		r.l.Error(err.Error(), nil)
		return err

	case <-ctx.Done():
		r.l.Info("received shutdown signal", nil)
	}

	return r.Shutdown()
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	if r.cancel != nil {
		r.cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
