package ranger

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/auth"
	"github.com/xy-planning-network/tojson/http/middleware"
	"github.com/xy-planning-network/tojson/http/resp"
	"github.com/xy-planning-network/tojson/http/router"
	"github.com/xy-planning-network/tojson/http/session"
	"github.com/xy-planning-network/tojson/logger"
	"github.com/xy-planning-network/tojson/postgres"
)

var sessionNameRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// defaults configures, in order, each component of a *Ranger left unset by options.
func defaults() []func(*Ranger) error {
	return []func(*Ranger) error{
		defaultEnv,
		defaultLogger,
		defaultURL,
		defaultRenderer,
		defaultUsers,
		defaultSessionStore,
		defaultVerifier,
		defaultRouter,
		defaultServer,
	}
}

func defaultEnv(r *Ranger) error {
	if r.env == "" {
		r.env = tojson.EnvVarOrEnv(environmentEnvVar, tojson.Development)
	}

	return r.env.Valid()
}

// defaultLogger constructs a logger.Logger at the LOG_LEVEL level,
// which falls back to DEBUG in development and INFO otherwise.
func defaultLogger(r *Ranger) error {
	if r.l != nil {
		return nil
	}

	def := "INFO"
	if r.env.IsDevelopment() {
		def = "DEBUG"
	}

	lvl := logger.NewLogLevel(tojson.EnvVarOrString(logLevelEnvVar, def))
	if lvl == logger.LogLevelUnk {
		lvl = logger.LogLevelInfo
	}

	r.l = logger.New(logger.WithEnv(r.env.String()), logger.WithLevel(lvl))
	r.l.Debug(fmt.Sprintf("using env %s", r.env), nil)
	return nil
}

func defaultURL(r *Ranger) error {
	if r.url != nil {
		return nil
	}

	u, err := url.ParseRequestURI(tojson.EnvVarOrString(BaseURLEnvVar, defaultBaseURL))
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %s", BaseURLEnvVar, err)
	}

	r.url = u
	return nil
}

// defaultRenderer constructs the *resp.Renderer used by every JSON handler.
// Bodies are indented when DEBUG is set, or by default in development and testing.
func defaultRenderer(r *Ranger) error {
	if r.Renderer != nil {
		return nil
	}

	r.Renderer = resp.NewRenderer(
		resp.WithDebug(tojson.EnvVarOrBool(debugEnvVar, r.env.Debug())),
		resp.WithLogger(r.l),
	)

	return nil
}

// defaultUsers connects to a Postgres database
// using default configuration environment variables,
// runs the users migration followed by those passed to WithMigrations,
// and stores users there.
func defaultUsers(r *Ranger) error {
	if r.users != nil {
		return nil
	}

	if r.db == nil {
		migrations := append([]postgres.Migration{postgres.UsersMigration}, r.migrations...)
		db, err := postgres.Connect(NewPostgresConfig(r.env), migrations, r.env)
		if err != nil {
			return err
		}

		r.db = db
		r.l.Debug("connected to database", nil)
	}

	r.users = postgres.NewUserStore(r.db)
	return nil
}

// defaultSessionStore constructs a SessionStorer to be used for storing session data.
//
// defaultSessionStore relies on these env vars:
//   - APP_TITLE
//   - SESSION_AUTH_KEY
//   - SESSION_ENCRYPTION_KEY
//   - SESSION_REDIS_URL, optionally, to store sessions in Redis instead of cookies
//   - SESSION_REDIS_PASSWORD
//
// Both KEY env vars be valid hex encoded values; cf. [encoding/hex].
func defaultSessionStore(r *Ranger) error {
	if r.sessions != nil {
		return nil
	}

	cfg := session.Config{
		AuthKey:     os.Getenv(SessionAuthKeyEnvVar),
		EncryptKey:  os.Getenv(SessionEncryptKeyEnvVar),
		Env:         r.env,
		SessionName: sessionName(tojson.EnvVarOrString(AppTitleEnvVar, defaultAppTitle)),
	}

	args := []session.ServiceOpt{session.WithMaxAge(sessionMaxAge)}
	if uri := os.Getenv(sessionRedisURLEnvVar); uri != "" {
		args = append(args, session.WithRedis(uri, os.Getenv(sessionRedisPassEnvVar)))
	}

	store, err := session.NewStoreService(cfg, args...)
	if err != nil {
		return err
	}

	r.sessions = store
	return nil
}

// sessionName turns an app title into a cookie-safe name, e.g., "My App" => "tojson-my-app".
func sessionName(title string) string {
	name := sessionNameRegexp.ReplaceAllString(strings.ToLower(title), "-")
	return "tojson-" + strings.Trim(name, "-")
}

// defaultVerifier checks Basic credentials against the bcrypt hashes of users
// when BASIC_AUTH is true.
func defaultVerifier(r *Ranger) error {
	if r.verifier == nil && tojson.EnvVarOrBool(BasicAuthEnvVar, false) {
		svc, err := auth.NewService(r.users)
		if err != nil {
			return err
		}

		r.verifier = svc
	}

	opts := []middleware.AuthOpt{middleware.WithAuthLogger(r.l)}
	if r.verifier != nil {
		opts = append(opts, middleware.WithBasicAuth(r.verifier))
	}

	r.gate = middleware.RequireLogin(r.Renderer, middleware.NewAuthConfig(append(opts, r.authOpts...)...))
	return nil
}

// defaultRouter constructs a [*router.Router] to be used by the web server,
// applying the default middleware stack to every request.
func defaultRouter(r *Ranger) error {
	if r.Router != nil {
		return nil
	}

	users := r.users
	storer := func(ctx context.Context, id uint) (middleware.User, error) {
		u, err := users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		return u, nil
	}

	r.Router = router.New(r.env, r.Renderer)
	r.OnEveryRequest(
		middleware.ForceHTTPS(r.env),
		middleware.InjectIPAddress(),
		middleware.RateLimit(r.Renderer, middleware.NewVisitors()),
		middleware.RequestID(),
		middleware.LogRequest(r.l),
		middleware.CORS(corsOrigin(r.url)),
		middleware.InjectSession(r.sessions),
		middleware.CurrentUser(r.Renderer, storer, r.l),
	)

	return nil
}

// corsOrigin returns the origin of u, or nothing for local addresses.
func corsOrigin(u *url.URL) string {
	if u.Hostname() == DefaultHost {
		return ""
	}

	return u.Scheme + "://" + u.Host
}

// defaultServer constructs a default [*http.Server] serving the Router.
func defaultServer(r *Ranger) error {
	if r.srv == nil {
		port := tojson.EnvVarOrString(portEnvVar, DefaultPort)
		if port[0] != ':' {
			port = ":" + port
		}

		r.srv = &http.Server{
			Addr:         port,
			IdleTimeout:  tojson.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
			ReadTimeout:  tojson.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
			WriteTimeout: tojson.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
		}
	}

	ctx := r.ctx
	r.srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	r.srv.Handler = r.Router

	return nil
}
