/*
Package ranger initializes and manages a tojson app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New].
Components a [RangerOption] does not set are configured from environment variables.

A [Ranger] embeds the [*resp.Renderer] rendering JSON bodies
and the [*router.Router] routing requests to handlers,
so routes are registered directly on it:

	rng.Handle(router.Route{Path: "/", Method: http.MethodGet, Handler: rng.AsJSON(resp.Options{}, index)})
	rng.Protect(router.Route{Path: "/me", Method: http.MethodGet, Handler: rng.AsJSON(resp.Options{}, me)})

Routes registered with [*Ranger.Protect] are guarded by [*Ranger.Gate],
which accepts a request authenticated by its session or,
when BASIC_AUTH is true, by HTTP Basic credentials checked against stored users.

[*Ranger.Guide] begins a tojson app's web server.
By default, [*Ranger.Guide] listens on [DefaultHost]:[DefaultPort] (localhost:3000).
Stop that web server with [*Ranger.Shutdown] or send a signal [*Ranger.Guide] listens for.

# Configuration

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - APP_TITLE: a short title for the application, used to name the session cookie
  - BASE_URL: the base URL the application runs on; CORS requests from its origin are allowed
  - BASIC_AUTH: whether protected routes accept HTTP Basic credentials; default: false
  - DATABASE_HOST: the host the database is running on; default: localhost
  - DATABASE_MAX_IDLE_CXNS: the number of idle database connections kept open; default: 1
  - DATABASE_NAME: the name of the database
  - DATABASE_PASSWORD: the password for authenticating a connection to the database
  - DATABASE_PORT: the port the database is listening on; default: 5432
  - DATABASE_SSLMODE: the SSL mode of the database connection; default: prefer
  - DATABASE_URL: the fully-qualified connection string for connecting to the database; replaces all other DATABASE_* env vars
  - DATABASE_USER: the user for authenticating a connection to the database
  - DEBUG: whether JSON bodies are indented; default: true in DEVELOPMENT and TESTING
  - ENVIRONMENT: the environment the application is running in; cf. [tojson.Environment]
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PORT: the port the application should listen on; default: :3000
  - SERVER_IDLE_TIMEOUT: the timeout, as understood by [time.ParseDuration], for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout, as understood by [time.ParseDuration], for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout, as understood by [time.ParseDuration], for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - SESSION_REDIS_URL: the address of a Redis server storing sessions instead of cookies
  - SESSION_REDIS_PASSWORD: the password for the Redis server
*/
package ranger
