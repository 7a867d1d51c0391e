/*
start-here provides a toy example use of tojson's http stack,
focusing on the basics of:

(1) constructing a default Ranger;
(2) binding routes to handlers rendering JSON with AsJSON;
(3) overriding the status code, headers or encoding of a single response;
(4) and protecting routes behind a login accepting sessions or Basic credentials.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/auth"
	. "github.com/xy-planning-network/tojson/http/resp"
	"github.com/xy-planning-network/tojson/http/router"
	"github.com/xy-planning-network/tojson/postgres"
	"github.com/xy-planning-network/tojson/ranger"
)

const (
	seedEmailEnvVar    = "EXAMPLE_EMAIL"
	seedPasswordEnvVar = "EXAMPLE_PASSWORD"
)

// RangerHandler wraps a configured *Ranger.
// The methods attached to it are the handlers the Router
// will direct requests to.
type RangerHandler struct {
	*ranger.Ranger
}

// root renders a map with the defaults passed to AsJSON.
func (h RangerHandler) root(r *http.Request) (any, []Opt) {
	return map[string]any{
		"sick": "such data",
		"wow":  "so data",
		"ooh":  "dataaaa",
	}, nil
}

// created overrides the status code and adds a header for this response only.
func (h RangerHandler) created(r *http.Request) (any, []Opt) {
	return map[string]any{"id": 1}, []Opt{Status(http.StatusCreated), Header("Location", "/things/1")}
}

// plain writes the string into the body as is.
func (h RangerHandler) plain(r *http.Request) (any, []Opt) {
	return "such text", []Opt{Verbatim(), ContentType("text/plain")}
}

// ascii escapes every non-ASCII character in the body.
func (h RangerHandler) ascii(r *http.Request) (any, []Opt) {
	return map[string]string{"greeting": "¡hola, café!"}, []Opt{EnsureASCII()}
}

// teapot builds a *Response itself, which passes through untouched.
func (h RangerHandler) teapot(r *http.Request) (any, []Opt) {
	res := NewResponse(http.StatusTeapot)
	res.Header().Set("Content-Type", "application/json")
	res.WriteString(`{"short":"stout"}`)
	return res, nil
}

// broken renders a value JSON cannot encode, answered with a generic 500.
func (h RangerHandler) broken(r *http.Request) (any, []Opt) {
	return map[string]any{"ch": make(chan int)}, nil
}

// me renders the User the request was authenticated as.
func (h RangerHandler) me(r *http.Request) (any, []Opt) {
	return r.Context().Value(tojson.CurrentUserKey), nil
}

// routes binds routes and handlers to one another.
func routes(rng *ranger.Ranger) {
	h := RangerHandler{rng}

	// this is a group of routes that share a middleware stack.
	// in this case, no additional middleware is needed
	// beyond the default stack set for every request.
	rng.HandleRoutes([]router.Route{
		{Path: "/", Method: http.MethodGet, Handler: rng.AsJSON(Options{}, h.root)},
		{Path: "/ascii", Method: http.MethodGet, Handler: rng.AsJSON(Options{}, h.ascii)},
		{Path: "/broken", Method: http.MethodGet, Handler: rng.AsJSON(Options{}, h.broken)},
		{Path: "/created", Method: http.MethodPost, Handler: rng.AsJSON(Options{}, h.created)},
		{Path: "/plain", Method: http.MethodGet, Handler: rng.AsJSON(Options{}, h.plain)},
		{Path: "/teapot", Method: http.MethodGet, Handler: rng.AsJSON(Options{}, h.teapot)},
	})

	rng.Protect(router.Route{Path: "/me", Method: http.MethodGet, Handler: rng.AsJSON(Options{}, h.me)})
}

// seed creates the user named by EXAMPLE_EMAIL and EXAMPLE_PASSWORD,
// whose credentials can then be sent over Basic auth to /me.
func seed(rng *ranger.Ranger) error {
	email, password := os.Getenv(seedEmailEnvVar), os.Getenv(seedPasswordEnvVar)
	if email == "" || password == "" {
		return nil
	}

	svc, err := auth.NewService(rng.EmitUsers())
	if err != nil {
		return err
	}

	hashed, err := svc.HashPassword(password)
	if err != nil {
		return err
	}

	u := &tojson.User{AccessState: tojson.AccessGranted, Email: email, Password: hashed}
	err = postgres.NewUserStore(rng.EmitDB()).Create(context.Background(), u)
	if err != nil && !errors.Is(err, tojson.ErrNotValid) {
		return err
	}

	return nil
}

func main() {
	// construct a Ranger using all defaults.
	rng, err := ranger.New()
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := seed(rng); err != nil {
		fmt.Println(err)
		return
	}

	routes(rng)

	// start the web server until receiving a signal to stop.
	if err := rng.Guide(); err != nil {
		fmt.Println(err)
		return
	}
}
