package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/tojson"
	"github.com/xy-planning-network/tojson/http/resp"
	"github.com/xy-planning-network/tojson/http/session"
	"github.com/xy-planning-network/tojson/logger"
)

// UserStorer defines how to retrieve a User by an ID in the context of middleware.
type UserStorer func(ctx context.Context, id uint) (User, error)

// CurrentUser loads the User whose ID is in the session.UserSessionable stored under tojson.SessionKey
// and stores it under tojson.CurrentUserKey.
//
// When the request has no session, the session has no user ID,
// the User no longer exists, or the User no longer has access,
// tojson.AnonymousUser is stored instead and the request continues;
// access control is left to RequireLogin.
// A session pointing at a User that no longer exists is deleted.
// A session pointing at a User without access has the User deregistered.
//
// CurrentUser responds with a 500 JSON body when it cannot update the session.
//
// If storer is nil, NoopAdapter returns and this middleware does nothing.
func CurrentUser(rr *resp.Renderer, storer UserStorer, ls logger.Logger) Adapter {
	if storer == nil {
		return NoopAdapter
	}

	if rr == nil {
		rr = resp.Default()
	}

	if ls == nil {
		ls = logger.New()
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			anon := r.Clone(context.WithValue(r.Context(), tojson.CurrentUserKey, tojson.AnonymousUser{}))

			s, ok := r.Context().Value(tojson.SessionKey).(session.UserSessionable)
			if !ok {
				handler.ServeHTTP(w, anon)
				return
			}

			uid, err := s.UserID()
			if err != nil {
				// NOTE(dlk): there is no User in the session,
				// request may be accessing an unauthenticated endpoint,
				// maybe not, something for access control middlewares to determine
				handler.ServeHTTP(w, anon)
				return
			}

			user, err := storer(r.Context(), uid)
			if err != nil || user == nil {
				ls.Warn("session user not found", &logger.LogContext{Error: err, Request: r, Data: map[string]any{"userID": uid}})
				if err := s.Delete(w, r); err != nil {
					serverError(rr, ls, w, r, err)
					return
				}

				handler.ServeHTTP(w, anon)
				return
			}

			if !user.HasAccess() {
				if err := s.DeregisterUser(w, r); err != nil {
					serverError(rr, ls, w, r, err)
					return
				}

				handler.ServeHTTP(w, anon)
				return
			}

			if err := s.ResetExpiry(w, r); err != nil {
				s.Delete(w, r) // NOTE(dlk): ignore delete error
				serverError(rr, ls, w, r, err)
				return
			}

			w.Header().Add("Cache-Control", "no-store")
			w.Header().Add("Pragma", "no-cache")

			ctx := context.WithValue(r.Context(), tojson.CurrentUserKey, user)
			handler.ServeHTTP(w, r.Clone(ctx))
		})
	}
}

// serverError logs err and answers with a generic 500 JSON body.
func serverError(rr *resp.Renderer, ls logger.Logger, w http.ResponseWriter, r *http.Request, err error) {
	ls.Error("cannot update session", &logger.LogContext{Error: err, Request: r})
	respondServerError(rr, w, r)
}

func respondServerError(rr *resp.Renderer, w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"success": false, "message": http.StatusText(http.StatusInternalServerError)}
	rr.Respond(w, r, rr.Render(body, resp.Options{Class: resp.ServerError}))
}
