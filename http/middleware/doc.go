/*
The middleware package defines what a middleware is in tojson and a set of basic middlewares.

The available middlewares are:
- CORS
- CurrentUser
- ForceHTTPS
- InjectIPAddress
- InjectSession
- LogRequest
- RateLimit
- ReportPanic
- RequestID
- RequireLogin

RequireLogin is the gate in front of JSON handlers:
it lets through requests whose session identifies a User,
or that carry Basic credentials a CredentialVerifier accepts,
and answers everything else with a 403 JSON body.

Due to the amount of configuration required, middleware does not provide a default middleware chain.
Instead, the following can be copy-pasted:

	adpts := []middleware.Adapter{
		middleware.ReportPanic(renderer, env),
		middleware.ForceHTTPS(env),
		middleware.InjectIPAddress(),
		middleware.RateLimit(renderer, middleware.NewVisitors()),
		middleware.RequestID(),
		middleware.LogRequest(log),
		middleware.InjectSession(sessionStore),
		middleware.CurrentUser(renderer, userStore, log),
	}

	protected := middleware.RequireLogin(renderer, middleware.NewAuthConfig(
		middleware.WithBasicAuth(verifier),
	))
*/
package middleware
