/*
Package auth verifies the credentials users present in place of a session.

A Service exchanges an email address and password for the tojson.User they identify,
comparing the password against the bcrypt hash stored for that User.
It implements middleware.CredentialVerifier, so it plugs straight into middleware.RequireLogin:

	verifier, err := auth.NewService(userStore)
	gate := middleware.RequireLogin(renderer, middleware.NewAuthConfig(middleware.WithBasicAuth(verifier)))
*/
package auth
