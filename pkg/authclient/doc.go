// Package authclient wraps outbound requests to the remote authentication
// service with credential handling.
//
// The Transport (an http.RoundTripper) attaches the session's bearer token
// to every request that has one and, on a 401 response, tells the session
// to invalidate itself while the original failure still reaches its
// caller — "stop treating the user as logged in" and "this request
// failed" are separate concerns. It never retries and never navigates.
//
// The Client speaks the service's three endpoints: POST /login returning
// {token}, POST /register (body unused on success), and the authorized
// GET /api/profile returning {user}. Failures map onto a small taxonomy:
// *APIError for non-2xx responses (with IsCredentialRejected and
// IsValidation helpers), ErrRequestFailed for requests that never got a
// response, ErrMalformedResponse for 2xx bodies of the wrong shape.
//
// # Usage
//
//	var cfg authclient.Config
//	config.MustLoad(&cfg)
//
//	api := authclient.New(cfg,
//	    authclient.WithTokenSource(sessionManager),
//	    authclient.WithInvalidator(sessionManager),
//	)
//	sessionManager.SetClient(api)
package authclient
