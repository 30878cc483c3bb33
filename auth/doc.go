// Package auth authenticates HTTP callers of the Prospect API.
//
// An Authenticator turns a bearer token into an Identity. JWTAuthenticator
// verifies HS256-signed JSON Web Tokens against a shared secret;
// NoopAuthenticator accepts everything and exists for development.
// Middleware wraps any net/http handler and rejects unauthenticated
// requests with 401 {"error":"not authorized"}.
package auth
