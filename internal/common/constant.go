// Package common contains shared constants and sentinel errors used across
// itemkeeper components.
package common

// AuthorizationHeaderName is the HTTP header carrying the caller's credential.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is echoed back on every response.
const RequestIDHeaderName = "X-Request-ID"
