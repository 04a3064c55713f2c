// Package common contains shared constants and sentinel errors used across
// coinkeeper components.
package common

// AuthorizationHeaderName is the gRPC metadata key (and, case-insensitively,
// the HTTP header) carrying the bearer credential.
const AuthorizationHeaderName = "authorization"

// BearerScheme is the optional scheme prefix in front of a session token.
const BearerScheme = "Bearer"

// SessionTokenSize is the number of random bytes behind a session token.
const SessionTokenSize = 24
