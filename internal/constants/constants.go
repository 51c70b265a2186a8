package constants

// JWTCookieName is the cookie the auth token is stored in.
const JWTCookieName = "jwt"

// ContextKeyClaims is the gin context key the validated token claims are stored under.
const ContextKeyClaims = "auth_claims"

const MinPasswordLength = 8

// Pagination defaults
const (
	MinPageSize     = 1
	DefaultPageSize = 100
	MaxPageSize     = 500
)
