package common

const (
	// AuthorizationHeaderName carries the bearer credential on HTTP requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the raw token inside the Authorization header.
	BearerPrefix = "Bearer "

	// TokenType is reported to clients in every token response.
	TokenType = "bearer"
)

// Durable client storage keys.
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
)
