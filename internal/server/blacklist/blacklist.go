// Package blacklist keeps the ids of tokens invalidated by logout or refresh.
// Entries only need to outlive the token itself, so every backend stores them
// with an expiry.
package blacklist

import (
	"context"
	"time"
)

// Store records and checks revoked token ids.
type Store interface {
	// Revoke marks jti as unusable until the given moment. It reports true
	// only for the call that recorded the entry: a repeated revoke, or a
	// deadline already in the past, yields false.
	Revoke(ctx context.Context, jti string, userID int64, until time.Time) (bool, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
