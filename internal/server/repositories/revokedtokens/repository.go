// Package revokedtokens declares the server-side repository holding token ids
// that were invalidated by logout or refresh before their natural expiry.
package revokedtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/storefront/internal/server/models"
)

// Repository defines operations for recording and checking revoked tokens.
type Repository interface {
	// Create records jti as revoked until expiresAt. It reports false when
	// the jti was already present; that is not an error.
	Create(ctx context.Context, jti string, userID int64, expiresAt time.Time) (bool, error)

	// Find returns the entry for jti, or common.ErrorNotFound.
	Find(ctx context.Context, jti string) (*models.RevokedToken, error)

	// DeleteExpired removes entries whose expiry is before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
