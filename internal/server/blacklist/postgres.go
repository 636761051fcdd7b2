package blacklist

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/revokedtokens"
)

// PostgresStore keeps revocations in the revoked_tokens table. Rows past their
// expiry are ignored by IsRevoked and removed by Purge.
type PostgresStore struct {
	repo revokedtokens.Repository
	now  func() time.Time
}

func NewPostgresStore(repo revokedtokens.Repository) *PostgresStore {
	return &PostgresStore{repo: repo, now: time.Now}
}

func (s *PostgresStore) Revoke(ctx context.Context, jti string, userID int64, until time.Time) (bool, error) {
	if !until.After(s.now()) {
		return false, nil
	}
	return s.repo.Create(ctx, jti, userID, until)
}

func (s *PostgresStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	t, err := s.repo.Find(ctx, jti)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return t.ExpiresAt.After(s.now()), nil
}

// Purge deletes expired rows and reports how many were removed.
func (s *PostgresStore) Purge(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}
