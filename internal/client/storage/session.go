package storage

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
)

// SessionStorage keeps the token and the cached user under the "token" and
// "user" keys. Writes touching both keys run in one transaction so a crash
// never leaves a token without its user.
type SessionStorage struct {
	db *sql.DB
}

func NewSessionStorage(db *sql.DB) *SessionStorage {
	return &SessionStorage{db: db}
}

// Load returns whatever is stored; either value may be empty.
func (s *SessionStorage) Load(ctx context.Context) (token, user string, err error) {
	repo := NewSQLiteRepository(s.db)

	token, _, err = repo.Get(ctx, common.StorageKeyToken)
	if err != nil {
		return "", "", err
	}
	user, _, err = repo.Get(ctx, common.StorageKeyUser)
	if err != nil {
		return "", "", err
	}
	return token, user, nil
}

// Save stores both keys atomically.
func (s *SessionStorage) Save(ctx context.Context, token, user string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.StorageKeyToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, common.StorageKeyUser, user)
	})
}

// SaveUser replaces only the cached user.
func (s *SessionStorage) SaveUser(ctx context.Context, user string) error {
	return NewSQLiteRepository(s.db).Set(ctx, common.StorageKeyUser, user)
}

// Clear removes both keys atomically.
func (s *SessionStorage) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.StorageKeyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, common.StorageKeyUser)
	})
}
