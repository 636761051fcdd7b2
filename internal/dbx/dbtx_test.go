package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// sessionDB returns an in-memory SQLite database shaped like the client
// key/value store.
func sessionDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE kv_store (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func putSession(ctx context.Context, tx DBTX, token, user string) error {
	for k, v := range map[string]string{"token": token, "user": user} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kv_store(key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
			return err
		}
	}
	return nil
}

func storedKeys(t *testing.T, db *sql.DB) map[string]string {
	t.Helper()
	rows, err := db.Query(`SELECT key, value FROM kv_store`)
	require.NoError(t, err)
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		require.NoError(t, rows.Scan(&k, &v))
		out[k] = v
	}
	require.NoError(t, rows.Err())
	return out
}

func TestWithTx_SessionWrittenTogether(t *testing.T) {
	db := sessionDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return putSession(ctx, tx, "jwt-1", `{"id":1}`)
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"token": "jwt-1", "user": `{"id":1}`}, storedKeys(t, db))
}

func TestWithTx_FailedUserWriteKeepsPreviousSession(t *testing.T) {
	db := sessionDB(t)
	ctx := context.Background()
	require.NoError(t, WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		return putSession(ctx, tx, "old", `{"id":1}`)
	}))

	errUser := errors.New("encode user")
	err := WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `UPDATE kv_store SET value = 'new' WHERE key = 'token'`); err != nil {
			return err
		}
		return errUser
	})

	require.ErrorIs(t, err, errUser)
	assert.Equal(t, "old", storedKeys(t, db)["token"])
}

func TestWithTx_PanicRollsBackAndRethrows(t *testing.T) {
	db := sessionDB(t)

	assert.PanicsWithValue(t, "lost terminal", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO kv_store(key, value) VALUES ('token', 'half')`)
			require.NoError(t, err)
			panic("lost terminal")
		})
	})
	assert.Empty(t, storedKeys(t, db))
}

func TestWithTx_BeginFailsOnClosedDB(t *testing.T) {
	db := sessionDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	require.ErrorContains(t, err, "begin tx")
	assert.False(t, called)
}

func TestWithTx_ExposesRowsAffected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM revoked_tokens`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	var purged int64
	err = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < now()`)
		if err != nil {
			return err
		}
		purged, err = res.RowsAffected()
		return err
	})

	require.NoError(t, err)
	assert.EqualValues(t, 3, purged)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return nil })
	require.ErrorContains(t, err, "commit: connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackErrorJoined(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("server gone"))

	errInsert := errors.New("duplicate jti")
	err = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return errInsert })

	require.ErrorIs(t, err, errInsert)
	require.ErrorContains(t, err, "rollback: server gone")
	require.NoError(t, mock.ExpectationsWereMet())
}
