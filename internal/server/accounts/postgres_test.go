package accounts

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmsantos/transferd/internal/common"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPostgresRepository_Create(t *testing.T) {
	ctx := context.Background()

	account := &Account{
		ID:           "id-1",
		Username:     "alice",
		PasswordHash: []byte("hash"),
		Balance:      10000,
		Favorites:    []string{"julio"},
		CreatedAt:    time.Now(),
	}

	t.Run("success inserts account and favorites", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		r := NewPostgresRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO accounts`)).
			WithArgs(account.ID, account.Username, account.PasswordHash, account.Balance, account.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO account_favorites`)).
			WithArgs(account.ID, "julio").
			WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := r.Create(ctx, account)
		require.NoError(t, err)
		assert.Equal(t, "alice", created.Username)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		r := NewPostgresRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO accounts`)).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

		_, err := r.Create(ctx, account)
		assert.ErrorIs(t, err, common.ErrAlreadyExists)
	})
}

func TestPostgresRepository_GetByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		r := NewPostgresRepository(db)

		created := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash, balance, created_at FROM accounts`)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "balance", "created_at"}).
				AddRow("id-1", "alice", []byte("hash"), int64(10000), created))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT favorite FROM account_favorites`)).
			WithArgs("id-1").
			WillReturnRows(sqlmock.NewRows([]string{"favorite"}).AddRow("julio"))

		account, err := r.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(10000), account.Balance)
		assert.Equal(t, []string{"julio"}, account.Favorites)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing maps to not found", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		r := NewPostgresRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash, balance, created_at FROM accounts`)).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := r.GetByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestPostgresRepository_ApplyDelta(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the new balance", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		r := NewPostgresRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE accounts SET balance = balance + $1`)).
			WithArgs(int64(-100), "alice").
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(9900)))

		balance, err := r.ApplyDelta(ctx, "alice", -100)
		require.NoError(t, err)
		assert.Equal(t, int64(9900), balance)
	})

	t.Run("missing account maps to not found", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		r := NewPostgresRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE accounts SET balance = balance + $1`)).
			WithArgs(int64(100), "ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := r.ApplyDelta(ctx, "ghost", 100)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestPostgresRepository_AddFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts with conflict ignored", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		r := NewPostgresRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM accounts`)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("id-1"))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO account_favorites`)).
			WithArgs("id-1", "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, r.AddFavorite(ctx, "alice", "bob"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown account maps to not found", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		r := NewPostgresRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM accounts`)).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		assert.ErrorIs(t, r.AddFavorite(ctx, "ghost", "bob"), common.ErrNotFound)
	})
}
