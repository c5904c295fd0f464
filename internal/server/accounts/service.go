// Package accounts implements the account store: durable keyed storage of
// user records plus the validation rules around creating and reading them.
package accounts

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dmsantos/transferd/internal/common"
	"github.com/dmsantos/transferd/internal/cryptox"
	"github.com/dmsantos/transferd/internal/dbx"
	"github.com/dmsantos/transferd/internal/server/config"
)

type Service struct {
	db             *sql.DB
	provider       RepoProvider
	initialBalance int64
}

// NewService constructs the account store. db may be nil when the provider is
// backed by in-memory storage.
func NewService(db *sql.DB, provider RepoProvider, cfg *config.Config) *Service {
	return &Service{
		db:             db,
		provider:       provider,
		initialBalance: cfg.InitialBalance,
	}
}

func (s *Service) withAtomic(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}

// Create registers a new account with the configured starting balance.
// Returns common.ErrValidation for an empty username or password and
// common.ErrAlreadyExists when the username is taken. Duplicate favorites
// collapse; they are kept in first-seen order.
func (s *Service) Create(ctx context.Context, username, password string, favorites []string) (*Account, error) {
	if username == "" || password == "" {
		return nil, common.ErrValidation
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	account := &Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Balance:      s.initialBalance,
		Favorites:    dedupe(favorites),
		CreatedAt:    time.Now(),
	}

	var created *Account
	err = s.withAtomic(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.provider.Accounts(tx).Create(ctx, account)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get returns the account for username or common.ErrNotFound.
func (s *Service) Get(ctx context.Context, username string) (*Account, error) {
	return s.provider.Accounts(s.db).GetByUsername(ctx, username)
}

// List returns all accounts in insertion order.
func (s *Service) List(ctx context.Context) ([]*Account, error) {
	return s.provider.Accounts(s.db).List(ctx)
}

// ApplyDelta adjusts an account balance and returns the new value. Reserved
// for the transfer engine; nothing else may move money.
func (s *Service) ApplyDelta(ctx context.Context, username string, delta int64) (int64, error) {
	return s.provider.Accounts(s.db).ApplyDelta(ctx, username, delta)
}

// AddFavorite adds favorite to the account's list. Idempotent. The favorite
// need not reference an existing account.
func (s *Service) AddFavorite(ctx context.Context, username, favorite string) error {
	return s.provider.Accounts(s.db).AddFavorite(ctx, username, favorite)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
