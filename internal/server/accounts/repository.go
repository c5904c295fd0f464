package accounts

import (
	"context"

	"github.com/dmsantos/transferd/internal/dbx"
)

// Repository is the storage contract for accounts. Implementations return
// common.ErrAlreadyExists on duplicate usernames and common.ErrNotFound when
// the referenced account is missing.
type Repository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// List returns all accounts in insertion order.
	List(ctx context.Context) ([]*Account, error)

	// ApplyDelta adjusts the balance by delta (which may be negative) and
	// returns the new balance. This is the only balance mutation primitive.
	ApplyDelta(ctx context.Context, username string, delta int64) (int64, error)

	// AddFavorite appends favorite to the account's favorites if not already
	// present. The favorite's own existence is not checked.
	AddFavorite(ctx context.Context, username, favorite string) error
}

// RepoProvider yields a Repository bound to the given handle. A transactional
// handle scopes the repository to that transaction; in-memory implementations
// ignore it.
type RepoProvider interface {
	Accounts(db dbx.DBTX) Repository
}
