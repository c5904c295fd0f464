package transfers

import (
	"context"

	"github.com/dmsantos/transferd/internal/dbx"
	"github.com/dmsantos/transferd/internal/server/accounts"
)

// Repository is the append-only transfer log.
type Repository interface {
	Append(ctx context.Context, transfer *Transfer) (*Transfer, error)

	// ListByParticipant returns transfers where username is sender or
	// receiver, in insertion order.
	ListByParticipant(ctx context.Context, username string) ([]*Transfer, error)
}

// RepoProvider yields the repositories the engine needs, bound to a common
// handle so the debit/credit pair and the log append share one transaction.
type RepoProvider interface {
	Accounts(db dbx.DBTX) accounts.Repository
	Transfers(db dbx.DBTX) Repository
}
