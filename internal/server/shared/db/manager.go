// Package db wires concrete repository implementations behind a single
// manager so the rest of the server does not care whether state lives in
// PostgreSQL or in process memory.
package db

import (
	"context"
	"database/sql"

	"github.com/dmsantos/transferd/internal/dbx"
	"github.com/dmsantos/transferd/internal/server/accounts"
	"github.com/dmsantos/transferd/internal/server/transfers"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error

	// Conn returns the underlying handle, or nil for the in-memory backend.
	Conn() *sql.DB

	Accounts(db dbx.DBTX) accounts.Repository
	Transfers(db dbx.DBTX) transfers.Repository
}
