package db

import (
	"context"
	"database/sql"

	"github.com/dmsantos/transferd/internal/dbx"
	"github.com/dmsantos/transferd/internal/server/accounts"
	"github.com/dmsantos/transferd/internal/server/transfers"
)

// InMemoryRepositoryManager serves singleton in-memory repositories. State is
// process-wide and lives until the service stops.
type InMemoryRepositoryManager struct {
	accounts  *accounts.InMemoryRepository
	transfers *transfers.InMemoryRepository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return m.accounts
}

func (m *InMemoryRepositoryManager) Transfers(db dbx.DBTX) transfers.Repository {
	return m.transfers
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		accounts:  accounts.NewInMemoryRepository(),
		transfers: transfers.NewInMemoryRepository(),
	}
}
