// Package transfers implements the transfer engine: validation and atomic
// execution of balance movements between two accounts, plus the transfer log.
package transfers

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmsantos/transferd/internal/common"
	"github.com/dmsantos/transferd/internal/dbx"
)

type Service struct {
	db       *sql.DB
	provider RepoProvider

	// locks serializes the debit+credit pair per account so concurrent
	// transfers touching the same account never interleave their
	// read-modify-write of the balance.
	locks *accountLocks
}

// NewService constructs the transfer engine. db may be nil when the provider
// is backed by in-memory storage.
func NewService(db *sql.DB, provider RepoProvider) *Service {
	return &Service{
		db:       db,
		provider: provider,
		locks:    newAccountLocks(),
	}
}

func (s *Service) withAtomic(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}

// Execute validates and commits a transfer of value from one account to
// another. actingUser is the authenticated principal; an account may only
// initiate transfers as itself.
//
// Failure ladder: common.ErrUnauthorized when actingUser != from,
// common.ErrNotFound when either endpoint is missing, common.ErrInvalidValue
// for value <= 0 or a self-transfer. On any failure no balance changes and no
// record is appended. Overdrafts are permitted: the resulting sender balance
// may go negative.
func (s *Service) Execute(ctx context.Context, from, to string, value int64, actingUser string) (*Transfer, error) {
	if actingUser != from {
		return nil, common.ErrUnauthorized
	}

	unlock := s.locks.lockPair(from, to)
	defer unlock()

	var committed *Transfer
	err := s.withAtomic(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		accountRepo := s.provider.Accounts(tx)

		if _, err := accountRepo.GetByUsername(ctx, from); err != nil {
			return err
		}
		if from != to {
			if _, err := accountRepo.GetByUsername(ctx, to); err != nil {
				return err
			}
		}

		if value <= 0 || from == to {
			return common.ErrInvalidValue
		}

		if _, err := accountRepo.ApplyDelta(ctx, from, -value); err != nil {
			return err
		}
		if _, err := accountRepo.ApplyDelta(ctx, to, value); err != nil {
			return err
		}

		record := &Transfer{
			ID:        uuid.NewString(),
			From:      from,
			To:        to,
			Value:     value,
			CreatedAt: time.Now(),
		}

		var err error
		committed, err = s.provider.Transfers(tx).Append(ctx, record)
		return err
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}

// ListFor returns the transfers where actingUser is sender or receiver, in
// insertion order. The result may be empty.
func (s *Service) ListFor(ctx context.Context, actingUser string) ([]*Transfer, error) {
	return s.provider.Transfers(s.db).ListByParticipant(ctx, actingUser)
}

// accountLocks hands out one mutex per username and acquires pairs in
// lexicographic order so two engines locking (a,b) and (b,a) cannot deadlock.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *accountLocks) get(name string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	return m
}

func (l *accountLocks) lockPair(a, b string) func() {
	if a == b {
		m := l.get(a)
		m.Lock()
		return m.Unlock
	}
	if b < a {
		a, b = b, a
	}
	first, second := l.get(a), l.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
