package accounts

import (
	"context"
	"sync"

	"github.com/dmsantos/transferd/internal/common"
)

// InMemoryRepository keeps accounts in process memory for the lifetime of the
// service. State is never reset between requests. Accounts returned to
// callers are deep copies.
type InMemoryRepository struct {
	mu    sync.RWMutex
	byKey map[string]*Account
	order []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byKey: make(map[string]*Account)}
}

func (r *InMemoryRepository) Create(ctx context.Context, account *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[account.Username]; ok {
		return nil, common.ErrAlreadyExists
	}

	stored := account.Clone()
	r.byKey[account.Username] = stored
	r.order = append(r.order, account.Username)

	return stored.Clone(), nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byKey[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return account.Clone(), nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Account, 0, len(r.order))
	for _, username := range r.order {
		out = append(out, r.byKey[username].Clone())
	}
	return out, nil
}

func (r *InMemoryRepository) ApplyDelta(ctx context.Context, username string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byKey[username]
	if !ok {
		return 0, common.ErrNotFound
	}
	account.Balance += delta
	return account.Balance, nil
}

func (r *InMemoryRepository) AddFavorite(ctx context.Context, username, favorite string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byKey[username]
	if !ok {
		return common.ErrNotFound
	}
	for _, f := range account.Favorites {
		if f == favorite {
			return nil
		}
	}
	account.Favorites = append(account.Favorites, favorite)
	return nil
}
