package transfers

import (
	"context"
	"sync"
)

// InMemoryRepository is a process-lifetime transfer log.
type InMemoryRepository struct {
	mu  sync.RWMutex
	log []*Transfer
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Append(ctx context.Context, transfer *Transfer) (*Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *transfer
	r.log = append(r.log, &stored)

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) ListByParticipant(ctx context.Context, username string) ([]*Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Transfer, 0)
	for _, t := range r.log {
		if t.From == username || t.To == username {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}
