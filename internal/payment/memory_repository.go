package payment

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.Mutex
	payments map[string]Payment
}

// NewMemoryRepository builds a concurrency-safe in-memory payment store for
// development and tests. UpdateStatus applies the same compare-and-set
// semantics as the Postgres implementation.
func NewMemoryRepository() Repository {
	return &memoryRepository{payments: make(map[string]Payment)}
}

func (r *memoryRepository) Create(_ context.Context, p Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[p.ID] = p
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return Payment{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) ListAll(_ context.Context) ([]Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payments := make([]Payment, 0, len(r.payments))
	for _, p := range r.payments {
		payments = append(payments, p)
	}
	sortByCreation(payments)
	return payments, nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payments := []Payment{}
	for _, p := range r.payments {
		if p.OwnerID == ownerID {
			payments = append(payments, p)
		}
	}
	sortByCreation(payments)
	return payments, nil
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id string, from, to Status) (Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return Payment{}, ErrNotFound
	}
	if p.Status != from {
		return Payment{}, ErrInvalidTransition
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	r.payments[id] = p
	return p, nil
}

func sortByCreation(payments []Payment) {
	sort.Slice(payments, func(i, j int) bool {
		if payments[i].CreatedAt.Equal(payments[j].CreatedAt) {
			return payments[i].ID < payments[j].ID
		}
		return payments[i].CreatedAt.Before(payments[j].CreatedAt)
	})
}
