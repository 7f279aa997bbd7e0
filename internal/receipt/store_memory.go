package receipt

import (
	"context"
	"errors"
	"sync"

	"Storefront/internal/cart"
)

var ErrDuplicateReceipt = errors.New("receipt already archived")

type MemStore struct {
	mu    sync.RWMutex
	order []string
	m     map[string]cart.Receipt
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string]cart.Receipt{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Save(ctx context.Context, r cart.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[r.ID]; ok {
		return ErrDuplicateReceipt
	}
	s.m[r.ID] = r
	s.order = append(s.order, r.ID)
	return nil
}

func (s *MemStore) Get(ctx context.Context, id string) (cart.Receipt, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.m[id]
	return r, ok, nil
}

func (s *MemStore) List(ctx context.Context) ([]cart.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]cart.Receipt, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.m[id])
	}
	return out, nil
}
