package items

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu    sync.RWMutex
	items map[string]Item
	order []string
}

// NewMemoryStore creates a Store held in process memory.
func NewMemoryStore() Store {
	return &memoryStore{items: make(map[string]Item)}
}

func (s *memoryStore) List(ctx context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Item, 0, len(s.order))
	for _, id := range slices.Backward(s.order) {
		if item := s.items[id]; item.Active {
			result = append(result, item)
		}
	}

	slices.SortStableFunc(result, func(a, b Item) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}

func (s *memoryStore) Find(ctx context.Context, id string) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *memoryStore) Insert(ctx context.Context, item *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.NewString()
	s.items[item.ID] = *item
	s.order = append(s.order, item.ID)
	return nil
}

func (s *memoryStore) Update(ctx context.Context, id string, c Changes) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	if c.Title != nil {
		item.Title = *c.Title
	}
	if c.Description != nil {
		item.Description = *c.Description
	}
	if c.Category != nil {
		item.Category = *c.Category
	}
	if c.Active != nil {
		item.Active = *c.Active
	}
	if c.UpdatedAt.After(item.UpdatedAt) {
		item.UpdatedAt = c.UpdatedAt
	}

	s.items[id] = item
	return &item, nil
}

func (s *memoryStore) Deactivate(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}

	item.Active = false
	if at.After(item.UpdatedAt) {
		item.UpdatedAt = at
	}
	s.items[id] = item
	return nil
}
