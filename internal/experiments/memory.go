package experiments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRecord struct {
	experiment Experiment
	seq        uint64
}

type memoryStore struct {
	mu      sync.RWMutex
	records map[string]*memoryRecord
	seq     uint64
}

// NewMemoryStore creates a Store held in process memory.
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string]*memoryRecord)}
}

func (s *memoryStore) List(ctx context.Context, filters Filters) ([]Experiment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*memoryRecord, 0, len(s.records))
	for _, r := range s.records {
		if !r.experiment.Active {
			continue
		}
		if filters.Category != nil && r.experiment.Category != *filters.Category {
			continue
		}
		matched = append(matched, r)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.experiment.CreatedAt.Equal(b.experiment.CreatedAt) {
			return a.experiment.CreatedAt.After(b.experiment.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]Experiment, len(matched))
	for i, r := range matched {
		result[i] = clone(r.experiment)
	}
	return result, nil
}

func (s *memoryStore) Find(ctx context.Context, id string) (*Experiment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	e := clone(r.experiment)
	return &e, nil
}

func (s *memoryStore) Insert(ctx context.Context, e *Experiment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	s.seq++
	s.records[e.ID] = &memoryRecord{experiment: clone(*e), seq: s.seq}
	return nil
}

func (s *memoryStore) Update(ctx context.Context, id string, c Changes) (*Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	e := &r.experiment
	if c.Title != nil {
		e.Title = *c.Title
	}
	if c.Subtitle != nil {
		e.Subtitle = *c.Subtitle
	}
	if c.Description != nil {
		e.Description = *c.Description
	}
	if c.Category != nil {
		e.Category = *c.Category
	}
	if c.Active != nil {
		e.Active = *c.Active
	}
	if c.Image != nil {
		image := *c.Image
		e.Image = &image
	}
	if c.UpdatedAt.After(e.UpdatedAt) {
		e.UpdatedAt = c.UpdatedAt
	}

	updated := clone(*e)
	return &updated, nil
}

func (s *memoryStore) Deactivate(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}

	r.experiment.Active = false
	if at.After(r.experiment.UpdatedAt) {
		r.experiment.UpdatedAt = at
	}
	return nil
}

func clone(e Experiment) Experiment {
	if e.Image != nil {
		image := *e.Image
		e.Image = &image
	}
	return e
}
