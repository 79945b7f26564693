package point

import (
	"context"
	"sync"
)

// MemoryOption configures a memory store.
type MemoryOption func(*memoryStore)

// WithIDGenerator replaces RandomID, mainly for tests.
func WithIDGenerator(gen IDGenerator) MemoryOption {
	return func(s *memoryStore) { s.nextID = gen }
}

// memoryStore guards the whole map with one RWMutex: writers exclude all
// readers and writers, readers proceed concurrently.
type memoryStore struct {
	points map[ID]Point
	nextID IDGenerator
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory Store.
func NewMemoryStore(opts ...MemoryOption) Store {
	s := &memoryStore{
		points: make(map[ID]Point),
		nextID: RandomID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create redraws while the candidate ID is taken, so live IDs stay unique.
func (s *memoryStore) Create(_ context.Context, p Point) (ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID()
	for {
		if _, taken := s.points[id]; !taken {
			break
		}
		id = s.nextID()
	}

	s.points[id] = p
	return id, nil
}

func (s *memoryStore) Read(_ context.Context, id ID) (Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.points[id]
	if !ok {
		return Point{}, &NotFoundError{ID: id}
	}
	return p, nil
}

func (s *memoryStore) Update(_ context.Context, id ID, p Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.points[id]; !ok {
		return &NotFoundError{ID: id}
	}
	s.points[id] = p
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.points, id)
	return nil
}

func (s *memoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}
