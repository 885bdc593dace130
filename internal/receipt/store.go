package receipt

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator generates unique IDs for receipts
type IDGenerator interface {
	Generate() string
}

// uuidGenerator generates random v4 UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// Store holds processed receipts in memory, keyed by id.
// It is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	receipts    map[string]StoredReceipt
	idGenerator IDGenerator
}

// NewStore creates an empty Store that assigns v4 UUIDs
func NewStore() *Store {
	return NewStoreWithIDGenerator(&uuidGenerator{})
}

// NewStoreWithIDGenerator creates an empty Store with a custom ID generator for testing
func NewStoreWithIDGenerator(idGen IDGenerator) *Store {
	return &Store{
		receipts:    make(map[string]StoredReceipt),
		idGenerator: idGen,
	}
}

// Insert scores r, stores it under a fresh id and returns that id.
// An id already in use is regenerated, never overwritten.
func (s *Store) Insert(r Receipt) (string, error) {
	points, err := Points(r)
	if err != nil {
		return "", fmt.Errorf("calculating points: %w", err)
	}
	data := r.clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.idGenerator.Generate()
	for {
		if _, taken := s.receipts[id]; !taken {
			break
		}
		id = s.idGenerator.Generate()
	}

	s.receipts[id] = StoredReceipt{ID: id, Points: points, Data: data}
	return id, nil
}

// Get returns the receipt stored under id
func (s *Store) Get(id string) (StoredReceipt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.receipts[id]
	if !ok {
		return StoredReceipt{}, false
	}
	return stored.clone(), true
}

// Delete removes the receipt stored under id and reports whether it existed
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.receipts[id]; !ok {
		return false
	}
	delete(s.receipts, id)
	return true
}

// List returns every stored receipt in no particular order
func (s *Store) List() []StoredReceipt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	receipts := make([]StoredReceipt, 0, len(s.receipts))
	for _, r := range s.receipts {
		receipts = append(receipts, r.clone())
	}
	return receipts
}

// Len returns the number of stored receipts
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.receipts)
}
