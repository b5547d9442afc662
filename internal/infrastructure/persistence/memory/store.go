package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/shared"
)

// Store is the in-memory implementation of the entity store contract.
// Records are deep-copied through JSON on the way in and out so callers
// never share state with the store. List order is insertion order.
type Store[T any] struct {
	mu       sync.RWMutex
	records  map[uuid.UUID]T
	order    []uuid.UUID
	identity shared.Identity[T]
}

// NewStore creates an empty in-memory store for one entity kind
func NewStore[T any](identity shared.Identity[T]) *Store[T] {
	return &Store[T]{
		records:  make(map[uuid.UUID]T),
		identity: identity,
	}
}

// List returns all records in insertion order
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.order))
	for _, id := range s.order {
		record, err := clone(s.records[id])
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, nil
}

// Get returns the record with the given ID or shared.ErrNotFound
func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied, err := clone(record)
	if err != nil {
		return nil, err
	}
	return &copied, nil
}

// Save upserts the entity: a zero ID gets a generated identifier
func (s *Store[T]) Save(ctx context.Context, entity *T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.identity.Get(entity)
	if id == uuid.Nil {
		id = uuid.New()
		s.identity.Set(entity, id)
	}
	stored, err := clone(*entity)
	if err != nil {
		return nil, err
	}
	if _, exists := s.records[id]; !exists {
		s.order = append(s.order, id)
	}
	s.records[id] = stored

	result, err := clone(stored)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes the record with the given ID
func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// SeedData loads reference records, replacing any existing content
func (s *Store[T]) SeedData(ctx context.Context, entities []T) error {
	return s.replaceAll(entities)
}

// ExportAll returns every record for bulk transfer
func (s *Store[T]) ExportAll(ctx context.Context) ([]T, error) {
	return s.List(ctx)
}

// ImportAll replaces the store content with the imported records
func (s *Store[T]) ImportAll(ctx context.Context, entities []T) error {
	return s.replaceAll(entities)
}

// ClearAllData wipes the store
func (s *Store[T]) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[uuid.UUID]T)
	s.order = nil
	return nil
}

func (s *Store[T]) replaceAll(entities []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[uuid.UUID]T, len(entities))
	s.order = make([]uuid.UUID, 0, len(entities))
	for i := range entities {
		entity := entities[i]
		id := s.identity.Get(&entity)
		if id == uuid.Nil {
			id = uuid.New()
			s.identity.Set(&entity, id)
		}
		stored, err := clone(entity)
		if err != nil {
			return err
		}
		if _, exists := s.records[id]; !exists {
			s.order = append(s.order, id)
		}
		s.records[id] = stored
	}
	return nil
}

func clone[T any](record T) (T, error) {
	var copied T
	data, err := json.Marshal(record)
	if err != nil {
		return copied, err
	}
	if err := json.Unmarshal(data, &copied); err != nil {
		return copied, err
	}
	return copied, nil
}
