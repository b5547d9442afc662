package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/audit"
)

// Sink is the in-memory audit trail. Entries are append-only and
// returned newest first.
type Sink struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

// NewSink creates an empty in-memory audit sink
func NewSink() *Sink {
	return &Sink{}
}

// Log stores the entry, assigning identifier and timestamp when absent
func (s *Sink) Log(ctx context.Context, entry audit.Entry) (*audit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	s.entries = append(s.entries, entry)

	stored := entry
	return &stored, nil
}

// GetByEntity returns the history of one entity, newest first
func (s *Sink) GetByEntity(ctx context.Context, entityType, entityID string) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []audit.Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if e.EntityType != entityType {
			continue
		}
		if e.EntityID == nil || *e.EntityID != entityID {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// GetAll returns recent entries, newest first, capped at limit when positive
func (s *Sink) GetAll(ctx context.Context, limit int) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]audit.Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		result = append(result, s.entries[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

// Clear wipes the trail
func (s *Sink) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return nil
}
