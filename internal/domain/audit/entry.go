package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Action classifies what a mutating operation did. Every write through
// the audited store maps to exactly one action.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionStatusChange Action = "statusChange"
	ActionSeed         Action = "seed"
	ActionImport       Action = "import"
)

// IsValid checks if the action is a valid Action
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionStatusChange, ActionSeed, ActionImport:
		return true
	}
	return false
}

// String returns the string representation of Action
func (a Action) String() string {
	return string(a)
}

// Entry is an immutable record of one mutating operation. Entries are
// append-only: once logged they are never edited.
type Entry struct {
	ID          uuid.UUID      `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	User        string         `json:"user"`
	EntityType  string         `json:"entityType"`
	EntityID    *string        `json:"entityId,omitempty"`
	EntityLabel string         `json:"entityLabel"`
	Action      Action         `json:"action"`
	Summary     string         `json:"summary"`
	Before      map[string]any `json:"before,omitempty"`
	After       map[string]any `json:"after,omitempty"`
}

// Sink is the audit trail contract the engine writes through. Log
// receives an entry without an ID and returns the stored entry.
type Sink interface {
	Log(ctx context.Context, entry Entry) (*Entry, error)
	GetByEntity(ctx context.Context, entityType, entityID string) ([]Entry, error)
	GetAll(ctx context.Context, limit int) ([]Entry, error)
	Clear(ctx context.Context) error
}

// Snapshot flattens a record into the field map the diff engine works
// over, using the record's JSON shape. Nested values survive as generic
// maps and slices; the diff deliberately treats them lossily.
func Snapshot(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
