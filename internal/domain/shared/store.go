package shared

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence contract one entity kind is served through.
// Save is an upsert keyed on the entity identifier: a zero ID means
// create, a non-zero ID means update. Get returns ErrNotFound for an
// unknown identifier so callers can tell "absent" from a backend failure.
//
// Two interchangeable implementations exist behind this contract (an
// in-memory store and a database-backed store); neither performs any
// optimistic-concurrency arbitration.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Save(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SeedData(ctx context.Context, entities []T) error
	ExportAll(ctx context.Context) ([]T, error)
	ImportAll(ctx context.Context, entities []T) error
	ClearAllData(ctx context.Context) error
}

// Identity adapts a stored entity type to its identifier field so
// generic store implementations can read and assign IDs.
type Identity[T any] struct {
	Get func(*T) uuid.UUID
	Set func(*T, uuid.UUID)
}

// EntityIdentity builds an Identity for types embedding BaseEntity.
func EntityIdentity[T any](base func(*T) *BaseEntity) Identity[T] {
	return Identity[T]{
		Get: func(e *T) uuid.UUID { return base(e).ID },
		Set: func(e *T, id uuid.UUID) { base(e).ID = id },
	}
}
