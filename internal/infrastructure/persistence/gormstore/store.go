package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/shared"
	"gorm.io/gorm"
)

// Store is the database-backed implementation of the entity store
// contract. Each entity kind lives in the shared records table as JSON
// documents; List returns records in insertion order.
type Store[T any] struct {
	db       *gorm.DB
	kind     string
	identity shared.Identity[T]
}

// NewStore creates a store for one entity kind
func NewStore[T any](db *gorm.DB, kind string, identity shared.Identity[T]) *Store[T] {
	return &Store[T]{db: db, kind: kind, identity: identity}
}

// List returns all records of this kind in insertion order
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	var rows []recordRow
	if err := s.db.WithContext(ctx).
		Where("kind = ?", s.kind).
		Order("seq asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]T, 0, len(rows))
	for _, row := range rows {
		var entity T
		if err := json.Unmarshal(row.Payload, &entity); err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	return result, nil
}

// Get returns the record with the given ID or shared.ErrNotFound
func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var row recordRow
	if err := s.db.WithContext(ctx).
		Where("kind = ? AND id = ?", s.kind, id.String()).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var entity T
	if err := json.Unmarshal(row.Payload, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// Save upserts the entity: a zero ID gets a generated identifier
func (s *Store[T]) Save(ctx context.Context, entity *T) (*T, error) {
	id := s.identity.Get(entity)
	if id == uuid.Nil {
		id = uuid.New()
		s.identity.Set(entity, id)
	}

	payload, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing recordRow
		findErr := tx.Where("kind = ? AND id = ?", s.kind, id.String()).First(&existing).Error
		switch {
		case findErr == nil:
			return tx.Model(&recordRow{}).
				Where("kind = ? AND id = ?", s.kind, id.String()).
				Updates(map[string]any{"payload": payload, "updated_at": now}).Error
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			return tx.Create(&recordRow{
				Kind:      s.kind,
				ID:        id.String(),
				Payload:   payload,
				CreatedAt: now,
				UpdatedAt: now,
			}).Error
		default:
			return findErr
		}
	})
	if err != nil {
		return nil, err
	}

	var stored T
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Delete removes the record with the given ID
func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("kind = ? AND id = ?", s.kind, id.String()).
		Delete(&recordRow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SeedData loads reference records, replacing any existing content
func (s *Store[T]) SeedData(ctx context.Context, entities []T) error {
	return s.replaceAll(ctx, entities)
}

// ExportAll returns every record for bulk transfer
func (s *Store[T]) ExportAll(ctx context.Context) ([]T, error) {
	return s.List(ctx)
}

// ImportAll replaces the store content with the imported records
func (s *Store[T]) ImportAll(ctx context.Context, entities []T) error {
	return s.replaceAll(ctx, entities)
}

// ClearAllData wipes every record of this kind
func (s *Store[T]) ClearAllData(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("kind = ?", s.kind).
		Delete(&recordRow{}).Error
}

func (s *Store[T]) replaceAll(ctx context.Context, entities []T) error {
	now := time.Now()
	rows := make([]recordRow, 0, len(entities))
	for i := range entities {
		entity := entities[i]
		id := s.identity.Get(&entity)
		if id == uuid.Nil {
			id = uuid.New()
			s.identity.Set(&entity, id)
		}
		payload, err := json.Marshal(&entity)
		if err != nil {
			return err
		}
		rows = append(rows, recordRow{
			Kind:      s.kind,
			ID:        id.String(),
			Payload:   payload,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kind = ?", s.kind).Delete(&recordRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
