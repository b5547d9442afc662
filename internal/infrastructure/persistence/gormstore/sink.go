package gormstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/audit"
	"gorm.io/gorm"
)

// Sink is the database-backed audit trail. Entries are append-only;
// queries return newest first.
type Sink struct {
	db *gorm.DB
}

// NewSink creates a database-backed audit sink
func NewSink(db *gorm.DB) *Sink {
	return &Sink{db: db}
}

// Log stores the entry, assigning identifier and timestamp when absent
func (s *Sink) Log(ctx context.Context, entry audit.Entry) (*audit.Entry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	row := auditEntryRow{
		ID:         entry.ID.String(),
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action.String(),
		Timestamp:  entry.Timestamp,
		Payload:    payload,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetByEntity returns the history of one entity, newest first
func (s *Sink) GetByEntity(ctx context.Context, entityType, entityID string) ([]audit.Entry, error) {
	var rows []auditEntryRow
	if err := s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("timestamp desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return decodeEntries(rows)
}

// GetAll returns recent entries, newest first, capped at limit when positive
func (s *Sink) GetAll(ctx context.Context, limit int) ([]audit.Entry, error) {
	query := s.db.WithContext(ctx).Order("timestamp desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []auditEntryRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return decodeEntries(rows)
}

// Clear wipes the trail
func (s *Sink) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&auditEntryRow{}).Error
}

func decodeEntries(rows []auditEntryRow) ([]audit.Entry, error) {
	entries := make([]audit.Entry, 0, len(rows))
	for _, row := range rows {
		var entry audit.Entry
		if err := json.Unmarshal(row.Payload, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
