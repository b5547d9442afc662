package gormstore

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordRow is one persisted entity of any kind: the backing table is a
// generic list of JSON documents keyed by (kind, id), mirroring the
// list-backed store the portal uses remotely.
type recordRow struct {
	Kind      string    `gorm:"primaryKey;size:64"`
	ID        string    `gorm:"primaryKey;size:36"`
	Payload   []byte    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Seq       uint64    `gorm:"autoIncrement;uniqueIndex"`
}

// TableName maps recordRow to its table
func (recordRow) TableName() string {
	return "records"
}

// auditEntryRow is one persisted audit entry
type auditEntryRow struct {
	ID         string    `gorm:"primaryKey;size:36"`
	EntityType string    `gorm:"size:64;index:idx_audit_entity"`
	EntityID   *string   `gorm:"size:36;index:idx_audit_entity"`
	Action     string    `gorm:"size:32;not null"`
	Timestamp  time.Time `gorm:"not null;index"`
	Payload    []byte    `gorm:"not null"`
}

// TableName maps auditEntryRow to its table
func (auditEntryRow) TableName() string {
	return "audit_entries"
}

// Open connects to the SQLite database at the given DSN and migrates
// the backing tables.
func Open(dsn string, gormLog logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&recordRow{}, &auditEntryRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}
