// Package audited decorates an entity store with audit logging.
// The wrapper implements the same store contract as its target, so the
// two real backends stay fully interchangeable and audit-agnostic.
package audited

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/audit"
	"github.com/propertyportal/budgeting/internal/domain/shared"
	"go.uber.org/zap"
)

// Config describes how one entity kind is audited. The acting user is
// fixed at construction, not re-derived per call.
type Config[T any] struct {
	EntityType string
	User       string
	Identity   shared.Identity[T]
	// Label renders the human-readable identity used in summaries
	Label func(*T) string
	// StatusField names the snapshot field whose lone change refines an
	// update into a statusChange entry. Empty disables the refinement.
	StatusField string
	// IgnoreFields extends the diff engine's default ignore set
	IgnoreFields []string
	// MaxSummaryFields caps summary clauses; zero applies the default
	MaxSummaryFields int
}

// Store wraps an inner entity store with before/after diffing and audit
// logging around every write. Reads pass through untouched. Logging
// happens strictly after the inner write succeeds; a failed write
// produces no entry, and a failed audit log never rolls the write back.
type Store[T any] struct {
	inner shared.Store[T]
	sink  audit.Sink
	log   *zap.Logger
	cfg   Config[T]
}

// NewStore decorates the inner store
func NewStore[T any](inner shared.Store[T], sink audit.Sink, log *zap.Logger, cfg Config[T]) *Store[T] {
	if cfg.Label == nil {
		cfg.Label = func(*T) string { return cfg.EntityType }
	}
	return &Store[T]{inner: inner, sink: sink, log: log, cfg: cfg}
}

// List passes through with no logging
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	return s.inner.List(ctx)
}

// Get passes through with no logging
func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	return s.inner.Get(ctx, id)
}

// ExportAll passes through with no logging
func (s *Store[T]) ExportAll(ctx context.Context) ([]T, error) {
	return s.inner.ExportAll(ctx)
}

// Save reads the prior record, delegates the write, then classifies:
// no prior record means create; prior present with only the status
// field differing means statusChange; anything else is an update.
// The prior read must happen before the inner write, since the diff
// depends on a snapshot strictly older than the write's effect.
func (s *Store[T]) Save(ctx context.Context, entity *T) (*T, error) {
	var prior *T
	if id := s.cfg.Identity.Get(entity); id != uuid.Nil {
		existing, err := s.inner.Get(ctx, id)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		prior = existing
	}

	stored, err := s.inner.Save(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.logSave(ctx, prior, stored)
	return stored, nil
}

// Delete captures the record's identity before delegating; the entry
// records former id and label only, with no diff payload.
func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	prior, err := s.inner.Get(ctx, id)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	if err := s.inner.Delete(ctx, id); err != nil {
		return err
	}

	label := s.cfg.EntityType
	if prior != nil {
		label = s.cfg.Label(prior)
	}
	entityID := id.String()
	s.record(ctx, audit.Entry{
		User:        s.cfg.User,
		EntityType:  s.cfg.EntityType,
		EntityID:    &entityID,
		EntityLabel: label,
		Action:      audit.ActionDelete,
		Summary:     fmt.Sprintf("Deleted %s %q", s.cfg.EntityType, label),
	})
	return nil
}

// SeedData logs one seed entry per call, not per record
func (s *Store[T]) SeedData(ctx context.Context, entities []T) error {
	if err := s.inner.SeedData(ctx, entities); err != nil {
		return err
	}
	s.record(ctx, audit.Entry{
		User:        s.cfg.User,
		EntityType:  s.cfg.EntityType,
		EntityLabel: s.cfg.EntityType,
		Action:      audit.ActionSeed,
		Summary:     fmt.Sprintf("Seeded %d %s records", len(entities), s.cfg.EntityType),
	})
	return nil
}

// ImportAll logs one import entry per call, not per record
func (s *Store[T]) ImportAll(ctx context.Context, entities []T) error {
	if err := s.inner.ImportAll(ctx, entities); err != nil {
		return err
	}
	s.record(ctx, audit.Entry{
		User:        s.cfg.User,
		EntityType:  s.cfg.EntityType,
		EntityLabel: s.cfg.EntityType,
		Action:      audit.ActionImport,
		Summary:     fmt.Sprintf("Imported %d %s records", len(entities), s.cfg.EntityType),
	})
	return nil
}

// ClearAllData logs a single wipe entry after the inner clear succeeds
func (s *Store[T]) ClearAllData(ctx context.Context) error {
	if err := s.inner.ClearAllData(ctx); err != nil {
		return err
	}
	s.record(ctx, audit.Entry{
		User:        s.cfg.User,
		EntityType:  s.cfg.EntityType,
		EntityLabel: s.cfg.EntityType,
		Action:      audit.ActionDelete,
		Summary:     fmt.Sprintf("Cleared all %s records", s.cfg.EntityType),
	})
	return nil
}

func (s *Store[T]) logSave(ctx context.Context, prior, stored *T) {
	label := s.cfg.Label(stored)
	entityID := s.cfg.Identity.Get(stored).String()

	after, err := audit.Snapshot(stored)
	if err != nil {
		s.snapshotFailed(err)
		return
	}

	if prior == nil {
		s.record(ctx, audit.Entry{
			User:        s.cfg.User,
			EntityType:  s.cfg.EntityType,
			EntityID:    &entityID,
			EntityLabel: label,
			Action:      audit.ActionCreate,
			Summary:     fmt.Sprintf("Created %s %q", s.cfg.EntityType, label),
			After:       after,
		})
		return
	}

	before, err := audit.Snapshot(prior)
	if err != nil {
		s.snapshotFailed(err)
		return
	}
	changes := audit.DiffChanges(before, after, s.cfg.IgnoreFields...)

	action := audit.ActionUpdate
	summary := audit.SummariseChanges(
		fmt.Sprintf("Updated %s %q", s.cfg.EntityType, label),
		changes,
		s.cfg.MaxSummaryFields,
	)
	if s.cfg.StatusField != "" && len(changes) == 1 && changes[0].Field == s.cfg.StatusField {
		action = audit.ActionStatusChange
		summary = fmt.Sprintf("Status changed from %s to %s",
			audit.FormatValue(changes[0].From), audit.FormatValue(changes[0].To))
	}

	s.record(ctx, audit.Entry{
		User:        s.cfg.User,
		EntityType:  s.cfg.EntityType,
		EntityID:    &entityID,
		EntityLabel: label,
		Action:      action,
		Summary:     summary,
		Before:      before,
		After:       after,
	})
}

// record logs to the sink. A sink failure is surfaced through the
// logger, never returned: the domain write already succeeded and is
// not rolled back.
func (s *Store[T]) record(ctx context.Context, entry audit.Entry) {
	if _, err := s.sink.Log(ctx, entry); err != nil {
		s.log.Error("audit log write failed",
			zap.String("entity_type", entry.EntityType),
			zap.String("action", entry.Action.String()),
			zap.Error(err),
		)
	}
}

func (s *Store[T]) snapshotFailed(err error) {
	s.log.Error("audit snapshot failed",
		zap.String("entity_type", s.cfg.EntityType),
		zap.Error(err),
	)
}
