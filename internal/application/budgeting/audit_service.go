package budgeting

import (
	"context"

	"github.com/propertyportal/budgeting/internal/domain/audit"
	"go.uber.org/zap"
)

// AuditService serves the change-history read side: the recent-activity
// feed and per-entity histories. Writes happen inside the audited
// stores, never here.
type AuditService struct {
	sink        audit.Sink
	recentLimit int
	log         *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(sink audit.Sink, recentLimit int, log *zap.Logger) *AuditService {
	if recentLimit <= 0 {
		recentLimit = 50
	}
	return &AuditService{sink: sink, recentLimit: recentLimit, log: log.Named("audit_service")}
}

// Recent returns the newest entries across all entity kinds. A limit of
// zero or less falls back to the configured default.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = s.recentLimit
	}
	return s.sink.GetAll(ctx, limit)
}

// History returns all entries for one entity, newest first
func (s *AuditService) History(ctx context.Context, entityType, entityID string) ([]audit.Entry, error) {
	return s.sink.GetByEntity(ctx, entityType, entityID)
}

// Clear wipes the audit trail
func (s *AuditService) Clear(ctx context.Context) error {
	if err := s.sink.Clear(ctx); err != nil {
		return err
	}
	s.log.Warn("audit trail cleared")
	return nil
}
