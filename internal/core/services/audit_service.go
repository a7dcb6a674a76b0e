package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
)

// auditService implements the AuditSvcFacade interface. Recording is best
// effort: the caller's operation has already committed, so failures here are
// logged and swallowed.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditLogRepositoryFacade
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo portsrepo.AuditLogRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{
		auditRepo: auditRepo,
	}
}

// Ensure auditService implements the AuditSvcFacade interface
var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// RecordAction persists one audit entry with JSON snapshots of the entity
// before and after the mutation.
func (s *auditService) RecordAction(ctx context.Context, entityType domain.AuditEntityType, entityID string, action domain.AuditAction, performedBy string, oldValues, newValues any) {
	entry := domain.AuditLog{
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		PerformedBy: performedBy,
		CreatedAt:   time.Now(),
	}

	var err error
	if entry.OldValues, err = marshalSnapshot(oldValues); err != nil {
		s.LogError(ctx, err, "Failed to marshal audit old values", slog.String("entity_id", entityID))
		return
	}
	if entry.NewValues, err = marshalSnapshot(newValues); err != nil {
		s.LogError(ctx, err, "Failed to marshal audit new values", slog.String("entity_id", entityID))
		return
	}

	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save audit log",
			slog.String("entity_type", string(entityType)),
			slog.String("entity_id", entityID),
			slog.String("action", string(action)))
	}
}

func marshalSnapshot(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// GetEntityTrail retrieves the audit trail for an entity, newest first.
func (s *auditService) GetEntityTrail(ctx context.Context, entityType domain.AuditEntityType, entityID string, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.auditRepo.ListAuditLogsByEntity(ctx, entityType, entityID, limit)
}
