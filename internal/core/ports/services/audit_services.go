package services

import (
	"context"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// AuditSvcFacade defines operations for recording and reading audit trails.
type AuditSvcFacade interface {
	// RecordAction persists one audit entry. Callers invoke this after commit;
	// failures are logged, never propagated to the caller's operation.
	RecordAction(ctx context.Context, entityType domain.AuditEntityType, entityID string, action domain.AuditAction, performedBy string, oldValues, newValues any)

	// GetEntityTrail retrieves the audit trail for an entity, newest first.
	GetEntityTrail(ctx context.Context, entityType domain.AuditEntityType, entityID string, limit int) ([]domain.AuditLog, error)
}
