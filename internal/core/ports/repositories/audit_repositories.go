package repositories

import (
	"context"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// AuditLogWriter defines write operations for audit log data
type AuditLogWriter interface {
	// SaveAuditLog persists one audit entry.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// AuditLogReader defines read operations for audit log data
type AuditLogReader interface {
	// ListAuditLogsByEntity retrieves the audit trail for an entity, newest first.
	ListAuditLogsByEntity(ctx context.Context, entityType domain.AuditEntityType, entityID string, limit int) ([]domain.AuditLog, error)
}

// AuditLogRepositoryFacade combines the audit log repository interfaces
type AuditLogRepositoryFacade interface {
	AuditLogReader
	AuditLogWriter
}
