package mapping

import (
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	"github.com/SeatLogix/desk_booking_app/internal/models"
)

// ToModelAuditLog converts a domain AuditLog to a model AuditLog
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		AuditID:     d.AuditID,
		EntityType:  string(d.EntityType),
		EntityID:    d.EntityID,
		Action:      string(d.Action),
		PerformedBy: d.PerformedBy,
		OldValues:   d.OldValues,
		NewValues:   d.NewValues,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLog
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		AuditID:     m.AuditID,
		EntityType:  domain.AuditEntityType(m.EntityType),
		EntityID:    m.EntityID,
		Action:      domain.AuditAction(m.Action),
		PerformedBy: m.PerformedBy,
		OldValues:   m.OldValues,
		NewValues:   m.NewValues,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainAuditLogSlice converts a slice of model AuditLogs to domain ones
func ToDomainAuditLogSlice(ms []models.AuditLog) []domain.AuditLog {
	ds := make([]domain.AuditLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditLog(m)
	}
	return ds
}
