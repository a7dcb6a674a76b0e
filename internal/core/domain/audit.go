package domain

import "time"

// AuditAction is the verb recorded against an audit log entry.
type AuditAction string

const (
	AuditCreate       AuditAction = "create"
	AuditUpdate       AuditAction = "update"
	AuditCancel       AuditAction = "cancel"
	AuditCheckIn      AuditAction = "check-in"
	AuditCheckOut     AuditAction = "check-out"
	AuditAutoCreate   AuditAction = "auto-create"
	AuditMarkMissed   AuditAction = "mark-missed"
	AuditSessionReset AuditAction = "session-reset"
)

// AuditEntityType identifies the kind of entity an audit entry refers to.
type AuditEntityType string

const (
	AuditEntityBooking AuditEntityType = "booking"
	AuditEntityUser    AuditEntityType = "user"
	AuditEntitySeat    AuditEntityType = "seat"
	AuditEntitySession AuditEntityType = "desktop_session"
)

// AuditLog is an append-only record of a mutation. PerformedBy is empty for
// system-initiated actions (scheduler, sweeps). OldValues/NewValues hold
// JSON snapshots; never mutated or deleted once written.
type AuditLog struct {
	AuditID     int64           `json:"auditID"` // Primary Key (bigserial)
	EntityType  AuditEntityType `json:"entityType"`
	EntityID    string          `json:"entityID"`
	Action      AuditAction     `json:"action"`
	PerformedBy string          `json:"performedBy,omitempty"`
	OldValues   []byte          `json:"oldValues,omitempty"`
	NewValues   []byte          `json:"newValues,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
