package models

import "time"

// AuditLog records a state change against an entity. OldValues/NewValues
// hold JSON snapshots and map to jsonb columns.
type AuditLog struct {
	AuditID     int64     `db:"audit_id"`
	EntityType  string    `db:"entity_type"`
	EntityID    string    `db:"entity_id"`
	Action      string    `db:"action"`
	PerformedBy string    `db:"performed_by"`
	OldValues   []byte    `db:"old_values"`
	NewValues   []byte    `db:"new_values"`
	CreatedAt   time.Time `db:"created_at"`
}
