package pgsql

import (
	"context"
	"fmt"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	"github.com/SeatLogix/desk_booking_app/internal/models"
	"github.com/SeatLogix/desk_booking_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditLogRepository struct {
	db *pgxpool.Pool
}

func newPgxAuditLogRepository(db *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{db: db}
}

// Ensure PgxAuditLogRepository implements portsrepo.AuditLogRepositoryFacade
var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	m := mapping.ToModelAuditLog(entry)
	query := `
        INSERT INTO audit_logs (entity_type, entity_id, action, performed_by, old_values, new_values, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.db.Exec(ctx, query,
		m.EntityType,
		m.EntityID,
		m.Action,
		m.PerformedBy,
		m.OldValues,
		m.NewValues,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}
	return nil
}

func (r *PgxAuditLogRepository) ListAuditLogsByEntity(ctx context.Context, entityType domain.AuditEntityType, entityID string, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
        SELECT audit_id, entity_type, entity_id, action, performed_by, old_values, new_values, created_at
        FROM audit_logs
        WHERE entity_type = $1 AND entity_id = $2
        ORDER BY created_at DESC, audit_id DESC
        LIMIT $3;
    `
	rows, err := r.db.Query(ctx, query, string(entityType), entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	modelLogs := []models.AuditLog{}
	for rows.Next() {
		var m models.AuditLog
		err := rows.Scan(
			&m.AuditID,
			&m.EntityType,
			&m.EntityID,
			&m.Action,
			&m.PerformedBy,
			&m.OldValues,
			&m.NewValues,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		modelLogs = append(modelLogs, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating audit log rows: %w", rows.Err())
	}

	return mapping.ToDomainAuditLogSlice(modelLogs), nil
}
