package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/apperrors"
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	"github.com/SeatLogix/desk_booking_app/internal/models"
	"github.com/SeatLogix/desk_booking_app/internal/utils/mapping"
	"github.com/SeatLogix/desk_booking_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `session_id, user_id, mac_address, ssid, token, is_active, last_activity_at,
		created_at, created_by, last_updated_at, last_updated_by`

const attendanceColumns = `record_id, user_id, mac_address, ssid, ip_address, computer_name,
		connection_start_time, connection_end_time, connection_duration_seconds, is_active, created_at`

type PgxSessionRepository struct {
	BaseRepository
}

// newPgxSessionRepository creates a new repository for desktop session and
// attendance data.
func newPgxSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepositoryWithTx {
	return &PgxSessionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSessionRepository implements portsrepo.SessionRepositoryWithTx
var _ portsrepo.SessionRepositoryWithTx = (*PgxSessionRepository)(nil)

func scanSession(row pgx.Row) (*models.DesktopSession, error) {
	var m models.DesktopSession
	err := row.Scan(
		&m.SessionID,
		&m.UserID,
		&m.MacAddress,
		&m.SSID,
		&m.Token,
		&m.IsActive,
		&m.LastActivityAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanAttendance(row pgx.Row) (*models.AttendanceRecord, error) {
	var m models.AttendanceRecord
	err := row.Scan(
		&m.RecordID,
		&m.UserID,
		&m.MacAddress,
		&m.SSID,
		&m.IPAddress,
		&m.ComputerName,
		&m.ConnectionStartTime,
		&m.ConnectionEndTime,
		&m.ConnectionDurationSec,
		&m.IsActive,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxSessionRepository) SaveSession(ctx context.Context, session domain.DesktopSession) error {
	m := mapping.ToModelDesktopSession(session)
	query := `
        INSERT INTO desktop_sessions (session_id, user_id, mac_address, ssid, token, is_active, last_activity_at,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.SessionID,
		m.UserID,
		m.MacAddress,
		m.SSID,
		m.Token,
		m.IsActive,
		m.LastActivityAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save desktop session: %w", err)
	}
	return nil
}

func (r *PgxSessionRepository) FindActiveSessionByUserID(ctx context.Context, userID string) (*domain.DesktopSession, error) {
	query := `SELECT ` + sessionColumns + `
        FROM desktop_sessions
        WHERE user_id = $1 AND is_active = TRUE
        ORDER BY last_activity_at DESC
        LIMIT 1;`
	m, err := scanSession(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active session for user %s: %w", userID, err)
	}
	session := mapping.ToDomainDesktopSession(*m)
	return &session, nil
}

func (r *PgxSessionRepository) FindIdleSessions(ctx context.Context, cutoff time.Time) ([]domain.DesktopSession, error) {
	query := `SELECT ` + sessionColumns + `
        FROM desktop_sessions
        WHERE is_active = TRUE AND last_activity_at < $1;`
	rows, err := r.Pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query idle sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.DesktopSession{}
	for rows.Next() {
		m, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, mapping.ToDomainDesktopSession(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", rows.Err())
	}
	return sessions, nil
}

func (r *PgxSessionRepository) FindActiveSessions(ctx context.Context) ([]domain.DesktopSession, error) {
	query := `SELECT ` + sessionColumns + `
        FROM desktop_sessions
        WHERE is_active = TRUE
        ORDER BY last_activity_at DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.DesktopSession{}
	for rows.Next() {
		m, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, mapping.ToDomainDesktopSession(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", rows.Err())
	}
	return sessions, nil
}

func (r *PgxSessionRepository) TouchSession(ctx context.Context, sessionID string, ssid string, at time.Time) error {
	query := `
        UPDATE desktop_sessions
        SET last_activity_at = $1, ssid = COALESCE(NULLIF($2, ''), ssid), last_updated_at = $1
        WHERE session_id = $3 AND is_active = TRUE;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, at, ssid, sessionID)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("session not found or not active: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxSessionRepository) DeactivateSession(ctx context.Context, sessionID string, at time.Time) error {
	query := `
        UPDATE desktop_sessions
        SET is_active = FALSE, last_updated_at = $1
        WHERE session_id = $2 AND is_active = TRUE;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, at, sessionID)
	if err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("session not found or already inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxSessionRepository) DeactivateSessionsByUserID(ctx context.Context, userID string, at time.Time) (int64, error) {
	query := `
        UPDATE desktop_sessions
        SET is_active = FALSE, last_updated_at = $1
        WHERE user_id = $2 AND is_active = TRUE;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, at, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate sessions for user %s: %w", userID, err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxSessionRepository) SaveAttendanceRecord(ctx context.Context, record domain.AttendanceRecord) error {
	m := mapping.ToModelAttendanceRecord(record)
	query := `
        INSERT INTO attendance_records (record_id, user_id, mac_address, ssid, ip_address, computer_name,
            connection_start_time, connection_end_time, connection_duration_seconds, is_active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.RecordID,
		m.UserID,
		m.MacAddress,
		m.SSID,
		m.IPAddress,
		m.ComputerName,
		m.ConnectionStartTime,
		m.ConnectionEndTime,
		m.ConnectionDurationSec,
		m.IsActive,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save attendance record: %w", err)
	}
	return nil
}

func (r *PgxSessionRepository) FindOpenAttendanceByUserID(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + `
        FROM attendance_records
        WHERE user_id = $1 AND connection_end_time IS NULL
        ORDER BY connection_start_time DESC
        LIMIT 1;`
	m, err := scanAttendance(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open attendance for user %s: %w", userID, err)
	}
	record := mapping.ToDomainAttendanceRecord(*m)
	return &record, nil
}

// ListAttendanceByUserID pages newest-first on (connection_start_time, record_id)
// so records sharing a start timestamp cannot be skipped or repeated across pages.
func (r *PgxSessionRepository) ListAttendanceByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.AttendanceRecord, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + attendanceColumns + `
        FROM attendance_records
        WHERE user_id = $1`
	args := []any{userID}

	if nextToken != nil && *nextToken != "" {
		startTime, recordID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, startTime, recordID)
		query += ` AND (connection_start_time, record_id) < ($2, $3)`
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY connection_start_time DESC, record_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	modelRecords := []models.AttendanceRecord{}
	for rows.Next() {
		m, err := scanAttendance(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		modelRecords = append(modelRecords, *m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating attendance rows: %w", rows.Err())
	}

	// One extra row was fetched to detect whether another page exists.
	var newToken *string
	if len(modelRecords) > limit {
		modelRecords = modelRecords[:limit]
		last := modelRecords[len(modelRecords)-1]
		token := pagination.EncodeToken(last.ConnectionStartTime, last.RecordID)
		newToken = &token
	}

	return mapping.ToDomainAttendanceRecordSlice(modelRecords), newToken, nil
}

func (r *PgxSessionRepository) CloseAttendanceRecord(ctx context.Context, recordID string, endTime time.Time, durationSecs float64) error {
	query := `
        UPDATE attendance_records
        SET connection_end_time = $1, connection_duration_seconds = $2, is_active = FALSE
        WHERE record_id = $3 AND connection_end_time IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, endTime, durationSecs, recordID)
	if err != nil {
		return fmt.Errorf("failed to close attendance record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("attendance record not found or already closed: %w", apperrors.ErrNotFound)
	}
	return nil
}
