package repositories

import (
	"context"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// SessionReader defines read operations for desktop session data
type SessionReader interface {
	// FindActiveSessionByUserID retrieves a user's active desktop session,
	// or apperrors.ErrNotFound when they have none.
	FindActiveSessionByUserID(ctx context.Context, userID string) (*domain.DesktopSession, error)

	// FindIdleSessions retrieves active sessions whose last activity is older
	// than the cutoff.
	FindIdleSessions(ctx context.Context, cutoff time.Time) ([]domain.DesktopSession, error)

	// FindActiveSessions retrieves all active sessions, most recently active
	// first.
	FindActiveSessions(ctx context.Context) ([]domain.DesktopSession, error)
}

// SessionWriter defines write operations for desktop session data
type SessionWriter interface {
	// SaveSession persists a new desktop session.
	SaveSession(ctx context.Context, session domain.DesktopSession) error

	// TouchSession updates a session's last-activity timestamp and SSID.
	TouchSession(ctx context.Context, sessionID string, ssid string, at time.Time) error

	// DeactivateSession marks a session inactive.
	DeactivateSession(ctx context.Context, sessionID string, at time.Time) error

	// DeactivateSessionsByUserID marks all of a user's sessions inactive.
	// Used by the admin session reset.
	DeactivateSessionsByUserID(ctx context.Context, userID string, at time.Time) (int64, error)
}

// AttendanceReader defines read operations for attendance records
type AttendanceReader interface {
	// FindOpenAttendanceByUserID retrieves the user's open connection interval
	// (no end time yet), or apperrors.ErrNotFound.
	FindOpenAttendanceByUserID(ctx context.Context, userID string) (*domain.AttendanceRecord, error)

	// ListAttendanceByUserID retrieves a page of a user's attendance records,
	// newest first, using token-based pagination. Returns the records and a
	// token for the next page.
	ListAttendanceByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.AttendanceRecord, *string, error)
}

// AttendanceWriter defines write operations for attendance records
type AttendanceWriter interface {
	// SaveAttendanceRecord persists a new connection interval.
	SaveAttendanceRecord(ctx context.Context, record domain.AttendanceRecord) error

	// CloseAttendanceRecord sets the end time and duration on an open interval.
	CloseAttendanceRecord(ctx context.Context, recordID string, endTime time.Time, durationSecs float64) error
}

// SessionRepositoryFacade combines all session-related repository interfaces
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
	AttendanceReader
	AttendanceWriter
}

// SessionRepositoryWithTx extends SessionRepositoryFacade with transaction capabilities
type SessionRepositoryWithTx interface {
	SessionRepositoryFacade
	TransactionManager
}
