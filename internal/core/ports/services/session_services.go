package services

import (
	"context"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
)

// SessionReaderSvc defines read operations for desktop sessions and attendance
type SessionReaderSvc interface {
	// GetActiveSession retrieves the user's active desktop session.
	GetActiveSession(ctx context.Context, userID string) (*domain.DesktopSession, error)

	// ListAttendanceHistory retrieves a page of the user's connection
	// intervals, newest first.
	ListAttendanceHistory(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.AttendanceRecord, *string, error)

	// ListActiveSessions retrieves every live desktop session, most recently
	// active first. Idle sessions are swept before the listing so the view
	// is current. Admin only.
	ListActiveSessions(ctx context.Context) ([]domain.DesktopSession, error)
}

// SessionWriterSvc defines the desktop agent's lifecycle operations
type SessionWriterSvc interface {
	// DesktopLogin authenticates the agent and binds the session to its MAC
	// address. A login from a different MAC while a session is active returns
	// apperrors.ErrConflict.
	DesktopLogin(ctx context.Context, req dto.DesktopLoginRequest) (*domain.DesktopSession, *domain.User, string, error)

	// HandleConnect opens a connection interval and checks the user in to
	// today's booking when one exists.
	HandleConnect(ctx context.Context, userID string, req dto.DeviceEventRequest) (*domain.AttendanceRecord, error)

	// HandleHeartbeat refreshes the session's last-activity timestamp.
	HandleHeartbeat(ctx context.Context, userID string, req dto.DeviceEventRequest) error

	// HandleDisconnect closes the open connection interval and checks the
	// user out of today's booking when one exists.
	HandleDisconnect(ctx context.Context, userID string, req dto.DeviceEventRequest) error

	// DesktopLogout closes the open connection interval and deactivates the
	// session. The agent must log in again to resume reporting.
	DesktopLogout(ctx context.Context, userID string, req dto.DeviceEventRequest) error

	// SweepIdleSessions closes sessions and intervals with no recent
	// heartbeat. Returns the number of sessions closed.
	SweepIdleSessions(ctx context.Context) (int, error)

	// ResetUserSessions force-closes all of a user's sessions so they can log
	// in from a new machine. Admin only.
	ResetUserSessions(ctx context.Context, userID string, requestingUserID string) error
}

// SessionSvcFacade combines all session-related service interfaces
type SessionSvcFacade interface {
	SessionReaderSvc
	SessionWriterSvc
}
