package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/apperrors"
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
	"github.com/google/uuid"
)

// sessionService implements the SessionSvcFacade interface
type sessionService struct {
	BaseService
	sessionRepo portsrepo.SessionRepositoryWithTx
	userService portssvc.UserSvcFacade
	tokenSvc    portssvc.TokenSvcFacade
	bookingSvc  portssvc.BookingSvcFacade
	audit       portssvc.AuditSvcFacade

	idleTimeout time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// SessionServiceOption is a functional option for configuring the session service
type SessionServiceOption func(*sessionService)

// WithSessionAuditor sets the audit recorder for the session service.
func WithSessionAuditor(audit portssvc.AuditSvcFacade) SessionServiceOption {
	return func(s *sessionService) {
		s.audit = audit
	}
}

// WithSessionClock overrides the wall clock used for timestamps and sweeps.
func WithSessionClock(now func() time.Time) SessionServiceOption {
	return func(s *sessionService) {
		s.now = now
	}
}

// NewSessionService creates a new session service with the provided options
func NewSessionService(sessionRepo portsrepo.SessionRepositoryWithTx, userService portssvc.UserSvcFacade, tokenSvc portssvc.TokenSvcFacade, bookingSvc portssvc.BookingSvcFacade, idleTimeout time.Duration, options ...SessionServiceOption) portssvc.SessionSvcFacade {
	svc := &sessionService{
		sessionRepo: sessionRepo,
		userService: userService,
		tokenSvc:    tokenSvc,
		bookingSvc:  bookingSvc,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure sessionService implements the SessionSvcFacade interface
var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

// normalizeMac lowercases a MAC address so exclusivity checks are not
// defeated by case differences between agents.
func normalizeMac(mac string) string {
	return strings.ToLower(mac)
}

// DesktopLogin authenticates the agent and binds a session to its MAC
// address. A login from the same MAC reuses the active session; a login from
// a different MAC while one is active returns apperrors.ErrConflict until an
// admin resets the user's sessions.
func (s *sessionService) DesktopLogin(ctx context.Context, req dto.DesktopLoginRequest) (*domain.DesktopSession, *domain.User, string, error) {
	user, err := s.userService.AuthenticateUser(ctx, req.Username, req.Password)
	if err != nil {
		return nil, nil, "", err
	}

	mac := normalizeMac(req.MacAddress)

	existing, err := s.sessionRepo.FindActiveSessionByUserID(ctx, user.UserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, "", fmt.Errorf("failed to check active session: %w", err)
	}
	if existing != nil {
		if normalizeMac(existing.MacAddress) != mac {
			s.LogWarn(ctx, "Desktop login rejected, session active on another device",
				slog.String("user_id", user.UserID),
				slog.String("active_mac", existing.MacAddress))
			return nil, nil, "", apperrors.NewConflictError("an active session exists on another device; ask an admin to reset your sessions")
		}
		token, err := s.tokenSvc.GenerateDesktopToken(ctx, user, mac)
		if err != nil {
			return nil, nil, "", err
		}
		if err := s.sessionRepo.TouchSession(ctx, existing.SessionID, req.SSID, s.now()); err != nil {
			return nil, nil, "", fmt.Errorf("failed to refresh session: %w", err)
		}
		return existing, user, token, nil
	}

	token, err := s.tokenSvc.GenerateDesktopToken(ctx, user, mac)
	if err != nil {
		return nil, nil, "", err
	}

	now := s.now()
	session := domain.DesktopSession{
		SessionID:      uuid.NewString(),
		UserID:         user.UserID,
		MacAddress:     mac,
		SSID:           req.SSID,
		Token:          token,
		IsActive:       true,
		LastActivityAt: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     user.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: user.UserID,
		},
	}
	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		return nil, nil, "", fmt.Errorf("failed to save desktop session: %w", err)
	}

	if s.audit != nil {
		s.audit.RecordAction(ctx, domain.AuditEntitySession, session.SessionID, domain.AuditCreate, user.UserID, nil, session)
	}

	return &session, user, token, nil
}

// GetActiveSession retrieves the user's active desktop session.
func (s *sessionService) GetActiveSession(ctx context.Context, userID string) (*domain.DesktopSession, error) {
	return s.sessionRepo.FindActiveSessionByUserID(ctx, userID)
}

// HandleConnect opens a connection interval and, when the user holds a
// booking for today, checks them in. The check-in is best effort: attendance
// tracking never fails because the booking state machine said no.
func (s *sessionService) HandleConnect(ctx context.Context, userID string, req dto.DeviceEventRequest) (*domain.AttendanceRecord, error) {
	session, err := s.requireActiveSession(ctx, userID, req.MacAddress)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.sessionRepo.TouchSession(ctx, session.SessionID, req.SSID, now); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	// An interval left open from a previous connect means the disconnect was
	// lost; reuse it rather than stacking a second open interval.
	if open, err := s.sessionRepo.FindOpenAttendanceByUserID(ctx, userID); err == nil {
		return open, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check open attendance: %w", err)
	}

	record := domain.AttendanceRecord{
		RecordID:            uuid.NewString(),
		UserID:              userID,
		MacAddress:          normalizeMac(req.MacAddress),
		SSID:                req.SSID,
		IPAddress:           req.IPAddress,
		ComputerName:        req.ComputerName,
		ConnectionStartTime: now,
		IsActive:            true,
		CreatedAt:           now,
	}
	if err := s.sessionRepo.SaveAttendanceRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save attendance record: %w", err)
	}

	s.checkInTodayBooking(ctx, userID)

	return &record, nil
}

// checkInTodayBooking checks the user in to today's booking when one exists.
// Failures are logged only.
func (s *sessionService) checkInTodayBooking(ctx context.Context, userID string) {
	booking, err := s.bookingSvc.GetBookingForUserOnDate(ctx, userID, s.now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up today's booking on connect", slog.String("user_id", userID))
		}
		return
	}
	if booking.IsCheckedIn() {
		return
	}
	if _, err := s.bookingSvc.CheckIn(ctx, booking.BookingID, userID); err != nil {
		s.LogWarn(ctx, "Automatic check-in failed",
			slog.String("user_id", userID),
			slog.String("booking_id", booking.BookingID),
			slog.String("error", err.Error()))
	}
}

// checkOutTodayBooking checks the user out of today's booking when they are
// checked in. Failures are logged only.
func (s *sessionService) checkOutTodayBooking(ctx context.Context, userID string) {
	booking, err := s.bookingSvc.GetBookingForUserOnDate(ctx, userID, s.now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up today's booking on disconnect", slog.String("user_id", userID))
		}
		return
	}
	if !booking.IsCheckedIn() || booking.CheckOutTime != nil {
		return
	}
	if _, err := s.bookingSvc.CheckOut(ctx, booking.BookingID, userID); err != nil {
		s.LogWarn(ctx, "Automatic check-out failed",
			slog.String("user_id", userID),
			slog.String("booking_id", booking.BookingID),
			slog.String("error", err.Error()))
	}
}

// HandleHeartbeat refreshes the session's last-activity timestamp and
// find-or-creates the open connection interval, so attendance survives a
// missed connect event or an interval closed by an earlier sweep.
func (s *sessionService) HandleHeartbeat(ctx context.Context, userID string, req dto.DeviceEventRequest) error {
	session, err := s.requireActiveSession(ctx, userID, req.MacAddress)
	if err != nil {
		return err
	}

	now := s.now()
	if err := s.sessionRepo.TouchSession(ctx, session.SessionID, req.SSID, now); err != nil {
		return err
	}

	if _, err := s.sessionRepo.FindOpenAttendanceByUserID(ctx, userID); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check open attendance: %w", err)
	}

	record := domain.AttendanceRecord{
		RecordID:            uuid.NewString(),
		UserID:              userID,
		MacAddress:          normalizeMac(req.MacAddress),
		SSID:                req.SSID,
		IPAddress:           req.IPAddress,
		ComputerName:        req.ComputerName,
		ConnectionStartTime: now,
		IsActive:            true,
		CreatedAt:           now,
	}
	if err := s.sessionRepo.SaveAttendanceRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to save attendance record: %w", err)
	}
	return nil
}

// HandleDisconnect closes the open connection interval and checks the user
// out of today's booking when one exists.
func (s *sessionService) HandleDisconnect(ctx context.Context, userID string, req dto.DeviceEventRequest) error {
	session, err := s.requireActiveSession(ctx, userID, req.MacAddress)
	if err != nil {
		return err
	}

	now := s.now()
	if err := s.sessionRepo.TouchSession(ctx, session.SessionID, req.SSID, now); err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	record, err := s.sessionRepo.FindOpenAttendanceByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Disconnect without a matching connect; nothing to close.
			return nil
		}
		return fmt.Errorf("failed to find open attendance: %w", err)
	}

	duration := now.Sub(record.ConnectionStartTime).Seconds()
	if err := s.sessionRepo.CloseAttendanceRecord(ctx, record.RecordID, now, duration); err != nil {
		return fmt.Errorf("failed to close attendance record: %w", err)
	}

	s.checkOutTodayBooking(ctx, userID)

	return nil
}

// DesktopLogout closes the open connection interval and deactivates the
// session. Unlike a disconnect, the agent has to log in again afterwards.
func (s *sessionService) DesktopLogout(ctx context.Context, userID string, req dto.DeviceEventRequest) error {
	session, err := s.requireActiveSession(ctx, userID, req.MacAddress)
	if err != nil {
		return err
	}

	if err := s.HandleDisconnect(ctx, userID, req); err != nil {
		return err
	}

	if err := s.sessionRepo.DeactivateSession(ctx, session.SessionID, s.now()); err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}
	return nil
}

// ListActiveSessions sweeps idle sessions first so the listing reflects the
// idle timeout, then returns every live session.
func (s *sessionService) ListActiveSessions(ctx context.Context) ([]domain.DesktopSession, error) {
	if _, err := s.SweepIdleSessions(ctx); err != nil {
		s.LogWarn(ctx, "Idle sweep before session listing failed", slog.String("error", err.Error()))
	}
	return s.sessionRepo.FindActiveSessions(ctx)
}

// requireActiveSession loads the caller's active session and verifies the
// event came from the device the session is bound to.
func (s *sessionService) requireActiveSession(ctx context.Context, userID string, macAddress string) (*domain.DesktopSession, error) {
	session, err := s.sessionRepo.FindActiveSessionByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(401, "no active desktop session", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if normalizeMac(session.MacAddress) != normalizeMac(macAddress) {
		return nil, apperrors.NewConflictError("event MAC address does not match the active session")
	}
	return session, nil
}

// ListAttendanceHistory retrieves a page of the user's connection intervals,
// newest first.
func (s *sessionService) ListAttendanceHistory(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.AttendanceRecord, *string, error) {
	return s.sessionRepo.ListAttendanceByUserID(ctx, userID, limit, nextToken)
}

// SweepIdleSessions closes sessions with no heartbeat inside the idle window
// and the connection intervals they left open. Run on a timer.
func (s *sessionService) SweepIdleSessions(ctx context.Context) (int, error) {
	now := s.now()
	cutoff := now.Add(-s.idleTimeout)

	sessions, err := s.sessionRepo.FindIdleSessions(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find idle sessions: %w", err)
	}

	closed := 0
	recordsClosed := 0
	for _, session := range sessions {
		if err := s.sessionRepo.DeactivateSession(ctx, session.SessionID, now); err != nil {
			s.LogError(ctx, err, "Failed to deactivate idle session", slog.String("session_id", session.SessionID))
			continue
		}
		closed++

		// Only intervals belonging to a swept session are closed; a live
		// session keeps its open interval regardless of how long ago it
		// started.
		if record, err := s.sessionRepo.FindOpenAttendanceByUserID(ctx, session.UserID); err == nil {
			duration := now.Sub(record.ConnectionStartTime).Seconds()
			if duration < 0 {
				duration = 0
			}
			if err := s.sessionRepo.CloseAttendanceRecord(ctx, record.RecordID, now, duration); err != nil {
				s.LogError(ctx, err, "Failed to close attendance for idle session", slog.String("record_id", record.RecordID))
			} else {
				recordsClosed++
			}
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check open attendance for idle session", slog.String("user_id", session.UserID))
		}

		s.checkOutTodayBooking(ctx, session.UserID)
	}

	if closed > 0 {
		s.LogInfo(ctx, "Idle sweep finished",
			slog.Int("sessions_closed", closed),
			slog.Int("records_closed", recordsClosed))
	}

	return closed, nil
}

// ResetUserSessions force-closes all of a user's sessions so they can log in
// from a new machine.
func (s *sessionService) ResetUserSessions(ctx context.Context, userID string, requestingUserID string) error {
	now := s.now()
	count, err := s.sessionRepo.DeactivateSessionsByUserID(ctx, userID, now)
	if err != nil {
		return fmt.Errorf("failed to reset sessions: %w", err)
	}

	if record, err := s.sessionRepo.FindOpenAttendanceByUserID(ctx, userID); err == nil {
		duration := now.Sub(record.ConnectionStartTime).Seconds()
		if err := s.sessionRepo.CloseAttendanceRecord(ctx, record.RecordID, now, duration); err != nil {
			s.LogError(ctx, err, "Failed to close open attendance on reset", slog.String("record_id", record.RecordID))
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check open attendance on reset", slog.String("user_id", userID))
	}

	s.LogInfo(ctx, "User sessions reset",
		slog.String("user_id", userID),
		slog.String("requested_by", requestingUserID),
		slog.Int64("sessions_closed", count))

	if s.audit != nil {
		s.audit.RecordAction(ctx, domain.AuditEntitySession, userID, domain.AuditSessionReset, requestingUserID, nil, map[string]int64{"sessionsClosed": count})
	}

	return nil
}
