package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/apperrors"
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/utils/calendar"
	"github.com/google/uuid"
)

// Allocation window: weeks two to four counted from the upcoming Monday.
// The immediate week is left alone so manual bookings made for it survive.
const (
	allocationFirstWeekOffset = 1
	allocationWeekCount       = 3
)

// autoBookingService implements the AutoBookingSvcFacade interface
type autoBookingService struct {
	BaseService
	bookingRepo portsrepo.BookingRepositoryWithTx
	seatRepo    portsrepo.SeatReader
	userRepo    portsrepo.UserReader
	audit       portssvc.AuditSvcFacade

	// now is swappable for tests.
	now func() time.Time
}

// AutoBookingServiceOption is a functional option for configuring the auto-booking service
type AutoBookingServiceOption func(*autoBookingService)

// WithAutoBookingAuditor sets the audit recorder for the auto-booking service.
func WithAutoBookingAuditor(audit portssvc.AuditSvcFacade) AutoBookingServiceOption {
	return func(s *autoBookingService) {
		s.audit = audit
	}
}

// WithAllocationClock overrides the wall clock used to anchor the allocation window.
func WithAllocationClock(now func() time.Time) AutoBookingServiceOption {
	return func(s *autoBookingService) {
		s.now = now
	}
}

// NewAutoBookingService creates a new auto-booking service with the provided options
func NewAutoBookingService(bookingRepo portsrepo.BookingRepositoryWithTx, seatRepo portsrepo.SeatReader, userRepo portsrepo.UserReader, options ...AutoBookingServiceOption) portssvc.AutoBookingSvcFacade {
	svc := &autoBookingService{
		bookingRepo: bookingRepo,
		seatRepo:    seatRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure autoBookingService implements the AutoBookingSvcFacade interface
var _ portssvc.AutoBookingSvcFacade = (*autoBookingService)(nil)

// allocationWindow returns the Mondays of the weeks the allocator books, in order.
func (s *autoBookingService) allocationWindow() []time.Time {
	anchor := calendar.NextMonday(s.now())
	weeks := make([]time.Time, 0, allocationWeekCount)
	for i := allocationFirstWeekOffset; i < allocationFirstWeekOffset+allocationWeekCount; i++ {
		weeks = append(weeks, calendar.AddDays(anchor, 7*i))
	}
	return weeks
}

// AllocateForUser books seats for one user over the allocation window.
// The user's preferred days are honoured in priority order, truncated to
// their weekly quota. Dates already holding a booking are skipped, which
// makes the run idempotent. performedBy names the actor the bookings are
// attributed to: the triggering user, an admin, or the scheduler.
func (s *autoBookingService) AllocateForUser(ctx context.Context, userID string, performedBy string) (*domain.AllocationResult, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasValidPreferences() {
		return nil, apperrors.NewAppError(400, "user has no work preferences set", apperrors.ErrValidation)
	}

	workDays := user.DefaultWorkDays
	if len(workDays) > user.RequiredDaysPerWeek {
		workDays = workDays[:user.RequiredDaysPerWeek]
	}

	result := &domain.AllocationResult{UserID: userID}
	for _, weekStart := range s.allocationWindow() {
		for _, weekday := range workDays {
			date := calendar.DateForWeekday(weekStart, weekday)
			if err := s.allocateDate(ctx, user, date, performedBy, result); err != nil {
				return nil, err
			}
		}
	}

	s.LogInfo(ctx, "Auto-booking allocation finished",
		slog.String("user_id", userID),
		slog.Int("created", result.Created()),
		slog.Int("skipped", len(result.SkippedDates)),
		slog.Int("failed", len(result.FailedDates)))

	return result, nil
}

// allocateDate books one seat for one date, appending the outcome to result.
// Only infrastructure errors are returned; a date that could not be booked is
// recorded with its reason and the run moves on.
func (s *autoBookingService) allocateDate(ctx context.Context, user *domain.User, date time.Time, performedBy string, result *domain.AllocationResult) error {
	dateStr := calendar.FormatDate(date)

	_, err := s.bookingRepo.FindBookingForUserOnDate(ctx, user.UserID, date)
	if err == nil {
		result.SkippedDates = append(result.SkippedDates, dateStr)
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check existing booking for %s: %w", dateStr, err)
	}

	seats, err := s.seatRepo.FindAvailableSeats(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to list available seats for %s: %w", dateStr, err)
	}
	if len(seats) == 0 {
		result.FailedDates = append(result.FailedDates, domain.AllocationFailure{Date: dateStr, Reason: "no available seats"})
		return nil
	}

	// Try seats in order; a conflict means somebody else took that seat (or
	// this user got a booking for the date) between the read and the insert.
	for _, seat := range seats {
		now := s.now()
		booking := domain.Booking{
			BookingID:    uuid.NewString(),
			UserID:       user.UserID,
			SeatID:       seat.SeatID,
			BookingDate:  date,
			WeekNumber:   calendar.WeekNumber(date),
			Status:       domain.BookingConfirmed,
			IsAutoBooked: true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     performedBy,
				LastUpdatedAt: now,
				LastUpdatedBy: performedBy,
			},
		}
		err := s.bookingRepo.SaveBooking(ctx, booking)
		if err == nil {
			booking.Seat = &seat
			result.CreatedBookings = append(result.CreatedBookings, booking)
			if s.audit != nil {
				s.audit.RecordAction(ctx, domain.AuditEntityBooking, booking.BookingID, domain.AuditAutoCreate, performedBy, nil, booking)
			}
			return nil
		}
		if errors.Is(err, apperrors.ErrConflict) {
			continue
		}
		return fmt.Errorf("failed to save auto-booking for %s: %w", dateStr, err)
	}

	s.LogWarn(ctx, "Every candidate seat was lost to races",
		slog.String("user_id", user.UserID),
		slog.String("date", dateStr))
	result.FailedDates = append(result.FailedDates, domain.AllocationFailure{Date: dateStr, Reason: "all available seats were taken concurrently"})
	return nil
}

// ResetAndAllocate cancels the user's future auto-booked seats and runs a
// fresh allocation. Manual bookings are never touched.
func (s *autoBookingService) ResetAndAllocate(ctx context.Context, userID string, performedBy string) (*domain.AllocationResult, error) {
	today := calendar.DateOnly(s.now())
	bookings, err := s.bookingRepo.ListBookings(ctx, portsrepo.BookingListFilter{
		UserID:    userID,
		Status:    domain.BookingConfirmed,
		StartDate: &today,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for reset: %w", err)
	}

	now := s.now()
	for _, booking := range bookings {
		if !booking.IsAutoBooked || !booking.BookingDate.After(today) {
			continue
		}
		err := s.bookingRepo.CancelBooking(ctx, booking.BookingID, "reallocated after preference change", performedBy, now)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// Already cancelled or checked in since the listing; leave it.
				continue
			}
			return nil, fmt.Errorf("failed to cancel booking %s: %w", booking.BookingID, err)
		}
		if s.audit != nil {
			s.audit.RecordAction(ctx, domain.AuditEntityBooking, booking.BookingID, domain.AuditCancel, performedBy, booking, nil)
		}
	}

	return s.AllocateForUser(ctx, userID, performedBy)
}

// RunFleetAllocation sweeps every active user with preferences set. Users who
// already hold a booking anywhere in the allocation window are left alone;
// one user's failure never aborts the sweep.
func (s *autoBookingService) RunFleetAllocation(ctx context.Context) (*domain.FleetRunSummary, error) {
	summary := &domain.FleetRunSummary{StartedAt: s.now()}

	users, err := s.userRepo.FindActiveUsersWithPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for fleet allocation: %w", err)
	}

	window := s.allocationWindow()
	windowStart := window[0]
	windowEnd := calendar.AddDays(window[len(window)-1], 7)

	for _, user := range users {
		// Admins are never auto-booked, whatever the repository returned.
		if user.Role == domain.RoleAdmin {
			continue
		}
		summary.TotalUsers++
		if !user.HasValidPreferences() {
			summary.NoPrefsCount++
			continue
		}

		count, err := s.bookingRepo.CountActiveBookingsInRange(ctx, user.UserID, windowStart, windowEnd)
		if err != nil {
			s.LogError(ctx, err, "Failed to count bookings in allocation window", slog.String("user_id", user.UserID))
			summary.FailedCount++
			continue
		}
		if count > 0 {
			summary.SkippedCount++
			continue
		}

		if _, err := s.AllocateForUser(ctx, user.UserID, systemActor); err != nil {
			s.LogError(ctx, err, "Fleet allocation failed for user", slog.String("user_id", user.UserID))
			summary.FailedCount++
			continue
		}
		summary.SuccessCount++
	}

	summary.FinishedAt = s.now()
	s.LogInfo(ctx, "Fleet allocation sweep finished",
		slog.Int("total", summary.TotalUsers),
		slog.Int("success", summary.SuccessCount),
		slog.Int("failed", summary.FailedCount),
		slog.Int("no_prefs", summary.NoPrefsCount),
		slog.Int("skipped", summary.SkippedCount))

	return summary, nil
}
