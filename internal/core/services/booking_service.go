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
	"github.com/SeatLogix/desk_booking_app/internal/dto"
	"github.com/SeatLogix/desk_booking_app/internal/utils/attendance"
	"github.com/SeatLogix/desk_booking_app/internal/utils/calendar"
	"github.com/google/uuid"
)

// systemActor names the sweeps that change bookings without a requesting user.
const systemActor = "system"

// bookingService implements the BookingSvcFacade interface
type bookingService struct {
	BaseService
	bookingRepo portsrepo.BookingRepositoryWithTx
	seatRepo    portsrepo.SeatReader
	userRepo    portsrepo.UserReader
	audit       portssvc.AuditSvcFacade
}

// BookingServiceOption is a functional option for configuring the booking service
type BookingServiceOption func(*bookingService)

// WithBookingAuditor sets the audit recorder for the booking service.
func WithBookingAuditor(audit portssvc.AuditSvcFacade) BookingServiceOption {
	return func(s *bookingService) {
		s.audit = audit
	}
}

// NewBookingService creates a new booking service with the provided options
func NewBookingService(bookingRepo portsrepo.BookingRepositoryWithTx, seatRepo portsrepo.SeatReader, userRepo portsrepo.UserReader, options ...BookingServiceOption) portssvc.BookingSvcFacade {
	svc := &bookingService{
		bookingRepo: bookingRepo,
		seatRepo:    seatRepo,
		userRepo:    userRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure bookingService implements the BookingSvcFacade interface
var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

// CreateBooking validates seat, date and the user's weekly quota, then inserts.
// The insert is the serialization point: the unique indexes decide races, so
// the preliminary checks only exist to give polite errors on the common paths.
func (s *bookingService) CreateBooking(ctx context.Context, userID string, req dto.CreateBookingRequest) (*domain.Booking, error) {
	bookingDate, err := calendar.ParseDate(req.BookingDate)
	if err != nil {
		return nil, apperrors.NewAppError(400, "invalid booking date", apperrors.ErrValidation)
	}
	if calendar.IsPastDate(bookingDate, time.Now()) {
		return nil, apperrors.NewAppError(400, "cannot book a seat for a past date", apperrors.ErrValidation)
	}

	seat, err := s.seatRepo.FindSeatByID(ctx, req.SeatID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("seat not found")
		}
		return nil, err
	}
	if !seat.IsActive {
		return nil, apperrors.NewAppError(400, "seat is not active", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkWeeklyQuota(ctx, user, bookingDate); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := domain.Booking{
		BookingID:    uuid.NewString(),
		UserID:       userID,
		SeatID:       req.SeatID,
		BookingDate:  bookingDate,
		WeekNumber:   calendar.WeekNumber(bookingDate),
		Status:       domain.BookingConfirmed,
		IsAutoBooked: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.bookingRepo.SaveBooking(ctx, booking); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogInfo(ctx, "Booking lost race",
				slog.String("seat_id", req.SeatID),
				slog.String("date", req.BookingDate))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save booking")
		return nil, err
	}

	if s.audit != nil {
		s.audit.RecordAction(ctx, domain.AuditEntityBooking, booking.BookingID, domain.AuditCreate, userID, nil, booking)
	}

	s.LogInfo(ctx, "Booking created",
		slog.String("booking_id", booking.BookingID),
		slog.String("date", req.BookingDate))
	booking.Seat = seat
	return &booking, nil
}

// checkWeeklyQuota rejects a booking once the user already holds their
// required number of non-cancelled bookings in that calendar week.
func (s *bookingService) checkWeeklyQuota(ctx context.Context, user *domain.User, bookingDate time.Time) error {
	if user.RequiredDaysPerWeek <= 0 {
		return nil
	}
	weekStart := calendar.StartOfWeek(bookingDate)
	weekEndExclusive := calendar.AddDays(weekStart, 7)
	count, err := s.bookingRepo.CountActiveBookingsInRange(ctx, user.UserID, weekStart, weekEndExclusive)
	if err != nil {
		return fmt.Errorf("failed to check weekly quota: %w", err)
	}
	if count >= user.RequiredDaysPerWeek {
		return apperrors.NewAppError(409, "weekly booking quota reached", apperrors.ErrQuotaExceeded)
	}
	return nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) GetBookingForUserOnDate(ctx context.Context, userID string, date time.Time) (*domain.Booking, error) {
	return s.bookingRepo.FindBookingForUserOnDate(ctx, userID, calendar.DateOnly(date))
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID string, filter dto.BookingFilter) ([]domain.Booking, error) {
	repoFilter, err := toRepoFilter(filter)
	if err != nil {
		return nil, err
	}
	repoFilter.UserID = userID

	bookings, err := s.bookingRepo.ListBookings(ctx, repoFilter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bookings", slog.String("user_id", userID))
		return nil, err
	}
	if bookings == nil {
		return []domain.Booking{}, nil
	}
	return bookings, nil
}

// GetUserWeeklyStatus summarizes the user's week containing date. A day
// counts as attended only when both check-in and check-out are recorded.
func (s *bookingService) GetUserWeeklyStatus(ctx context.Context, userID string, date time.Time) (*domain.UserWeeklyStatus, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	weekStart := calendar.StartOfWeek(date)
	weekEnd := calendar.EndOfWeek(date)
	bookings, err := s.bookingRepo.ListBookings(ctx, portsrepo.BookingListFilter{
		UserID:    userID,
		Status:    domain.BookingConfirmed,
		StartDate: &weekStart,
		EndDate:   &weekEnd,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list bookings for weekly status", slog.String("user_id", userID))
		return nil, err
	}

	attended := 0
	for _, b := range bookings {
		if b.CheckInTime != nil && b.CheckOutTime != nil {
			attended++
		}
	}

	return &domain.UserWeeklyStatus{
		UserID:       userID,
		WeekNumber:   calendar.WeekNumber(date),
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		RequiredDays: user.RequiredDaysPerWeek,
		BookedDays:   len(bookings),
		AttendedDays: attended,
		Status:       attendance.WeeklyStatusFor(attended, user.RequiredDaysPerWeek),
	}, nil
}

func (s *bookingService) ListAllBookings(ctx context.Context, filter dto.BookingFilter) ([]domain.Booking, error) {
	repoFilter, err := toRepoFilter(filter)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListBookings(ctx, repoFilter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list all bookings")
		return nil, err
	}
	if bookings == nil {
		return []domain.Booking{}, nil
	}
	return bookings, nil
}

func toRepoFilter(filter dto.BookingFilter) (portsrepo.BookingListFilter, error) {
	repoFilter := portsrepo.BookingListFilter{
		Status:     domain.BookingStatus(filter.Status),
		WeekNumber: filter.WeekNumber,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if filter.StartDate != "" {
		d, err := calendar.ParseDate(filter.StartDate)
		if err != nil {
			return repoFilter, apperrors.NewAppError(400, "invalid start date", apperrors.ErrValidation)
		}
		repoFilter.StartDate = &d
	}
	if filter.EndDate != "" {
		d, err := calendar.ParseDate(filter.EndDate)
		if err != nil {
			return repoFilter, apperrors.NewAppError(400, "invalid end date", apperrors.ErrValidation)
		}
		repoFilter.EndDate = &d
	}
	return repoFilter, nil
}

// UpdateBooking moves a confirmed booking to a new seat or date, re-checking
// the same invariants as CreateBooking for whatever changed. The conditional
// UPDATE and the unique indexes decide races, as on create.
func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, requestingUserID string, isAdmin bool, req dto.UpdateBookingRequest) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != requestingUserID && !isAdmin {
		return nil, apperrors.ErrForbidden
	}
	if booking.Status != domain.BookingConfirmed {
		return nil, apperrors.NewAppError(409, "only confirmed bookings can be updated", apperrors.ErrInvalidState)
	}
	if booking.CheckInTime != nil {
		return nil, apperrors.NewAppError(409, "cannot move a booking after check-in", apperrors.ErrInvalidState)
	}

	newSeatID := booking.SeatID
	newDate := booking.BookingDate
	if req.SeatID != "" {
		newSeatID = req.SeatID
	}
	if req.BookingDate != "" {
		newDate, err = calendar.ParseDate(req.BookingDate)
		if err != nil {
			return nil, apperrors.NewAppError(400, "invalid booking date", apperrors.ErrValidation)
		}
	}
	if newSeatID == booking.SeatID && newDate.Equal(booking.BookingDate) {
		return booking, nil
	}
	if calendar.IsPastDate(newDate, time.Now()) {
		return nil, apperrors.NewAppError(400, "cannot move a booking to a past date", apperrors.ErrValidation)
	}

	if newSeatID != booking.SeatID {
		seat, err := s.seatRepo.FindSeatByID(ctx, newSeatID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError("seat not found")
			}
			return nil, err
		}
		if !seat.IsActive {
			return nil, apperrors.NewAppError(400, "seat is not active", apperrors.ErrValidation)
		}
	}

	// Moving within the same week cannot change the quota count, so only a
	// week change needs the re-check.
	newWeek := calendar.WeekNumber(newDate)
	if newWeek != booking.WeekNumber {
		user, err := s.userRepo.FindUserByID(ctx, booking.UserID)
		if err != nil {
			return nil, err
		}
		if err := s.checkWeeklyQuota(ctx, user, newDate); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if err := s.bookingRepo.UpdateBooking(ctx, bookingID, newSeatID, newDate, newWeek, requestingUserID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update booking", slog.String("booking_id", bookingID))
		return nil, err
	}

	before := *booking
	booking.SeatID = newSeatID
	booking.BookingDate = newDate
	booking.WeekNumber = newWeek
	booking.LastUpdatedAt = now
	booking.LastUpdatedBy = requestingUserID

	if s.audit != nil {
		s.audit.RecordAction(ctx, domain.AuditEntityBooking, bookingID, domain.AuditUpdate, requestingUserID, before, booking)
	}

	s.LogInfo(ctx, "Booking updated", slog.String("booking_id", bookingID))
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, requestingUserID string, isAdmin bool, reason string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != requestingUserID && !isAdmin {
		return nil, apperrors.ErrForbidden
	}
	if booking.Status != domain.BookingConfirmed {
		return nil, apperrors.NewAppError(409, "only confirmed bookings can be cancelled", apperrors.ErrInvalidState)
	}
	if booking.CheckInTime != nil {
		return nil, apperrors.NewAppError(409, "cannot cancel after check-in", apperrors.ErrInvalidState)
	}
	if calendar.IsPastDate(booking.BookingDate, time.Now()) {
		return nil, apperrors.NewAppError(409, "cannot cancel a booking for a past date", apperrors.ErrInvalidState)
	}

	now := time.Now()
	if err := s.bookingRepo.CancelBooking(ctx, bookingID, reason, requestingUserID, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Lost a race with another cancel or the missed sweep.
			return nil, apperrors.NewAppError(409, "booking is no longer confirmed", apperrors.ErrInvalidState)
		}
		s.LogError(ctx, err, "Failed to cancel booking", slog.String("booking_id", bookingID))
		return nil, err
	}

	before := *booking
	booking.Status = domain.BookingCancelled
	booking.CancelReason = reason
	booking.LastUpdatedAt = now
	booking.LastUpdatedBy = requestingUserID

	if s.audit != nil {
		s.audit.RecordAction(ctx, domain.AuditEntityBooking, bookingID, domain.AuditCancel, requestingUserID, before, booking)
	}

	s.LogInfo(ctx, "Booking cancelled", slog.String("booking_id", bookingID))
	return booking, nil
}

func (s *bookingService) CheckIn(ctx context.Context, bookingID string, requestingUserID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	now := time.Now()
	if !calendar.SameDate(booking.BookingDate, now) {
		return nil, apperrors.NewAppError(409, "check-in is only possible on the booking date", apperrors.ErrInvalidState)
	}

	if err := s.bookingRepo.SetCheckIn(ctx, bookingID, now); err != nil {
		return nil, err
	}

	booking.CheckInTime = &now
	if s.audit != nil {
		s.audit.RecordAction(ctx, domain.AuditEntityBooking, bookingID, domain.AuditCheckIn, requestingUserID, nil, booking)
	}

	s.LogInfo(ctx, "Checked in", slog.String("booking_id", bookingID))
	return booking, nil
}

func (s *bookingService) CheckOut(ctx context.Context, bookingID string, requestingUserID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	if booking.CheckInTime == nil {
		return nil, apperrors.NewAppError(409, "cannot check out before checking in", apperrors.ErrInvalidState)
	}

	now := time.Now()
	if err := s.bookingRepo.SetCheckOut(ctx, bookingID, now); err != nil {
		return nil, err
	}

	booking.CheckOutTime = &now
	if s.audit != nil {
		s.audit.RecordAction(ctx, domain.AuditEntityBooking, bookingID, domain.AuditCheckOut, requestingUserID, nil, booking)
	}

	s.LogInfo(ctx, "Checked out", slog.String("booking_id", bookingID))
	return booking, nil
}

// MarkMissedBookings flips confirmed bookings with no check-in, up to and
// including today, to missed. Runs from the end-of-day sweep; safe to run
// repeatedly.
func (s *bookingService) MarkMissedBookings(ctx context.Context) (int64, error) {
	today := calendar.DateOnly(time.Now())
	affected, err := s.bookingRepo.MarkMissedThrough(ctx, today, systemActor)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark missed bookings")
		return 0, err
	}
	if affected > 0 {
		s.LogInfo(ctx, "Marked missed bookings", slog.Int64("count", affected))
	}
	return affected, nil
}
