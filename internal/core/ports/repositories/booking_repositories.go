package repositories

import (
	"context"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// BookingListFilter narrows a booking listing. Zero values mean no constraint.
type BookingListFilter struct {
	UserID     string
	Status     domain.BookingStatus
	StartDate  *time.Time
	EndDate    *time.Time
	WeekNumber int
	Limit      int
	Offset     int
}

// BookingReader defines read operations for booking data
type BookingReader interface {
	// FindBookingByID retrieves a specific booking by its ID.
	FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)

	// FindBookingForUserOnDate retrieves a user's non-cancelled booking on a
	// date, or apperrors.ErrNotFound when none exists.
	FindBookingForUserOnDate(ctx context.Context, userID string, date time.Time) (*domain.Booking, error)

	// ListBookings retrieves bookings matching the filter, newest date first.
	ListBookings(ctx context.Context, filter BookingListFilter) ([]domain.Booking, error)

	// CountActiveBookingsInRange counts a user's non-cancelled bookings with
	// booking_date in [from, to).
	CountActiveBookingsInRange(ctx context.Context, userID string, from, to time.Time) (int, error)
}

// BookingWriter defines write operations for booking data
type BookingWriter interface {
	// SaveBooking persists a new booking. The partial unique indexes on
	// (seat_id, booking_date) and (user_id, booking_date) make this the
	// point where double-booking races surface; wins return nil, losses
	// return apperrors.ErrConflict.
	SaveBooking(ctx context.Context, booking domain.Booking) error

	// UpdateBooking rewrites a confirmed booking's seat, date and week
	// number. The same partial unique indexes as SaveBooking apply, so a
	// losing move returns apperrors.ErrConflict; a booking that is no longer
	// confirmed returns apperrors.ErrNotFound.
	UpdateBooking(ctx context.Context, bookingID string, seatID string, bookingDate time.Time, weekNumber int, updatedBy string, updatedAt time.Time) error

	// CancelBooking transitions a confirmed booking to cancelled. Returns
	// apperrors.ErrNotFound when the booking is not currently confirmed.
	CancelBooking(ctx context.Context, bookingID string, reason string, cancelledBy string, cancelledAt time.Time) error

	// SetCheckIn records the check-in time on a confirmed booking that has
	// none yet.
	SetCheckIn(ctx context.Context, bookingID string, checkInTime time.Time) error

	// SetCheckOut records the check-out time on a confirmed, checked-in booking.
	SetCheckOut(ctx context.Context, bookingID string, checkOutTime time.Time) error

	// MarkMissedThrough transitions confirmed, never-checked-in bookings dated
	// on or before the cutoff to missed. Returns the number of rows changed.
	MarkMissedThrough(ctx context.Context, cutoff time.Time, updatedBy string) (int64, error)
}

// BookingRepositoryFacade combines all booking-related repository interfaces
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
}

// BookingRepositoryWithTx extends BookingRepositoryFacade with transaction capabilities
type BookingRepositoryWithTx interface {
	BookingRepositoryFacade
	TransactionManager
}
