package services

import (
	"context"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
)

// BookingReaderSvc defines read operations for booking data
type BookingReaderSvc interface {
	// GetBookingByID retrieves a booking by ID.
	GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)

	// GetBookingForUserOnDate retrieves the user's non-cancelled booking on
	// the given date, or apperrors.ErrNotFound when none exists.
	GetBookingForUserOnDate(ctx context.Context, userID string, date time.Time) (*domain.Booking, error)

	// GetUserWeeklyStatus summarizes the user's bookings and attendance for
	// the week containing the given date against their weekly quota.
	GetUserWeeklyStatus(ctx context.Context, userID string, date time.Time) (*domain.UserWeeklyStatus, error)

	// ListUserBookings retrieves a user's bookings matching the filter.
	ListUserBookings(ctx context.Context, userID string, filter dto.BookingFilter) ([]domain.Booking, error)

	// ListAllBookings retrieves bookings across all users for admins.
	ListAllBookings(ctx context.Context, filter dto.BookingFilter) ([]domain.Booking, error)
}

// BookingWriterSvc defines write operations for booking data
type BookingWriterSvc interface {
	// CreateBooking books a seat for the user on a date. Enforces one booking
	// per user per day, seat exclusivity and the weekly quota cap.
	CreateBooking(ctx context.Context, userID string, req dto.CreateBookingRequest) (*domain.Booking, error)

	// UpdateBooking moves a confirmed booking to a different seat or date.
	// Seat, date and quota invariants are re-checked the same way CreateBooking
	// checks them. Only the booking owner or an admin may update.
	UpdateBooking(ctx context.Context, bookingID string, requestingUserID string, isAdmin bool, req dto.UpdateBookingRequest) (*domain.Booking, error)

	// CancelBooking cancels a confirmed booking. Only the booking owner or an
	// admin may cancel, and only before the day is over.
	CancelBooking(ctx context.Context, bookingID string, requestingUserID string, isAdmin bool, reason string) (*domain.Booking, error)

	// CheckIn records presence at the booked seat for today.
	CheckIn(ctx context.Context, bookingID string, requestingUserID string) (*domain.Booking, error)

	// CheckOut records departure from the booked seat.
	CheckOut(ctx context.Context, bookingID string, requestingUserID string) (*domain.Booking, error)

	// MarkMissedBookings sweeps confirmed, never-checked-in bookings from past
	// days into the missed state. Returns the number of bookings changed.
	MarkMissedBookings(ctx context.Context) (int64, error)
}

// BookingSvcFacade combines all booking-related service interfaces
type BookingSvcFacade interface {
	BookingReaderSvc
	BookingWriterSvc
}
