package repositories

import (
	"context"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// SeatReader defines read operations for seat data
type SeatReader interface {
	// FindSeatByID retrieves a specific seat by its ID.
	FindSeatByID(ctx context.Context, seatID string) (*domain.Seat, error)

	// FindSeats retrieves all seats, optionally including inactive ones.
	FindSeats(ctx context.Context, includeInactive bool) ([]domain.Seat, error)

	// FindAvailableSeats retrieves the active seats with no non-cancelled
	// booking on the given date, ordered by seat number.
	FindAvailableSeats(ctx context.Context, date time.Time) ([]domain.Seat, error)

	// FindBookedSeats retrieves the active seats holding a non-cancelled
	// booking on the given date, with the occupying booking and user,
	// ordered by seat number.
	FindBookedSeats(ctx context.Context, date time.Time) ([]domain.BookedSeat, error)

	// CountActiveSeats returns the number of active seats.
	CountActiveSeats(ctx context.Context) (int, error)
}

// SeatWriter defines write operations for seat data
type SeatWriter interface {
	// SaveSeat persists a new seat. Returns apperrors.ErrDuplicate if the
	// seat number is already taken.
	SaveSeat(ctx context.Context, seat domain.Seat) error

	// UpdateSeat updates an existing seat's details.
	UpdateSeat(ctx context.Context, seat domain.Seat) error
}

// SeatRepositoryFacade combines all seat-related repository interfaces
type SeatRepositoryFacade interface {
	SeatReader
	SeatWriter
}
