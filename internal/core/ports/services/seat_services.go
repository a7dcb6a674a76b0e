package services

import (
	"context"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
)

// SeatReaderSvc defines read operations for seat data
type SeatReaderSvc interface {
	// GetSeatByID retrieves a seat by ID.
	GetSeatByID(ctx context.Context, seatID string) (*domain.Seat, error)

	// ListSeats retrieves all seats, optionally including inactive ones.
	ListSeats(ctx context.Context, includeInactive bool) ([]domain.Seat, error)

	// GetAvailability partitions the active seats on a date into free and
	// occupied, plus the active seat count. Past dates return
	// apperrors.ErrValidation.
	GetAvailability(ctx context.Context, date time.Time) ([]domain.Seat, []domain.BookedSeat, int, error)
}

// SeatWriterSvc defines write operations for seat data
type SeatWriterSvc interface {
	// CreateSeat registers a new seat.
	CreateSeat(ctx context.Context, req dto.CreateSeatRequest, requestingUserID string) (*domain.Seat, error)

	// UpdateSeat updates an existing seat.
	UpdateSeat(ctx context.Context, seatID string, req dto.UpdateSeatRequest, requestingUserID string) (*domain.Seat, error)
}

// SeatSvcFacade combines all seat-related service interfaces
type SeatSvcFacade interface {
	SeatReaderSvc
	SeatWriterSvc
}
