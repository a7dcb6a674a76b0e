package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/apperrors"
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
	"github.com/SeatLogix/desk_booking_app/internal/utils/calendar"
	"github.com/google/uuid"
)

// seatService implements the SeatSvcFacade interface
type seatService struct {
	BaseService
	seatRepo portsrepo.SeatRepositoryFacade
}

// NewSeatService creates a new seat service
func NewSeatService(repo portsrepo.SeatRepositoryFacade) portssvc.SeatSvcFacade {
	return &seatService{seatRepo: repo}
}

// Ensure seatService implements the SeatSvcFacade interface
var _ portssvc.SeatSvcFacade = (*seatService)(nil)

func (s *seatService) CreateSeat(ctx context.Context, req dto.CreateSeatRequest, requestingUserID string) (*domain.Seat, error) {
	now := time.Now()
	seat := domain.Seat{
		SeatID:      uuid.NewString(),
		SeatNumber:  req.SeatNumber,
		Description: req.Description,
		Location:    req.Location,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.seatRepo.SaveSeat(ctx, seat); err != nil {
		s.LogError(ctx, err, "Failed to create seat", slog.Int("seat_number", req.SeatNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Seat created", slog.String("seat_id", seat.SeatID), slog.Int("seat_number", seat.SeatNumber))
	return &seat, nil
}

func (s *seatService) GetSeatByID(ctx context.Context, seatID string) (*domain.Seat, error) {
	seat, err := s.seatRepo.FindSeatByID(ctx, seatID)
	if err != nil {
		return nil, err
	}
	return seat, nil
}

func (s *seatService) ListSeats(ctx context.Context, includeInactive bool) ([]domain.Seat, error) {
	seats, err := s.seatRepo.FindSeats(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list seats")
		return nil, err
	}
	if seats == nil {
		return []domain.Seat{}, nil
	}
	return seats, nil
}

func (s *seatService) GetAvailability(ctx context.Context, date time.Time) ([]domain.Seat, []domain.BookedSeat, int, error) {
	date = calendar.DateOnly(date)
	if calendar.IsPastDate(date, time.Now()) {
		return nil, nil, 0, apperrors.NewAppError(400, "availability lookups are for today onwards", apperrors.ErrValidation)
	}

	available, err := s.seatRepo.FindAvailableSeats(ctx, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to find available seats", slog.String("date", calendar.FormatDate(date)))
		return nil, nil, 0, err
	}

	booked, err := s.seatRepo.FindBookedSeats(ctx, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to find booked seats", slog.String("date", calendar.FormatDate(date)))
		return nil, nil, 0, err
	}

	total, err := s.seatRepo.CountActiveSeats(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count active seats")
		return nil, nil, 0, err
	}

	return available, booked, total, nil
}

func (s *seatService) UpdateSeat(ctx context.Context, seatID string, req dto.UpdateSeatRequest, requestingUserID string) (*domain.Seat, error) {
	seat, err := s.seatRepo.FindSeatByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		seat.Description = *req.Description
	}
	if req.Location != nil {
		seat.Location = *req.Location
	}
	if req.IsActive != nil {
		seat.IsActive = *req.IsActive
	}
	seat.LastUpdatedAt = time.Now()
	seat.LastUpdatedBy = requestingUserID

	if err := s.seatRepo.UpdateSeat(ctx, *seat); err != nil {
		s.LogError(ctx, err, "Failed to update seat", slog.String("seat_id", seatID))
		return nil, err
	}
	return seat, nil
}
