package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/apperrors"
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/core/services"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
	"github.com/SeatLogix/desk_booking_app/internal/utils/calendar"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SeatRepository (reader side shared via MockSeatReader) ---
type MockSeatRepository struct {
	MockSeatReader
}

func (m *MockSeatRepository) SaveSeat(ctx context.Context, seat domain.Seat) error {
	args := m.Called(ctx, seat)
	return args.Error(0)
}

func (m *MockSeatRepository) UpdateSeat(ctx context.Context, seat domain.Seat) error {
	args := m.Called(ctx, seat)
	return args.Error(0)
}

// --- Test Suite ---
type SeatServiceTestSuite struct {
	suite.Suite
	mockSeatRepo *MockSeatRepository
	service      portssvc.SeatSvcFacade
}

func (suite *SeatServiceTestSuite) SetupTest() {
	suite.mockSeatRepo = new(MockSeatRepository)
	suite.service = services.NewSeatService(suite.mockSeatRepo)
}

func (suite *SeatServiceTestSuite) TestCreateSeat_Success() {
	ctx := context.Background()
	adminID := uuid.NewString()

	suite.mockSeatRepo.On("SaveSeat", ctx, mock.MatchedBy(func(s domain.Seat) bool {
		return s.SeatNumber == 12 && s.IsActive && s.CreatedBy == adminID
	})).Return(nil).Once()

	seat, err := suite.service.CreateSeat(ctx, dto.CreateSeatRequest{SeatNumber: 12, Location: "3rd floor"}, adminID)

	suite.Require().NoError(err)
	suite.NotEmpty(seat.SeatID)
	suite.True(seat.IsActive)
	suite.mockSeatRepo.AssertExpectations(suite.T())
}

func (suite *SeatServiceTestSuite) TestCreateSeat_DuplicateNumber() {
	ctx := context.Background()

	suite.mockSeatRepo.On("SaveSeat", ctx, mock.AnythingOfType("domain.Seat")).Return(apperrors.ErrDuplicate).Once()

	seat, err := suite.service.CreateSeat(ctx, dto.CreateSeatRequest{SeatNumber: 12}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(seat)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *SeatServiceTestSuite) TestGetAvailability_Partition() {
	ctx := context.Background()
	date := calendar.DateOnly(time.Now().AddDate(0, 0, 2))

	free := []domain.Seat{
		{SeatID: uuid.NewString(), SeatNumber: 1, IsActive: true},
		{SeatID: uuid.NewString(), SeatNumber: 3, IsActive: true},
	}
	booked := []domain.BookedSeat{
		{
			Seat:         domain.Seat{SeatID: uuid.NewString(), SeatNumber: 2, IsActive: true},
			BookingID:    uuid.NewString(),
			BookedByID:   uuid.NewString(),
			BookedByName: "Sam Chen",
		},
	}

	suite.mockSeatRepo.On("FindAvailableSeats", ctx, date).Return(free, nil).Once()
	suite.mockSeatRepo.On("FindBookedSeats", ctx, date).Return(booked, nil).Once()
	suite.mockSeatRepo.On("CountActiveSeats", ctx).Return(3, nil).Once()

	available, occupied, total, err := suite.service.GetAvailability(ctx, date)

	suite.Require().NoError(err)
	suite.Len(available, 2)
	suite.Len(occupied, 1)
	suite.Equal(3, total)
	suite.Equal("Sam Chen", occupied[0].BookedByName)
	suite.mockSeatRepo.AssertExpectations(suite.T())
}

func (suite *SeatServiceTestSuite) TestGetAvailability_PastDate() {
	ctx := context.Background()

	available, occupied, total, err := suite.service.GetAvailability(ctx, time.Now().AddDate(0, 0, -3))

	suite.Require().Error(err)
	suite.Nil(available)
	suite.Nil(occupied)
	suite.Zero(total)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSeatRepo.AssertNotCalled(suite.T(), "FindAvailableSeats", mock.Anything, mock.Anything)
}

func (suite *SeatServiceTestSuite) TestUpdateSeat_Deactivate() {
	ctx := context.Background()
	seatID := uuid.NewString()
	adminID := uuid.NewString()
	inactive := false

	existing := &domain.Seat{SeatID: seatID, SeatNumber: 7, IsActive: true}

	suite.mockSeatRepo.On("FindSeatByID", ctx, seatID).Return(existing, nil).Once()
	suite.mockSeatRepo.On("UpdateSeat", ctx, mock.MatchedBy(func(s domain.Seat) bool {
		return s.SeatID == seatID && !s.IsActive && s.LastUpdatedBy == adminID
	})).Return(nil).Once()

	seat, err := suite.service.UpdateSeat(ctx, seatID, dto.UpdateSeatRequest{IsActive: &inactive}, adminID)

	suite.Require().NoError(err)
	suite.False(seat.IsActive)
	suite.mockSeatRepo.AssertExpectations(suite.T())
}

func TestSeatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SeatServiceTestSuite))
}
