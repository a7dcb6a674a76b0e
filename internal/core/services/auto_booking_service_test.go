package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/apperrors"
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/core/services"
	"github.com/SeatLogix/desk_booking_app/internal/utils/calendar"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// All allocation tests anchor the clock on Monday 2024-01-01, so the window
// is the weeks of Jan 8, Jan 15 and Jan 22.
var allocTestNow = time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

func utcDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type AutoBookingServiceTestSuite struct {
	suite.Suite
	mockBookingRepo *MockBookingRepository
	mockSeatReader  *MockSeatReader
	mockUserRepo    *MockUserRepository
	service         portssvc.AutoBookingSvcFacade
}

func (suite *AutoBookingServiceTestSuite) SetupTest() {
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockSeatReader = new(MockSeatReader)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAutoBookingService(
		suite.mockBookingRepo,
		suite.mockSeatReader,
		suite.mockUserRepo,
		services.WithAllocationClock(func() time.Time { return allocTestNow }),
	)
}

func (suite *AutoBookingServiceTestSuite) TestAllocateForUser_BooksPreferredDaysOverWindow() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{
		UserID:              userID,
		IsActive:            true,
		DefaultWorkDays:     []int{1, 4}, // Monday, Thursday
		RequiredDaysPerWeek: 2,
	}
	seat := domain.Seat{SeatID: uuid.NewString(), SeatNumber: 1, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockBookingRepo.On("FindBookingForUserOnDate", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Times(6)
	suite.mockSeatReader.On("FindAvailableSeats", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Seat{seat}, nil).Times(6)
	// The bookings are attributed to the actor who triggered the run, here the
	// user themselves.
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.UserID == userID && b.IsAutoBooked && b.Status == domain.BookingConfirmed && b.CreatedBy == userID
	})).Return(nil).Times(6)

	result, err := suite.service.AllocateForUser(ctx, userID, userID)

	suite.Require().NoError(err)
	suite.Equal(6, result.Created())
	suite.Empty(result.SkippedDates)
	suite.Empty(result.FailedDates)

	wantDates := []time.Time{
		utcDate(2024, time.January, 8),
		utcDate(2024, time.January, 11),
		utcDate(2024, time.January, 15),
		utcDate(2024, time.January, 18),
		utcDate(2024, time.January, 22),
		utcDate(2024, time.January, 25),
	}
	for i, booking := range result.CreatedBookings {
		suite.True(wantDates[i].Equal(booking.BookingDate), "booking %d on %s, want %s", i, booking.BookingDate, wantDates[i])
		suite.Equal(calendar.WeekNumber(wantDates[i]), booking.WeekNumber)
	}

	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *AutoBookingServiceTestSuite) TestAllocateForUser_SkipsDatesAlreadyBooked() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{
		UserID:              userID,
		IsActive:            true,
		DefaultWorkDays:     []int{1},
		RequiredDaysPerWeek: 1,
	}
	seat := domain.Seat{SeatID: uuid.NewString(), SeatNumber: 3, IsActive: true}
	existing := &domain.Booking{BookingID: uuid.NewString(), UserID: userID, BookingDate: utcDate(2024, time.January, 8)}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockBookingRepo.On("FindBookingForUserOnDate", ctx, userID, utcDate(2024, time.January, 8)).Return(existing, nil).Once()
	suite.mockBookingRepo.On("FindBookingForUserOnDate", ctx, userID, utcDate(2024, time.January, 15)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBookingRepo.On("FindBookingForUserOnDate", ctx, userID, utcDate(2024, time.January, 22)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSeatReader.On("FindAvailableSeats", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Seat{seat}, nil).Times(2)
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.AnythingOfType("domain.Booking")).Return(nil).Times(2)

	result, err := suite.service.AllocateForUser(ctx, userID, userID)

	suite.Require().NoError(err)
	suite.Equal(2, result.Created())
	suite.Equal([]string{"2024-01-08"}, result.SkippedDates)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *AutoBookingServiceTestSuite) TestAllocateForUser_RetriesNextSeatOnConflict() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{
		UserID:              userID,
		IsActive:            true,
		DefaultWorkDays:     []int{3},
		RequiredDaysPerWeek: 1,
	}
	seatA := domain.Seat{SeatID: uuid.NewString(), SeatNumber: 1, IsActive: true}
	seatB := domain.Seat{SeatID: uuid.NewString(), SeatNumber: 2, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockBookingRepo.On("FindBookingForUserOnDate", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Times(3)
	suite.mockSeatReader.On("FindAvailableSeats", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Seat{seatA, seatB}, nil).Times(3)
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.SeatID == seatA.SeatID
	})).Return(apperrors.ErrConflict).Times(3)
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.SeatID == seatB.SeatID
	})).Return(nil).Times(3)

	result, err := suite.service.AllocateForUser(ctx, userID, userID)

	suite.Require().NoError(err)
	suite.Equal(3, result.Created())
	suite.Empty(result.FailedDates)
	for _, booking := range result.CreatedBookings {
		suite.Equal(seatB.SeatID, booking.SeatID)
	}
}

func (suite *AutoBookingServiceTestSuite) TestAllocateForUser_RecordsFailureWhenAllSeatsLost() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{
		UserID:              userID,
		IsActive:            true,
		DefaultWorkDays:     []int{2},
		RequiredDaysPerWeek: 1,
	}
	seat := domain.Seat{SeatID: uuid.NewString(), SeatNumber: 1, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockBookingRepo.On("FindBookingForUserOnDate", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Times(3)
	suite.mockSeatReader.On("FindAvailableSeats", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Seat{seat}, nil).Times(3)
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.AnythingOfType("domain.Booking")).Return(apperrors.ErrConflict).Times(3)

	result, err := suite.service.AllocateForUser(ctx, userID, userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Created())
	suite.Equal([]domain.AllocationFailure{
		{Date: "2024-01-09", Reason: "all available seats were taken concurrently"},
		{Date: "2024-01-16", Reason: "all available seats were taken concurrently"},
		{Date: "2024-01-23", Reason: "all available seats were taken concurrently"},
	}, result.FailedDates)
}

func (suite *AutoBookingServiceTestSuite) TestAllocateForUser_RecordsFailureWhenNoSeats() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{
		UserID:              userID,
		IsActive:            true,
		DefaultWorkDays:     []int{5},
		RequiredDaysPerWeek: 1,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockBookingRepo.On("FindBookingForUserOnDate", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Times(3)
	suite.mockSeatReader.On("FindAvailableSeats", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Seat{}, nil).Times(3)

	result, err := suite.service.AllocateForUser(ctx, userID, userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Created())
	suite.Empty(result.SkippedDates)
	suite.Equal([]domain.AllocationFailure{
		{Date: "2024-01-12", Reason: "no available seats"},
		{Date: "2024-01-19", Reason: "no available seats"},
		{Date: "2024-01-26", Reason: "no available seats"},
	}, result.FailedDates)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBooking", mock.Anything, mock.Anything)
}

func (suite *AutoBookingServiceTestSuite) TestAllocateForUser_TruncatesWorkDaysToQuota() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{
		UserID:              userID,
		IsActive:            true,
		DefaultWorkDays:     []int{1, 2, 3, 4, 5},
		RequiredDaysPerWeek: 2,
	}
	seat := domain.Seat{SeatID: uuid.NewString(), SeatNumber: 1, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockBookingRepo.On("FindBookingForUserOnDate", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Times(6)
	suite.mockSeatReader.On("FindAvailableSeats", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Seat{seat}, nil).Times(6)
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.AnythingOfType("domain.Booking")).Return(nil).Times(6)

	result, err := suite.service.AllocateForUser(ctx, userID, userID)

	suite.Require().NoError(err)
	suite.Equal(6, result.Created())
	for _, booking := range result.CreatedBookings {
		weekday := booking.BookingDate.Weekday()
		suite.True(weekday == time.Monday || weekday == time.Tuesday, "unexpected weekday %s", weekday)
	}
}

func (suite *AutoBookingServiceTestSuite) TestAllocateForUser_NoPreferences() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	result, err := suite.service.AllocateForUser(ctx, userID, userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBooking", mock.Anything, mock.Anything)
}

func (suite *AutoBookingServiceTestSuite) TestResetAndAllocate_CancelsOnlyFutureAutoBookings() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{
		UserID:              userID,
		IsActive:            true,
		DefaultWorkDays:     []int{1},
		RequiredDaysPerWeek: 1,
	}
	seat := domain.Seat{SeatID: uuid.NewString(), SeatNumber: 1, IsActive: true}

	futureAuto := domain.Booking{BookingID: uuid.NewString(), UserID: userID, IsAutoBooked: true, Status: domain.BookingConfirmed, BookingDate: utcDate(2024, time.January, 10)}
	futureManual := domain.Booking{BookingID: uuid.NewString(), UserID: userID, IsAutoBooked: false, Status: domain.BookingConfirmed, BookingDate: utcDate(2024, time.January, 12)}
	todayAuto := domain.Booking{BookingID: uuid.NewString(), UserID: userID, IsAutoBooked: true, Status: domain.BookingConfirmed, BookingDate: utcDate(2024, time.January, 1)}

	// An admin triggers the reset; cancellations and the fresh bookings are
	// attributed to them, not to the owning user.
	adminID := uuid.NewString()

	suite.mockBookingRepo.On("ListBookings", ctx, mock.Anything).Return([]domain.Booking{futureAuto, futureManual, todayAuto}, nil).Once()
	suite.mockBookingRepo.On("CancelBooking", ctx, futureAuto.BookingID, mock.AnythingOfType("string"), adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	// The follow-up allocation.
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockBookingRepo.On("FindBookingForUserOnDate", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Times(3)
	suite.mockSeatReader.On("FindAvailableSeats", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Seat{seat}, nil).Times(3)
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.CreatedBy == adminID
	})).Return(nil).Times(3)

	result, err := suite.service.ResetAndAllocate(ctx, userID, adminID)

	suite.Require().NoError(err)
	suite.Equal(3, result.Created())
	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "CancelBooking", ctx, futureManual.BookingID, mock.Anything, mock.Anything, mock.Anything)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "CancelBooking", ctx, todayAuto.BookingID, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AutoBookingServiceTestSuite) TestRunFleetAllocation_CountsOutcomes() {
	ctx := context.Background()
	seat := domain.Seat{SeatID: uuid.NewString(), SeatNumber: 1, IsActive: true}

	allocatable := domain.User{UserID: uuid.NewString(), IsActive: true, DefaultWorkDays: []int{1}, RequiredDaysPerWeek: 1}
	alreadyBooked := domain.User{UserID: uuid.NewString(), IsActive: true, DefaultWorkDays: []int{2}, RequiredDaysPerWeek: 1}
	noPrefs := domain.User{UserID: uuid.NewString(), IsActive: true}

	suite.mockUserRepo.On("FindActiveUsersWithPreferences", ctx).Return([]domain.User{allocatable, alreadyBooked, noPrefs}, nil).Once()

	suite.mockBookingRepo.On("CountActiveBookingsInRange", ctx, allocatable.UserID, utcDate(2024, time.January, 8), utcDate(2024, time.January, 29)).Return(0, nil).Once()
	suite.mockBookingRepo.On("CountActiveBookingsInRange", ctx, alreadyBooked.UserID, utcDate(2024, time.January, 8), utcDate(2024, time.January, 29)).Return(2, nil).Once()

	// Allocation for the bookable user, attributed to the system actor.
	suite.mockUserRepo.On("FindUserByID", ctx, allocatable.UserID).Return(&allocatable, nil).Once()
	suite.mockBookingRepo.On("FindBookingForUserOnDate", ctx, allocatable.UserID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Times(3)
	suite.mockSeatReader.On("FindAvailableSeats", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Seat{seat}, nil).Times(3)
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.CreatedBy == "system"
	})).Return(nil).Times(3)

	summary, err := suite.service.RunFleetAllocation(ctx)

	suite.Require().NoError(err)
	suite.Equal(3, summary.TotalUsers)
	suite.Equal(1, summary.SuccessCount)
	suite.Equal(1, summary.SkippedCount)
	suite.Equal(1, summary.NoPrefsCount)
	suite.Equal(0, summary.FailedCount)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *AutoBookingServiceTestSuite) TestRunFleetAllocation_SkipsAdmins() {
	ctx := context.Background()
	seat := domain.Seat{SeatID: uuid.NewString(), SeatNumber: 1, IsActive: true}

	admin := domain.User{
		UserID:              uuid.NewString(),
		Role:                domain.RoleAdmin,
		IsActive:            true,
		DefaultWorkDays:     []int{1, 2},
		RequiredDaysPerWeek: 2,
	}
	employee := domain.User{UserID: uuid.NewString(), Role: domain.RoleEmployee, IsActive: true, DefaultWorkDays: []int{1}, RequiredDaysPerWeek: 1}

	// Even if the repository returns an admin with preferences set, the sweep
	// must not book a seat for them.
	suite.mockUserRepo.On("FindActiveUsersWithPreferences", ctx).Return([]domain.User{admin, employee}, nil).Once()

	suite.mockBookingRepo.On("CountActiveBookingsInRange", ctx, employee.UserID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, employee.UserID).Return(&employee, nil).Once()
	suite.mockBookingRepo.On("FindBookingForUserOnDate", ctx, employee.UserID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Times(3)
	suite.mockSeatReader.On("FindAvailableSeats", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Seat{seat}, nil).Times(3)
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.UserID == employee.UserID
	})).Return(nil).Times(3)

	summary, err := suite.service.RunFleetAllocation(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, summary.TotalUsers)
	suite.Equal(1, summary.SuccessCount)
	suite.Equal(0, summary.FailedCount)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "CountActiveBookingsInRange", ctx, admin.UserID, mock.Anything, mock.Anything)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBooking", ctx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.UserID == admin.UserID
	}))
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func TestAutoBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AutoBookingServiceTestSuite))
}
