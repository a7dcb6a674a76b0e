package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/apperrors"
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
	"github.com/SeatLogix/desk_booking_app/internal/handlers"
	"github.com/SeatLogix/desk_booking_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BookingService ---
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetBookingForUserOnDate(ctx context.Context, userID string, date time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListUserBookings(ctx context.Context, userID string, filter dto.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListAllBookings(ctx context.Context, filter dto.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingService) CreateBooking(ctx context.Context, userID string, req dto.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CancelBooking(ctx context.Context, bookingID string, requestingUserID string, isAdmin bool, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, requestingUserID, isAdmin, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CheckIn(ctx context.Context, bookingID string, requestingUserID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CheckOut(ctx context.Context, bookingID string, requestingUserID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) MarkMissedBookings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingService) UpdateBooking(ctx context.Context, bookingID string, requestingUserID string, isAdmin bool, req dto.UpdateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, requestingUserID, isAdmin, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetUserWeeklyStatus(ctx context.Context, userID string, date time.Time) (*domain.UserWeeklyStatus, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWeeklyStatus), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.BookingSvcFacade = (*MockBookingService)(nil)

// --- Mock UserService (only what RequireRoles and isAdmin call) ---
type MockUserService struct {
	portssvc.UserSvcFacade
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite ---
type BookingHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockBookingService *MockBookingService
	mockUserService    *MockUserService
	jwtSecret          string
	userID             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *BookingHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "dba-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterCustomValidators())

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockBookingService = new(MockBookingService)
	suite.mockUserService = new(MockUserService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger registration
	}
	services := &portssvc.ServiceContainer{
		Booking: suite.mockBookingService,
		User:    suite.mockUserService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *BookingHandlerTestSuite) doRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *BookingHandlerTestSuite) TestCreateBooking_Success() {
	seatID := uuid.NewString()
	req := dto.CreateBookingRequest{SeatID: seatID, BookingDate: "2024-04-08"}
	booking := &domain.Booking{
		BookingID:   uuid.NewString(),
		UserID:      suite.userID,
		SeatID:      seatID,
		BookingDate: time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC),
		WeekNumber:  15,
		Status:      domain.BookingConfirmed,
	}
	suite.mockBookingService.On("CreateBooking", mock.Anything, suite.userID, req).Return(booking, nil)

	w := suite.doRequest(http.MethodPost, "/api/v1/bookings", req, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.BookingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(booking.BookingID, resp.BookingID)
	suite.Equal("confirmed", resp.Status)
	suite.Equal("2024-04-08", resp.BookingDate)
	suite.mockBookingService.AssertExpectations(suite.T())
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_QuotaReached() {
	req := dto.CreateBookingRequest{SeatID: uuid.NewString(), BookingDate: "2024-04-08"}
	suite.mockBookingService.On("CreateBooking", mock.Anything, suite.userID, req).
		Return(nil, apperrors.NewConflictError("weekly booking quota reached"))

	w := suite.doRequest(http.MethodPost, "/api/v1/bookings", req, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockBookingService.AssertExpectations(suite.T())
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_InvalidBody() {
	req := map[string]string{"seatID": "not-a-uuid", "bookingDate": "someday"}

	w := suite.doRequest(http.MethodPost, "/api/v1/bookings", req, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBookingService.AssertNotCalled(suite.T(), "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_NoToken() {
	req := dto.CreateBookingRequest{SeatID: uuid.NewString(), BookingDate: "2024-04-08"}

	w := suite.doRequest(http.MethodPost, "/api/v1/bookings", req, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBookingService.AssertNotCalled(suite.T(), "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingHandlerTestSuite) TestListMyBookings_FiltersBound() {
	expected := []domain.Booking{{
		BookingID:  uuid.NewString(),
		UserID:     suite.userID,
		SeatID:     uuid.NewString(),
		Status:     domain.BookingConfirmed,
		WeekNumber: 15,
	}}
	suite.mockBookingService.On("ListUserBookings", mock.Anything, suite.userID,
		mock.MatchedBy(func(f dto.BookingFilter) bool {
			return f.Status == "confirmed" && f.WeekNumber == 15
		})).Return(expected, nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/bookings?status=confirmed&weekNumber=15", nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListBookingsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Bookings, 1)
	suite.mockBookingService.AssertExpectations(suite.T())
}

func (suite *BookingHandlerTestSuite) TestListAllBookings_ForbiddenForEmployee() {
	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).
		Return(&domain.User{UserID: suite.userID, Role: domain.RoleEmployee, IsActive: true}, nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/bookings/all", nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockBookingService.AssertNotCalled(suite.T(), "ListAllBookings", mock.Anything, mock.Anything)
}

func (suite *BookingHandlerTestSuite) TestListAllBookings_AllowedForAdmin() {
	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).
		Return(&domain.User{UserID: suite.userID, Role: domain.RoleAdmin, IsActive: true}, nil)
	suite.mockBookingService.On("ListAllBookings", mock.Anything, mock.AnythingOfType("dto.BookingFilter")).
		Return([]domain.Booking{}, nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/bookings/all", nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockBookingService.AssertExpectations(suite.T())
}

func (suite *BookingHandlerTestSuite) TestCancelBooking_OwnerNotAdmin() {
	bookingID := uuid.NewString()
	cancelled := &domain.Booking{
		BookingID: bookingID,
		UserID:    suite.userID,
		Status:    domain.BookingCancelled,
	}
	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).
		Return(&domain.User{UserID: suite.userID, Role: domain.RoleEmployee, IsActive: true}, nil)
	suite.mockBookingService.On("CancelBooking", mock.Anything, bookingID, suite.userID, false, "plans changed").
		Return(cancelled, nil)

	w := suite.doRequest(http.MethodPost, "/api/v1/bookings/"+bookingID+"/cancel",
		dto.CancelBookingRequest{Reason: "plans changed"}, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BookingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("cancelled", resp.Status)
	suite.mockBookingService.AssertExpectations(suite.T())
}

func (suite *BookingHandlerTestSuite) TestCheckIn_NotFound() {
	bookingID := uuid.NewString()
	suite.mockBookingService.On("CheckIn", mock.Anything, bookingID, suite.userID).
		Return(nil, apperrors.ErrNotFound)

	w := suite.doRequest(http.MethodPost, "/api/v1/bookings/"+bookingID+"/check-in", nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockBookingService.AssertExpectations(suite.T())
}

func TestBookingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}
