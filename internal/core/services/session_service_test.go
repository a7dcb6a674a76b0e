package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/apperrors"
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/core/services"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindActiveSessionByUserID(ctx context.Context, userID string) (*domain.DesktopSession, error) {
	args := m.Called(ctx, userID)
	var session *domain.DesktopSession
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.DesktopSession)
	}
	return session, args.Error(1)
}

func (m *MockSessionRepository) FindIdleSessions(ctx context.Context, cutoff time.Time) ([]domain.DesktopSession, error) {
	args := m.Called(ctx, cutoff)
	var sessions []domain.DesktopSession
	if args.Get(0) != nil {
		sessions = args.Get(0).([]domain.DesktopSession)
	}
	return sessions, args.Error(1)
}

func (m *MockSessionRepository) FindActiveSessions(ctx context.Context) ([]domain.DesktopSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DesktopSession), args.Error(1)
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, session domain.DesktopSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) TouchSession(ctx context.Context, sessionID string, ssid string, at time.Time) error {
	args := m.Called(ctx, sessionID, ssid, at)
	return args.Error(0)
}

func (m *MockSessionRepository) DeactivateSession(ctx context.Context, sessionID string, at time.Time) error {
	args := m.Called(ctx, sessionID, at)
	return args.Error(0)
}

func (m *MockSessionRepository) DeactivateSessionsByUserID(ctx context.Context, userID string, at time.Time) (int64, error) {
	args := m.Called(ctx, userID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) FindOpenAttendanceByUserID(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	args := m.Called(ctx, userID)
	var record *domain.AttendanceRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.AttendanceRecord)
	}
	return record, args.Error(1)
}

func (m *MockSessionRepository) ListAttendanceByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.AttendanceRecord, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var records []domain.AttendanceRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.AttendanceRecord)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return records, token, args.Error(2)
}

func (m *MockSessionRepository) SaveAttendanceRecord(ctx context.Context, record domain.AttendanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSessionRepository) CloseAttendanceRecord(ctx context.Context, recordID string, endTime time.Time, durationSecs float64) error {
	args := m.Called(ctx, recordID, endTime, durationSecs)
	return args.Error(0)
}

func (m *MockSessionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockSessionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSessionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

var _ portsrepo.SessionRepositoryWithTx = (*MockSessionRepository)(nil)

// --- Mock UserSvcFacade (only AuthenticateUser is exercised here) ---
type MockUserService struct {
	mock.Mock
	portssvc.UserSvcFacade
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Mock TokenSvcFacade ---
type MockTokenService struct {
	mock.Mock
	portssvc.TokenSvcFacade
}

func (m *MockTokenService) GenerateDesktopToken(ctx context.Context, user *domain.User, macAddress string) (string, error) {
	args := m.Called(ctx, user, macAddress)
	return args.String(0), args.Error(1)
}

// --- Mock BookingSvcFacade (only the automatic check-in path is exercised) ---
type MockBookingService struct {
	mock.Mock
	portssvc.BookingSvcFacade
}

func (m *MockBookingService) GetBookingForUserOnDate(ctx context.Context, userID string, date time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, userID, date)
	var booking *domain.Booking
	if args.Get(0) != nil {
		booking = args.Get(0).(*domain.Booking)
	}
	return booking, args.Error(1)
}

func (m *MockBookingService) CheckIn(ctx context.Context, bookingID string, requestingUserID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, requestingUserID)
	var booking *domain.Booking
	if args.Get(0) != nil {
		booking = args.Get(0).(*domain.Booking)
	}
	return booking, args.Error(1)
}

func (m *MockBookingService) CheckOut(ctx context.Context, bookingID string, requestingUserID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, requestingUserID)
	var booking *domain.Booking
	if args.Get(0) != nil {
		booking = args.Get(0).(*domain.Booking)
	}
	return booking, args.Error(1)
}

// --- Test Suite ---

var sessionTestNow = time.Date(2024, time.March, 6, 10, 0, 0, 0, time.UTC)

const sessionIdleTimeout = 10 * time.Minute

type SessionServiceTestSuite struct {
	suite.Suite
	mockSessionRepo *MockSessionRepository
	mockUserSvc     *MockUserService
	mockTokenSvc    *MockTokenService
	mockBookingSvc  *MockBookingService
	service         portssvc.SessionSvcFacade
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockUserSvc = new(MockUserService)
	suite.mockTokenSvc = new(MockTokenService)
	suite.mockBookingSvc = new(MockBookingService)
	suite.service = services.NewSessionService(
		suite.mockSessionRepo,
		suite.mockUserSvc,
		suite.mockTokenSvc,
		suite.mockBookingSvc,
		sessionIdleTimeout,
		services.WithSessionClock(func() time.Time { return sessionTestNow }),
	)
}

// --- DesktopLogin Tests ---
func (suite *SessionServiceTestSuite) TestDesktopLogin_NewSession() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Username: "jdoe", IsActive: true}
	req := dto.DesktopLoginRequest{Username: "jdoe", Password: "pw", MacAddress: "AA:BB:CC:DD:EE:FF", SSID: "office-wifi"}

	suite.mockUserSvc.On("AuthenticateUser", ctx, "jdoe", "pw").Return(user, nil).Once()
	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, user.UserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTokenSvc.On("GenerateDesktopToken", ctx, user, "aa:bb:cc:dd:ee:ff").Return("desktop-token", nil).Once()
	suite.mockSessionRepo.On("SaveSession", ctx, mock.MatchedBy(func(s domain.DesktopSession) bool {
		return s.UserID == user.UserID && s.MacAddress == "aa:bb:cc:dd:ee:ff" && s.IsActive
	})).Return(nil).Once()

	session, gotUser, token, err := suite.service.DesktopLogin(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("desktop-token", token)
	suite.Equal(user.UserID, gotUser.UserID)
	suite.Equal("aa:bb:cc:dd:ee:ff", session.MacAddress)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestDesktopLogin_SameMacReusesSession() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Username: "jdoe", IsActive: true}
	existing := &domain.DesktopSession{SessionID: uuid.NewString(), UserID: user.UserID, MacAddress: "aa:bb:cc:dd:ee:ff", IsActive: true}
	req := dto.DesktopLoginRequest{Username: "jdoe", Password: "pw", MacAddress: "AA:BB:CC:DD:EE:FF"}

	suite.mockUserSvc.On("AuthenticateUser", ctx, "jdoe", "pw").Return(user, nil).Once()
	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, user.UserID).Return(existing, nil).Once()
	suite.mockTokenSvc.On("GenerateDesktopToken", ctx, user, "aa:bb:cc:dd:ee:ff").Return("desktop-token", nil).Once()
	suite.mockSessionRepo.On("TouchSession", ctx, existing.SessionID, "", sessionTestNow).Return(nil).Once()

	session, _, token, err := suite.service.DesktopLogin(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(existing.SessionID, session.SessionID)
	suite.Equal("desktop-token", token)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "SaveSession", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestDesktopLogin_DifferentMacConflicts() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Username: "jdoe", IsActive: true}
	existing := &domain.DesktopSession{SessionID: uuid.NewString(), UserID: user.UserID, MacAddress: "11:22:33:44:55:66", IsActive: true}
	req := dto.DesktopLoginRequest{Username: "jdoe", Password: "pw", MacAddress: "AA:BB:CC:DD:EE:FF"}

	suite.mockUserSvc.On("AuthenticateUser", ctx, "jdoe", "pw").Return(user, nil).Once()
	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, user.UserID).Return(existing, nil).Once()

	session, _, token, err := suite.service.DesktopLogin(ctx, req)

	suite.Require().Error(err)
	suite.Nil(session)
	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "SaveSession", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestDesktopLogin_BadCredentials() {
	ctx := context.Background()
	req := dto.DesktopLoginRequest{Username: "jdoe", Password: "wrong", MacAddress: "AA:BB:CC:DD:EE:FF"}

	suite.mockUserSvc.On("AuthenticateUser", ctx, "jdoe", "wrong").Return(nil, apperrors.ErrUnauthorized).Once()

	session, _, _, err := suite.service.DesktopLogin(ctx, req)

	suite.Require().Error(err)
	suite.Nil(session)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- HandleConnect Tests ---
func (suite *SessionServiceTestSuite) TestHandleConnect_OpensIntervalAndChecksIn() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &domain.DesktopSession{SessionID: uuid.NewString(), UserID: userID, MacAddress: "aa:bb:cc:dd:ee:ff", IsActive: true}
	booking := &domain.Booking{BookingID: uuid.NewString(), UserID: userID, Status: domain.BookingConfirmed}
	req := dto.DeviceEventRequest{MacAddress: "AA:BB:CC:DD:EE:FF", SSID: "office-wifi", IPAddress: "10.1.2.3", ComputerName: "JDOE-LAPTOP"}

	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, userID).Return(session, nil).Once()
	suite.mockSessionRepo.On("TouchSession", ctx, session.SessionID, "office-wifi", sessionTestNow).Return(nil).Once()
	suite.mockSessionRepo.On("FindOpenAttendanceByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSessionRepo.On("SaveAttendanceRecord", ctx, mock.MatchedBy(func(r domain.AttendanceRecord) bool {
		return r.UserID == userID && r.MacAddress == "aa:bb:cc:dd:ee:ff" && r.IsActive && r.ConnectionStartTime.Equal(sessionTestNow)
	})).Return(nil).Once()
	suite.mockBookingSvc.On("GetBookingForUserOnDate", ctx, userID, mock.AnythingOfType("time.Time")).Return(booking, nil).Once()
	suite.mockBookingSvc.On("CheckIn", ctx, booking.BookingID, userID).Return(booking, nil).Once()

	record, err := suite.service.HandleConnect(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal(userID, record.UserID)
	suite.mockSessionRepo.AssertExpectations(suite.T())
	suite.mockBookingSvc.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestHandleConnect_ReusesOpenInterval() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &domain.DesktopSession{SessionID: uuid.NewString(), UserID: userID, MacAddress: "aa:bb:cc:dd:ee:ff", IsActive: true}
	open := &domain.AttendanceRecord{RecordID: uuid.NewString(), UserID: userID, IsActive: true}
	req := dto.DeviceEventRequest{MacAddress: "aa:bb:cc:dd:ee:ff"}

	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, userID).Return(session, nil).Once()
	suite.mockSessionRepo.On("TouchSession", ctx, session.SessionID, "", sessionTestNow).Return(nil).Once()
	suite.mockSessionRepo.On("FindOpenAttendanceByUserID", ctx, userID).Return(open, nil).Once()

	record, err := suite.service.HandleConnect(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal(open.RecordID, record.RecordID)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "SaveAttendanceRecord", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestHandleConnect_NoBookingToday() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &domain.DesktopSession{SessionID: uuid.NewString(), UserID: userID, MacAddress: "aa:bb:cc:dd:ee:ff", IsActive: true}
	req := dto.DeviceEventRequest{MacAddress: "aa:bb:cc:dd:ee:ff"}

	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, userID).Return(session, nil).Once()
	suite.mockSessionRepo.On("TouchSession", ctx, session.SessionID, "", sessionTestNow).Return(nil).Once()
	suite.mockSessionRepo.On("FindOpenAttendanceByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSessionRepo.On("SaveAttendanceRecord", ctx, mock.AnythingOfType("domain.AttendanceRecord")).Return(nil).Once()
	suite.mockBookingSvc.On("GetBookingForUserOnDate", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()

	record, err := suite.service.HandleConnect(ctx, userID, req)

	suite.Require().NoError(err)
	suite.NotNil(record)
	suite.mockBookingSvc.AssertNotCalled(suite.T(), "CheckIn", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestHandleConnect_WrongMac() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &domain.DesktopSession{SessionID: uuid.NewString(), UserID: userID, MacAddress: "11:22:33:44:55:66", IsActive: true}
	req := dto.DeviceEventRequest{MacAddress: "aa:bb:cc:dd:ee:ff"}

	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, userID).Return(session, nil).Once()

	record, err := suite.service.HandleConnect(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- HandleHeartbeat Tests ---
func (suite *SessionServiceTestSuite) TestHandleHeartbeat_RefreshesSession() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &domain.DesktopSession{SessionID: uuid.NewString(), UserID: userID, MacAddress: "aa:bb:cc:dd:ee:ff", IsActive: true}
	open := &domain.AttendanceRecord{RecordID: uuid.NewString(), UserID: userID, IsActive: true}
	req := dto.DeviceEventRequest{MacAddress: "aa:bb:cc:dd:ee:ff", SSID: "office-wifi"}

	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, userID).Return(session, nil).Once()
	suite.mockSessionRepo.On("TouchSession", ctx, session.SessionID, "office-wifi", sessionTestNow).Return(nil).Once()
	suite.mockSessionRepo.On("FindOpenAttendanceByUserID", ctx, userID).Return(open, nil).Once()

	err := suite.service.HandleHeartbeat(ctx, userID, req)

	suite.Require().NoError(err)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "SaveAttendanceRecord", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestHandleHeartbeat_ReopensMissingInterval() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &domain.DesktopSession{SessionID: uuid.NewString(), UserID: userID, MacAddress: "aa:bb:cc:dd:ee:ff", IsActive: true}
	req := dto.DeviceEventRequest{MacAddress: "AA:BB:CC:DD:EE:FF", SSID: "office-wifi", IPAddress: "10.1.2.3", ComputerName: "JDOE-LAPTOP"}

	// The agent missed its connect event (or an earlier sweep closed the
	// interval); the heartbeat opens a fresh one so attendance keeps accruing.
	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, userID).Return(session, nil).Once()
	suite.mockSessionRepo.On("TouchSession", ctx, session.SessionID, "office-wifi", sessionTestNow).Return(nil).Once()
	suite.mockSessionRepo.On("FindOpenAttendanceByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSessionRepo.On("SaveAttendanceRecord", ctx, mock.MatchedBy(func(r domain.AttendanceRecord) bool {
		return r.UserID == userID && r.MacAddress == "aa:bb:cc:dd:ee:ff" && r.IsActive && r.ConnectionStartTime.Equal(sessionTestNow)
	})).Return(nil).Once()

	err := suite.service.HandleHeartbeat(ctx, userID, req)

	suite.Require().NoError(err)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

// --- HandleDisconnect Tests ---
func (suite *SessionServiceTestSuite) TestHandleDisconnect_ClosesIntervalAndChecksOut() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &domain.DesktopSession{SessionID: uuid.NewString(), UserID: userID, MacAddress: "aa:bb:cc:dd:ee:ff", IsActive: true}
	started := sessionTestNow.Add(-2 * time.Hour)
	open := &domain.AttendanceRecord{RecordID: uuid.NewString(), UserID: userID, ConnectionStartTime: started, IsActive: true}
	checkIn := sessionTestNow.Add(-2 * time.Hour)
	booking := &domain.Booking{BookingID: uuid.NewString(), UserID: userID, Status: domain.BookingConfirmed, CheckInTime: &checkIn}
	req := dto.DeviceEventRequest{MacAddress: "aa:bb:cc:dd:ee:ff"}

	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, userID).Return(session, nil).Once()
	suite.mockSessionRepo.On("TouchSession", ctx, session.SessionID, "", sessionTestNow).Return(nil).Once()
	suite.mockSessionRepo.On("FindOpenAttendanceByUserID", ctx, userID).Return(open, nil).Once()
	suite.mockSessionRepo.On("CloseAttendanceRecord", ctx, open.RecordID, sessionTestNow, (2 * time.Hour).Seconds()).Return(nil).Once()
	suite.mockBookingSvc.On("GetBookingForUserOnDate", ctx, userID, mock.AnythingOfType("time.Time")).Return(booking, nil).Once()
	suite.mockBookingSvc.On("CheckOut", ctx, booking.BookingID, userID).Return(booking, nil).Once()

	err := suite.service.HandleDisconnect(ctx, userID, req)

	suite.Require().NoError(err)
	suite.mockSessionRepo.AssertExpectations(suite.T())
	suite.mockBookingSvc.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestHandleDisconnect_NoOpenInterval() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &domain.DesktopSession{SessionID: uuid.NewString(), UserID: userID, MacAddress: "aa:bb:cc:dd:ee:ff", IsActive: true}
	req := dto.DeviceEventRequest{MacAddress: "aa:bb:cc:dd:ee:ff"}

	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, userID).Return(session, nil).Once()
	suite.mockSessionRepo.On("TouchSession", ctx, session.SessionID, "", sessionTestNow).Return(nil).Once()
	suite.mockSessionRepo.On("FindOpenAttendanceByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.HandleDisconnect(ctx, userID, req)

	suite.Require().NoError(err)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "CloseAttendanceRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- SweepIdleSessions Tests ---
func (suite *SessionServiceTestSuite) TestSweepIdleSessions() {
	ctx := context.Background()
	cutoff := sessionTestNow.Add(-sessionIdleTimeout)

	idle := domain.DesktopSession{SessionID: uuid.NewString(), UserID: uuid.NewString(), IsActive: true, LastActivityAt: cutoff.Add(-5 * time.Minute)}
	open := &domain.AttendanceRecord{RecordID: uuid.NewString(), UserID: idle.UserID, ConnectionStartTime: sessionTestNow.Add(-time.Hour), IsActive: true}

	suite.mockSessionRepo.On("FindIdleSessions", ctx, cutoff).Return([]domain.DesktopSession{idle}, nil).Once()
	suite.mockSessionRepo.On("DeactivateSession", ctx, idle.SessionID, sessionTestNow).Return(nil).Once()
	suite.mockSessionRepo.On("FindOpenAttendanceByUserID", ctx, idle.UserID).Return(open, nil).Once()
	// The interval ends at sweep time, not at the idle cutoff.
	suite.mockSessionRepo.On("CloseAttendanceRecord", ctx, open.RecordID, sessionTestNow, time.Hour.Seconds()).Return(nil).Once()
	suite.mockBookingSvc.On("GetBookingForUserOnDate", ctx, idle.UserID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()

	closed, err := suite.service.SweepIdleSessions(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, closed)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestSweepIdleSessions_LeavesLiveSessionsAlone() {
	ctx := context.Background()
	cutoff := sessionTestNow.Add(-sessionIdleTimeout)

	// A user has been connected since the morning and is still heartbeating.
	// Their interval started long before the cutoff but must stay open.
	suite.mockSessionRepo.On("FindIdleSessions", ctx, cutoff).Return([]domain.DesktopSession{}, nil).Once()

	closed, err := suite.service.SweepIdleSessions(ctx)

	suite.Require().NoError(err)
	suite.Zero(closed)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "CloseAttendanceRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "FindOpenAttendanceByUserID", mock.Anything, mock.Anything)
}

// --- ResetUserSessions Tests ---
func (suite *SessionServiceTestSuite) TestResetUserSessions() {
	ctx := context.Background()
	userID := uuid.NewString()
	adminID := uuid.NewString()
	open := &domain.AttendanceRecord{RecordID: uuid.NewString(), UserID: userID, ConnectionStartTime: sessionTestNow.Add(-30 * time.Minute), IsActive: true}

	suite.mockSessionRepo.On("DeactivateSessionsByUserID", ctx, userID, sessionTestNow).Return(int64(1), nil).Once()
	suite.mockSessionRepo.On("FindOpenAttendanceByUserID", ctx, userID).Return(open, nil).Once()
	suite.mockSessionRepo.On("CloseAttendanceRecord", ctx, open.RecordID, sessionTestNow, (30 * time.Minute).Seconds()).Return(nil).Once()

	err := suite.service.ResetUserSessions(ctx, userID, adminID)

	suite.Require().NoError(err)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestDesktopLogout_DeactivatesSession() {
	ctx := context.Background()
	userID := uuid.NewString()
	session := &domain.DesktopSession{SessionID: uuid.NewString(), UserID: userID, MacAddress: "aa:bb:cc:dd:ee:ff", IsActive: true}
	req := dto.DeviceEventRequest{MacAddress: "AA:BB:CC:DD:EE:FF"}

	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, userID).Return(session, nil).Twice()
	suite.mockSessionRepo.On("TouchSession", ctx, session.SessionID, "", sessionTestNow).Return(nil).Once()
	suite.mockSessionRepo.On("FindOpenAttendanceByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSessionRepo.On("DeactivateSession", ctx, session.SessionID, sessionTestNow).Return(nil).Once()

	err := suite.service.DesktopLogout(ctx, userID, req)

	suite.Require().NoError(err)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestDesktopLogout_NoActiveSession() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockSessionRepo.On("FindActiveSessionByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DesktopLogout(ctx, userID, dto.DeviceEventRequest{MacAddress: "aa:bb:cc:dd:ee:ff"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "DeactivateSession", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestListActiveSessions_SweepsIdleFirst() {
	ctx := context.Background()
	active := []domain.DesktopSession{
		{SessionID: uuid.NewString(), IsActive: true},
		{SessionID: uuid.NewString(), IsActive: true},
	}

	cutoff := sessionTestNow.Add(-sessionIdleTimeout)
	suite.mockSessionRepo.On("FindIdleSessions", ctx, cutoff).Return([]domain.DesktopSession{}, nil).Once()
	suite.mockSessionRepo.On("FindActiveSessions", ctx).Return(active, nil).Once()

	sessions, err := suite.service.ListActiveSessions(ctx)

	suite.Require().NoError(err)
	suite.Len(sessions, 2)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
