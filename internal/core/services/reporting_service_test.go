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

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetWeeklyComplianceData(ctx context.Context, weekStart, weekEnd time.Time, department string) ([]domain.WeeklyComplianceRow, error) {
	args := m.Called(ctx, weekStart, weekEnd, department)
	var rows []domain.WeeklyComplianceRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.WeeklyComplianceRow)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) GetUtilizationData(ctx context.Context, from, to time.Time) ([]domain.OfficeUtilizationRow, error) {
	args := m.Called(ctx, from, to)
	var rows []domain.OfficeUtilizationRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.OfficeUtilizationRow)
	}
	return rows, args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)
}

func (suite *ReportingServiceTestSuite) TestGetWeeklyCompliance() {
	ctx := context.Background()
	// Wednesday of ISO week 11, 2024: week runs Mar 11 (Mon) to Mar 17 (Sun).
	date := time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)
	weekStart := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC)

	rows := []domain.WeeklyComplianceRow{
		{UserID: uuid.NewString(), Username: "full", RequiredDays: 3, BookedDays: 3, AttendedDays: 3},
		{UserID: uuid.NewString(), Username: "partial", RequiredDays: 3, BookedDays: 3, AttendedDays: 2},
		{UserID: uuid.NewString(), Username: "absent", RequiredDays: 3, BookedDays: 1, AttendedDays: 0},
	}

	suite.mockReportingRepo.On("GetWeeklyComplianceData", ctx, weekStart, weekEnd, "").Return(rows, nil).Once()

	weekNumber, got, err := suite.service.GetWeeklyCompliance(ctx, date, "")

	suite.Require().NoError(err)
	suite.Equal(calendar.WeekNumber(date), weekNumber)
	suite.Require().Len(got, 3)

	suite.Equal(domain.StatusGreen, got[0].Status)
	suite.Equal("100", got[0].CompliancePercent.String())

	suite.Equal(domain.StatusRed, got[1].Status)
	suite.Equal("66.67", got[1].CompliancePercent.String())

	suite.Equal(domain.StatusRed, got[2].Status)
	suite.True(got[2].CompliancePercent.IsZero())

	for _, row := range got {
		suite.Equal(weekNumber, row.WeekNumber)
	}
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetWeeklyCompliance_DepartmentFilterPassedThrough() {
	ctx := context.Background()
	date := time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetWeeklyComplianceData", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "Engineering").
		Return([]domain.WeeklyComplianceRow{}, nil).Once()

	_, got, err := suite.service.GetWeeklyCompliance(ctx, date, "Engineering")

	suite.Require().NoError(err)
	suite.Empty(got)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetOfficeUtilization() {
	ctx := context.Background()
	from := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)

	rows := []domain.OfficeUtilizationRow{
		{Date: from, TotalSeats: 40, BookedSeats: 30, AttendedSeats: 25},
		{Date: to, TotalSeats: 40, BookedSeats: 10, AttendedSeats: 8},
	}

	suite.mockReportingRepo.On("GetUtilizationData", ctx, from, to).Return(rows, nil).Once()

	got, err := suite.service.GetOfficeUtilization(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal("75", got[0].UtilizationPercent.String())
	suite.Equal("25", got[1].UtilizationPercent.String())
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetOfficeUtilization_InvertedRange() {
	ctx := context.Background()
	from := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	got, err := suite.service.GetOfficeUtilization(ctx, from, to)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetUtilizationData", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
