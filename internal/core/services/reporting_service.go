package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/apperrors"
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/utils/attendance"
	"github.com/SeatLogix/desk_booking_app/internal/utils/calendar"
)

// reportingService implements the ReportingService interface. The repository
// returns raw counts; percentages and status colours are computed here.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetWeeklyCompliance builds the compliance report for the week containing
// the given date: one row per user, green when attended days meet the quota.
func (s *reportingService) GetWeeklyCompliance(ctx context.Context, date time.Time, department string) (int, []domain.WeeklyComplianceRow, error) {
	weekStart := calendar.StartOfWeek(date)
	weekEnd := calendar.EndOfWeek(date)
	weekNumber := calendar.WeekNumber(date)

	rows, err := s.reportingRepo.GetWeeklyComplianceData(ctx, weekStart, weekEnd, department)
	if err != nil {
		s.LogError(ctx, err, "Failed to load weekly compliance data")
		return 0, nil, fmt.Errorf("failed to load weekly compliance data: %w", err)
	}

	for i := range rows {
		rows[i].WeekNumber = weekNumber
		rows[i].CompliancePercent = attendance.CompliancePercent(rows[i].AttendedDays, rows[i].RequiredDays)
		rows[i].Status = attendance.WeeklyStatusFor(rows[i].AttendedDays, rows[i].RequiredDays)
	}

	return weekNumber, rows, nil
}

// GetOfficeUtilization builds per-date seat usage rows for [from, to].
func (s *reportingService) GetOfficeUtilization(ctx context.Context, from, to time.Time) ([]domain.OfficeUtilizationRow, error) {
	from = calendar.DateOnly(from)
	to = calendar.DateOnly(to)
	if to.Before(from) {
		return nil, apperrors.NewAppError(400, "end date is before start date", apperrors.ErrValidation)
	}

	rows, err := s.reportingRepo.GetUtilizationData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load utilization data")
		return nil, fmt.Errorf("failed to load utilization data: %w", err)
	}

	for i := range rows {
		rows[i].UtilizationPercent = attendance.UtilizationPercent(rows[i].BookedSeats, rows[i].TotalSeats)
	}

	return rows, nil
}
