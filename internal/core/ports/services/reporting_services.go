package services

import (
	"context"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// ReportingService defines operations for attendance and utilization reports
type ReportingService interface {
	// GetWeeklyCompliance builds the compliance report for the week containing
	// the given date. Returns the ISO week number and one row per user.
	GetWeeklyCompliance(ctx context.Context, date time.Time, department string) (int, []domain.WeeklyComplianceRow, error)

	// GetOfficeUtilization builds per-date seat usage rows for [from, to].
	GetOfficeUtilization(ctx context.Context, from, to time.Time) ([]domain.OfficeUtilizationRow, error)
}
