package repositories

import (
	"context"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// ReportingRepository defines operations for retrieving attendance report data
type ReportingRepository interface {
	// GetWeeklyComplianceData retrieves per-user booking and attendance counts
	// for the week [weekStart, weekEnd]. Percentages and status colours are
	// computed by the service. An empty department matches all departments.
	GetWeeklyComplianceData(ctx context.Context, weekStart, weekEnd time.Time, department string) ([]domain.WeeklyComplianceRow, error)

	// GetUtilizationData retrieves per-date seat usage counts for the range
	// [from, to].
	GetUtilizationData(ctx context.Context, from, to time.Time) ([]domain.OfficeUtilizationRow, error)
}
