package dto

import (
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WeeklyComplianceParams defines the query parameters for the compliance report.
type WeeklyComplianceParams struct {
	Date       string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Department string `form:"department"`
}

// UtilizationParams defines the query parameters for the utilization report.
type UtilizationParams struct {
	StartDate string `form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"required,datetime=2006-01-02"`
}

// WeeklyComplianceRowResponse is one user's row in the weekly compliance report.
type WeeklyComplianceRowResponse struct {
	UserID            string          `json:"userID"`
	Username          string          `json:"username"`
	FullName          string          `json:"fullName"`
	Department        string          `json:"department"`
	WeekNumber        int             `json:"weekNumber"`
	RequiredDays      int             `json:"requiredDays"`
	BookedDays        int             `json:"bookedDays"`
	AttendedDays      int             `json:"attendedDays"`
	CompliancePercent decimal.Decimal `json:"compliancePercent"`
	Status            string          `json:"status"`
}

// WeeklyComplianceResponse wraps the full report for a week.
type WeeklyComplianceResponse struct {
	WeekNumber int                           `json:"weekNumber"`
	Rows       []WeeklyComplianceRowResponse `json:"rows"`
}

// OfficeUtilizationRowResponse is one date's row in the utilization report.
type OfficeUtilizationRowResponse struct {
	Date               string          `json:"date"`
	TotalSeats         int             `json:"totalSeats"`
	BookedSeats        int             `json:"bookedSeats"`
	AttendedSeats      int             `json:"attendedSeats"`
	UtilizationPercent decimal.Decimal `json:"utilizationPercent"`
}

// OfficeUtilizationResponse wraps the utilization report for a date range.
type OfficeUtilizationResponse struct {
	Rows []OfficeUtilizationRowResponse `json:"rows"`
}

// ToWeeklyComplianceResponse converts report rows to the response DTO.
func ToWeeklyComplianceResponse(weekNumber int, rows []domain.WeeklyComplianceRow) WeeklyComplianceResponse {
	responses := make([]WeeklyComplianceRowResponse, len(rows))
	for i, row := range rows {
		responses[i] = WeeklyComplianceRowResponse{
			UserID:            row.UserID,
			Username:          row.Username,
			FullName:          row.FullName,
			Department:        row.Department,
			WeekNumber:        row.WeekNumber,
			RequiredDays:      row.RequiredDays,
			BookedDays:        row.BookedDays,
			AttendedDays:      row.AttendedDays,
			CompliancePercent: row.CompliancePercent,
			Status:            string(row.Status),
		}
	}
	return WeeklyComplianceResponse{
		WeekNumber: weekNumber,
		Rows:       responses,
	}
}

// ToOfficeUtilizationResponse converts report rows to the response DTO.
func ToOfficeUtilizationResponse(rows []domain.OfficeUtilizationRow) OfficeUtilizationResponse {
	responses := make([]OfficeUtilizationRowResponse, len(rows))
	for i, row := range rows {
		responses[i] = OfficeUtilizationRowResponse{
			Date:               row.Date.Format("2006-01-02"),
			TotalSeats:         row.TotalSeats,
			BookedSeats:        row.BookedSeats,
			AttendedSeats:      row.AttendedSeats,
			UtilizationPercent: row.UtilizationPercent,
		}
	}
	return OfficeUtilizationResponse{Rows: responses}
}
