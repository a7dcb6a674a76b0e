package attendance

import (
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CompliancePercent computes attended days as a percentage of the weekly
// quota, rounded to two places and capped at 100. A zero quota yields zero.
// This is used in both services and repositories to keep report math consistent.
func CompliancePercent(attendedDays, requiredDays int) decimal.Decimal {
	if requiredDays <= 0 {
		return decimal.Zero
	}
	pct := decimal.NewFromInt(int64(attendedDays)).
		Div(decimal.NewFromInt(int64(requiredDays))).
		Mul(hundred).
		Round(2)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// WeeklyStatusFor returns green when the attended-day count meets the quota,
// red otherwise.
func WeeklyStatusFor(attendedDays, requiredDays int) domain.WeeklyStatus {
	if requiredDays > 0 && attendedDays >= requiredDays {
		return domain.StatusGreen
	}
	return domain.StatusRed
}

// UtilizationPercent computes booked seats as a percentage of total seats,
// rounded to two places. A zero seat count yields zero.
func UtilizationPercent(bookedSeats, totalSeats int) decimal.Decimal {
	if totalSeats <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(bookedSeats)).
		Div(decimal.NewFromInt(int64(totalSeats))).
		Mul(hundred).
		Round(2)
}
