package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyStatus is the compliance colour for a user's week.
type WeeklyStatus string

const (
	StatusGreen WeeklyStatus = "green"
	StatusRed   WeeklyStatus = "red"
)

// WeeklyComplianceRow reports one user's attendance against their weekly quota.
// A day counts as attended only when its booking is confirmed and has both
// check-in and check-out recorded.
type WeeklyComplianceRow struct {
	UserID            string
	Username          string
	FullName          string
	Department        string
	WeekNumber        int
	RequiredDays      int
	BookedDays        int
	AttendedDays      int
	CompliancePercent decimal.Decimal
	Status            WeeklyStatus
}

// UserWeeklyStatus summarizes one user's progress against their weekly quota.
type UserWeeklyStatus struct {
	UserID       string
	WeekNumber   int
	WeekStart    time.Time
	WeekEnd      time.Time
	RequiredDays int
	BookedDays   int
	AttendedDays int
	Status       WeeklyStatus
}

// OfficeUtilizationRow reports seat usage for a single date.
type OfficeUtilizationRow struct {
	Date               time.Time
	TotalSeats         int
	BookedSeats        int
	AttendedSeats      int
	UtilizationPercent decimal.Decimal
}
