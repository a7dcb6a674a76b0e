package domain

import "time"

// AllocationFailure records one date the allocator could not book and why.
type AllocationFailure struct {
	Date   string
	Reason string
}

// AllocationResult summarises one auto-booking run for a single user.
type AllocationResult struct {
	UserID          string
	CreatedBookings []Booking
	SkippedDates    []string // dates where the user already holds a booking
	FailedDates     []AllocationFailure
}

// Created reports how many bookings the run produced.
func (r AllocationResult) Created() int {
	return len(r.CreatedBookings)
}

// FleetRunSummary aggregates an auto-booking sweep across all eligible users.
type FleetRunSummary struct {
	StartedAt    time.Time
	FinishedAt   time.Time
	TotalUsers   int
	SuccessCount int
	FailedCount  int
	NoPrefsCount int
	SkippedCount int // users that already had bookings in the allocation window
}
