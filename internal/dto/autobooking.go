package dto

import (
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// AllocationFailureResponse names one date the allocator could not book and why.
type AllocationFailureResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// AllocationResultResponse reports the outcome of one user's auto-booking run.
type AllocationResultResponse struct {
	UserID       string                      `json:"userID"`
	Created      []BookingResponse           `json:"created"`
	SkippedDates []string                    `json:"skippedDates,omitempty"`
	Failed       []AllocationFailureResponse `json:"failed,omitempty"`
}

// FleetRunSummaryResponse reports the outcome of a fleet-wide auto-booking sweep.
type FleetRunSummaryResponse struct {
	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`
	TotalUsers   int       `json:"totalUsers"`
	SuccessCount int       `json:"successCount"`
	FailedCount  int       `json:"failedCount"`
	NoPrefsCount int       `json:"noPrefsCount"`
	SkippedCount int       `json:"skippedCount"`
}

// ToAllocationResultResponse converts a domain.AllocationResult to its DTO.
func ToAllocationResultResponse(r *domain.AllocationResult) AllocationResultResponse {
	created := make([]BookingResponse, len(r.CreatedBookings))
	for i := range r.CreatedBookings {
		created[i] = ToBookingResponse(&r.CreatedBookings[i])
	}
	failed := make([]AllocationFailureResponse, len(r.FailedDates))
	for i, f := range r.FailedDates {
		failed[i] = AllocationFailureResponse{Date: f.Date, Reason: f.Reason}
	}
	return AllocationResultResponse{
		UserID:       r.UserID,
		Created:      created,
		SkippedDates: r.SkippedDates,
		Failed:       failed,
	}
}

// ToFleetRunSummaryResponse converts a domain.FleetRunSummary to its DTO.
func ToFleetRunSummaryResponse(s *domain.FleetRunSummary) FleetRunSummaryResponse {
	return FleetRunSummaryResponse{
		StartedAt:    s.StartedAt,
		FinishedAt:   s.FinishedAt,
		TotalUsers:   s.TotalUsers,
		SuccessCount: s.SuccessCount,
		FailedCount:  s.FailedCount,
		NoPrefsCount: s.NoPrefsCount,
		SkippedCount: s.SkippedCount,
	}
}
