package services

import (
	"context"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// AutoBookingSvcFacade defines the auto-booking allocation engine.
type AutoBookingSvcFacade interface {
	// AllocateForUser books seats for one user over the allocation window
	// (weeks two to four from the upcoming Monday). Dates the user already
	// holds a booking on are skipped, so re-running is idempotent.
	// performedBy is the actor the created bookings are attributed to.
	AllocateForUser(ctx context.Context, userID string, performedBy string) (*domain.AllocationResult, error)

	// ResetAndAllocate cancels the user's future auto-booked seats and runs a
	// fresh allocation. Used after a preference change.
	ResetAndAllocate(ctx context.Context, userID string, performedBy string) (*domain.AllocationResult, error)

	// RunFleetAllocation sweeps every active non-admin user with preferences
	// set and allocates for each. One user's failure never aborts the sweep.
	RunFleetAllocation(ctx context.Context) (*domain.FleetRunSummary, error)
}
