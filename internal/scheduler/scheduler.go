package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/platform/config"
)

// Scheduler runs the recurring background jobs: fleet auto-booking, the
// missed-booking sweep and the idle-session sweep. Each job runs on its own
// ticker; a job failure is logged and the ticker keeps going.
type Scheduler struct {
	services *portssvc.ServiceContainer
	cfg      *config.Config
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// New creates a Scheduler. Call Start to begin the job loops.
func New(services *portssvc.ServiceContainer, cfg *config.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		services: services,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start launches the job loops. They stop when ctx is cancelled; use Wait to
// block until they have drained.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(3)
	go s.runFleetAllocationLoop(ctx)
	go s.runLoop(ctx, "missed_booking_sweep", s.cfg.MissedSweepInterval, s.sweepMissedBookings)
	go s.runLoop(ctx, "idle_session_sweep", s.cfg.IdleSweepInterval, s.sweepIdleSessions)
}

// Wait blocks until all job loops have exited.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// runFleetAllocationLoop runs fleet allocation once shortly after startup,
// then on every AutoBookingInterval tick. The startup run catches users whose
// allocation window moved while the service was down.
func (s *Scheduler) runFleetAllocationLoop(ctx context.Context) {
	defer s.wg.Done()

	select {
	case <-ctx.Done():
		return
	case <-time.After(s.cfg.AutoBookingStartupDelay):
		s.runFleetAllocation(ctx)
	}

	ticker := time.NewTicker(s.cfg.AutoBookingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runFleetAllocation(ctx)
		}
	}
}

// runLoop runs job on every tick of interval until ctx is cancelled.
func (s *Scheduler) runLoop(ctx context.Context, name string, interval time.Duration, job func(context.Context)) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler job stopped", slog.String("job", name))
			return
		case <-ticker.C:
			job(ctx)
		}
	}
}

func (s *Scheduler) runFleetAllocation(ctx context.Context) {
	summary, err := s.services.AutoBooking.RunFleetAllocation(ctx)
	if err != nil {
		s.logger.Error("Fleet auto-booking run failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Fleet auto-booking run finished",
		slog.Int("total_users", summary.TotalUsers),
		slog.Int("success", summary.SuccessCount),
		slog.Int("failed", summary.FailedCount),
		slog.Int("no_prefs", summary.NoPrefsCount),
		slog.Int("skipped", summary.SkippedCount),
	)
}

func (s *Scheduler) sweepMissedBookings(ctx context.Context) {
	changed, err := s.services.Booking.MarkMissedBookings(ctx)
	if err != nil {
		s.logger.Error("Missed booking sweep failed", slog.String("error", err.Error()))
		return
	}
	if changed > 0 {
		s.logger.Info("Missed booking sweep finished", slog.Int64("bookings_marked", changed))
	}
}

func (s *Scheduler) sweepIdleSessions(ctx context.Context) {
	closed, err := s.services.Session.SweepIdleSessions(ctx)
	if err != nil {
		s.logger.Error("Idle session sweep failed", slog.String("error", err.Error()))
		return
	}
	if closed > 0 {
		s.logger.Info("Idle session sweep finished", slog.Int("sessions_closed", closed))
	}
}
