package services

import (
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Audit first since most services record through it
	container.Audit = NewAuditService(repos.AuditRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Seat = NewSeatService(repos.SeatRepo)

	container.Booking = NewBookingService(
		repos.BookingRepo,
		repos.SeatRepo,
		repos.UserRepo,
		WithBookingAuditor(container.Audit),
	)

	container.AutoBooking = NewAutoBookingService(
		repos.BookingRepo,
		repos.SeatRepo,
		repos.UserRepo,
		WithAutoBookingAuditor(container.Audit),
	)

	container.Reporting = NewReportingService(repos.ReportingRepo)

	// Initialize TokenService
	container.Token = NewTokenService(cfg, container.User)

	// Initialize GoogleOAuthHandlerSvcFacade
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	// Session service depends on auth (desktop tokens) and booking (auto
	// check-in and check-out on connect and disconnect events).
	container.Session = NewSessionService(
		repos.SessionRepo,
		container.User,
		container.Token,
		container.Booking,
		cfg.SessionIdleTimeout,
		WithSessionAuditor(container.Audit),
	)

	return container
}
