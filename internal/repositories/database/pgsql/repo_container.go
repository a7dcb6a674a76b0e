package pgsql

import (
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	seatRepo := newPgxSeatRepository(dbPool)
	bookingRepo := newPgxBookingRepository(dbPool)
	sessionRepo := newPgxSessionRepository(dbPool)
	auditRepo := newPgxAuditLogRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:      userRepo,
		SeatRepo:      seatRepo,
		BookingRepo:   bookingRepo,
		SessionRepo:   sessionRepo,
		AuditRepo:     auditRepo,
		ReportingRepo: reportingRepo,
	}
}
