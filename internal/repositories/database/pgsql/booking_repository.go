package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/apperrors"
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	"github.com/SeatLogix/desk_booking_app/internal/models"
	"github.com/SeatLogix/desk_booking_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `booking_id, user_id, seat_id, booking_date, week_number, status, is_auto_booked,
		check_in_time, check_out_time, cancel_reason,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxBookingRepository struct {
	BaseRepository
}

// newPgxBookingRepository creates a new repository for booking data.
func newPgxBookingRepository(pool *pgxpool.Pool) portsrepo.BookingRepositoryWithTx {
	return &PgxBookingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBookingRepository implements portsrepo.BookingRepositoryWithTx
var _ portsrepo.BookingRepositoryWithTx = (*PgxBookingRepository)(nil)

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var m models.Booking
	err := row.Scan(
		&m.BookingID,
		&m.UserID,
		&m.SeatID,
		&m.BookingDate,
		&m.WeekNumber,
		&m.Status,
		&m.IsAutoBooked,
		&m.CheckInTime,
		&m.CheckOutTime,
		&m.CancelReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// bookingConflictError translates a unique violation on one of the partial
// booking indexes into a conflict error that names which rule was broken.
func bookingConflictError(pgErr *pgconn.PgError) error {
	switch pgErr.ConstraintName {
	case "idx_bookings_seat_date":
		return apperrors.NewConflictError("seat is already booked for this date")
	case "idx_bookings_user_date":
		return apperrors.NewConflictError("user already has a booking for this date")
	default:
		return apperrors.NewConflictError("seat or user already booked for this date")
	}
}

// SaveBooking inserts a booking. The partial unique indexes on
// (seat_id, booking_date) and (user_id, booking_date) where status is not
// cancelled are the backstop against double booking under concurrency; a
// unique violation here means this writer lost the race.
func (r *PgxBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	m := mapping.ToModelBooking(booking)
	query := `
        INSERT INTO bookings (booking_id, user_id, seat_id, booking_date, week_number, status, is_auto_booked,
            check_in_time, check_out_time, cancel_reason,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.BookingID,
		m.UserID,
		m.SeatID,
		m.BookingDate,
		m.WeekNumber,
		m.Status,
		m.IsAutoBooked,
		m.CheckInTime,
		m.CheckOutTime,
		m.CancelReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return bookingConflictError(pgErr)
		}
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1;`
	m, err := scanBooking(r.Pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking by ID %s: %w", bookingID, err)
	}
	booking := mapping.ToDomainBooking(*m)
	return &booking, nil
}

func (r *PgxBookingRepository) FindBookingForUserOnDate(ctx context.Context, userID string, date time.Time) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
        FROM bookings
        WHERE user_id = $1 AND booking_date = $2 AND status <> 'cancelled';`
	m, err := scanBooking(r.Pool.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking for user on date: %w", err)
	}
	booking := mapping.ToDomainBooking(*m)
	return &booking, nil
}

func (r *PgxBookingRepository) ListBookings(ctx context.Context, filter portsrepo.BookingListFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []any{}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += ` AND user_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND booking_date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND booking_date <= $` + strconv.Itoa(len(args))
	}
	if filter.WeekNumber > 0 {
		args = append(args, filter.WeekNumber)
		query += ` AND week_number = $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY booking_date DESC, created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	modelBookings := []models.Booking{}
	for rows.Next() {
		m, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		modelBookings = append(modelBookings, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", rows.Err())
	}

	return mapping.ToDomainBookingSlice(modelBookings), nil
}

func (r *PgxBookingRepository) CountActiveBookingsInRange(ctx context.Context, userID string, from, to time.Time) (int, error) {
	query := `
        SELECT COUNT(*) FROM bookings
        WHERE user_id = $1 AND booking_date >= $2 AND booking_date < $3 AND status <> 'cancelled';
    `
	var count int
	if err := r.Pool.QueryRow(ctx, query, userID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookings in range: %w", err)
	}
	return count, nil
}

// CancelBooking guards the transition on the current status so that two
// concurrent cancels, or a cancel racing a check-in sweep, cannot both win.
// UpdateBooking moves a confirmed booking to a new seat and date. The same
// partial unique indexes that guard SaveBooking decide races here.
func (r *PgxBookingRepository) UpdateBooking(ctx context.Context, bookingID string, seatID string, bookingDate time.Time, weekNumber int, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE bookings
        SET seat_id = $1, booking_date = $2, week_number = $3, last_updated_at = $4, last_updated_by = $5
        WHERE booking_id = $6 AND status = 'confirmed';
    `
	cmdTag, err := r.Pool.Exec(ctx, query, seatID, bookingDate, weekNumber, updatedAt, updatedBy, bookingID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return bookingConflictError(pgErr)
		}
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("booking not found or not confirmed: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxBookingRepository) CancelBooking(ctx context.Context, bookingID string, reason string, cancelledBy string, cancelledAt time.Time) error {
	query := `
        UPDATE bookings
        SET status = 'cancelled', cancel_reason = $1, last_updated_at = $2, last_updated_by = $3
        WHERE booking_id = $4 AND status = 'confirmed';
    `
	cmdTag, err := r.Pool.Exec(ctx, query, reason, cancelledAt, cancelledBy, bookingID)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("booking not found or not confirmed: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxBookingRepository) SetCheckIn(ctx context.Context, bookingID string, checkInTime time.Time) error {
	query := `
        UPDATE bookings
        SET check_in_time = $1, last_updated_at = $1, last_updated_by = user_id
        WHERE booking_id = $2 AND status = 'confirmed' AND check_in_time IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, checkInTime, bookingID)
	if err != nil {
		return fmt.Errorf("failed to set check-in time: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("booking not confirmed or already checked in: %w", apperrors.ErrInvalidState)
	}
	return nil
}

func (r *PgxBookingRepository) SetCheckOut(ctx context.Context, bookingID string, checkOutTime time.Time) error {
	query := `
        UPDATE bookings
        SET check_out_time = $1, last_updated_at = $1, last_updated_by = user_id
        WHERE booking_id = $2 AND status = 'confirmed' AND check_in_time IS NOT NULL AND check_out_time IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, checkOutTime, bookingID)
	if err != nil {
		return fmt.Errorf("failed to set check-out time: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("booking not checked in or already checked out: %w", apperrors.ErrInvalidState)
	}
	return nil
}

func (r *PgxBookingRepository) MarkMissedThrough(ctx context.Context, cutoff time.Time, updatedBy string) (int64, error) {
	query := `
        UPDATE bookings
        SET status = 'missed', last_updated_at = NOW(), last_updated_by = $1
        WHERE booking_date <= $2 AND status = 'confirmed' AND check_in_time IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, updatedBy, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to mark missed bookings: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
