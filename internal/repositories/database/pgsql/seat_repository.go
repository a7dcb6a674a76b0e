package pgsql

import (
	"context"
	"errors"
	"fmt"
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

const seatColumns = `seat_id, seat_number, description, location, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxSeatRepository struct {
	db *pgxpool.Pool
}

func newPgxSeatRepository(db *pgxpool.Pool) portsrepo.SeatRepositoryFacade {
	return &PgxSeatRepository{db: db}
}

// Ensure PgxSeatRepository implements portsrepo.SeatRepositoryFacade
var _ portsrepo.SeatRepositoryFacade = (*PgxSeatRepository)(nil)

func scanSeat(row pgx.Row) (*models.Seat, error) {
	var m models.Seat
	err := row.Scan(
		&m.SeatID,
		&m.SeatNumber,
		&m.Description,
		&m.Location,
		&m.IsActive,
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

func (r *PgxSeatRepository) SaveSeat(ctx context.Context, seat domain.Seat) error {
	m := mapping.ToModelSeat(seat)
	query := `
        INSERT INTO seats (seat_id, seat_number, description, location, is_active,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		m.SeatID,
		m.SeatNumber,
		m.Description,
		m.Location,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, fmt.Sprintf("seat number %d already exists", m.SeatNumber), apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save seat: %w", err)
	}
	return nil
}

func (r *PgxSeatRepository) FindSeatByID(ctx context.Context, seatID string) (*domain.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE seat_id = $1;`
	m, err := scanSeat(r.db.QueryRow(ctx, query, seatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find seat by ID %s: %w", seatID, err)
	}
	seat := mapping.ToDomainSeat(*m)
	return &seat, nil
}

func (r *PgxSeatRepository) FindSeats(ctx context.Context, includeInactive bool) ([]domain.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY seat_number;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query seats: %w", err)
	}
	defer rows.Close()

	return collectSeats(rows)
}

// FindAvailableSeats returns active seats with no live booking on the date.
// Cancelled bookings release the seat, so they are excluded in the anti-join.
func (r *PgxSeatRepository) FindAvailableSeats(ctx context.Context, date time.Time) ([]domain.Seat, error) {
	query := `
        SELECT ` + seatColumns + `
        FROM seats s
        WHERE s.is_active = TRUE
          AND NOT EXISTS (
              SELECT 1 FROM bookings b
              WHERE b.seat_id = s.seat_id
                AND b.booking_date = $1
                AND b.status <> 'cancelled'
          )
        ORDER BY s.seat_number;
    `
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query available seats: %w", err)
	}
	defer rows.Close()

	return collectSeats(rows)
}

// FindBookedSeats returns active seats occupied on the date together with the
// occupying booking and user.
func (r *PgxSeatRepository) FindBookedSeats(ctx context.Context, date time.Time) ([]domain.BookedSeat, error) {
	query := `
        SELECT s.seat_id, s.seat_number, s.description, s.location, s.is_active,
               s.created_at, s.created_by, s.last_updated_at, s.last_updated_by,
               b.booking_id, b.user_id, u.full_name
        FROM seats s
        JOIN bookings b ON b.seat_id = s.seat_id
            AND b.booking_date = $1
            AND b.status <> 'cancelled'
        JOIN users u ON u.user_id = b.user_id
        WHERE s.is_active = TRUE
        ORDER BY s.seat_number;
    `
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query booked seats: %w", err)
	}
	defer rows.Close()

	booked := []domain.BookedSeat{}
	for rows.Next() {
		var m models.Seat
		var bs domain.BookedSeat
		err := rows.Scan(
			&m.SeatID,
			&m.SeatNumber,
			&m.Description,
			&m.Location,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&bs.BookingID,
			&bs.BookedByID,
			&bs.BookedByName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booked seat row: %w", err)
		}
		bs.Seat = mapping.ToDomainSeat(m)
		booked = append(booked, bs)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating booked seat rows: %w", rows.Err())
	}
	return booked, nil
}

func (r *PgxSeatRepository) CountActiveSeats(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM seats WHERE is_active = TRUE;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active seats: %w", err)
	}
	return count, nil
}

func collectSeats(rows pgx.Rows) ([]domain.Seat, error) {
	modelSeats := []models.Seat{}
	for rows.Next() {
		m, err := scanSeat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seat row: %w", err)
		}
		modelSeats = append(modelSeats, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating seat rows: %w", rows.Err())
	}
	return mapping.ToDomainSeatSlice(modelSeats), nil
}

func (r *PgxSeatRepository) UpdateSeat(ctx context.Context, seat domain.Seat) error {
	m := mapping.ToModelSeat(seat)
	query := `
        UPDATE seats
        SET description = $1, location = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
        WHERE seat_id = $6;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Description,
		m.Location,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SeatID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update seat query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("seat not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
