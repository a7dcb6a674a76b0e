package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portsrepo "github.com/SeatLogix/desk_booking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reportingRepository struct {
	db *pgxpool.Pool
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{db: db}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetWeeklyComplianceData counts, per active user, the confirmed bookings in
// the week and how many of them have both check-in and check-out recorded.
// Rows come back with counts only; the service layer fills in percentages
// and status colours.
func (r *reportingRepository) GetWeeklyComplianceData(ctx context.Context, weekStart, weekEnd time.Time, department string) ([]domain.WeeklyComplianceRow, error) {
	query := `
        SELECT u.user_id, u.username, u.full_name, u.department, u.required_days_per_week,
               COUNT(b.booking_id) FILTER (WHERE b.status = 'confirmed') AS booked_days,
               COUNT(b.booking_id) FILTER (
                   WHERE b.status = 'confirmed'
                     AND b.check_in_time IS NOT NULL
                     AND b.check_out_time IS NOT NULL
               ) AS attended_days
        FROM users u
        LEFT JOIN bookings b
            ON b.user_id = u.user_id
           AND b.booking_date BETWEEN $1 AND $2
        WHERE u.deleted_at IS NULL
          AND u.is_active = TRUE
          AND ($3 = '' OR u.department = $3)
        GROUP BY u.user_id, u.username, u.full_name, u.department, u.required_days_per_week
        ORDER BY u.full_name;
    `
	rows, err := r.db.Query(ctx, query, weekStart, weekEnd, department)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly compliance data: %w", err)
	}
	defer rows.Close()

	results := []domain.WeeklyComplianceRow{}
	for rows.Next() {
		var row domain.WeeklyComplianceRow
		err := rows.Scan(
			&row.UserID,
			&row.Username,
			&row.FullName,
			&row.Department,
			&row.RequiredDays,
			&row.BookedDays,
			&row.AttendedDays,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compliance row: %w", err)
		}
		results = append(results, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating compliance rows: %w", rows.Err())
	}

	return results, nil
}

func (r *reportingRepository) GetUtilizationData(ctx context.Context, from, to time.Time) ([]domain.OfficeUtilizationRow, error) {
	query := `
        SELECT d.day::date,
               (SELECT COUNT(*) FROM seats WHERE is_active = TRUE) AS total_seats,
               COUNT(b.booking_id) FILTER (WHERE b.status <> 'cancelled') AS booked_seats,
               COUNT(b.booking_id) FILTER (
                   WHERE b.status = 'confirmed'
                     AND b.check_in_time IS NOT NULL
                     AND b.check_out_time IS NOT NULL
               ) AS attended_seats
        FROM generate_series($1::date, $2::date, interval '1 day') AS d(day)
        LEFT JOIN bookings b ON b.booking_date = d.day::date
        GROUP BY d.day
        ORDER BY d.day;
    `
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query utilization data: %w", err)
	}
	defer rows.Close()

	results := []domain.OfficeUtilizationRow{}
	for rows.Next() {
		var row domain.OfficeUtilizationRow
		err := rows.Scan(
			&row.Date,
			&row.TotalSeats,
			&row.BookedSeats,
			&row.AttendedSeats,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan utilization row: %w", err)
		}
		results = append(results, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating utilization rows: %w", rows.Err())
	}

	return results, nil
}
