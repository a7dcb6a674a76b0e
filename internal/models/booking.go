package models

import "time"

// Booking represents one user-seat-date reservation row.
// BookingDate is stored as a DATE column; times are timestamptz.
type Booking struct {
	BookingID    string     `db:"booking_id"`
	UserID       string     `db:"user_id"`
	SeatID       string     `db:"seat_id"`
	BookingDate  time.Time  `db:"booking_date"`
	WeekNumber   int        `db:"week_number"`
	Status       string     `db:"status"`
	IsAutoBooked bool       `db:"is_auto_booked"`
	CheckInTime  *time.Time `db:"check_in_time"`
	CheckOutTime *time.Time `db:"check_out_time"`
	CancelReason string     `db:"cancel_reason"`
	AuditFields
}
