package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingMissed    BookingStatus = "missed"
)

// Booking is a reservation of one seat by one user for one calendar date.
// BookingDate is date-only (midnight UTC); WeekNumber is derived from it at
// write time and groups bookings for weekly quota enforcement.
type Booking struct {
	BookingID    string        `json:"bookingID"` // Primary Key (UUID)
	UserID       string        `json:"userID"`
	SeatID       string        `json:"seatID"`
	BookingDate  time.Time     `json:"bookingDate"`
	WeekNumber   int           `json:"weekNumber"`
	Status       BookingStatus `json:"status"`
	IsAutoBooked bool          `json:"isAutoBooked"`
	CheckInTime  *time.Time    `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time    `json:"checkOutTime,omitempty"`
	CancelReason string        `json:"cancelReason,omitempty"`
	AuditFields

	// Populated on joined reads only.
	Seat *Seat `json:"seat,omitempty"`
	User *User `json:"user,omitempty"`
}

// IsCheckedIn reports whether the booking has a recorded check-in.
func (b Booking) IsCheckedIn() bool {
	return b.CheckInTime != nil
}

// IsAttended reports whether the booking counts toward weekly attendance:
// confirmed with both check-in and check-out recorded.
func (b Booking) IsAttended() bool {
	return b.Status == BookingConfirmed && b.CheckInTime != nil && b.CheckOutTime != nil
}
