package models

// Seat represents a bookable desk in the office.
type Seat struct {
	SeatID      string `db:"seat_id"`
	SeatNumber  int    `db:"seat_number"`
	Description string `db:"description"`
	Location    string `db:"location"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
