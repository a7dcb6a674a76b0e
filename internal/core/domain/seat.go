package domain

// Seat represents a bookable physical desk. SeatNumber is the stable
// human-facing identifier; allocation orders by it.
type Seat struct {
	SeatID      string `json:"seatID"` // Primary Key (UUID)
	SeatNumber  int    `json:"seatNumber"`
	Description string `json:"description"`
	Location    string `json:"location"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// BookedSeat pairs a seat with the booking occupying it on a date.
type BookedSeat struct {
	Seat         Seat
	BookingID    string
	BookedByID   string
	BookedByName string
}
