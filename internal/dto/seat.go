package dto

import (
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// CreateSeatRequest defines the data needed to register a seat.
type CreateSeatRequest struct {
	SeatNumber  int    `json:"seatNumber" binding:"required,min=1"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// UpdateSeatRequest defines the data allowed for updating a seat.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateSeatRequest struct {
	Description *string `json:"description"`
	Location    *string `json:"location"`
	IsActive    *bool   `json:"isActive"`
}

// SeatAvailabilityParams defines the query parameters for an availability lookup.
type SeatAvailabilityParams struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// SeatResponse defines the data returned for a seat.
type SeatResponse struct {
	SeatID      string `json:"seatID"`
	SeatNumber  int    `json:"seatNumber"`
	Description string `json:"description"`
	Location    string `json:"location"`
	IsActive    bool   `json:"isActive"`
}

// ListSeatsResponse wraps the list of seats.
type ListSeatsResponse struct {
	Seats []SeatResponse `json:"seats"`
}

// BookedSeatResponse pairs a seat with the booking occupying it.
type BookedSeatResponse struct {
	Seat         SeatResponse `json:"seat"`
	BookingID    string       `json:"bookingID"`
	BookedByID   string       `json:"bookedByID"`
	BookedByName string       `json:"bookedByName"`
}

// SeatAvailabilityResponse partitions the active seats on a date into free
// and occupied.
type SeatAvailabilityResponse struct {
	Date           string               `json:"date"`
	AvailableSeats []SeatResponse       `json:"availableSeats"`
	BookedSeats    []BookedSeatResponse `json:"bookedSeats"`
	TotalSeats     int                  `json:"totalSeats"`
}

// ToSeatResponse converts a domain.Seat to SeatResponse DTO
func ToSeatResponse(s *domain.Seat) SeatResponse {
	return SeatResponse{
		SeatID:      s.SeatID,
		SeatNumber:  s.SeatNumber,
		Description: s.Description,
		Location:    s.Location,
		IsActive:    s.IsActive,
	}
}

// ToListSeatsResponse converts a slice of domain.Seat to ListSeatsResponse DTO
func ToListSeatsResponse(seats []domain.Seat) ListSeatsResponse {
	responses := make([]SeatResponse, len(seats))
	for i := range seats {
		responses[i] = ToSeatResponse(&seats[i])
	}
	return ListSeatsResponse{
		Seats: responses,
	}
}

// ToSeatAvailabilityResponse builds the availability payload for a date.
func ToSeatAvailabilityResponse(date string, available []domain.Seat, booked []domain.BookedSeat, total int) SeatAvailabilityResponse {
	bookedResponses := make([]BookedSeatResponse, len(booked))
	for i := range booked {
		bookedResponses[i] = BookedSeatResponse{
			Seat:         ToSeatResponse(&booked[i].Seat),
			BookingID:    booked[i].BookingID,
			BookedByID:   booked[i].BookedByID,
			BookedByName: booked[i].BookedByName,
		}
	}
	return SeatAvailabilityResponse{
		Date:           date,
		AvailableSeats: ToListSeatsResponse(available).Seats,
		BookedSeats:    bookedResponses,
		TotalSeats:     total,
	}
}
