package mapping

import (
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	"github.com/SeatLogix/desk_booking_app/internal/models"
)

// ToModelSeat converts a domain Seat to a model Seat
func ToModelSeat(d domain.Seat) models.Seat {
	return models.Seat{
		SeatID:      d.SeatID,
		SeatNumber:  d.SeatNumber,
		Description: d.Description,
		Location:    d.Location,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSeat converts a model Seat to a domain Seat
func ToDomainSeat(m models.Seat) domain.Seat {
	return domain.Seat{
		SeatID:      m.SeatID,
		SeatNumber:  m.SeatNumber,
		Description: m.Description,
		Location:    m.Location,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSeatSlice converts a slice of model Seats to a slice of domain Seats
func ToDomainSeatSlice(ms []models.Seat) []domain.Seat {
	ds := make([]domain.Seat, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSeat(m)
	}
	return ds
}
