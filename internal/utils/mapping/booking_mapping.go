package mapping

import (
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	"github.com/SeatLogix/desk_booking_app/internal/models"
)

// ToModelBooking converts a domain Booking to a model Booking
func ToModelBooking(d domain.Booking) models.Booking {
	return models.Booking{
		BookingID:    d.BookingID,
		UserID:       d.UserID,
		SeatID:       d.SeatID,
		BookingDate:  d.BookingDate,
		WeekNumber:   d.WeekNumber,
		Status:       string(d.Status),
		IsAutoBooked: d.IsAutoBooked,
		CheckInTime:  d.CheckInTime,
		CheckOutTime: d.CheckOutTime,
		CancelReason: d.CancelReason,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBooking converts a model Booking to a domain Booking
func ToDomainBooking(m models.Booking) domain.Booking {
	return domain.Booking{
		BookingID:    m.BookingID,
		UserID:       m.UserID,
		SeatID:       m.SeatID,
		BookingDate:  m.BookingDate,
		WeekNumber:   m.WeekNumber,
		Status:       domain.BookingStatus(m.Status),
		IsAutoBooked: m.IsAutoBooked,
		CheckInTime:  m.CheckInTime,
		CheckOutTime: m.CheckOutTime,
		CancelReason: m.CancelReason,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBookingSlice converts a slice of model Bookings to a slice of domain Bookings
func ToDomainBookingSlice(ms []models.Booking) []domain.Booking {
	ds := make([]domain.Booking, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBooking(m)
	}
	return ds
}
