package dto

import (
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// CreateBookingRequest defines the data needed to book a seat for a date.
type CreateBookingRequest struct {
	SeatID      string `json:"seatID" binding:"required,uuid"`
	BookingDate string `json:"bookingDate" binding:"required,datetime=2006-01-02"`
}

// UpdateBookingRequest carries the fields that may change on a confirmed
// booking. Empty fields keep their current value.
type UpdateBookingRequest struct {
	SeatID      string `json:"seatID" binding:"omitempty,uuid"`
	BookingDate string `json:"bookingDate" binding:"omitempty,datetime=2006-01-02"`
}

// CancelBookingRequest carries the optional reason for a cancellation.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// BookingFilter defines the query parameters accepted when listing bookings.
// All fields are optional; empty values mean no constraint.
type BookingFilter struct {
	Status     string `form:"status" binding:"omitempty,oneof=confirmed cancelled missed"`
	StartDate  string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	WeekNumber int    `form:"weekNumber" binding:"omitempty,min=1,max=53"`
	Limit      int    `form:"limit,default=50"`
	Offset     int    `form:"offset,default=0"`
}

// BookingResponse defines the data returned for a booking.
type BookingResponse struct {
	BookingID    string        `json:"bookingID"`
	UserID       string        `json:"userID"`
	SeatID       string        `json:"seatID"`
	BookingDate  string        `json:"bookingDate"`
	WeekNumber   int           `json:"weekNumber"`
	Status       string        `json:"status"`
	IsAutoBooked bool          `json:"isAutoBooked"`
	CheckInTime  *time.Time    `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time    `json:"checkOutTime,omitempty"`
	CancelReason string        `json:"cancelReason,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	Seat         *SeatResponse `json:"seat,omitempty"`
	User         *UserResponse `json:"user,omitempty"`
}

// WeeklyStatusParams defines the query parameters for the weekly status lookup.
type WeeklyStatusParams struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// WeeklyStatusResponse summarizes the caller's week against their quota.
type WeeklyStatusResponse struct {
	UserID       string `json:"userID"`
	WeekNumber   int    `json:"weekNumber"`
	WeekStart    string `json:"weekStart"`
	WeekEnd      string `json:"weekEnd"`
	RequiredDays int    `json:"requiredDays"`
	BookedDays   int    `json:"bookedDays"`
	AttendedDays int    `json:"attendedDays"`
	Status       string `json:"status"`
}

// ListBookingsResponse wraps the list of bookings.
type ListBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ToBookingResponse converts a domain.Booking to BookingResponse DTO
func ToBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		BookingID:    b.BookingID,
		UserID:       b.UserID,
		SeatID:       b.SeatID,
		BookingDate:  b.BookingDate.Format("2006-01-02"),
		WeekNumber:   b.WeekNumber,
		Status:       string(b.Status),
		IsAutoBooked: b.IsAutoBooked,
		CheckInTime:  b.CheckInTime,
		CheckOutTime: b.CheckOutTime,
		CancelReason: b.CancelReason,
		CreatedAt:    b.CreatedAt,
	}
	if b.Seat != nil {
		seat := ToSeatResponse(b.Seat)
		resp.Seat = &seat
	}
	if b.User != nil {
		user := ToUserResponse(b.User)
		resp.User = &user
	}
	return resp
}

// ToWeeklyStatusResponse converts a domain.UserWeeklyStatus to WeeklyStatusResponse DTO
func ToWeeklyStatusResponse(s *domain.UserWeeklyStatus) WeeklyStatusResponse {
	return WeeklyStatusResponse{
		UserID:       s.UserID,
		WeekNumber:   s.WeekNumber,
		WeekStart:    s.WeekStart.Format("2006-01-02"),
		WeekEnd:      s.WeekEnd.Format("2006-01-02"),
		RequiredDays: s.RequiredDays,
		BookedDays:   s.BookedDays,
		AttendedDays: s.AttendedDays,
		Status:       string(s.Status),
	}
}

// ToListBookingsResponse converts a slice of domain.Booking to ListBookingsResponse DTO
func ToListBookingsResponse(bookings []domain.Booking) ListBookingsResponse {
	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = ToBookingResponse(&bookings[i])
	}
	return ListBookingsResponse{
		Bookings: responses,
	}
}
