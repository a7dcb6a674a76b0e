package handlers

import (
	"net/http"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
	"github.com/SeatLogix/desk_booking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bookingHandler handles seat booking requests.
type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
	userService    portssvc.UserReaderSvc
}

func newBookingHandler(bs portssvc.BookingSvcFacade, us portssvc.UserReaderSvc) *bookingHandler {
	return &bookingHandler{
		bookingService: bs,
		userService:    us,
	}
}

// registerBookingRoutes sets up the routes for bookings.
func registerBookingRoutes(rg *gin.RouterGroup, bookingService portssvc.BookingSvcFacade, userService portssvc.UserReaderSvc) {
	h := newBookingHandler(bookingService, userService)

	staffOnly := middleware.RequireRoles(userService, domain.RoleAdmin, domain.RoleManager)

	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("", h.listMyBookings)
		bookings.GET("/all", staffOnly, h.listAllBookings)
		bookings.GET("/weekly-status", h.weeklyStatus)
		bookings.GET("/:booking_id", h.getBooking)
		bookings.PUT("/:booking_id", h.updateBooking)
		bookings.POST("/:booking_id/cancel", h.cancelBooking)
		bookings.POST("/:booking_id/check-in", h.checkIn)
		bookings.POST("/:booking_id/check-out", h.checkOut)
	}
}

// createBooking godoc
// @Summary Book a seat
// @Description Books a seat for the caller on a date. Enforces one seat per user per day and the weekly quota.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body dto.CreateBookingRequest true "Seat and date"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Seat taken, double booking or quota reached"
// @Security BearerAuth
// @Router /bookings [post]
func (h *bookingHandler) createBooking(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// listMyBookings godoc
// @Summary List own bookings
// @Description Retrieves the caller's bookings, optionally filtered by status, date range or week.
// @Tags bookings
// @Produce json
// @Param status query string false "Status filter" Enums(confirmed, cancelled, missed)
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param weekNumber query int false "ISO week number"
// @Success 200 {object} dto.ListBookingsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings [get]
func (h *bookingHandler) listMyBookings(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var filter dto.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	bookings, err := h.bookingService.ListUserBookings(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBookingsResponse(bookings))
}

// listAllBookings godoc
// @Summary List all bookings
// @Description Retrieves bookings across all users. Admin or manager only.
// @Tags bookings
// @Produce json
// @Param status query string false "Status filter" Enums(confirmed, cancelled, missed)
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListBookingsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/all [get]
func (h *bookingHandler) listAllBookings(c *gin.Context) {
	var filter dto.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	bookings, err := h.bookingService.ListAllBookings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBookingsResponse(bookings))
}

// weeklyStatus godoc
// @Summary Weekly quota status
// @Description Reports the caller's booked and attended days against their quota for the week containing the given date.
// @Tags bookings
// @Produce json
// @Param date query string false "Any date within the week (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.WeeklyStatusResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/weekly-status [get]
func (h *bookingHandler) weeklyStatus(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.WeeklyStatusParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	date := time.Now().UTC()
	if params.Date != "" {
		date, _ = time.Parse("2006-01-02", params.Date)
	}

	status, err := h.bookingService.GetUserWeeklyStatus(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err, "Failed to get weekly status")
		return
	}

	c.JSON(http.StatusOK, dto.ToWeeklyStatusResponse(status))
}

// getBooking godoc
// @Summary Get booking by ID
// @Tags bookings
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/{booking_id} [get]
func (h *bookingHandler) getBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBookingByID(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		respondError(c, err, "Failed to get booking")
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// updateBooking godoc
// @Summary Move a booking
// @Description Moves a confirmed booking to a different seat or date. Seat, date and quota rules are re-checked. Owner or admin only.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Param booking body dto.UpdateBookingRequest true "New seat and/or date"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Target taken or not in a movable state"
// @Security BearerAuth
// @Router /bookings/{booking_id} [put]
func (h *bookingHandler) updateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), c.Param("booking_id"), userID, h.isAdmin(c, userID), req)
	if err != nil {
		respondError(c, err, "Failed to update booking")
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// cancelBooking godoc
// @Summary Cancel a booking
// @Description Cancels a confirmed booking. Owner or admin only, not after the booked day.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Param cancel body dto.CancelBookingRequest false "Optional reason"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not in a cancellable state"
// @Security BearerAuth
// @Router /bookings/{booking_id}/cancel [post]
func (h *bookingHandler) cancelBooking(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), c.Param("booking_id"), userID, h.isAdmin(c, userID), req.Reason)
	if err != nil {
		respondError(c, err, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// checkIn godoc
// @Summary Check in to a booking
// @Description Records presence at the booked seat. Only valid on the booked day.
// @Tags bookings
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/{booking_id}/check-in [post]
func (h *bookingHandler) checkIn(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	booking, err := h.bookingService.CheckIn(c.Request.Context(), c.Param("booking_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to check in")
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// checkOut godoc
// @Summary Check out of a booking
// @Description Records departure from the booked seat. Requires a prior check-in.
// @Tags bookings
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/{booking_id}/check-out [post]
func (h *bookingHandler) checkOut(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	booking, err := h.bookingService.CheckOut(c.Request.Context(), c.Param("booking_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to check out")
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// isAdmin reports whether the requesting user holds the admin role. Lookup
// failures are treated as non-admin; ownership checks still apply.
func (h *bookingHandler) isAdmin(c *gin.Context, userID string) bool {
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return user.Role == domain.RoleAdmin
}
