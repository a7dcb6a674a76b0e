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

// seatHandler handles seat inventory requests.
type seatHandler struct {
	seatService portssvc.SeatSvcFacade
}

func newSeatHandler(ss portssvc.SeatSvcFacade) *seatHandler {
	return &seatHandler{seatService: ss}
}

// registerSeatRoutes sets up the routes for seat inventory.
func registerSeatRoutes(rg *gin.RouterGroup, seatService portssvc.SeatSvcFacade, userService portssvc.UserReaderSvc) {
	h := newSeatHandler(seatService)

	adminOnly := middleware.RequireRoles(userService, domain.RoleAdmin)

	seats := rg.Group("/seats")
	{
		seats.POST("", adminOnly, h.createSeat)
		seats.GET("", h.listSeats)
		seats.GET("/availability", h.getAvailability)
		seats.GET("/:seat_id", h.getSeat)
		seats.PUT("/:seat_id", adminOnly, h.updateSeat)
	}
}

// createSeat godoc
// @Summary Register a seat
// @Description Adds a seat to the inventory. Admin only.
// @Tags seats
// @Accept json
// @Produce json
// @Param seat body dto.CreateSeatRequest true "Seat details"
// @Success 201 {object} dto.SeatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Seat number already exists"
// @Security BearerAuth
// @Router /seats [post]
func (h *seatHandler) createSeat(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	seat, err := h.seatService.CreateSeat(c.Request.Context(), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to create seat")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSeatResponse(seat))
}

// listSeats godoc
// @Summary List seats
// @Description Retrieves all seats. Pass includeInactive=true to include retired seats.
// @Tags seats
// @Produce json
// @Param includeInactive query bool false "Include inactive seats" default(false)
// @Success 200 {object} dto.ListSeatsResponse
// @Security BearerAuth
// @Router /seats [get]
func (h *seatHandler) listSeats(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	seats, err := h.seatService.ListSeats(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err, "Failed to list seats")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSeatsResponse(seats))
}

// getAvailability godoc
// @Summary Seat availability for a date
// @Description Lists the seats still free on the given date.
// @Tags seats
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.SeatAvailabilityResponse
// @Failure 400 {object} ErrorResponse "Invalid or past date"
// @Security BearerAuth
// @Router /seats/availability [get]
func (h *seatHandler) getAvailability(c *gin.Context) {
	var params dto.SeatAvailabilityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date. Use YYYY-MM-DD"})
		return
	}

	date, err := time.Parse("2006-01-02", params.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date. Use YYYY-MM-DD"})
		return
	}

	available, booked, total, err := h.seatService.GetAvailability(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "Failed to get seat availability")
		return
	}

	c.JSON(http.StatusOK, dto.ToSeatAvailabilityResponse(params.Date, available, booked, total))
}

// getSeat godoc
// @Summary Get seat by ID
// @Tags seats
// @Produce json
// @Param seat_id path string true "Seat ID"
// @Success 200 {object} dto.SeatResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /seats/{seat_id} [get]
func (h *seatHandler) getSeat(c *gin.Context) {
	seat, err := h.seatService.GetSeatByID(c.Request.Context(), c.Param("seat_id"))
	if err != nil {
		respondError(c, err, "Failed to get seat")
		return
	}

	c.JSON(http.StatusOK, dto.ToSeatResponse(seat))
}

// updateSeat godoc
// @Summary Update seat
// @Description Updates seat details or retires it. Admin only.
// @Tags seats
// @Accept json
// @Produce json
// @Param seat_id path string true "Seat ID"
// @Param seat body dto.UpdateSeatRequest true "Fields to update"
// @Success 200 {object} dto.SeatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /seats/{seat_id} [put]
func (h *seatHandler) updateSeat(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	seat, err := h.seatService.UpdateSeat(c.Request.Context(), c.Param("seat_id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update seat")
		return
	}

	c.JSON(http.StatusOK, dto.ToSeatResponse(seat))
}
