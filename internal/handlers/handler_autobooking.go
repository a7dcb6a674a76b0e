package handlers

import (
	"net/http"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
	"github.com/SeatLogix/desk_booking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// autoBookingHandler exposes the auto-booking allocation engine over HTTP.
type autoBookingHandler struct {
	autoBookingService portssvc.AutoBookingSvcFacade
	userService        portssvc.UserReaderSvc
}

func newAutoBookingHandler(abs portssvc.AutoBookingSvcFacade, us portssvc.UserReaderSvc) *autoBookingHandler {
	return &autoBookingHandler{
		autoBookingService: abs,
		userService:        us,
	}
}

// registerAutoBookingRoutes sets up the routes for the allocation engine.
func registerAutoBookingRoutes(rg *gin.RouterGroup, autoBookingService portssvc.AutoBookingSvcFacade, userService portssvc.UserReaderSvc) {
	h := newAutoBookingHandler(autoBookingService, userService)

	adminOnly := middleware.RequireRoles(userService, domain.RoleAdmin)

	autoBooking := rg.Group("/auto-booking")
	{
		autoBooking.POST("/run", adminOnly, h.runFleet)
		autoBooking.POST("/users/:user_id/run", h.runForUser)
		autoBooking.POST("/users/:user_id/reset", h.resetForUser)
	}
}

// runFleet godoc
// @Summary Run fleet allocation
// @Description Allocates seats for every active user with work preferences set. Admin only.
// @Tags auto-booking
// @Produce json
// @Success 200 {object} dto.FleetRunSummaryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auto-booking/run [post]
func (h *autoBookingHandler) runFleet(c *gin.Context) {
	summary, err := h.autoBookingService.RunFleetAllocation(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to run fleet allocation")
		return
	}

	c.JSON(http.StatusOK, dto.ToFleetRunSummaryResponse(summary))
}

// runForUser godoc
// @Summary Run allocation for a user
// @Description Books seats for the user over the allocation window. Idempotent; held dates are skipped. Self or admin.
// @Tags auto-booking
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.AllocationResultResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "User has no work preferences set"
// @Security BearerAuth
// @Router /auto-booking/users/{user_id}/run [post]
func (h *autoBookingHandler) runForUser(c *gin.Context) {
	userID := c.Param("user_id")
	if !h.selfOrAdmin(c, userID) {
		return
	}
	requestingUserID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.autoBookingService.AllocateForUser(c.Request.Context(), userID, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to run allocation")
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResultResponse(result))
}

// resetForUser godoc
// @Summary Reset and rerun allocation for a user
// @Description Cancels the user's future auto-booked seats and allocates afresh. Self or admin.
// @Tags auto-booking
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.AllocationResultResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /auto-booking/users/{user_id}/reset [post]
func (h *autoBookingHandler) resetForUser(c *gin.Context) {
	userID := c.Param("user_id")
	if !h.selfOrAdmin(c, userID) {
		return
	}
	requestingUserID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.autoBookingService.ResetAndAllocate(c.Request.Context(), userID, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to reset allocation")
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResultResponse(result))
}

// selfOrAdmin allows the target user themselves or an admin through, writing
// the error response and returning false otherwise.
func (h *autoBookingHandler) selfOrAdmin(c *gin.Context, targetUserID string) bool {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return false
	}
	if requestingUserID == targetUserID {
		return true
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), requestingUserID)
	if err != nil || user.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return false
	}
	return true
}
