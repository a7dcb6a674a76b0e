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

// reportingHandler handles attendance and utilization report requests
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, userService portssvc.UserReaderSvc) {
	h := newReportingHandler(reportingService)

	staffOnly := middleware.RequireRoles(userService, domain.RoleAdmin, domain.RoleManager)

	reportingGroup := rg.Group("/reports", staffOnly)
	{
		reportingGroup.GET("/weekly-compliance", h.getWeeklyCompliance)
		reportingGroup.GET("/utilization", h.getOfficeUtilization)
	}
}

// getWeeklyCompliance godoc
// @Summary Weekly compliance report
// @Description One row per user for the week containing the given date: booked days, attended days and compliance against the user's weekly quota.
// @Tags reports
// @Produce json
// @Param date query string false "Any date in the target week (YYYY-MM-DD)" default(current date)
// @Param department query string false "Filter by department"
// @Success 200 {object} dto.WeeklyComplianceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/weekly-compliance [get]
func (h *reportingHandler) getWeeklyCompliance(c *gin.Context) {
	var params dto.WeeklyComplianceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	date := time.Now()
	if params.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", params.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date format. Use YYYY-MM-DD"})
			return
		}
	}

	weekNumber, rows, err := h.reportingService.GetWeeklyCompliance(c.Request.Context(), date, params.Department)
	if err != nil {
		respondError(c, err, "Failed to generate compliance report")
		return
	}

	c.JSON(http.StatusOK, dto.ToWeeklyComplianceResponse(weekNumber, rows))
}

// getOfficeUtilization godoc
// @Summary Office utilization report
// @Description Per-date seat usage for an inclusive date range.
// @Tags reports
// @Produce json
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.OfficeUtilizationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/utilization [get]
func (h *reportingHandler) getOfficeUtilization(c *gin.Context) {
	var params dto.UtilizationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "startDate and endDate are required (YYYY-MM-DD)"})
		return
	}

	from, err := time.Parse("2006-01-02", params.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid startDate. Use YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", params.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid endDate. Use YYYY-MM-DD"})
		return
	}

	rows, err := h.reportingService.GetOfficeUtilization(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to generate utilization report")
		return
	}

	c.JSON(http.StatusOK, dto.ToOfficeUtilizationResponse(rows))
}
