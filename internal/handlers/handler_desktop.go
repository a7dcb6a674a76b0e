package handlers

import (
	"net/http"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
	"github.com/SeatLogix/desk_booking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// desktopHandler handles desktop agent session and attendance requests.
type desktopHandler struct {
	sessionService portssvc.SessionSvcFacade
}

func newDesktopHandler(ss portssvc.SessionSvcFacade) *desktopHandler {
	return &desktopHandler{sessionService: ss}
}

// registerDesktopLoginRoute sets up the public desktop agent login route.
// The agent has no access token yet at this point.
func registerDesktopLoginRoute(rg *gin.Engine, services *portssvc.ServiceContainer) {
	h := newDesktopHandler(services.Session)

	rg.POST("/api/v1/desktop/login", middleware.RateLimitByIP("5-M"), h.desktopLogin)
}

// registerDesktopRoutes sets up the authenticated desktop agent routes.
func registerDesktopRoutes(rg *gin.RouterGroup, sessionService portssvc.SessionSvcFacade, userService portssvc.UserReaderSvc) {
	h := newDesktopHandler(sessionService)

	adminOnly := middleware.RequireRoles(userService, domain.RoleAdmin)

	desktop := rg.Group("/desktop")
	{
		desktop.POST("/connect", h.connect)
		desktop.POST("/heartbeat", h.heartbeat)
		desktop.POST("/disconnect", h.disconnect)
		desktop.POST("/logout", h.logout)
		desktop.GET("/session", h.getSession)
		desktop.GET("/attendance", h.attendanceHistory)
	}

	admin := rg.Group("/admin", adminOnly)
	{
		admin.GET("/sessions", h.listSessions)
		admin.POST("/sessions/cleanup", h.cleanupSessions)
		admin.GET("/attendance", h.adminAttendanceHistory)
	}

	rg.POST("/users/:user_id/sessions/reset", adminOnly, h.resetSessions)
}

// desktopLogin godoc
// @Summary Desktop agent login
// @Description Authenticates the desktop agent and binds a session to the device's MAC address. A login from a second machine while a session is active is rejected.
// @Tags desktop
// @Accept json
// @Produce json
// @Param login body dto.DesktopLoginRequest true "Credentials and device identity"
// @Success 200 {object} dto.DesktopLoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Active session on another device"
// @Router /desktop/login [post]
func (h *desktopHandler) desktopLogin(c *gin.Context) {
	var req dto.DesktopLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	session, user, token, err := h.sessionService.DesktopLogin(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, dto.DesktopLoginResponse{
		Token:     token,
		SessionID: session.SessionID,
		User:      dto.ToUserResponse(user),
	})
}

// connect godoc
// @Summary Device connect event
// @Description Opens a connection interval and checks the user in to today's booking when one exists.
// @Tags desktop
// @Accept json
// @Produce json
// @Param event body dto.DeviceEventRequest true "Device identity"
// @Success 200 {object} dto.AttendanceRecordResponse
// @Failure 401 {object} ErrorResponse "No active session"
// @Failure 409 {object} ErrorResponse "Session bound to a different device"
// @Security BearerAuth
// @Router /desktop/connect [post]
func (h *desktopHandler) connect(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.DeviceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	record, err := h.sessionService.HandleConnect(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to record connect")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceRecordResponse(record))
}

// heartbeat godoc
// @Summary Device heartbeat
// @Description Refreshes the session's last-activity timestamp.
// @Tags desktop
// @Accept json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "No active session"
// @Failure 409 {object} ErrorResponse "Session bound to a different device"
// @Security BearerAuth
// @Router /desktop/heartbeat [post]
func (h *desktopHandler) heartbeat(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.DeviceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.sessionService.HandleHeartbeat(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to record heartbeat")
		return
	}

	c.Status(http.StatusNoContent)
}

// disconnect godoc
// @Summary Device disconnect event
// @Description Closes the open connection interval and checks the user out of today's booking when one exists.
// @Tags desktop
// @Accept json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "No active session"
// @Security BearerAuth
// @Router /desktop/disconnect [post]
func (h *desktopHandler) disconnect(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.DeviceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.sessionService.HandleDisconnect(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to record disconnect")
		return
	}

	c.Status(http.StatusNoContent)
}

// logout godoc
// @Summary Desktop agent logout
// @Description Closes the open connection interval and deactivates the session. The agent must log in again to resume reporting.
// @Tags desktop
// @Accept json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "No active session"
// @Security BearerAuth
// @Router /desktop/logout [post]
func (h *desktopHandler) logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.DeviceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.sessionService.DesktopLogout(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to log out")
		return
	}

	c.Status(http.StatusNoContent)
}

// getSession godoc
// @Summary Get active session
// @Description Retrieves the caller's active desktop session.
// @Tags desktop
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /desktop/session [get]
func (h *desktopHandler) getSession(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	session, err := h.sessionService.GetActiveSession(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get session")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// attendanceHistory godoc
// @Summary Attendance history
// @Description Retrieves a page of the caller's connection intervals, newest first.
// @Tags desktop
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Continuation token from the previous page"
// @Success 200 {object} dto.AttendanceHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /desktop/attendance [get]
func (h *desktopHandler) attendanceHistory(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.AttendanceHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	records, newToken, err := h.sessionService.ListAttendanceHistory(c.Request.Context(), userID, params.Limit, nextToken)
	if err != nil {
		respondError(c, err, "Failed to list attendance history")
		return
	}

	tokenOut := ""
	if newToken != nil {
		tokenOut = *newToken
	}
	c.JSON(http.StatusOK, dto.ToAttendanceHistoryResponse(records, tokenOut))
}

// listSessions godoc
// @Summary List active sessions
// @Description Retrieves every live desktop session across all users, most recently active first. Idle sessions are swept before the listing. Admin only.
// @Tags desktop
// @Produce json
// @Success 200 {object} dto.ListSessionsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/sessions [get]
func (h *desktopHandler) listSessions(c *gin.Context) {
	sessions, err := h.sessionService.ListActiveSessions(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list sessions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSessionsResponse(sessions))
}

// cleanupSessions godoc
// @Summary Sweep idle sessions
// @Description Closes sessions and connection intervals with no recent heartbeat. Runs on a schedule as well; this triggers it on demand. Admin only.
// @Tags desktop
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/sessions/cleanup [post]
func (h *desktopHandler) cleanupSessions(c *gin.Context) {
	closed, err := h.sessionService.SweepIdleSessions(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to sweep sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"closedSessions": closed})
}

// adminAttendanceHistory godoc
// @Summary Attendance history for any user
// @Description Retrieves a page of the given user's connection intervals, newest first. Admin only.
// @Tags desktop
// @Produce json
// @Param userID query string true "User ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Continuation token from the previous page"
// @Success 200 {object} dto.AttendanceHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/attendance [get]
func (h *desktopHandler) adminAttendanceHistory(c *gin.Context) {
	var params dto.AdminAttendanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	records, newToken, err := h.sessionService.ListAttendanceHistory(c.Request.Context(), params.UserID, params.Limit, nextToken)
	if err != nil {
		respondError(c, err, "Failed to list attendance history")
		return
	}

	tokenOut := ""
	if newToken != nil {
		tokenOut = *newToken
	}
	c.JSON(http.StatusOK, dto.ToAttendanceHistoryResponse(records, tokenOut))
}

// resetSessions godoc
// @Summary Reset a user's desktop sessions
// @Description Force-closes all of the user's desktop sessions so they can log in from a new machine. Admin only.
// @Tags desktop
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{user_id}/sessions/reset [post]
func (h *desktopHandler) resetSessions(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.sessionService.ResetUserSessions(c.Request.Context(), c.Param("user_id"), requestingUserID); err != nil {
		respondError(c, err, "Failed to reset sessions")
		return
	}

	c.Status(http.StatusNoContent)
}
