package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler exposes read access to the audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes sets up the audit trail routes. Admin only.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade, userService portssvc.UserReaderSvc) {
	h := newAuditHandler(auditService)

	adminOnly := middleware.RequireRoles(userService, domain.RoleAdmin)

	rg.GET("/audit/:entity_type/:entity_id", adminOnly, h.getEntityTrail)
}

// auditLogResponse is one audit entry with its snapshots decoded for clients.
type auditLogResponse struct {
	AuditID     int64           `json:"auditID"`
	EntityType  string          `json:"entityType"`
	EntityID    string          `json:"entityID"`
	Action      string          `json:"action"`
	PerformedBy string          `json:"performedBy,omitempty"`
	OldValues   json.RawMessage `json:"oldValues,omitempty"`
	NewValues   json.RawMessage `json:"newValues,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// getEntityTrail godoc
// @Summary Audit trail for an entity
// @Description Retrieves the audit trail for an entity, newest first. Admin only.
// @Tags audit
// @Produce json
// @Param entity_type path string true "Entity type" Enums(booking, user, seat, desktop_session)
// @Param entity_id path string true "Entity ID"
// @Param limit query int false "Max entries" default(50)
// @Success 200 {array} auditLogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit/{entity_type}/{entity_id} [get]
func (h *auditHandler) getEntityTrail(c *gin.Context) {
	entityType := domain.AuditEntityType(c.Param("entity_type"))
	switch entityType {
	case domain.AuditEntityBooking, domain.AuditEntityUser, domain.AuditEntitySeat, domain.AuditEntitySession:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown entity type"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit"})
		return
	}

	logs, err := h.auditService.GetEntityTrail(c.Request.Context(), entityType, c.Param("entity_id"), limit)
	if err != nil {
		respondError(c, err, "Failed to get audit trail")
		return
	}

	responses := make([]auditLogResponse, len(logs))
	for i, l := range logs {
		responses[i] = auditLogResponse{
			AuditID:     l.AuditID,
			EntityType:  string(l.EntityType),
			EntityID:    l.EntityID,
			Action:      string(l.Action),
			PerformedBy: l.PerformedBy,
			OldValues:   json.RawMessage(l.OldValues),
			NewValues:   json.RawMessage(l.NewValues),
			CreatedAt:   l.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, responses)
}
