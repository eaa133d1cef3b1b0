package handler

import (
	"github.com/gin-gonic/gin"
	auditapp "github.com/realtyadmin/backend/internal/application/audit"
)

// ActivityLogHandler serves the activity log
type ActivityLogHandler struct {
	BaseHandler
	auditService *auditapp.AuditService
}

// NewActivityLogHandler creates a new ActivityLogHandler
func NewActivityLogHandler(auditService *auditapp.AuditService) *ActivityLogHandler {
	return &ActivityLogHandler{auditService: auditService}
}

// ActivityLogQuery filters the activity log
type ActivityLogQuery struct {
	PeriodQuery
	ActorID    string `form:"actor_id" binding:"omitempty,uuid"`
	Action     string `form:"action" binding:"omitempty,oneof=create update delete status_change login logout export"`
	EntityType string `form:"entity_type" binding:"max=50"`
	Search     string `form:"search"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

func (q ActivityLogQuery) input() auditapp.ListInput {
	actor, _ := parseOptionalID(q.ActorID)
	from, to := q.bounds()
	return auditapp.ListInput{
		ActorID:    actor,
		Action:     q.Action,
		EntityType: q.EntityType,
		From:       from,
		To:         to,
		Search:     q.Search,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
}

// List godoc
// @ID           listActivityLogs
// @Summary      List activity log entries
// @Description  Newest first
// @Tags         activity-logs
// @Produce      json
// @Param        actor_id    query string false "Actor user ID" format(uuid)
// @Param        action      query string false "Action" Enums(create, update, delete, status_change, login, logout, export)
// @Param        entity_type query string false "Entity type, e.g. Owner"
// @Param        from        query string false "First day (YYYY-MM-DD)"
// @Param        to          query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param        search      query string false "Search term (description)"
// @Param        page        query int    false "Page number" default(1)
// @Param        page_size   query int    false "Page size" default(50) maximum(200)
// @Success      200 {object} APIResponse[[]auditapp.ActivityLogDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /activity-logs [get]
func (h *ActivityLogHandler) List(c *gin.Context) {
	var q ActivityLogQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.auditService.List(c.Request.Context(), q.input())
	respondPage(&h.BaseHandler, c, page, err)
}
