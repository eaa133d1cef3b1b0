package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	dashboardapp "github.com/realtyadmin/backend/internal/application/dashboard"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/realtyadmin/backend/internal/interfaces/http/dto"
	"github.com/realtyadmin/backend/internal/interfaces/http/middleware"
)

// DashboardHandler serves the landing page
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboardapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary godoc
// @ID           getDashboardSummary
// @Summary      Dashboard counts for the caller's role
// @Description  Cards the role cannot read are omitted
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} APIResponse[dashboardapp.Summary]
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context(), identity.Role(middleware.GetJWTRole(c)))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetWidget godoc
// @ID           getDashboardWidget
// @Summary      Get the caller's widget document
// @Description  Returns null when the widget was never saved
// @Tags         dashboard
// @Produce      json
// @Param        name path string true "Widget name" example(notes)
// @Success      200 {object} APIResponse[object]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard/widgets/{name} [get]
func (h *DashboardHandler) GetWidget(c *gin.Context) {
	doc, err := h.dashboardService.Widget(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// SaveWidget godoc
// @ID           saveDashboardWidget
// @Summary      Replace the caller's widget document
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        name    path string true "Widget name" example(notes)
// @Param        request body object true "Any JSON document up to 64 KiB"
// @Success      200 {object} APIResponse[object]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard/widgets/{name} [put]
func (h *DashboardHandler) SaveWidget(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Could not read request body")
		return
	}
	doc := json.RawMessage(body)
	if err := h.dashboardService.SaveWidget(c.Request.Context(), c.Param("name"), doc); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}
