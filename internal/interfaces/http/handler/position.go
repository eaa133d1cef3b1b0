package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orgapp "github.com/realtyadmin/backend/internal/application/organization"
)

// PositionHandler handles position endpoints
type PositionHandler struct {
	BaseHandler
	positionService *orgapp.PositionService
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(positionService *orgapp.PositionService) *PositionHandler {
	return &PositionHandler{positionService: positionService}
}

// PositionRequest is the create/update form of a position
type PositionRequest struct {
	Code         string `json:"code" binding:"required,min=2,max=20" example:"ACCT-MGR"`
	Title        string `json:"title" binding:"required,min=1,max=100" example:"Accounting Manager"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	ReportsToID  string `json:"reports_to_id" binding:"omitempty,uuid"`
	Level        int    `json:"level" binding:"min=0,max=20" example:"2"`
}

func (r PositionRequest) input() orgapp.PositionInput {
	reportsTo, _ := parseOptionalID(r.ReportsToID)
	return orgapp.PositionInput{
		Code:         r.Code,
		Title:        r.Title,
		DepartmentID: uuid.MustParse(r.DepartmentID),
		ReportsToID:  reportsTo,
		Level:        r.Level,
	}
}

// PositionListQuery filters the position list
type PositionListQuery struct {
	ListQuery
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
}

// Create godoc
// @ID           createPosition
// @Summary      Create a position
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        request body PositionRequest true "Position"
// @Success      201 {object} APIResponse[orgapp.PositionDTO]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /positions [post]
func (h *PositionHandler) Create(c *gin.Context) {
	var req PositionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	pos, err := h.positionService.Create(c.Request.Context(), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, pos)
}

// GetByID godoc
// @ID           getPositionById
// @Summary      Get position by ID
// @Tags         positions
// @Produce      json
// @Param        id path string true "Position ID" format(uuid)
// @Success      200 {object} APIResponse[orgapp.PositionDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /positions/{id} [get]
func (h *PositionHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	pos, err := h.positionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pos)
}

// List godoc
// @ID           listPositions
// @Summary      List positions
// @Tags         positions
// @Produce      json
// @Param        search        query string false "Search term (code, title)"
// @Param        department_id query string false "Department ID" format(uuid)
// @Param        page          query int    false "Page number" default(1)
// @Param        page_size     query int    false "Page size" default(20) maximum(100)
// @Param        order_by      query string false "Order by field" default(code)
// @Param        order_dir     query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]orgapp.PositionDTO]
// @Security     BearerAuth
// @Router       /positions [get]
func (h *PositionHandler) List(c *gin.Context) {
	var q PositionListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.positionService.List(c.Request.Context(), orgapp.ListInput{
		Search:       q.Search,
		DepartmentID: q.DepartmentID,
		Page:         q.Page,
		PageSize:     q.PageSize,
		OrderBy:      q.OrderBy,
		OrderDir:     q.OrderDir,
	})
	respondPage(&h.BaseHandler, c, page, err)
}

// Update godoc
// @ID           updatePosition
// @Summary      Update a position
// @Description  reports_to_id must not create a reporting cycle
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        id      path string          true "Position ID" format(uuid)
// @Param        request body PositionRequest true "Position"
// @Success      200 {object} APIResponse[orgapp.PositionDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /positions/{id} [put]
func (h *PositionHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req PositionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	pos, err := h.positionService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pos)
}

// Delete godoc
// @ID           deletePosition
// @Summary      Delete a position
// @Tags         positions
// @Param        id path string true "Position ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /positions/{id} [delete]
func (h *PositionHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.positionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
