package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	propertyapp "github.com/realtyadmin/backend/internal/application/property"
	"github.com/shopspring/decimal"
)

// UnitHandler handles unit endpoints
type UnitHandler struct {
	BaseHandler
	unitService *propertyapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *propertyapp.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// UnitRequest is the create/update form of a unit
type UnitRequest struct {
	PropertyID  string          `json:"property_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	UnitNumber  string          `json:"unit_number" binding:"required,min=1,max=20" example:"12-B"`
	Floor       int             `json:"floor" binding:"min=-10,max=300" example:"12"`
	AreaSqm     decimal.Decimal `json:"area_sqm" swaggertype:"string" example:"48.50"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" swaggertype:"string" example:"25000.00"`
}

func (r UnitRequest) input() propertyapp.UnitInput {
	return propertyapp.UnitInput{
		PropertyID:  uuid.MustParse(r.PropertyID),
		UnitNumber:  r.UnitNumber,
		Floor:       r.Floor,
		AreaSqm:     r.AreaSqm,
		MonthlyRent: r.MonthlyRent,
	}
}

// UnitListQuery filters the unit list
type UnitListQuery struct {
	ListQuery
	Status     string `form:"status" binding:"omitempty,oneof=vacant occupied maintenance"`
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
}

// UnitTransitionRequest names a unit status change
type UnitTransitionRequest struct {
	Action string `json:"action" binding:"required,oneof=occupy vacate maintenance" example:"occupy"`
}

// UnitStatusCounts is the unit count per status
type UnitStatusCounts map[string]int64

// Create godoc
// @ID           createUnit
// @Summary      Create a unit
// @Description  Unit numbers are unique within a property
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        request body UnitRequest true "Unit"
// @Success      201 {object} APIResponse[propertyapp.UnitDTO]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var req UnitRequest
	if !h.BindJSON(c, &req) {
		return
	}
	unit, err := h.unitService.Create(c.Request.Context(), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, unit)
}

// GetByID godoc
// @ID           getUnitById
// @Summary      Get unit by ID
// @Tags         units
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Success      200 {object} APIResponse[propertyapp.UnitDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /units/{id} [get]
func (h *UnitHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	unit, err := h.unitService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// List godoc
// @ID           listUnits
// @Summary      List units
// @Tags         units
// @Produce      json
// @Param        search      query string false "Search term (unit number)"
// @Param        status      query string false "Status" Enums(vacant, occupied, maintenance)
// @Param        property_id query string false "Property ID" format(uuid)
// @Param        page        query int    false "Page number" default(1)
// @Param        page_size   query int    false "Page size" default(20) maximum(100)
// @Param        order_by    query string false "Order by field" default(created_at)
// @Param        order_dir   query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]propertyapp.UnitDTO]
// @Security     BearerAuth
// @Router       /units [get]
func (h *UnitHandler) List(c *gin.Context) {
	var q UnitListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.unitService.List(c.Request.Context(), propertyapp.UnitListInput{
		ListInput: propertyapp.ListInput{
			Search:   q.Search,
			Status:   q.Status,
			Page:     q.Page,
			PageSize: q.PageSize,
			OrderBy:  q.OrderBy,
			OrderDir: q.OrderDir,
		},
		PropertyID: q.PropertyID,
	})
	respondPage(&h.BaseHandler, c, page, err)
}

// Update godoc
// @ID           updateUnit
// @Summary      Update a unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id      path string      true "Unit ID" format(uuid)
// @Param        request body UnitRequest true "Unit"
// @Success      200 {object} APIResponse[propertyapp.UnitDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /units/{id} [put]
func (h *UnitHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req UnitRequest
	if !h.BindJSON(c, &req) {
		return
	}
	unit, err := h.unitService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// Transition godoc
// @ID           transitionUnit
// @Summary      Change unit occupancy
// @Description  occupy and maintenance start from vacant; vacate returns a unit to vacant
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Unit ID" format(uuid)
// @Param        request body UnitTransitionRequest true "Transition"
// @Success      200 {object} APIResponse[propertyapp.UnitDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /units/{id}/transition [post]
func (h *UnitHandler) Transition(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req UnitTransitionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	unit, err := h.unitService.Transition(c.Request.Context(), id, propertyapp.UnitTransition(req.Action))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// Stats godoc
// @ID           unitStatusCounts
// @Summary      Count units per status
// @Tags         units
// @Produce      json
// @Success      200 {object} APIResponse[UnitStatusCounts]
// @Security     BearerAuth
// @Router       /units/stats [get]
func (h *UnitHandler) Stats(c *gin.Context) {
	counts, err := h.unitService.CountByStatus(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make(UnitStatusCounts, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}
	h.Success(c, out)
}

// Delete godoc
// @ID           deleteUnit
// @Summary      Delete a unit
// @Tags         units
// @Param        id path string true "Unit ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /units/{id} [delete]
func (h *UnitHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.unitService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
