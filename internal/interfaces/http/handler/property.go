package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	propertyapp "github.com/realtyadmin/backend/internal/application/property"
)

// PropertyHandler handles property endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *propertyapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *propertyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// PropertyRequest is the create/update form of a property
type PropertyRequest struct {
	Code    string `json:"code" binding:"required,min=2,max=20" example:"PRP-001"`
	OwnerID string `json:"owner_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name    string `json:"name" binding:"required,min=1,max=200" example:"Greenview Residences"`
	Type    string `json:"type" binding:"required,oneof=residential commercial mixed land" example:"residential"`
	Address string `json:"address" binding:"max=500" example:"45 Rizal St"`
	City    string `json:"city" binding:"max=100" example:"Quezon City"`
}

func (r PropertyRequest) input() propertyapp.PropertyInput {
	return propertyapp.PropertyInput{
		Code:    r.Code,
		OwnerID: uuid.MustParse(r.OwnerID),
		Name:    r.Name,
		Type:    r.Type,
		Address: r.Address,
		City:    r.City,
	}
}

// PropertyListQuery filters the property list
type PropertyListQuery struct {
	ListQuery
	Status  string `form:"status" binding:"omitempty,oneof=active inactive"`
	Type    string `form:"type" binding:"omitempty,oneof=residential commercial mixed land"`
	OwnerID string `form:"owner_id" binding:"omitempty,uuid"`
}

// PropertyStatusRequest changes the status of a property
type PropertyStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive" example:"inactive"`
}

// TransferOwnershipRequest moves a property to another owner
type TransferOwnershipRequest struct {
	OwnerID string `json:"owner_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// Create godoc
// @ID           createProperty
// @Summary      Create a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        request body PropertyRequest true "Property"
// @Success      201 {object} APIResponse[propertyapp.PropertyDTO]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req PropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.propertyService.Create(c.Request.Context(), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// GetByID godoc
// @ID           getPropertyById
// @Summary      Get property by ID
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      200 {object} APIResponse[propertyapp.PropertyDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id} [get]
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	p, err := h.propertyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// List godoc
// @ID           listProperties
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Param        search    query string false "Search term (name, code, city)"
// @Param        status    query string false "Status" Enums(active, inactive)
// @Param        type      query string false "Type" Enums(residential, commercial, mixed, land)
// @Param        owner_id  query string false "Owner ID" format(uuid)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Param        order_by  query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]propertyapp.PropertyDTO]
// @Security     BearerAuth
// @Router       /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	var q PropertyListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.propertyService.List(c.Request.Context(), propertyapp.ListInput{
		Search:   q.Search,
		Status:   q.Status,
		Type:     q.Type,
		OwnerID:  q.OwnerID,
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	})
	respondPage(&h.BaseHandler, c, page, err)
}

// Update godoc
// @ID           updateProperty
// @Summary      Update a property
// @Description  Ownership changes go through the transfer endpoint
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id      path string          true "Property ID" format(uuid)
// @Param        request body PropertyRequest true "Property"
// @Success      200 {object} APIResponse[propertyapp.PropertyDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req PropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.propertyService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// SetStatus godoc
// @ID           setPropertyStatus
// @Summary      Change property status
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Property ID" format(uuid)
// @Param        request body PropertyStatusRequest true "Status"
// @Success      200 {object} APIResponse[propertyapp.PropertyDTO]
// @Security     BearerAuth
// @Router       /properties/{id}/status [put]
func (h *PropertyHandler) SetStatus(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req PropertyStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.propertyService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// TransferOwnership godoc
// @ID           transferPropertyOwnership
// @Summary      Transfer a property to another owner
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Property ID" format(uuid)
// @Param        request body TransferOwnershipRequest true "New owner"
// @Success      200 {object} APIResponse[propertyapp.PropertyDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id}/transfer [post]
func (h *PropertyHandler) TransferOwnership(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req TransferOwnershipRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.propertyService.TransferOwnership(c.Request.Context(), id, uuid.MustParse(req.OwnerID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete godoc
// @ID           deleteProperty
// @Summary      Delete a property
// @Description  Blocked while the property still has units
// @Tags         properties
// @Param        id path string true "Property ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.propertyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
