package handler

import (
	"github.com/gin-gonic/gin"
	propertyapp "github.com/realtyadmin/backend/internal/application/property"
)

// OwnerHandler handles owner endpoints
type OwnerHandler struct {
	BaseHandler
	ownerService *propertyapp.OwnerService
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(ownerService *propertyapp.OwnerService) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService}
}

// OwnerRequest is the create/update form of an owner
type OwnerRequest struct {
	Code    string `json:"code" binding:"required,min=2,max=20" example:"OWN-001"`
	Name    string `json:"name" binding:"required,min=1,max=200" example:"Santos Holdings Inc."`
	Email   string `json:"email" binding:"omitempty,email,max=200" example:"office@santos.example"`
	Phone   string `json:"phone" binding:"max=50" example:"+63 2 8123 4567"`
	Address string `json:"address" binding:"max=500" example:"12 Ayala Ave, Makati"`
	TIN     string `json:"tin" binding:"max=30" example:"123-456-789-000"`
}

func (r OwnerRequest) input() propertyapp.OwnerInput {
	return propertyapp.OwnerInput{
		Code:    r.Code,
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		TIN:     r.TIN,
	}
}

// OwnerListQuery filters the owner list
type OwnerListQuery struct {
	ListQuery
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// Create godoc
// @ID           createOwner
// @Summary      Create an owner
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        request body OwnerRequest true "Owner"
// @Success      201 {object} APIResponse[propertyapp.OwnerDTO]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /owners [post]
func (h *OwnerHandler) Create(c *gin.Context) {
	var req OwnerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	owner, err := h.ownerService.Create(c.Request.Context(), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, owner)
}

// GetByID godoc
// @ID           getOwnerById
// @Summary      Get owner by ID
// @Tags         owners
// @Produce      json
// @Param        id path string true "Owner ID" format(uuid)
// @Success      200 {object} APIResponse[propertyapp.OwnerDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /owners/{id} [get]
func (h *OwnerHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	owner, err := h.ownerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, owner)
}

// List godoc
// @ID           listOwners
// @Summary      List owners
// @Description  Case-insensitive substring search over code and name
// @Tags         owners
// @Produce      json
// @Param        search    query string false "Search term (name, code)"
// @Param        status    query string false "Status" Enums(active, inactive)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Param        order_by  query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]propertyapp.OwnerDTO]
// @Security     BearerAuth
// @Router       /owners [get]
func (h *OwnerHandler) List(c *gin.Context) {
	var q OwnerListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.ownerService.List(c.Request.Context(), propertyapp.ListInput{
		Search:   q.Search,
		Status:   q.Status,
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	})
	respondPage(&h.BaseHandler, c, page, err)
}

// Update godoc
// @ID           updateOwner
// @Summary      Update an owner
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        id      path string       true "Owner ID" format(uuid)
// @Param        request body OwnerRequest true "Owner"
// @Success      200 {object} APIResponse[propertyapp.OwnerDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /owners/{id} [put]
func (h *OwnerHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req OwnerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	owner, err := h.ownerService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, owner)
}

// Activate godoc
// @ID           activateOwner
// @Summary      Activate an owner
// @Tags         owners
// @Produce      json
// @Param        id path string true "Owner ID" format(uuid)
// @Success      200 {object} APIResponse[propertyapp.OwnerDTO]
// @Security     BearerAuth
// @Router       /owners/{id}/activate [post]
func (h *OwnerHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate godoc
// @ID           deactivateOwner
// @Summary      Deactivate an owner
// @Tags         owners
// @Produce      json
// @Param        id path string true "Owner ID" format(uuid)
// @Success      200 {object} APIResponse[propertyapp.OwnerDTO]
// @Security     BearerAuth
// @Router       /owners/{id}/deactivate [post]
func (h *OwnerHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *OwnerHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	owner, err := h.ownerService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, owner)
}

// Delete godoc
// @ID           deleteOwner
// @Summary      Delete an owner
// @Description  Blocked while the owner still has properties
// @Tags         owners
// @Param        id path string true "Owner ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /owners/{id} [delete]
func (h *OwnerHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.ownerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
