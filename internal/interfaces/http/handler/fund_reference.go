package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/realtyadmin/backend/internal/application/finance"
)

// FundReferenceHandler handles fund reference endpoints
type FundReferenceHandler struct {
	BaseHandler
	fundService *financeapp.FundReferenceService
}

// NewFundReferenceHandler creates a new FundReferenceHandler
func NewFundReferenceHandler(fundService *financeapp.FundReferenceService) *FundReferenceHandler {
	return &FundReferenceHandler{fundService: fundService}
}

// FundReferenceRequest is the create/update form of a fund reference
type FundReferenceRequest struct {
	Code        string `json:"code" binding:"required,min=2,max=20" example:"OPS"`
	Name        string `json:"name" binding:"required,min=1,max=100" example:"Operating Fund"`
	Description string `json:"description" binding:"max=500" example:"Day to day disbursements"`
}

func (r FundReferenceRequest) input() financeapp.FundReferenceInput {
	return financeapp.FundReferenceInput{Code: r.Code, Name: r.Name, Description: r.Description}
}

// StatusListQuery filters a list by active/inactive status
type StatusListQuery struct {
	ListQuery
	Status string `form:"status" binding:"omitempty,oneof=active inactive exhausted"`
}

func (q StatusListQuery) financeInput() financeapp.ListInput {
	return financeapp.ListInput{
		Search:   q.Search,
		Status:   q.Status,
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
}

// Create godoc
// @ID           createFundReference
// @Summary      Create a fund reference
// @Tags         fund-references
// @Accept       json
// @Produce      json
// @Param        request body FundReferenceRequest true "Fund reference"
// @Success      201 {object} APIResponse[financeapp.FundReferenceDTO]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fund-references [post]
func (h *FundReferenceHandler) Create(c *gin.Context) {
	var req FundReferenceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	fund, err := h.fundService.Create(c.Request.Context(), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, fund)
}

// GetByID godoc
// @ID           getFundReferenceById
// @Summary      Get fund reference by ID
// @Tags         fund-references
// @Produce      json
// @Param        id path string true "Fund reference ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.FundReferenceDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fund-references/{id} [get]
func (h *FundReferenceHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	fund, err := h.fundService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fund)
}

// List godoc
// @ID           listFundReferences
// @Summary      List fund references
// @Tags         fund-references
// @Produce      json
// @Param        search    query string false "Search term (code, name)"
// @Param        status    query string false "Status" Enums(active, inactive)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Param        order_by  query string false "Order by field" default(code)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]financeapp.FundReferenceDTO]
// @Security     BearerAuth
// @Router       /fund-references [get]
func (h *FundReferenceHandler) List(c *gin.Context) {
	var q StatusListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.fundService.List(c.Request.Context(), q.financeInput())
	respondPage(&h.BaseHandler, c, page, err)
}

// Update godoc
// @ID           updateFundReference
// @Summary      Update a fund reference
// @Tags         fund-references
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Fund reference ID" format(uuid)
// @Param        request body FundReferenceRequest true "Fund reference"
// @Success      200 {object} APIResponse[financeapp.FundReferenceDTO]
// @Security     BearerAuth
// @Router       /fund-references/{id} [put]
func (h *FundReferenceHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req FundReferenceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	fund, err := h.fundService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fund)
}

// Activate godoc
// @ID           activateFundReference
// @Summary      Activate a fund reference
// @Tags         fund-references
// @Produce      json
// @Param        id path string true "Fund reference ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.FundReferenceDTO]
// @Security     BearerAuth
// @Router       /fund-references/{id}/activate [post]
func (h *FundReferenceHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate godoc
// @ID           deactivateFundReference
// @Summary      Deactivate a fund reference
// @Tags         fund-references
// @Produce      json
// @Param        id path string true "Fund reference ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.FundReferenceDTO]
// @Security     BearerAuth
// @Router       /fund-references/{id}/deactivate [post]
func (h *FundReferenceHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *FundReferenceHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	fund, err := h.fundService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fund)
}

// Delete godoc
// @ID           deleteFundReference
// @Summary      Delete a fund reference
// @Description  Blocked once ledger entries reference it
// @Tags         fund-references
// @Param        id path string true "Fund reference ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fund-references/{id} [delete]
func (h *FundReferenceHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.fundService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
