package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/realtyadmin/backend/internal/application/finance"
)

// VoucherHandler handles voucher series endpoints
type VoucherHandler struct {
	BaseHandler
	voucherService *financeapp.VoucherService
}

// NewVoucherHandler creates a new VoucherHandler
func NewVoucherHandler(voucherService *financeapp.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// CreateVoucherSeriesRequest opens a new voucher number range
type CreateVoucherSeriesRequest struct {
	Prefix      string `json:"prefix" binding:"required,min=1,max=10" example:"CV"`
	Description string `json:"description" binding:"max=200" example:"Check vouchers 2026"`
	StartNumber int64  `json:"start_number" binding:"required,min=1" example:"1"`
	EndNumber   int64  `json:"end_number" binding:"required,gtefield=StartNumber" example:"9999"`
	PadWidth    int    `json:"pad_width" binding:"omitempty,min=1,max=12" example:"6"`
}

// UpdateVoucherSeriesRequest edits a voucher series
type UpdateVoucherSeriesRequest struct {
	Description string `json:"description" binding:"max=200" example:"Check vouchers 2026"`
	EndNumber   int64  `json:"end_number" binding:"required,min=1" example:"19999"`
}

// Create godoc
// @ID           createVoucherSeries
// @Summary      Create a voucher series
// @Tags         voucher-series
// @Accept       json
// @Produce      json
// @Param        request body CreateVoucherSeriesRequest true "Series"
// @Success      201 {object} APIResponse[financeapp.VoucherSeriesDTO]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /voucher-series [post]
func (h *VoucherHandler) Create(c *gin.Context) {
	var req CreateVoucherSeriesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	series, err := h.voucherService.Create(c.Request.Context(), financeapp.CreateVoucherSeriesInput{
		Prefix:      req.Prefix,
		Description: req.Description,
		StartNumber: req.StartNumber,
		EndNumber:   req.EndNumber,
		PadWidth:    req.PadWidth,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, series)
}

// GetByID godoc
// @ID           getVoucherSeriesById
// @Summary      Get voucher series by ID
// @Tags         voucher-series
// @Produce      json
// @Param        id path string true "Series ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.VoucherSeriesDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /voucher-series/{id} [get]
func (h *VoucherHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	series, err := h.voucherService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// List godoc
// @ID           listVoucherSeries
// @Summary      List voucher series
// @Tags         voucher-series
// @Produce      json
// @Param        search    query string false "Search term (prefix, description)"
// @Param        status    query string false "Status" Enums(active, inactive, exhausted)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Param        order_by  query string false "Order by field" default(prefix)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]financeapp.VoucherSeriesDTO]
// @Security     BearerAuth
// @Router       /voucher-series [get]
func (h *VoucherHandler) List(c *gin.Context) {
	var q StatusListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.voucherService.List(c.Request.Context(), q.financeInput())
	respondPage(&h.BaseHandler, c, page, err)
}

// Update godoc
// @ID           updateVoucherSeries
// @Summary      Update a voucher series
// @Description  The end number may be raised but never below the numbers already issued
// @Tags         voucher-series
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Series ID" format(uuid)
// @Param        request body UpdateVoucherSeriesRequest true "Series"
// @Success      200 {object} APIResponse[financeapp.VoucherSeriesDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /voucher-series/{id} [put]
func (h *VoucherHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateVoucherSeriesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	series, err := h.voucherService.Update(c.Request.Context(), id, financeapp.UpdateVoucherSeriesInput{
		Description: req.Description,
		EndNumber:   req.EndNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// Activate godoc
// @ID           activateVoucherSeries
// @Summary      Activate a voucher series
// @Tags         voucher-series
// @Produce      json
// @Param        id path string true "Series ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.VoucherSeriesDTO]
// @Security     BearerAuth
// @Router       /voucher-series/{id}/activate [post]
func (h *VoucherHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate godoc
// @ID           deactivateVoucherSeries
// @Summary      Deactivate a voucher series
// @Tags         voucher-series
// @Produce      json
// @Param        id path string true "Series ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.VoucherSeriesDTO]
// @Security     BearerAuth
// @Router       /voucher-series/{id}/deactivate [post]
func (h *VoucherHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *VoucherHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	series, err := h.voucherService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// Issue godoc
// @ID           issueVoucherNumber
// @Summary      Issue the next voucher number
// @Description  Numbers are issued once, in order, and never reused
// @Tags         voucher-series
// @Produce      json
// @Param        id path string true "Series ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.IssuedVoucher]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /voucher-series/{id}/issue [post]
func (h *VoucherHandler) Issue(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	issued, err := h.voucherService.IssueNext(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, issued)
}

// Delete godoc
// @ID           deleteVoucherSeries
// @Summary      Delete a voucher series
// @Description  Only series that never issued a number can be deleted
// @Tags         voucher-series
// @Param        id path string true "Series ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /voucher-series/{id} [delete]
func (h *VoucherHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.voucherService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
