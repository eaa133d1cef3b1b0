package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	hrapp "github.com/realtyadmin/backend/internal/application/hr"
	"github.com/shopspring/decimal"
)

// LeaveHandler handles leave endpoints
type LeaveHandler struct {
	BaseHandler
	leaveService *hrapp.LeaveService
}

// NewLeaveHandler creates a new LeaveHandler
func NewLeaveHandler(leaveService *hrapp.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// FileLeaveRequest files a leave for an employee
type FileLeaveRequest struct {
	EmployeeID string           `json:"employee_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Type       string           `json:"type" binding:"required,oneof=vacation sick emergency maternity paternity unpaid" example:"vacation"`
	StartDate  string           `json:"start_date" binding:"required,datetime=2006-01-02" example:"2026-02-02"`
	EndDate    string           `json:"end_date" binding:"required,datetime=2006-01-02" example:"2026-02-04"`
	Days       *decimal.Decimal `json:"days,omitempty" swaggertype:"string" example:"2.5"`
	Reason     string           `json:"reason" binding:"max=500" example:"Family trip"`
}

// DecideLeaveRequest carries the reviewer's note
type DecideLeaveRequest struct {
	Note string `json:"note" binding:"max=500" example:"Enjoy"`
}

// LeaveListQuery filters the leave list
type LeaveListQuery struct {
	ListQuery
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Type       string `form:"type" binding:"omitempty,oneof=vacation sick emergency maternity paternity unpaid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
}

// PendingCount is the number of leaves awaiting a decision
type PendingCount struct {
	Pending int64 `json:"pending"`
}

// File godoc
// @ID           fileLeave
// @Summary      File a leave
// @Description  Days default to the inclusive calendar day count; supply days for half days
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Param        request body FileLeaveRequest true "Leave"
// @Success      201 {object} APIResponse[hrapp.LeaveDTO]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leaves [post]
func (h *LeaveHandler) File(c *gin.Context) {
	var req FileLeaveRequest
	if !h.BindJSON(c, &req) {
		return
	}
	start, _ := parseDate(req.StartDate)
	end, _ := parseDate(req.EndDate)
	leave, err := h.leaveService.File(c.Request.Context(), hrapp.FileLeaveInput{
		EmployeeID: uuid.MustParse(req.EmployeeID),
		Type:       req.Type,
		StartDate:  *start,
		EndDate:    *end,
		Days:       req.Days,
		Reason:     req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, leave)
}

// GetByID godoc
// @ID           getLeaveById
// @Summary      Get leave by ID
// @Tags         leaves
// @Produce      json
// @Param        id path string true "Leave ID" format(uuid)
// @Success      200 {object} APIResponse[hrapp.LeaveDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leaves/{id} [get]
func (h *LeaveHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	leave, err := h.leaveService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, leave)
}

// List godoc
// @ID           listLeaves
// @Summary      List leaves
// @Tags         leaves
// @Produce      json
// @Param        search      query string false "Search term (reason)"
// @Param        employee_id query string false "Employee ID" format(uuid)
// @Param        type        query string false "Leave type" Enums(vacation, sick, emergency, maternity, paternity, unpaid)
// @Param        status      query string false "Status" Enums(pending, approved, rejected, cancelled)
// @Param        page        query int    false "Page number" default(1)
// @Param        page_size   query int    false "Page size" default(20) maximum(100)
// @Param        order_by    query string false "Order by field" default(start_date)
// @Param        order_dir   query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]hrapp.LeaveDTO]
// @Security     BearerAuth
// @Router       /leaves [get]
func (h *LeaveHandler) List(c *gin.Context) {
	var q LeaveListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.leaveService.List(c.Request.Context(), hrapp.LeaveListInput{
		ListInput:  q.hrInput(),
		EmployeeID: q.EmployeeID,
		Type:       q.Type,
		Status:     q.Status,
	})
	respondPage(&h.BaseHandler, c, page, err)
}

// Approve godoc
// @ID           approveLeave
// @Summary      Approve a pending leave
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Param        id      path string             true  "Leave ID" format(uuid)
// @Param        request body DecideLeaveRequest false "Note"
// @Success      200 {object} APIResponse[hrapp.LeaveDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leaves/{id}/approve [post]
func (h *LeaveHandler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Reject godoc
// @ID           rejectLeave
// @Summary      Reject a pending leave
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Param        id      path string             true  "Leave ID" format(uuid)
// @Param        request body DecideLeaveRequest false "Note"
// @Success      200 {object} APIResponse[hrapp.LeaveDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leaves/{id}/reject [post]
func (h *LeaveHandler) Reject(c *gin.Context) {
	h.decide(c, false)
}

func (h *LeaveHandler) decide(c *gin.Context, approve bool) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req DecideLeaveRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}
	leave, err := h.leaveService.Decide(c.Request.Context(), id, hrapp.DecideLeaveInput{Approve: approve, Note: req.Note})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, leave)
}

// Cancel godoc
// @ID           cancelLeave
// @Summary      Cancel a pending or approved leave
// @Tags         leaves
// @Produce      json
// @Param        id path string true "Leave ID" format(uuid)
// @Success      200 {object} APIResponse[hrapp.LeaveDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leaves/{id}/cancel [post]
func (h *LeaveHandler) Cancel(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	leave, err := h.leaveService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, leave)
}

// Pending godoc
// @ID           countPendingLeaves
// @Summary      Count pending leaves
// @Tags         leaves
// @Produce      json
// @Success      200 {object} APIResponse[PendingCount]
// @Security     BearerAuth
// @Router       /leaves/pending-count [get]
func (h *LeaveHandler) Pending(c *gin.Context) {
	n, err := h.leaveService.CountPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, PendingCount{Pending: n})
}
