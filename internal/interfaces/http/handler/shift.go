package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	hrapp "github.com/realtyadmin/backend/internal/application/hr"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ShiftHandler handles office shift schedule endpoints
type ShiftHandler struct {
	BaseHandler
	shiftService *hrapp.ShiftService
}

// NewShiftHandler creates a new ShiftHandler
func NewShiftHandler(shiftService *hrapp.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// ShiftRequest is the create/update form of a shift schedule
type ShiftRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=100" example:"Day shift"`
	StartTime    string   `json:"start_time" binding:"required,clock" example:"08:00"`
	EndTime      string   `json:"end_time" binding:"required,clock" example:"17:00"`
	GraceMinutes int      `json:"grace_minutes" binding:"min=0,max=120" example:"15"`
	WorkDays     []string `json:"work_days" binding:"required,min=1,dive,oneof=sunday monday tuesday wednesday thursday friday saturday Sunday Monday Tuesday Wednesday Thursday Friday Saturday" example:"monday,tuesday,wednesday,thursday,friday"`
}

func (r ShiftRequest) input() hrapp.ShiftInput {
	days := make([]time.Weekday, 0, len(r.WorkDays))
	for _, name := range r.WorkDays {
		days = append(days, weekdays[strings.ToLower(name)])
	}
	return hrapp.ShiftInput{
		Name:         r.Name,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		GraceMinutes: r.GraceMinutes,
		WorkDays:     days,
	}
}

// ShiftListQuery filters the shift schedule list
type ShiftListQuery struct {
	ListQuery
	Active *bool `form:"active"`
}

// Create godoc
// @ID           createShiftSchedule
// @Summary      Create an office shift schedule
// @Tags         shift-schedules
// @Accept       json
// @Produce      json
// @Param        request body ShiftRequest true "Shift schedule"
// @Success      201 {object} APIResponse[hrapp.ShiftDTO]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shift-schedules [post]
func (h *ShiftHandler) Create(c *gin.Context) {
	var req ShiftRequest
	if !h.BindJSON(c, &req) {
		return
	}
	shift, err := h.shiftService.Create(c.Request.Context(), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shift)
}

// GetByID godoc
// @ID           getShiftScheduleById
// @Summary      Get shift schedule by ID
// @Tags         shift-schedules
// @Produce      json
// @Param        id path string true "Shift schedule ID" format(uuid)
// @Success      200 {object} APIResponse[hrapp.ShiftDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shift-schedules/{id} [get]
func (h *ShiftHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	shift, err := h.shiftService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shift)
}

// List godoc
// @ID           listShiftSchedules
// @Summary      List shift schedules
// @Tags         shift-schedules
// @Produce      json
// @Param        search    query string false "Search term (name)"
// @Param        active    query bool   false "Only active or inactive schedules"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Param        order_by  query string false "Order by field" default(name)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]hrapp.ShiftDTO]
// @Security     BearerAuth
// @Router       /shift-schedules [get]
func (h *ShiftHandler) List(c *gin.Context) {
	var q ShiftListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.shiftService.List(c.Request.Context(), hrapp.ShiftListInput{
		ListInput: q.hrInput(),
		Active:    q.Active,
	})
	respondPage(&h.BaseHandler, c, page, err)
}

// Update godoc
// @ID           updateShiftSchedule
// @Summary      Update a shift schedule
// @Tags         shift-schedules
// @Accept       json
// @Produce      json
// @Param        id      path string       true "Shift schedule ID" format(uuid)
// @Param        request body ShiftRequest true "Shift schedule"
// @Success      200 {object} APIResponse[hrapp.ShiftDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shift-schedules/{id} [put]
func (h *ShiftHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req ShiftRequest
	if !h.BindJSON(c, &req) {
		return
	}
	shift, err := h.shiftService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shift)
}

// Activate godoc
// @ID           activateShiftSchedule
// @Summary      Activate a shift schedule
// @Tags         shift-schedules
// @Produce      json
// @Param        id path string true "Shift schedule ID" format(uuid)
// @Success      200 {object} APIResponse[hrapp.ShiftDTO]
// @Security     BearerAuth
// @Router       /shift-schedules/{id}/activate [post]
func (h *ShiftHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate godoc
// @ID           deactivateShiftSchedule
// @Summary      Deactivate a shift schedule
// @Tags         shift-schedules
// @Produce      json
// @Param        id path string true "Shift schedule ID" format(uuid)
// @Success      200 {object} APIResponse[hrapp.ShiftDTO]
// @Security     BearerAuth
// @Router       /shift-schedules/{id}/deactivate [post]
func (h *ShiftHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *ShiftHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	shift, err := h.shiftService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shift)
}

// Delete godoc
// @ID           deleteShiftSchedule
// @Summary      Delete a shift schedule
// @Description  Blocked while employees are assigned to it
// @Tags         shift-schedules
// @Param        id path string true "Shift schedule ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shift-schedules/{id} [delete]
func (h *ShiftHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.shiftService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
