package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	hrapp "github.com/realtyadmin/backend/internal/application/hr"
)

// TardinessHandler handles attendance and tardiness endpoints
type TardinessHandler struct {
	BaseHandler
	tardinessService *hrapp.TardinessService
}

// NewTardinessHandler creates a new TardinessHandler
func NewTardinessHandler(tardinessService *hrapp.TardinessService) *TardinessHandler {
	return &TardinessHandler{tardinessService: tardinessService}
}

// RecordTardinessRequest records the arrival of an employee
type RecordTardinessRequest struct {
	EmployeeID string    `json:"employee_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	ActualIn   time.Time `json:"actual_in" binding:"required" example:"2026-02-02T08:22:00+08:00"`
	Remarks    string    `json:"remarks" binding:"max=500" example:"Heavy traffic"`
}

// CorrectTardinessRequest replaces the arrival time of a record
type CorrectTardinessRequest struct {
	ActualIn time.Time `json:"actual_in" binding:"required" example:"2026-02-02T08:05:00+08:00"`
	Remarks  string    `json:"remarks" binding:"max=500"`
}

// TardinessListQuery filters the attendance list
type TardinessListQuery struct {
	ListQuery
	PeriodQuery
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	LateOnly   bool   `form:"late_only"`
}

// Record godoc
// @ID           recordTardiness
// @Summary      Record an arrival
// @Description  Minutes late are computed from the employee's shift; arriving within the
// @Description  grace period counts as on time. One record per employee and day.
// @Tags         tardiness
// @Accept       json
// @Produce      json
// @Param        request body RecordTardinessRequest true "Arrival"
// @Success      201 {object} APIResponse[hrapp.TardinessDTO]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tardiness [post]
func (h *TardinessHandler) Record(c *gin.Context) {
	var req RecordTardinessRequest
	if !h.BindJSON(c, &req) {
		return
	}
	entry, err := h.tardinessService.Record(c.Request.Context(), hrapp.RecordTardinessInput{
		EmployeeID: uuid.MustParse(req.EmployeeID),
		ActualIn:   req.ActualIn,
		Remarks:    req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// GetByID godoc
// @ID           getTardinessById
// @Summary      Get attendance record by ID
// @Tags         tardiness
// @Produce      json
// @Param        id path string true "Record ID" format(uuid)
// @Success      200 {object} APIResponse[hrapp.TardinessDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tardiness/{id} [get]
func (h *TardinessHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	entry, err := h.tardinessService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// List godoc
// @ID           listTardiness
// @Summary      List attendance records
// @Tags         tardiness
// @Produce      json
// @Param        search      query string false "Search term (remarks)"
// @Param        employee_id query string false "Employee ID" format(uuid)
// @Param        from        query string false "First day (YYYY-MM-DD)"
// @Param        to          query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param        late_only   query bool   false "Only late arrivals"
// @Param        page        query int    false "Page number" default(1)
// @Param        page_size   query int    false "Page size" default(20) maximum(100)
// @Param        order_by    query string false "Order by field" default(date)
// @Param        order_dir   query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]hrapp.TardinessDTO]
// @Security     BearerAuth
// @Router       /tardiness [get]
func (h *TardinessHandler) List(c *gin.Context) {
	var q TardinessListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	from, to := q.bounds()
	page, err := h.tardinessService.List(c.Request.Context(), hrapp.TardinessListInput{
		ListInput:  q.hrInput(),
		EmployeeID: q.EmployeeID,
		From:       from,
		To:         to,
		LateOnly:   q.LateOnly,
	})
	respondPage(&h.BaseHandler, c, page, err)
}

// Correct godoc
// @ID           correctTardiness
// @Summary      Correct an arrival time
// @Description  The corrected time must fall on the same day
// @Tags         tardiness
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "Record ID" format(uuid)
// @Param        request body CorrectTardinessRequest true "Arrival"
// @Success      200 {object} APIResponse[hrapp.TardinessDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tardiness/{id} [put]
func (h *TardinessHandler) Correct(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req CorrectTardinessRequest
	if !h.BindJSON(c, &req) {
		return
	}
	entry, err := h.tardinessService.Correct(c.Request.Context(), id, req.ActualIn, req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Delete godoc
// @ID           deleteTardiness
// @Summary      Delete an attendance record
// @Tags         tardiness
// @Param        id path string true "Record ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tardiness/{id} [delete]
func (h *TardinessHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.tardinessService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
