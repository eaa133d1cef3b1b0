package handler

import (
	"github.com/gin-gonic/gin"
	hrapp "github.com/realtyadmin/backend/internal/application/hr"
)

// HRReportHandler serves the leave and tardiness summaries
type HRReportHandler struct {
	BaseHandler
	reportService *hrapp.ReportService
}

// NewHRReportHandler creates a new HRReportHandler
func NewHRReportHandler(reportService *hrapp.ReportService) *HRReportHandler {
	return &HRReportHandler{reportService: reportService}
}

// SummaryQuery selects the period and an optional department of a summary
type SummaryQuery struct {
	From         string `form:"from" binding:"required,datetime=2006-01-02"`
	To           string `form:"to" binding:"required,datetime=2006-01-02"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
}

func (q SummaryQuery) input() hrapp.SummaryInput {
	from, _ := parseDate(q.From)
	to, _ := parseDate(q.To)
	dept, _ := parseOptionalID(q.DepartmentID)
	return hrapp.SummaryInput{From: *from, To: *to, DepartmentID: dept}
}

// LeaveSummary godoc
// @ID           leaveSummary
// @Summary      Approved leave days per employee and type
// @Tags         hr-reports
// @Produce      json
// @Param        from          query string true  "First day (YYYY-MM-DD)"
// @Param        to            query string true  "Last day, inclusive (YYYY-MM-DD)"
// @Param        department_id query string false "Department ID" format(uuid)
// @Success      200 {object} APIResponse[[]hr.LeaveSummary]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leaves/summary [get]
func (h *HRReportHandler) LeaveSummary(c *gin.Context) {
	var q SummaryQuery
	if !h.BindQuery(c, &q) {
		return
	}
	rows, err := h.reportService.LeaveSummary(c.Request.Context(), q.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// TardinessSummary godoc
// @ID           tardinessSummary
// @Summary      Late days and minutes per employee
// @Tags         hr-reports
// @Produce      json
// @Param        from          query string true  "First day (YYYY-MM-DD)"
// @Param        to            query string true  "Last day, inclusive (YYYY-MM-DD)"
// @Param        department_id query string false "Department ID" format(uuid)
// @Success      200 {object} APIResponse[[]hr.TardinessSummary]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tardiness/summary [get]
func (h *HRReportHandler) TardinessSummary(c *gin.Context) {
	var q SummaryQuery
	if !h.BindQuery(c, &q) {
		return
	}
	rows, err := h.reportService.TardinessSummary(c.Request.Context(), q.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
