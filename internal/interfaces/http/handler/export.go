package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	exportapp "github.com/realtyadmin/backend/internal/application/export"
)

// ExportHandler produces downloadable reports
type ExportHandler struct {
	BaseHandler
	exportService *exportapp.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *exportapp.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ArchiveQuery asks for the export to be stored and linked instead of streamed
type ArchiveQuery struct {
	Archive bool `form:"archive"`
}

// ActivityExportQuery filters the activity log report
type ActivityExportQuery struct {
	ActivityLogQuery
	ArchiveQuery
}

// SummaryExportQuery selects the period of a summary spreadsheet
type SummaryExportQuery struct {
	SummaryQuery
	ArchiveQuery
}

// ActivityPDF godoc
// @ID           exportActivityLogPdf
// @Summary      Activity log report as PDF
// @Description  Streams the PDF. With archive=true the file is stored and a download link returned.
// @Tags         exports
// @Produce      application/pdf
// @Produce      json
// @Param        actor_id    query string false "Actor user ID" format(uuid)
// @Param        action      query string false "Action"
// @Param        entity_type query string false "Entity type"
// @Param        from        query string false "First day (YYYY-MM-DD)"
// @Param        to          query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param        search      query string false "Search term (description)"
// @Param        archive     query bool   false "Store the file and return a link"
// @Success      200 {file}   binary
// @Success      201 {object} APIResponse[exportapp.File]
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /exports/activity-logs.pdf [get]
func (h *ExportHandler) ActivityPDF(c *gin.Context) {
	var q ActivityExportQuery
	if !h.BindQuery(c, &q) {
		return
	}
	file, err := h.exportService.ActivityPDF(c.Request.Context(), q.input(), q.Archive)
	h.deliver(c, file, err)
}

// LeaveSummaryXLSX godoc
// @ID           exportLeaveSummaryXlsx
// @Summary      Leave summary spreadsheet
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      json
// @Param        from          query string true  "First day (YYYY-MM-DD)"
// @Param        to            query string true  "Last day, inclusive (YYYY-MM-DD)"
// @Param        department_id query string false "Department ID" format(uuid)
// @Param        archive       query bool   false "Store the file and return a link"
// @Success      200 {file}   binary
// @Success      201 {object} APIResponse[exportapp.File]
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /exports/leave-summary.xlsx [get]
func (h *ExportHandler) LeaveSummaryXLSX(c *gin.Context) {
	var q SummaryExportQuery
	if !h.BindQuery(c, &q) {
		return
	}
	file, err := h.exportService.LeaveSummaryXLSX(c.Request.Context(), q.input(), q.Archive)
	h.deliver(c, file, err)
}

// TardinessSummaryXLSX godoc
// @ID           exportTardinessSummaryXlsx
// @Summary      Tardiness summary spreadsheet
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      json
// @Param        from          query string true  "First day (YYYY-MM-DD)"
// @Param        to            query string true  "Last day, inclusive (YYYY-MM-DD)"
// @Param        department_id query string false "Department ID" format(uuid)
// @Param        archive       query bool   false "Store the file and return a link"
// @Success      200 {file}   binary
// @Success      201 {object} APIResponse[exportapp.File]
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /exports/tardiness-summary.xlsx [get]
func (h *ExportHandler) TardinessSummaryXLSX(c *gin.Context) {
	var q SummaryExportQuery
	if !h.BindQuery(c, &q) {
		return
	}
	file, err := h.exportService.TardinessSummaryXLSX(c.Request.Context(), q.input(), q.Archive)
	h.deliver(c, file, err)
}

// deliver streams the file as an attachment, or returns its link when archived
func (h *ExportHandler) deliver(c *gin.Context, file *exportapp.File, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if file.Archived() {
		h.Created(c, file)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
