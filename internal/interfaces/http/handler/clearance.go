package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	clearanceapp "github.com/realtyadmin/backend/internal/application/clearance"
	"github.com/realtyadmin/backend/internal/domain/clearance"
)

// ClearanceHandler handles checklist drafts, templates and employee clearances
type ClearanceHandler struct {
	BaseHandler
	draftService     *clearanceapp.DraftService
	clearanceService *clearanceapp.ClearanceService
}

// NewClearanceHandler creates a new ClearanceHandler
func NewClearanceHandler(draftService *clearanceapp.DraftService, clearanceService *clearanceapp.ClearanceService) *ClearanceHandler {
	return &ClearanceHandler{draftService: draftService, clearanceService: clearanceService}
}

// OpenDraftRequest opens an editor on a department's checklist
type OpenDraftRequest struct {
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

// TaskTextRequest carries the text of a checklist task
type TaskTextRequest struct {
	Text string `json:"text" binding:"required" example:"Return office keys"`
}

// MoveTaskRequest moves the task at index from to index to
type MoveTaskRequest struct {
	From *int `json:"from" binding:"required,min=0" example:"0"`
	To   *int `json:"to" binding:"required,min=0" example:"2"`
}

// SwitchDepartmentRequest switches the draft to another department.
// Resolution is required when the draft has unsaved changes.
type SwitchDepartmentRequest struct {
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Resolution   string `json:"resolution" binding:"omitempty,oneof=save discard stay" example:"save"`
}

// StartClearanceRequest starts a clearance for an employee
type StartClearanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

// CompleteTaskRequest optionally backdates a completion
type CompleteTaskRequest struct {
	CompletedAt *time.Time `json:"completed_at,omitempty" example:"2026-06-30T17:00:00Z"`
}

// ClearanceListQuery filters the clearance list
type ClearanceListQuery struct {
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Status       string `form:"status" binding:"omitempty,oneof=open completed cancelled"`
	EmployeeID   string `form:"employee_id" binding:"omitempty,uuid"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
}

// OpenCount is the number of clearances still in progress
type OpenCount struct {
	Open int64 `json:"open"`
}

// OpenDraft godoc
// @ID           openClearanceDraft
// @Summary      Open a checklist draft
// @Description  Loads the department's saved template into a new editor session
// @Tags         clearance
// @Accept       json
// @Produce      json
// @Param        request body OpenDraftRequest true "Department"
// @Success      201 {object} APIResponse[clearanceapp.DraftDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/drafts [post]
func (h *ClearanceHandler) OpenDraft(c *gin.Context) {
	var req OpenDraftRequest
	if !h.BindJSON(c, &req) {
		return
	}
	draft, err := h.draftService.Open(c.Request.Context(), uuid.MustParse(req.DepartmentID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, draft)
}

// GetDraft godoc
// @ID           getClearanceDraft
// @Summary      Get a checklist draft
// @Tags         clearance
// @Produce      json
// @Param        draft_id path string true "Draft ID"
// @Success      200 {object} APIResponse[clearanceapp.DraftDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/drafts/{draft_id} [get]
func (h *ClearanceHandler) GetDraft(c *gin.Context) {
	h.draftResult(c)(h.draftService.Get(c.Request.Context(), c.Param("draft_id")))
}

// AddTask godoc
// @ID           addClearanceDraftTask
// @Summary      Append a task to the draft
// @Description  Task text is trimmed; blank or over-long text is rejected
// @Tags         clearance
// @Accept       json
// @Produce      json
// @Param        draft_id path string          true "Draft ID"
// @Param        request  body TaskTextRequest true "Task"
// @Success      200 {object} APIResponse[clearanceapp.DraftDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/drafts/{draft_id}/tasks [post]
func (h *ClearanceHandler) AddTask(c *gin.Context) {
	var req TaskTextRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.draftResult(c)(h.draftService.AddTask(c.Request.Context(), c.Param("draft_id"), req.Text))
}

// UpdateTask godoc
// @ID           updateClearanceDraftTask
// @Summary      Edit a draft task
// @Tags         clearance
// @Accept       json
// @Produce      json
// @Param        draft_id path string          true "Draft ID"
// @Param        task_id  path string          true "Task ID" format(uuid)
// @Param        request  body TaskTextRequest true "Task"
// @Success      200 {object} APIResponse[clearanceapp.DraftDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/drafts/{draft_id}/tasks/{task_id} [put]
func (h *ClearanceHandler) UpdateTask(c *gin.Context) {
	taskID, ok := h.ParamID(c, "task_id")
	if !ok {
		return
	}
	var req TaskTextRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.draftResult(c)(h.draftService.UpdateTask(c.Request.Context(), c.Param("draft_id"), taskID, req.Text))
}

// RemoveTask godoc
// @ID           removeClearanceDraftTask
// @Summary      Remove a draft task
// @Tags         clearance
// @Produce      json
// @Param        draft_id path string true "Draft ID"
// @Param        task_id  path string true "Task ID" format(uuid)
// @Success      200 {object} APIResponse[clearanceapp.DraftDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/drafts/{draft_id}/tasks/{task_id} [delete]
func (h *ClearanceHandler) RemoveTask(c *gin.Context) {
	taskID, ok := h.ParamID(c, "task_id")
	if !ok {
		return
	}
	h.draftResult(c)(h.draftService.RemoveTask(c.Request.Context(), c.Param("draft_id"), taskID))
}

// MoveTask godoc
// @ID           moveClearanceDraftTask
// @Summary      Reorder a draft task
// @Tags         clearance
// @Accept       json
// @Produce      json
// @Param        draft_id path string          true "Draft ID"
// @Param        request  body MoveTaskRequest true "Indices"
// @Success      200 {object} APIResponse[clearanceapp.DraftDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/drafts/{draft_id}/move [post]
func (h *ClearanceHandler) MoveTask(c *gin.Context) {
	var req MoveTaskRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.draftResult(c)(h.draftService.Move(c.Request.Context(), c.Param("draft_id"), *req.From, *req.To))
}

// SaveDraft godoc
// @ID           saveClearanceDraft
// @Summary      Save the draft as the department template
// @Description  Open clearances of the department are merged with the new template
// @Tags         clearance
// @Produce      json
// @Param        draft_id path string true "Draft ID"
// @Success      200 {object} APIResponse[clearanceapp.DraftDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/drafts/{draft_id}/save [post]
func (h *ClearanceHandler) SaveDraft(c *gin.Context) {
	h.draftResult(c)(h.draftService.Save(c.Request.Context(), c.Param("draft_id")))
}

// DiscardDraft godoc
// @ID           discardClearanceDraft
// @Summary      Discard unsaved draft edits
// @Tags         clearance
// @Produce      json
// @Param        draft_id path string true "Draft ID"
// @Success      200 {object} APIResponse[clearanceapp.DraftDTO]
// @Security     BearerAuth
// @Router       /clearance/drafts/{draft_id}/discard [post]
func (h *ClearanceHandler) DiscardDraft(c *gin.Context) {
	h.draftResult(c)(h.draftService.Discard(c.Request.Context(), c.Param("draft_id")))
}

// SwitchDepartment godoc
// @ID           switchClearanceDraftDepartment
// @Summary      Switch the draft to another department
// @Description  With unsaved edits and no resolution the switch fails with UNSAVED_CHANGES.
// @Description  "stay" keeps the draft on its department and reports switched=false.
// @Tags         clearance
// @Accept       json
// @Produce      json
// @Param        draft_id path string                  true "Draft ID"
// @Param        request  body SwitchDepartmentRequest true "Target department"
// @Success      200 {object} APIResponse[clearanceapp.SwitchResult]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/drafts/{draft_id}/switch [post]
func (h *ClearanceHandler) SwitchDepartment(c *gin.Context) {
	var req SwitchDepartmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.draftService.SwitchDepartment(c.Request.Context(), c.Param("draft_id"),
		uuid.MustParse(req.DepartmentID), clearance.Resolution(req.Resolution))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CloseDraft godoc
// @ID           closeClearanceDraft
// @Summary      Close a draft session
// @Tags         clearance
// @Param        draft_id path string true "Draft ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/drafts/{draft_id} [delete]
func (h *ClearanceHandler) CloseDraft(c *gin.Context) {
	if err := h.draftService.Close(c.Request.Context(), c.Param("draft_id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ClearanceHandler) draftResult(c *gin.Context) func(*clearanceapp.DraftDTO, error) {
	return func(draft *clearanceapp.DraftDTO, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, draft)
	}
}

// ListTemplates godoc
// @ID           listClearanceTemplates
// @Summary      List saved checklist templates
// @Tags         clearance
// @Produce      json
// @Success      200 {object} APIResponse[[]clearanceapp.TemplateDTO]
// @Security     BearerAuth
// @Router       /clearance/templates [get]
func (h *ClearanceHandler) ListTemplates(c *gin.Context) {
	templates, err := h.draftService.Templates(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if templates == nil {
		templates = []clearanceapp.TemplateDTO{}
	}
	h.Success(c, templates)
}

// GetTemplate godoc
// @ID           getClearanceTemplate
// @Summary      Get a department's checklist template
// @Tags         clearance
// @Produce      json
// @Param        department_id path string true "Department ID" format(uuid)
// @Success      200 {object} APIResponse[clearanceapp.TemplateDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/templates/{department_id} [get]
func (h *ClearanceHandler) GetTemplate(c *gin.Context) {
	deptID, ok := h.ParamID(c, "department_id")
	if !ok {
		return
	}
	tmpl, err := h.draftService.Template(c.Request.Context(), deptID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tmpl)
}

// DeleteTemplate godoc
// @ID           deleteClearanceTemplate
// @Summary      Delete a department's checklist template
// @Tags         clearance
// @Param        department_id path string true "Department ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/templates/{department_id} [delete]
func (h *ClearanceHandler) DeleteTemplate(c *gin.Context) {
	deptID, ok := h.ParamID(c, "department_id")
	if !ok {
		return
	}
	if err := h.draftService.DeleteTemplate(c.Request.Context(), deptID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Start godoc
// @ID           startClearance
// @Summary      Start a clearance for an employee
// @Description  Tasks are copied from the template of the employee's department
// @Tags         clearance
// @Accept       json
// @Produce      json
// @Param        request body StartClearanceRequest true "Employee"
// @Success      201 {object} APIResponse[clearanceapp.ClearanceDTO]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/clearances [post]
func (h *ClearanceHandler) Start(c *gin.Context) {
	var req StartClearanceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	cl, err := h.clearanceService.Start(c.Request.Context(), uuid.MustParse(req.EmployeeID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cl)
}

// List godoc
// @ID           listClearances
// @Summary      List employee clearances
// @Tags         clearance
// @Produce      json
// @Param        status        query string false "Status" Enums(open, completed, cancelled)
// @Param        employee_id   query string false "Employee ID" format(uuid)
// @Param        department_id query string false "Department ID" format(uuid)
// @Param        page          query int    false "Page number" default(1)
// @Param        page_size     query int    false "Page size" default(20) maximum(100)
// @Param        order_by      query string false "Order by field" default(started_at)
// @Param        order_dir     query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]clearanceapp.ClearanceDTO]
// @Security     BearerAuth
// @Router       /clearance/clearances [get]
func (h *ClearanceHandler) List(c *gin.Context) {
	var q ClearanceListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.clearanceService.List(c.Request.Context(), clearanceapp.ListInput{
		Status:       q.Status,
		EmployeeID:   q.EmployeeID,
		DepartmentID: q.DepartmentID,
		Page:         q.Page,
		PageSize:     q.PageSize,
		OrderBy:      q.OrderBy,
		OrderDir:     q.OrderDir,
	})
	respondPage(&h.BaseHandler, c, page, err)
}

// GetByID godoc
// @ID           getClearanceById
// @Summary      Get employee clearance by ID
// @Tags         clearance
// @Produce      json
// @Param        id path string true "Clearance ID" format(uuid)
// @Success      200 {object} APIResponse[clearanceapp.ClearanceDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/clearances/{id} [get]
func (h *ClearanceHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	h.clearanceResult(c)(h.clearanceService.GetByID(c.Request.Context(), id))
}

// CompleteTask godoc
// @ID           completeClearanceTask
// @Summary      Mark a clearance task done
// @Description  The clearance completes when its last task is done
// @Tags         clearance
// @Accept       json
// @Produce      json
// @Param        id      path string              true  "Clearance ID" format(uuid)
// @Param        task_id path string              true  "Task ID" format(uuid)
// @Param        request body CompleteTaskRequest false "Completion time"
// @Success      200 {object} APIResponse[clearanceapp.ClearanceDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/clearances/{id}/tasks/{task_id}/complete [post]
func (h *ClearanceHandler) CompleteTask(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	taskID, ok := h.ParamID(c, "task_id")
	if !ok {
		return
	}
	var req CompleteTaskRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}
	h.clearanceResult(c)(h.clearanceService.CompleteTask(c.Request.Context(), id, taskID, req.CompletedAt))
}

// ReopenTask godoc
// @ID           reopenClearanceTask
// @Summary      Reopen a completed clearance task
// @Tags         clearance
// @Produce      json
// @Param        id      path string true "Clearance ID" format(uuid)
// @Param        task_id path string true "Task ID" format(uuid)
// @Success      200 {object} APIResponse[clearanceapp.ClearanceDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/clearances/{id}/tasks/{task_id}/reopen [post]
func (h *ClearanceHandler) ReopenTask(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	taskID, ok := h.ParamID(c, "task_id")
	if !ok {
		return
	}
	h.clearanceResult(c)(h.clearanceService.ReopenTask(c.Request.Context(), id, taskID))
}

// Cancel godoc
// @ID           cancelClearance
// @Summary      Cancel an open clearance
// @Tags         clearance
// @Produce      json
// @Param        id path string true "Clearance ID" format(uuid)
// @Success      200 {object} APIResponse[clearanceapp.ClearanceDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clearance/clearances/{id}/cancel [post]
func (h *ClearanceHandler) Cancel(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	h.clearanceResult(c)(h.clearanceService.Cancel(c.Request.Context(), id))
}

// OpenCount godoc
// @ID           countOpenClearances
// @Summary      Count open clearances
// @Tags         clearance
// @Produce      json
// @Success      200 {object} APIResponse[OpenCount]
// @Security     BearerAuth
// @Router       /clearance/clearances/open-count [get]
func (h *ClearanceHandler) OpenCount(c *gin.Context) {
	n, err := h.clearanceService.CountOpen(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, OpenCount{Open: n})
}

func (h *ClearanceHandler) clearanceResult(c *gin.Context) func(*clearanceapp.ClearanceDTO, error) {
	return func(cl *clearanceapp.ClearanceDTO, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, cl)
	}
}
