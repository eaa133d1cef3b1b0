package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	hrapp "github.com/realtyadmin/backend/internal/application/hr"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	BaseHandler
	employeeService *hrapp.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService *hrapp.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// EmployeeRequest is the create/update form of an employee
type EmployeeRequest struct {
	EmployeeNo      string `json:"employee_no" binding:"required,min=1,max=20" example:"EMP-0042"`
	FirstName       string `json:"first_name" binding:"required,min=1,max=100" example:"Maria"`
	LastName        string `json:"last_name" binding:"required,min=1,max=100" example:"Reyes"`
	Email           string `json:"email" binding:"omitempty,email,max=200" example:"maria.reyes@example.com"`
	DepartmentID    string `json:"department_id" binding:"omitempty,uuid"`
	PositionID      string `json:"position_id" binding:"omitempty,uuid"`
	ShiftScheduleID string `json:"shift_schedule_id" binding:"omitempty,uuid"`
	HireDate        string `json:"hire_date" binding:"required,datetime=2006-01-02" example:"2024-03-01"`
}

func (r EmployeeRequest) input() hrapp.EmployeeInput {
	dept, _ := parseOptionalID(r.DepartmentID)
	pos, _ := parseOptionalID(r.PositionID)
	shift, _ := parseOptionalID(r.ShiftScheduleID)
	hired, _ := parseDate(r.HireDate)
	return hrapp.EmployeeInput{
		EmployeeNo:      r.EmployeeNo,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		DepartmentID:    dept,
		PositionID:      pos,
		ShiftScheduleID: shift,
		HireDate:        *hired,
	}
}

// EmployeeListQuery filters the employee list
type EmployeeListQuery struct {
	ListQuery
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	PositionID   string `form:"position_id" binding:"omitempty,uuid"`
	Status       string `form:"status" binding:"omitempty,oneof=active resigned terminated"`
}

func (q ListQuery) hrInput() hrapp.ListInput {
	return hrapp.ListInput{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
}

// SeparationRequest dates a resignation or termination; empty means today
type SeparationRequest struct {
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2026-06-30"`
}

func (r SeparationRequest) date() time.Time {
	if d, _ := parseDate(r.Date); d != nil {
		return *d
	}
	return time.Now()
}

// Create godoc
// @ID           createEmployee
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request body EmployeeRequest true "Employee"
// @Success      201 {object} APIResponse[hrapp.EmployeeDTO]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req EmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	employee, err := h.employeeService.Create(c.Request.Context(), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// GetByID godoc
// @ID           getEmployeeById
// @Summary      Get employee by ID
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Success      200 {object} APIResponse[hrapp.EmployeeDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	employee, err := h.employeeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// List godoc
// @ID           listEmployees
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Param        search        query string false "Search term (employee no, name)"
// @Param        department_id query string false "Department ID" format(uuid)
// @Param        position_id   query string false "Position ID" format(uuid)
// @Param        status        query string false "Status" Enums(active, resigned, terminated)
// @Param        page          query int    false "Page number" default(1)
// @Param        page_size     query int    false "Page size" default(20) maximum(100)
// @Param        order_by      query string false "Order by field" default(employee_no)
// @Param        order_dir     query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]hrapp.EmployeeDTO]
// @Security     BearerAuth
// @Router       /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	var q EmployeeListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.employeeService.List(c.Request.Context(), hrapp.EmployeeListInput{
		ListInput:    q.hrInput(),
		DepartmentID: q.DepartmentID,
		PositionID:   q.PositionID,
		Status:       q.Status,
	})
	respondPage(&h.BaseHandler, c, page, err)
}

// Update godoc
// @ID           updateEmployee
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id      path string          true "Employee ID" format(uuid)
// @Param        request body EmployeeRequest true "Employee"
// @Success      200 {object} APIResponse[hrapp.EmployeeDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req EmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	employee, err := h.employeeService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Resign godoc
// @ID           resignEmployee
// @Summary      Record a resignation
// @Description  Starts a clearance when the employee's department has a checklist template
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id      path string            true  "Employee ID" format(uuid)
// @Param        request body SeparationRequest false "Separation date"
// @Success      200 {object} APIResponse[hrapp.EmployeeDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id}/resign [post]
func (h *EmployeeHandler) Resign(c *gin.Context) {
	h.separate(c, h.employeeService.Resign)
}

// Terminate godoc
// @ID           terminateEmployee
// @Summary      Record a termination
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id      path string            true  "Employee ID" format(uuid)
// @Param        request body SeparationRequest false "Separation date"
// @Success      200 {object} APIResponse[hrapp.EmployeeDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id}/terminate [post]
func (h *EmployeeHandler) Terminate(c *gin.Context) {
	h.separate(c, h.employeeService.Terminate)
}

func (h *EmployeeHandler) separate(c *gin.Context, apply func(context.Context, uuid.UUID, time.Time) (*hrapp.EmployeeDTO, error)) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req SeparationRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}
	employee, err := apply(c.Request.Context(), id, req.date())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Delete godoc
// @ID           deleteEmployee
// @Summary      Delete an employee
// @Description  Blocked once the employee has leave or attendance records
// @Tags         employees
// @Param        id path string true "Employee ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.employeeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
