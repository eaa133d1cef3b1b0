package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orgapp "github.com/realtyadmin/backend/internal/application/organization"
)

// DepartmentHandler handles department and hierarchy endpoints
type DepartmentHandler struct {
	BaseHandler
	departmentService *orgapp.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(departmentService *orgapp.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// CreateDepartmentRequest creates a department, optionally under a parent
type CreateDepartmentRequest struct {
	Code        string `json:"code" binding:"required,min=2,max=20" example:"ACCT"`
	Name        string `json:"name" binding:"required,min=1,max=100" example:"Accounting"`
	Description string `json:"description" binding:"max=500"`
	ParentID    string `json:"parent_id" binding:"omitempty,uuid"`
}

// UpdateDepartmentRequest edits a department
type UpdateDepartmentRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100" example:"Accounting"`
	Description    string `json:"description" binding:"max=500"`
	HeadEmployeeID string `json:"head_employee_id" binding:"omitempty,uuid"`
}

// MoveDepartmentRequest re-parents a department; an empty parent makes it a root
type MoveDepartmentRequest struct {
	ParentID string `json:"parent_id" binding:"omitempty,uuid"`
}

// ReorderDepartmentsRequest sets the sibling order under one parent
type ReorderDepartmentsRequest struct {
	ParentID   string   `json:"parent_id" binding:"omitempty,uuid"`
	OrderedIDs []string `json:"ordered_ids" binding:"required,min=1,dive,uuid"`
}

// DepartmentListQuery filters the department list
type DepartmentListQuery struct {
	ListQuery
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	ParentID string `form:"parent_id" binding:"omitempty,uuid"`
}

// Create godoc
// @ID           createDepartment
// @Summary      Create a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        request body CreateDepartmentRequest true "Department"
// @Success      201 {object} APIResponse[orgapp.DepartmentDTO]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /departments [post]
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req CreateDepartmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	parentID, _ := parseOptionalID(req.ParentID)
	dept, err := h.departmentService.Create(c.Request.Context(), orgapp.CreateDepartmentInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ParentID:    parentID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dept)
}

// GetByID godoc
// @ID           getDepartmentById
// @Summary      Get department by ID
// @Tags         departments
// @Produce      json
// @Param        id path string true "Department ID" format(uuid)
// @Success      200 {object} APIResponse[orgapp.DepartmentDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /departments/{id} [get]
func (h *DepartmentHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	dept, err := h.departmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dept)
}

// List godoc
// @ID           listDepartments
// @Summary      List departments
// @Tags         departments
// @Produce      json
// @Param        search    query string false "Search term (code, name)"
// @Param        status    query string false "Status" Enums(active, inactive)
// @Param        parent_id query string false "Parent department ID" format(uuid)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Param        order_by  query string false "Order by field" default(path)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]orgapp.DepartmentDTO]
// @Security     BearerAuth
// @Router       /departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	var q DepartmentListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.departmentService.List(c.Request.Context(), orgapp.ListInput{
		Search:   q.Search,
		Status:   q.Status,
		ParentID: q.ParentID,
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	})
	respondPage(&h.BaseHandler, c, page, err)
}

// Update godoc
// @ID           updateDepartment
// @Summary      Update a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "Department ID" format(uuid)
// @Param        request body UpdateDepartmentRequest true "Department"
// @Success      200 {object} APIResponse[orgapp.DepartmentDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /departments/{id} [put]
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateDepartmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	head, _ := parseOptionalID(req.HeadEmployeeID)
	dept, err := h.departmentService.Update(c.Request.Context(), id, orgapp.UpdateDepartmentInput{
		Name:           req.Name,
		Description:    req.Description,
		HeadEmployeeID: head,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dept)
}

// Activate godoc
// @ID           activateDepartment
// @Summary      Activate a department
// @Tags         departments
// @Produce      json
// @Param        id path string true "Department ID" format(uuid)
// @Success      200 {object} APIResponse[orgapp.DepartmentDTO]
// @Security     BearerAuth
// @Router       /departments/{id}/activate [post]
func (h *DepartmentHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate godoc
// @ID           deactivateDepartment
// @Summary      Deactivate a department
// @Tags         departments
// @Produce      json
// @Param        id path string true "Department ID" format(uuid)
// @Success      200 {object} APIResponse[orgapp.DepartmentDTO]
// @Security     BearerAuth
// @Router       /departments/{id}/deactivate [post]
func (h *DepartmentHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *DepartmentHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	dept, err := h.departmentService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dept)
}

// Move godoc
// @ID           moveDepartment
// @Summary      Move a department under another parent
// @Description  Moving a department under itself or one of its descendants fails with CIRCULAR_REFERENCE
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Department ID" format(uuid)
// @Param        request body MoveDepartmentRequest true "New parent"
// @Success      200 {object} APIResponse[orgapp.DepartmentDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /departments/{id}/move [post]
func (h *DepartmentHandler) Move(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req MoveDepartmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	parentID, _ := parseOptionalID(req.ParentID)
	dept, err := h.departmentService.Move(c.Request.Context(), id, parentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dept)
}

// Reorder godoc
// @ID           reorderDepartments
// @Summary      Reorder sibling departments
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        request body ReorderDepartmentsRequest true "Order"
// @Success      200 {object} APIResponse[[]orgapp.DepartmentDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /departments/reorder [post]
func (h *DepartmentHandler) Reorder(c *gin.Context) {
	var req ReorderDepartmentsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	parentID, _ := parseOptionalID(req.ParentID)
	ids := make([]uuid.UUID, len(req.OrderedIDs))
	for i, s := range req.OrderedIDs {
		ids[i] = uuid.MustParse(s)
	}
	depts, err := h.departmentService.Reorder(c.Request.Context(), parentID, ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, depts)
}

// Hierarchy godoc
// @ID           getHierarchy
// @Summary      Organization tree
// @Description  Departments ordered by sort order then name, each with its positions
// @Tags         hierarchy
// @Produce      json
// @Success      200 {object} APIResponse[[]orgapp.HierarchyNode]
// @Security     BearerAuth
// @Router       /hierarchy [get]
func (h *DepartmentHandler) Hierarchy(c *gin.Context) {
	tree, err := h.departmentService.Hierarchy(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if tree == nil {
		tree = []*orgapp.HierarchyNode{}
	}
	h.Success(c, tree)
}

// Delete godoc
// @ID           deleteDepartment
// @Summary      Delete a department
// @Description  Blocked while it has child departments, positions or employees
// @Tags         departments
// @Param        id path string true "Department ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.departmentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
