package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/realtyadmin/backend/internal/application/identity"
	"github.com/realtyadmin/backend/internal/domain/identity"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50" example:"jdelacruz"`
	Password    string `json:"password" binding:"required,min=8,max=72" example:"s3cretpass"`
	Role        string `json:"role" binding:"required,oneof=accounting admin_head super_accountant" example:"accounting"`
	DisplayName string `json:"display_name" binding:"max=100" example:"Juan Dela Cruz"`
	Email       string `json:"email" binding:"omitempty,email,max=200" example:"juan@realty.example"`
}

// UpdateUserRequest represents a request to update a user profile
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
}

// ChangeRoleRequest assigns a new role
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=accounting admin_head super_accountant"`
}

// ResetPasswordRequest sets another user's password
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserListQuery filters the user list
type UserListQuery struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=accounting admin_head super_accountant"`
	Status   string `form:"status" binding:"omitempty,oneof=active locked deactivated"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Create godoc
// @ID           createUser
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "User"
// @Success      201 {object} APIResponse[identityapp.UserDTO]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), identityapp.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Role:        identity.Role(req.Role),
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// GetByID godoc
// @ID           getUserById
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[identityapp.UserDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// List godoc
// @ID           listUsers
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        search    query string false "Search username, name or email"
// @Param        role      query string false "Role" Enums(accounting, admin_head, super_accountant)
// @Param        status    query string false "Status" Enums(active, locked, deactivated)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]identityapp.UserDTO]
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var q UserListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.userService.List(c.Request.Context(), identityapp.ListUsersInput{
		Search:   q.Search,
		Role:     q.Role,
		Status:   q.Status,
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	})
	respondPage(&h.BaseHandler, c, page, err)
}

// Update godoc
// @ID           updateUser
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string            true "User ID" format(uuid)
// @Param        request body UpdateUserRequest true "Profile fields"
// @Success      200 {object} APIResponse[identityapp.UserDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}
	user, err := h.userService.Update(c.Request.Context(), id, identityapp.UpdateUserInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangeRole godoc
// @ID           changeUserRole
// @Summary      Change a user's role
// @Description  The user's outstanding tokens are revoked
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string            true "User ID" format(uuid)
// @Param        request body ChangeRoleRequest true "Role"
// @Success      200 {object} APIResponse[identityapp.UserDTO]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/role [put]
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req ChangeRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	user, err := h.userService.ChangeRole(c.Request.Context(), id, identity.Role(req.Role))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Activate godoc
// @ID           activateUser
// @Summary      Activate a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[identityapp.UserDTO]
// @Security     BearerAuth
// @Router       /users/{id}/activate [post]
func (h *UserHandler) Activate(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Deactivate godoc
// @ID           deactivateUser
// @Summary      Deactivate a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[identityapp.UserDTO]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ResetPassword godoc
// @ID           resetUserPassword
// @Summary      Reset a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string               true "User ID" format(uuid)
// @Param        request body ResetPasswordRequest true "New password"
// @Success      200 {object} APIResponse[MessageResponse]
// @Security     BearerAuth
// @Router       /users/{id}/password [put]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req ResetPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.userService.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageResponse{Message: "Password reset successfully"})
}

// ListRoles godoc
// @ID           listRoles
// @Summary      List roles and their permissions
// @Tags         users
// @Produce      json
// @Success      200 {object} APIResponse[[]identityapp.RoleDTO]
// @Security     BearerAuth
// @Router       /users/roles [get]
func (h *UserHandler) ListRoles(c *gin.Context) {
	h.Success(c, identityapp.ListRoles())
}
