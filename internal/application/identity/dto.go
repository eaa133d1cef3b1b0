package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/realtyadmin/backend/internal/infrastructure/auth"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserDTO   `json:"user"`
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	Claims       *auth.Claims // validated access token
	RefreshToken string       // optional, revoked as well when valid
	IP           string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains input for creating a user
type CreateUserInput struct {
	Username    string
	Password    string
	Role        identity.Role
	DisplayName string
	Email       string
}

// UpdateUserInput contains input for updating a user profile.
// Nil fields keep their current value.
type UpdateUserInput struct {
	DisplayName *string
	Email       *string
}

// ListUsersInput filters the user list
type ListUsersInput struct {
	Search   string
	Role     string
	Status   string
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email,omitempty"`
	Role        string     `json:"role"`
	RoleName    string     `json:"role_name"`
	Permissions []string   `json:"permissions"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	LastLoginIP string     `json:"last_login_ip,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ToUserDTO converts a domain user
func ToUserDTO(u *identity.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.Name(),
		Email:       u.Email,
		Role:        string(u.Role),
		RoleName:    u.Role.DisplayName(),
		Permissions: u.Role.Permissions(),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		LastLoginIP: u.LastLoginIP,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		Version:     u.Version,
	}
}

// RoleDTO describes a role and the permissions it grants
type RoleDTO struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// ListRoles returns the fixed role catalogue
func ListRoles() []RoleDTO {
	out := make([]RoleDTO, len(identity.Roles))
	for i, r := range identity.Roles {
		out[i] = RoleDTO{Code: string(r), Name: r.DisplayName(), Permissions: r.Permissions()}
	}
	return out
}
