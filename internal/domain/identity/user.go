package identity

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/realtyadmin/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusLocked      UserStatus = "locked" // too many failed logins
	UserStatusDeactivated UserStatus = "deactivated"
)

var (
	bcryptCost      = 12
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// User is a back office account
type User struct {
	shared.BaseAggregateRoot
	Username          string
	Email             string
	DisplayName       string
	PasswordHash      string
	Role              Role
	Status            UserStatus
	LastLoginAt       *time.Time
	LastLoginIP       string
	FailedAttempts    int
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// NewUser creates an active user
func NewUser(username, password string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "role must be accounting, admin_head or super_accountant")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      hash,
		Role:              role,
		Status:            UserStatusActive,
		PasswordChangedAt: &now,
	}
	u.AddDomainEvent(NewUserEvent(EventTypeUserCreated, u))
	return u, nil
}

// SetProfile sets the display name and email
func (u *User) SetProfile(displayName, email string) error {
	displayName = strings.TrimSpace(displayName)
	if len(displayName) > 200 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "display name cannot exceed 200 characters")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil || len(email) > 200 {
			return shared.NewDomainError("INVALID_EMAIL", "invalid email format")
		}
	}
	u.DisplayName = displayName
	u.Email = email
	u.touch()
	u.AddDomainEvent(NewUserEvent(EventTypeUserUpdated, u))
	return nil
}

// ChangeRole assigns another role
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "role must be accounting, admin_head or super_accountant")
	}
	if u.Role == role {
		return nil
	}
	u.Role = role
	u.touch()
	u.AddDomainEvent(NewUserEvent(EventTypeUserRoleChanged, u))
	return nil
}

// ChangePassword replaces the password after checking the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword replaces the password without checking the current one
func (u *User) SetPassword(newPassword string) error {
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	u.PasswordHash = hash
	u.PasswordChangedAt = &now
	u.touch()
	u.AddDomainEvent(NewUserEvent(EventTypeUserPasswordChanged, u))
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Activate activates the user and clears any lock
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("INVALID_STATE", "user is already active")
	}
	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.touch()
	u.AddDomainEvent(NewUserEvent(EventTypeUserStatusChanged, u))
	return nil
}

// Deactivate disables the account
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("INVALID_STATE", "user is already deactivated")
	}
	u.Status = UserStatusDeactivated
	u.touch()
	u.AddDomainEvent(NewUserEvent(EventTypeUserStatusChanged, u))
	return nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess(ip string) {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.FailedAttempts = 0
	if u.Status == UserStatusLocked {
		u.Status = UserStatusActive
		u.LockedUntil = nil
	}
	u.touch()
}

// RecordLoginFailure records a failed login attempt.
// Returns true if the account got locked.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	if u.Status == UserStatusLocked && !u.IsLocked() {
		u.FailedAttempts = 0
	}
	u.FailedAttempts++
	u.touch()
	if u.FailedAttempts < maxAttempts {
		return false
	}
	until := time.Now().Add(lockDuration)
	u.Status = UserStatusLocked
	u.LockedUntil = &until
	u.AddDomainEvent(NewUserEvent(EventTypeUserLocked, u))
	return true
}

// IsLocked reports whether a lock is in effect. An expired lock no longer counts.
func (u *User) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}
	return u.LockedUntil == nil || time.Now().Before(*u.LockedUntil)
}

// CanLogin returns true if user can login
func (u *User) CanLogin() bool {
	return u.Status != UserStatusDeactivated && !u.IsLocked()
}

// Name returns the display name if set, otherwise the username
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

func (u *User) touch() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

func validateUsername(username string) error {
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "username must be at least 3 characters")
	}
	if len(username) > 50 {
		return shared.NewDomainError("INVALID_USERNAME", "username cannot exceed 50 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

// ValidatePassword checks the length bounds bcrypt can hash
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PASSWORD_HASH_ERROR", "failed to hash password")
	}
	return string(hash), nil
}
