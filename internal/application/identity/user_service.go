package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/auth"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	userRepo  identity.UserRepository
	blacklist auth.TokenBlacklist
	publisher shared.EventPublisher
	revokeTTL time.Duration
	logger    *zap.Logger
}

// NewUserService creates a new user service. revokeTTL is how long a user
// wide token revocation is kept, normally the refresh token lifetime.
func NewUserService(
	userRepo identity.UserRepository,
	blacklist auth.TokenBlacklist,
	publisher shared.EventPublisher,
	revokeTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		blacklist: blacklist,
		publisher: publisher,
		revokeTTL: revokeTTL,
		logger:    logger,
	}
}

// Create creates a new active user
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (dto *UserDTO, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "user", "Create")
	defer func() { telemetry.EndSpan(span, err) }()

	s.logger.Info("Creating new user",
		zap.String("username", input.Username),
		zap.String("role", string(input.Role)))

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error("Failed to check username existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_EXISTS", "Username already exists")
	}

	user, err := identity.NewUser(input.Username, input.Password, input.Role)
	if err != nil {
		return nil, err
	}
	if input.DisplayName != "" || input.Email != "" {
		if err := user.SetProfile(input.DisplayName, input.Email); err != nil {
			return nil, err
		}
	}
	if actor := shared.ActorFromContext(ctx); !actor.IsSystem() {
		user.SetCreatedBy(actor.ID)
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	out := ToUserDTO(user)
	return &out, nil
}

// GetByID retrieves a user
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, input ListUsersInput) (*shared.Paginated[UserDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir).
		With("role", input.Role).
		With("status", input.Status)

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]UserDTO, len(users))
	for i := range users {
		items[i] = ToUserDTO(&users[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes the profile of a user
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	displayName, email := user.DisplayName, user.Email
	if input.DisplayName != nil {
		displayName = *input.DisplayName
	}
	if input.Email != nil {
		email = *input.Email
	}
	if err := user.SetProfile(displayName, email); err != nil {
		return nil, err
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User updated", zap.String("user_id", id.String()))
	dto := ToUserDTO(user)
	return &dto, nil
}

// ChangeRole assigns another role. Existing tokens are revoked so the new
// permission set applies on the next login.
func (s *UserService) ChangeRole(ctx context.Context, id uuid.UUID, role identity.Role) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor := shared.ActorFromContext(ctx); actor.ID == id {
		return nil, shared.NewDomainError("CANNOT_CHANGE_OWN_ROLE", "You cannot change your own role")
	}

	previous := user.Role
	if err := user.ChangeRole(role); err != nil {
		return nil, err
	}
	if previous == role {
		dto := ToUserDTO(user)
		return &dto, nil
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	s.revoke(ctx, user.ID)

	s.logger.Info("User role changed",
		zap.String("user_id", id.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(role)))
	dto := ToUserDTO(user)
	return &dto, nil
}

// Activate re-enables an account and clears any login lock
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Activate(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("User activated", zap.String("user_id", id.String()))
	dto := ToUserDTO(user)
	return &dto, nil
}

// Deactivate disables an account and revokes its tokens
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor := shared.ActorFromContext(ctx); actor.ID == id {
		return nil, shared.NewDomainError("CANNOT_DEACTIVATE_SELF", "You cannot deactivate your own account")
	}
	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	s.revoke(ctx, user.ID)

	s.logger.Info("User deactivated", zap.String("user_id", id.String()))
	dto := ToUserDTO(user)
	return &dto, nil
}

// ChangePassword replaces the user's own password after checking the old one
func (s *UserService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.find(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}
	if err := s.save(ctx, user); err != nil {
		return err
	}
	s.revoke(ctx, user.ID)

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

// ResetPassword sets a new password for another user
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.save(ctx, user); err != nil {
		return err
	}
	s.revoke(ctx, user.ID)

	s.logger.Info("User password reset", zap.String("user_id", id.String()))
	return nil
}

func (s *UserService) find(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errUserNotFound
		}
		s.logger.Error("Failed to load user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *UserService) save(ctx context.Context, user *identity.User) error {
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.String("user_id", user.ID.String()), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to save user")
	}
	if err := shared.PublishAndClear(ctx, s.publisher, user); err != nil {
		s.logger.Warn("Failed to publish user events", zap.Error(err))
	}
	return nil
}

func (s *UserService) revoke(ctx context.Context, userID uuid.UUID) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.RevokeUser(ctx, userID.String(), s.revokeTTL); err != nil {
		s.logger.Error("Failed to revoke user tokens", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
