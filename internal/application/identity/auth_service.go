package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/audit"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/auth"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

var (
	errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	errUserNotFound       = shared.NewDomainError("USER_NOT_FOUND", "User not found")
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	activity   audit.Repository
	publisher  shared.EventPublisher
	metrics    *telemetry.BusinessMetrics
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	activity audit.Repository,
	publisher shared.EventPublisher,
	metrics *telemetry.BusinessMetrics,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if config.MaxLoginAttempts <= 0 {
		config.MaxLoginAttempts = DefaultAuthServiceConfig().MaxLoginAttempts
	}
	if config.LockDuration <= 0 {
		config.LockDuration = DefaultAuthServiceConfig().LockDuration
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		activity:   activity,
		publisher:  publisher,
		metrics:    metrics,
		config:     config,
		logger:     logger,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (result *LoginResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "Login")
	defer func() { telemetry.EndSpan(span, err) }()

	username := strings.ToLower(strings.TrimSpace(input.Username))
	s.logger.Info("Login attempt", zap.String("username", username), zap.String("ip", input.IP))

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load user during login", zap.Error(err))
			return nil, err
		}
		s.logger.Warn("User not found during login", zap.String("username", username))
		s.metrics.RecordLogin(ctx, "unknown_user")
		return nil, errInvalidCredentials
	}

	if user.Status == identity.UserStatusDeactivated {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", username))
		s.metrics.RecordLogin(ctx, "deactivated")
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}
	if user.IsLocked() {
		s.logger.Warn("Login attempt for locked account", zap.String("username", username))
		s.metrics.RecordLogin(ctx, "locked")
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}
		s.publish(ctx, user)

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			s.metrics.RecordLogin(ctx, "locked")
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("username", username),
			zap.Int("failed_attempts", user.FailedAttempts))
		s.metrics.RecordLogin(ctx, "bad_password")
		return nil, errInvalidCredentials
	}

	pair, err := s.jwtService.GenerateTokenPair(subjectFor(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Save(ctx, user); err != nil {
		// the tokens are already valid, so the login stands
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	actor := shared.Actor{ID: user.ID, Name: user.Name(), Role: string(user.Role), IP: input.IP}
	s.record(ctx, audit.NewActivityLog(actor, audit.ActionLogin, identity.AggregateTypeUser, user.ID, "Signed in"))
	s.metrics.RecordLogin(ctx, "success")

	s.logger.Info("User logged in successfully",
		zap.String("username", username),
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserDTO(user),
	}, nil
}

// RefreshToken rotates a refresh token into a new pair. The role and
// permissions are reloaded from the user so role changes take effect.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (result *RefreshTokenResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "RefreshToken")
	defer func() { telemetry.EndSpan(span, err) }()

	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
			return nil, errUserNotFound
		}
		return nil, err
	}
	if !user.CanLogin() {
		s.logger.Warn("Token refresh for inactive user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	pair, err := s.jwtService.Reissue(claims, subjectFor(user))
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, tokenError(err)
	}

	// the old refresh token is single use
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
	}

	s.logger.Info("Token refreshed successfully",
		zap.String("user_id", userID.String()),
		zap.Int("refresh_count", claims.RefreshCount+1))

	return &RefreshTokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// Logout revokes the access token, and the refresh token when one is given,
// for the rest of their lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "Logout")
	defer func() { telemetry.EndSpan(span, err) }()

	if input.Claims == nil {
		return shared.ErrUnauthorized
	}

	if err := s.blacklist.Revoke(ctx, input.Claims.ID, input.Claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke access token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to sign out")
	}

	if input.RefreshToken != "" {
		refresh, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		if err == nil && refresh.UserID == input.Claims.UserID {
			if err := s.blacklist.Revoke(ctx, refresh.ID, refresh.GetRemainingTTL()); err != nil {
				s.logger.Error("Failed to revoke refresh token", zap.Error(err))
			}
		}
	}

	userID, _ := input.Claims.GetUserUUID()
	actor := shared.Actor{ID: userID, Name: input.Claims.Username, Role: input.Claims.Role, IP: input.IP}
	s.record(ctx, audit.NewActivityLog(actor, audit.ActionLogout, identity.AggregateTypeUser, userID, "Signed out"))

	s.logger.Info("User logged out",
		zap.String("user_id", input.Claims.UserID),
		zap.String("jti", input.Claims.ID))
	return nil
}

// GetCurrentUser retrieves the signed-in user
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// IsTokenRevoked reports whether an access token was revoked individually or
// through a user wide revocation
func (s *AuthService) IsTokenRevoked(ctx context.Context, claims *auth.Claims) (bool, error) {
	err := s.checkRevoked(ctx, claims)
	if err == nil {
		return false, nil
	}
	var de *shared.DomainError
	if errors.As(err, &de) && de.Code == "TOKEN_REVOKED" {
		return true, nil
	}
	return false, err
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return err
	}
	if !revoked {
		revoked, err = s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			s.logger.Error("Failed to check user revocation", zap.Error(err))
			return err
		}
	}
	if revoked {
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}
	return nil
}

func (s *AuthService) record(ctx context.Context, entry *audit.ActivityLog) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to record activity", zap.String("action", string(entry.Action)), zap.Error(err))
	}
}

func (s *AuthService) publish(ctx context.Context, user *identity.User) {
	if err := shared.PublishAndClear(ctx, s.publisher, user); err != nil {
		s.logger.Warn("Failed to publish user events", zap.Error(err))
	}
}

func subjectFor(u *identity.User) auth.Subject {
	return auth.Subject{
		UserID:      u.ID,
		Username:    u.Username,
		Role:        string(u.Role),
		Permissions: u.Role.Permissions(),
	}
}

// tokenError maps JWT errors to domain errors
func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrTokenNotYetValid):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
	return shared.NewDomainError("TOKEN_ERROR", "Failed to refresh token")
}
