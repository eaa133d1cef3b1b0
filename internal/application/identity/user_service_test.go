package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService() (*UserService, *MockUserRepository, *auth.InMemoryTokenBlacklist) {
	repo := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewUserService(repo, blacklist, nil, time.Hour, zap.NewNop()), repo, blacklist
}

func TestUserService_Create(t *testing.T) {
	t.Run("creates an active user", func(t *testing.T) {
		svc, repo, _ := newUserService()
		repo.On("ExistsByUsername", mock.Anything, "new.clerk").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		dto, err := svc.Create(context.Background(), CreateUserInput{
			Username:    "new.clerk",
			Password:    "long-enough",
			Role:        identity.RoleAccounting,
			DisplayName: "New Clerk",
			Email:       "Clerk@Example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "new.clerk", dto.Username)
		assert.Equal(t, "New Clerk", dto.DisplayName)
		assert.Equal(t, "clerk@example.com", dto.Email)
		assert.Equal(t, "active", dto.Status)
		assert.Contains(t, dto.Permissions, identity.PermVoucherIssue)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		svc, repo, _ := newUserService()
		repo.On("ExistsByUsername", mock.Anything, "taken").Return(true, nil)

		_, err := svc.Create(context.Background(), CreateUserInput{Username: "taken", Password: "long-enough", Role: identity.RoleAdminHead})
		requireCode(t, err, "USERNAME_EXISTS")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		svc, repo, _ := newUserService()
		repo.On("ExistsByUsername", mock.Anything, "someone").Return(false, nil)

		_, err := svc.Create(context.Background(), CreateUserInput{Username: "someone", Password: "long-enough", Role: "owner"})
		requireCode(t, err, "INVALID_ROLE")
	})
}

func TestUserService_ChangeRoleRevokesTokens(t *testing.T) {
	svc, repo, blacklist := newUserService()
	user := newTestUser(t, "promoted", identity.RoleAccounting)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	admin := shared.Actor{ID: uuid.New(), Name: "admin", Role: string(identity.RoleAdminHead)}
	ctx := shared.WithActor(context.Background(), admin)

	dto, err := svc.ChangeRole(ctx, user.ID, identity.RoleSuperAccountant)
	require.NoError(t, err)
	assert.Equal(t, "super_accountant", dto.Role)

	revoked, err := blacklist.IsUserRevoked(ctx, user.ID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestUserService_SelfProtection(t *testing.T) {
	svc, repo, _ := newUserService()
	user := newTestUser(t, "myself", identity.RoleAdminHead)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	ctx := shared.WithActor(context.Background(), shared.Actor{ID: user.ID, Name: "myself"})

	_, err := svc.ChangeRole(ctx, user.ID, identity.RoleAccounting)
	requireCode(t, err, "CANNOT_CHANGE_OWN_ROLE")

	_, err = svc.Deactivate(ctx, user.ID)
	requireCode(t, err, "CANNOT_DEACTIVATE_SELF")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_ChangePassword(t *testing.T) {
	svc, repo, _ := newUserService()
	user := newTestUser(t, "rotator", identity.RoleAccounting)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID: user.ID, OldPassword: "wrong-one", NewPassword: "brand-new-pass",
	})
	requireCode(t, err, "INVALID_PASSWORD")

	require.NoError(t, svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID: user.ID, OldPassword: "correct-horse", NewPassword: "brand-new-pass",
	}))
	assert.True(t, user.VerifyPassword("brand-new-pass"))
}

func TestUserService_List(t *testing.T) {
	svc, repo, _ := newUserService()
	users := []identity.User{*newTestUser(t, "alpha", identity.RoleAccounting)}
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == "alp" && f.Filters["role"] == "accounting" && f.PageSize == 100
	})).Return(users, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	page, err := svc.List(context.Background(), ListUsersInput{Search: " alp ", Role: "accounting", PageSize: 500})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "alpha", page.Items[0].Username)
	assert.Equal(t, 1, page.TotalPages)
}
