package identity

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	bcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func TestNewUser(t *testing.T) {
	t.Run("creates an active user", func(t *testing.T) {
		u, err := NewUser(" Maria.Cruz ", "s3cretpass", RoleAccounting)
		require.NoError(t, err)
		assert.Equal(t, "maria.cruz", u.Username)
		assert.Equal(t, UserStatusActive, u.Status)
		assert.True(t, u.VerifyPassword("s3cretpass"))
		assert.False(t, u.VerifyPassword("wrong"))
		assert.NotNil(t, u.PasswordChangedAt)
	})

	tests := []struct {
		name     string
		username string
		password string
		role     Role
	}{
		{"short username", "ab", "password1", RoleAccounting},
		{"bad username", "a b c", "password1", RoleAccounting},
		{"short password", "valid", "short", RoleAccounting},
		{"long password", "valid", string(make([]byte, 73)), RoleAccounting},
		{"unknown role", "valid", "password1", Role("owner")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.username, tt.password, tt.role)
			assert.Error(t, err)
		})
	}
}

func TestUserLockout(t *testing.T) {
	u, err := NewUser("clerk", "password1", RoleAdminHead)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.False(t, u.RecordLoginFailure(5, 15*time.Minute))
	}
	assert.True(t, u.CanLogin())
	assert.True(t, u.RecordLoginFailure(5, 15*time.Minute))
	assert.True(t, u.IsLocked())
	assert.False(t, u.CanLogin())

	past := time.Now().Add(-time.Minute)
	u.LockedUntil = &past
	assert.False(t, u.IsLocked())
	assert.True(t, u.CanLogin())

	// an expired lock starts the count again
	assert.False(t, u.RecordLoginFailure(5, 15*time.Minute))
	assert.Equal(t, 1, u.FailedAttempts)

	u.RecordLoginSuccess("10.0.0.1")
	assert.Equal(t, UserStatusActive, u.Status)
	assert.Equal(t, 0, u.FailedAttempts)
	assert.Equal(t, "10.0.0.1", u.LastLoginIP)
}

func TestUserChanges(t *testing.T) {
	u, err := NewUser("admin", "password1", RoleAdminHead)
	require.NoError(t, err)

	assert.Error(t, u.ChangePassword("nope", "password2"))
	require.NoError(t, u.ChangePassword("password1", "password2"))
	assert.True(t, u.VerifyPassword("password2"))

	require.NoError(t, u.ChangeRole(RoleSuperAccountant))
	assert.Error(t, u.ChangeRole("ceo"))

	require.NoError(t, u.SetProfile(" Admin ", "Admin@Example.com"))
	assert.Equal(t, "Admin", u.Name())
	assert.Equal(t, "admin@example.com", u.Email)
	assert.Error(t, u.SetProfile("", "bad"))

	require.NoError(t, u.Deactivate())
	assert.False(t, u.CanLogin())
	assert.Error(t, u.Deactivate())
	require.NoError(t, u.Activate())
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, RoleAccounting.HasPermission(PermLedgerPost))
	assert.False(t, RoleAccounting.HasPermission(PermVoucherSeriesWrite))
	assert.False(t, RoleAdminHead.HasPermission(PermLedgerRead))
	assert.True(t, RoleAdminHead.HasPermission(PermClearanceWrite))
	assert.True(t, RoleSuperAccountant.HasPermission(PermFundReferenceWrite))
	assert.False(t, RoleSuperAccountant.HasPermission(PermEmployeeWrite))

	for _, r := range Roles {
		assert.True(t, r.HasPermission(PermDashboardRead), r)
		perms := r.Permissions()
		assert.IsIncreasing(t, perms)
	}
	assert.Empty(t, Role("nobody").Permissions())
}
