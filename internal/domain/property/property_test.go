package property

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOwner(t *testing.T) {
	t.Run("normalizes fields", func(t *testing.T) {
		o, err := NewOwner(" own-001 ", OwnerDetails{Name: "  maria   santos ", Email: "Maria@Example.com"})
		require.NoError(t, err)
		assert.Equal(t, "OWN-001", o.Code)
		assert.Equal(t, "Maria Santos", o.Name)
		assert.Equal(t, "maria@example.com", o.Email)
		assert.Equal(t, OwnerStatusActive, o.Status)
		assert.Len(t, o.GetDomainEvents(), 1)
	})

	t.Run("keeps mixed case names", func(t *testing.T) {
		o, err := NewOwner("OWN-002", OwnerDetails{Name: "McArthur Holdings"})
		require.NoError(t, err)
		assert.Equal(t, "McArthur Holdings", o.Name)
	})

	tests := []struct {
		name    string
		code    string
		details OwnerDetails
		errCode string
	}{
		{"empty code", "", OwnerDetails{Name: "A"}, "INVALID_CODE"},
		{"bad code", "A B", OwnerDetails{Name: "A"}, "INVALID_CODE"},
		{"empty name", "OWN-1", OwnerDetails{Name: "  "}, "INVALID_NAME"},
		{"bad email", "OWN-1", OwnerDetails{Name: "Ana", Email: "nope"}, "INVALID_EMAIL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOwner(tt.code, tt.details)
			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.errCode, de.Code)
		})
	}
}

func TestOwnerStatus(t *testing.T) {
	o, err := NewOwner("OWN-1", OwnerDetails{Name: "Ana"})
	require.NoError(t, err)

	require.NoError(t, o.Deactivate())
	assert.Error(t, o.Deactivate())
	require.NoError(t, o.Activate())
	assert.Equal(t, 3, o.Version)
}

func TestProperty(t *testing.T) {
	owner := uuid.New()
	p, err := NewProperty("bldg-a", owner, PropertyDetails{Name: "Tower A", City: "makati"})
	require.NoError(t, err)
	assert.Equal(t, "BLDG-A", p.Code)
	assert.Equal(t, TypeResidential, p.Type)
	assert.Equal(t, "Makati", p.City)

	_, err = NewProperty("BLDG-B", uuid.Nil, PropertyDetails{Name: "Tower B"})
	assert.Error(t, err)

	_, err = NewProperty("BLDG-C", owner, PropertyDetails{Name: "Tower C", Type: "castle"})
	assert.Error(t, err)

	t.Run("transfer", func(t *testing.T) {
		assert.Error(t, p.TransferOwnership(owner))
		other := uuid.New()
		require.NoError(t, p.TransferOwnership(other))
		assert.Equal(t, other, p.OwnerID)
	})

	t.Run("status", func(t *testing.T) {
		require.NoError(t, p.SetStatus(StatusInactive))
		assert.Equal(t, StatusInactive, p.Status)
		assert.Error(t, p.SetStatus("archived"))
	})
}

func TestUnitTransitions(t *testing.T) {
	u, err := NewUnit(uuid.New(), UnitDetails{
		UnitNumber:  "12b",
		Floor:       12,
		AreaSqm:     decimal.RequireFromString("45.555"),
		MonthlyRent: decimal.NewFromInt(25000),
	})
	require.NoError(t, err)
	assert.Equal(t, "12B", u.UnitNumber)
	assert.Equal(t, "45.56", u.AreaSqm.StringFixed(2))
	assert.Equal(t, UnitStatusVacant, u.Status)

	require.NoError(t, u.Occupy())
	err = u.Occupy()
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
	assert.Error(t, u.MarkMaintenance())

	require.NoError(t, u.Vacate())
	assert.Error(t, u.Vacate())
	require.NoError(t, u.MarkMaintenance())
	assert.Error(t, u.Occupy())
	require.NoError(t, u.Vacate())
	assert.Equal(t, UnitStatusVacant, u.Status)
}

func TestNewUnitValidation(t *testing.T) {
	_, err := NewUnit(uuid.Nil, UnitDetails{UnitNumber: "1"})
	assert.Error(t, err)
	_, err = NewUnit(uuid.New(), UnitDetails{UnitNumber: " "})
	assert.Error(t, err)
	_, err = NewUnit(uuid.New(), UnitDetails{UnitNumber: "1", MonthlyRent: decimal.NewFromInt(-1)})
	assert.Error(t, err)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Juan Dela Cruz", NormalizeName("JUAN  DELA CRUZ"))
	assert.Equal(t, "Juan Dela Cruz", NormalizeName("juan dela cruz"))
	assert.Equal(t, "de la Cruz", NormalizeName("de la Cruz"))
	assert.Equal(t, "", NormalizeName("   "))
}
