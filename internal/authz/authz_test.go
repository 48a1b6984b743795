package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func territoryPtr(rt, rw string) *Territory {
	return &Territory{RTNumber: rt, RWNumber: rw}
}

func TestTerritoryEqual_ComparesFullPair(t *testing.T) {
	base := Territory{RTNumber: "001", RWNumber: "002"}

	assert.True(t, base.Equal(Territory{RTNumber: "001", RWNumber: "002"}))
	// Same RT number under a different RW must not match.
	assert.False(t, base.Equal(Territory{RTNumber: "001", RWNumber: "003"}))
	assert.False(t, base.Equal(Territory{RTNumber: "002", RWNumber: "002"}))
}

func TestCanRead_AdminAndRWOverride(t *testing.T) {
	subjects := []Subject{
		{},
		{OwnerUserID: 99},
		{Territory: territoryPtr("001", "001"), Locked: true},
		{OwnerUserID: 7, FamilyID: uintPtr(3), Territory: territoryPtr("005", "009")},
	}

	for _, role := range []models.Role{models.RoleAdmin, models.RoleRW} {
		actor := Actor{UserID: 1, Role: role}
		for _, sub := range subjects {
			assert.True(t, CanRead(actor, sub).Allowed, "role %s should read any subject", role)
			assert.True(t, CanMutate(actor, sub).Allowed, "role %s should mutate any subject", role)
		}
	}
}

func TestCanRead_RTTerritoryMatrix(t *testing.T) {
	tests := []struct {
		name    string
		actor   *Territory
		subject *Territory
		allowed bool
	}{
		{"exact match", territoryPtr("001", "002"), territoryPtr("001", "002"), true},
		{"rt match rw mismatch", territoryPtr("001", "002"), territoryPtr("001", "003"), false},
		{"rw match rt mismatch", territoryPtr("001", "002"), territoryPtr("002", "002"), false},
		{"both mismatch", territoryPtr("001", "002"), territoryPtr("003", "004"), false},
		{"subject without territory", territoryPtr("001", "002"), nil, false},
		{"actor without territory", nil, territoryPtr("001", "002"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := Actor{UserID: 10, Role: models.RoleRT, Territory: tt.actor}
			sub := Subject{OwnerUserID: 99, Territory: tt.subject}

			decision := CanRead(actor, sub)
			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.Equal(t, apperr.KindForbidden, decision.Reason)
			}

			decision = CanMutate(actor, sub)
			assert.Equal(t, tt.allowed, decision.Allowed)
		})
	}
}

func TestCanRead_WargaOwnAndFamily(t *testing.T) {
	actor := Actor{UserID: 5, Role: models.RoleWarga, FamilyID: uintPtr(42)}

	// Own record.
	assert.True(t, CanRead(actor, Subject{OwnerUserID: 5}).Allowed)
	// Family record.
	assert.True(t, CanRead(actor, Subject{OwnerUserID: 6, FamilyID: uintPtr(42)}).Allowed)
	// Other family.
	assert.False(t, CanRead(actor, Subject{OwnerUserID: 6, FamilyID: uintPtr(43)}).Allowed)
	// No family on the subject.
	assert.False(t, CanRead(actor, Subject{OwnerUserID: 6}).Allowed)

	// Family equality requires both sides non-nil.
	noFamily := Actor{UserID: 5, Role: models.RoleWarga}
	assert.False(t, CanRead(noFamily, Subject{OwnerUserID: 6, FamilyID: uintPtr(42)}).Allowed)
}

func TestCanMutate_OwnerBlockedByLock(t *testing.T) {
	actor := Actor{UserID: 5, Role: models.RoleWarga}

	open := Subject{OwnerUserID: 5}
	locked := Subject{OwnerUserID: 5, Locked: true}

	assert.True(t, CanMutate(actor, open).Allowed)

	decision := CanMutate(actor, locked)
	assert.False(t, decision.Allowed)
	assert.Equal(t, apperr.KindForbidden, decision.Reason)

	// Reads are unaffected by the lock.
	assert.True(t, CanRead(actor, locked).Allowed)
}

func TestCanRead_Unauthenticated(t *testing.T) {
	decision := CanRead(Actor{}, Subject{OwnerUserID: 1})
	require.False(t, decision.Allowed)
	assert.Equal(t, apperr.KindAuthRequired, decision.Reason)

	decision = CanMutate(Actor{}, Subject{})
	require.False(t, decision.Allowed)
	assert.Equal(t, apperr.KindAuthRequired, decision.Reason)

	decision = CanReadForum(Actor{})
	require.False(t, decision.Allowed)
	assert.Equal(t, apperr.KindAuthRequired, decision.Reason)
}

func TestCanReadForum_AnyAuthenticatedRole(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleRW, models.RoleRT, models.RoleWarga} {
		assert.True(t, CanReadForum(Actor{UserID: 3, Role: role}).Allowed)
	}
}

func TestRequireRole(t *testing.T) {
	actor := Actor{UserID: 2, Role: models.RoleRT}

	assert.True(t, RequireRole(actor, models.RoleRT, models.RoleRW).Allowed)

	decision := RequireRole(actor, models.RoleAdmin)
	require.False(t, decision.Allowed)
	assert.Equal(t, apperr.KindForbidden, decision.Reason)

	decision = RequireRole(Actor{}, models.RoleAdmin)
	assert.Equal(t, apperr.KindAuthRequired, decision.Reason)
}

func TestDecisionErr(t *testing.T) {
	require.NoError(t, Decision{Allowed: true}.Err())

	err := Decision{Allowed: false, Reason: apperr.KindForbidden, Detail: "outside your RT"}.Err()
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
