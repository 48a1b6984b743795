package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
)

func rwActor(rwNumber string) authz.Actor {
	return authz.Actor{
		UserID:    10,
		Role:      models.RoleRW,
		Territory: &authz.Territory{RWNumber: rwNumber},
	}
}

func TestProvisionRT_GeneratesCredentialsOnce(t *testing.T) {
	territoryRepo := newFakeTerritoryRepo()
	userRepo := newFakeUserRepo()
	svc := NewTerritoryService(territoryRepo, userRepo, "smartrw.id", testLogger())

	result, err := svc.ProvisionRT(rwActor("005"), ProvisionRTInput{
		Number:   "001",
		Chairman: "Budi Santoso",
	})
	require.NoError(t, err)

	assert.Equal(t, "001", result.RT.Number)
	assert.Equal(t, "005", result.RT.RWNumber)
	assert.True(t, result.RT.IsActive)

	assert.Equal(t, "rt001@smartrw.id", result.Credentials.Email)
	assert.Equal(t, fmt.Sprintf("RT001@%d", time.Now().Year()), result.Credentials.Password)

	// Only the hash is persisted, and it verifies against the plaintext.
	stored, err := territoryRepo.GetRTByID(result.RT.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestProvisionRT_PersistsHashNotPlaintext(t *testing.T) {
	territoryRepo := newFakeTerritoryRepo()
	svc := NewTerritoryService(territoryRepo, newFakeUserRepo(), "smartrw.id", testLogger())

	result, err := svc.ProvisionRT(rwActor("005"), ProvisionRTInput{
		Number:   "002",
		Chairman: "Siti Aminah",
	})
	require.NoError(t, err)
	require.Len(t, territoryRepo.accounts, 1)

	account := territoryRepo.accounts[0]
	assert.Equal(t, models.RoleRT, account.Role)
	assert.NotEqual(t, result.Credentials.Password, account.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(result.Credentials.Password)))
}

func TestProvisionRT_RWForcedToOwnRW(t *testing.T) {
	territoryRepo := newFakeTerritoryRepo()
	svc := NewTerritoryService(territoryRepo, newFakeUserRepo(), "smartrw.id", testLogger())

	// RW actor asking for a foreign rw_number still lands in its own RW.
	result, err := svc.ProvisionRT(rwActor("005"), ProvisionRTInput{
		Number:   "003",
		RWNumber: "009",
		Chairman: "Budi",
	})
	require.NoError(t, err)
	assert.Equal(t, "005", result.RT.RWNumber)
}

func TestProvisionRT_InvalidNumberRejected(t *testing.T) {
	svc := NewTerritoryService(newFakeTerritoryRepo(), newFakeUserRepo(), "smartrw.id", testLogger())

	for _, number := range []string{"", "1", "12", "1234", "01a"} {
		_, err := svc.ProvisionRT(rwActor("005"), ProvisionRTInput{Number: number, Chairman: "X"})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput), "number %q", number)
	}
}

func TestProvisionRT_DuplicateNumber(t *testing.T) {
	territoryRepo := newFakeTerritoryRepo()
	svc := NewTerritoryService(territoryRepo, newFakeUserRepo(), "smartrw.id", testLogger())

	_, err := svc.ProvisionRT(rwActor("005"), ProvisionRTInput{Number: "001", Chairman: "A"})
	require.NoError(t, err)

	_, err = svc.ProvisionRT(rwActor("005"), ProvisionRTInput{Number: "001", Chairman: "B"})
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicateNumber))
}

func TestProvisionRT_SameNumberDifferentRWAllowed(t *testing.T) {
	territoryRepo := newFakeTerritoryRepo()
	userRepo := newFakeUserRepo()
	svc := NewTerritoryService(territoryRepo, userRepo, "a.id", testLogger())

	admin := authz.Actor{UserID: 1, Role: models.RoleAdmin}

	_, err := svc.ProvisionRT(admin, ProvisionRTInput{Number: "001", RWNumber: "005", Chairman: "A", Email: "rt001.rw005@a.id"})
	require.NoError(t, err)

	// RT numbering repeats across RWs; the composite key is (number, rw).
	_, err = svc.ProvisionRT(admin, ProvisionRTInput{Number: "001", RWNumber: "006", Chairman: "B", Email: "rt001.rw006@a.id"})
	assert.NoError(t, err)
}

func TestProvisionRT_ConstraintErrorsPassThrough(t *testing.T) {
	territoryRepo := newFakeTerritoryRepo()
	territoryRepo.createRTErr = apperr.New(apperr.KindEmailTaken, "email already registered")
	svc := NewTerritoryService(territoryRepo, newFakeUserRepo(), "smartrw.id", testLogger())

	_, err := svc.ProvisionRT(rwActor("005"), ProvisionRTInput{Number: "001", Chairman: "A"})
	assert.True(t, apperr.IsKind(err, apperr.KindEmailTaken))
}

func TestProvisionRT_ForbiddenRoles(t *testing.T) {
	svc := NewTerritoryService(newFakeTerritoryRepo(), newFakeUserRepo(), "smartrw.id", testLogger())

	for _, actor := range []authz.Actor{
		{UserID: 1, Role: models.RoleWarga},
		{UserID: 2, Role: models.RoleRT, Territory: &authz.Territory{RTNumber: "001", RWNumber: "005"}},
	} {
		_, err := svc.ProvisionRT(actor, ProvisionRTInput{Number: "001", Chairman: "X"})
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "role %s", actor.Role)
	}

	_, err := svc.ProvisionRT(authz.Actor{}, ProvisionRTInput{Number: "001", Chairman: "X"})
	assert.True(t, apperr.IsKind(err, apperr.KindAuthRequired))
}

func TestProvisionRW_AdminOnly(t *testing.T) {
	svc := NewTerritoryService(newFakeTerritoryRepo(), newFakeUserRepo(), "smartrw.id", testLogger())

	_, err := svc.ProvisionRW(rwActor("005"), ProvisionRWInput{Number: "007", Chairman: "X"})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	result, err := svc.ProvisionRW(authz.Actor{UserID: 1, Role: models.RoleAdmin}, ProvisionRWInput{Number: "007", Chairman: "X"})
	require.NoError(t, err)
	assert.Equal(t, "rw007@smartrw.id", result.Credentials.Email)
}

func TestDeactivateRT_BlockedByDependents(t *testing.T) {
	territoryRepo := newFakeTerritoryRepo()
	territoryRepo.rts[1] = &models.RT{ID: 1, Number: "001", RWNumber: "005", IsActive: true}
	territoryRepo.residentCount = 3
	svc := NewTerritoryService(territoryRepo, newFakeUserRepo(), "smartrw.id", testLogger())

	err := svc.DeactivateRT(rwActor("005"), 1)
	assert.True(t, apperr.IsKind(err, apperr.KindHasDependents))
	assert.True(t, territoryRepo.rts[1].IsActive, "record must be untouched")

	// Repeating the attempt yields the same error, no side effects.
	err = svc.DeactivateRT(rwActor("005"), 1)
	assert.True(t, apperr.IsKind(err, apperr.KindHasDependents))
	assert.Zero(t, territoryRepo.updatedRTs)
}

func TestDeactivateRT_FlipsFlagOnly(t *testing.T) {
	territoryRepo := newFakeTerritoryRepo()
	territoryRepo.rts[1] = &models.RT{ID: 1, Number: "001", RWNumber: "005", IsActive: true}
	svc := NewTerritoryService(territoryRepo, newFakeUserRepo(), "smartrw.id", testLogger())

	require.NoError(t, svc.DeactivateRT(rwActor("005"), 1))
	assert.False(t, territoryRepo.rts[1].IsActive)
	assert.Contains(t, territoryRepo.rts, uint(1), "row is kept, never removed")

	// Deactivating twice is a no-op.
	require.NoError(t, svc.DeactivateRT(rwActor("005"), 1))
	assert.Equal(t, 1, territoryRepo.updatedRTs)
}

func TestDeactivateRT_NotFound(t *testing.T) {
	svc := NewTerritoryService(newFakeTerritoryRepo(), newFakeUserRepo(), "smartrw.id", testLogger())

	err := svc.DeactivateRT(rwActor("005"), 99)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
