package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
)

func TestCreateResident_RTPinnedToOwnPair(t *testing.T) {
	resRepo := newFakeResidentRepo()
	svc := NewResidentService(resRepo, testLogger())

	// The input names a foreign pair; RT entry lands in the RT's own pair.
	created, err := svc.Create(rtActor("001", "005"), CreateResidentInput{
		NIK:      "3201010101010002",
		FullName: "Budi",
		RTNumber: "002",
		RWNumber: "006",
	})
	require.NoError(t, err)
	assert.Equal(t, "001", created.RTNumber)
	assert.Equal(t, "005", created.RWNumber)
	assert.False(t, created.IsVerified)
}

func TestCreateResident_WargaForbidden(t *testing.T) {
	svc := NewResidentService(newFakeResidentRepo(), testLogger())

	_, err := svc.Create(wargaActor(100), CreateResidentInput{NIK: "1", FullName: "x"})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestVerifyResident_RTInOwnTerritory(t *testing.T) {
	resident := &models.Resident{ID: 1, UserID: 100, RTNumber: "001", RWNumber: "005"}
	resRepo := newFakeResidentRepo(resident)
	svc := NewResidentService(resRepo, testLogger())

	verified, err := svc.Verify(rtActor("001", "005"), 1)
	require.NoError(t, err)

	assert.True(t, verified.IsVerified)
	require.NotNil(t, verified.VerifiedBy)
	assert.Equal(t, uint(50), *verified.VerifiedBy)
	assert.NotNil(t, verified.VerifiedAt)
}

func TestVerifyResident_RTBlockedOutsideTerritory(t *testing.T) {
	resident := &models.Resident{ID: 1, UserID: 100, RTNumber: "001", RWNumber: "005"}
	svc := NewResidentService(newFakeResidentRepo(resident), testLogger())

	_, err := svc.Verify(rtActor("001", "006"), 1)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	assert.False(t, resident.IsVerified)
}

func TestVerifyResident_OneWayAndIdempotent(t *testing.T) {
	verifier := uint(42)
	resident := &models.Resident{ID: 1, UserID: 100, RTNumber: "001", RWNumber: "005", IsVerified: true, VerifiedBy: &verifier}
	resRepo := newFakeResidentRepo(resident)
	svc := NewResidentService(resRepo, testLogger())

	verified, err := svc.Verify(rtActor("001", "005"), 1)
	require.NoError(t, err)

	// Already verified: nothing is rewritten, the original verifier stays.
	assert.Equal(t, uint(42), *verified.VerifiedBy)
	assert.Empty(t, resRepo.updated)
}

func TestVerifyResident_WargaForbidden(t *testing.T) {
	resident := &models.Resident{ID: 1, UserID: 100, RTNumber: "001", RWNumber: "005"}
	svc := NewResidentService(newFakeResidentRepo(resident), testLogger())

	_, err := svc.Verify(wargaActor(100), 1)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestGetResident_WargaOwnAndFamilyOnly(t *testing.T) {
	family := uint(7)
	self := &models.Resident{ID: 1, UserID: 100, RTNumber: "001", RWNumber: "005", FamilyID: &family}
	relative := &models.Resident{ID: 2, UserID: 101, RTNumber: "001", RWNumber: "005", FamilyID: &family}
	neighbor := &models.Resident{ID: 3, UserID: 102, RTNumber: "001", RWNumber: "005"}
	svc := NewResidentService(newFakeResidentRepo(self, relative, neighbor), testLogger())

	actor := wargaActor(100)
	actor.FamilyID = &family

	_, err := svc.Get(actor, 1)
	assert.NoError(t, err)

	_, err = svc.Get(actor, 2)
	assert.NoError(t, err)

	_, err = svc.Get(actor, 3)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestListResidents_RTPinnedToOwnPair(t *testing.T) {
	a := &models.Resident{ID: 1, UserID: 100, RTNumber: "001", RWNumber: "005"}
	b := &models.Resident{ID: 2, UserID: 101, RTNumber: "001", RWNumber: "006"}
	svc := NewResidentService(newFakeResidentRepo(a, b), testLogger())

	// The filter asks for a foreign pair; RT scoping overrides it.
	list, total, err := svc.List(rtActor("001", "005"), repository.ResidentFilter{RTNumber: "001", RWNumber: "006"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, uint(1), list[0].ID)
}

func TestListResidents_WargaNeedsFamily(t *testing.T) {
	svc := NewResidentService(newFakeResidentRepo(), testLogger())

	_, _, err := svc.List(wargaActor(100), repository.ResidentFilter{})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestUpdateResident_FamilyMustExist(t *testing.T) {
	resident := &models.Resident{ID: 1, UserID: 100, RTNumber: "001", RWNumber: "005"}
	resRepo := newFakeResidentRepo(resident)
	svc := NewResidentService(resRepo, testLogger())

	missing := uint(9)
	_, err := svc.Update(wargaActor(100), 1, UpdateResidentInput{FamilyID: &missing})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	resRepo.families[9] = &models.Family{ID: 9}
	updated, err := svc.Update(wargaActor(100), 1, UpdateResidentInput{FamilyID: &missing})
	require.NoError(t, err)
	require.NotNil(t, updated.FamilyID)
	assert.Equal(t, uint(9), *updated.FamilyID)
}

func TestExportResidents_WargaForbidden(t *testing.T) {
	svc := NewResidentService(newFakeResidentRepo(), testLogger())

	_, _, err := svc.ExportToExcel(wargaActor(100), repository.ResidentFilter{})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestExportResidents_ProducesWorkbook(t *testing.T) {
	a := &models.Resident{ID: 1, UserID: 100, NIK: "3201010101010001", FullName: "Andi", RTNumber: "001", RWNumber: "005", IsVerified: true}
	svc := NewResidentService(newFakeResidentRepo(a), testLogger())

	data, filename, err := svc.ExportToExcel(rtActor("001", "005"), repository.ResidentFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, filename, "data_warga_")
	assert.Contains(t, filename, ".xlsx")
}
