package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
)

func wargaActor(userID uint) authz.Actor {
	return authz.Actor{
		UserID:    userID,
		Role:      models.RoleWarga,
		Territory: &authz.Territory{RTNumber: "001", RWNumber: "005"},
	}
}

func rtActor(rtNumber, rwNumber string) authz.Actor {
	return authz.Actor{
		UserID:    50,
		Role:      models.RoleRT,
		Territory: &authz.Territory{RTNumber: rtNumber, RWNumber: rwNumber},
	}
}

func verifiedResident(id, userID uint) *models.Resident {
	return &models.Resident{
		ID:         id,
		UserID:     userID,
		NIK:        "3201010101010001",
		FullName:   "Andi",
		RTNumber:   "001",
		RWNumber:   "005",
		IsVerified: true,
	}
}

func newDocumentService(docRepo *fakeDocumentRepo, resRepo *fakeResidentRepo, notifRepo *fakeNotificationRepo) DocumentService {
	return NewDocumentService(docRepo, resRepo, notifRepo, testLogger())
}

func TestRequestDocument_CreatesPending(t *testing.T) {
	docRepo := newFakeDocumentRepo()
	resRepo := newFakeResidentRepo(verifiedResident(1, 100))
	svc := newDocumentService(docRepo, resRepo, &fakeNotificationRepo{})

	document, err := svc.Request(wargaActor(100), RequestDocumentInput{
		Type:    "domisili",
		Purpose: "Melamar pekerjaan",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DocumentDiajukan, document.Status)
	assert.Equal(t, uint(100), document.RequesterID)
	assert.Equal(t, "001", document.RTNumber)
	assert.Equal(t, "005", document.RWNumber)
	assert.True(t, strings.HasPrefix(document.DocumentNumber, "DOC-DOMISILI-"))
}

func TestRequestDocument_RequiresVerifiedProfile(t *testing.T) {
	resident := verifiedResident(1, 100)
	resident.IsVerified = false
	svc := newDocumentService(newFakeDocumentRepo(), newFakeResidentRepo(resident), &fakeNotificationRepo{})

	_, err := svc.Request(wargaActor(100), RequestDocumentInput{Type: "domisili", Purpose: "x"})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestRequestDocument_WargaOnly(t *testing.T) {
	svc := newDocumentService(newFakeDocumentRepo(), newFakeResidentRepo(), &fakeNotificationRepo{})

	_, err := svc.Request(rtActor("001", "005"), RequestDocumentInput{Type: "domisili", Purpose: "x"})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestProcessDocument_RTAdvancesInOwnTerritory(t *testing.T) {
	doc := &models.Document{ID: 1, Status: models.DocumentDiajukan, RequesterID: 100, RTNumber: "001", RWNumber: "005"}
	docRepo := newFakeDocumentRepo(doc)
	notifRepo := &fakeNotificationRepo{}
	svc := newDocumentService(docRepo, newFakeResidentRepo(verifiedResident(1, 100)), notifRepo)

	updated, err := svc.Process(rtActor("001", "005"), 1, ProcessDocumentInput{Status: models.DocumentDiproses})
	require.NoError(t, err)

	assert.Equal(t, models.DocumentDiproses, updated.Status)
	require.NotNil(t, updated.ProcessedBy)
	assert.Equal(t, uint(50), *updated.ProcessedBy)

	// The requester is notified of the change.
	require.Len(t, notifRepo.created, 1)
	assert.Equal(t, uint(100), notifRepo.created[0].UserID)
}

func TestProcessDocument_RTBlockedOutsideTerritory(t *testing.T) {
	doc := &models.Document{ID: 1, Status: models.DocumentDiajukan, RequesterID: 100, RTNumber: "001", RWNumber: "005"}
	svc := newDocumentService(newFakeDocumentRepo(doc), newFakeResidentRepo(), &fakeNotificationRepo{})

	// Same RT number, different RW: the full pair must match.
	_, err := svc.Process(rtActor("001", "006"), 1, ProcessDocumentInput{Status: models.DocumentDiproses})
	assert.True(t, apperr.IsKind(err, apperr.KindForbiddenTransition))
}

func TestProcessDocument_RTCannotApprove(t *testing.T) {
	doc := &models.Document{ID: 1, Status: models.DocumentDiproses, RequesterID: 100, RTNumber: "001", RWNumber: "005"}
	svc := newDocumentService(newFakeDocumentRepo(doc), newFakeResidentRepo(), &fakeNotificationRepo{})

	_, err := svc.Process(rtActor("001", "005"), 1, ProcessDocumentInput{Status: models.DocumentDisetujui})
	assert.True(t, apperr.IsKind(err, apperr.KindForbiddenTransition))
}

func TestProcessDocument_InvalidTransition(t *testing.T) {
	doc := &models.Document{ID: 1, Status: models.DocumentDiajukan, RequesterID: 100, RTNumber: "001", RWNumber: "005"}
	svc := newDocumentService(newFakeDocumentRepo(doc), newFakeResidentRepo(), &fakeNotificationRepo{})

	admin := authz.Actor{UserID: 1, Role: models.RoleAdmin}
	_, err := svc.Process(admin, 1, ProcessDocumentInput{Status: models.DocumentSelesai})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidTransition))
}

func TestProcessDocument_RejectionRequiresReason(t *testing.T) {
	doc := &models.Document{ID: 1, Status: models.DocumentDiproses, RequesterID: 100, RTNumber: "001", RWNumber: "005"}
	docRepo := newFakeDocumentRepo(doc)
	svc := newDocumentService(docRepo, newFakeResidentRepo(), &fakeNotificationRepo{})

	admin := authz.Actor{UserID: 1, Role: models.RoleAdmin}

	for _, reason := range []string{"", "   "} {
		_, err := svc.Process(admin, 1, ProcessDocumentInput{Status: models.DocumentDitolak, RejectionReason: reason})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput), "reason %q", reason)
	}
	assert.Equal(t, models.DocumentDiproses, docRepo.documents[1].Status, "status unchanged after rejected input")

	updated, err := svc.Process(admin, 1, ProcessDocumentInput{Status: models.DocumentDitolak, RejectionReason: "berkas tidak lengkap"})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentDitolak, updated.Status)
	assert.Equal(t, "berkas tidak lengkap", updated.RejectionReason)
}

func TestProcessDocument_CompletionStampsTime(t *testing.T) {
	doc := &models.Document{ID: 1, Status: models.DocumentDitandatangani, RequesterID: 100, RTNumber: "001", RWNumber: "005"}
	svc := newDocumentService(newFakeDocumentRepo(doc), newFakeResidentRepo(), &fakeNotificationRepo{})

	admin := authz.Actor{UserID: 1, Role: models.RoleAdmin}
	updated, err := svc.Process(admin, 1, ProcessDocumentInput{Status: models.DocumentSelesai})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentSelesai, updated.Status)
	require.NotNil(t, updated.CompletedAt)
}

func TestProcessDocument_NotFound(t *testing.T) {
	svc := newDocumentService(newFakeDocumentRepo(), newFakeResidentRepo(), &fakeNotificationRepo{})

	admin := authz.Actor{UserID: 1, Role: models.RoleAdmin}
	_, err := svc.Process(admin, 42, ProcessDocumentInput{Status: models.DocumentDiproses})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGetDocument_FamilyMemberMayRead(t *testing.T) {
	family := uint(7)
	requester := verifiedResident(1, 100)
	requester.FamilyID = &family
	doc := &models.Document{ID: 1, Status: models.DocumentDiajukan, RequesterID: 100, RTNumber: "001", RWNumber: "005"}
	svc := newDocumentService(newFakeDocumentRepo(doc), newFakeResidentRepo(requester), &fakeNotificationRepo{})

	sibling := wargaActor(101)
	sibling.FamilyID = &family
	_, err := svc.Get(sibling, 1)
	assert.NoError(t, err)

	stranger := wargaActor(102)
	_, err = svc.Get(stranger, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestListDocuments_ScopedByRole(t *testing.T) {
	docs := []*models.Document{
		{ID: 1, RequesterID: 100, RTNumber: "001", RWNumber: "005"},
		{ID: 2, RequesterID: 101, RTNumber: "002", RWNumber: "005"},
		{ID: 3, RequesterID: 102, RTNumber: "001", RWNumber: "006"},
	}
	svc := newDocumentService(newFakeDocumentRepo(docs...), newFakeResidentRepo(), &fakeNotificationRepo{})

	// RT sees only its own territorial pair.
	list, total, err := svc.List(rtActor("001", "005"), repository.DocumentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, uint(1), list[0].ID)

	// WARGA sees only own requests.
	list, total, err = svc.List(wargaActor(101), repository.DocumentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, uint(2), list[0].ID)
}
