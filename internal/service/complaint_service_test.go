package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
)

func newComplaintService(complaintRepo *fakeComplaintRepo, resRepo *fakeResidentRepo, notifRepo *fakeNotificationRepo) ComplaintService {
	return NewComplaintService(complaintRepo, resRepo, notifRepo, testLogger())
}

func TestCreateComplaint_InheritsResidentTerritory(t *testing.T) {
	resRepo := newFakeResidentRepo(verifiedResident(1, 100))
	svc := newComplaintService(newFakeComplaintRepo(), resRepo, &fakeNotificationRepo{})

	complaint, err := svc.Create(wargaActor(100), CreateComplaintInput{
		Title:       "Lampu jalan mati",
		Description: "Lampu di gang 3 mati sejak kemarin",
		Category:    "infrastruktur",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ComplaintDiterima, complaint.Status)
	assert.Equal(t, "001", complaint.RTNumber)
	assert.Equal(t, "005", complaint.RWNumber)
	assert.Equal(t, uint(100), complaint.CreatedBy)
}

func TestUpdateComplaint_CreatorLockedAfterHandling(t *testing.T) {
	complaint := &models.Complaint{ID: 1, Title: "x", Status: models.ComplaintDitindaklanjuti, CreatedBy: 100, RTNumber: "001", RWNumber: "005"}
	svc := newComplaintService(newFakeComplaintRepo(complaint), newFakeResidentRepo(), &fakeNotificationRepo{})

	_, err := svc.Update(wargaActor(100), 1, UpdateComplaintInput{Title: "y"})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestUpdateComplaint_CreatorEditsWhileUntouched(t *testing.T) {
	complaint := &models.Complaint{ID: 1, Title: "x", Status: models.ComplaintDiterima, CreatedBy: 100, RTNumber: "001", RWNumber: "005"}
	svc := newComplaintService(newFakeComplaintRepo(complaint), newFakeResidentRepo(), &fakeNotificationRepo{})

	updated, err := svc.Update(wargaActor(100), 1, UpdateComplaintInput{Title: "y"})
	require.NoError(t, err)
	assert.Equal(t, "y", updated.Title)
}

func TestHandleComplaint_RTInOwnTerritory(t *testing.T) {
	complaint := &models.Complaint{ID: 1, Title: "x", Status: models.ComplaintDiterima, CreatedBy: 100, RTNumber: "001", RWNumber: "005"}
	notifRepo := &fakeNotificationRepo{}
	svc := newComplaintService(newFakeComplaintRepo(complaint), newFakeResidentRepo(), notifRepo)

	updated, err := svc.Handle(rtActor("001", "005"), 1, HandleComplaintInput{
		Status:   models.ComplaintDitindaklanjuti,
		Response: "Sedang dikerjakan",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ComplaintDitindaklanjuti, updated.Status)
	require.NotNil(t, updated.HandledBy)
	assert.Equal(t, uint(50), *updated.HandledBy)
	assert.Equal(t, "Sedang dikerjakan", updated.Response)

	// The creator is notified.
	require.Len(t, notifRepo.created, 1)
	assert.Equal(t, uint(100), notifRepo.created[0].UserID)
}

func TestHandleComplaint_WargaForbidden(t *testing.T) {
	complaint := &models.Complaint{ID: 1, Status: models.ComplaintDiterima, CreatedBy: 100, RTNumber: "001", RWNumber: "005"}
	svc := newComplaintService(newFakeComplaintRepo(complaint), newFakeResidentRepo(), &fakeNotificationRepo{})

	_, err := svc.Handle(wargaActor(100), 1, HandleComplaintInput{Status: models.ComplaintDitindaklanjuti})
	assert.True(t, apperr.IsKind(err, apperr.KindForbiddenTransition))
}

func TestHandleComplaint_TerminalIsFinal(t *testing.T) {
	complaint := &models.Complaint{ID: 1, Status: models.ComplaintSelesai, CreatedBy: 100, RTNumber: "001", RWNumber: "005"}
	svc := newComplaintService(newFakeComplaintRepo(complaint), newFakeResidentRepo(), &fakeNotificationRepo{})

	admin := authz.Actor{UserID: 1, Role: models.RoleAdmin}
	_, err := svc.Handle(admin, 1, HandleComplaintInput{Status: models.ComplaintDitindaklanjuti})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidTransition))
}
