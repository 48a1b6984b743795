package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
)

var docTerritory = authz.Territory{RTNumber: "001", RWNumber: "002"}

func adminActor() authz.Actor {
	return authz.Actor{UserID: 1, Role: models.RoleAdmin}
}

func rtActor(rt, rw string) authz.Actor {
	return authz.Actor{
		UserID:    2,
		Role:      models.RoleRT,
		Territory: &authz.Territory{RTNumber: rt, RWNumber: rw},
	}
}

func wargaActor() authz.Actor {
	return authz.Actor{UserID: 3, Role: models.RoleWarga}
}

func TestDocumentTransition_ValidPaths(t *testing.T) {
	tests := []struct {
		name      string
		current   models.DocumentStatus
		requested models.DocumentStatus
		actor     authz.Actor
		reason    string
	}{
		{"rt processes submission", models.DocumentDiajukan, models.DocumentDiproses, rtActor("001", "002"), ""},
		{"admin processes submission", models.DocumentDiajukan, models.DocumentDiproses, adminActor(), ""},
		{"rt rejects submission", models.DocumentDiajukan, models.DocumentDitolak, rtActor("001", "002"), "data tidak lengkap"},
		{"admin approves", models.DocumentDiproses, models.DocumentDisetujui, adminActor(), ""},
		{"rt rejects in process", models.DocumentDiproses, models.DocumentDitolak, rtActor("001", "002"), "tidak memenuhi syarat"},
		{"admin signs", models.DocumentDisetujui, models.DocumentDitandatangani, adminActor(), ""},
		{"admin completes", models.DocumentDitandatangani, models.DocumentSelesai, adminActor(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AttemptDocumentTransition(tt.current, tt.requested, tt.actor, docTerritory, tt.reason)
			require.NoError(t, err)
			assert.Equal(t, tt.requested, got)
		})
	}
}

func TestDocumentTransition_OffTableIsInvalidForEveryRole(t *testing.T) {
	invalidPairs := []struct {
		current   models.DocumentStatus
		requested models.DocumentStatus
	}{
		{models.DocumentSelesai, models.DocumentDiproses},
		{models.DocumentDitolak, models.DocumentDiajukan},
		{models.DocumentDiajukan, models.DocumentDisetujui},
		{models.DocumentDiajukan, models.DocumentSelesai},
		{models.DocumentDiproses, models.DocumentDitandatangani},
		{models.DocumentDisetujui, models.DocumentSelesai},
		{models.DocumentDisetujui, models.DocumentDiajukan},
		{models.DocumentDitandatangani, models.DocumentDitolak},
	}

	actors := []authz.Actor{adminActor(), rtActor("001", "002"), wargaActor()}

	for _, pair := range invalidPairs {
		for _, actor := range actors {
			_, err := AttemptDocumentTransition(pair.current, pair.requested, actor, docTerritory, "alasan")
			require.Error(t, err, "%s -> %s should be invalid", pair.current, pair.requested)
			assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err),
				"%s -> %s by %s", pair.current, pair.requested, actor.Role)
		}
	}
}

func TestDocumentTransition_RoleMismatchIsForbidden(t *testing.T) {
	// RT outside its own territory.
	_, err := AttemptDocumentTransition(models.DocumentDiajukan, models.DocumentDiproses, rtActor("001", "003"), docTerritory, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbiddenTransition, apperr.KindOf(err))

	// Approval is ADMIN/RW only, even for the matching RT.
	_, err = AttemptDocumentTransition(models.DocumentDiproses, models.DocumentDisetujui, rtActor("001", "002"), docTerritory, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbiddenTransition, apperr.KindOf(err))

	// WARGA never triggers transitions.
	_, err = AttemptDocumentTransition(models.DocumentDiajukan, models.DocumentDiproses, wargaActor(), docTerritory, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbiddenTransition, apperr.KindOf(err))
}

func TestDocumentTransition_RejectionRequiresReason(t *testing.T) {
	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := AttemptDocumentTransition(models.DocumentDiajukan, models.DocumentDitolak, adminActor(), docTerritory, reason)
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	}

	// The reason rule applies regardless of transition validity.
	_, err := AttemptDocumentTransition(models.DocumentSelesai, models.DocumentDitolak, adminActor(), docTerritory, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestIsTerminalDocumentStatus(t *testing.T) {
	assert.True(t, IsTerminalDocumentStatus(models.DocumentSelesai))
	assert.True(t, IsTerminalDocumentStatus(models.DocumentDitolak))
	assert.False(t, IsTerminalDocumentStatus(models.DocumentDiajukan))
	assert.False(t, IsTerminalDocumentStatus(models.DocumentDiproses))
	assert.False(t, IsTerminalDocumentStatus(models.DocumentDisetujui))
	assert.False(t, IsTerminalDocumentStatus(models.DocumentDitandatangani))
}

func TestComplaintTransition(t *testing.T) {
	territory := authz.Territory{RTNumber: "004", RWNumber: "001"}

	got, err := AttemptComplaintTransition(models.ComplaintDiterima, models.ComplaintDitindaklanjuti, rtActor("004", "001"), territory)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintDitindaklanjuti, got)

	got, err = AttemptComplaintTransition(models.ComplaintDitindaklanjuti, models.ComplaintSelesai, adminActor(), territory)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintSelesai, got)

	// Terminal statuses have no outgoing transitions.
	_, err = AttemptComplaintTransition(models.ComplaintSelesai, models.ComplaintDiterima, adminActor(), territory)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))

	// RT from another territory cannot handle the complaint.
	_, err = AttemptComplaintTransition(models.ComplaintDiterima, models.ComplaintDitolak, rtActor("004", "002"), territory)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbiddenTransition, apperr.KindOf(err))

	// WARGA cannot handle complaints.
	_, err = AttemptComplaintTransition(models.ComplaintDiterima, models.ComplaintDitolak, wargaActor(), territory)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbiddenTransition, apperr.KindOf(err))
}
