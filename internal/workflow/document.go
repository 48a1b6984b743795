package workflow

import (
	"strings"

	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
)

// rule states who may perform a transition. adminRW is true on every row;
// rtOwnTerritory additionally admits an RT actor whose territorial pair
// matches the document's.
type rule struct {
	adminRW        bool
	rtOwnTerritory bool
}

// documentTransitions is the fixed document workflow. Any (current,
// requested) pair absent from this table is invalid regardless of role.
var documentTransitions = map[models.DocumentStatus]map[models.DocumentStatus]rule{
	models.DocumentDiajukan: {
		models.DocumentDiproses: {adminRW: true, rtOwnTerritory: true},
		models.DocumentDitolak:  {adminRW: true, rtOwnTerritory: true},
	},
	models.DocumentDiproses: {
		models.DocumentDisetujui: {adminRW: true},
		models.DocumentDitolak:   {adminRW: true, rtOwnTerritory: true},
	},
	models.DocumentDisetujui: {
		models.DocumentDitandatangani: {adminRW: true},
	},
	models.DocumentDitandatangani: {
		models.DocumentSelesai: {adminRW: true},
	},
}

// IsTerminalDocumentStatus reports whether no further transition exists
func IsTerminalDocumentStatus(s models.DocumentStatus) bool {
	return s == models.DocumentSelesai || s == models.DocumentDitolak
}

// AttemptDocumentTransition validates a requested document status change
// against the workflow table and the actor's role and territory. It is
// stateless: the caller persists the returned status after an Ok result.
//
// Rejections require a non-empty reason; an empty or whitespace-only reason
// is INVALID_INPUT regardless of role or transition validity. A pair absent
// from the table is INVALID_TRANSITION regardless of role. A valid pair with
// an insufficient role is FORBIDDEN_TRANSITION, so callers can render "not
// allowed for your role" and "that status change makes no sense" differently.
func AttemptDocumentTransition(
	current, requested models.DocumentStatus,
	actor authz.Actor,
	docTerritory authz.Territory,
	rejectionReason string,
) (models.DocumentStatus, error) {
	if requested == models.DocumentDitolak && strings.TrimSpace(rejectionReason) == "" {
		return "", apperr.New(apperr.KindInvalidInput, "rejection requires a reason")
	}

	next, ok := documentTransitions[current]
	if !ok {
		return "", apperr.Newf(apperr.KindInvalidTransition, "no transitions from status %s", current)
	}
	r, ok := next[requested]
	if !ok {
		return "", apperr.Newf(apperr.KindInvalidTransition, "cannot move document from %s to %s", current, requested)
	}

	if !roleSatisfies(r, actor, docTerritory) {
		return "", apperr.Newf(apperr.KindForbiddenTransition, "role %s may not move document from %s to %s", actor.Role, current, requested)
	}

	return requested, nil
}

// complaintTransitions is the complaint handling workflow. Rows follow the
// same mechanism as documents; every transition admits RT within territory.
var complaintTransitions = map[models.ComplaintStatus]map[models.ComplaintStatus]rule{
	models.ComplaintDiterima: {
		models.ComplaintDitindaklanjuti: {adminRW: true, rtOwnTerritory: true},
		models.ComplaintDitolak:         {adminRW: true, rtOwnTerritory: true},
	},
	models.ComplaintDitindaklanjuti: {
		models.ComplaintSelesai: {adminRW: true, rtOwnTerritory: true},
		models.ComplaintDitolak: {adminRW: true, rtOwnTerritory: true},
	},
}

// IsTerminalComplaintStatus reports whether no further transition exists
func IsTerminalComplaintStatus(s models.ComplaintStatus) bool {
	return s == models.ComplaintSelesai || s == models.ComplaintDitolak
}

// AttemptComplaintTransition validates a requested complaint status change.
// Same contract as AttemptDocumentTransition.
func AttemptComplaintTransition(
	current, requested models.ComplaintStatus,
	actor authz.Actor,
	complaintTerritory authz.Territory,
) (models.ComplaintStatus, error) {
	next, ok := complaintTransitions[current]
	if !ok {
		return "", apperr.Newf(apperr.KindInvalidTransition, "no transitions from status %s", current)
	}
	r, ok := next[requested]
	if !ok {
		return "", apperr.Newf(apperr.KindInvalidTransition, "cannot move complaint from %s to %s", current, requested)
	}

	if !roleSatisfies(r, actor, complaintTerritory) {
		return "", apperr.Newf(apperr.KindForbiddenTransition, "role %s may not move complaint from %s to %s", actor.Role, current, requested)
	}

	return requested, nil
}

func roleSatisfies(r rule, actor authz.Actor, target authz.Territory) bool {
	if r.adminRW && actor.IsAdminOrRW() {
		return true
	}
	if r.rtOwnTerritory && actor.Role == models.RoleRT {
		return actor.Territory != nil && actor.Territory.Equal(target)
	}
	return false
}
