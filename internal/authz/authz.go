package authz

import (
	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/models"
)

// Territory is the (rtNumber, rwNumber) pair identifying an administrative
// unit. Checks always compare the full pair; RT numbering repeats across RWs.
type Territory struct {
	RTNumber string
	RWNumber string
}

// Equal reports whether both rtNumber and rwNumber match
func (t Territory) Equal(other Territory) bool {
	return t.RTNumber == other.RTNumber && t.RWNumber == other.RWNumber
}

// Actor is the caller identity as resolved by the auth middleware
type Actor struct {
	UserID     uint
	Role       models.Role
	Territory  *Territory
	ResidentID *uint
	FamilyID   *uint
}

// Authenticated reports whether the actor carries a real identity
func (a Actor) Authenticated() bool {
	return a.UserID != 0
}

// IsAdminOrRW reports whether the actor holds a full-override role
func (a Actor) IsAdminOrRW() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleRW
}

// Subject describes the target entity for an access decision. Services build
// a Subject from the concrete entity; the predicate never touches the store.
type Subject struct {
	// OwnerUserID is the owning user (createdBy/authorId/requesterId or the
	// record's own user for self-records). Zero means no individual owner.
	OwnerUserID uint
	// FamilyID groups family-shared records; nil when not family-scoped.
	FamilyID *uint
	// Territory is the entity's owning (rt, rw) pair; nil when the entity
	// has no territorial scope.
	Territory *Territory
	// Locked marks a locked or terminal state; it blocks owner mutation but
	// not owner reads.
	Locked bool
}

// Decision is the outcome of an access check
type Decision struct {
	Allowed bool
	Reason  apperr.Kind
	Detail  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason apperr.Kind, detail string) Decision {
	return Decision{Allowed: false, Reason: reason, Detail: detail}
}

// Err converts a deny decision into a typed error; nil when allowed
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperr.New(d.Reason, d.Detail)
}

// CanRead decides whether the actor may read the subject.
// ADMIN and RW always pass. The owner always reads their own records. RT
// reads records inside its exact territorial pair. WARGA reads own and
// family records.
func CanRead(actor Actor, sub Subject) Decision {
	if !actor.Authenticated() {
		return deny(apperr.KindAuthRequired, "authentication required")
	}
	if actor.IsAdminOrRW() {
		return allow()
	}
	if sub.OwnerUserID != 0 && sub.OwnerUserID == actor.UserID {
		return allow()
	}

	switch actor.Role {
	case models.RoleRT:
		if actor.Territory != nil && sub.Territory != nil && actor.Territory.Equal(*sub.Territory) {
			return allow()
		}
		return deny(apperr.KindForbidden, "outside your RT")
	case models.RoleWarga:
		if actor.FamilyID != nil && sub.FamilyID != nil && *actor.FamilyID == *sub.FamilyID {
			return allow()
		}
		return deny(apperr.KindForbidden, "not your record")
	}

	return deny(apperr.KindForbidden, "access denied")
}

// CanMutate decides whether the actor may update or delete the subject.
// Same rules as CanRead except owners lose mutation once the subject is in
// a locked or terminal state. ADMIN and RW override the lock.
func CanMutate(actor Actor, sub Subject) Decision {
	if !actor.Authenticated() {
		return deny(apperr.KindAuthRequired, "authentication required")
	}
	if actor.IsAdminOrRW() {
		return allow()
	}
	if sub.OwnerUserID != 0 && sub.OwnerUserID == actor.UserID {
		if sub.Locked {
			return deny(apperr.KindForbidden, "record can no longer be modified")
		}
		return allow()
	}

	if actor.Role == models.RoleRT {
		if actor.Territory != nil && sub.Territory != nil && actor.Territory.Equal(*sub.Territory) {
			return allow()
		}
		return deny(apperr.KindForbidden, "outside your RT")
	}

	return deny(apperr.KindForbidden, "access denied")
}

// CanReadForum decides read access for forum content, which is globally
// readable by any authenticated user; only mutation is territory/role gated.
func CanReadForum(actor Actor) Decision {
	if !actor.Authenticated() {
		return deny(apperr.KindAuthRequired, "authentication required")
	}
	return allow()
}

// RequireRole allows only the listed roles
func RequireRole(actor Actor, roles ...models.Role) Decision {
	if !actor.Authenticated() {
		return deny(apperr.KindAuthRequired, "authentication required")
	}
	for _, role := range roles {
		if actor.Role == role {
			return allow()
		}
	}
	return deny(apperr.KindForbidden, "insufficient role")
}
