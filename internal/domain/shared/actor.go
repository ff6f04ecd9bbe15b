package shared

import "github.com/google/uuid"

// Role is the coarse permission level carried in the auth token
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleFinance Role = "finance"
	RoleStaff   Role = "staff"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleFinance, RoleStaff:
		return true
	}
	return false
}

// Actor identifies the authenticated user performing an operation
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// IsOwner reports whether the actor holds the owner role.
// Owners pass the locked-trip gate.
func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}

// CanDeletePayments reports whether the actor may remove ledger entries
func (a Actor) CanDeletePayments() bool {
	return a.Role == RoleOwner || a.Role == RoleFinance
}

// UserIDPtr returns the actor's user id as a pointer, nil for the zero id
func (a Actor) UserIDPtr() *uuid.UUID {
	if a.UserID == uuid.Nil {
		return nil
	}
	id := a.UserID
	return &id
}
