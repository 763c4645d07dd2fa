package user

import "github.com/google/uuid"

// Principal is the caller as resolved by the auth collaborator.
// OrganizationID is set for organization admins and may be set for users.
type Principal struct {
	UserID         uuid.UUID
	Role           Role
	OrganizationID *uuid.UUID
}

func (p Principal) OrganizationScope() uuid.UUID {
	if p.OrganizationID == nil {
		return uuid.Nil
	}
	return *p.OrganizationID
}
