package model

import "github.com/google/uuid"

// Principal is the authenticated identity a request acts as. It is passed
// by value into every service entry point; the services never look roles
// up from ambient state.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsCitizen() bool {
	return p.Role == RoleCitizen
}

// CanViewReport reports whether the principal may see a report owned by
// the given citizen. Admins see everything, citizens only their own.
func (p Principal) CanViewReport(reportedByID uuid.UUID) bool {
	return p.IsAdmin() || p.UserID == reportedByID
}
