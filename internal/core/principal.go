package core

import "github.com/google/uuid"

// Roles understood by the service layer. Admin implies manager.
const (
	RoleBasic   = "basic"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Principal identifies the user a service request is acting on behalf of.
// It is populated by the transport layer from a verified token and checked
// by every service operation before any repository call.
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
}

func (p Principal) IsZero() bool {
	return p.ID == uuid.Nil
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsManager reports whether the principal holds manager rights. Admins do.
func (p Principal) IsManager() bool {
	return p.Role == RoleManager || p.Role == RoleAdmin
}

// IsSelf reports whether the principal is the user identified by id.
func (p Principal) IsSelf(id uuid.UUID) bool {
	return p.ID != uuid.Nil && p.ID == id
}
