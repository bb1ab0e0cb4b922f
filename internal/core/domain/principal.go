package domain

import "github.com/google/uuid"

const RoleAdmin = "admin"

// Principal is an authenticated actor as yielded by the auth collaborator.
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"rol"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
