package shared

import (
	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type ServiceSnapshot struct {
	ID        uuid.UUID
	Name      string
	CostCents int64
	IsActive  bool
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         string
	PasswordHash string
	IsActive     bool
}

func (u *UserSnapshot) IsActiveDecorator() bool {
	return u != nil && u.IsActive && u.Role == "decorator"
}
