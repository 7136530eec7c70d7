package model

import "time"

// Role groups a set of permissions assignable to admins.
type Role struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRoleRequest is the payload for creating a role.
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Permissions []string `json:"permissions" binding:"required"`
}

// UpdateRoleRequest is the payload for updating a role.
type UpdateRoleRequest struct {
	Name        string   `json:"name" binding:"omitempty,min=2,max=100"`
	Permissions []string `json:"permissions" binding:"omitempty"`
}
