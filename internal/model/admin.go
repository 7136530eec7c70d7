package model

import "time"

// Admin is an administrator account with an assigned role.
type Admin struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       int       `json:"role_id"`
	RoleName     string    `json:"role_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminLoginRequest is the payload for admin login.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateAdminRequest is the payload for creating an admin account.
type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=256"`
	Email    string `json:"email" binding:"required,email,max=256"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	RoleID   int    `json:"role_id" binding:"required,min=1"`
}

// UpdateAdminRequest is the payload for updating an admin account.
type UpdateAdminRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=256"`
	Email    string `json:"email" binding:"omitempty,email,max=256"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
	RoleID   int    `json:"role_id" binding:"omitempty,min=1"`
}
