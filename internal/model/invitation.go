package model

import "time"

// Invitation records an emailed invite to take the assessment battery.
type Invitation struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Message   string    `json:"message,omitempty"`
	InvitedBy int       `json:"invited_by"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteRequest is the payload for sending an invitation.
type InviteRequest struct {
	Email   string `json:"email" binding:"required,email,max=256"`
	Name    string `json:"name" binding:"omitempty,max=256"`
	Message string `json:"message" binding:"omitempty,max=2000"`
}
