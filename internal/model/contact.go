package model

import "time"

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=256"`
	Email   string `json:"email" binding:"required,email,max=256"`
	Subject string `json:"subject" binding:"omitempty,max=256"`
	Message string `json:"message" binding:"required,min=5,max=5000"`
}
