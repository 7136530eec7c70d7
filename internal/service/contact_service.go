package service

import (
	"context"

	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/repository"
)

// ContactService handles public contact form submissions.
type ContactService struct {
	contactRepo *repository.ContactRepository
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo *repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// Submit stores a contact form message.
func (s *ContactService) Submit(ctx context.Context, req *model.ContactRequest) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	id, err := s.contactRepo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = id
	return msg, nil
}

// List retrieves stored contact messages.
func (s *ContactService) List(ctx context.Context, page, perPage int) ([]model.ContactMessage, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	messages, total, err := s.contactRepo.List(ctx, page, perPage)
	if err != nil {
		return nil, 0, err
	}
	if messages == nil {
		messages = []model.ContactMessage{}
	}
	return messages, total, nil
}

// Delete removes a contact message.
func (s *ContactService) Delete(ctx context.Context, id int) error {
	return s.contactRepo.Delete(ctx, id)
}
