package service

import (
	"context"

	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/repository"
	"github.com/lakshaya-counselling/assessment-backend/internal/response"
	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
)

// UserService handles candidate business logic.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// Register creates a candidate account with a hashed password. New accounts
// start with every battery disabled and every status Pending; an admin
// assigns tests afterwards.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNo:      req.PhoneNo,
		Education:    req.Education,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

// GetByEmail retrieves a candidate by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// GetByID retrieves a candidate by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListCandidates retrieves candidates with pagination and optional search
// over name and email.
func (s *UserService) ListCandidates(ctx context.Context, search string, page, perPage int) ([]model.User, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	users, total, err := s.userRepo.List(ctx, search, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []model.User{}
	}

	pagination := response.NewPagination(page, perPage, total)
	return users, pagination, nil
}

// UpdateProfile modifies a candidate's own profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, id int, req *model.UpdateProfileRequest) (*model.User, error) {
	if err := s.userRepo.UpdateProfile(ctx, id, req); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// AssignTests toggles battery access flags for a candidate. Unknown keys in
// the request are ignored; flags not present keep their current value.
func (s *UserService) AssignTests(ctx context.Context, id int, req *model.AssignTestsRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	access := user.Access
	for key, enabled := range req.Tests {
		switch key {
		case "firo-b":
			access.FiroB = enabled
		case "work-values":
			access.WorkValues = enabled
		case "general-aptitude":
			access.GeneralAptitude = enabled
		case "interest-inventory":
			access.InterestInventory = enabled
		case "personality-aspect":
			access.PersonalityAspect = enabled
		case "behavior-response":
			access.BehaviorResponse = enabled
		}
	}

	if err := s.userRepo.UpdateAccess(ctx, id, access); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// MarkTestCompleted sets one test's status to Completed for a candidate.
func (s *UserService) MarkTestCompleted(ctx context.Context, id int, t scoring.TestType) error {
	return s.userRepo.SetTestStatus(ctx, id, t, model.TestStatusCompleted)
}

// ResetTestStatus sets one test back to Pending, letting a candidate retake
// it.
func (s *UserService) ResetTestStatus(ctx context.Context, id int, t scoring.TestType) error {
	return s.userRepo.SetTestStatus(ctx, id, t, model.TestStatusPending)
}

// Delete removes a candidate account.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.userRepo.Delete(ctx, id)
}
