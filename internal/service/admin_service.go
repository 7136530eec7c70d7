package service

import (
	"context"

	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/repository"
)

// AdminService handles admin account business logic.
type AdminService struct {
	adminRepo *repository.AdminRepository
	roleRepo  *repository.RoleRepository
	auth      *AuthService
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo *repository.AdminRepository, roleRepo *repository.RoleRepository, auth *AuthService) *AdminService {
	return &AdminService{adminRepo: adminRepo, roleRepo: roleRepo, auth: auth}
}

// GetByEmail retrieves an admin by email.
func (s *AdminService) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return s.adminRepo.GetByEmail(ctx, email)
}

// GetByID retrieves an admin by ID.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

// GetPermissions retrieves permission codes for an admin's role.
func (s *AdminService) GetPermissions(ctx context.Context, roleID int) ([]string, error) {
	return s.roleRepo.GetPermissionsByRoleID(ctx, roleID)
}

// List retrieves all admins.
func (s *AdminService) List(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if admins == nil {
		admins = []model.Admin{}
	}
	return admins, nil
}

// Create creates a new admin with a hashed password.
func (s *AdminService) Create(ctx context.Context, req *model.CreateAdminRequest) (*model.Admin, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       req.RoleID,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return s.adminRepo.GetByID(ctx, admin.ID)
}

// Update modifies an admin's details. Password is rehashed only when
// provided.
func (s *AdminService) Update(ctx context.Context, id int, req *model.UpdateAdminRequest) (*model.Admin, error) {
	admin := &model.Admin{
		ID:     id,
		Name:   req.Name,
		Email:  req.Email,
		RoleID: req.RoleID,
	}
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = hash
	}
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return s.adminRepo.GetByID(ctx, id)
}

// Delete removes an admin.
func (s *AdminService) Delete(ctx context.Context, id int) error {
	return s.adminRepo.Delete(ctx, id)
}

// ListRoles retrieves all roles with their permissions.
func (s *AdminService) ListRoles(ctx context.Context) ([]model.Role, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []model.Role{}
	}
	return roles, nil
}

// GetRole retrieves one role with its permissions.
func (s *AdminService) GetRole(ctx context.Context, id int) (*model.Role, error) {
	return s.roleRepo.GetByID(ctx, id)
}

// CreateRole creates a role and assigns its permissions.
func (s *AdminService) CreateRole(ctx context.Context, req *model.CreateRoleRequest) (*model.Role, error) {
	id, err := s.roleRepo.Create(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.roleRepo.AssignPermissions(ctx, id, req.Permissions); err != nil {
		return nil, err
	}
	return s.roleRepo.GetByID(ctx, id)
}

// UpdateRole renames a role and replaces its permission set when one is
// provided.
func (s *AdminService) UpdateRole(ctx context.Context, id int, req *model.UpdateRoleRequest) (*model.Role, error) {
	if req.Name != "" {
		if err := s.roleRepo.UpdateName(ctx, id, req.Name); err != nil {
			return nil, err
		}
	}
	if req.Permissions != nil {
		if err := s.roleRepo.ClearPermissions(ctx, id); err != nil {
			return nil, err
		}
		if err := s.roleRepo.AssignPermissions(ctx, id, req.Permissions); err != nil {
			return nil, err
		}
	}
	return s.roleRepo.GetByID(ctx, id)
}

// DeleteRole removes a role and its permission links.
func (s *AdminService) DeleteRole(ctx context.Context, id int) error {
	if err := s.roleRepo.ClearPermissions(ctx, id); err != nil {
		return err
	}
	return s.roleRepo.Delete(ctx, id)
}
