package services

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"compliance-backend/apperr"
	"compliance-backend/models"
)

// UserService owns user records, role permissions and the audit trail.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns users with skip/limit pagination.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("id").Offset(skip).Limit(pageLimit(limit)).Find(&users).Error
	return users, err
}

type UpdateUserInput struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	FullName   *string `json:"full_name" validate:"omitempty,max=255"`
	Role       *string `json:"role" validate:"omitempty,oneof=admin manager accountant auditor data_entry client"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive suspended pending"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Password   *string `json:"password" validate:"omitempty,min=8"`
}

// statusTransitionAllowed encodes the user lifecycle: pending activates,
// active and suspended swap freely, and anything may be retired to inactive.
func statusTransitionAllowed(from, to models.UserStatus) bool {
	if from == to || to == models.StatusInactive {
		return true
	}
	switch from {
	case models.StatusPending:
		return to == models.StatusActive
	case models.StatusActive:
		return to == models.StatusSuspended
	case models.StatusSuspended:
		return to == models.StatusActive
	}
	return false
}

// Update patches a user, enforcing the status state machine, and records the
// change in the audit log attributed to actorID.
func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput, actorID uint) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && !statusTransitionAllowed(user.Status, models.UserStatus(*in.Status)) {
		return nil, apperr.ErrValidation
	}
	if in.Email != nil && *in.Email != user.Email {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("email = ? AND id <> ?", *in.Email, id).Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.ErrConflict
		}
	}

	old := snapshotUser(user)

	updates := map[string]any{}
	setIf(updates, "email", in.Email)
	setIf(updates, "full_name", in.FullName)
	setIf(updates, "role", in.Role)
	setIf(updates, "status", in.Status)
	setIf(updates, "phone", in.Phone)
	setIf(updates, "department", in.Department)
	if in.Password != nil {
		if err := user.SetPassword(*in.Password); err != nil {
			return nil, err
		}
		updates["hashed_password"] = user.HashedPassword
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrConflict
		}
		return nil, err
	}

	user, err = s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, actorID, "UPDATE_USER", "user", &id, old, snapshotUser(user))
	return user, nil
}

// Delete removes a user and audits the removal.
func (s *UserService) Delete(ctx context.Context, id uint, actorID uint) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(user).Error; err != nil {
		return err
	}
	s.logAudit(ctx, actorID, "DELETE_USER", "user", &id, snapshotUser(user), nil)
	return nil
}

// Permissions

type CreatePermissionInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Resource    string `json:"resource" validate:"required,max=100"`
	Action      string `json:"action" validate:"required,max=50"`
}

func (s *UserService) CreatePermission(ctx context.Context, in CreatePermissionInput) (*models.Permission, error) {
	perm := models.Permission{
		Name:        in.Name,
		Description: in.Description,
		Resource:    in.Resource,
		Action:      in.Action,
	}
	if err := s.db.WithContext(ctx).Create(&perm).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrConflict
		}
		return nil, err
	}
	return &perm, nil
}

func (s *UserService) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	var perms []models.Permission
	err := s.db.WithContext(ctx).Order("id").Find(&perms).Error
	return perms, err
}

type CreateRolePermissionInput struct {
	Role         string `json:"role" validate:"required,oneof=admin manager accountant auditor data_entry client"`
	PermissionID uint   `json:"permission_id" validate:"required"`
}

func (s *UserService) CreateRolePermission(ctx context.Context, in CreateRolePermissionInput) (*models.RolePermission, error) {
	var perm models.Permission
	if err := s.db.WithContext(ctx).First(&perm, in.PermissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	rp := models.RolePermission{
		Role:         models.UserRole(in.Role),
		PermissionID: in.PermissionID,
	}
	if err := s.db.WithContext(ctx).Create(&rp).Error; err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *UserService) ListRolePermissions(ctx context.Context) ([]models.RolePermission, error) {
	var rps []models.RolePermission
	err := s.db.WithContext(ctx).Order("id").Find(&rps).Error
	return rps, err
}

// logAudit writes an audit row. Failures are swallowed; auditing never breaks
// the mutation it describes.
func (s *UserService) logAudit(ctx context.Context, actorID uint, action, resource string, resourceID *uint, oldValues, newValues map[string]any) {
	entry := models.AuditLog{
		UserID:     actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
	}
	if oldValues != nil {
		if b, err := json.Marshal(oldValues); err == nil {
			entry.OldValues = datatypes.JSON(b)
		}
	}
	if newValues != nil {
		if b, err := json.Marshal(newValues); err == nil {
			entry.NewValues = datatypes.JSON(b)
		}
	}
	_ = s.db.WithContext(ctx).Create(&entry).Error
}

func snapshotUser(u *models.User) map[string]any {
	return map[string]any{
		"email":      u.Email,
		"username":   u.Username,
		"full_name":  u.FullName,
		"role":       u.Role,
		"status":     u.Status,
		"phone":      u.Phone,
		"department": u.Department,
	}
}
