package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"compliance-backend/apperr"
	"compliance-backend/models"
)

// ClientService owns client records and the GSTIN uniqueness rule.
type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

type CreateClientInput struct {
	Name           string  `json:"name" validate:"required,max=255"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Phone          string  `json:"phone" validate:"omitempty,max=20"`
	GSTIN          *string `json:"gstin" validate:"omitempty,len=15"`
	PAN            string  `json:"pan" validate:"omitempty,len=10"`
	Address        string  `json:"address"`
	City           string  `json:"city" validate:"omitempty,max=100"`
	State          string  `json:"state" validate:"omitempty,max=100"`
	Pincode        string  `json:"pincode" validate:"omitempty,max=10"`
	AssignedUserID *uint   `json:"assigned_user_id"`
}

// Create persists a new client. A GSTIN already registered to another client
// is a Conflict.
func (s *ClientService) Create(ctx context.Context, in CreateClientInput) (*models.Client, error) {
	if in.GSTIN != nil && *in.GSTIN != "" {
		taken, err := s.gstinTaken(ctx, *in.GSTIN, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.ErrConflict
		}
	}

	client := models.Client{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		GSTIN:          normalizeGSTIN(in.GSTIN),
		PAN:            in.PAN,
		Address:        in.Address,
		City:           in.City,
		State:          in.State,
		Pincode:        in.Pincode,
		AssignedUserID: in.AssignedUserID,
		Status:         "active",
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrConflict
		}
		return nil, err
	}
	return &client, nil
}

// normalizeGSTIN maps an empty GSTIN to NULL so the unique index only
// applies to real registrations.
func normalizeGSTIN(gstin *string) *string {
	if gstin == nil || *gstin == "" {
		return nil
	}
	return gstin
}

func (s *ClientService) gstinTaken(ctx context.Context, gstin string, excludeID uint) (bool, error) {
	q := s.db.WithContext(ctx).Model(&models.Client{}).Where("gstin = ?", gstin)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Get returns one client by id.
func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// List returns clients, optionally narrowed by a free-text search over name,
// email, phone and GSTIN.
func (s *ClientService) List(ctx context.Context, skip, limit int, search string) ([]models.Client, error) {
	q := s.db.WithContext(ctx).Model(&models.Client{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"name LIKE ? OR email LIKE ? OR phone LIKE ? OR gstin LIKE ?",
			like, like, like, like,
		)
	}
	var clients []models.Client
	err := q.Order("id").Offset(skip).Limit(pageLimit(limit)).Find(&clients).Error
	return clients, err
}

type UpdateClientInput struct {
	Name           *string `json:"name" validate:"omitempty,max=255"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=20"`
	GSTIN          *string `json:"gstin" validate:"omitempty,len=15"`
	PAN            *string `json:"pan" validate:"omitempty,len=10"`
	Address        *string `json:"address"`
	City           *string `json:"city" validate:"omitempty,max=100"`
	State          *string `json:"state" validate:"omitempty,max=100"`
	Pincode        *string `json:"pincode" validate:"omitempty,max=10"`
	AssignedUserID *uint   `json:"assigned_user_id"`
	Status         *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Update patches a client. Changing the GSTIN to one held by a different
// client is a Conflict; re-submitting the client's own GSTIN is fine.
func (s *ClientService) Update(ctx context.Context, id uint, in UpdateClientInput) (*models.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.GSTIN != nil && *in.GSTIN != "" {
		if client.GSTIN == nil || *client.GSTIN != *in.GSTIN {
			taken, err := s.gstinTaken(ctx, *in.GSTIN, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperr.ErrConflict
			}
		}
	}

	updates := map[string]any{}
	setIf(updates, "name", in.Name)
	setIf(updates, "email", in.Email)
	setIf(updates, "phone", in.Phone)
	setIf(updates, "pan", in.PAN)
	setIf(updates, "address", in.Address)
	setIf(updates, "city", in.City)
	setIf(updates, "state", in.State)
	setIf(updates, "pincode", in.Pincode)
	setIf(updates, "status", in.Status)
	if in.GSTIN != nil {
		updates["gstin"] = normalizeGSTIN(in.GSTIN)
	}
	if in.AssignedUserID != nil {
		updates["assigned_user_id"] = *in.AssignedUserID
	}
	if len(updates) == 0 {
		return client, nil
	}

	err = s.db.WithContext(ctx).Model(client).Updates(updates).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrConflict
		}
		return nil, err
	}
	return client, nil
}

// Delete removes a client.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Client{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Projects lists the projects attached to one client.
func (s *ClientService) Projects(ctx context.Context, clientID uint) ([]models.Project, error) {
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}
	var projects []models.Project
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Find(&projects).Error
	return projects, err
}

// Invoices lists the invoices attached to one client.
func (s *ClientService) Invoices(ctx context.Context, clientID uint) ([]models.Invoice, error) {
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Find(&invoices).Error
	return invoices, err
}

// setIf adds a column update when the pointer field was supplied.
func setIf(updates map[string]any, column string, v *string) {
	if v != nil {
		updates[column] = *v
	}
}
