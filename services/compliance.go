package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"compliance-backend/apperr"
	"compliance-backend/models"
)

// ComplianceService covers projects, tasks, statutory filings and time
// tracking. These are straight CRUD surfaces with equality filters.
type ComplianceService struct {
	db *gorm.DB
}

func NewComplianceService(db *gorm.DB) *ComplianceService {
	return &ComplianceService{db: db}
}

// Projects

type CreateProjectInput struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description"`
	ClientID    uint             `json:"client_id" validate:"required"`
	StartDate   time.Time        `json:"start_date" validate:"required"`
	EndDate     *time.Time       `json:"end_date"`
	Budget      *decimal.Decimal `json:"budget"`
}

func (s *ComplianceService) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	project := models.Project{
		Name:        in.Name,
		Description: in.Description,
		ClientID:    in.ClientID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      "active",
		Budget:      in.Budget,
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ComplianceService) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := firstOrNotFound(s.db.WithContext(ctx).First(&project, id)); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ComplianceService) ListProjects(ctx context.Context, skip, limit int, clientID uint, status string) ([]models.Project, error) {
	q := s.db.WithContext(ctx).Model(&models.Project{})
	if clientID != 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var projects []models.Project
	err := q.Order("id").Offset(skip).Limit(pageLimit(limit)).Find(&projects).Error
	return projects, err
}

type UpdateProjectInput struct {
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	Description *string          `json:"description"`
	EndDate     *time.Time       `json:"end_date"`
	Status      *string          `json:"status" validate:"omitempty,oneof=active on_hold completed cancelled"`
	Budget      *decimal.Decimal `json:"budget"`
}

func (s *ComplianceService) UpdateProject(ctx context.Context, id uint, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	setIf(updates, "name", in.Name)
	setIf(updates, "description", in.Description)
	setIf(updates, "status", in.Status)
	if in.EndDate != nil {
		updates["end_date"] = *in.EndDate
	}
	if in.Budget != nil {
		updates["budget"] = *in.Budget
	}
	if len(updates) == 0 {
		return project, nil
	}
	if err := s.db.WithContext(ctx).Model(project).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetProject(ctx, id)
}

func (s *ComplianceService) DeleteProject(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.Project{}, id)
}

// Tasks

type CreateTaskInput struct {
	Title          string           `json:"title" validate:"required,max=255"`
	Description    string           `json:"description"`
	ProjectID      *uint            `json:"project_id"`
	AssignedTo     *uint            `json:"assigned_to"`
	Priority       string           `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate        *time.Time       `json:"due_date"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours"`
}

func (s *ComplianceService) CreateTask(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	task := models.Task{
		Title:          in.Title,
		Description:    in.Description,
		ProjectID:      in.ProjectID,
		AssignedTo:     in.AssignedTo,
		Priority:       models.PriorityMedium,
		Status:         "pending",
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
	}
	if in.Priority != "" {
		task.Priority = models.TaskPriority(in.Priority)
	}
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *ComplianceService) GetTask(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := firstOrNotFound(s.db.WithContext(ctx).First(&task, id)); err != nil {
		return nil, err
	}
	return &task, nil
}

type TaskFilter struct {
	Skip       int
	Limit      int
	ProjectID  uint
	AssignedTo uint
	Status     string
}

func (s *ComplianceService) ListTasks(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	q := s.db.WithContext(ctx).Model(&models.Task{})
	if f.ProjectID != 0 {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.AssignedTo != 0 {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var tasks []models.Task
	err := q.Order("id").Offset(f.Skip).Limit(pageLimit(f.Limit)).Find(&tasks).Error
	return tasks, err
}

type UpdateTaskInput struct {
	Title       *string          `json:"title" validate:"omitempty,max=255"`
	Description *string          `json:"description"`
	AssignedTo  *uint            `json:"assigned_to"`
	Priority    *string          `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status      *string          `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	DueDate     *time.Time       `json:"due_date"`
	ActualHours *decimal.Decimal `json:"actual_hours"`
}

func (s *ComplianceService) UpdateTask(ctx context.Context, id uint, in UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	setIf(updates, "title", in.Title)
	setIf(updates, "description", in.Description)
	setIf(updates, "priority", in.Priority)
	setIf(updates, "status", in.Status)
	if in.AssignedTo != nil {
		updates["assigned_to"] = *in.AssignedTo
	}
	if in.DueDate != nil {
		updates["due_date"] = *in.DueDate
	}
	if in.ActualHours != nil {
		updates["actual_hours"] = *in.ActualHours
	}
	if in.Status != nil && *in.Status == "completed" {
		updates["completed_at"] = time.Now().UTC()
	}
	if len(updates) == 0 {
		return task, nil
	}
	if err := s.db.WithContext(ctx).Model(task).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetTask(ctx, id)
}

func (s *ComplianceService) DeleteTask(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.Task{}, id)
}

// Compliance records

type CreateComplianceInput struct {
	Name        string    `json:"name" validate:"required,max=255"`
	Type        string    `json:"type" validate:"required,oneof=gst tds itr pf esi roc custom"`
	ClientID    uint      `json:"client_id" validate:"required"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Description string    `json:"description"`
	AssignedTo  *uint     `json:"assigned_to"`
	Notes       string    `json:"notes"`
}

func (s *ComplianceService) CreateCompliance(ctx context.Context, in CreateComplianceInput) (*models.Compliance, error) {
	record := models.Compliance{
		Name:        in.Name,
		Type:        models.ComplianceType(in.Type),
		ClientID:    in.ClientID,
		DueDate:     in.DueDate,
		Status:      models.CompliancePending,
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
		Notes:       in.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *ComplianceService) GetCompliance(ctx context.Context, id uint) (*models.Compliance, error) {
	var record models.Compliance
	if err := firstOrNotFound(s.db.WithContext(ctx).First(&record, id)); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *ComplianceService) ListCompliances(ctx context.Context, skip, limit int, clientID uint, cType, status string) ([]models.Compliance, error) {
	q := s.db.WithContext(ctx).Model(&models.Compliance{})
	if clientID != 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if cType != "" {
		q = q.Where("type = ?", cType)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var records []models.Compliance
	err := q.Order("id").Offset(skip).Limit(pageLimit(limit)).Find(&records).Error
	return records, err
}

type UpdateComplianceInput struct {
	Name       *string    `json:"name" validate:"omitempty,max=255"`
	DueDate    *time.Time `json:"due_date"`
	Status     *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed overdue cancelled"`
	AssignedTo *uint      `json:"assigned_to"`
	Notes      *string    `json:"notes"`
}

func (s *ComplianceService) UpdateCompliance(ctx context.Context, id uint, in UpdateComplianceInput) (*models.Compliance, error) {
	record, err := s.GetCompliance(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	setIf(updates, "name", in.Name)
	setIf(updates, "status", in.Status)
	setIf(updates, "notes", in.Notes)
	if in.DueDate != nil {
		updates["due_date"] = *in.DueDate
	}
	if in.AssignedTo != nil {
		updates["assigned_to"] = *in.AssignedTo
	}
	if in.Status != nil && *in.Status == string(models.ComplianceCompleted) {
		updates["completed_at"] = time.Now().UTC()
	}
	if len(updates) == 0 {
		return record, nil
	}
	if err := s.db.WithContext(ctx).Model(record).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetCompliance(ctx, id)
}

func (s *ComplianceService) DeleteCompliance(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.Compliance{}, id)
}

// GST returns

type CreateGSTReturnInput struct {
	ClientID   uint            `json:"client_id" validate:"required"`
	ReturnType string          `json:"return_type" validate:"required,max=20"`
	TaxPeriod  string          `json:"tax_period" validate:"required,max=20"`
	DueDate    time.Time       `json:"due_date" validate:"required"`
	Liability  decimal.Decimal `json:"total_tax_liability"`
	Paid       decimal.Decimal `json:"total_tax_paid"`
}

func (s *ComplianceService) CreateGSTReturn(ctx context.Context, in CreateGSTReturnInput) (*models.GSTReturn, error) {
	ret := models.GSTReturn{
		ClientID:          in.ClientID,
		ReturnType:        in.ReturnType,
		TaxPeriod:         in.TaxPeriod,
		DueDate:           in.DueDate,
		Status:            models.CompliancePending,
		TotalTaxLiability: in.Liability,
		TotalTaxPaid:      in.Paid,
	}
	if err := s.db.WithContext(ctx).Create(&ret).Error; err != nil {
		return nil, err
	}
	return &ret, nil
}

func (s *ComplianceService) ListGSTReturns(ctx context.Context, skip, limit int, clientID uint, status string) ([]models.GSTReturn, error) {
	q := s.db.WithContext(ctx).Model(&models.GSTReturn{})
	if clientID != 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rets []models.GSTReturn
	err := q.Order("id").Offset(skip).Limit(pageLimit(limit)).Find(&rets).Error
	return rets, err
}

type UpdateGSTReturnInput struct {
	FilingDate           *time.Time       `json:"filing_date"`
	Status               *string          `json:"status" validate:"omitempty,oneof=pending in_progress completed overdue cancelled"`
	TotalTaxPaid         *decimal.Decimal `json:"total_tax_paid"`
	PenaltyAmount        *decimal.Decimal `json:"penalty_amount"`
	AcknowledgmentNumber *string          `json:"acknowledgment_number" validate:"omitempty,max=50"`
}

func (s *ComplianceService) UpdateGSTReturn(ctx context.Context, id uint, in UpdateGSTReturnInput) (*models.GSTReturn, error) {
	var ret models.GSTReturn
	if err := firstOrNotFound(s.db.WithContext(ctx).First(&ret, id)); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	setIf(updates, "status", in.Status)
	setIf(updates, "acknowledgment_number", in.AcknowledgmentNumber)
	if in.FilingDate != nil {
		updates["filing_date"] = *in.FilingDate
	}
	if in.TotalTaxPaid != nil {
		updates["total_tax_paid"] = *in.TotalTaxPaid
	}
	if in.PenaltyAmount != nil {
		updates["penalty_amount"] = *in.PenaltyAmount
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&ret).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := firstOrNotFound(s.db.WithContext(ctx).First(&ret, id)); err != nil {
			return nil, err
		}
	}
	return &ret, nil
}

func (s *ComplianceService) DeleteGSTReturn(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.GSTReturn{}, id)
}

// TDS returns

type CreateTDSReturnInput struct {
	ClientID      uint            `json:"client_id" validate:"required"`
	FormType      string          `json:"form_type" validate:"required,max=10"`
	Quarter       string          `json:"quarter" validate:"required,oneof=Q1 Q2 Q3 Q4"`
	FinancialYear string          `json:"financial_year" validate:"required,max=10"`
	DueDate       time.Time       `json:"due_date" validate:"required"`
	Deducted      decimal.Decimal `json:"total_tds_deducted"`
	Deposited     decimal.Decimal `json:"total_tds_deposited"`
}

func (s *ComplianceService) CreateTDSReturn(ctx context.Context, in CreateTDSReturnInput) (*models.TDSReturn, error) {
	ret := models.TDSReturn{
		ClientID:          in.ClientID,
		FormType:          in.FormType,
		Quarter:           in.Quarter,
		FinancialYear:     in.FinancialYear,
		DueDate:           in.DueDate,
		Status:            models.CompliancePending,
		TotalTDSDeducted:  in.Deducted,
		TotalTDSDeposited: in.Deposited,
	}
	if err := s.db.WithContext(ctx).Create(&ret).Error; err != nil {
		return nil, err
	}
	return &ret, nil
}

func (s *ComplianceService) ListTDSReturns(ctx context.Context, skip, limit int, clientID uint, quarter string) ([]models.TDSReturn, error) {
	q := s.db.WithContext(ctx).Model(&models.TDSReturn{})
	if clientID != 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if quarter != "" {
		q = q.Where("quarter = ?", quarter)
	}
	var rets []models.TDSReturn
	err := q.Order("id").Offset(skip).Limit(pageLimit(limit)).Find(&rets).Error
	return rets, err
}

func (s *ComplianceService) DeleteTDSReturn(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.TDSReturn{}, id)
}

// Time entries

type CreateTimeEntryInput struct {
	ProjectID   *uint            `json:"project_id"`
	TaskID      *uint            `json:"task_id"`
	ClientID    *uint            `json:"client_id"`
	StartTime   time.Time        `json:"start_time" validate:"required"`
	EndTime     *time.Time       `json:"end_time"`
	Description string           `json:"description"`
	IsBillable  *bool            `json:"is_billable"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
}

// CreateTimeEntry records time for userID. Duration is derived from the
// start/end window when both are present.
func (s *ComplianceService) CreateTimeEntry(ctx context.Context, userID uint, in CreateTimeEntryInput) (*models.TimeEntry, error) {
	entry := models.TimeEntry{
		UserID:      userID,
		ProjectID:   in.ProjectID,
		TaskID:      in.TaskID,
		ClientID:    in.ClientID,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Description: in.Description,
		IsBillable:  true,
		HourlyRate:  in.HourlyRate,
	}
	if in.IsBillable != nil {
		entry.IsBillable = *in.IsBillable
	}
	if in.EndTime != nil {
		if in.EndTime.Before(in.StartTime) {
			return nil, apperr.ErrValidation
		}
		hours := decimal.NewFromFloat(in.EndTime.Sub(in.StartTime).Hours()).Round(2)
		entry.DurationHours = &hours
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

type TimeEntryFilter struct {
	Skip      int
	Limit     int
	UserID    uint
	ProjectID uint
	ClientID  uint
}

func (s *ComplianceService) ListTimeEntries(ctx context.Context, f TimeEntryFilter) ([]models.TimeEntry, error) {
	q := s.db.WithContext(ctx).Model(&models.TimeEntry{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ProjectID != 0 {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	var entries []models.TimeEntry
	err := q.Order("id").Offset(f.Skip).Limit(pageLimit(f.Limit)).Find(&entries).Error
	return entries, err
}

func (s *ComplianceService) DeleteTimeEntry(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.TimeEntry{}, id)
}

// firstOrNotFound converts gorm's record-not-found into the NotFound
// sentinel.
func firstOrNotFound(tx *gorm.DB) error {
	if err := tx.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return nil
}

// deleteByID deletes one row, reporting NotFound when nothing matched.
func deleteByID(tx *gorm.DB, model any, id uint) error {
	res := tx.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
