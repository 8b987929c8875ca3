package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComplianceType is the closed set of statutory filing categories.
type ComplianceType string

const (
	ComplianceGST    ComplianceType = "gst"
	ComplianceTDS    ComplianceType = "tds"
	ComplianceITR    ComplianceType = "itr"
	CompliancePF     ComplianceType = "pf"
	ComplianceESI    ComplianceType = "esi"
	ComplianceROC    ComplianceType = "roc"
	ComplianceCustom ComplianceType = "custom"
)

func (t ComplianceType) Valid() bool {
	switch t {
	case ComplianceGST, ComplianceTDS, ComplianceITR, CompliancePF,
		ComplianceESI, ComplianceROC, ComplianceCustom:
		return true
	}
	return false
}

// ComplianceStatus tracks a filing through its lifecycle.
type ComplianceStatus string

const (
	CompliancePending    ComplianceStatus = "pending"
	ComplianceInProgress ComplianceStatus = "in_progress"
	ComplianceCompleted  ComplianceStatus = "completed"
	ComplianceOverdue    ComplianceStatus = "overdue"
	ComplianceCancelled  ComplianceStatus = "cancelled"
)

func (s ComplianceStatus) Valid() bool {
	switch s {
	case CompliancePending, ComplianceInProgress, ComplianceCompleted,
		ComplianceOverdue, ComplianceCancelled:
		return true
	}
	return false
}

// TaskPriority orders work items.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Project struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"size:255;not null"`
	Description string           `json:"description" gorm:"type:text"`
	ClientID    uint             `json:"client_id" gorm:"index;not null"`
	StartDate   time.Time        `json:"start_date" gorm:"not null"`
	EndDate     *time.Time       `json:"end_date"`
	Status      string           `json:"status" gorm:"size:20;default:'active'"`
	Budget      *decimal.Decimal `json:"budget" gorm:"type:numeric(15,2)"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type Task struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	Title          string           `json:"title" gorm:"size:255;not null"`
	Description    string           `json:"description" gorm:"type:text"`
	ProjectID      *uint            `json:"project_id" gorm:"index"`
	AssignedTo     *uint            `json:"assigned_to" gorm:"index"`
	Priority       TaskPriority     `json:"priority" gorm:"size:10;default:'medium'"`
	Status         string           `json:"status" gorm:"size:20;default:'pending'"`
	DueDate        *time.Time       `json:"due_date"`
	CompletedAt    *time.Time       `json:"completed_at"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours" gorm:"type:numeric(5,2)"`
	ActualHours    *decimal.Decimal `json:"actual_hours" gorm:"type:numeric(5,2)"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Compliance is a generic statutory obligation tracked per client.
type Compliance struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"size:255;not null"`
	Type        ComplianceType   `json:"type" gorm:"size:10;not null"`
	ClientID    uint             `json:"client_id" gorm:"index;not null"`
	DueDate     time.Time        `json:"due_date" gorm:"not null"`
	Status      ComplianceStatus `json:"status" gorm:"size:20;default:'pending'"`
	Description string           `json:"description" gorm:"type:text"`
	AssignedTo  *uint            `json:"assigned_to"`
	CompletedAt *time.Time       `json:"completed_at"`
	Notes       string           `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// GSTReturn is a periodic GST filing (GSTR-1, GSTR-3B, GSTR-9, ...).
type GSTReturn struct {
	ID                   uint             `json:"id" gorm:"primaryKey"`
	ClientID             uint             `json:"client_id" gorm:"index;not null"`
	ReturnType           string           `json:"return_type" gorm:"size:20;not null"`
	TaxPeriod            string           `json:"tax_period" gorm:"size:20;not null"` // e.g. "2023-24"
	DueDate              time.Time        `json:"due_date" gorm:"not null"`
	FilingDate           *time.Time       `json:"filing_date"`
	Status               ComplianceStatus `json:"status" gorm:"size:20;default:'pending'"`
	TotalTaxLiability    decimal.Decimal  `json:"total_tax_liability" gorm:"type:numeric(15,2)"`
	TotalTaxPaid         decimal.Decimal  `json:"total_tax_paid" gorm:"type:numeric(15,2)"`
	PenaltyAmount        decimal.Decimal  `json:"penalty_amount" gorm:"type:numeric(15,2)"`
	AcknowledgmentNumber string           `json:"acknowledgment_number" gorm:"size:50"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// TDSReturn is a quarterly TDS filing (24Q, 26Q, 27Q, ...).
type TDSReturn struct {
	ID                   uint             `json:"id" gorm:"primaryKey"`
	ClientID             uint             `json:"client_id" gorm:"index;not null"`
	FormType             string           `json:"form_type" gorm:"size:10;not null"`
	Quarter              string           `json:"quarter" gorm:"size:10;not null"` // Q1..Q4
	FinancialYear        string           `json:"financial_year" gorm:"size:10;not null"`
	DueDate              time.Time        `json:"due_date" gorm:"not null"`
	FilingDate           *time.Time       `json:"filing_date"`
	Status               ComplianceStatus `json:"status" gorm:"size:20;default:'pending'"`
	TotalTDSDeducted     decimal.Decimal  `json:"total_tds_deducted" gorm:"type:numeric(15,2)"`
	TotalTDSDeposited    decimal.Decimal  `json:"total_tds_deposited" gorm:"type:numeric(15,2)"`
	AcknowledgmentNumber string           `json:"acknowledgment_number" gorm:"size:50"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// TimeEntry records billable or non-billable time against optional
// project/task/client references.
type TimeEntry struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	UserID        uint             `json:"user_id" gorm:"index;not null"`
	ProjectID     *uint            `json:"project_id" gorm:"index"`
	TaskID        *uint            `json:"task_id"`
	ClientID      *uint            `json:"client_id"`
	StartTime     time.Time        `json:"start_time" gorm:"not null"`
	EndTime       *time.Time       `json:"end_time"`
	DurationHours *decimal.Decimal `json:"duration_hours" gorm:"type:numeric(5,2)"`
	Description   string           `json:"description" gorm:"type:text"`
	IsBillable    bool             `json:"is_billable" gorm:"default:true"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate" gorm:"type:numeric(10,2)"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
