package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the closed set of invoice states.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "draft"
	InvoiceSent          InvoiceStatus = "sent"
	InvoicePaid          InvoiceStatus = "paid"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceUnpaid        InvoiceStatus = "unpaid"
	InvoiceOverdue       InvoiceStatus = "overdue"
	InvoiceCancelled     InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoicePartiallyPaid,
		InvoiceUnpaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// PaymentStatus is the closed set of payment states. Only completed payments
// count towards an invoice's paid total.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentCancelled:
		return true
	}
	return false
}

// Invoice carries derived money totals. Subtotal, TaxAmount and TotalAmount
// are computed from the items at creation time and are never settable inputs;
// the invariant total_amount = subtotal + tax_amount holds exactly.
type Invoice struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	InvoiceNumber string          `json:"invoice_number" gorm:"size:100;uniqueIndex;not null"`
	ClientID      uint            `json:"client_id" gorm:"index;not null"`
	Client        *Client         `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	IssueDate     time.Time       `json:"issue_date" gorm:"not null"`
	DueDate       time.Time       `json:"due_date" gorm:"not null"`
	Subtotal      decimal.Decimal `json:"subtotal" gorm:"type:numeric(15,2);not null"`
	TaxAmount     decimal.Decimal `json:"tax_amount" gorm:"type:numeric(15,2);not null"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:numeric(15,2);not null"`
	Status        InvoiceStatus   `json:"status" gorm:"size:20;default:'draft'"`
	Notes         string          `json:"notes" gorm:"type:text"`
	Items         []InvoiceItem   `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InvoiceItem is owned exclusively by its invoice and is immutable after
// creation. TotalPrice = Quantity * UnitPrice.
type InvoiceItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	InvoiceID   uint            `json:"-" gorm:"index;not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:numeric(10,2);not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(15,2);not null"`
	TotalPrice  decimal.Decimal `json:"total_price" gorm:"type:numeric(15,2);not null"`
	TaxRate     decimal.Decimal `json:"tax_rate" gorm:"type:numeric(5,2)"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Payment is linked to an invoice for lifecycle purposes but is an
// independent record once created.
type Payment struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	InvoiceID     uint            `json:"invoice_id" gorm:"index;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(15,2);not null"`
	PaymentDate   time.Time       `json:"payment_date" gorm:"not null"`
	PaymentMethod string          `json:"payment_method" gorm:"size:50;not null"` // cash, bank_transfer, cheque, online
	Reference     string          `json:"reference" gorm:"size:100"`
	Status        PaymentStatus   `json:"status" gorm:"size:20;default:'pending'"`
	Notes         string          `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ChartOfAccounts is a node in the fixed hierarchy of ledger account codes.
type ChartOfAccounts struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Code        string    `json:"code" gorm:"size:20;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	AccountType string    `json:"account_type" gorm:"size:50;not null"` // Asset, Liability, Equity, Revenue, Expense
	ParentID    *uint     `json:"parent_id"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GeneralLedger is a single classified transaction line.
type GeneralLedger struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	AccountID     uint            `json:"account_id" gorm:"index;not null"`
	TransactionID string          `json:"transaction_id" gorm:"size:100;not null"`
	Date          time.Time       `json:"date" gorm:"index;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	DebitAmount   decimal.Decimal `json:"debit_amount" gorm:"type:numeric(15,2)"`
	CreditAmount  decimal.Decimal `json:"credit_amount" gorm:"type:numeric(15,2)"`
	Balance       decimal.Decimal `json:"balance" gorm:"type:numeric(15,2)"`
	Reference     string          `json:"reference" gorm:"size:100"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BankReconciliation matches a bank statement window against the ledger.
type BankReconciliation struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	BankAccountID  uint            `json:"bank_account_id" gorm:"index;not null"`
	StatementDate  time.Time       `json:"statement_date" gorm:"not null"`
	OpeningBalance decimal.Decimal `json:"opening_balance" gorm:"type:numeric(15,2);not null"`
	ClosingBalance decimal.Decimal `json:"closing_balance" gorm:"type:numeric(15,2);not null"`
	IsReconciled   bool            `json:"is_reconciled" gorm:"default:false"`
	ReconciledAt   *time.Time      `json:"reconciled_at"`
	CreatedAt      time.Time       `json:"created_at"`
}
