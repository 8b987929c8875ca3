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

// AccountingService covers the chart of accounts, general ledger entries and
// bank reconciliations.
type AccountingService struct {
	db *gorm.DB
}

func NewAccountingService(db *gorm.DB) *AccountingService {
	return &AccountingService{db: db}
}

type CreateAccountInput struct {
	Code        string `json:"code" validate:"required,max=20"`
	Name        string `json:"name" validate:"required,max=255"`
	AccountType string `json:"account_type" validate:"required,oneof=Asset Liability Equity Revenue Expense"`
	ParentID    *uint  `json:"parent_id"`
}

func (s *AccountingService) CreateAccount(ctx context.Context, in CreateAccountInput) (*models.ChartOfAccounts, error) {
	account := models.ChartOfAccounts{
		Code:        in.Code,
		Name:        in.Name,
		AccountType: in.AccountType,
		ParentID:    in.ParentID,
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrConflict
		}
		return nil, err
	}
	return &account, nil
}

func (s *AccountingService) ListAccounts(ctx context.Context, skip, limit int, accountType string) ([]models.ChartOfAccounts, error) {
	q := s.db.WithContext(ctx).Model(&models.ChartOfAccounts{})
	if accountType != "" {
		q = q.Where("account_type = ?", accountType)
	}
	var accounts []models.ChartOfAccounts
	err := q.Order("code").Offset(skip).Limit(pageLimit(limit)).Find(&accounts).Error
	return accounts, err
}

type CreateLedgerEntryInput struct {
	AccountID     uint            `json:"account_id" validate:"required"`
	TransactionID string          `json:"transaction_id" validate:"required,max=100"`
	Date          time.Time       `json:"date" validate:"required"`
	Description   string          `json:"description"`
	DebitAmount   decimal.Decimal `json:"debit_amount"`
	CreditAmount  decimal.Decimal `json:"credit_amount"`
	Balance       decimal.Decimal `json:"balance"`
	Reference     string          `json:"reference" validate:"omitempty,max=100"`
}

func (s *AccountingService) CreateLedgerEntry(ctx context.Context, in CreateLedgerEntryInput) (*models.GeneralLedger, error) {
	if in.DebitAmount.IsNegative() || in.CreditAmount.IsNegative() {
		return nil, apperr.ErrValidation
	}
	var account models.ChartOfAccounts
	if err := s.db.WithContext(ctx).First(&account, in.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	entry := models.GeneralLedger{
		AccountID:     in.AccountID,
		TransactionID: in.TransactionID,
		Date:          in.Date,
		Description:   in.Description,
		DebitAmount:   in.DebitAmount,
		CreditAmount:  in.CreditAmount,
		Balance:       in.Balance,
		Reference:     in.Reference,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

type LedgerFilter struct {
	Skip      int
	Limit     int
	AccountID uint
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *AccountingService) ListLedgerEntries(ctx context.Context, f LedgerFilter) ([]models.GeneralLedger, error) {
	q := s.db.WithContext(ctx).Model(&models.GeneralLedger{})
	if f.AccountID != 0 {
		q = q.Where("account_id = ?", f.AccountID)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	var entries []models.GeneralLedger
	err := q.Order("date, id").Offset(f.Skip).Limit(pageLimit(f.Limit)).Find(&entries).Error
	return entries, err
}

type CreateReconciliationInput struct {
	BankAccountID  uint            `json:"bank_account_id" validate:"required"`
	StatementDate  time.Time       `json:"statement_date" validate:"required"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

func (s *AccountingService) CreateReconciliation(ctx context.Context, in CreateReconciliationInput) (*models.BankReconciliation, error) {
	var account models.ChartOfAccounts
	if err := s.db.WithContext(ctx).First(&account, in.BankAccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	rec := models.BankReconciliation{
		BankAccountID:  in.BankAccountID,
		StatementDate:  in.StatementDate,
		OpeningBalance: in.OpeningBalance,
		ClosingBalance: in.ClosingBalance,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *AccountingService) ListReconciliations(ctx context.Context, skip, limit int, bankAccountID uint) ([]models.BankReconciliation, error) {
	q := s.db.WithContext(ctx).Model(&models.BankReconciliation{})
	if bankAccountID != 0 {
		q = q.Where("bank_account_id = ?", bankAccountID)
	}
	var recs []models.BankReconciliation
	err := q.Order("id").Offset(skip).Limit(pageLimit(limit)).Find(&recs).Error
	return recs, err
}
