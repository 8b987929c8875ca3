package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"compliance-backend/apperr"
	"compliance-backend/models"
)

// invoiceNumberAttempts bounds the retry loop when two invoices race on the
// same per-month sequence. The unique index on invoice_number is the
// authority; a collision just regenerates from a fresh count.
const invoiceNumberAttempts = 5

var hundred = decimal.NewFromInt(100)

// LedgerService computes invoice totals from line items, records payments and
// derives invoice payment status from the committed set of payments.
type LedgerService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db, now: time.Now}
}

type InvoiceItemInput struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

type CreateInvoiceInput struct {
	InvoiceNumber string             `json:"invoice_number" validate:"omitempty,max=100"`
	ClientID      uint               `json:"client_id" validate:"required"`
	IssueDate     time.Time          `json:"issue_date" validate:"required"`
	DueDate       time.Time          `json:"due_date" validate:"required"`
	Notes         string             `json:"notes"`
	Items         []InvoiceItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateInvoice derives all money totals from the items with exact decimal
// arithmetic and persists the invoice and its items atomically. Zero-quantity
// items are accepted (they contribute nothing to the totals); negative
// quantities, prices or tax rates are rejected.
func (s *LedgerService) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*models.Invoice, error) {
	items := make([]models.InvoiceItem, 0, len(in.Items))
	subtotal := decimal.Zero
	taxAmount := decimal.Zero
	for _, it := range in.Items {
		if it.Quantity.IsNegative() || it.UnitPrice.IsNegative() || it.TaxRate.IsNegative() {
			return nil, apperr.ErrValidation
		}
		totalPrice := it.Quantity.Mul(it.UnitPrice)
		subtotal = subtotal.Add(totalPrice)
		taxAmount = taxAmount.Add(it.TaxRate.Mul(totalPrice).Div(hundred))
		items = append(items, models.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  totalPrice,
			TaxRate:     it.TaxRate,
		})
	}

	generated := in.InvoiceNumber == ""
	for attempt := 0; ; attempt++ {
		invoice := &models.Invoice{
			InvoiceNumber: in.InvoiceNumber,
			ClientID:      in.ClientID,
			IssueDate:     in.IssueDate,
			DueDate:       in.DueDate,
			Subtotal:      subtotal,
			TaxAmount:     taxAmount,
			TotalAmount:   subtotal.Add(taxAmount),
			Status:        models.InvoiceDraft,
			Notes:         in.Notes,
			Items:         items,
		}

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if generated {
				number, err := s.nextInvoiceNumber(tx)
				if err != nil {
					return err
				}
				invoice.InvoiceNumber = number
			}
			return tx.Create(invoice).Error
		})
		if err == nil {
			return invoice, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if generated && attempt < invoiceNumberAttempts {
				continue
			}
			return nil, apperr.ErrConflict
		}
		return nil, err
	}
}

// nextInvoiceNumber produces INV-{year}{month:02}-{sequence:04} where the
// sequence is one plus the count of invoices created this calendar month.
func (s *LedgerService) nextInvoiceNumber(tx *gorm.DB) (string, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	var count int64
	err := tx.Model(&models.Invoice{}).
		Where("created_at >= ? AND created_at < ?", monthStart, nextMonth).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d%02d-%04d", now.Year(), int(now.Month()), count+1), nil
}

// GetInvoice loads an invoice with its items.
func (s *LedgerService) GetInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).Preload("Items").First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

type InvoiceFilter struct {
	Skip     int
	Limit    int
	ClientID uint
	Status   models.InvoiceStatus
}

// ListInvoices returns invoices matching the filter, newest first.
func (s *LedgerService) ListInvoices(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error) {
	q := s.db.WithContext(ctx).Model(&models.Invoice{}).Preload("Items")
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var invoices []models.Invoice
	err := q.Order("id DESC").Offset(f.Skip).Limit(pageLimit(f.Limit)).Find(&invoices).Error
	return invoices, err
}

type UpdateInvoiceInput struct {
	IssueDate *time.Time `json:"issue_date"`
	DueDate   *time.Time `json:"due_date"`
	Status    *string    `json:"status" validate:"omitempty,oneof=draft sent paid partially_paid unpaid overdue cancelled"`
	Notes     *string    `json:"notes"`
}

// UpdateInvoice mutates the settable invoice fields. Totals are derived state
// and cannot be patched.
func (s *LedgerService) UpdateInvoice(ctx context.Context, id uint, in UpdateInvoiceInput) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if in.IssueDate != nil {
		updates["issue_date"] = *in.IssueDate
	}
	if in.DueDate != nil {
		updates["due_date"] = *in.DueDate
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if len(updates) == 0 {
		return invoice, nil
	}
	if err := s.db.WithContext(ctx).Model(invoice).Updates(updates).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

// DeleteInvoice removes the invoice and its items in one transaction.
// Invoices carrying completed payments cannot be deleted; cancel them
// instead. Pending/failed/cancelled payments are left in place as orphans of
// record (they reference money that never moved).
func (s *LedgerService) DeleteInvoice(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		var completed int64
		err := tx.Model(&models.Payment{}).
			Where("invoice_id = ? AND status = ?", id, models.PaymentCompleted).
			Count(&completed).Error
		if err != nil {
			return err
		}
		if completed > 0 {
			return apperr.ErrConflict
		}

		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
}

type RecordPaymentInput struct {
	InvoiceID     uint            `json:"invoice_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash bank_transfer cheque online"`
	Reference     string          `json:"reference" validate:"omitempty,max=100"`
	Status        string          `json:"status" validate:"omitempty,oneof=pending completed failed cancelled"`
	Notes         string          `json:"notes"`
}

// RecordPayment persists a payment against an existing invoice and then
// recomputes the invoice's payment status from the committed payment set.
func (s *LedgerService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*models.Payment, error) {
	if in.Amount.IsNegative() {
		return nil, apperr.ErrValidation
	}

	payment := &models.Payment{
		InvoiceID:     in.InvoiceID,
		Amount:        in.Amount,
		PaymentDate:   in.PaymentDate,
		PaymentMethod: in.PaymentMethod,
		Reference:     in.Reference,
		Status:        models.PaymentPending,
		Notes:         in.Notes,
	}
	if in.Status != "" {
		payment.Status = models.PaymentStatus(in.Status)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, in.InvoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return s.recomputeInvoiceStatus(tx, &invoice)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

type UpdatePaymentInput struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending completed failed cancelled"`
	Notes  *string `json:"notes"`
}

// UpdatePayment mutates a payment and re-runs the status derivation on its
// invoice. Recomputation happens after every payment mutation, not only at
// creation time.
func (s *LedgerService) UpdatePayment(ctx context.Context, id uint, in UpdatePaymentInput) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		updates := map[string]any{}
		if in.Status != nil {
			updates["status"] = *in.Status
			payment.Status = models.PaymentStatus(*in.Status)
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
			payment.Notes = *in.Notes
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Payment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		var invoice models.Invoice
		if err := tx.First(&invoice, payment.InvoiceID).Error; err != nil {
			return err
		}
		return s.recomputeInvoiceStatus(tx, &invoice)
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// RecomputeInvoiceStatus re-derives the payment status of one invoice. The
// operation is idempotent; running it twice with no new payment yields the
// same status.
func (s *LedgerService) RecomputeInvoiceStatus(ctx context.Context, invoiceID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		return s.recomputeInvoiceStatus(tx, &invoice)
	})
}

// recomputeInvoiceStatus re-queries the committed payments rather than
// trusting any total computed earlier in the request, so concurrent writers
// always settle on the full payment set.
func (s *LedgerService) recomputeInvoiceStatus(tx *gorm.DB, invoice *models.Invoice) error {
	payments, err := findPaymentsByInvoice(tx, invoice.ID)
	if err != nil {
		return err
	}
	totalPaid := decimal.Zero
	for _, p := range payments {
		if p.Status == models.PaymentCompleted {
			totalPaid = totalPaid.Add(p.Amount)
		}
	}

	status := models.InvoiceUnpaid
	switch {
	case totalPaid.GreaterThanOrEqual(invoice.TotalAmount):
		status = models.InvoicePaid
	case totalPaid.IsPositive():
		status = models.InvoicePartiallyPaid
	}
	if status == invoice.Status {
		return nil
	}
	invoice.Status = status
	return tx.Model(invoice).Update("status", status).Error
}

// findPaymentsByInvoice is the explicit query behind every paid-total
// derivation; there is no lazy relationship traversal.
func findPaymentsByInvoice(tx *gorm.DB, invoiceID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := tx.Where("invoice_id = ?", invoiceID).Find(&payments).Error
	return payments, err
}

type PaymentFilter struct {
	Skip      int
	Limit     int
	InvoiceID uint
}

// ListPayments returns payments matching the filter.
func (s *LedgerService) ListPayments(ctx context.Context, f PaymentFilter) ([]models.Payment, error) {
	q := s.db.WithContext(ctx).Model(&models.Payment{})
	if f.InvoiceID != 0 {
		q = q.Where("invoice_id = ?", f.InvoiceID)
	}
	var payments []models.Payment
	err := q.Order("id DESC").Offset(f.Skip).Limit(pageLimit(f.Limit)).Find(&payments).Error
	return payments, err
}

// pageLimit clamps list sizes to the uniform skip/limit convention.
func pageLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
