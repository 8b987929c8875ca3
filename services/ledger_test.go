package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"compliance-backend/apperr"
	"compliance-backend/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testInvoiceInput(clientID uint) CreateInvoiceInput {
	return CreateInvoiceInput{
		ClientID:  clientID,
		IssueDate: time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2023, 10, 31, 0, 0, 0, 0, time.UTC),
		Items: []InvoiceItemInput{
			{Description: "Audit services", Quantity: dec("10"), UnitPrice: dec("1500"), TaxRate: dec("18")},
		},
	}
}

func TestCreateInvoiceExactTotals(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db)
	client := seedClient(t, db, "Acme & Co")

	invoice, err := svc.CreateInvoice(context.Background(), testInvoiceInput(client.ID))
	require.NoError(t, err)
	require.True(t, invoice.Subtotal.Equal(dec("15000")), "subtotal %s", invoice.Subtotal)
	require.True(t, invoice.TaxAmount.Equal(dec("2700")), "tax %s", invoice.TaxAmount)
	require.True(t, invoice.TotalAmount.Equal(dec("17700")), "total %s", invoice.TotalAmount)
	require.Equal(t, models.InvoiceDraft, invoice.Status)
	require.Len(t, invoice.Items, 1)
	require.True(t, invoice.Items[0].TotalPrice.Equal(dec("15000")))
}

func TestCreateInvoiceFractionalTax(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db)
	client := seedClient(t, db, "Acme & Co")

	in := testInvoiceInput(client.ID)
	in.Items = []InvoiceItemInput{
		{Description: "Filing", Quantity: dec("3"), UnitPrice: dec("33.33"), TaxRate: dec("18")},
	}
	invoice, err := svc.CreateInvoice(context.Background(), in)
	require.NoError(t, err)
	require.True(t, invoice.Subtotal.Equal(dec("99.99")), "subtotal %s", invoice.Subtotal)
	require.True(t, invoice.TaxAmount.Equal(dec("17.9982")), "tax %s", invoice.TaxAmount)
	require.True(t, invoice.TotalAmount.Equal(dec("117.9882")), "total %s", invoice.TotalAmount)
}

func TestCreateInvoiceRejectsNegatives(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db)
	client := seedClient(t, db, "Acme & Co")

	in := testInvoiceInput(client.ID)
	in.Items[0].Quantity = dec("-1")
	_, err := svc.CreateInvoice(context.Background(), in)
	require.ErrorIs(t, err, apperr.ErrValidation)

	in = testInvoiceInput(client.ID)
	in.Items[0].UnitPrice = dec("-5")
	_, err = svc.CreateInvoice(context.Background(), in)
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGeneratedInvoiceNumberSequence(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db)
	client := seedClient(t, db, "Acme & Co")

	first, err := svc.CreateInvoice(context.Background(), testInvoiceInput(client.ID))
	require.NoError(t, err)
	second, err := svc.CreateInvoice(context.Background(), testInvoiceInput(client.ID))
	require.NoError(t, err)

	now := time.Now().UTC()
	prefix := fmt.Sprintf("INV-%d%02d-", now.Year(), int(now.Month()))
	require.Equal(t, prefix+"0001", first.InvoiceNumber)
	require.Equal(t, prefix+"0002", second.InvoiceNumber)
}

func TestExplicitInvoiceNumberDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db)
	client := seedClient(t, db, "Acme & Co")

	in := testInvoiceInput(client.ID)
	in.InvoiceNumber = "INV-CUSTOM-1"
	_, err := svc.CreateInvoice(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.CreateInvoice(context.Background(), in)
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestPaymentStatusDerivation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db)
	client := seedClient(t, db, "Acme & Co")

	invoice, err := svc.CreateInvoice(context.Background(), testInvoiceInput(client.ID))
	require.NoError(t, err)
	// total is 17700

	pay := func(amount string, status string) *models.Payment {
		p, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
			InvoiceID:     invoice.ID,
			Amount:        dec(amount),
			PaymentDate:   time.Now().UTC(),
			PaymentMethod: "bank_transfer",
			Status:        status,
		})
		require.NoError(t, err)
		return p
	}

	// A pending payment moves nothing.
	pay("17700", "pending")
	got, err := svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Equal(t, models.InvoiceUnpaid, got.Status)

	// A partial completed payment.
	pay("700", "completed")
	got, err = svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Equal(t, models.InvoicePartiallyPaid, got.Status)

	// Completing the remainder settles the invoice.
	second := pay("17000", "completed")
	got, err = svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Equal(t, models.InvoicePaid, got.Status)

	// Failing the big payment drops it back to partially paid.
	failed := "failed"
	_, err = svc.UpdatePayment(context.Background(), second.ID, UpdatePaymentInput{Status: &failed})
	require.NoError(t, err)
	got, err = svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Equal(t, models.InvoicePartiallyPaid, got.Status)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db)
	client := seedClient(t, db, "Acme & Co")

	invoice, err := svc.CreateInvoice(context.Background(), testInvoiceInput(client.ID))
	require.NoError(t, err)
	_, err = svc.RecordPayment(context.Background(), RecordPaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        dec("100"),
		PaymentDate:   time.Now().UTC(),
		PaymentMethod: "cash",
		Status:        "completed",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RecomputeInvoiceStatus(context.Background(), invoice.ID))
	require.NoError(t, svc.RecomputeInvoiceStatus(context.Background(), invoice.ID))

	got, err := svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Equal(t, models.InvoicePartiallyPaid, got.Status)
}

func TestRecordPaymentUnknownInvoice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		InvoiceID:     999,
		Amount:        dec("10"),
		PaymentDate:   time.Now().UTC(),
		PaymentMethod: "cash",
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteInvoice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db)
	client := seedClient(t, db, "Acme & Co")

	invoice, err := svc.CreateInvoice(context.Background(), testInvoiceInput(client.ID))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInvoice(context.Background(), invoice.ID))
	_, err = svc.GetInvoice(context.Background(), invoice.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	var items int64
	require.NoError(t, db.Model(&models.InvoiceItem{}).Where("invoice_id = ?", invoice.ID).Count(&items).Error)
	require.Zero(t, items)

	require.ErrorIs(t, svc.DeleteInvoice(context.Background(), invoice.ID), apperr.ErrNotFound)
}

func TestDeleteInvoiceWithCompletedPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db)
	client := seedClient(t, db, "Acme & Co")

	invoice, err := svc.CreateInvoice(context.Background(), testInvoiceInput(client.ID))
	require.NoError(t, err)
	_, err = svc.RecordPayment(context.Background(), RecordPaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        dec("500"),
		PaymentDate:   time.Now().UTC(),
		PaymentMethod: "cheque",
		Status:        "completed",
	})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteInvoice(context.Background(), invoice.ID), apperr.ErrConflict)
}
