package controllers

import (
	"github.com/gofiber/fiber/v2"

	"compliance-backend/middlewares"
	"compliance-backend/models"
	"compliance-backend/services"
	"compliance-backend/utils"
)

type FinancialController struct {
	ledger     *services.LedgerService
	accounting *services.AccountingService
}

func NewFinancialController(ledger *services.LedgerService, accounting *services.AccountingService) *FinancialController {
	return &FinancialController{ledger: ledger, accounting: accounting}
}

// Invoices

func (ct *FinancialController) CreateInvoice(c *fiber.Ctx) error {
	var in services.CreateInvoiceInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	invoice, err := ct.ledger.CreateInvoice(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func (ct *FinancialController) ListInvoices(c *fiber.Ctx) error {
	f := services.InvoiceFilter{
		Skip:     utils.ParseIntDefault(c.Query("skip"), 0),
		Limit:    utils.ParseIntDefault(c.Query("limit"), 100),
		ClientID: utils.ParseUint(c.Query("client_id")),
		Status:   models.InvoiceStatus(c.Query("status")),
	}
	invoices, err := ct.ledger.ListInvoices(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(invoices)
}

func (ct *FinancialController) GetInvoice(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	invoice, err := ct.ledger.GetInvoice(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func (ct *FinancialController) UpdateInvoice(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdateInvoiceInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	invoice, err := ct.ledger.UpdateInvoice(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func (ct *FinancialController) DeleteInvoice(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := ct.ledger.DeleteInvoice(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Payments

func (ct *FinancialController) CreatePayment(c *fiber.Ctx) error {
	var in services.RecordPaymentInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	payment, err := ct.ledger.RecordPayment(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

func (ct *FinancialController) ListPayments(c *fiber.Ctx) error {
	f := services.PaymentFilter{
		Skip:      utils.ParseIntDefault(c.Query("skip"), 0),
		Limit:     utils.ParseIntDefault(c.Query("limit"), 100),
		InvoiceID: utils.ParseUint(c.Query("invoice_id")),
	}
	payments, err := ct.ledger.ListPayments(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(payments)
}

func (ct *FinancialController) UpdatePayment(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdatePaymentInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	payment, err := ct.ledger.UpdatePayment(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(payment)
}

// Chart of accounts

func (ct *FinancialController) CreateAccount(c *fiber.Ctx) error {
	var in services.CreateAccountInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	account, err := ct.accounting.CreateAccount(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}

func (ct *FinancialController) ListAccounts(c *fiber.Ctx) error {
	skip := utils.ParseIntDefault(c.Query("skip"), 0)
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	accounts, err := ct.accounting.ListAccounts(c.UserContext(), skip, limit, c.Query("account_type"))
	if err != nil {
		return err
	}
	return c.JSON(accounts)
}

// General ledger

func (ct *FinancialController) CreateLedgerEntry(c *fiber.Ctx) error {
	var in services.CreateLedgerEntryInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	entry, err := ct.accounting.CreateLedgerEntry(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (ct *FinancialController) ListLedgerEntries(c *fiber.Ctx) error {
	start, err := dateQuery(c, "start_date")
	if err != nil {
		return err
	}
	end, err := dateQuery(c, "end_date")
	if err != nil {
		return err
	}
	f := services.LedgerFilter{
		Skip:      utils.ParseIntDefault(c.Query("skip"), 0),
		Limit:     utils.ParseIntDefault(c.Query("limit"), 100),
		AccountID: utils.ParseUint(c.Query("account_id")),
		StartDate: start,
		EndDate:   end,
	}
	entries, err := ct.accounting.ListLedgerEntries(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

// Bank reconciliations

func (ct *FinancialController) CreateReconciliation(c *fiber.Ctx) error {
	var in services.CreateReconciliationInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	rec, err := ct.accounting.CreateReconciliation(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (ct *FinancialController) ListReconciliations(c *fiber.Ctx) error {
	skip := utils.ParseIntDefault(c.Query("skip"), 0)
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	recs, err := ct.accounting.ListReconciliations(c.UserContext(), skip, limit, utils.ParseUint(c.Query("bank_account_id")))
	if err != nil {
		return err
	}
	return c.JSON(recs)
}
