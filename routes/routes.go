// Package routes wires every HTTP endpoint to its controller.
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"compliance-backend/controllers"
	"compliance-backend/database"
	"compliance-backend/middlewares"
	"compliance-backend/services"
)

// Deps carries everything Register needs to build the route table.
type Deps struct {
	DB   *gorm.DB
	Auth *services.AuthService

	AuthController       *controllers.AuthController
	UserController       *controllers.UserController
	ClientController     *controllers.ClientController
	FinancialController  *controllers.FinancialController
	ComplianceController *controllers.ComplianceController
	DocumentController   *controllers.DocumentController
	AIController         *controllers.AIController
}

// Register wires all HTTP routes under /api/v1.
func Register(app *fiber.App, d Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CA Office Automation API",
			"version": "1.0.0",
			"docs":    "/api/v1",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "up"
		status := "ok"
		if err := database.Ping(d.DB, 2*time.Second); err != nil {
			dbStatus = "down"
			status = "degraded"
		}
		return c.JSON(fiber.Map{"status": status, "database": dbStatus})
	})

	api := app.Group("/api/v1")

	// Public auth endpoints
	api.Post("/auth/login", d.AuthController.Login)
	api.Post("/auth/login-json", d.AuthController.LoginJSON)
	api.Post("/auth/register", d.AuthController.Register)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.RequireAuth(d.Auth))

	// Idempotency guard needs the authenticated identity, so it runs after
	// auth.
	protected.Use(middlewares.Idempotency(d.DB))

	protected.Get("/auth/me", d.AuthController.Me)

	// Users and permissions
	protected.Get("/users", d.UserController.List)
	protected.Get("/users/:id", d.UserController.Get)
	protected.Put("/users/:id", d.UserController.Update)
	protected.Delete("/users/:id", d.UserController.Delete)
	protected.Post("/permissions", d.UserController.CreatePermission)
	protected.Get("/permissions", d.UserController.ListPermissions)
	protected.Post("/role-permissions", d.UserController.CreateRolePermission)
	protected.Get("/role-permissions", d.UserController.ListRolePermissions)

	// Clients
	protected.Post("/clients", d.ClientController.Create)
	protected.Get("/clients", d.ClientController.List)
	protected.Get("/clients/:id", d.ClientController.Get)
	protected.Put("/clients/:id", d.ClientController.Update)
	protected.Delete("/clients/:id", d.ClientController.Delete)
	protected.Get("/clients/:id/projects", d.ClientController.Projects)
	protected.Get("/clients/:id/invoices", d.ClientController.Invoices)

	// Invoices and payments
	financial := protected.Group("/financial")
	financial.Post("/invoices", d.FinancialController.CreateInvoice)
	financial.Get("/invoices", d.FinancialController.ListInvoices)
	financial.Get("/invoices/:id", d.FinancialController.GetInvoice)
	financial.Put("/invoices/:id", d.FinancialController.UpdateInvoice)
	financial.Delete("/invoices/:id", d.FinancialController.DeleteInvoice)
	financial.Post("/payments", d.FinancialController.CreatePayment)
	financial.Get("/payments", d.FinancialController.ListPayments)
	financial.Put("/payments/:id", d.FinancialController.UpdatePayment)

	// Chart of accounts and general ledger
	financial.Post("/chart-of-accounts", d.FinancialController.CreateAccount)
	financial.Get("/chart-of-accounts", d.FinancialController.ListAccounts)
	financial.Post("/general-ledger", d.FinancialController.CreateLedgerEntry)
	financial.Get("/general-ledger", d.FinancialController.ListLedgerEntries)
	financial.Post("/bank-reconciliations", d.FinancialController.CreateReconciliation)
	financial.Get("/bank-reconciliations", d.FinancialController.ListReconciliations)

	// Projects and tasks
	compliance := protected.Group("/compliance")
	compliance.Post("/projects", d.ComplianceController.CreateProject)
	compliance.Get("/projects", d.ComplianceController.ListProjects)
	compliance.Get("/projects/:id", d.ComplianceController.GetProject)
	compliance.Put("/projects/:id", d.ComplianceController.UpdateProject)
	compliance.Delete("/projects/:id", d.ComplianceController.DeleteProject)
	compliance.Post("/tasks", d.ComplianceController.CreateTask)
	compliance.Get("/tasks", d.ComplianceController.ListTasks)
	compliance.Get("/tasks/:id", d.ComplianceController.GetTask)
	compliance.Put("/tasks/:id", d.ComplianceController.UpdateTask)
	compliance.Delete("/tasks/:id", d.ComplianceController.DeleteTask)

	// Statutory filings
	compliance.Post("/compliances", d.ComplianceController.CreateCompliance)
	compliance.Get("/compliances", d.ComplianceController.ListCompliances)
	compliance.Get("/compliances/:id", d.ComplianceController.GetCompliance)
	compliance.Put("/compliances/:id", d.ComplianceController.UpdateCompliance)
	compliance.Delete("/compliances/:id", d.ComplianceController.DeleteCompliance)
	compliance.Post("/gst-returns", d.ComplianceController.CreateGSTReturn)
	compliance.Get("/gst-returns", d.ComplianceController.ListGSTReturns)
	compliance.Put("/gst-returns/:id", d.ComplianceController.UpdateGSTReturn)
	compliance.Delete("/gst-returns/:id", d.ComplianceController.DeleteGSTReturn)
	compliance.Post("/tds-returns", d.ComplianceController.CreateTDSReturn)
	compliance.Get("/tds-returns", d.ComplianceController.ListTDSReturns)
	compliance.Delete("/tds-returns/:id", d.ComplianceController.DeleteTDSReturn)

	// Time tracking
	compliance.Post("/time-entries", d.ComplianceController.CreateTimeEntry)
	compliance.Get("/time-entries", d.ComplianceController.ListTimeEntries)
	compliance.Delete("/time-entries/:id", d.ComplianceController.DeleteTimeEntry)

	// Documents
	protected.Post("/documents", d.DocumentController.Upload)
	protected.Get("/documents", d.DocumentController.List)
	protected.Get("/documents/:id", d.DocumentController.Get)
	protected.Get("/documents/:id/download", d.DocumentController.Download)
	protected.Delete("/documents/:id", d.DocumentController.Delete)

	// Document intelligence
	protected.Post("/ai/document-extraction", d.AIController.ExtractDocument)
	protected.Post("/ai/gst-reconciliation", d.AIController.ReconcileGST)
	protected.Post("/ai/tds-reconciliation", d.AIController.ReconcileTDS)
	protected.Post("/ai/anomaly-detection", d.AIController.DetectAnomalies)
	protected.Post("/ai/smart-categorization", d.AIController.CategorizeTransaction)
}
