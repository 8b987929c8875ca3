package controllers

import (
	"github.com/gofiber/fiber/v2"

	"compliance-backend/ai"
	"compliance-backend/middlewares"
)

// AIController exposes the document-intelligence endpoints. The wired
// implementations are deterministic stand-ins; the response shapes are what a
// real inference backend would return.
type AIController struct {
	extractor  ai.DocumentExtractor
	reconciler ai.ReconciliationEngine
	detector   ai.AnomalyDetector
	categorize ai.Categorizer
}

func NewAIController(extractor ai.DocumentExtractor, reconciler ai.ReconciliationEngine, detector ai.AnomalyDetector, categorizer ai.Categorizer) *AIController {
	return &AIController{
		extractor:  extractor,
		reconciler: reconciler,
		detector:   detector,
		categorize: categorizer,
	}
}

// ExtractDocument accepts a multipart upload plus an extraction_type form
// field (invoice or gst_return).
func (ct *AIController) ExtractDocument(c *fiber.Ctx) error {
	if _, err := c.FormFile("file"); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	extractionType := c.FormValue("extraction_type")
	if extractionType == "" {
		extractionType = "invoice"
	}
	result, err := ct.extractor.Extract(c.UserContext(), extractionType)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

type gstReconcileRequest struct {
	ClientID uint   `json:"client_id" validate:"required"`
	Period   string `json:"period" validate:"required"`
}

func (ct *AIController) ReconcileGST(c *fiber.Ctx) error {
	var req gstReconcileRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	result, err := ct.reconciler.ReconcileGST(c.UserContext(), req.ClientID, req.Period)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

type tdsReconcileRequest struct {
	ClientID uint   `json:"client_id" validate:"required"`
	Quarter  string `json:"quarter" validate:"required,oneof=Q1 Q2 Q3 Q4"`
}

func (ct *AIController) ReconcileTDS(c *fiber.Ctx) error {
	var req tdsReconcileRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	result, err := ct.reconciler.ReconcileTDS(c.UserContext(), req.ClientID, req.Quarter)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

type anomalyRequest struct {
	ClientID uint   `json:"client_id" validate:"required"`
	DataType string `json:"data_type" validate:"omitempty,oneof=invoices payments ledger"`
}

func (ct *AIController) DetectAnomalies(c *fiber.Ctx) error {
	var req anomalyRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	if req.DataType == "" {
		req.DataType = "invoices"
	}
	result, err := ct.detector.Detect(c.UserContext(), req.ClientID, req.DataType)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

type categorizeRequest struct {
	Description string `json:"description" validate:"required"`
}

func (ct *AIController) CategorizeTransaction(c *fiber.Ctx) error {
	var req categorizeRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	result, err := ct.categorize.Categorize(c.UserContext(), req.Description)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
