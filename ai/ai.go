// Package ai defines the interfaces for document intelligence features and
// ships canned stand-in implementations. The rest of the system depends only
// on the interfaces; a real inference backend can be dropped in behind them.
package ai

import (
	"context"
	"time"
)

// Result is an arbitrary JSON-shaped payload from an AI collaborator.
type Result map[string]any

// DocumentExtractor pulls structured fields out of an uploaded document.
type DocumentExtractor interface {
	Extract(ctx context.Context, extractionType string) (Result, error)
}

// ReconciliationEngine matches filed returns against book figures.
type ReconciliationEngine interface {
	ReconcileGST(ctx context.Context, clientID uint, period string) (Result, error)
	ReconcileTDS(ctx context.Context, clientID uint, quarter string) (Result, error)
}

// AnomalyDetector flags suspicious entries in a client's financial data.
type AnomalyDetector interface {
	Detect(ctx context.Context, clientID uint, dataType string) (Result, error)
}

// Categorizer suggests a ledger category for a transaction.
type Categorizer interface {
	Categorize(ctx context.Context, description string) (Result, error)
}

// Stub implements every interface with fixed sample payloads. It performs no
// inference and no document parsing.
type Stub struct{}

func NewStub() *Stub { return &Stub{} }

func (*Stub) Extract(_ context.Context, extractionType string) (Result, error) {
	switch extractionType {
	case "gst_return":
		return Result{
			"gstin":               "27ABOE1234F5Z9",
			"return_period":       "2023-10",
			"total_tax_liability": 50000.00,
			"total_tax_paid":      50000.00,
			"confidence":          0.92,
		}, nil
	default: // invoice
		return Result{
			"invoice_number": "INV-2023-001",
			"supplier_gstin": "27ABOE1234F5Z9",
			"customer_gstin": "29ABCDE1234F1Z5",
			"taxable_amount": 15000.00,
			"tax_amount":     2700.00,
			"total_amount":   17700.00,
			"confidence":     0.95,
		}, nil
	}
}

func (*Stub) ReconcileGST(_ context.Context, clientID uint, period string) (Result, error) {
	return Result{
		"client_id":             clientID,
		"period":                period,
		"reconciliation_status": "completed",
		"discrepancies":         []any{},
		"recommendations":       []any{"No discrepancies found"},
		"confidence_score":      0.93,
	}, nil
}

func (*Stub) ReconcileTDS(_ context.Context, clientID uint, quarter string) (Result, error) {
	return Result{
		"client_id":             clientID,
		"quarter":               quarter,
		"reconciliation_status": "completed",
		"discrepancies":         []any{},
		"recommendations":       []any{"No discrepancies found"},
		"confidence_score":      0.91,
	}, nil
}

func (*Stub) Detect(_ context.Context, clientID uint, dataType string) (Result, error) {
	return Result{
		"client_id":                clientID,
		"data_type":                dataType,
		"anomaly_detection_status": "completed",
		"anomalies_found":          0,
		"anomalies":                []any{},
		"risk_level":               "low",
	}, nil
}

func (*Stub) Categorize(_ context.Context, description string) (Result, error) {
	return Result{
		"categorization_status":  "completed",
		"description":            description,
		"suggested_category":     "Professional Services",
		"confidence_score":       0.88,
		"alternative_categories": []any{"Consulting", "Office Expenses"},
		"generated_at":           time.Now().UTC().Format(time.RFC3339),
	}, nil
}
