// Package storage provides the MongoDB data-access gateway for the aquascope API.
package storage

import (
	"context"
	"errors"
)

// Collection names. These are the wire contract with any existing stored data
// and must be preserved exactly.
const (
	CollectionWaterReports        = "water_reports"
	CollectionParameterStandards  = "parameter_standards"
	CollectionCalculationFormulas = "calculation_formulas"
	CollectionGraphTemplates      = "graph_templates"
	CollectionScoringConfig       = "scoring_config"
	CollectionComplianceRules     = "compliance_rules"
	CollectionSuggestionTemplates = "suggestion_templates"
	CollectionPhreeqcConfig       = "phreeqc_config"
)

// Field names shared across collections.
const (
	fieldReportID      = "report_id"
	fieldParameterName = "parameter_name"
	fieldFormulaName   = "formula_name"
	fieldGraphType     = "graph_type"
	fieldScoringType   = "scoring_type"
	fieldStandard      = "standard"
	fieldCategory      = "category"
	fieldCreatedAt     = "created_at"
	fieldUpdatedAt     = "updated_at"
)

// Sentinel errors for gateway operations.
var (
	// ErrNoConnection is returned when a store is constructed without a live connection.
	ErrNoConnection = errors.New("no database connection")

	// ErrReportIDMissing is returned when a report document lacks the report_id key.
	ErrReportIDMissing = errors.New("report document must include report_id")

	// ErrParameterNameMissing is returned when a standard document lacks the parameter_name key.
	ErrParameterNameMissing = errors.New("standard document must include parameter_name")

	// ErrFormulaNameMissing is returned when a formula document lacks the formula_name key.
	ErrFormulaNameMissing = errors.New("formula document must include formula_name")

	// ErrCollectionNameEmpty is returned when a generic operation is given an empty collection name.
	ErrCollectionNameEmpty = errors.New("collection name cannot be empty")

	// ErrNilDocument is returned when a nil document is passed to a write operation.
	ErrNilDocument = errors.New("document cannot be nil")

	// ErrNilQuery is returned when a single-document mutation is given a nil query.
	ErrNilQuery = errors.New("query cannot be nil")
)

// Document is a free-form key/value mapping, the unit of storage for every
// collection. The gateway imposes no schema beyond the identifying keys; shape
// validation belongs to the schema package at the API boundary.
type Document = map[string]any

// ReportGateway is the write/read surface for water analysis reports.
type ReportGateway interface {
	// SaveReport stores a complete report and returns the generated internal id.
	SaveReport(ctx context.Context, report Document) (string, error)
	// GetReport retrieves a report by report_id. Absent reports yield (nil, nil).
	GetReport(ctx context.Context, reportID string) (Document, error)
	// ListReports returns reports ordered newest created_at first.
	ListReports(ctx context.Context, limit, skip int64) ([]Document, error)
	// UpdateReport merges the partial update into an existing report.
	UpdateReport(ctx context.Context, reportID string, update Document) (bool, error)
	// DeleteReport removes a report by report_id.
	DeleteReport(ctx context.Context, reportID string) (bool, error)
}

// ReferenceGateway is the read (and upsert, where applicable) surface for
// reference collections seeded out-of-band.
type ReferenceGateway interface {
	GetParameterStandard(ctx context.Context, parameterName string) (Document, error)
	GetAllParameterStandards(ctx context.Context) ([]Document, error)
	SaveParameterStandard(ctx context.Context, standard Document) (string, error)
	GetFormula(ctx context.Context, formulaName string) (Document, error)
	GetAllFormulas(ctx context.Context) ([]Document, error)
	SaveFormula(ctx context.Context, formula Document) (string, error)
	GetGraphTemplate(ctx context.Context, graphType string) (Document, error)
	GetScoringConfig(ctx context.Context, scoringType string) (Document, error)
	GetComplianceRules(ctx context.Context, standard string) ([]Document, error)
	GetSuggestionTemplates(ctx context.Context, category string) ([]Document, error)
	GetPhreeqcConfig(ctx context.Context) (Document, error)
}

// GenericGateway is the untyped escape hatch for collections not known at
// design time. Operations mirror the typed gateways, keyed by collection name.
type GenericGateway interface {
	InsertOne(ctx context.Context, collectionName string, document Document) (string, error)
	FindOne(ctx context.Context, collectionName string, query Document) (Document, error)
	FindMany(ctx context.Context, collectionName string, query Document) ([]Document, error)
	UpdateOne(ctx context.Context, collectionName string, query, update Document) (bool, error)
	UpsertOne(ctx context.Context, collectionName string, query, update Document) (bool, error)
	DeleteOne(ctx context.Context, collectionName string, query Document) (bool, error)
}
