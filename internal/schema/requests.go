package schema

import (
	"time"
)

type (
	// AnalyzeRequest accompanies an uploaded lab report (the file itself
	// travels separately as multipart content).
	AnalyzeRequest struct {
		SampleLocation  *string    `json:"sample_location,omitempty"`
		SampleDate      *time.Time `json:"sample_date,omitempty"`
		CustomStandards []string   `json:"custom_standards,omitempty"` // ["WHO", "EPA", etc.]
	}

	// RecalculateRequest asks for a re-run of an existing report with
	// caller-adjusted parameter values.
	RecalculateRequest struct {
		ReportID           string             `json:"report_id" validate:"required"`
		AdjustedParameters map[string]float64 `json:"adjusted_parameters" validate:"required,min=1"`
	}

	// GraphModifyRequest asks for a prompt-driven restyle of a report's graph.
	GraphModifyRequest struct {
		ReportID string `json:"report_id" validate:"required"`
		Prompt   string `json:"prompt" validate:"required"`
	}

	// ReportSummary is the list-view projection of a stored report.
	ReportSummary struct {
		ReportID       string     `json:"report_id" validate:"required"`
		SampleLocation *string    `json:"sample_location,omitempty"`
		SampleDate     *time.Time `json:"sample_date,omitempty"`
		CreatedAt      time.Time  `json:"created_at"`
		OverallScore   float64    `json:"overall_score"`
		WQIRating      string     `json:"wqi_rating"`
	}

	// ReportHistoryResponse is the paginated report history envelope.
	ReportHistoryResponse struct {
		Reports    []ReportSummary `json:"reports" validate:"dive"`
		TotalCount int             `json:"total_count"`
		Page       int             `json:"page"`
		PageSize   int             `json:"page_size"`
	}

	// ErrorResponse is the standard error envelope.
	ErrorResponse struct {
		Error     string    `json:"error" validate:"required"`
		Detail    *string   `json:"detail,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	}

	// ParameterStandard is the admin-facing threshold definition for one
	// parameter. Thresholds maps band name to {min, max}; Standards maps
	// regulatory body to its limits.
	ParameterStandard struct {
		ParameterName string                        `json:"parameter_name" bson:"parameter_name" validate:"required"`
		Unit          *string                       `json:"unit,omitempty" bson:"unit,omitempty"`
		Thresholds    map[string]map[string]float64 `json:"thresholds" bson:"thresholds" validate:"required"`
		Standards     map[string]map[string]float64 `json:"standards,omitempty" bson:"standards,omitempty"`
		Description   *string                       `json:"description,omitempty" bson:"description,omitempty"`
		HealthImpact  map[string]string             `json:"health_impact,omitempty" bson:"health_impact,omitempty"`
	}

	// CalculationFormula is the admin-facing definition of a derived-value
	// formula (corrosion indices, hardness calculations and the like).
	CalculationFormula struct {
		FormulaName        string         `json:"formula_name" bson:"formula_name" validate:"required"`
		FormulaType        string         `json:"formula_type" bson:"formula_type" validate:"required"` // "corrosion_index", "basic_calculation", etc.
		RequiredParameters []string       `json:"required_parameters" bson:"required_parameters" validate:"required"`
		FormulaExpression  string         `json:"formula_expression" bson:"formula_expression" validate:"required"`
		Interpretation     map[string]any `json:"interpretation,omitempty" bson:"interpretation,omitempty"`
		Unit               *string        `json:"unit,omitempty" bson:"unit,omitempty"`
		Description        *string        `json:"description,omitempty" bson:"description,omitempty"`
	}
)

// NewErrorResponse builds an error envelope stamped with the current time.
func NewErrorResponse(message string, detail *string) *ErrorResponse {
	return &ErrorResponse{
		Error:     message,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}
}
