package schema

import (
	"time"
)

// Score defaults applied by ApplyDefaults, matching the stored data contract.
const (
	// DefaultMaxScore is the ceiling for overall and index scores.
	DefaultMaxScore = 100
	// DefaultRiskMaxScore is the ceiling for risk factor scores.
	DefaultRiskMaxScore = 10
)

type (
	// ExtractedParameter is a single parameter extracted from an uploaded
	// lab report. Value is free-typed: numeric readings, "BDL" markers and
	// similar strings all occur in source documents.
	ExtractedParameter struct {
		Value          any      `json:"value" bson:"value"`
		Unit           *string  `json:"unit,omitempty" bson:"unit,omitempty"`
		DetectionLimit *float64 `json:"detection_limit,omitempty" bson:"detection_limit,omitempty"`
	}

	// SaturationIndex is the saturation index for a single mineral.
	SaturationIndex struct {
		MineralName string  `json:"mineral_name" bson:"mineral_name" validate:"required"`
		SIValue     float64 `json:"si_value" bson:"si_value"`
		Status      string  `json:"status" bson:"status" validate:"required"` // "Oversaturated", "Equilibrium", "Undersaturated"
	}

	// ChemicalStatus is the speciation result computed by the PHREEQC solver.
	ChemicalStatus struct {
		InputParameters    map[string]any    `json:"input_parameters" bson:"input_parameters" validate:"required"`
		SolutionParameters map[string]any    `json:"solution_parameters" bson:"solution_parameters" validate:"required"`
		SaturationIndices  []SaturationIndex `json:"saturation_indices" bson:"saturation_indices" validate:"required,dive"`
		IonicStrength      float64           `json:"ionic_strength" bson:"ionic_strength"`
		ChargeBalanceError float64           `json:"charge_balance_error" bson:"charge_balance_error"`
		DatabaseUsed       string            `json:"database_used" bson:"database_used" validate:"required"` // "phreeqc.dat" or "pitzer.dat"
	}

	// GraphResponse describes a rendered parameter comparison graph.
	GraphResponse struct {
		GraphURL     string            `json:"graph_url" bson:"graph_url" validate:"required"`
		GraphType    string            `json:"graph_type" bson:"graph_type" validate:"required"`
		ColorMapping map[string]string `json:"color_mapping" bson:"color_mapping" validate:"required"`
		CreatedAt    time.Time         `json:"created_at" bson:"created_at" validate:"required"`
	}

	// ScoreComponent is one weighted component of the total analysis score.
	ScoreComponent struct {
		Name     string  `json:"name" bson:"name" validate:"required"`
		Score    float64 `json:"score" bson:"score"`
		MaxScore float64 `json:"max_score" bson:"max_score"`
		Weight   float64 `json:"weight" bson:"weight"`
	}

	// TotalScore aggregates the weighted component scores.
	TotalScore struct {
		OverallScore float64          `json:"overall_score" bson:"overall_score"`
		MaxScore     float64          `json:"max_score" bson:"max_score"`
		Rating       string           `json:"rating" bson:"rating" validate:"required"`
		Components   []ScoreComponent `json:"components" bson:"components" validate:"required,dive"`
	}

	// WaterQualityIndex is the WQI score and its rating band.
	WaterQualityIndex struct {
		Score    float64 `json:"score" bson:"score"`
		MaxScore float64 `json:"max_score" bson:"max_score"`
		Rating   string  `json:"rating" bson:"rating" validate:"required"` // "Excellent", "Good", "Fair", "Poor", "Very Poor"
	}

	// ComplianceScore summarizes regulatory compliance as a score.
	ComplianceScore struct {
		Score      float64 `json:"score" bson:"score"`
		Percentage string  `json:"percentage" bson:"percentage" validate:"required"`
		Rating     string  `json:"rating" bson:"rating" validate:"required"`
	}

	// RiskFactor is the aggregate risk assessment.
	RiskFactor struct {
		Score    float64 `json:"score" bson:"score"`
		MaxScore float64 `json:"max_score" bson:"max_score"`
		Severity string  `json:"severity" bson:"severity" validate:"required"` // "Low", "Medium", "High", "Critical"
	}

	// QualityReport combines the three headline quality measures.
	QualityReport struct {
		WaterQualityIndex *WaterQualityIndex `json:"water_quality_index" bson:"water_quality_index" validate:"required"`
		ComplianceScore   *ComplianceScore   `json:"compliance_score" bson:"compliance_score" validate:"required"`
		RiskFactor        *RiskFactor        `json:"risk_factor" bson:"risk_factor" validate:"required"`
	}

	// CompositionParameter is a single parameter in the composition report.
	CompositionParameter struct {
		ParameterName string         `json:"parameter_name" bson:"parameter_name" validate:"required"`
		Value         float64        `json:"value" bson:"value"`
		Unit          string         `json:"unit" bson:"unit" validate:"required"`
		Status        Status         `json:"status" bson:"status" validate:"required,oneof=optimal good warning critical unknown"`
		Threshold     map[string]any `json:"threshold,omitempty" bson:"threshold,omitempty"`
	}

	// ChemicalComposition is the per-parameter composition report.
	ChemicalComposition struct {
		Parameters []CompositionParameter `json:"parameters" bson:"parameters" validate:"required,dive"`
		Summary    string                 `json:"summary" bson:"summary" validate:"required"`
	}

	// BiologicalIndicator is a single biological measurement. Value is
	// free-typed: counts and presence/absence markers both occur.
	BiologicalIndicator struct {
		IndicatorName string  `json:"indicator_name" bson:"indicator_name" validate:"required"`
		Value         any     `json:"value" bson:"value"`
		Unit          *string `json:"unit,omitempty" bson:"unit,omitempty"`
		Status        string  `json:"status" bson:"status" validate:"required"`         // "Safe", "Risk", "Normal", "Abnormal"
		RiskLevel     string  `json:"risk_level" bson:"risk_level" validate:"required"` // "Low", "Medium", "High"
	}

	// BiologicalReport aggregates biological indicators.
	BiologicalReport struct {
		Indicators    []BiologicalIndicator `json:"indicators" bson:"indicators" validate:"required,dive"`
		OverallStatus string                `json:"overall_status" bson:"overall_status" validate:"required"`
	}

	// ComplianceItem is a single checklist entry against one standard.
	ComplianceItem struct {
		Parameter     string           `json:"parameter" bson:"parameter" validate:"required"`
		Standard      string           `json:"standard" bson:"standard" validate:"required"` // "WHO", "EPA", etc.
		Status        ComplianceStatus `json:"status" bson:"status" validate:"required,oneof=Passed Failed Pending N/A"`
		ActualValue   *float64         `json:"actual_value,omitempty" bson:"actual_value,omitempty"`
		RequiredValue *string          `json:"required_value,omitempty" bson:"required_value,omitempty"`
		Remarks       *string          `json:"remarks,omitempty" bson:"remarks,omitempty"`
	}

	// ComplianceChecklist is the full compliance checklist with counts.
	ComplianceChecklist struct {
		Items             []ComplianceItem `json:"items" bson:"items" validate:"required,dive"`
		OverallCompliance float64          `json:"overall_compliance" bson:"overall_compliance"` // Percentage
		PassedCount       int              `json:"passed_count" bson:"passed_count"`
		FailedCount       int              `json:"failed_count" bson:"failed_count"`
		PendingCount      int              `json:"pending_count" bson:"pending_count"`
	}

	// ContaminantRisk is the risk assessment for a single contaminant.
	ContaminantRisk struct {
		ContaminantName string   `json:"contaminant_name" bson:"contaminant_name" validate:"required"`
		Value           float64  `json:"value" bson:"value"`
		Unit            string   `json:"unit" bson:"unit" validate:"required"`
		RiskLevel       string   `json:"risk_level" bson:"risk_level" validate:"required"` // "Low", "Medium", "High", "Critical"
		Threshold       *float64 `json:"threshold,omitempty" bson:"threshold,omitempty"`
	}

	// ContaminationRisk groups contaminant risks by class.
	ContaminationRisk struct {
		HeavyMetals      []ContaminantRisk `json:"heavy_metals" bson:"heavy_metals" validate:"required,dive"`
		OrganicCompounds []ContaminantRisk `json:"organic_compounds" bson:"organic_compounds" validate:"required,dive"`
		Microbiological  []ContaminantRisk `json:"microbiological" bson:"microbiological" validate:"required,dive"`
		OverallSeverity  string            `json:"overall_severity" bson:"overall_severity" validate:"required"`
		RiskScore        float64           `json:"risk_score" bson:"risk_score"`
	}

	// WaterAnalysisResponse is the complete analysis response: report
	// identity, nine independently-validated sub-sections, and metadata.
	// The aggregate is valid iff every sub-section is valid; no cross-section
	// consistency is checked here - that belongs to whatever computed the values.
	WaterAnalysisResponse struct {
		ReportID string `json:"report_id" bson:"report_id" validate:"required"`

		ExtractedParameters  map[string]ExtractedParameter `json:"extracted_parameters" bson:"extracted_parameters" validate:"required"`
		ParameterGraph       *GraphResponse                `json:"parameter_graph" bson:"parameter_graph" validate:"required"`
		ChemicalStatus       *ChemicalStatus               `json:"chemical_status" bson:"chemical_status" validate:"required"`
		TotalScore           *TotalScore                   `json:"total_score" bson:"total_score" validate:"required"`
		QualityReport        *QualityReport                `json:"quality_report" bson:"quality_report" validate:"required"`
		ChemicalComposition  *ChemicalComposition          `json:"chemical_composition" bson:"chemical_composition" validate:"required"`
		BiologicalIndicators *BiologicalReport             `json:"biological_indicators" bson:"biological_indicators" validate:"required"`
		ComplianceChecklist  *ComplianceChecklist          `json:"compliance_checklist" bson:"compliance_checklist" validate:"required"`
		ContaminationRisk    *ContaminationRisk            `json:"contamination_risk" bson:"contamination_risk" validate:"required"`

		SampleLocation *string    `json:"sample_location,omitempty" bson:"sample_location,omitempty"`
		SampleDate     *time.Time `json:"sample_date,omitempty" bson:"sample_date,omitempty"`
		CreatedAt      time.Time  `json:"created_at" bson:"created_at" validate:"required"`
	}
)

// ApplyDefaults fills the documented default where MaxScore was omitted.
func (t *TotalScore) ApplyDefaults() {
	if t.MaxScore == 0 {
		t.MaxScore = DefaultMaxScore
	}
}

// ApplyDefaults fills the documented default where MaxScore was omitted.
func (w *WaterQualityIndex) ApplyDefaults() {
	if w.MaxScore == 0 {
		w.MaxScore = DefaultMaxScore
	}
}

// ApplyDefaults fills the documented default where MaxScore was omitted.
func (r *RiskFactor) ApplyDefaults() {
	if r.MaxScore == 0 {
		r.MaxScore = DefaultRiskMaxScore
	}
}

// ApplyDefaults cascades default filling through the score-bearing sub-sections.
func (r *WaterAnalysisResponse) ApplyDefaults() {
	if r.TotalScore != nil {
		r.TotalScore.ApplyDefaults()
	}

	if r.QualityReport != nil {
		if r.QualityReport.WaterQualityIndex != nil {
			r.QualityReport.WaterQualityIndex.ApplyDefaults()
		}

		if r.QualityReport.RiskFactor != nil {
			r.QualityReport.RiskFactor.ApplyDefaults()
		}
	}
}
