// Package schema defines the validated request/response shapes for the
// aquascope API: the complete water analysis response, its sub-section
// reports, and the request envelopes consumed by the HTTP layer.
package schema

// Status classifies a measured parameter against its threshold bands.
type Status string

// Parameter status values.
const (
	StatusOptimal  Status = "optimal"
	StatusGood     Status = "good"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
	StatusUnknown  Status = "unknown"
)

// IsValid reports whether the status is one of the closed set of values.
func (s Status) IsValid() bool {
	switch s {
	case StatusOptimal, StatusGood, StatusWarning, StatusCritical, StatusUnknown:
		return true
	}

	return false
}

// ComplianceStatus classifies a checklist item against a regulatory standard.
type ComplianceStatus string

// Compliance status values. The capitalized forms are the wire contract.
const (
	CompliancePassed        ComplianceStatus = "Passed"
	ComplianceFailed        ComplianceStatus = "Failed"
	CompliancePending       ComplianceStatus = "Pending"
	ComplianceNotApplicable ComplianceStatus = "N/A"
)

// IsValid reports whether the compliance status is one of the closed set of values.
func (s ComplianceStatus) IsValid() bool {
	switch s {
	case CompliancePassed, ComplianceFailed, CompliancePending, ComplianceNotApplicable:
		return true
	}

	return false
}
