package model

// Warning is a diagnostic record attached to a report. Expected business
// conditions (low-confidence matches, allocation imbalance, unclassified
// lines) are reported as data, never as errors; the caller decides what to
// surface to the user.
type Warning struct {
	Type        WarningType            `json:"type"`
	Severity    Severity               `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// WarningType classifies a diagnostic warning.
type WarningType string

const (
	WarningLowConfidence       WarningType = "low_confidence_match" // match below the review threshold
	WarningOverAllocation      WarningType = "over_allocation"      // children exceed the parent amount
	WarningUnallocatedResidual WarningType = "unallocated_residual" // allocation left a remainder on the parent
	WarningUnknownParent       WarningType = "unknown_parent"       // split references a parent with no amounts
	WarningUnclassifiedLine    WarningType = "unclassified_line"    // no classification rule applied
)

// Severity indicates the importance of a warning.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)
