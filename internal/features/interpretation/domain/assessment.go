package domain

import "errors"

// ErrInterpreterUnavailable is returned by adapters when the interpreter cannot be reached.
var ErrInterpreterUnavailable = errors.New("interpreter unavailable")

// AnomalyContext is the free-form description of an anomaly sent for interpretation.
type AnomalyContext map[string]any

// Assessment is the business interpretation of an anomaly.
type Assessment struct {
	RiskAssessment    string `json:"risk_assessment"`
	BusinessImpact    string `json:"business_impact"`
	RecommendedAction string `json:"recommended_action"`
	SeverityLevel     string `json:"severity_level"`
}

// PlaceholderAssessment is substituted when interpretation fails. It keeps the detected severity.
func PlaceholderAssessment(severity string) Assessment {
	return Assessment{
		RiskAssessment:    "Unable to generate AI assessment.",
		BusinessImpact:    "Unknown",
		RecommendedAction: "Manual review required.",
		SeverityLevel:     severity,
	}
}

// Documents are the shipment document texts used for classification.
type Documents struct {
	PurchaseOrder string `json:"po_text"`
	Invoice       string `json:"invoice_text"`
	BillOfLading  string `json:"bol_text"`
}

// Classification is the risk profile inferred from shipment documents.
type Classification struct {
	ProductCategory    string   `json:"product_category"`
	RiskFlags          []string `json:"risk_flags"`
	HazardClass        *string  `json:"hazard_class"`
	ComplianceRequired []string `json:"compliance_required"`
	ConfidenceScore    float64  `json:"confidence_score"`
	Error              string   `json:"error,omitempty"`
}

// DefaultClassification is substituted when classification fails.
func DefaultClassification(err error) Classification {
	c := Classification{
		ProductCategory:    "default",
		RiskFlags:          []string{},
		ComplianceRequired: []string{},
	}
	if err != nil {
		c.Error = err.Error()
	}
	return c
}
