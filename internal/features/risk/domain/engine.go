package domain

import (
	"fmt"
	"math"
	"strconv"
)

// AnomalyType classifies a detected anomaly.
type AnomalyType string

const (
	AnomalyTemperatureBreach AnomalyType = "TEMPERATURE_BREACH"
	AnomalyHumidityBreach    AnomalyType = "HUMIDITY_BREACH"
	AnomalyWeightDeviation   AnomalyType = "WEIGHT_DEVIATION"
	AnomalyDelay             AnomalyType = "DELAY"
	AnomalyDocumentTampered  AnomalyType = "DOCUMENT_TAMPERED"
)

// IsValid reports whether t is a known anomaly type.
func (t AnomalyType) IsValid() bool {
	switch t {
	case AnomalyTemperatureBreach, AnomalyHumidityBreach, AnomalyWeightDeviation, AnomalyDelay, AnomalyDocumentTampered:
		return true
	}
	return false
}

// Severity grades an anomaly.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Finding is one policy violation detected in a reading.
type Finding struct {
	Type     AnomalyType    `json:"anomaly_type"`
	Severity Severity       `json:"severity"`
	Details  map[string]any `json:"details"`
}

// Reading is the telemetry evaluated against a policy.
type Reading struct {
	Category    string
	Temperature *float64
	Humidity    *float64
	WeightKg    float64
	// ExpectedWeightKg is the baseline weight; weight is not checked without one.
	ExpectedWeightKg *float64
	DelayHours       float64
}

// Engine evaluates readings against a read-only policy table.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	policies map[string]Policy
}

// NewEngine validates policies and builds an Engine. The table must contain DefaultCategory.
func NewEngine(policies map[string]Policy) (*Engine, error) {
	if _, ok := policies[DefaultCategory]; !ok {
		return nil, fmt.Errorf("%w: missing %q policy", ErrInvalidPolicy, DefaultCategory)
	}
	table := make(map[string]Policy, len(policies))
	for category, p := range policies {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("category %s: %w", category, err)
		}
		table[category] = p
	}
	return &Engine{policies: table}, nil
}

// DefaultEngine builds an Engine over DefaultPolicies.
func DefaultEngine() *Engine {
	e, err := NewEngine(DefaultPolicies())
	if err != nil {
		panic(err)
	}
	return e
}

// Policy returns the policy of category, falling back to the default policy.
func (e *Engine) Policy(category string) Policy {
	if p, ok := e.policies[category]; ok {
		return p
	}
	return e.policies[DefaultCategory]
}

// Categories lists the configured categories.
func (e *Engine) Categories() []string {
	out := make([]string, 0, len(e.policies))
	for c := range e.policies {
		out = append(out, c)
	}
	return out
}

// Evaluate returns every violation in r, in the order temperature, humidity, weight, delay.
func (e *Engine) Evaluate(r Reading) []Finding {
	p := e.Policy(r.Category)
	var findings []Finding

	if r.Temperature != nil && p.TemperatureRange != nil && !p.TemperatureRange.Contains(*r.Temperature) {
		rng := *p.TemperatureRange
		findings = append(findings, Finding{
			Type:     AnomalyTemperatureBreach,
			Severity: temperatureSeverity(*r.Temperature, rng),
			Details: map[string]any{
				"observed_temperature": *r.Temperature,
				"allowed_range":        formatNumber(rng.Min) + "-" + formatNumber(rng.Max),
				"product_category":     r.Category,
			},
		})
	}

	if r.Humidity != nil && p.HumidityMaxPct != nil && *r.Humidity > *p.HumidityMaxPct {
		findings = append(findings, Finding{
			Type:     AnomalyHumidityBreach,
			Severity: SeverityMedium,
			Details: map[string]any{
				"observed_humidity": *r.Humidity,
				"max_allowed":       *p.HumidityMaxPct,
			},
		})
	}

	if r.ExpectedWeightKg != nil && *r.ExpectedWeightKg > 0 && p.WeightTolerancePct != nil {
		expected, tolerance := *r.ExpectedWeightKg, *p.WeightTolerancePct
		deviation := math.Abs(r.WeightKg-expected) / expected * 100
		if deviation > tolerance {
			findings = append(findings, Finding{
				Type:     AnomalyWeightDeviation,
				Severity: doubledSeverity(deviation, tolerance),
				Details: map[string]any{
					"observed_weight_kg": r.WeightKg,
					"expected_weight_kg": expected,
					"deviation_pct":      math.Round(deviation*100) / 100,
					"tolerance_pct":      tolerance,
				},
			})
		}
	}

	if r.DelayHours > 0 && p.MaxDelayHours != nil && r.DelayHours > *p.MaxDelayHours {
		findings = append(findings, Finding{
			Type:     AnomalyDelay,
			Severity: doubledSeverity(r.DelayHours, *p.MaxDelayHours),
			Details: map[string]any{
				"delay_hours":       r.DelayHours,
				"max_allowed_hours": *p.MaxDelayHours,
			},
		})
	}

	return findings
}

// temperatureSeverity grades by deviation relative to the range width.
func temperatureSeverity(observed float64, rng Range) Severity {
	size := rng.Max - rng.Min
	if size == 0 {
		return SeverityCritical
	}
	deviation := observed - rng.Max
	if observed < rng.Min {
		deviation = rng.Min - observed
	}
	switch ratio := deviation / size; {
	case ratio > 1.0:
		return SeverityCritical
	case ratio > 0.5:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// doubledSeverity is HIGH past twice the limit, MEDIUM otherwise.
func doubledSeverity(value, limit float64) Severity {
	if value > limit*2 {
		return SeverityHigh
	}
	return SeverityMedium
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
