package domain

import (
	"errors"
	"fmt"
)

// DefaultCategory is the fallback policy key.
const DefaultCategory = "default"

// ErrInvalidPolicy is returned when a policy table is inconsistent.
var ErrInvalidPolicy = errors.New("invalid risk policy")

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Policy holds the thresholds of one product category. Nil fields are not evaluated.
type Policy struct {
	TemperatureRange   *Range   `json:"temperature_range,omitempty" mapstructure:"temperature_range"`
	HumidityMaxPct     *float64 `json:"humidity_max_pct,omitempty" mapstructure:"humidity_max_pct"`
	WeightTolerancePct *float64 `json:"weight_tolerance_pct,omitempty" mapstructure:"weight_tolerance_pct"`
	MaxDelayHours      *float64 `json:"max_delay_hours,omitempty" mapstructure:"max_delay_hours"`
	// MoistureMaxPct is informational; checkpoints carry no moisture reading.
	MoistureMaxPct *float64 `json:"moisture_max_pct,omitempty" mapstructure:"moisture_max_pct"`
	HazmatRequired bool     `json:"hazmat_required,omitempty" mapstructure:"hazmat_required"`
}

// Validate checks the thresholds are usable.
func (p Policy) Validate() error {
	if p.TemperatureRange != nil && p.TemperatureRange.Min > p.TemperatureRange.Max {
		return fmt.Errorf("%w: temperature min %v above max %v", ErrInvalidPolicy, p.TemperatureRange.Min, p.TemperatureRange.Max)
	}
	for name, v := range map[string]*float64{
		"humidity_max_pct":     p.HumidityMaxPct,
		"weight_tolerance_pct": p.WeightTolerancePct,
		"max_delay_hours":      p.MaxDelayHours,
		"moisture_max_pct":     p.MoistureMaxPct,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidPolicy, name)
		}
	}
	return nil
}

func threshold(v float64) *float64 { return &v }

// DefaultPolicies is the built-in policy table.
func DefaultPolicies() map[string]Policy {
	return map[string]Policy{
		"pharmaceutical": {
			TemperatureRange:   &Range{Min: 2, Max: 8},
			MaxDelayHours:      threshold(6),
			WeightTolerancePct: threshold(2),
			HumidityMaxPct:     threshold(60),
		},
		"food_grain": {
			TemperatureRange:   &Range{Min: 10, Max: 35},
			MoistureMaxPct:     threshold(14),
			MaxDelayHours:      threshold(24),
			WeightTolerancePct: threshold(5),
		},
		"lithium_battery": {
			TemperatureRange:   &Range{Min: -10, Max: 30},
			HazmatRequired:     true,
			MaxDelayHours:      threshold(12),
			WeightTolerancePct: threshold(1),
		},
		"electronics": {
			TemperatureRange:   &Range{Min: 0, Max: 40},
			HumidityMaxPct:     threshold(70),
			MaxDelayHours:      threshold(48),
			WeightTolerancePct: threshold(3),
		},
		DefaultCategory: {
			TemperatureRange:   &Range{Min: -20, Max: 50},
			MaxDelayHours:      threshold(72),
			WeightTolerancePct: threshold(10),
		},
	}
}
