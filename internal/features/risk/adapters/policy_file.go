package adapters

import (
	"fmt"
	"strings"

	"checkpoint-tracker/internal/features/risk/domain"

	"github.com/spf13/viper"
)

// LoadPolicies reads a YAML or JSON policy table keyed by product category.
// Categories missing from the file keep their built-in policy.
//
//	pharmaceutical:
//	  temperature_range: {min: 2, max: 8}
//	  max_delay_hours: 6
func LoadPolicies(path string) (map[string]domain.Policy, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var fromFile map[string]domain.Policy
	if err := v.Unmarshal(&fromFile); err != nil {
		return nil, fmt.Errorf("failed to decode policy file: %w", err)
	}

	policies := domain.DefaultPolicies()
	for category, p := range fromFile {
		policies[strings.ToLower(category)] = p
	}
	return policies, nil
}

// NewEngine builds the risk engine from path, or from the built-in table when path is empty.
func NewEngine(path string) (*domain.Engine, error) {
	if path == "" {
		return domain.DefaultEngine(), nil
	}
	policies, err := LoadPolicies(path)
	if err != nil {
		return nil, err
	}
	return domain.NewEngine(policies)
}
