package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported driver names.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverStub     = "stub"
	DriverHTTP     = "http"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Store holds the persistence configuration.
	Store StoreConfig `mapstructure:",squash"`

	// Ledger holds the ledger collaborator configuration.
	Ledger LedgerConfig `mapstructure:",squash"`

	// Interpreter holds the interpretation collaborator configuration.
	Interpreter InterpreterConfig `mapstructure:",squash"`

	// Domain holds optional overrides for the static domain tables.
	Domain DomainConfig `mapstructure:",squash"`

	// Events holds the event publishing configuration.
	Events EventsConfig `mapstructure:",squash"`
}

// StoreConfig selects and configures the shipment repository.
type StoreConfig struct {
	// Driver is one of memory, redis or postgres.
	Driver string `mapstructure:"STORE_DRIVER" default:"memory"`
	// RedisURL is used by the redis store and the redis ledger.
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	// DatabaseURL is the postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
}

// LedgerConfig selects and configures the ledger adapter.
type LedgerConfig struct {
	// Driver is one of stub, memory, redis or http.
	Driver string `mapstructure:"LEDGER_DRIVER" default:"stub"`
	// URL is the base URL of the ledger gateway (http driver).
	URL string `mapstructure:"LEDGER_URL"`
	// APIKey is sent as a bearer token to the ledger gateway.
	APIKey string `mapstructure:"LEDGER_API_KEY"`
	// TimeoutSeconds bounds every append and verify call.
	TimeoutSeconds int `mapstructure:"LEDGER_TIMEOUT_SECONDS" default:"30"`
}

// Timeout returns the ledger call timeout.
func (c LedgerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// InterpreterConfig selects and configures the interpretation adapter.
type InterpreterConfig struct {
	// Driver is one of stub or http.
	Driver string `mapstructure:"INTERPRETER_DRIVER" default:"stub"`
	// URL is the base URL of the interpretation gateway (http driver).
	URL string `mapstructure:"INTERPRETER_URL"`
	// APIKey is sent as a bearer token to the interpretation gateway.
	APIKey string `mapstructure:"INTERPRETER_API_KEY"`
	// TimeoutSeconds bounds each interpretation or classification call.
	TimeoutSeconds int `mapstructure:"INTERPRETER_TIMEOUT_SECONDS" default:"5"`
	// Concurrency caps the enrichments running at once for a single checkpoint.
	Concurrency int `mapstructure:"INTERPRETER_CONCURRENCY" default:"4"`
}

// Timeout returns the interpretation call timeout.
func (c InterpreterConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DomainConfig points at optional files replacing the built-in tables.
type DomainConfig struct {
	// RiskPolicyFile is a YAML or JSON risk policy table.
	RiskPolicyFile string `mapstructure:"RISK_POLICY_FILE"`
	// NetworkFile is a YAML transit network.
	NetworkFile string `mapstructure:"NETWORK_FILE"`
}

// EventsConfig configures the kafka publisher. An empty broker disables publishing.
type EventsConfig struct {
	Broker string `mapstructure:"KAFKA_BROKER"`
	Topic  string `mapstructure:"KAFKA_TOPIC" default:"shipment.events"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := validateDrivers(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields, binds env keys and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// validateDrivers checks driver names and the settings each driver depends on.
func validateDrivers(c *AppConfig) error {
	c.Store.Driver = strings.ToLower(c.Store.Driver)
	c.Ledger.Driver = strings.ToLower(c.Ledger.Driver)
	c.Interpreter.Driver = strings.ToLower(c.Interpreter.Driver)

	switch c.Store.Driver {
	case DriverMemory, DriverRedis:
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("missing required configuration: DATABASE_URL")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %q", c.Store.Driver)
	}

	switch c.Ledger.Driver {
	case DriverStub, DriverMemory, DriverRedis:
	case DriverHTTP:
		if c.Ledger.URL == "" {
			return fmt.Errorf("missing required configuration: LEDGER_URL")
		}
	default:
		return fmt.Errorf("unsupported LEDGER_DRIVER: %q", c.Ledger.Driver)
	}

	switch c.Interpreter.Driver {
	case DriverStub:
	case DriverHTTP:
		if c.Interpreter.URL == "" {
			return fmt.Errorf("missing required configuration: INTERPRETER_URL")
		}
	default:
		return fmt.Errorf("unsupported INTERPRETER_DRIVER: %q", c.Interpreter.Driver)
	}

	if c.Interpreter.Concurrency < 1 {
		c.Interpreter.Concurrency = 1
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
