package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "LOG_LEVEL", "SERVER_PORT",
	"STORE_DRIVER", "REDIS_URL", "DATABASE_URL",
	"LEDGER_DRIVER", "LEDGER_URL", "LEDGER_API_KEY", "LEDGER_TIMEOUT_SECONDS",
	"INTERPRETER_DRIVER", "INTERPRETER_URL", "INTERPRETER_API_KEY",
	"INTERPRETER_TIMEOUT_SECONDS", "INTERPRETER_CONCURRENCY",
	"RISK_POLICY_FILE", "NETWORK_FILE", "KAFKA_BROKER", "KAFKA_TOPIC",
}

// clearEnv removes every configuration key from the environment for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		if prev, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
	}
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, DriverStub, cfg.Ledger.Driver)
	assert.Equal(t, DriverStub, cfg.Interpreter.Driver)
	assert.Equal(t, 5*time.Second, cfg.Interpreter.Timeout())
	assert.Equal(t, 30*time.Second, cfg.Ledger.Timeout())
	assert.Equal(t, 4, cfg.Interpreter.Concurrency)
	assert.Equal(t, "shipment.events", cfg.Events.Topic)
	assert.Empty(t, cfg.Events.Broker)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("LEDGER_DRIVER", "http")
	t.Setenv("LEDGER_URL", "https://ledger.example.com")
	t.Setenv("INTERPRETER_TIMEOUT_SECONDS", "2")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "redis://cache:6379/2", cfg.Store.RedisURL)
	assert.Equal(t, DriverHTTP, cfg.Ledger.Driver)
	assert.Equal(t, "https://ledger.example.com", cfg.Ledger.URL)
	assert.Equal(t, 2*time.Second, cfg.Interpreter.Timeout())
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	clearEnv(t)
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
LEDGER_DRIVER=memory
KAFKA_BROKER=localhost:9092
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, DriverMemory, cfg.Ledger.Driver)
	assert.Equal(t, "localhost:9092", cfg.Events.Broker)
}

// TestLoad_DriverValidation verifies driver names and driver dependencies are checked.
func TestLoad_DriverValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "Unknown store driver",
			env:     map[string]string{"STORE_DRIVER": "mongo"},
			wantErr: "unsupported STORE_DRIVER",
		},
		{
			name:    "Postgres without DSN",
			env:     map[string]string{"STORE_DRIVER": "postgres"},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "HTTP ledger without URL",
			env:     map[string]string{"LEDGER_DRIVER": "http"},
			wantErr: "LEDGER_URL",
		},
		{
			name:    "HTTP interpreter without URL",
			env:     map[string]string{"INTERPRETER_DRIVER": "http"},
			wantErr: "INTERPRETER_URL",
		},
		{
			name:    "Unknown ledger driver",
			env:     map[string]string{"LEDGER_DRIVER": "fabric"},
			wantErr: "unsupported LEDGER_DRIVER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(".")
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestValidateRequired verifies that missing required fields return an error.
func TestValidateRequired(t *testing.T) {
	type nested struct {
		Token string `mapstructure:"TOKEN" required:"true"`
	}
	type sample struct {
		Name   string `mapstructure:"NAME" required:"true"`
		Nested nested `mapstructure:",squash"`
	}

	err := validateRequired(&sample{Name: "ok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required configuration: TOKEN")

	err = validateRequired(&sample{Name: "ok", Nested: nested{Token: "t"}})
	assert.NoError(t, err)
}
