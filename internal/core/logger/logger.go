package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every entry written by the global logger.
const ServiceName = "checkpoint-tracker"

var globalLogger *zap.Logger

// Init initializes the global logger.
// "production" writes JSON; any other environment writes coloured console lines with ISO8601 times.
// An unparsable level keeps the environment default.
func Init(environment string, level string) error {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if l, err := zapcore.ParseLevel(level); err == nil {
		config.Level = zap.NewAtomicLevelAt(l)
	}

	built, err := config.Build()
	if err != nil {
		return err
	}

	globalLogger = built.With(
		zap.String("service", ServiceName),
		zap.String("environment", environment),
	)
	return nil
}

// Get returns the global logger, or a no-op logger before Init.
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// ForShipment returns the global logger scoped to one shipment.
func ForShipment(shipmentID string) *zap.Logger {
	return Get().With(zap.String("shipment_id", shipmentID))
}

// Sync flushes any buffered log entries.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
