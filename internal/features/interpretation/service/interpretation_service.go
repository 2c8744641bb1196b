package service

import (
	"context"
	"time"

	"checkpoint-tracker/internal/core/logger"
	"checkpoint-tracker/internal/core/metrics"
	"checkpoint-tracker/internal/features/interpretation/domain"
	"checkpoint-tracker/internal/features/interpretation/ports"

	"go.uber.org/zap"
)

// Status values reported for an interpretation.
const (
	StatusInterpreted = "interpreted"
	StatusFallback    = "fallback"
)

// InterpretationService time-boxes interpreter calls and substitutes placeholders on failure.
type InterpretationService struct {
	interpreter ports.Interpreter
	timeout     time.Duration
}

// NewInterpretationService creates an InterpretationService with a per-call timeout.
func NewInterpretationService(interpreter ports.Interpreter, timeout time.Duration) *InterpretationService {
	return &InterpretationService{
		interpreter: interpreter,
		timeout:     timeout,
	}
}

// Interpret returns the assessment of one anomaly and its status. On error or timeout the
// placeholder carrying severity is returned with StatusFallback.
func (s *InterpretationService) Interpret(ctx context.Context, anomaly domain.AnomalyContext, severity string) (domain.Assessment, string) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	assessment, err := s.interpreter.InterpretAnomaly(ctx, anomaly)
	if err != nil {
		logger.Get().Warn("Anomaly interpretation failed, using placeholder",
			zap.Any("anomaly", anomaly["anomaly"]),
			zap.Error(err),
		)
		metrics.InterpretationsTotal.WithLabelValues(StatusFallback).Inc()
		return domain.PlaceholderAssessment(severity), StatusFallback
	}

	metrics.InterpretationsTotal.WithLabelValues(StatusInterpreted).Inc()
	return assessment, StatusInterpreted
}

// Classify infers a risk profile from the documents, falling back to the default category.
func (s *InterpretationService) Classify(ctx context.Context, docs domain.Documents) domain.Classification {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := s.interpreter.ClassifyShipment(ctx, docs)
	if err != nil {
		logger.Get().Warn("Shipment classification failed, using default category", zap.Error(err))
		return domain.DefaultClassification(err)
	}
	return c
}
