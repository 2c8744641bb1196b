package service

import (
	"context"
	"time"

	"checkpoint-tracker/internal/core/events"
	"checkpoint-tracker/internal/core/logger"

	"go.uber.org/zap"
)

// publish emits a domain event. Failures are logged and otherwise ignored.
func publish(ctx context.Context, p events.Publisher, eventType, shipmentID string, at time.Time, payload any) {
	if p == nil {
		return
	}
	err := p.Publish(ctx, events.Envelope{
		Type:       eventType,
		ShipmentID: shipmentID,
		OccurredAt: at,
		Payload:    payload,
	})
	if err != nil {
		logger.Get().Warn("Failed to publish event",
			zap.String("type", eventType),
			zap.String("shipment_id", shipmentID),
			zap.Error(err),
		)
	}
}
