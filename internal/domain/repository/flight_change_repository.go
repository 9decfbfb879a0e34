package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// FlightChangeRepository defines the interface for the append-only change
// audit log. Records are only ever inserted and flagged, never updated
// otherwise.
type FlightChangeRepository interface {
	Create(ctx context.Context, change *entity.FlightChange) error
	MarkNotificationSent(ctx context.Context, changeID string) error
	FindByFlightID(ctx context.Context, flightID string, limit int) ([]*entity.FlightChange, error)
}
