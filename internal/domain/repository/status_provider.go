package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// StatusProvider adapts the external flight-status source.
// Lookup returns (nil, nil) when the provider has no data for the flight;
// that is "no update", not an error, and must not be treated as a change.
type StatusProvider interface {
	Lookup(ctx context.Context, carrierCode, flightNumber, departureDate string) (*entity.StatusSnapshot, error)
}
