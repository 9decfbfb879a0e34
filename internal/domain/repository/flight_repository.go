package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight state operations
type FlightRepository interface {
	// FindDueForCheck returns flights with a non-terminal status whose
	// scheduled departure falls inside [from, to], oldest departure first.
	FindDueForCheck(ctx context.Context, from, to time.Time) ([]*entity.Flight, error)
	FindByID(ctx context.Context, id string) (*entity.Flight, error)
	// ApplySnapshot writes only the fields present in the snapshot and
	// always updates lastStatusCheck.
	ApplySnapshot(ctx context.Context, flightID string, snap *entity.StatusSnapshot, delayMinutes int, checkedAt time.Time) error
	// UpdateLastStatusCheck records a successful fetch that produced no data.
	UpdateLastStatusCheck(ctx context.Context, flightID string, checkedAt time.Time) error
}
