package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// BookingRepository is the read-only collaborator interface for booking
// and traveler data
type BookingRepository interface {
	GetBooking(ctx context.Context, id uint) (*entity.Booking, error)
	GetTraveler(ctx context.Context, id uint) (*entity.Traveler, error)
}
