package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormBookingRepository implements the BookingRepository interface
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GORM booking repository
func NewGormBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &GormBookingRepository{
		db: db,
	}
}

// Bookings GORM model for database mapping
type Bookings struct {
	gorm.Model
	ID             uint           `gorm:"primaryKey"`
	TravelerID     uint           `gorm:"column:traveler_id"`
	BookingCode    string         `gorm:"column:booking_code;unique"`
	OrganizationID string         `gorm:"column:organization_id"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the default table name
func (Bookings) TableName() string {
	return "t_bookings"
}

// Travelers GORM model for database mapping
type Travelers struct {
	gorm.Model
	ID               uint           `gorm:"primaryKey"`
	FirstName        string         `gorm:"column:first_name"`
	LastName         string         `gorm:"column:last_name"`
	Phone            string         `gorm:"column:phone"`
	PreferredChannel string         `gorm:"column:preferred_channel"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName overrides the default table name
func (Travelers) TableName() string {
	return "t_travelers"
}

// GetBooking finds a booking by id
func (r *GormBookingRepository) GetBooking(ctx context.Context, id uint) (*entity.Booking, error) {
	var booking Bookings
	result := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&booking)

	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.Booking{
		ID:             booking.ID,
		TravelerID:     booking.TravelerID,
		BookingCode:    booking.BookingCode,
		OrganizationID: booking.OrganizationID,
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
		DeletedAt:      booking.DeletedAt,
	}, nil
}

// GetTraveler finds a traveler by id
func (r *GormBookingRepository) GetTraveler(ctx context.Context, id uint) (*entity.Traveler, error) {
	var traveler Travelers
	result := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&traveler)

	if result.Error != nil {
		return nil, result.Error
	}

	return &entity.Traveler{
		ID:               traveler.ID,
		FirstName:        traveler.FirstName,
		LastName:         traveler.LastName,
		Phone:            traveler.Phone,
		PreferredChannel: entity.Channel(traveler.PreferredChannel),
		CreatedAt:        traveler.CreatedAt,
		UpdatedAt:        traveler.UpdatedAt,
		DeletedAt:        traveler.DeletedAt,
	}, nil
}
