package entity

import (
	"time"

	"gorm.io/gorm"
)

// Booking is the reservation a monitored flight belongs to. Bookings are
// created and owned by the booking service; this service only reads them.
type Booking struct {
	ID             uint
	TravelerID     uint
	BookingCode    string
	OrganizationID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt
}

// Traveler holds the contact details used for notification delivery
type Traveler struct {
	ID               uint
	FirstName        string
	LastName         string
	Phone            string
	PreferredChannel Channel
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt
}

// FullName returns the traveler's display name
func (t *Traveler) FullName() string {
	if t.FirstName == "" {
		return t.LastName
	}
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}
