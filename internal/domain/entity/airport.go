package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents airport reference data, including the IANA timezone
// used to render local departure times in notifications
type Airport struct {
	ID          uint
	AirportCode string
	AirportName string
	CityName    string
	TzName      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}
