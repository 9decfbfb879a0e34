// internal/domain/entity/flight.go
package entity

import (
	"time"
)

// FlightStatus represents the lifecycle state of a monitored flight
type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusDelayed   FlightStatus = "delayed"
	FlightStatusBoarding  FlightStatus = "boarding"
	FlightStatusDeparted  FlightStatus = "departed"
	FlightStatusInAir     FlightStatus = "in_air"
	FlightStatusLanded    FlightStatus = "landed"
	FlightStatusCancelled FlightStatus = "cancelled"
	FlightStatusDiverted  FlightStatus = "diverted"
)

// IsTerminal reports whether the flight should be excluded from further monitoring
func (s FlightStatus) IsTerminal() bool {
	return s == FlightStatusLanded || s == FlightStatusCancelled
}

// Flight represents one monitored leg of a booking
type Flight struct {
	ID                 string       `bson:"_id,omitempty"`
	BookingID          uint         `bson:"bookingId"`
	CarrierCode        string       `bson:"carrierCode"` // 2-letter IATA
	FlightNumber       string       `bson:"flightNumber"`
	DepartureDate      string       `bson:"departureDate"` // YYYY-MM-DD
	ScheduledDeparture time.Time    `bson:"scheduledDeparture"`
	EstimatedDeparture *time.Time   `bson:"estimatedDeparture,omitempty"`
	ActualDeparture    *time.Time   `bson:"actualDeparture,omitempty"`
	ScheduledArrival   time.Time    `bson:"scheduledArrival"`
	EstimatedArrival   *time.Time   `bson:"estimatedArrival,omitempty"`
	ActualArrival      *time.Time   `bson:"actualArrival,omitempty"`
	DepartureAirport   string       `bson:"departureAirport"`
	ArrivalAirport     string       `bson:"arrivalAirport"`
	DepartureTerminal  string       `bson:"departureTerminal,omitempty"`
	DepartureGate      string       `bson:"departureGate,omitempty"`
	ArrivalTerminal    string       `bson:"arrivalTerminal,omitempty"`
	ArrivalGate        string       `bson:"arrivalGate,omitempty"`
	Status             FlightStatus `bson:"status"`
	DelayMinutes       int          `bson:"delayMinutes"`
	LastStatusCheck    *time.Time   `bson:"lastStatusCheck,omitempty"`
	CreatedAt          time.Time    `bson:"createdAt"`
	UpdatedAt          time.Time    `bson:"updatedAt"`
}
