// internal/domain/entity/flight_change.go
package entity

import "time"

// ChangeType classifies a detected flight state transition
type ChangeType string

const (
	ChangeDelay          ChangeType = "delay"
	ChangeGateChange     ChangeType = "gate_change"
	ChangeTerminalChange ChangeType = "terminal_change"
	ChangeCancellation   ChangeType = "cancellation"
	ChangeDiversion      ChangeType = "diversion"
	ChangeBackOnTime     ChangeType = "back_on_time"
)

// FlightChange is one classified state transition, kept as an append-only
// audit record. Previous and new values are stored as strings because the
// comparands are heterogeneous (timestamps, gates, statuses).
type FlightChange struct {
	ID               string     `bson:"_id,omitempty"`
	FlightID         string     `bson:"flightId"`
	ChangeType       ChangeType `bson:"changeType"`
	PreviousValue    string     `bson:"previousValue"`
	NewValue         string     `bson:"newValue"`
	DelayMinutes     int        `bson:"delayMinutes,omitempty"`
	DetectedAt       time.Time  `bson:"detectedAt"`
	NotificationSent bool       `bson:"notificationSent"`
}
