package entity

import "time"

// SnapshotLeg holds the departure or arrival side of a provider snapshot.
// Zero values mean the provider did not report the field.
type SnapshotLeg struct {
	Airport       string
	Terminal      string
	Gate          string
	ScheduledTime *time.Time
	EstimatedTime *time.Time
	ActualTime    *time.Time
}

// StatusSnapshot is the normalized current-status view of one flight as
// returned by the external status provider
type StatusSnapshot struct {
	Status    FlightStatus
	Departure SnapshotLeg
	Arrival   SnapshotLeg
}
