package usecase

import (
	"math"
	"strconv"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// ChangeDetector compares stored flight state against a fresh provider
// snapshot and classifies the differences. Detection is pure and defensive:
// malformed or partial snapshots degrade to "no change detected", since a
// false positive is worse than a missed cycle.
type ChangeDetector struct {
	delayThreshold int // minutes; differences at or below are provider jitter
}

// NewChangeDetector creates a new change detector
func NewChangeDetector(delayThresholdMinutes int) *ChangeDetector {
	return &ChangeDetector{
		delayThreshold: delayThresholdMinutes,
	}
}

// Detect returns zero or more classified changes. Rules are evaluated
// independently; a single snapshot can produce several changes.
func (d *ChangeDetector) Detect(flight *entity.Flight, snap *entity.StatusSnapshot, now time.Time) []*entity.FlightChange {
	if flight == nil || snap == nil {
		return nil
	}

	var changes []*entity.FlightChange

	if c := d.detectDelay(flight, snap, now); c != nil {
		changes = append(changes, c)
	}

	// Gate change fires only when both values are known; a first-ever
	// observation is not a change
	if gate := snap.Departure.Gate; gate != "" && flight.DepartureGate != "" && gate != flight.DepartureGate {
		changes = append(changes, &entity.FlightChange{
			FlightID:      flight.ID,
			ChangeType:    entity.ChangeGateChange,
			PreviousValue: flight.DepartureGate,
			NewValue:      gate,
			DetectedAt:    now,
		})
	}

	if terminal := snap.Departure.Terminal; terminal != "" && flight.DepartureTerminal != "" && terminal != flight.DepartureTerminal {
		changes = append(changes, &entity.FlightChange{
			FlightID:      flight.ID,
			ChangeType:    entity.ChangeTerminalChange,
			PreviousValue: flight.DepartureTerminal,
			NewValue:      terminal,
			DetectedAt:    now,
		})
	}

	if snap.Status == entity.FlightStatusCancelled && flight.Status != entity.FlightStatusCancelled {
		changes = append(changes, &entity.FlightChange{
			FlightID:      flight.ID,
			ChangeType:    entity.ChangeCancellation,
			PreviousValue: string(flight.Status),
			NewValue:      string(entity.FlightStatusCancelled),
			DetectedAt:    now,
		})
	}

	if snap.Status == entity.FlightStatusDiverted && flight.Status != entity.FlightStatusDiverted {
		newValue := snap.Arrival.Airport
		if newValue == "" {
			newValue = string(entity.FlightStatusDiverted)
		}
		changes = append(changes, &entity.FlightChange{
			FlightID:      flight.ID,
			ChangeType:    entity.ChangeDiversion,
			PreviousValue: flight.ArrivalAirport,
			NewValue:      newValue,
			DetectedAt:    now,
		})
	}

	return changes
}

// detectDelay classifies estimated-departure movement. The estimate is
// compared against the stored estimate first so an already-applied delay
// does not fire again on the next cycle.
func (d *ChangeDetector) detectDelay(flight *entity.Flight, snap *entity.StatusSnapshot, now time.Time) *entity.FlightChange {
	est := snap.Departure.EstimatedTime
	if est == nil || flight.ScheduledDeparture.IsZero() {
		return nil
	}
	if flight.EstimatedDeparture != nil && flight.EstimatedDeparture.Equal(*est) {
		return nil
	}

	minutes := int(math.Round(est.Sub(flight.ScheduledDeparture).Minutes()))

	// Strictly greater than the threshold: exactly 15 minutes is jitter
	if minutes > d.delayThreshold {
		return &entity.FlightChange{
			FlightID:      flight.ID,
			ChangeType:    entity.ChangeDelay,
			PreviousValue: flight.ScheduledDeparture.UTC().Format(time.RFC3339),
			NewValue:      est.UTC().Format(time.RFC3339),
			DelayMinutes:  minutes,
			DetectedAt:    now,
		}
	}

	// Previously delayed flight has come back inside the threshold
	if flight.DelayMinutes > 0 {
		return &entity.FlightChange{
			FlightID:      flight.ID,
			ChangeType:    entity.ChangeBackOnTime,
			PreviousValue: strconv.Itoa(flight.DelayMinutes),
			NewValue:      strconv.Itoa(minutes),
			DetectedAt:    now,
		}
	}

	return nil
}
