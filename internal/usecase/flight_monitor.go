package usecase

import (
	"context"
	"fmt"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
)

// FlightMonitor is the orchestrating loop: it selects flights due for a
// check, runs fetch -> detect -> persist -> dispatch per flight, and
// repeats on a fixed interval. Exactly one instance is expected to run;
// a second instance would duplicate fetches and notifications.
type FlightMonitor struct {
	flightRepo repository.FlightRepository
	changeRepo repository.FlightChangeRepository
	provider   repository.StatusProvider
	detector   *ChangeDetector
	dispatcher *NotificationDispatcher
	metrics    *metrics.Metrics
	logger     logger.Logger

	pollInterval     time.Duration
	interFlightDelay time.Duration
	windowBefore     time.Duration
	windowAfter      time.Duration
}

// NewFlightMonitor creates a new flight monitor
func NewFlightMonitor(
	flightRepo repository.FlightRepository,
	changeRepo repository.FlightChangeRepository,
	provider repository.StatusProvider,
	detector *ChangeDetector,
	dispatcher *NotificationDispatcher,
	metrics *metrics.Metrics,
	logger logger.Logger,
	pollInterval time.Duration,
	interFlightDelay time.Duration,
	windowBefore time.Duration,
	windowAfter time.Duration,
) *FlightMonitor {
	return &FlightMonitor{
		flightRepo:       flightRepo,
		changeRepo:       changeRepo,
		provider:         provider,
		detector:         detector,
		dispatcher:       dispatcher,
		metrics:          metrics,
		logger:           logger,
		pollInterval:     pollInterval,
		interFlightDelay: interFlightDelay,
		windowBefore:     windowBefore,
		windowAfter:      windowAfter,
	}
}

// Run polls flight statuses until the context is cancelled
func (m *FlightMonitor) Run(ctx context.Context) {
	// Run a cycle on startup before waiting for the first tick
	if err := m.RunCycle(ctx); err != nil {
		m.logger.Error("Monitoring cycle failed", "error", err)
	}

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Flight monitoring stopped")
			return
		case <-ticker.C:
			if err := m.RunCycle(ctx); err != nil {
				m.logger.Error("Monitoring cycle failed", "error", err)
			}
		}
	}
}

// RunCycle processes every flight currently inside the monitoring window.
// A failure on one flight never blocks the rest of the cycle.
func (m *FlightMonitor) RunCycle(ctx context.Context) error {
	start := time.Now()
	now := start.UTC()

	flights, err := m.flightRepo.FindDueForCheck(ctx, now.Add(-m.windowBefore), now.Add(m.windowAfter))
	if err != nil {
		m.metrics.ErrorsCount.WithLabelValues("find_due").Inc()
		return fmt.Errorf("failed to load monitoring set: %w", err)
	}

	m.logger.Info("Monitoring cycle started", "flights", len(flights))

	for i, flight := range flights {
		if i > 0 {
			// Small pause between flights to respect provider rate limits
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.interFlightDelay):
			}
		}

		if err := m.processFlight(ctx, flight, time.Now().UTC()); err != nil {
			m.logger.Error("Failed to process flight",
				"flightId", flight.ID,
				"flight", flight.CarrierCode+flight.FlightNumber,
				"error", err)
			m.metrics.ErrorsCount.WithLabelValues("process_flight").Inc()
		}
	}

	m.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	m.logger.Info("Monitoring cycle completed",
		"flights", len(flights),
		"duration", time.Since(start).String())

	return nil
}

// processFlight runs fetch -> detect -> persist -> dispatch for one flight.
// The state write always precedes dispatch; when it fails the changes are
// dropped so the next cycle re-detects them against unchanged state.
func (m *FlightMonitor) processFlight(ctx context.Context, flight *entity.Flight, checkedAt time.Time) error {
	snap, err := m.provider.Lookup(ctx, flight.CarrierCode, flight.FlightNumber, flight.DepartureDate)
	if err != nil {
		return fmt.Errorf("status fetch failed: %w", err)
	}

	m.metrics.FlightsChecked.Inc()

	if snap == nil {
		// Provider has nothing; record the check so "checked, unchanged"
		// stays distinguishable from "never checked"
		return m.flightRepo.UpdateLastStatusCheck(ctx, flight.ID, checkedAt)
	}

	changes := m.detector.Detect(flight, snap, checkedAt)

	delayMinutes := flight.DelayMinutes
	for _, change := range changes {
		switch change.ChangeType {
		case entity.ChangeDelay:
			delayMinutes = change.DelayMinutes
		case entity.ChangeBackOnTime:
			delayMinutes = 0
		}
	}

	if err := m.flightRepo.ApplySnapshot(ctx, flight.ID, snap, delayMinutes, checkedAt); err != nil {
		return fmt.Errorf("state write failed: %w", err)
	}

	for _, change := range changes {
		if err := m.changeRepo.Create(ctx, change); err != nil {
			m.logger.Error("Failed to record flight change",
				"flightId", flight.ID,
				"changeType", change.ChangeType,
				"error", err)
			m.metrics.ErrorsCount.WithLabelValues("record_change").Inc()
			continue
		}

		m.metrics.ChangesDetected.WithLabelValues(string(change.ChangeType)).Inc()
		m.logger.Info("Flight change detected",
			"flightId", flight.ID,
			"changeType", change.ChangeType,
			"previous", change.PreviousValue,
			"new", change.NewValue)

		m.dispatcher.DispatchChange(ctx, flight, change)
	}

	return nil
}
