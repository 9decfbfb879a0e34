package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"flightwatch-service/internal/domain/entity"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		changeType       entity.ChangeType
		notificationType string
		templateName     string
	}{
		{entity.ChangeDelay, "flight_delay", TemplateFlightDelay},
		{entity.ChangeCancellation, "flight_cancellation", TemplateFlightCancellation},
		{entity.ChangeGateChange, "gate_change", TemplateGateChange},
		{entity.ChangeTerminalChange, "flight_update", TemplateFlightUpdate},
		{entity.ChangeDiversion, "flight_update", TemplateFlightUpdate},
		{entity.ChangeBackOnTime, "flight_update", TemplateFlightUpdate},
	}

	for _, tt := range tests {
		notificationType, templateName := Resolve(tt.changeType)
		assert.Equal(t, tt.notificationType, notificationType, "change type %s", tt.changeType)
		assert.Equal(t, tt.templateName, templateName, "change type %s", tt.changeType)
	}
}

func TestBuildTemplateData(t *testing.T) {
	flight := &entity.Flight{
		CarrierCode:        "GA",
		FlightNumber:       "152",
		DepartureDate:      "2025-03-10",
		ScheduledDeparture: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		DepartureAirport:   "CGK",
		ArrivalAirport:     "SIN",
	}
	change := &entity.FlightChange{
		ChangeType:    entity.ChangeDelay,
		PreviousValue: "2025-03-10T10:00:00Z",
		NewValue:      "2025-03-10T10:25:00Z",
		DelayMinutes:  25,
	}
	booking := &entity.Booking{BookingCode: "TRX-9981"}
	traveler := &entity.Traveler{FirstName: "Sari", LastName: "Putri"}

	data := BuildTemplateData(flight, change, booking, traveler, "10 Mar 2025 17:00")

	assert.Equal(t, "Sari Putri", data["travelerName"])
	assert.Equal(t, "TRX-9981", data["bookingCode"])
	assert.Equal(t, "GA152", data["flightNumber"])
	assert.Equal(t, "CGK", data["origin"])
	assert.Equal(t, "SIN", data["destination"])
	assert.Equal(t, 25, data["delayMinutes"])
	assert.Equal(t, "10 Mar 2025 17:00", data["localDeparture"])
}

func TestBuildTemplateDataOmitsEmptyLocalDeparture(t *testing.T) {
	flight := &entity.Flight{CarrierCode: "GA", FlightNumber: "152"}
	change := &entity.FlightChange{ChangeType: entity.ChangeGateChange}

	data := BuildTemplateData(flight, change, &entity.Booking{}, &entity.Traveler{}, "")

	_, hasLocal := data["localDeparture"]
	assert.False(t, hasLocal)
	_, hasDelay := data["delayMinutes"]
	assert.False(t, hasDelay)
}

func TestRenderTextDelay(t *testing.T) {
	message := RenderText(TemplateFlightDelay, map[string]interface{}{
		"travelerName": "Sari Putri",
		"flightNumber": "GA152",
		"bookingCode":  "TRX-9981",
		"delayMinutes": 25,
		"newValue":     "2025-03-10T10:25:00Z",
	})

	assert.Contains(t, message, "Sari Putri")
	assert.Contains(t, message, "GA152")
	assert.Contains(t, message, "delayed by 25 minutes")
	assert.Contains(t, message, "2025-03-10T10:25:00Z")
}

func TestRenderTextGateChange(t *testing.T) {
	message := RenderText(TemplateGateChange, map[string]interface{}{
		"travelerName":  "Sari Putri",
		"flightNumber":  "GA152",
		"bookingCode":   "TRX-9981",
		"previousValue": "B12",
		"newValue":      "B15",
	})

	assert.Contains(t, message, "from B12 to B15")
}

func TestRenderTextFallback(t *testing.T) {
	message := RenderText(TemplateFlightUpdate, map[string]interface{}{
		"travelerName":  "Sari Putri",
		"flightNumber":  "GA152",
		"bookingCode":   "TRX-9981",
		"changeType":    "terminal_change",
		"previousValue": "3",
		"newValue":      "2F",
	})

	assert.Contains(t, message, "terminal_change")
	assert.Contains(t, message, "from 3 to 2F")
}
