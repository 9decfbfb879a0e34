package templates

import (
	"fmt"

	"flightwatch-service/internal/domain/entity"
)

// Template names registered with the WhatsApp gateway. SMS delivery renders
// the same templates to plain text.
const (
	TemplateFlightDelay        = "flight_delay"
	TemplateFlightCancellation = "flight_cancellation"
	TemplateGateChange         = "gate_change"
	TemplateFlightUpdate       = "flight_update"
)

// Resolve maps a change type to its notification type and template name.
// Change types without a dedicated template fall back to the generic
// flight update.
func Resolve(changeType entity.ChangeType) (notificationType, templateName string) {
	switch changeType {
	case entity.ChangeDelay:
		return "flight_delay", TemplateFlightDelay
	case entity.ChangeCancellation:
		return "flight_cancellation", TemplateFlightCancellation
	case entity.ChangeGateChange:
		return "gate_change", TemplateGateChange
	default:
		return "flight_update", TemplateFlightUpdate
	}
}

// BuildTemplateData assembles the substitution values shared by all
// channels. localDeparture is the departure time rendered in the departure
// airport's timezone; it may be empty when airport data is unavailable.
func BuildTemplateData(flight *entity.Flight, change *entity.FlightChange, booking *entity.Booking, traveler *entity.Traveler, localDeparture string) map[string]interface{} {
	data := map[string]interface{}{
		"travelerName":  traveler.FullName(),
		"bookingCode":   booking.BookingCode,
		"flightNumber":  fmt.Sprintf("%s%s", flight.CarrierCode, flight.FlightNumber),
		"departureDate": flight.DepartureDate,
		"origin":        flight.DepartureAirport,
		"destination":   flight.ArrivalAirport,
		"changeType":    string(change.ChangeType),
		"previousValue": change.PreviousValue,
		"newValue":      change.NewValue,
	}

	if change.ChangeType == entity.ChangeDelay {
		data["delayMinutes"] = change.DelayMinutes
	}
	if localDeparture != "" {
		data["localDeparture"] = localDeparture
	}

	return data
}

// RenderText renders a template to the plain-text body used for SMS
func RenderText(templateName string, data map[string]interface{}) string {
	name := str(data, "travelerName")
	flightNo := str(data, "flightNumber")
	code := str(data, "bookingCode")

	switch templateName {
	case TemplateFlightDelay:
		return fmt.Sprintf(
			"Hi %s, your flight %s (booking %s) is delayed by %v minutes. New estimated departure: %s.",
			name, flightNo, code, data["delayMinutes"], str(data, "newValue"))
	case TemplateFlightCancellation:
		return fmt.Sprintf(
			"Hi %s, your flight %s (booking %s) has been cancelled. Please contact your travel organizer for rebooking options.",
			name, flightNo, code)
	case TemplateGateChange:
		return fmt.Sprintf(
			"Hi %s, the departure gate for flight %s (booking %s) changed from %s to %s.",
			name, flightNo, code, str(data, "previousValue"), str(data, "newValue"))
	default:
		return fmt.Sprintf(
			"Hi %s, there is an update for flight %s (booking %s): %s changed from %s to %s.",
			name, flightNo, code, str(data, "changeType"), str(data, "previousValue"), str(data, "newValue"))
	}
}

func str(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
