package provider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"context"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// FlightStatusClient queries the external flight-status API and normalizes
// responses into status snapshots
type FlightStatusClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewFlightStatusClient creates a new flight status client. The HTTP client
// is expected to carry provider authentication (OAuth2 transport).
func NewFlightStatusClient(baseURL string, httpClient *http.Client, logger logger.Logger) repository.StatusProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &FlightStatusClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

type legPayload struct {
	Airport   string     `json:"airport"`
	Terminal  string     `json:"terminal"`
	Gate      string     `json:"gate"`
	Scheduled *time.Time `json:"scheduled"`
	Estimated *time.Time `json:"estimated"`
	Actual    *time.Time `json:"actual"`
}

type statusResponse struct {
	Data []struct {
		Status    string     `json:"status"`
		Departure legPayload `json:"departure"`
		Arrival   legPayload `json:"arrival"`
	} `json:"data"`
}

// providerStatusMap normalizes provider status strings to flight statuses
var providerStatusMap = map[string]entity.FlightStatus{
	"scheduled": entity.FlightStatusScheduled,
	"delayed":   entity.FlightStatusDelayed,
	"boarding":  entity.FlightStatusBoarding,
	"departed":  entity.FlightStatusDeparted,
	"active":    entity.FlightStatusInAir,
	"en-route":  entity.FlightStatusInAir,
	"in_air":    entity.FlightStatusInAir,
	"landed":    entity.FlightStatusLanded,
	"arrived":   entity.FlightStatusLanded,
	"cancelled": entity.FlightStatusCancelled,
	"canceled":  entity.FlightStatusCancelled,
	"diverted":  entity.FlightStatusDiverted,
}

// Lookup fetches the current status of one flight. A provider response with
// no data yields (nil, nil): "no update" is not an error and not a change.
func (c *FlightStatusClient) Lookup(ctx context.Context, carrierCode, flightNumber, departureDate string) (*entity.StatusSnapshot, error) {
	q := url.Values{}
	q.Set("carrier", carrierCode)
	q.Set("number", flightNumber)
	q.Set("date", departureDate)

	reqURL := fmt.Sprintf("%s/v1/flights/status?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query status provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug("Provider has no data for flight",
			"carrier", carrierCode, "number", flightNumber, "date", departureDate)
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status provider returned status %d", resp.StatusCode)
	}

	var payload statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	if len(payload.Data) == 0 {
		return nil, nil
	}

	// Providers may return multiple operational records; the first entry is
	// the current one for the requested departure date.
	record := payload.Data[0]
	snapshot := &entity.StatusSnapshot{
		Status:    providerStatusMap[record.Status],
		Departure: convertLeg(record.Departure),
		Arrival:   convertLeg(record.Arrival),
	}

	return snapshot, nil
}

func convertLeg(leg legPayload) entity.SnapshotLeg {
	return entity.SnapshotLeg{
		Airport:       leg.Airport,
		Terminal:      leg.Terminal,
		Gate:          leg.Gate,
		ScheduledTime: leg.Scheduled,
		EstimatedTime: leg.Estimated,
		ActualTime:    leg.Actual,
	}
}
