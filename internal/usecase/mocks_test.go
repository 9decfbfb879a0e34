package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/metrics"
)

// Shared across the package's tests because promauto registers globally.
var testMetrics = metrics.NewMetrics("flightwatch_test")

var (
	errMockProvider = errors.New("mock provider error")
	errMockSend     = errors.New("mock send error")
	errMockStore    = errors.New("mock store error")
)

type appliedSnapshot struct {
	flightID     string
	snap         *entity.StatusSnapshot
	delayMinutes int
}

type mockFlightRepo struct {
	flights  []*entity.Flight
	findErr  error
	applyErr error

	findFrom   time.Time
	findTo     time.Time
	applied    []appliedSnapshot
	lastChecks []string
}

func (m *mockFlightRepo) FindDueForCheck(ctx context.Context, from, to time.Time) ([]*entity.Flight, error) {
	m.findFrom = from
	m.findTo = to
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.flights, nil
}

func (m *mockFlightRepo) FindByID(ctx context.Context, id string) (*entity.Flight, error) {
	for _, f := range m.flights {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockFlightRepo) ApplySnapshot(ctx context.Context, flightID string, snap *entity.StatusSnapshot, delayMinutes int, checkedAt time.Time) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	m.applied = append(m.applied, appliedSnapshot{flightID: flightID, snap: snap, delayMinutes: delayMinutes})
	return nil
}

func (m *mockFlightRepo) UpdateLastStatusCheck(ctx context.Context, flightID string, checkedAt time.Time) error {
	m.lastChecks = append(m.lastChecks, flightID)
	return nil
}

type mockChangeRepo struct {
	createErr error

	created  []*entity.FlightChange
	notified []string
}

func (m *mockChangeRepo) Create(ctx context.Context, change *entity.FlightChange) error {
	if m.createErr != nil {
		return m.createErr
	}
	if change.ID == "" {
		change.ID = fmt.Sprintf("change-%d", len(m.created)+1)
	}
	m.created = append(m.created, change)
	return nil
}

func (m *mockChangeRepo) MarkNotificationSent(ctx context.Context, changeID string) error {
	m.notified = append(m.notified, changeID)
	return nil
}

func (m *mockChangeRepo) FindByFlightID(ctx context.Context, flightID string, limit int) ([]*entity.FlightChange, error) {
	var out []*entity.FlightChange
	for _, c := range m.created {
		if c.FlightID == flightID {
			out = append(out, c)
		}
	}
	return out, nil
}

// memNotificationRepo is an in-memory notification store with the same
// dedupe semantics as the Mongo implementation.
type memNotificationRepo struct {
	createErr error

	byKey map[string]*entity.Notification
	order []*entity.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{byKey: map[string]*entity.Notification{}}
}

func (m *memNotificationRepo) Create(ctx context.Context, n *entity.Notification) (bool, error) {
	if m.createErr != nil {
		return false, m.createErr
	}
	if _, exists := m.byKey[n.DedupeKey]; exists {
		return false, nil
	}
	if n.ID == "" {
		n.ID = fmt.Sprintf("notification-%d", len(m.order)+1)
	}
	n.CreatedAt = time.Now()
	m.byKey[n.DedupeKey] = n
	m.order = append(m.order, n)
	return true, nil
}

func (m *memNotificationRepo) GetPending(ctx context.Context, limit int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range m.order {
		if n.Status == entity.NotificationPending {
			out = append(out, n)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *memNotificationRepo) MarkSent(ctx context.Context, id string, channel entity.Channel, sentAt time.Time) error {
	n := m.find(id)
	if n == nil {
		return errors.New("notification not found")
	}
	n.Status = entity.NotificationSent
	n.Channel = channel
	n.SentAt = &sentAt
	return nil
}

func (m *memNotificationRepo) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	n := m.find(id)
	if n == nil {
		return errors.New("notification not found")
	}
	n.Status = entity.NotificationFailed
	n.ErrorMessage = errorMessage
	return nil
}

func (m *memNotificationRepo) MarkDelivered(ctx context.Context, id string, deliveredAt time.Time) error {
	n := m.find(id)
	if n == nil {
		return errors.New("notification not found")
	}
	n.Status = entity.NotificationDelivered
	n.DeliveredAt = &deliveredAt
	return nil
}

func (m *memNotificationRepo) IncrementRetry(ctx context.Context, id string) error {
	n := m.find(id)
	if n == nil {
		return errors.New("notification not found")
	}
	n.RetryCount++
	return nil
}

func (m *memNotificationRepo) find(id string) *entity.Notification {
	for _, n := range m.order {
		if n.ID == id {
			return n
		}
	}
	return nil
}

type mockBookingRepo struct {
	booking    *entity.Booking
	traveler   *entity.Traveler
	bookingErr error
}

func (m *mockBookingRepo) GetBooking(ctx context.Context, id uint) (*entity.Booking, error) {
	if m.bookingErr != nil {
		return nil, m.bookingErr
	}
	return m.booking, nil
}

func (m *mockBookingRepo) GetTraveler(ctx context.Context, id uint) (*entity.Traveler, error) {
	return m.traveler, nil
}

type mockAirportRepo struct {
	airports map[string]*entity.Airport
}

func (m *mockAirportRepo) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	if a, ok := m.airports[code]; ok {
		return a, nil
	}
	return nil, errors.New("airport not found")
}

type whatsappCall struct {
	recipient    string
	templateName string
	templateData map[string]interface{}
}

type mockWhatsappRepo struct {
	err   error
	calls []whatsappCall
}

func (m *mockWhatsappRepo) SendTemplate(ctx context.Context, recipient, templateName string, templateData map[string]interface{}) error {
	m.calls = append(m.calls, whatsappCall{recipient: recipient, templateName: templateName, templateData: templateData})
	return m.err
}

type smsCall struct {
	recipient string
	message   string
}

type mockSMSRepo struct {
	err   error
	calls []smsCall
}

func (m *mockSMSRepo) SendText(ctx context.Context, recipient, message string) error {
	m.calls = append(m.calls, smsCall{recipient: recipient, message: message})
	return m.err
}

type mockStatusProvider struct {
	lookupFunc func(carrierCode, flightNumber, departureDate string) (*entity.StatusSnapshot, error)
	calls      []string
}

func (m *mockStatusProvider) Lookup(ctx context.Context, carrierCode, flightNumber, departureDate string) (*entity.StatusSnapshot, error) {
	m.calls = append(m.calls, carrierCode+flightNumber)
	if m.lookupFunc != nil {
		return m.lookupFunc(carrierCode, flightNumber, departureDate)
	}
	return nil, nil
}
