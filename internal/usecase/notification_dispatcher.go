package usecase

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
	"flightwatch-service/templates"
)

// NotificationDispatcher turns change events into rendered notifications and
// attempts delivery across an ordered list of channels with fallback
type NotificationDispatcher struct {
	bookingRepo      repository.BookingRepository
	airportRepo      repository.AirportRepository
	notificationRepo repository.NotificationRepository
	changeRepo       repository.FlightChangeRepository
	whatsappRepo     repository.WhatsappRepository
	smsRepo          repository.SMSRepository
	metrics          *metrics.Metrics
	logger           logger.Logger
	maxRetries       int
	batchSize        int
}

// NewNotificationDispatcher creates a new notification dispatcher
func NewNotificationDispatcher(
	bookingRepo repository.BookingRepository,
	airportRepo repository.AirportRepository,
	notificationRepo repository.NotificationRepository,
	changeRepo repository.FlightChangeRepository,
	whatsappRepo repository.WhatsappRepository,
	smsRepo repository.SMSRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	maxRetries int,
	batchSize int,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		bookingRepo:      bookingRepo,
		airportRepo:      airportRepo,
		notificationRepo: notificationRepo,
		changeRepo:       changeRepo,
		whatsappRepo:     whatsappRepo,
		smsRepo:          smsRepo,
		metrics:          metrics,
		logger:           logger,
		maxRetries:       maxRetries,
		batchSize:        batchSize,
	}
}

// DispatchChange creates a pending notification for one change event and
// attempts delivery. Delivery is best-effort and independent per event:
// no failure here ever propagates to the monitoring loop.
func (d *NotificationDispatcher) DispatchChange(ctx context.Context, flight *entity.Flight, change *entity.FlightChange) {
	notificationType, templateName := templates.Resolve(change.ChangeType)

	booking, err := d.bookingRepo.GetBooking(ctx, flight.BookingID)
	if err != nil {
		d.logger.Error("Failed to load booking", "bookingId", flight.BookingID, "error", err)
		d.metrics.ErrorsCount.WithLabelValues("load_booking").Inc()
		return
	}

	traveler, err := d.bookingRepo.GetTraveler(ctx, booking.TravelerID)
	if err != nil {
		d.logger.Error("Failed to load traveler", "travelerId", booking.TravelerID, "error", err)
		d.metrics.ErrorsCount.WithLabelValues("load_traveler").Inc()
		return
	}

	data := templates.BuildTemplateData(flight, change, booking, traveler, d.localDeparture(ctx, flight))

	notification := &entity.Notification{
		BookingID:        booking.ID,
		TravelerID:       traveler.ID,
		NotificationType: notificationType,
		Channel:          primaryChannel(traveler.PreferredChannel),
		Recipient:        traveler.Phone,
		TemplateName:     templateName,
		TemplateData:     data,
		Status:           entity.NotificationPending,
		DedupeKey:        entity.DedupeKeyFor(flight.ID, change.ChangeType, change.DetectedAt),
	}

	created, err := d.notificationRepo.Create(ctx, notification)
	if err != nil {
		d.logger.Error("Failed to create notification", "dedupeKey", notification.DedupeKey, "error", err)
		d.metrics.ErrorsCount.WithLabelValues("create_notification").Inc()
		return
	}
	if !created {
		d.logger.Debug("Notification already exists for change",
			"flightId", flight.ID, "changeType", change.ChangeType)
		return
	}

	if d.deliver(ctx, notification) {
		if err := d.changeRepo.MarkNotificationSent(ctx, change.ID); err != nil {
			d.logger.Warn("Failed to flag change as notified", "changeId", change.ID, "error", err)
		}
	}
}

// RetryPending re-attempts delivery for the pending backlog, oldest first.
// A notification that has exhausted its retry budget is failed permanently.
func (d *NotificationDispatcher) RetryPending(ctx context.Context) error {
	pending, err := d.notificationRepo.GetPending(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("Failed to load pending notifications", "error", err)
		return err
	}

	if len(pending) == 0 {
		return nil
	}

	d.logger.Info("Retrying pending notifications", "count", len(pending))

	for _, notification := range pending {
		if notification.RetryCount >= d.maxRetries {
			if err := d.notificationRepo.MarkFailed(ctx, notification.ID, "retry limit exceeded"); err != nil {
				d.logger.Error("Failed to expire notification", "notificationId", notification.ID, "error", err)
			}
			continue
		}
		d.deliver(ctx, notification)
	}

	return nil
}

// deliver attempts the preferred channel and exactly one fallback. Success
// on any channel marks the notification sent; exhausting all channels marks
// it failed with the last error.
func (d *NotificationDispatcher) deliver(ctx context.Context, notification *entity.Notification) bool {
	var lastErr error

	for _, channel := range channelOrder(notification.Channel) {
		if err := d.notificationRepo.IncrementRetry(ctx, notification.ID); err != nil {
			d.logger.Warn("Failed to increment retry count", "notificationId", notification.ID, "error", err)
		}

		err := d.send(ctx, channel, notification)
		if err == nil {
			if err := d.notificationRepo.MarkSent(ctx, notification.ID, channel, time.Now()); err != nil {
				d.logger.Error("Failed to mark notification sent", "notificationId", notification.ID, "error", err)
			}
			d.metrics.NotificationsSent.WithLabelValues(string(channel), entity.NotificationSent).Inc()
			d.logger.Info("Notification delivered",
				"notificationId", notification.ID,
				"channel", channel,
				"recipient", notification.Recipient)
			return true
		}

		lastErr = err
		d.logger.Warn("Channel delivery failed",
			"notificationId", notification.ID,
			"channel", channel,
			"error", err)
		d.metrics.NotificationsSent.WithLabelValues(string(channel), entity.NotificationFailed).Inc()
	}

	if lastErr != nil {
		if err := d.notificationRepo.MarkFailed(ctx, notification.ID, lastErr.Error()); err != nil {
			d.logger.Error("Failed to mark notification failed", "notificationId", notification.ID, "error", err)
		}
	}

	return false
}

func (d *NotificationDispatcher) send(ctx context.Context, channel entity.Channel, notification *entity.Notification) error {
	switch channel {
	case entity.ChannelSMS:
		message := templates.RenderText(notification.TemplateName, notification.TemplateData)
		return d.smsRepo.SendText(ctx, notification.Recipient, message)
	default:
		return d.whatsappRepo.SendTemplate(ctx, notification.Recipient, notification.TemplateName, notification.TemplateData)
	}
}

// localDeparture renders the scheduled departure in the departure airport's
// timezone. Missing airport data just drops the localized time from the
// message.
func (d *NotificationDispatcher) localDeparture(ctx context.Context, flight *entity.Flight) string {
	airport, err := d.airportRepo.GetByCode(ctx, flight.DepartureAirport)
	if err != nil {
		d.logger.Debug("No airport data for departure", "code", flight.DepartureAirport, "error", err)
		return ""
	}

	location, err := time.LoadLocation(airport.TzName)
	if err != nil {
		d.logger.Warn("Error loading departure location", "tz", airport.TzName, "error", err)
		return ""
	}

	return flight.ScheduledDeparture.In(location).Format("02 Jan 2006 15:04")
}

func primaryChannel(preferred entity.Channel) entity.Channel {
	if preferred == entity.ChannelSMS {
		return entity.ChannelSMS
	}
	return entity.ChannelWhatsApp
}

func channelOrder(primary entity.Channel) []entity.Channel {
	if primary == entity.ChannelSMS {
		return []entity.Channel{entity.ChannelSMS, entity.ChannelWhatsApp}
	}
	return []entity.Channel{entity.ChannelWhatsApp, entity.ChannelSMS}
}
