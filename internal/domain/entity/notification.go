// internal/domain/entity/notification.go
package entity

import (
	"fmt"
	"time"
)

// Notification delivery status
const (
	NotificationPending   = "pending"
	NotificationSent      = "sent"
	NotificationFailed    = "failed"
	NotificationDelivered = "delivered"
)

// Channel is a delivery medium for notifications
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
)

// Notification represents one outbound message attempt tied to a booking
// and traveler. Status moves pending -> sent|failed; delivered is only set
// from an external delivery receipt.
type Notification struct {
	ID               string                 `bson:"_id,omitempty"`
	BookingID        uint                   `bson:"bookingId"`
	TravelerID       uint                   `bson:"travelerId"`
	NotificationType string                 `bson:"notificationType"`
	Channel          Channel                `bson:"channel"`
	Recipient        string                 `bson:"recipient"`
	TemplateName     string                 `bson:"templateName"`
	TemplateData     map[string]interface{} `bson:"templateData,omitempty"`
	Status           string                 `bson:"status"`
	ErrorMessage     string                 `bson:"errorMessage,omitempty"`
	RetryCount       int                    `bson:"retryCount"`
	DedupeKey        string                 `bson:"dedupeKey"`
	SentAt           *time.Time             `bson:"sentAt,omitempty"`
	DeliveredAt      *time.Time             `bson:"deliveredAt,omitempty"`
	CreatedAt        time.Time              `bson:"createdAt"`
	UpdatedAt        time.Time              `bson:"updatedAt"`
}

// DedupeKeyFor builds the idempotency key that prevents duplicate
// notifications when processing is interrupted between the audit write
// and dispatch completion.
func DedupeKeyFor(flightID string, changeType ChangeType, detectedAt time.Time) string {
	return fmt.Sprintf("%s:%s:%d", flightID, changeType, detectedAt.UTC().Unix())
}
