package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// NotificationRepository defines the interface for the notification queue
type NotificationRepository interface {
	// Create inserts a pending notification. It returns false without error
	// when a notification with the same dedupe key already exists.
	Create(ctx context.Context, notification *entity.Notification) (bool, error)
	// GetPending returns the oldest pending notifications first so a retry
	// sweep can drain the backlog in batches.
	GetPending(ctx context.Context, limit int) ([]*entity.Notification, error)
	MarkSent(ctx context.Context, id string, channel entity.Channel, sentAt time.Time) error
	MarkFailed(ctx context.Context, id string, errorMessage string) error
	MarkDelivered(ctx context.Context, id string, deliveredAt time.Time) error
	IncrementRetry(ctx context.Context, id string) error
}
