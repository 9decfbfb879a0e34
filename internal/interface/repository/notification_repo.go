// internal/interface/repository/notification_repo.go
package repository

import (
	"context"
	"fmt"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationRepository implements the NotificationRepository interface
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoDB notification repository
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	collection := db.Collection("notifications")

	ctx := context.Background()

	// Unique index on dedupeKey enforces at-most-one notification per
	// detected change even when dispatch is interrupted and re-run
	dedupeIndex := mongo.IndexModel{
		Keys:    bson.M{"dedupeKey": 1},
		Options: options.Index().SetUnique(true),
	}

	// Compound index for draining pending notifications oldest first
	pendingIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "createdAt", Value: 1},
		},
	}

	bookingIndex := mongo.IndexModel{
		Keys: bson.M{"bookingId": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		dedupeIndex,
		pendingIndex,
		bookingIndex,
	})

	return &MongoNotificationRepository{
		collection: collection,
	}
}

// Create inserts a pending notification. Returns false when a notification
// with the same dedupe key already exists.
func (r *MongoNotificationRepository) Create(ctx context.Context, notification *entity.Notification) (bool, error) {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.Status == "" {
		notification.Status = entity.NotificationPending
	}
	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetPending returns the oldest pending notifications first
func (r *MongoNotificationRepository) GetPending(ctx context.Context, limit int) ([]*entity.Notification, error) {
	filter := bson.M{"status": entity.NotificationPending}

	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "createdAt", Value: 1}}, // Process oldest first
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []*entity.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkSent records a successful delivery and the channel that carried it.
// Re-marking a sent notification is a no-op; delivered is never regressed.
func (r *MongoNotificationRepository) MarkSent(ctx context.Context, id string, channel entity.Channel, sentAt time.Time) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":    id,
			"status": bson.M{"$ne": entity.NotificationDelivered},
		},
		bson.M{"$set": bson.M{
			"status":    entity.NotificationSent,
			"channel":   channel,
			"sentAt":    sentAt,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	return nil
}

// MarkFailed records exhaustion of all delivery channels with the last error
func (r *MongoNotificationRepository) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":    id,
			"status": entity.NotificationPending,
		},
		bson.M{"$set": bson.M{
			"status":       entity.NotificationFailed,
			"errorMessage": errorMessage,
			"updatedAt":    time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification failed: %w", err)
	}
	return nil
}

// MarkDelivered is only reachable from sent, via an external delivery receipt
func (r *MongoNotificationRepository) MarkDelivered(ctx context.Context, id string, deliveredAt time.Time) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":    id,
			"status": entity.NotificationSent,
		},
		bson.M{"$set": bson.M{
			"status":      entity.NotificationDelivered,
			"deliveredAt": deliveredAt,
			"updatedAt":   time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification delivered: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no sent notification with id: %s", id)
	}
	return nil
}

// IncrementRetry bumps the attempt counter; it counts every delivery
// attempt, success or failure
func (r *MongoNotificationRepository) IncrementRetry(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"retryCount": 1},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}
