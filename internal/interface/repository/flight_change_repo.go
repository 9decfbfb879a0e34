package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightChangeRepository implements FlightChangeRepository
type MongoFlightChangeRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightChangeRepository creates a new flight change repository
func NewMongoFlightChangeRepository(db *mongo.Database) repository.FlightChangeRepository {
	collection := db.Collection("flight_changes")

	ctx := context.Background()
	auditIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "flightId", Value: 1},
			{Key: "detectedAt", Value: -1},
		},
	}
	collection.Indexes().CreateOne(ctx, auditIndex)

	return &MongoFlightChangeRepository{
		collection: collection,
	}
}

// Create appends a change record to the audit log
func (r *MongoFlightChangeRepository) Create(ctx context.Context, change *entity.FlightChange) error {
	if change.ID == "" {
		change.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.collection.InsertOne(ctx, change)
	return err
}

// MarkNotificationSent flags the change once its notification went out
func (r *MongoFlightChangeRepository) MarkNotificationSent(ctx context.Context, changeID string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": changeID},
		bson.M{"$set": bson.M{"notificationSent": true}},
	)
	return err
}

// FindByFlightID returns the most recent changes for one flight
func (r *MongoFlightChangeRepository) FindByFlightID(ctx context.Context, flightID string, limit int) ([]*entity.FlightChange, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"flightId": flightID}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "detectedAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var changes []*entity.FlightChange
	if err := cursor.All(ctx, &changes); err != nil {
		return nil, err
	}

	return changes, nil
}
