package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRepository implements FlightRepository
type MongoFlightRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRepository creates a new flight repository
func NewMongoFlightRepository(db *mongo.Database) repository.FlightRepository {
	collection := db.Collection("flights")

	ctx := context.Background()

	// Compound index backing the monitoring-set query
	monitoringIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "scheduledDeparture", Value: 1},
		},
	}

	bookingIndex := mongo.IndexModel{
		Keys: bson.M{"bookingId": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		monitoringIndex,
		bookingIndex,
	})

	return &MongoFlightRepository{
		collection: collection,
	}
}

// FindDueForCheck returns non-terminal flights departing inside [from, to],
// in scheduled departure order
func (r *MongoFlightRepository) FindDueForCheck(ctx context.Context, from, to time.Time) ([]*entity.Flight, error) {
	filter := bson.M{
		"status": bson.M{"$nin": []entity.FlightStatus{
			entity.FlightStatusLanded,
			entity.FlightStatusCancelled,
		}},
		"scheduledDeparture": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}

	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Sort: bson.D{{Key: "scheduledDeparture", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var flights []*entity.Flight
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}

	return flights, nil
}

// FindByID finds a flight by ID
func (r *MongoFlightRepository) FindByID(ctx context.Context, id string) (*entity.Flight, error) {
	var flight entity.Flight
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&flight)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// ApplySnapshot writes only the fields actually present in the snapshot so
// an incomplete provider response never erases known state. The last status
// check timestamp is always updated.
func (r *MongoFlightRepository) ApplySnapshot(ctx context.Context, flightID string, snap *entity.StatusSnapshot, delayMinutes int, checkedAt time.Time) error {
	set := bson.M{
		"lastStatusCheck": checkedAt,
		"delayMinutes":    delayMinutes,
		"updatedAt":       time.Now(),
	}

	if snap.Status != "" {
		set["status"] = snap.Status
	}

	if snap.Departure.Terminal != "" {
		set["departureTerminal"] = snap.Departure.Terminal
	}
	if snap.Departure.Gate != "" {
		set["departureGate"] = snap.Departure.Gate
	}
	if snap.Departure.EstimatedTime != nil {
		set["estimatedDeparture"] = snap.Departure.EstimatedTime
	}
	if snap.Departure.ActualTime != nil {
		set["actualDeparture"] = snap.Departure.ActualTime
	}

	if snap.Arrival.Airport != "" {
		set["arrivalAirport"] = snap.Arrival.Airport
	}
	if snap.Arrival.Terminal != "" {
		set["arrivalTerminal"] = snap.Arrival.Terminal
	}
	if snap.Arrival.Gate != "" {
		set["arrivalGate"] = snap.Arrival.Gate
	}
	if snap.Arrival.EstimatedTime != nil {
		set["estimatedArrival"] = snap.Arrival.EstimatedTime
	}
	if snap.Arrival.ActualTime != nil {
		set["actualArrival"] = snap.Arrival.ActualTime
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": flightID},
		bson.M{"$set": set},
	)
	return err
}

// UpdateLastStatusCheck records a successful fetch that returned no data,
// distinguishing "checked, unchanged" from "never checked"
func (r *MongoFlightRepository) UpdateLastStatusCheck(ctx context.Context, flightID string, checkedAt time.Time) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": flightID},
		bson.M{"$set": bson.M{
			"lastStatusCheck": checkedAt,
			"updatedAt":       time.Now(),
		}},
	)
	return err
}
