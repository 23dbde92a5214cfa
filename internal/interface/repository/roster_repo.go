package repository

import (
	"context"
	"time"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRosterRepository implements the RosterRepository interface
type MongoRosterRepository struct {
	collection *mongo.Collection
}

// NewMongoRosterRepository creates a new roster slot repository
func NewMongoRosterRepository(db *mongo.Database) repository.RosterRepository {
	collection := db.Collection("roster_slots")

	ctx := context.Background()
	dateIndex := mongo.IndexModel{
		Keys: bson.M{"date": 1},
	}
	collection.Indexes().CreateOne(ctx, dateIndex)

	return &MongoRosterRepository{
		collection: collection,
	}
}

// Upsert creates or updates a roster slot keyed by calendar event id
func (r *MongoRosterRepository) Upsert(ctx context.Context, slot *entity.RosterSlot) error {
	slot.UpdatedAt = time.Now()

	updateDoc := bson.M{
		"date":       slot.Date,
		"startTime":  slot.Start,
		"endTime":    slot.End,
		"aircraftId": slot.AircraftID,
		"pilotName":  slot.PilotName,
		"summary":    slot.Summary,
		"updatedAt":  slot.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": slot.ID}, bson.M{"$set": updateDoc}, opts)
	return err
}

// FindByDate returns the scheduling board for one calendar date
func (r *MongoRosterRepository) FindByDate(ctx context.Context, date time.Time) ([]*entity.RosterSlot, error) {
	day := entity.DateOnly(date)
	query := bson.M{"date": bson.M{"$gte": day, "$lt": day.AddDate(0, 0, 1)}}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.M{"startTime": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []*entity.RosterSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
