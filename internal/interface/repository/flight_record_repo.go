package repository

import (
	"context"
	"errors"
	"time"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRecordRepository implements FlightRecordRepository
type MongoFlightRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRecordRepository creates a new flight record repository.
// The unique slot index is the store-side guard against read-then-write
// races: the engine's conflict check runs on a snapshot, so two
// concurrent submissions for the same slot can both pass it. The index
// keys include pilotId so that the two halves of an instruction pair
// (same slot, different pilot) can coexist.
func NewMongoFlightRecordRepository(db *mongo.Database) repository.FlightRecordRepository {
	collection := db.Collection("flight_records")

	ctx := context.Background()
	slotIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "aircraftId", Value: 1},
			{Key: "date", Value: 1},
			{Key: "startTime", Value: 1},
			{Key: "endTime", Value: 1},
			{Key: "pilotId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	dateIndex := mongo.IndexModel{
		Keys: bson.M{"date": 1},
	}
	pilotDateIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "pilotId", Value: 1},
			{Key: "date", Value: 1},
		},
	}
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		slotIndex,
		dateIndex,
		pilotDateIndex,
	})

	return &MongoFlightRecordRepository{
		collection: collection,
	}
}

// FindByID finds a flight record by id
func (r *MongoFlightRecordRepository) FindByID(ctx context.Context, id string) (*entity.FlightRecord, error) {
	var record entity.FlightRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByDate returns every record logged on the given calendar date,
// across both logbook types.
func (r *MongoFlightRecordRepository) FindByDate(ctx context.Context, date time.Time) ([]*entity.FlightRecord, error) {
	day := entity.DateOnly(date)
	return r.find(ctx, bson.M{"date": bson.M{"$gte": day, "$lt": day.AddDate(0, 0, 1)}})
}

// FindByDateRange returns records in [from, to], optionally filtered.
// The pilot filter matches records where the person appears as pilot
// or instructor.
func (r *MongoFlightRecordRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter repository.FlightRecordFilter) ([]*entity.FlightRecord, error) {
	query := bson.M{"date": bson.M{
		"$gte": entity.DateOnly(from),
		"$lt":  entity.DateOnly(to).AddDate(0, 0, 1),
	}}
	if filter.PilotID != "" {
		query["$or"] = bson.A{
			bson.M{"pilotId": filter.PilotID},
			bson.M{"instructorId": filter.PilotID},
		}
	}
	if filter.Logbook != "" {
		query["logbookType"] = filter.Logbook
	}
	return r.find(ctx, query)
}

func (r *MongoFlightRecordRepository) find(ctx context.Context, query bson.M) ([]*entity.FlightRecord, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "startTime", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.FlightRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Insert creates a flight record. A duplicate-key rejection from the
// slot index surfaces as entity.ErrStaleSnapshot for the caller to map
// to a conflict.
func (r *MongoFlightRecordRepository) Insert(ctx context.Context, record *entity.FlightRecord) error {
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	_, err := r.collection.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return entity.ErrStaleSnapshot
	}
	return err
}

// Update rewrites an existing record by id.
func (r *MongoFlightRecordRepository) Update(ctx context.Context, record *entity.FlightRecord) error {
	record.UpdatedAt = time.Now()

	updateDoc := bson.M{
		"date":            record.Date,
		"startTime":       record.Start,
		"endTime":         record.End,
		"pilotId":         record.PilotID,
		"instructorId":    record.InstructorID,
		"aircraftId":      record.AircraftID,
		"logbookType":     record.Logbook,
		"purpose":         record.Purpose,
		"durationHours":   record.DurationHours,
		"billableMinutes": record.BillableMinutes,
		"towsCount":       record.TowsCount,
		"scheduleEntryId": record.ScheduleEntryID,
		"updatedAt":       record.UpdatedAt,
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": record.ID}, bson.M{"$set": updateDoc})
	if mongo.IsDuplicateKeyError(err) {
		return entity.ErrStaleSnapshot
	}
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Delete removes a record. Deleting one half of an instruction pair
// leaves the counterpart orphaned, which downstream logic treats as a
// standalone flight.
func (r *MongoFlightRecordRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
