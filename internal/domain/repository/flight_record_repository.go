package repository

import (
	"context"
	"time"

	"clublog-service/internal/domain/entity"
)

// FlightRecordFilter narrows date-range queries; zero values mean no
// filtering on that field.
type FlightRecordFilter struct {
	PilotID string
	Logbook entity.LogbookType
}

// FlightRecordRepository defines the interface for the flight record
// store. Implementations must carry their own commit-time uniqueness
// guard on the slot key: the engine's conflict check runs on a
// snapshot and two concurrent submissions can both pass it. A commit
// the guard rejects surfaces as entity.ErrStaleSnapshot.
type FlightRecordRepository interface {
	FindByID(ctx context.Context, id string) (*entity.FlightRecord, error)
	FindByDate(ctx context.Context, date time.Time) ([]*entity.FlightRecord, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter FlightRecordFilter) ([]*entity.FlightRecord, error)
	Insert(ctx context.Context, record *entity.FlightRecord) error
	Update(ctx context.Context, record *entity.FlightRecord) error
	Delete(ctx context.Context, id string) error
}
