package repository

import (
	"context"
	"time"

	"clublog-service/internal/domain/entity"
)

// RosterRepository stores scheduling-board slots synced from the
// shared reservations calendar.
type RosterRepository interface {
	Upsert(ctx context.Context, slot *entity.RosterSlot) error
	FindByDate(ctx context.Context, date time.Time) ([]*entity.RosterSlot, error)
}
