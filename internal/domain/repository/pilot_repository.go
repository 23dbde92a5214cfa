package repository

import (
	"context"

	"clublog-service/internal/domain/entity"
)

// PilotRepository defines the interface for member reference data.
// GetByID loads the pilot with qualification categories attached.
type PilotRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Pilot, error)
}
