package repository

import (
	"context"

	"clublog-service/internal/domain/entity"
)

// AircraftRepository defines the interface for fleet reference data.
type AircraftRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Aircraft, error)
}
