package repository

import (
	"context"
	"errors"
	"time"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAircraftRepository implements the AircraftRepository interface
type GormAircraftRepository struct {
	db *gorm.DB
}

// NewGormAircraftRepository creates a new GORM aircraft repository
func NewGormAircraftRepository(db *gorm.DB) repository.AircraftRepository {
	return &GormAircraftRepository{
		db: db,
	}
}

// Aircrafts GORM model for database mapping
type Aircrafts struct {
	gorm.Model
	AircraftID      string         `gorm:"column:aircraft_id;unique"`
	Registration    string         `gorm:"column:registration;unique"`
	Type            string         `gorm:"column:type"`
	OutOfService    bool           `gorm:"column:out_of_service"`
	InsuranceExpiry *time.Time     `gorm:"column:insurance_expiry"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (Aircrafts) TableName() string {
	return "m_aircraft"
}

// GetByID finds an aircraft by fleet id
func (r *GormAircraftRepository) GetByID(ctx context.Context, id string) (*entity.Aircraft, error) {
	var aircraft Aircrafts
	result := r.db.WithContext(ctx).Where("aircraft_id = ?", id).First(&aircraft)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.Aircraft{
		ID:              aircraft.AircraftID,
		Registration:    aircraft.Registration,
		Type:            entity.AircraftType(aircraft.Type),
		OutOfService:    aircraft.OutOfService,
		InsuranceExpiry: aircraft.InsuranceExpiry,
		CreatedAt:       aircraft.CreatedAt,
		UpdatedAt:       aircraft.UpdatedAt,
	}, nil
}
