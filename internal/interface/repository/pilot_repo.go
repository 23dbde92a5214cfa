package repository

import (
	"context"
	"errors"
	"time"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormPilotRepository implements the PilotRepository interface
type GormPilotRepository struct {
	db *gorm.DB
}

// NewGormPilotRepository creates a new GORM pilot repository
func NewGormPilotRepository(db *gorm.DB) repository.PilotRepository {
	return &GormPilotRepository{
		db: db,
	}
}

// Pilots GORM model for database mapping
type Pilots struct {
	gorm.Model
	PilotID       string         `gorm:"column:pilot_id;unique"`
	FirstName     string         `gorm:"column:first_name"`
	LastName      string         `gorm:"column:last_name"`
	MedicalExpiry *time.Time     `gorm:"column:medical_expiry"`
	Categories    []Categories   `gorm:"many2many:pilot_categories;"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the default table name
func (Pilots) TableName() string {
	return "m_pilots"
}

// Categories GORM model for qualification categories
type Categories struct {
	gorm.Model
	Name      string `gorm:"column:name;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Categories) TableName() string {
	return "m_categories"
}

// GetByID finds a pilot by club member id, with categories attached
func (r *GormPilotRepository) GetByID(ctx context.Context, id string) (*entity.Pilot, error) {
	var pilot Pilots
	result := r.db.WithContext(ctx).Preload("Categories").Where("pilot_id = ?", id).First(&pilot)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	categories := make([]entity.Category, 0, len(pilot.Categories))
	for _, c := range pilot.Categories {
		categories = append(categories, entity.Category{
			ID:        c.ID,
			Name:      c.Name,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}

	return &entity.Pilot{
		ID:            pilot.PilotID,
		FirstName:     pilot.FirstName,
		LastName:      pilot.LastName,
		Categories:    categories,
		MedicalExpiry: pilot.MedicalExpiry,
		CreatedAt:     pilot.CreatedAt,
		UpdatedAt:     pilot.UpdatedAt,
	}, nil
}
