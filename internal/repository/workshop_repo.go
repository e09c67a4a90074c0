package repository

import (
	"context"

	"github.com/reservaa/hall-booking-service/internal/models"
	"gorm.io/gorm"
)

type WorkshopRepository interface {
	Create(ctx context.Context, workshop *models.Workshop) error
	FindAll(ctx context.Context) ([]models.Workshop, error)
}

type workshopRepository struct {
	db *gorm.DB
}

func NewWorkshopRepository(db *gorm.DB) WorkshopRepository {
	return &workshopRepository{db: db}
}

func (r *workshopRepository) Create(ctx context.Context, workshop *models.Workshop) error {
	return r.db.WithContext(ctx).Create(workshop).Error
}

func (r *workshopRepository) FindAll(ctx context.Context) ([]models.Workshop, error) {
	var workshops []models.Workshop
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Order("date ASC").
		Find(&workshops).Error
	return workshops, err
}
