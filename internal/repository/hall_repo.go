package repository

import (
	"context"

	"github.com/reservaa/hall-booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HallRepository interface {
	Create(ctx context.Context, hall *models.Hall) error
	FindActive(ctx context.Context) ([]models.Hall, error)
	FindByID(ctx context.Context, id uint) (*models.Hall, error)
	FindByName(ctx context.Context, name string) (*models.Hall, error)
	FindByNameForUpdate(ctx context.Context, tx *gorm.DB, name string) (*models.Hall, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	Update(ctx context.Context, hall *models.Hall) error
	Deactivate(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type hallRepository struct {
	db *gorm.DB
}

func NewHallRepository(db *gorm.DB) HallRepository {
	return &hallRepository{db: db}
}

func (r *hallRepository) Create(ctx context.Context, hall *models.Hall) error {
	return r.db.WithContext(ctx).Create(hall).Error
}

func (r *hallRepository) FindActive(ctx context.Context) ([]models.Hall, error) {
	var halls []models.Hall
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&halls).Error
	return halls, err
}

func (r *hallRepository) FindByID(ctx context.Context, id uint) (*models.Hall, error) {
	var hall models.Hall
	if err := r.db.WithContext(ctx).First(&hall, id).Error; err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *hallRepository) FindByName(ctx context.Context, name string) (*models.Hall, error) {
	var hall models.Hall
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_active = ?", name, true).
		First(&hall).Error
	if err != nil {
		return nil, err
	}
	return &hall, nil
}

// FindByNameForUpdate acquires a row-level lock on the hall within the given
// transaction. Every booking submission for a hall takes this lock first,
// which serializes concurrent check-then-insert sequences per hall.
func (r *hallRepository) FindByNameForUpdate(ctx context.Context, tx *gorm.DB, name string) (*models.Hall, error) {
	var hall models.Hall
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ? AND is_active = ?", name, true).
		First(&hall).Error
	if err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *hallRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&models.Hall{}).
		Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *hallRepository) Update(ctx context.Context, hall *models.Hall) error {
	return r.db.WithContext(ctx).Save(hall).Error
}

func (r *hallRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Hall{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *hallRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Hall{}).Count(&count).Error
	return count, err
}
