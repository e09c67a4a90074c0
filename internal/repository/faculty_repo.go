package repository

import (
	"context"
	"time"

	"github.com/reservaa/hall-booking-service/internal/models"
	"gorm.io/gorm"
)

type FacultyRepository interface {
	Create(ctx context.Context, faculty *models.Faculty) error
	FindByID(ctx context.Context, id uint) (*models.Faculty, error)
	FindByEmail(ctx context.Context, email string) (*models.Faculty, error)
	ExistsByEmailOrCollegeID(ctx context.Context, email, collegeID string) (bool, error)
	UpdateFields(ctx context.Context, id uint, values map[string]interface{}) error
	SetResetToken(ctx context.Context, id uint, token string, expiry time.Time) error
	FindByValidResetToken(ctx context.Context, token string, now time.Time) (*models.Faculty, error)
	ResetPassword(ctx context.Context, id uint, passwordHash string) error
}

type facultyRepository struct {
	db *gorm.DB
}

func NewFacultyRepository(db *gorm.DB) FacultyRepository {
	return &facultyRepository{db: db}
}

func (r *facultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	return r.db.WithContext(ctx).Create(faculty).Error
}

func (r *facultyRepository) FindByID(ctx context.Context, id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).First(&faculty, id).Error; err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepository) FindByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&faculty).Error; err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepository) ExistsByEmailOrCollegeID(ctx context.Context, email, collegeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Faculty{}).
		Where("email = ? OR college_id = ?", email, collegeID).
		Count(&count).Error
	return count > 0, err
}

func (r *facultyRepository) UpdateFields(ctx context.Context, id uint, values map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Faculty{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *facultyRepository) SetResetToken(ctx context.Context, id uint, token string, expiry time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Faculty{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_password_token":  token,
			"reset_password_expiry": expiry,
		}).Error
}

func (r *facultyRepository) FindByValidResetToken(ctx context.Context, token string, now time.Time) (*models.Faculty, error) {
	var faculty models.Faculty
	err := r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expiry > ?", token, now).
		First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

// ResetPassword stores the new hash and clears the reset token in one update.
func (r *facultyRepository) ResetPassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&models.Faculty{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password":              passwordHash,
			"reset_password_token":  nil,
			"reset_password_expiry": nil,
		}).Error
}
