package repository

import (
	"context"
	"time"

	"github.com/reservaa/hall-booking-service/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindOwnedByID(ctx context.Context, id, facultyID uint) (*models.Booking, error)
	FindByCode(ctx context.Context, code string) (*models.Booking, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	FindByFaculty(ctx context.Context, facultyID uint) ([]models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	FindPendingPriority(ctx context.Context) ([]models.Booking, error)
	FindOverlapping(ctx context.Context, tx *gorm.DB, hallName string, date time.Time, startTime, endTime string, statuses []models.BookingStatus, excludeID uint) ([]models.Booking, error)
	FindForDay(ctx context.Context, hallName string, date time.Time, statuses []models.BookingStatus) ([]models.Booking, error)
	CountUpcomingForHall(ctx context.Context, hallName string, from time.Time) (int64, error)
	Updates(ctx context.Context, tx *gorm.DB, id uint, values map[string]interface{}) error
	MarkConfirmationSent(ctx context.Context, id uint) error
	MarkRescheduleNotified(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	DeletePastBookings(ctx context.Context, before time.Time, statuses []models.BookingStatus) (int64, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("Faculty").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindOwnedByID(ctx context.Context, id, facultyID uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("id = ? AND faculty_id = ?", id, facultyID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByCode(ctx context.Context, code string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("booking_code = ?", code).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *bookingRepository) FindByFaculty(ctx context.Context, facultyID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("faculty_id = ?", facultyID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindPendingPriority(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("is_priority_request = ? AND status = ?", true, models.StatusPending).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// FindOverlapping returns bookings for the hall/date whose [start, end)
// interval overlaps the given one, oldest submission first. Call it on the
// same transaction as the subsequent insert so check-then-insert stays atomic.
func (r *bookingRepository) FindOverlapping(ctx context.Context, tx *gorm.DB, hallName string, date time.Time, startTime, endTime string, statuses []models.BookingStatus, excludeID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	q := tx.WithContext(ctx).
		Preload("Faculty").
		Where("hall_name = ? AND booking_date = ?", hallName, models.NormalizeDate(date)).
		Where("start_time < ? AND end_time > ?", endTime, startTime).
		Where("status IN ?", statuses)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Order("created_at ASC").Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindForDay(ctx context.Context, hallName string, date time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("hall_name = ? AND booking_date = ? AND status IN ?", hallName, models.NormalizeDate(date), statuses).
		Order("start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) CountUpcomingForHall(ctx context.Context, hallName string, from time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("hall_name = ? AND booking_date >= ? AND status IN ?",
			hallName, models.NormalizeDate(from), []models.BookingStatus{models.StatusPending, models.StatusApproved}).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) Updates(ctx context.Context, tx *gorm.DB, id uint, values map[string]interface{}) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *bookingRepository) MarkConfirmationSent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("confirmation_sent", true).Error
}

func (r *bookingRepository) MarkRescheduleNotified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("reschedule_notification_sent", true).Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

// DeletePastBookings removes finished bookings; used by the retention sweep.
func (r *bookingRepository) DeletePastBookings(ctx context.Context, before time.Time, statuses []models.BookingStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("booking_date < ? AND status IN ?", models.NormalizeDate(before), statuses).
		Delete(&models.Booking{})
	return res.RowsAffected, res.Error
}
