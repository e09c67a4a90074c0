package service

import (
	"context"
	"errors"
	"time"

	"github.com/reservaa/hall-booking-service/internal/models"
	"github.com/reservaa/hall-booking-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrHallNameTaken = errors.New("a hall with that name already exists")
	ErrHallInUse     = errors.New("hall has upcoming bookings")
)

type HallService interface {
	ListActive(ctx context.Context) ([]models.Hall, error)
	GetByID(ctx context.Context, id uint) (*models.Hall, error)
	Create(ctx context.Context, hall *models.Hall) error
	Update(ctx context.Context, id uint, update *models.Hall) (*models.Hall, error)
	Delete(ctx context.Context, id uint) error
}

type hallService struct {
	halls    repository.HallRepository
	bookings repository.BookingRepository
}

func NewHallService(halls repository.HallRepository, bookings repository.BookingRepository) HallService {
	return &hallService{halls: halls, bookings: bookings}
}

func (s *hallService) ListActive(ctx context.Context) ([]models.Hall, error) {
	return s.halls.FindActive(ctx)
}

func (s *hallService) GetByID(ctx context.Context, id uint) (*models.Hall, error) {
	hall, err := s.halls.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return hall, nil
}

func (s *hallService) Create(ctx context.Context, hall *models.Hall) error {
	taken, err := s.halls.ExistsByName(ctx, hall.Name, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrHallNameTaken
	}
	hall.IsActive = true
	return s.halls.Create(ctx, hall)
}

// Update rejects renames while the hall still has upcoming bookings, since
// bookings reference halls by name.
func (s *hallService) Update(ctx context.Context, id uint, update *models.Hall) (*models.Hall, error) {
	hall, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" && update.Name != hall.Name {
		upcoming, err := s.bookings.CountUpcomingForHall(ctx, hall.Name, time.Now())
		if err != nil {
			return nil, err
		}
		if upcoming > 0 {
			return nil, ErrHallInUse
		}
		taken, err := s.halls.ExistsByName(ctx, update.Name, hall.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrHallNameTaken
		}
		hall.Name = update.Name
	}
	if update.Type != "" {
		hall.Type = update.Type
	}
	if update.Capacity > 0 {
		hall.Capacity = update.Capacity
	}
	if update.Location != "" {
		hall.Location = update.Location
	}
	if update.Description != "" {
		hall.Description = update.Description
	}
	if update.Facilities != nil {
		hall.Facilities = update.Facilities
	}
	if update.Amenities != nil {
		hall.Amenities = update.Amenities
	}
	if update.Images != nil {
		hall.Images = update.Images
	}
	if update.BookingRules != (models.BookingRules{}) {
		hall.BookingRules = update.BookingRules
	}

	if err := s.halls.Update(ctx, hall); err != nil {
		return nil, err
	}
	return hall, nil
}

// Delete deactivates the hall rather than removing the row, so past bookings
// keep a valid reference. Halls with upcoming bookings cannot be removed.
func (s *hallService) Delete(ctx context.Context, id uint) error {
	hall, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	upcoming, err := s.bookings.CountUpcomingForHall(ctx, hall.Name, time.Now())
	if err != nil {
		return err
	}
	if upcoming > 0 {
		return ErrHallInUse
	}
	return s.halls.Deactivate(ctx, hall.ID)
}
