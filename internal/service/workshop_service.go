package service

import (
	"context"
	"errors"
	"time"

	"github.com/reservaa/hall-booking-service/internal/models"
	"github.com/reservaa/hall-booking-service/internal/repository"
)

var ErrWorkshopDatePast = errors.New("workshop date must be in the future")

type CreateWorkshopInput struct {
	Title       string
	Description string
	Date        time.Time
	OrganizerID uint
}

type WorkshopService interface {
	Create(ctx context.Context, in CreateWorkshopInput) (*models.Workshop, error)
	List(ctx context.Context) ([]models.Workshop, error)
}

type workshopService struct {
	workshops repository.WorkshopRepository
}

func NewWorkshopService(workshops repository.WorkshopRepository) WorkshopService {
	return &workshopService{workshops: workshops}
}

func (s *workshopService) Create(ctx context.Context, in CreateWorkshopInput) (*models.Workshop, error) {
	if models.NormalizeDate(in.Date).Before(models.NormalizeDate(time.Now())) {
		return nil, ErrWorkshopDatePast
	}
	workshop := &models.Workshop{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		OrganizerID: in.OrganizerID,
	}
	if err := s.workshops.Create(ctx, workshop); err != nil {
		return nil, err
	}
	return workshop, nil
}

func (s *workshopService) List(ctx context.Context) ([]models.Workshop, error) {
	return s.workshops.FindAll(ctx)
}
