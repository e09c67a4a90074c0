package service

import (
	"context"
	"time"

	"github.com/reservaa/hall-booking-service/internal/models"
	"github.com/reservaa/hall-booking-service/internal/repository"
)

// AlternativeSlots are free hour-long candidate windows for a displaced
// booking: same day first, then the next seven calendar days. Both slices are
// non-nil so "no alternatives" serializes as empty lists.
type AlternativeSlots struct {
	SameDay  []models.Slot `json:"same_day"`
	NextWeek []models.Slot `json:"next_week"`
}

type SlotFinderService struct {
	bookings repository.BookingRepository
}

func NewSlotFinderService(bookings repository.BookingRepository) *SlotFinderService {
	return &SlotFinderService{bookings: bookings}
}

// FindAlternatives enumerates the fixed hourly grid (08:00-20:00) for the
// reference date and the following week, excluding any candidate overlapping
// an approved or pending booking. The original start/end are a duration hint
// only; candidates are always one hour.
func (s *SlotFinderService) FindAlternatives(ctx context.Context, hallName string, date time.Time, startTime, endTime string) (*AlternativeSlots, error) {
	sameDay, err := s.availableOn(ctx, hallName, date)
	if err != nil {
		return nil, err
	}

	nextWeek := []models.Slot{}
	for i := 1; i <= 7; i++ {
		slots, err := s.availableOn(ctx, hallName, date.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		nextWeek = append(nextWeek, slots...)
	}

	return &AlternativeSlots{SameDay: sameDay, NextWeek: nextWeek}, nil
}

func (s *SlotFinderService) availableOn(ctx context.Context, hallName string, date time.Time) ([]models.Slot, error) {
	existing, err := s.bookings.FindForDay(ctx, hallName, date,
		[]models.BookingStatus{models.StatusApproved, models.StatusPending})
	if err != nil {
		return nil, err
	}

	free := []models.Slot{}
	for _, candidate := range models.GridSlots(hallName, date) {
		conflict := false
		for _, booking := range existing {
			if candidate.Overlaps(booking.Slot()) {
				conflict = true
				break
			}
		}
		if !conflict {
			free = append(free, candidate)
		}
	}
	return free, nil
}
