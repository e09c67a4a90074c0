package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reservaa/hall-booking-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func priorityBooking() *models.Booking {
	return &models.Booking{
		ID:                99,
		FacultyID:         7,
		HallName:          "A101",
		BookingDate:       day(2),
		StartTime:         "10:00",
		EndTime:           "12:00",
		Status:            models.StatusApproved,
		BookingCode:       "HB-PRIORITY-01",
		IsPriorityRequest: true,
		PriorityReason:    "Accreditation visit",
	}
}

func displacedBookings() []models.Booking {
	return []models.Booking{
		{ID: 1, FacultyID: 2, HallName: "A101", BookingDate: day(2), StartTime: "10:00", EndTime: "11:00", Status: models.StatusApproved, BookingCode: "HB-OLD-1"},
		{ID: 2, FacultyID: 3, HallName: "A101", BookingDate: day(2), StartTime: "11:00", EndTime: "12:00", Status: models.StatusApproved, BookingCode: "HB-OLD-2"},
	}
}

func TestRescheduleExecute_DisplacesAllConflicts(t *testing.T) {
	updated := map[uint]map[string]interface{}{}
	repo := &mockBookingRepo{
		findOverlappingFn: func(ctx context.Context, tx *gorm.DB, hallName string, date time.Time, startTime, endTime string, statuses []models.BookingStatus, excludeID uint) ([]models.Booking, error) {
			assert.Equal(t, []models.BookingStatus{models.StatusApproved}, statuses)
			assert.Equal(t, uint(99), excludeID)
			return displacedBookings(), nil
		},
		findForDayFn: func(ctx context.Context, hallName string, date time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
			return nil, nil
		},
		updatesFn: func(ctx context.Context, tx *gorm.DB, id uint, values map[string]interface{}) error {
			updated[id] = values
			return nil
		},
	}
	faculty := &mockFacultyRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Faculty, error) {
			return &models.Faculty{ID: id, Email: "f@college.edu", Name: "F"}, nil
		},
	}
	gateway := &mockGateway{}
	svc := NewRescheduleService(repo, faculty, NewSlotFinderService(repo), gateway)

	count, err := svc.Execute(context.Background(), priorityBooking(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.Len(t, updated, 2)
	for _, values := range updated {
		assert.Equal(t, models.StatusRescheduled, values["status"])
		assert.Equal(t, uint(99), values["rescheduled_by"])
		assert.Equal(t, "Rescheduled due to priority request: Accreditation visit", values["reschedule_reason"])
		// No admin choice, so no target slot is guessed.
		assert.NotContains(t, values, "rescheduled_to_hall_name")
	}
	assert.Equal(t, []string{"HB-OLD-1", "HB-OLD-2"}, gateway.rescheduled)
}

func TestRescheduleExecute_ChoiceAppliedToFirstOnly(t *testing.T) {
	updated := map[uint]map[string]interface{}{}
	repo := &mockBookingRepo{
		findOverlappingFn: func(ctx context.Context, tx *gorm.DB, hallName string, date time.Time, startTime, endTime string, statuses []models.BookingStatus, excludeID uint) ([]models.Booking, error) {
			return displacedBookings(), nil
		},
		findForDayFn: func(ctx context.Context, hallName string, date time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
			return nil, nil
		},
		updatesFn: func(ctx context.Context, tx *gorm.DB, id uint, values map[string]interface{}) error {
			updated[id] = values
			return nil
		},
	}
	faculty := &mockFacultyRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Faculty, error) {
			return &models.Faculty{ID: id}, nil
		},
	}
	svc := NewRescheduleService(repo, faculty, NewSlotFinderService(repo), &mockGateway{})

	choice := &RescheduleChoice{HallName: "B201", Date: day(3), StartTime: "14:00", EndTime: "15:00"}
	count, err := svc.Execute(context.Background(), priorityBooking(), choice)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, "B201", updated[1]["rescheduled_to_hall_name"])
	assert.Equal(t, "14:00", updated[1]["rescheduled_to_start_time"])
	assert.NotContains(t, updated[2], "rescheduled_to_hall_name")
}

func TestRescheduleExecute_UpdateFailureIsIsolated(t *testing.T) {
	repo := &mockBookingRepo{
		findOverlappingFn: func(ctx context.Context, tx *gorm.DB, hallName string, date time.Time, startTime, endTime string, statuses []models.BookingStatus, excludeID uint) ([]models.Booking, error) {
			return displacedBookings(), nil
		},
		findForDayFn: func(ctx context.Context, hallName string, date time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
			return nil, nil
		},
		updatesFn: func(ctx context.Context, tx *gorm.DB, id uint, values map[string]interface{}) error {
			if id == 1 {
				return errors.New("connection reset")
			}
			return nil
		},
	}
	faculty := &mockFacultyRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Faculty, error) {
			return &models.Faculty{ID: id}, nil
		},
	}
	gateway := &mockGateway{}
	svc := NewRescheduleService(repo, faculty, NewSlotFinderService(repo), gateway)

	count, err := svc.Execute(context.Background(), priorityBooking(), nil)
	require.NoError(t, err)

	// The failed booking is skipped, the second one still goes through.
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"HB-OLD-2"}, gateway.rescheduled)
}

func TestRescheduleExecute_DefaultReason(t *testing.T) {
	var reason string
	repo := &mockBookingRepo{
		findOverlappingFn: func(ctx context.Context, tx *gorm.DB, hallName string, date time.Time, startTime, endTime string, statuses []models.BookingStatus, excludeID uint) ([]models.Booking, error) {
			return displacedBookings()[:1], nil
		},
		findForDayFn: func(ctx context.Context, hallName string, date time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
			return nil, nil
		},
		updatesFn: func(ctx context.Context, tx *gorm.DB, id uint, values map[string]interface{}) error {
			reason = values["reschedule_reason"].(string)
			return nil
		},
	}
	faculty := &mockFacultyRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Faculty, error) {
			return &models.Faculty{ID: id}, nil
		},
	}
	svc := NewRescheduleService(repo, faculty, NewSlotFinderService(repo), &mockGateway{})

	priority := priorityBooking()
	priority.PriorityReason = ""
	_, err := svc.Execute(context.Background(), priority, nil)
	require.NoError(t, err)
	assert.Equal(t, "Rescheduled due to priority request: High priority event", reason)
}

func TestRescheduleExecute_NoConflictsNoWork(t *testing.T) {
	repo := &mockBookingRepo{
		findOverlappingFn: func(ctx context.Context, tx *gorm.DB, hallName string, date time.Time, startTime, endTime string, statuses []models.BookingStatus, excludeID uint) ([]models.Booking, error) {
			return nil, nil
		},
	}
	svc := NewRescheduleService(repo, &mockFacultyRepo{}, nil, &mockGateway{})

	count, err := svc.Execute(context.Background(), priorityBooking(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRescheduleExecute_GatewayFailureDoesNotAbort(t *testing.T) {
	updates := 0
	repo := &mockBookingRepo{
		findOverlappingFn: func(ctx context.Context, tx *gorm.DB, hallName string, date time.Time, startTime, endTime string, statuses []models.BookingStatus, excludeID uint) ([]models.Booking, error) {
			return displacedBookings(), nil
		},
		findForDayFn: func(ctx context.Context, hallName string, date time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
			return nil, nil
		},
		updatesFn: func(ctx context.Context, tx *gorm.DB, id uint, values map[string]interface{}) error {
			updates++
			return nil
		},
	}
	faculty := &mockFacultyRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Faculty, error) {
			return &models.Faculty{ID: id}, nil
		},
	}
	svc := NewRescheduleService(repo, faculty, NewSlotFinderService(repo), &mockGateway{err: errors.New("broker down")})

	count, err := svc.Execute(context.Background(), priorityBooking(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, updates)
}
