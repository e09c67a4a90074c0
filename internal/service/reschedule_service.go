package service

import (
	"context"
	"fmt"
	"log"

	"github.com/reservaa/hall-booking-service/internal/models"
	"github.com/reservaa/hall-booking-service/internal/notifier"
	"github.com/reservaa/hall-booking-service/internal/repository"
)

// RescheduleService displaces approved bookings that conflict with a newly
// approved priority booking. Each displaced booking is its own unit of work:
// a failed update or notification never aborts the remaining ones.
type RescheduleService struct {
	bookings repository.BookingRepository
	faculty  repository.FacultyRepository
	finder   *SlotFinderService
	gateway  notifier.Gateway
}

func NewRescheduleService(bookings repository.BookingRepository, faculty repository.FacultyRepository, finder *SlotFinderService, gateway notifier.Gateway) *RescheduleService {
	return &RescheduleService{
		bookings: bookings,
		faculty:  faculty,
		finder:   finder,
		gateway:  gateway,
	}
}

// Execute finds the displaced set for the priority booking and reschedules
// each member. When the admin chose a concrete alternative slot it is applied
// to the first (primary) displaced booking; everyone else keeps an empty
// target so a slot is never guessed silently. Returns how many bookings were
// displaced.
func (s *RescheduleService) Execute(ctx context.Context, priority *models.Booking, choice *RescheduleChoice) (int, error) {
	displaced, err := s.bookings.FindOverlapping(ctx, s.bookings.GetDB(),
		priority.HallName, priority.BookingDate, priority.StartTime, priority.EndTime,
		[]models.BookingStatus{models.StatusApproved}, priority.ID)
	if err != nil {
		return 0, err
	}

	reason := priority.PriorityReason
	if reason == "" {
		reason = "High priority event"
	}
	rescheduleReason := fmt.Sprintf("Rescheduled due to priority request: %s", reason)

	rescheduled := 0
	for i := range displaced {
		booking := &displaced[i]

		values := map[string]interface{}{
			"status":            models.StatusRescheduled,
			"rescheduled_by":    priority.ID,
			"reschedule_reason": rescheduleReason,
		}
		if i == 0 && choice != nil {
			date := models.NormalizeDate(choice.Date)
			values["rescheduled_to_hall_name"] = choice.HallName
			values["rescheduled_to_date"] = date
			values["rescheduled_to_start_time"] = choice.StartTime
			values["rescheduled_to_end_time"] = choice.EndTime
		} else {
			s.logAlternatives(ctx, booking)
		}

		if err := s.bookings.Updates(ctx, s.bookings.GetDB(), booking.ID, values); err != nil {
			log.Printf("[Reschedule] booking %s (hall %s %s %s-%s): update failed: %v",
				booking.BookingCode, booking.HallName, booking.BookingDate.Format("2006-01-02"),
				booking.StartTime, booking.EndTime, err)
			continue
		}
		rescheduled++

		booking.Status = models.StatusRescheduled
		booking.RescheduledBy = &priority.ID
		booking.RescheduleReason = rescheduleReason
		if i == 0 && choice != nil {
			date := models.NormalizeDate(choice.Date)
			booking.RescheduledTo = models.RescheduleTarget{
				HallName:  &choice.HallName,
				Date:      &date,
				StartTime: &choice.StartTime,
				EndTime:   &choice.EndTime,
			}
		}

		s.notify(ctx, booking)
	}

	if len(displaced) > 0 {
		log.Printf("[Reschedule] displaced %d of %d conflicting bookings for priority request %s",
			rescheduled, len(displaced), priority.BookingCode)
	}
	return rescheduled, nil
}

// logAlternatives surfaces how many free windows exist for manual follow-up
// when no concrete target was assigned.
func (s *RescheduleService) logAlternatives(ctx context.Context, booking *models.Booking) {
	if s.finder == nil {
		return
	}
	alts, err := s.finder.FindAlternatives(ctx, booking.HallName, booking.BookingDate, booking.StartTime, booking.EndTime)
	if err != nil {
		log.Printf("[Reschedule] alternative lookup for %s failed: %v", booking.BookingCode, err)
		return
	}
	log.Printf("[Reschedule] booking %s awaits manual slot choice: %d same-day, %d next-week alternatives",
		booking.BookingCode, len(alts.SameDay), len(alts.NextWeek))
}

// notify queues the reschedule email. Best-effort: the state change is the
// source of truth and the sent flag is only set by the consumer after a
// confirmed send.
func (s *RescheduleService) notify(ctx context.Context, booking *models.Booking) {
	if s.gateway == nil {
		return
	}
	faculty := booking.Faculty
	if faculty == nil {
		var err error
		faculty, err = s.faculty.FindByID(ctx, booking.FacultyID)
		if err != nil {
			log.Printf("[Reschedule] faculty %d lookup for booking %s: %v", booking.FacultyID, booking.BookingCode, err)
			return
		}
	}
	if err := s.gateway.BookingRescheduled(booking, faculty); err != nil {
		log.Printf("[Reschedule] queue notification for %s failed: %v", booking.BookingCode, err)
	}
}
