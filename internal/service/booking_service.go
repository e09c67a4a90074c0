package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/reservaa/hall-booking-service/internal/models"
	"github.com/reservaa/hall-booking-service/internal/notifier"
	"github.com/reservaa/hall-booking-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrHallNotFound            = errors.New("hall not found")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidTimeRange        = errors.New("start and end time must be HH:MM with start before end")
	ErrPriorityReasonRequired  = errors.New("priority reason is required for a priority request")
	ErrOnlyApprovedCancellable = errors.New("only approved bookings can be cancelled")
	ErrPastBooking             = errors.New("cannot cancel past bookings")
	ErrInvalidDecision         = errors.New("status must be approved or rejected")
	ErrNotificationQueue       = errors.New("failed to queue notification")
)

type CollisionKind string

const (
	CollisionApproved       CollisionKind = "approved"
	CollisionPendingEarlier CollisionKind = "pending_earlier"
)

// CollisionError carries the conflicting bookings so the handler can attach
// them to the 409 payload and offer the priority-request path.
type CollisionError struct {
	Kind      CollisionKind
	Conflicts []models.Booking
}

func (e *CollisionError) Error() string {
	if e.Kind == CollisionApproved {
		return "an approved booking already exists for this time slot"
	}
	return "an earlier booking request exists for this time slot (first-come-first-serve)"
}

type CreateBookingInput struct {
	HallName               string
	BookingDate            time.Time
	StartTime              string
	EndTime                string
	Purpose                string
	Department             string
	AdditionalRequirements string
	ACPreference           string
	IsPriorityRequest      bool
	PriorityReason         string
}

// CreateBookingResult is the outcome of a successful submission. Conflicts is
// populated only for priority requests, listing the approved bookings the
// request coexists with until an admin decides.
type CreateBookingResult struct {
	Booking   *models.Booking
	Conflicts []models.Booking
}

// RescheduleChoice is a concrete alternative slot picked by the admin for the
// primary displaced booking.
type RescheduleChoice struct {
	HallName  string
	Date      time.Time
	StartTime string
	EndTime   string
}

type BookingService interface {
	CreateBooking(ctx context.Context, facultyID uint, in CreateBookingInput) (*CreateBookingResult, error)
	ListBookings(ctx context.Context, facultyID uint) ([]models.Booking, error)
	GetByCode(ctx context.Context, code string) (*models.Booking, error)
	CancelBooking(ctx context.Context, facultyID, bookingID uint) error
	ResendConfirmation(ctx context.Context, facultyID, bookingID uint) error
	ListAll(ctx context.Context) ([]models.Booking, error)
	ListPendingPriority(ctx context.Context) ([]models.Booking, error)
	AdminUpdateBooking(ctx context.Context, bookingID uint, status models.BookingStatus, adminNotes *string, choice *RescheduleChoice) (*models.Booking, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	halls    repository.HallRepository
	faculty  repository.FacultyRepository
	resched  *RescheduleService
	gateway  notifier.Gateway
}

func NewBookingService(bookings repository.BookingRepository, halls repository.HallRepository, faculty repository.FacultyRepository, resched *RescheduleService, gateway notifier.Gateway) BookingService {
	return &bookingService{
		bookings: bookings,
		halls:    halls,
		faculty:  faculty,
		resched:  resched,
		gateway:  gateway,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, facultyID uint, in CreateBookingInput) (*CreateBookingResult, error) {
	if !models.ValidTimeRange(in.StartTime, in.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	if in.IsPriorityRequest && strings.TrimSpace(in.PriorityReason) == "" {
		return nil, ErrPriorityReasonRequired
	}

	date := models.NormalizeDate(in.BookingDate)
	var result *CreateBookingResult

	err := s.bookings.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the hall row. This serializes concurrent submissions per
		// hall so the conflict check and the insert cannot interleave.
		hall, err := s.halls.FindByNameForUpdate(ctx, tx, in.HallName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHallNotFound
			}
			return err
		}

		// 2. Find every approved or pending booking overlapping the window.
		overlapping, err := s.bookings.FindOverlapping(ctx, tx, in.HallName, date, in.StartTime, in.EndTime,
			[]models.BookingStatus{models.StatusApproved, models.StatusPending}, 0)
		if err != nil {
			return err
		}
		approvedConflicts, pendingConflicts := partitionConflicts(overlapping)

		// 3. Collision + priority flag: file a pending priority request that
		// coexists with the conflicts until an admin decides.
		if len(overlapping) > 0 && in.IsPriorityRequest {
			booking, err := s.newBooking(ctx, facultyID, hall, date, in, models.StatusPending)
			if err != nil {
				return err
			}
			if err := s.bookings.Create(ctx, tx, booking); err != nil {
				return err
			}
			result = &CreateBookingResult{Booking: booking, Conflicts: approvedConflicts}
			return nil
		}

		// 4. Approved reservations outrank everything; among pending requests
		// the earliest submission is protected.
		if len(approvedConflicts) > 0 {
			return &CollisionError{Kind: CollisionApproved, Conflicts: approvedConflicts}
		}
		if len(pendingConflicts) > 0 {
			return &CollisionError{Kind: CollisionPendingEarlier, Conflicts: overlapping}
		}

		// 5. Window is clear: auto-approve. A priority flag is meaningless
		// without conflicts, so the clean path drops it.
		in.IsPriorityRequest = false
		in.PriorityReason = ""
		booking, err := s.newBooking(ctx, facultyID, hall, date, in, models.StatusApproved)
		if err != nil {
			return err
		}
		if err := s.bookings.Create(ctx, tx, booking); err != nil {
			return err
		}
		result = &CreateBookingResult{Booking: booking}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Confirmation email is queued after the commit; a publish failure never
	// unwinds the booking.
	if result.Booking.Status == models.StatusApproved {
		s.queueConfirmation(ctx, result.Booking)
	}

	return result, nil
}

func (s *bookingService) newBooking(ctx context.Context, facultyID uint, hall *models.Hall, date time.Time, in CreateBookingInput, status models.BookingStatus) (*models.Booking, error) {
	code, err := s.uniqueBookingCode(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Booking{
		FacultyID:              facultyID,
		HallName:               hall.Name,
		HallCapacity:           hall.Capacity,
		BookingDate:            date,
		StartTime:              in.StartTime,
		EndTime:                in.EndTime,
		Purpose:                in.Purpose,
		Department:             in.Department,
		AdditionalRequirements: in.AdditionalRequirements,
		ACPreference:           in.ACPreference,
		Status:                 status,
		BookingCode:            code,
		IsPriorityRequest:      in.IsPriorityRequest,
		PriorityReason:         strings.TrimSpace(in.PriorityReason),
	}, nil
}

func (s *bookingService) ListBookings(ctx context.Context, facultyID uint) ([]models.Booking, error) {
	return s.bookings.FindByFaculty(ctx, facultyID)
}

func (s *bookingService) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	booking, err := s.bookings.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, facultyID, bookingID uint) error {
	booking, err := s.bookings.FindOwnedByID(ctx, bookingID, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	if booking.Status != models.StatusApproved {
		return ErrOnlyApprovedCancellable
	}
	if booking.BookingDate.Before(models.NormalizeDate(time.Now())) {
		return ErrPastBooking
	}
	return s.bookings.Delete(ctx, bookingID)
}

func (s *bookingService) ResendConfirmation(ctx context.Context, facultyID, bookingID uint) error {
	booking, err := s.bookings.FindOwnedByID(ctx, bookingID, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	faculty, err := s.faculty.FindByID(ctx, facultyID)
	if err != nil {
		return err
	}
	if s.gateway == nil {
		return ErrNotificationQueue
	}
	if err := s.gateway.BookingConfirmed(booking, faculty); err != nil {
		log.Printf("[BookingService] resend confirmation for %s failed: %v", booking.BookingCode, err)
		return ErrNotificationQueue
	}
	return nil
}

func (s *bookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.FindAll(ctx)
}

func (s *bookingService) ListPendingPriority(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.FindPendingPriority(ctx)
}

func (s *bookingService) AdminUpdateBooking(ctx context.Context, bookingID uint, status models.BookingStatus, adminNotes *string, choice *RescheduleChoice) (*models.Booking, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, ErrInvalidDecision
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	values := map[string]interface{}{"status": status}
	if adminNotes != nil {
		values["admin_notes"] = *adminNotes
	}
	if err := s.bookings.Updates(ctx, s.bookings.GetDB(), bookingID, values); err != nil {
		return nil, err
	}
	booking.Status = status
	if adminNotes != nil {
		booking.AdminNotes = *adminNotes
	}

	// Approving a priority request displaces the approved bookings it
	// overlaps. The executor isolates failures per displaced booking.
	if status == models.StatusApproved && booking.IsPriorityRequest {
		if _, err := s.resched.Execute(ctx, booking, choice); err != nil {
			log.Printf("[BookingService] reschedule for priority booking %s: %v", booking.BookingCode, err)
		}
	}

	if status == models.StatusApproved && !booking.ConfirmationSent {
		s.queueConfirmation(ctx, booking)
	}

	return booking, nil
}

func (s *bookingService) queueConfirmation(ctx context.Context, booking *models.Booking) {
	if s.gateway == nil {
		return
	}
	faculty := booking.Faculty
	if faculty == nil {
		var err error
		faculty, err = s.faculty.FindByID(ctx, booking.FacultyID)
		if err != nil {
			log.Printf("[BookingService] faculty %d lookup for confirmation email: %v", booking.FacultyID, err)
			return
		}
	}
	if err := s.gateway.BookingConfirmed(booking, faculty); err != nil {
		log.Printf("[BookingService] queue confirmation for %s failed: %v", booking.BookingCode, err)
	}
}

// partitionConflicts splits overlapping bookings into approved and pending,
// preserving the oldest-first order of the input.
func partitionConflicts(overlapping []models.Booking) (approved, pending []models.Booking) {
	for _, b := range overlapping {
		switch b.Status {
		case models.StatusApproved:
			approved = append(approved, b)
		case models.StatusPending:
			pending = append(pending, b)
		}
	}
	return approved, pending
}

// generateBookingCode builds "HB-" + base36 millis + 3 random bytes in hex,
// both uppercased.
func generateBookingCode() (string, error) {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("HB-%s-%s", ts, strings.ToUpper(hex.EncodeToString(buf))), nil
}

func (s *bookingService) uniqueBookingCode(ctx context.Context) (string, error) {
	for {
		code, err := generateBookingCode()
		if err != nil {
			return "", err
		}
		exists, err := s.bookings.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}
