package service

import (
	"context"
	"time"

	"github.com/reservaa/hall-booking-service/internal/models"
	"gorm.io/gorm"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn               func(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	findByIDFn             func(ctx context.Context, id uint) (*models.Booking, error)
	findOwnedByIDFn        func(ctx context.Context, id, facultyID uint) (*models.Booking, error)
	findByCodeFn           func(ctx context.Context, code string) (*models.Booking, error)
	codeExistsFn           func(ctx context.Context, code string) (bool, error)
	findByFacultyFn        func(ctx context.Context, facultyID uint) ([]models.Booking, error)
	findAllFn              func(ctx context.Context) ([]models.Booking, error)
	findPendingPriorityFn  func(ctx context.Context) ([]models.Booking, error)
	findOverlappingFn      func(ctx context.Context, tx *gorm.DB, hallName string, date time.Time, startTime, endTime string, statuses []models.BookingStatus, excludeID uint) ([]models.Booking, error)
	findForDayFn           func(ctx context.Context, hallName string, date time.Time, statuses []models.BookingStatus) ([]models.Booking, error)
	countUpcomingForHallFn func(ctx context.Context, hallName string, from time.Time) (int64, error)
	updatesFn              func(ctx context.Context, tx *gorm.DB, id uint, values map[string]interface{}) error
	deleteFn               func(ctx context.Context, id uint) error
	deletePastFn           func(ctx context.Context, before time.Time, statuses []models.BookingStatus) (int64, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return m.createFn(ctx, tx, booking)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindOwnedByID(ctx context.Context, id, facultyID uint) (*models.Booking, error) {
	return m.findOwnedByIDFn(ctx, id, facultyID)
}
func (m *mockBookingRepo) FindByCode(ctx context.Context, code string) (*models.Booking, error) {
	return m.findByCodeFn(ctx, code)
}
func (m *mockBookingRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	if m.codeExistsFn == nil {
		return false, nil
	}
	return m.codeExistsFn(ctx, code)
}
func (m *mockBookingRepo) FindByFaculty(ctx context.Context, facultyID uint) ([]models.Booking, error) {
	return m.findByFacultyFn(ctx, facultyID)
}
func (m *mockBookingRepo) FindAll(ctx context.Context) ([]models.Booking, error) {
	return m.findAllFn(ctx)
}
func (m *mockBookingRepo) FindPendingPriority(ctx context.Context) ([]models.Booking, error) {
	return m.findPendingPriorityFn(ctx)
}
func (m *mockBookingRepo) FindOverlapping(ctx context.Context, tx *gorm.DB, hallName string, date time.Time, startTime, endTime string, statuses []models.BookingStatus, excludeID uint) ([]models.Booking, error) {
	return m.findOverlappingFn(ctx, tx, hallName, date, startTime, endTime, statuses, excludeID)
}
func (m *mockBookingRepo) FindForDay(ctx context.Context, hallName string, date time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	return m.findForDayFn(ctx, hallName, date, statuses)
}
func (m *mockBookingRepo) CountUpcomingForHall(ctx context.Context, hallName string, from time.Time) (int64, error) {
	return m.countUpcomingForHallFn(ctx, hallName, from)
}
func (m *mockBookingRepo) Updates(ctx context.Context, tx *gorm.DB, id uint, values map[string]interface{}) error {
	return m.updatesFn(ctx, tx, id, values)
}
func (m *mockBookingRepo) MarkConfirmationSent(ctx context.Context, id uint) error { return nil }
func (m *mockBookingRepo) MarkRescheduleNotified(ctx context.Context, id uint) error {
	return nil
}
func (m *mockBookingRepo) Delete(ctx context.Context, id uint) error { return m.deleteFn(ctx, id) }
func (m *mockBookingRepo) DeletePastBookings(ctx context.Context, before time.Time, statuses []models.BookingStatus) (int64, error) {
	return m.deletePastFn(ctx, before, statuses)
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// --- Mock FacultyRepository ---

type mockFacultyRepo struct {
	createFn                func(ctx context.Context, faculty *models.Faculty) error
	findByIDFn              func(ctx context.Context, id uint) (*models.Faculty, error)
	findByEmailFn           func(ctx context.Context, email string) (*models.Faculty, error)
	existsFn                func(ctx context.Context, email, collegeID string) (bool, error)
	updateFieldsFn          func(ctx context.Context, id uint, values map[string]interface{}) error
	setResetTokenFn         func(ctx context.Context, id uint, token string, expiry time.Time) error
	findByValidResetTokenFn func(ctx context.Context, token string, now time.Time) (*models.Faculty, error)
	resetPasswordFn         func(ctx context.Context, id uint, passwordHash string) error
}

func (m *mockFacultyRepo) Create(ctx context.Context, faculty *models.Faculty) error {
	return m.createFn(ctx, faculty)
}
func (m *mockFacultyRepo) FindByID(ctx context.Context, id uint) (*models.Faculty, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockFacultyRepo) FindByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	return m.findByEmailFn(ctx, email)
}
func (m *mockFacultyRepo) ExistsByEmailOrCollegeID(ctx context.Context, email, collegeID string) (bool, error) {
	return m.existsFn(ctx, email, collegeID)
}
func (m *mockFacultyRepo) UpdateFields(ctx context.Context, id uint, values map[string]interface{}) error {
	return m.updateFieldsFn(ctx, id, values)
}
func (m *mockFacultyRepo) SetResetToken(ctx context.Context, id uint, token string, expiry time.Time) error {
	return m.setResetTokenFn(ctx, id, token, expiry)
}
func (m *mockFacultyRepo) FindByValidResetToken(ctx context.Context, token string, now time.Time) (*models.Faculty, error) {
	return m.findByValidResetTokenFn(ctx, token, now)
}
func (m *mockFacultyRepo) ResetPassword(ctx context.Context, id uint, passwordHash string) error {
	return m.resetPasswordFn(ctx, id, passwordHash)
}

// --- Mock notification gateway ---

type mockGateway struct {
	confirmed   []string
	rescheduled []string
	resetURLs   []string
	err         error
}

func (g *mockGateway) BookingConfirmed(booking *models.Booking, faculty *models.Faculty) error {
	if g.err != nil {
		return g.err
	}
	g.confirmed = append(g.confirmed, booking.BookingCode)
	return nil
}

func (g *mockGateway) BookingRescheduled(displaced *models.Booking, faculty *models.Faculty) error {
	if g.err != nil {
		return g.err
	}
	g.rescheduled = append(g.rescheduled, displaced.BookingCode)
	return nil
}

func (g *mockGateway) PasswordReset(faculty *models.Faculty, resetURL string) error {
	if g.err != nil {
		return g.err
	}
	g.resetURLs = append(g.resetURLs, resetURL)
	return nil
}
