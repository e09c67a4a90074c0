package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/reservaa/hall-booking-service/internal/dto"
	"github.com/reservaa/hall-booking-service/internal/models"
	"github.com/reservaa/hall-booking-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn              func(ctx context.Context, facultyID uint, in service.CreateBookingInput) (*service.CreateBookingResult, error)
	listFn                func(ctx context.Context, facultyID uint) ([]models.Booking, error)
	getByCodeFn           func(ctx context.Context, code string) (*models.Booking, error)
	cancelFn              func(ctx context.Context, facultyID, bookingID uint) error
	resendFn              func(ctx context.Context, facultyID, bookingID uint) error
	listAllFn             func(ctx context.Context) ([]models.Booking, error)
	listPendingPriorityFn func(ctx context.Context) ([]models.Booking, error)
	adminUpdateFn         func(ctx context.Context, bookingID uint, status models.BookingStatus, adminNotes *string, choice *service.RescheduleChoice) (*models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, facultyID uint, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
	return m.createFn(ctx, facultyID, in)
}
func (m *mockBookingService) ListBookings(ctx context.Context, facultyID uint) ([]models.Booking, error) {
	return m.listFn(ctx, facultyID)
}
func (m *mockBookingService) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	return m.getByCodeFn(ctx, code)
}
func (m *mockBookingService) CancelBooking(ctx context.Context, facultyID, bookingID uint) error {
	return m.cancelFn(ctx, facultyID, bookingID)
}
func (m *mockBookingService) ResendConfirmation(ctx context.Context, facultyID, bookingID uint) error {
	return m.resendFn(ctx, facultyID, bookingID)
}
func (m *mockBookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	return m.listAllFn(ctx)
}
func (m *mockBookingService) ListPendingPriority(ctx context.Context) ([]models.Booking, error) {
	return m.listPendingPriorityFn(ctx)
}
func (m *mockBookingService) AdminUpdateBooking(ctx context.Context, bookingID uint, status models.BookingStatus, adminNotes *string, choice *service.RescheduleChoice) (*models.Booking, error) {
	return m.adminUpdateFn(ctx, bookingID, status, adminNotes, choice)
}

func facultyContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("auth_claims", &service.Claims{FacultyID: 7, Email: "f@college.edu"})
	return c
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:          1,
		FacultyID:   7,
		HallName:    "A101",
		BookingDate: models.NormalizeDate(time.Now().AddDate(0, 0, 3)),
		StartTime:   "10:00",
		EndTime:     "12:00",
		Purpose:     "Guest lecture",
		Department:  "CSE",
		Status:      models.StatusApproved,
		BookingCode: "HB-TEST-01",
	}
}

const validBookingBody = `{"hall_name":"A101","booking_date":"2026-09-10","start_time":"10:00","end_time":"12:00","purpose":"Guest lecture","department":"CSE","ac_preference":"AC"}`

// --- Tests ---

func TestCreateBooking_Handler_Created(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, facultyID uint, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
			assert.Equal(t, uint(7), facultyID)
			assert.Equal(t, "A101", in.HallName)
			return &service.CreateBookingResult{Booking: sampleBooking()}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBookingBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := facultyContext(e, req, rec)

	h := NewBookingHandler(svc)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "HB-TEST-01", resp.BookingCode)
	assert.Equal(t, models.StatusApproved, resp.Status)
	assert.Equal(t, "upcoming", resp.EventStatus)
}

func TestCreateBooking_Handler_CollisionPayload(t *testing.T) {
	conflict := sampleBooking()
	svc := &mockBookingService{
		createFn: func(ctx context.Context, facultyID uint, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
			return nil, &service.CollisionError{
				Kind:      service.CollisionApproved,
				Conflicts: []models.Booking{*conflict},
			}
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBookingBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := facultyContext(e, req, rec)

	h := NewBookingHandler(svc)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.CollisionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Clash)
	assert.True(t, resp.CanRequestPriority)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "HB-TEST-01", resp.Conflicts[0].BookingCode)
}

func TestCreateBooking_Handler_PendingEarlierOffersPriority(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, facultyID uint, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
			return nil, &service.CollisionError{
				Kind:      service.CollisionPendingEarlier,
				Conflicts: []models.Booking{*sampleBooking()},
			}
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBookingBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := facultyContext(e, req, rec)

	h := NewBookingHandler(svc)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.CollisionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Clash)
	assert.True(t, resp.CanRequestPriority)
}

func TestCreateBooking_Handler_PriorityRequestAccepted(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, facultyID uint, in service.CreateBookingInput) (*service.CreateBookingResult, error) {
			booking := sampleBooking()
			booking.Status = models.StatusPending
			booking.IsPriorityRequest = true
			return &service.CreateBookingResult{
				Booking:   booking,
				Conflicts: []models.Booking{*sampleBooking()},
			}, nil
		},
	}

	body := `{"hall_name":"A101","booking_date":"2026-09-10","start_time":"10:00","end_time":"12:00","purpose":"Accreditation","department":"CSE","ac_preference":"AC","is_priority_request":true,"priority_reason":"NAAC visit"}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := facultyContext(e, req, rec)

	h := NewBookingHandler(svc)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.PriorityRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusPending, resp.Booking.Status)
	assert.Len(t, resp.Conflicts, 1)
}

func TestCreateBooking_Handler_BadRequests(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{})
	e := echo.New()

	cases := []string{
		`{"hall_name":"","booking_date":"2026-09-10","start_time":"10:00","end_time":"12:00","purpose":"x","department":"y","ac_preference":"AC"}`,
		`{"hall_name":"A101","booking_date":"10-09-2026","start_time":"10:00","end_time":"12:00","purpose":"x","department":"y","ac_preference":"AC"}`,
		`{"hall_name":"A101","booking_date":"2026-09-10","start_time":"10:00","end_time":"12:00","purpose":"x","department":"y","ac_preference":"Fan"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := facultyContext(e, req, rec)

		err := h.CreateBooking(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "body: %s", body)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}
}

func TestCancelBooking_Handler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrBookingNotFound, http.StatusNotFound},
		{service.ErrOnlyApprovedCancellable, http.StatusBadRequest},
		{service.ErrPastBooking, http.StatusBadRequest},
	}
	for _, tc := range cases {
		svc := &mockBookingService{
			cancelFn: func(ctx context.Context, facultyID, bookingID uint) error {
				return tc.err
			},
		}

		e := echo.New()
		req := httptest.NewRequest(http.MethodDelete, "/api/bookings/5", nil)
		rec := httptest.NewRecorder()
		c := facultyContext(e, req, rec)
		c.SetParamNames("id")
		c.SetParamValues("5")

		h := NewBookingHandler(svc)
		err := h.CancelBooking(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, tc.code, he.Code, "error: %v", tc.err)
	}
}

func TestGetByCode_Handler(t *testing.T) {
	svc := &mockBookingService{
		getByCodeFn: func(ctx context.Context, code string) (*models.Booking, error) {
			if code != "HB-TEST-01" {
				return nil, service.ErrBookingNotFound
			}
			return sampleBooking(), nil
		},
	}
	h := NewBookingHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/code/HB-TEST-01", nil)
	rec := httptest.NewRecorder()
	c := facultyContext(e, req, rec)
	c.SetParamNames("code")
	c.SetParamValues("HB-TEST-01")

	require.NoError(t, h.GetByCode(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/bookings/code/HB-NOPE", nil)
	rec = httptest.NewRecorder()
	c = facultyContext(e, req, rec)
	c.SetParamNames("code")
	c.SetParamValues("HB-NOPE")

	err := h.GetByCode(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
