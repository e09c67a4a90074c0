package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/reservaa/hall-booking-service/internal/dto"
	appmw "github.com/reservaa/hall-booking-service/internal/middleware"
	"github.com/reservaa/hall-booking-service/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/bookings", auth)
	g.POST("", h.CreateBooking)
	g.GET("", h.ListBookings)
	g.GET("/code/:code", h.GetByCode)
	g.DELETE("/:id", h.CancelBooking)
	g.POST("/:id/resend-email", h.ResendEmail)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	claims := appmw.CurrentClaims(c)

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.HallName == "" || req.Purpose == "" || req.Department == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "hall_name, purpose and department are required")
	}
	date, err := time.Parse(dto.DateLayout, req.BookingDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_date must be YYYY-MM-DD")
	}
	if req.ACPreference != "AC" && req.ACPreference != "Non-AC" {
		return echo.NewHTTPError(http.StatusBadRequest, "ac_preference must be AC or Non-AC")
	}

	result, err := h.svc.CreateBooking(c.Request().Context(), claims.FacultyID, service.CreateBookingInput{
		HallName:               req.HallName,
		BookingDate:            date,
		StartTime:              req.StartTime,
		EndTime:                req.EndTime,
		Purpose:                req.Purpose,
		Department:             req.Department,
		AdditionalRequirements: req.AdditionalRequirements,
		ACPreference:           req.ACPreference,
		IsPriorityRequest:      req.IsPriorityRequest,
		PriorityReason:         req.PriorityReason,
	})
	if err != nil {
		var collision *service.CollisionError
		switch {
		case errors.As(err, &collision):
			return c.JSON(http.StatusConflict, dto.CollisionResponse{
				Message:            collision.Error(),
				Clash:              true,
				Conflicts:          dto.ToBookingResponses(collision.Conflicts, time.Now()),
				CanRequestPriority: true,
			})
		case errors.Is(err, service.ErrHallNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTimeRange),
			errors.Is(err, service.ErrPriorityReasonRequired):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	now := time.Now()
	if result.Booking.IsPriorityRequest && len(result.Conflicts) > 0 {
		return c.JSON(http.StatusCreated, dto.PriorityRequestResponse{
			Message:   "priority request submitted and pending admin review",
			Booking:   dto.ToBookingResponse(result.Booking, now),
			Conflicts: dto.ToBookingResponses(result.Conflicts, now),
		})
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(result.Booking, now))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	claims := appmw.CurrentClaims(c)
	bookings, err := h.svc.ListBookings(c.Request().Context(), claims.FacultyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings, time.Now()))
}

func (h *BookingHandler) GetByCode(c echo.Context) error {
	booking, err := h.svc.GetByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, time.Now()))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	claims := appmw.CurrentClaims(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	err = h.svc.CancelBooking(c.Request().Context(), claims.FacultyID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrOnlyApprovedCancellable),
			errors.Is(err, service.ErrPastBooking):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "booking cancelled"})
}

func (h *BookingHandler) ResendEmail(c echo.Context) error {
	claims := appmw.CurrentClaims(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	err = h.svc.ResendConfirmation(c.Request().Context(), claims.FacultyID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotificationQueue):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "confirmation email queued"})
}
