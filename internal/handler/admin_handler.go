package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/reservaa/hall-booking-service/internal/dto"
	"github.com/reservaa/hall-booking-service/internal/models"
	"github.com/reservaa/hall-booking-service/internal/service"
)

type AdminHandler struct {
	auth     service.AuthService
	bookings service.BookingService
	finder   *service.SlotFinderService
}

func NewAdminHandler(auth service.AuthService, bookings service.BookingService, finder *service.SlotFinderService) *AdminHandler {
	return &AdminHandler{auth: auth, bookings: bookings, finder: finder}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, auth, admin echo.MiddlewareFunc) {
	e.POST("/api/admin/login", h.Login)

	g := e.Group("/api/admin", auth, admin)
	g.GET("/bookings", h.ListBookings)
	g.GET("/priority-requests", h.ListPriorityRequests)
	g.GET("/alternative-slots/:hall/:date/:start/:end", h.AlternativeSlots)
	g.PUT("/bookings/:id", h.UpdateBooking)
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, err := h.auth.AdminLogin(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

func (h *AdminHandler) ListBookings(c echo.Context) error {
	bookings, err := h.bookings.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings, time.Now()))
}

func (h *AdminHandler) ListPriorityRequests(c echo.Context) error {
	bookings, err := h.bookings.ListPendingPriority(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings, time.Now()))
}

// AlternativeSlots lists free hourly windows on the requested day and over the
// following week, excluding any that overlap the given time range.
func (h *AdminHandler) AlternativeSlots(c echo.Context) error {
	date, err := time.Parse(dto.DateLayout, c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	start, end := c.Param("start"), c.Param("end")
	if !models.ValidTimeRange(start, end) {
		return echo.NewHTTPError(http.StatusBadRequest, "start and end must be HH:MM with start before end")
	}

	alternatives, err := h.finder.FindAlternatives(c.Request().Context(), c.Param("hall"), date, start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, alternatives)
}

func (h *AdminHandler) UpdateBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.AdminDecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var choice *service.RescheduleChoice
	if req.RescheduleInfo != nil {
		date, err := time.Parse(dto.DateLayout, req.RescheduleInfo.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "reschedule_info.date must be YYYY-MM-DD")
		}
		if !models.ValidTimeRange(req.RescheduleInfo.StartTime, req.RescheduleInfo.EndTime) {
			return echo.NewHTTPError(http.StatusBadRequest, "reschedule_info times must be HH:MM with start before end")
		}
		choice = &service.RescheduleChoice{
			HallName:  req.RescheduleInfo.HallName,
			Date:      date,
			StartTime: req.RescheduleInfo.StartTime,
			EndTime:   req.RescheduleInfo.EndTime,
		}
	}

	booking, err := h.bookings.AdminUpdateBooking(c.Request().Context(), uint(id), models.BookingStatus(req.Status), req.AdminNotes, choice)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidDecision):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, time.Now()))
}
