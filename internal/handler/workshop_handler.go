package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/reservaa/hall-booking-service/internal/dto"
	appmw "github.com/reservaa/hall-booking-service/internal/middleware"
	"github.com/reservaa/hall-booking-service/internal/service"
)

type WorkshopHandler struct {
	svc service.WorkshopService
}

func NewWorkshopHandler(svc service.WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{svc: svc}
}

func (h *WorkshopHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/workshops", auth)
	g.POST("", h.CreateWorkshop)
	g.GET("", h.ListWorkshops)
}

func (h *WorkshopHandler) CreateWorkshop(c echo.Context) error {
	claims := appmw.CurrentClaims(c)

	var req dto.CreateWorkshopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	workshop, err := h.svc.Create(c.Request().Context(), service.CreateWorkshopInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		OrganizerID: claims.FacultyID,
	})
	if err != nil {
		if errors.Is(err, service.ErrWorkshopDatePast) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, dto.ToWorkshopResponse(workshop))
}

func (h *WorkshopHandler) ListWorkshops(c echo.Context) error {
	workshops, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToWorkshopResponses(workshops))
}
