package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/reservaa/hall-booking-service/internal/dto"
	"github.com/reservaa/hall-booking-service/internal/models"
	"github.com/reservaa/hall-booking-service/internal/service"
	"gorm.io/datatypes"
)

type HallHandler struct {
	svc service.HallService
}

func NewHallHandler(svc service.HallService) *HallHandler {
	return &HallHandler{svc: svc}
}

func (h *HallHandler) RegisterRoutes(e *echo.Echo, auth, admin echo.MiddlewareFunc) {
	e.GET("/api/halls", h.ListHalls)

	g := e.Group("/api/halls", auth, admin)
	g.POST("", h.CreateHall)
	g.PUT("/:id", h.UpdateHall)
	g.DELETE("/:id", h.DeleteHall)
}

func (h *HallHandler) ListHalls(c echo.Context) error {
	halls, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToHallResponses(halls))
}

func (h *HallHandler) CreateHall(c echo.Context) error {
	hall, err := h.bindHall(c)
	if err != nil {
		return err
	}
	if hall.Name == "" || hall.Capacity <= 0 || hall.Location == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, capacity and location are required")
	}

	if err := h.svc.Create(c.Request().Context(), hall); err != nil {
		if errors.Is(err, service.ErrHallNameTaken) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, dto.ToHallResponse(hall))
}

func (h *HallHandler) UpdateHall(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hall id")
	}
	update, err := h.bindHall(c)
	if err != nil {
		return err
	}

	hall, err := h.svc.Update(c.Request().Context(), uint(id), update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHallNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrHallInUse):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrHallNameTaken):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToHallResponse(hall))
}

func (h *HallHandler) DeleteHall(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hall id")
	}

	err = h.svc.Delete(c.Request().Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHallNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrHallInUse):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "hall removed"})
}

func (h *HallHandler) bindHall(c echo.Context) (*models.Hall, error) {
	var req dto.CreateHallRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return &models.Hall{
		Name:        req.Name,
		Type:        req.Type,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Description: req.Description,
		Facilities:  toJSONList(req.Facilities),
		Amenities:   toJSONList(req.Amenities),
		Images:      toJSONList(req.Images),
	}, nil
}

func toJSONList(values []string) datatypes.JSON {
	if values == nil {
		return nil
	}
	raw, _ := json.Marshal(values)
	return raw
}
