package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reservaa/hall-booking-service/internal/dto"
	appmw "github.com/reservaa/hall-booking-service/internal/middleware"
	"github.com/reservaa/hall-booking-service/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.POST("/api/register", h.Register)
	e.POST("/api/login", h.Login)
	e.POST("/api/forgot-password", h.ForgotPassword)
	e.POST("/api/reset-password", h.ResetPassword)

	g := e.Group("/api", auth)
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.PUT("/change-password", h.ChangePassword)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.CollegeID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email, password and college_id are required")
	}

	faculty, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		CollegeID:  req.CollegeID,
	})
	if err != nil {
		if errors.Is(err, service.ErrFacultyExists) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, dto.ToFacultyResponse(faculty))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, faculty, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.AuthResponse{
		Token:   token,
		Faculty: dto.ToFacultyResponse(faculty),
	})
}

func (h *AuthHandler) GetProfile(c echo.Context) error {
	claims := appmw.CurrentClaims(c)
	faculty, err := h.svc.GetProfile(c.Request().Context(), claims.FacultyID)
	if err != nil {
		if errors.Is(err, service.ErrFacultyNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToFacultyResponse(faculty))
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	claims := appmw.CurrentClaims(c)

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	faculty, err := h.svc.UpdateProfile(c.Request().Context(), claims.FacultyID, service.UpdateProfileInput{
		Name:       req.Name,
		Department: req.Department,
		Avatar:     req.Avatar,
	})
	if err != nil {
		if errors.Is(err, service.ErrFacultyNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToFacultyResponse(faculty))
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims := appmw.CurrentClaims(c)

	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err := h.svc.ChangePassword(c.Request().Context(), claims.FacultyID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword), errors.Is(err, service.ErrWeakPassword):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrFacultyNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err := h.svc.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil && !errors.Is(err, service.ErrFacultyNotFound) {
		if errors.Is(err, service.ErrNotificationQueue) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Unknown emails get the same answer, so the endpoint cannot be used to
	// enumerate registered accounts.
	return c.JSON(http.StatusOK, map[string]string{"message": "if the email is registered, a reset link has been sent"})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err := h.svc.ResetPassword(c.Request().Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetToken), errors.Is(err, service.ErrWeakPassword):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password has been reset"})
}
