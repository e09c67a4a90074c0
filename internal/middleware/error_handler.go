package middleware

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reservaa/hall-booking-service/internal/dto"
)

// ErrorHandler turns echo errors into the JSON error envelope the API uses.
// Raw errors that reach this point are server faults, so their details stay
// in the log rather than the response body.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = fmt.Sprintf("%v", he.Message)
		}
	}

	if code >= http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
