package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders every error as {"message": ...}. Server-side failures
// are logged and replaced by a generic message.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code < http.StatusInternalServerError {
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		} else if code != http.StatusInternalServerError {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		log.Printf("error handling %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"message": message})
	}
	if err != nil {
		log.Printf("failed to write error response: %v", err)
	}
}
