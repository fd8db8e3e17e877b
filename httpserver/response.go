package httpserver

import (
	"github.com/labstack/echo/v4"
)

// APIResponse is the uniform envelope for every endpoint: the frontend keys
// off success and reads either data or message/errors.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func writeSuccess(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, APIResponse{
		Success: true,
		Data:    data,
	})
}

func writeSuccessMessage(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writeError(c echo.Context, status int, message string, fieldErrors map[string][]string) error {
	return c.JSON(status, APIResponse{
		Success: false,
		Message: message,
		Errors:  fieldErrors,
	})
}
