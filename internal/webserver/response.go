package webserver

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the failure envelope shared by all handlers.
type ErrorResponse struct {
	Code   string      `json:"code"`
	Error  string      `json:"error"`
	Detail interface{} `json:"detail,omitempty"`
}

func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func Fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, ErrorResponse{Code: code, Error: message, Detail: detail})
}

// DataValidator adapts go-playground/validator to echo's Validator.
type DataValidator struct {
	validate *validator.Validate
}

func NewDataValidator() *DataValidator {
	return &DataValidator{validate: validator.New()}
}

func (v *DataValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// HandleValidationError converts validator failures to a 400 response
// with per-field details.
func HandleValidationError(c echo.Context, err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", fields)
	}
	return Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", nil)
}
