package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "razzrel/internal/errors"
)

// SuccessResponse is the envelope of every successful response. Payload
// fields are added next to success and message.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respond(c echo.Context, status int, message string, payload echo.Map) error {
	body := echo.Map{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	return c.Validate(req)
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid %s", name)
	}
	return uint(id), nil
}

// CustomValidator wraps validator for Echo and reports failures with JSON field names.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator used by the router.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError("invalid request")
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.NewValidationError("%s is required", fe.Field())
	case "email":
		return apperrors.NewValidationError("%s must be a valid email", fe.Field())
	default:
		return apperrors.NewValidationError("%s is invalid", fe.Field())
	}
}

