package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator func(i any) error

// Validate reports the first failing field as a 400 error.
func (v echoValidator) Validate(i any) error {
	err := v(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, fieldErrs[0].Error())
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
