package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const suffixYAML = ".yaml"

func (s *Server) getDB(c echo.Context) *gorm.DB {
	return s.db.WithContext(c.Request().Context())
}

func getRequiredParamFromEchoContext(c echo.Context, name string) (string, error) {
	val := c.Param(name)
	if len(val) == 0 {
		return "", badRequest(name + " is required")
	}
	return val, nil
}

func bindAndValidate[T any](c echo.Context, input *T) error {
	err := c.Bind(input)
	if err != nil {
		return err
	}
	return c.Validate(input)
}

func badLineCount(err error) error {
	return fmt.Errorf("illegal line count -- %w", err)
}

func badByteCount(err error) error {
	return fmt.Errorf("illegal byte count -- %w", err)
}

func badRequest(msg string) error {
	return &echo.HTTPError{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

func notFound(msg string) error {
	return &echo.HTTPError{
		Code:    http.StatusNotFound,
		Message: msg,
	}
}

func newHTTPError(code int, msg string) error {
	return &echo.HTTPError{
		Code:    code,
		Message: msg,
	}
}
