package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
)

const ctxKeyLogger = "tailrd-logger"

// setLogger stores a request scoped logger in the echo context. Requests
// addressing a single source also carry its name.
func setLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			attrs := []any{
				slog.String("req_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				slog.String("method", c.Request().Method),
				slog.String("route", c.Path()),
			}
			if name := c.Param("name"); len(name) > 0 {
				attrs = append(attrs, slog.String("source", name))
			}
			c.Set(ctxKeyLogger, logger.With(attrs...))
			return next(c)
		}
	}
}

func getLogger(c echo.Context) *slog.Logger {
	return c.Get(ctxKeyLogger).(*slog.Logger)
}
