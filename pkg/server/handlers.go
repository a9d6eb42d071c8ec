package server

import (
	"github.com/labstack/echo/v4"
)

func (s *Server) registerAPIs(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	v1API := e.Group("/api/v1")

	v1API.GET("/sources", s.handlerListSources)
	v1API.POST("/sources", s.handlerReloadAllSources)
	v1API.GET("/sources/:name", s.handlerGetSource)
	v1API.POST("/sources/:name", s.handlerReloadSource)
	v1API.DELETE("/sources/:name", s.handlerRemoveSource)
	v1API.GET("/sources/:name/tail", s.handlerGetSourceTail)
}
