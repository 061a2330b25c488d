package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/health-tracker/internal/handler"
	"github.com/iliyamo/health-tracker/internal/middleware"
)

// RegisterAPI registers the JSON API under /v1. The cache middleware, when
// not nil, fronts only the aggregate GETs; entity reads stay uncached so a
// write is always visible on the next fetch.
func RegisterAPI(e *echo.Echo, logs *handler.LogHandler, profile *handler.ProfileHandler, pages *handler.PageHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	cached := func(h echo.HandlerFunc) echo.HandlerFunc {
		if cache == nil {
			return h
		}
		return cache(h)
	}

	// Static segments before :id so /logs/today and /logs/stats never
	// parse as entity ids.
	g.GET("/logs/today", logs.Today)
	g.GET("/logs/stats", cached(logs.Stats))
	g.POST("/logs", logs.Create)
	g.GET("/logs", logs.List)
	g.GET("/logs/:id", logs.Get)
	g.PUT("/logs/:id", logs.Update)
	g.DELETE("/logs/:id", logs.Delete)

	g.GET("/profile", profile.Get)
	g.PUT("/profile", profile.Update)

	g.GET("/analytics", cached(pages.Analytics))
}
