package router

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/health-tracker/internal/handler"
)

// RegisterBase wires the routes that need no session: the health check,
// the landing payload and the legacy short paths kept from an earlier
// deployment of the app.
func RegisterBase(e *echo.Echo, db *sql.DB, pages *handler.PageHandler) {
	e.GET("/healthz", handler.Healthz(db))
	e.GET("/", pages.Root)

	// Old bookmarks still point at the short paths.
	e.GET("/login", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/auth/login")
	})
	e.GET("/signup", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/auth/signup")
	})
}
