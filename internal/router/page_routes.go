package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/health-tracker/internal/handler"
	"github.com/iliyamo/health-tracker/internal/middleware"
)

// RegisterPages registers the navigable pages. Dashboard views sit behind
// the session guard, which redirects browsers to the login page instead of
// answering 401; the login and signup pages bounce already-authenticated
// visitors straight to the dashboard.
func RegisterPages(e *echo.Echo, pages *handler.PageHandler, jwtSecret string) {
	back := middleware.RedirectAuthenticated(jwtSecret)
	e.GET("/auth/login", pages.LoginPage, back)
	e.GET("/auth/signup", pages.SignupPage, back)
	e.GET("/auth/forgot-password", pages.ForgotPasswordPage)
	e.GET("/auth/reset-password", pages.ResetPasswordPage)

	d := e.Group("/dashboard")
	d.Use(middleware.SessionGuard(jwtSecret))
	d.GET("", pages.Dashboard)
	d.GET("/logs", pages.DashboardLogs)
	d.GET("/analytics", pages.Analytics)
	d.GET("/:category", pages.CategoryPage)
}
