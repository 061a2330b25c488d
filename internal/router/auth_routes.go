package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/health-tracker/internal/handler"
	"github.com/iliyamo/health-tracker/internal/middleware"
)

// RegisterAuth registers the credential and session endpoints under
// /v1/auth plus the OAuth callback. The limiter middleware, when not nil,
// guards only the endpoints that accept credentials or trigger email so
// the rest of the API keeps full throughput.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, o *handler.OAuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")

	guard := func(h echo.HandlerFunc) echo.HandlerFunc {
		if limiter == nil {
			return h
		}
		return limiter(h)
	}
	g.POST("/register", guard(a.Register))
	g.POST("/login", guard(a.Login))
	g.POST("/forgot-password", guard(a.ForgotPassword))

	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.POST("/reset-password", a.ResetPassword)
	g.GET("/oauth/:provider", o.Begin)

	// Providers redirect back to a top-level callback URL.
	e.GET("/auth/callback", o.Callback)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
