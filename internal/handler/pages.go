package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/health-tracker/internal/model"
	"github.com/iliyamo/health-tracker/internal/repository"
	"github.com/iliyamo/health-tracker/internal/stats"
)

// PageHandler backs the navigable surface of the app: the dashboard views
// behind the session guard and the public auth pages. Views return JSON
// payloads shaped for direct rendering; a browser client consumes them as
// page data rather than calling the /v1 API piecemeal.
type PageHandler struct {
	Logs     *repository.LogRepo
	Profiles *repository.ProfileRepo
}

func NewPageHandler(l *repository.LogRepo, p *repository.ProfileRepo) *PageHandler {
	return &PageHandler{Logs: l, Profiles: p}
}

// Root handles GET /.
func (h *PageHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"service": "health-tracker",
		"links": echo.Map{
			"login":     "/auth/login",
			"signup":    "/auth/signup",
			"dashboard": "/dashboard",
			"api":       "/v1",
		},
	})
}

// LoginPage handles GET /auth/login. Authenticated visitors never reach
// this handler; the router redirects them to the dashboard first.
func (h *PageHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"page":           "login",
		"submit":         "/v1/auth/login",
		"oauth":          []string{"/v1/auth/oauth/google", "/v1/auth/oauth/github"},
		"forgotPassword": "/auth/forgot-password",
		"redirectedFrom": c.QueryParam("redirectedFrom"),
	})
}

// SignupPage handles GET /auth/signup.
func (h *PageHandler) SignupPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"page":   "signup",
		"submit": "/v1/auth/register",
	})
}

// ForgotPasswordPage handles GET /auth/forgot-password.
func (h *PageHandler) ForgotPasswordPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"page":   "forgot-password",
		"submit": "/v1/auth/forgot-password",
	})
}

// ResetPasswordPage handles GET /auth/reset-password. The token from the
// emailed link is echoed back so the form can post it with the new
// password.
func (h *PageHandler) ResetPasswordPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"page":   "reset-password",
		"submit": "/v1/auth/reset-password",
		"token":  c.QueryParam("token"),
	})
}

// Dashboard handles GET /dashboard: greeting data, today's entry and the
// lifetime stat cards in one payload. A broken profile row only degrades
// the greeting, it never blanks the whole page.
func (h *PageHandler) Dashboard(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	email := getEmail(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	displayName := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		displayName = email[:i]
	}
	var profile *model.UserProfile
	if p, err := h.Profiles.GetOrCreate(ctx, uid, email); err != nil {
		log.Printf("dashboard: profile load for user %d: %v", uid, err)
	} else {
		profile = &p
		if p.FullName != "" {
			displayName = p.FullName
		} else if p.Username != "" {
			displayName = p.Username
		}
	}

	var today *model.HealthLog
	if l, err := h.Logs.GetByDate(ctx, uid, time.Now().Format("2006-01-02")); err == nil {
		today = &l
	} else if !errors.Is(err, repository.ErrNotFound) {
		// a missing row is normal; a failing query is not
		log.Printf("dashboard: today log load for user %d: %v", uid, err)
	}

	logs, err := h.Logs.ListAll(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load logs failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"display_name": displayName,
		"profile":      profile,
		"today":        today,
		"stats":        stats.Compute(logs, time.Now()),
	})
}

// DashboardLogs handles GET /dashboard/logs with the ten most recent
// entries.
func (h *PageHandler) DashboardLogs(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	logs, err := h.Logs.ListByUser(ctx, uid, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load logs failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": logs, "count": len(logs)})
}

// Analytics handles GET /dashboard/analytics and GET /v1/analytics: the
// stat cards plus a zero-filled daily series for the past week and the
// category distribution, ready for charting.
func (h *PageHandler) Analytics(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	logs, err := h.Logs.ListAll(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load logs failed"})
	}
	now := time.Now()
	return c.JSON(http.StatusOK, echo.Map{
		"summary":    stats.Compute(logs, now),
		"daily":      stats.WeeklySeries(logs, now),
		"categories": stats.CategoryDistribution(logs),
	})
}

// CategoryPage handles GET /dashboard/:category for the four metric
// subpages. Unknown categories 404 rather than falling through to an
// empty list.
func (h *PageHandler) CategoryPage(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	name := c.Param("category")
	switch name {
	case "fitness", "nutrition", "hydration", "sleep":
	default:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown dashboard page"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	logs, err := h.Logs.ListByCategory(ctx, uid, model.Category(name), 50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load logs failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"category": name, "logs": logs, "count": len(logs)})
}
