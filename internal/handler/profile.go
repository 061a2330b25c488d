package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/health-tracker/internal/repository"
)

// ProfileHandler serves the account profile used on the dashboard. A
// profile row is created lazily on first read, so the client never has to
// distinguish "new user" from "existing user".
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
}

func NewProfileHandler(p *repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

// Get handles GET /v1/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	email := getEmail(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.GetOrCreate(ctx, uid, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// profileUpdate carries a partial update: nil fields keep their stored
// value, present fields overwrite it.
type profileUpdate struct {
	FullName    *string   `json:"full_name"`
	Username    *string   `json:"username"`
	Age         *int64    `json:"age"`
	Weight      *float64  `json:"weight"`
	Height      *float64  `json:"height"`
	Gender      *string   `json:"gender"`
	HealthGoals *[]string `json:"health_goals"`
	AvatarURL   *string   `json:"avatar_url"`
}

// Update handles PUT /v1/profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	email := getEmail(c)

	var req profileUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Age != nil && (*req.Age < 0 || *req.Age > 150) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "age out of range"})
	}
	if req.Weight != nil && *req.Weight < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "weight must not be negative"})
	}
	if req.Height != nil && *req.Height < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "height must not be negative"})
	}
	if req.Username != nil && strings.TrimSpace(*req.Username) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username must not be empty"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.GetOrCreate(ctx, uid, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	if req.FullName != nil {
		p.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Username != nil {
		p.Username = strings.TrimSpace(*req.Username)
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.Weight != nil {
		p.Weight = req.Weight
	}
	if req.Height != nil {
		p.Height = req.Height
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.HealthGoals != nil {
		p.HealthGoals = *req.HealthGoals
	}
	if req.AvatarURL != nil {
		p.AvatarURL = *req.AvatarURL
	}

	if err := h.Profiles.Update(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
	}
	fresh, err := h.Profiles.GetOrCreate(ctx, uid, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, fresh)
}
