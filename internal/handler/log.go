package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/health-tracker/internal/model"
	"github.com/iliyamo/health-tracker/internal/repository"
	"github.com/iliyamo/health-tracker/internal/stats"
)

// LogHandler exposes the health log CRUD and statistics endpoints. Every
// route is mounted behind JWTAuth so the user id is always present in the
// request context.
type LogHandler struct {
	Logs *repository.LogRepo
}

func NewLogHandler(l *repository.LogRepo) *LogHandler {
	return &LogHandler{Logs: l}
}

// logPayload is the wire shape shared by create and update. All metric
// fields are optional; absent fields stay NULL in storage so a sparse
// entry (say, only sleep hours) never fabricates zero readings.
type logPayload struct {
	Date                   string   `json:"date"`
	CaloriesConsumed       *int64   `json:"calories_consumed"`
	ProteinG               *float64 `json:"protein_g"`
	CarbsG                 *float64 `json:"carbs_g"`
	FatsG                  *float64 `json:"fats_g"`
	WaterIntakeML          *int64   `json:"water_intake_ml"`
	WorkoutType            string   `json:"workout_type"`
	WorkoutDurationMinutes *int64   `json:"workout_duration_minutes"`
	CaloriesBurned         *int64   `json:"calories_burned"`
	Steps                  *int64   `json:"steps"`
	Weight                 *float64 `json:"weight"`
	SleepHours             *float64 `json:"sleep_hours"`
	HeartRate              *int64   `json:"heart_rate"`
	BloodPressure          string   `json:"blood_pressure"`
	Mood                   string   `json:"mood"`
	EnergyLevel            *int64   `json:"energy_level"`
	Notes                  string   `json:"notes"`
	Category               string   `json:"category"`
}

// validate normalizes the payload in place and reports the first problem
// found. Date defaults to today when omitted.
func (p *logPayload) validate() error {
	if p.Date == "" {
		p.Date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}
	for name, v := range map[string]*int64{
		"calories_consumed":        p.CaloriesConsumed,
		"water_intake_ml":          p.WaterIntakeML,
		"workout_duration_minutes": p.WorkoutDurationMinutes,
		"calories_burned":          p.CaloriesBurned,
		"steps":                    p.Steps,
		"heart_rate":               p.HeartRate,
	} {
		if v != nil && *v < 0 {
			return errors.New(name + " must not be negative")
		}
	}
	for name, v := range map[string]*float64{
		"protein_g":   p.ProteinG,
		"carbs_g":     p.CarbsG,
		"fats_g":      p.FatsG,
		"weight":      p.Weight,
		"sleep_hours": p.SleepHours,
	} {
		if v != nil && *v < 0 {
			return errors.New(name + " must not be negative")
		}
	}
	if p.EnergyLevel != nil && (*p.EnergyLevel < 1 || *p.EnergyLevel > 10) {
		return errors.New("energy_level must be between 1 and 10")
	}
	if p.Mood != "" && !model.ValidMood(p.Mood) {
		return errors.New("unknown mood")
	}
	if p.Category != "" && !model.ValidCategory(p.Category) {
		return errors.New("unknown category")
	}
	return nil
}

// apply copies the payload onto a log record. Category falls back to the
// value derived from whichever metrics are present.
func (p *logPayload) apply(l *model.HealthLog) {
	l.Date = p.Date
	l.CaloriesConsumed = p.CaloriesConsumed
	l.ProteinG = p.ProteinG
	l.CarbsG = p.CarbsG
	l.FatsG = p.FatsG
	l.WaterIntakeML = p.WaterIntakeML
	l.WorkoutType = p.WorkoutType
	l.WorkoutDurationMinutes = p.WorkoutDurationMinutes
	l.CaloriesBurned = p.CaloriesBurned
	l.Steps = p.Steps
	l.Weight = p.Weight
	l.SleepHours = p.SleepHours
	l.HeartRate = p.HeartRate
	l.BloodPressure = p.BloodPressure
	l.Mood = p.Mood
	l.EnergyLevel = p.EnergyLevel
	l.Notes = p.Notes
	if p.Category != "" {
		l.Category = model.Category(p.Category)
	} else {
		l.Category = l.DeriveCategory()
	}
}

// Create handles POST /v1/logs.
func (h *LogHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var p logPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := p.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	l := model.HealthLog{UserID: uid}
	p.apply(&l)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Logs.Create(ctx, &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create log failed"})
	}
	return c.JSON(http.StatusCreated, l)
}

// List handles GET /v1/logs?limit=N, newest first.
func (h *LogHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
		if n > 200 {
			n = 200
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	logs, err := h.Logs.ListByUser(ctx, uid, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list logs failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": logs, "count": len(logs)})
}

// Get handles GET /v1/logs/:id.
func (h *LogHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid log id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Logs.GetByID(ctx, uid, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "log not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch log failed"})
	}
	return c.JSON(http.StatusOK, l)
}

// Today handles GET /v1/logs/today. When several entries exist for today
// the most recently created one is returned.
func (h *LogHandler) Today(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Logs.GetByDate(ctx, uid, time.Now().Format("2006-01-02"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no log for today"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch log failed"})
	}
	return c.JSON(http.StatusOK, l)
}

// Update handles PUT /v1/logs/:id. The payload fully replaces the stored
// entry, so omitting a metric clears it.
func (h *LogHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid log id"})
	}
	var p logPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := p.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	l := model.HealthLog{ID: id, UserID: uid}
	p.apply(&l)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Logs.Update(ctx, &l); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "log not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update log failed"})
	}
	fresh, err := h.Logs.GetByID(ctx, uid, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch log failed"})
	}
	return c.JSON(http.StatusOK, fresh)
}

// Delete handles DELETE /v1/logs/:id. Deleting a row that is already gone
// still reports success, so retries are harmless.
func (h *LogHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid log id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Logs.Delete(ctx, uid, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete log failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/logs/stats.
func (h *LogHandler) Stats(c echo.Context) error {
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
	return c.JSON(http.StatusOK, stats.Compute(logs, time.Now()))
}
