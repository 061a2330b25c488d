package handler

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/health-tracker/internal/model"
)

func TestLogCreateDerivesCategory(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "neo@example.com", "redpill1")

	var created model.HealthLog
	rec := env.do(t, http.MethodPost, "/v1/logs", pair.Access.Token,
		`{"steps":8000,"calories_burned":300,"notes":"morning run"}`, &created)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.NotZero(t, created.ID)
	assert.Equal(t, model.CategoryFitness, created.Category)
	assert.Equal(t, time.Now().Format("2006-01-02"), created.Date, "date defaults to today")
	require.NotNil(t, created.Steps)
	assert.EqualValues(t, 8000, *created.Steps)
	assert.Nil(t, created.SleepHours)
}

func TestLogCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "neo@example.com", "redpill1")

	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"bad date", `{"date":"29-08-2026"}`, "YYYY-MM-DD"},
		{"negative steps", `{"steps":-5}`, "steps"},
		{"energy too high", `{"energy_level":11}`, "energy_level"},
		{"unknown mood", `{"mood":"meh"}`, "mood"},
		{"unknown category", `{"category":"cardio"}`, "category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/v1/logs", pair.Access.Token, tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.msg)
		})
	}
}

func TestLogTodayEndpoint(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "neo@example.com", "redpill1")

	rec := env.do(t, http.MethodGet, "/v1/logs/today", pair.Access.Token, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/logs", pair.Access.Token, `{"sleep_hours":7.5}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var today model.HealthLog
	rec = env.do(t, http.MethodGet, "/v1/logs/today", pair.Access.Token, "", &today)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, today.SleepHours)
	assert.Equal(t, 7.5, *today.SleepHours)
}

func TestLogUpdateAndOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup(t, "owner@example.com", "secret12")
	other := env.signup(t, "other@example.com", "secret12")

	var created model.HealthLog
	rec := env.do(t, http.MethodPost, "/v1/logs", owner.Access.Token,
		`{"date":"2026-08-29","calories_consumed":2000}`, &created)
	require.Equal(t, http.StatusCreated, rec.Code)

	// another account cannot see or modify the row
	id := itoa(created.ID)
	rec = env.do(t, http.MethodGet, "/v1/logs/"+id, other.Access.Token, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(t, http.MethodPut, "/v1/logs/"+id, other.Access.Token, `{"date":"2026-08-29"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// the owner's update replaces the entry wholesale
	var updated model.HealthLog
	rec = env.do(t, http.MethodPut, "/v1/logs/"+id, owner.Access.Token,
		`{"date":"2026-08-29","water_intake_ml":1500}`, &updated)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.CategoryHydration, updated.Category)
	assert.Nil(t, updated.CaloriesConsumed, "omitted metric should be cleared")
	require.NotNil(t, updated.WaterIntakeML)
	assert.EqualValues(t, 1500, *updated.WaterIntakeML)
}

func TestLogDeleteIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "neo@example.com", "redpill1")

	var created model.HealthLog
	rec := env.do(t, http.MethodPost, "/v1/logs", pair.Access.Token, `{"notes":"x"}`, &created)
	require.Equal(t, http.StatusCreated, rec.Code)

	id := itoa(created.ID)
	rec = env.do(t, http.MethodDelete, "/v1/logs/"+id, pair.Access.Token, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodDelete, "/v1/logs/"+id, pair.Access.Token, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodGet, "/v1/logs/"+id, pair.Access.Token, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogListAndStats(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "neo@example.com", "redpill1")

	today := time.Now().Format("2006-01-02")
	rec := env.do(t, http.MethodPost, "/v1/logs", pair.Access.Token,
		`{"date":"`+today+`","steps":6000}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/v1/logs", pair.Access.Token,
		`{"date":"2020-01-01","steps":2000}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var list struct {
		Logs  []model.HealthLog `json:"logs"`
		Count int               `json:"count"`
	}
	rec = env.do(t, http.MethodGet, "/v1/logs", pair.Access.Token, "", &list)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, today, list.Logs[0].Date, "newest first")

	rec = env.do(t, http.MethodGet, "/v1/logs?limit=0", pair.Access.Token, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var s struct {
		TotalLogs int     `json:"totalLogs"`
		Last7Days int     `json:"last7Days"`
		AvgSteps  float64 `json:"avgSteps"`
	}
	rec = env.do(t, http.MethodGet, "/v1/logs/stats", pair.Access.Token, "", &s)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, s.TotalLogs)
	assert.Equal(t, 1, s.Last7Days)
	assert.Equal(t, 4000.0, s.AvgSteps)
}

func itoa(v uint64) string { return strconv.FormatUint(v, 10) }
