package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/health-tracker/internal/config"
	"github.com/iliyamo/health-tracker/internal/middleware"
	"github.com/iliyamo/health-tracker/internal/repository"
)

// testEnv wires the full handler stack against an in-memory sqlite
// database, with routes registered the same way the server registers them.
type testEnv struct {
	e  *echo.Echo
	db *sql.DB
}

func testConfig() config.Config {
	return config.Config{
		Env:            "test",
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		ResetTTLMin:    30,
		BcryptCost:     4,
		BaseURL:        "http://localhost:8080",
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT, email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL, full_name TEXT NOT NULL DEFAULT '',
			oauth_provider TEXT NOT NULL DEFAULT '', is_active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL, updated_at TEXT NOT NULL)`,
		`CREATE TABLE refresh_tokens (
			id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER NOT NULL,
			token_hash TEXT NOT NULL UNIQUE, expires_at TEXT NOT NULL,
			revoked_at TEXT NOT NULL DEFAULT '', created_at TEXT NOT NULL)`,
		`CREATE TABLE password_resets (
			id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER NOT NULL,
			token_hash TEXT NOT NULL UNIQUE, expires_at TEXT NOT NULL,
			consumed_at TEXT NOT NULL DEFAULT '', created_at TEXT NOT NULL)`,
		`CREATE TABLE health_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER NOT NULL,
			date TEXT NOT NULL, category TEXT NOT NULL,
			calories_consumed INTEGER, protein_g REAL, carbs_g REAL, fats_g REAL,
			water_intake_ml INTEGER, workout_type TEXT NOT NULL DEFAULT '',
			workout_duration_minutes INTEGER, calories_burned INTEGER, steps INTEGER,
			weight REAL, sleep_hours REAL, heart_rate INTEGER,
			blood_pressure TEXT NOT NULL DEFAULT '', mood TEXT NOT NULL DEFAULT '',
			energy_level INTEGER, notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL, updated_at TEXT NOT NULL)`,
		`CREATE TABLE profiles (
			id INTEGER PRIMARY KEY, email TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '', username TEXT NOT NULL DEFAULT '',
			age INTEGER, weight REAL, height REAL, gender TEXT NOT NULL DEFAULT '',
			health_goals TEXT NOT NULL DEFAULT '[]', avatar_url TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL, updated_at TEXT NOT NULL)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	cfg := testConfig()
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	resets := repository.NewResetRepo(db)
	logs := repository.NewLogRepo(db)
	profiles := repository.NewProfileRepo(db)

	authH := NewAuthHandler(cfg, users, tokens, resets)
	logH := NewLogHandler(logs)
	profH := NewProfileHandler(profiles)
	pageH := NewPageHandler(logs, profiles)

	e := echo.New()
	g := e.Group("/v1/auth")
	g.POST("/register", authH.Register)
	g.POST("/login", authH.Login)
	g.POST("/refresh", authH.Refresh)
	g.POST("/logout", authH.Logout)
	g.POST("/forgot-password", authH.ForgotPassword)
	g.POST("/reset-password", authH.ResetPassword)

	api := e.Group("/v1")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))
	api.GET("/me", authH.Me)
	api.GET("/logs/today", logH.Today)
	api.GET("/logs/stats", logH.Stats)
	api.POST("/logs", logH.Create)
	api.GET("/logs", logH.List)
	api.GET("/logs/:id", logH.Get)
	api.PUT("/logs/:id", logH.Update)
	api.DELETE("/logs/:id", logH.Delete)
	api.GET("/profile", profH.Get)
	api.PUT("/profile", profH.Update)
	api.GET("/analytics", pageH.Analytics)

	d := e.Group("/dashboard")
	d.Use(middleware.SessionGuard(cfg.JWTSecret))
	d.GET("", pageH.Dashboard)
	d.GET("/logs", pageH.DashboardLogs)
	d.GET("/analytics", pageH.Analytics)
	d.GET("/:category", pageH.CategoryPage)

	return &testEnv{e: e, db: db}
}

// do performs a JSON request and decodes the response body into out when
// out is non-nil.
func (env *testEnv) do(t *testing.T, method, path, token, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

type tokenPair struct {
	User struct {
		ID       uint64 `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	} `json:"user"`
	Access struct {
		Token string `json:"token"`
	} `json:"access"`
	Refresh struct {
		Token string `json:"token"`
	} `json:"refresh"`
}

// signup registers a fresh account and returns its token pair.
func (env *testEnv) signup(t *testing.T, email, password string) tokenPair {
	t.Helper()
	var pair tokenPair
	rec := env.do(t, http.MethodPost, "/v1/auth/register", "",
		`{"email":"`+email+`","password":"`+password+`","full_name":"Test User"}`, &pair)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotEmpty(t, pair.Access.Token)
	require.NotEmpty(t, pair.Refresh.Token)
	return pair
}
