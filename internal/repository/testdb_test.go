package repository

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// newTestDB opens an in-memory sqlite database with the same tables the
// MySQL migrations create. The repositories only use portable SQL, so the
// swap is transparent. A single connection keeps the in-memory database
// alive for the whole test.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema := []string{
		`CREATE TABLE users (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			email          TEXT NOT NULL UNIQUE,
			password_hash  TEXT NOT NULL,
			full_name      TEXT NOT NULL DEFAULT '',
			oauth_provider TEXT NOT NULL DEFAULT '',
			is_active      INTEGER NOT NULL DEFAULT 1,
			created_at     TEXT NOT NULL,
			updated_at     TEXT NOT NULL
		)`,
		`CREATE TABLE refresh_tokens (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL,
			token_hash TEXT NOT NULL UNIQUE,
			expires_at TEXT NOT NULL,
			revoked_at TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE password_resets (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     INTEGER NOT NULL,
			token_hash  TEXT NOT NULL UNIQUE,
			expires_at  TEXT NOT NULL,
			consumed_at TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL
		)`,
		`CREATE TABLE health_logs (
			id                       INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id                  INTEGER NOT NULL,
			date                     TEXT NOT NULL,
			category                 TEXT NOT NULL,
			calories_consumed        INTEGER,
			protein_g                REAL,
			carbs_g                  REAL,
			fats_g                   REAL,
			water_intake_ml          INTEGER,
			workout_type             TEXT NOT NULL DEFAULT '',
			workout_duration_minutes INTEGER,
			calories_burned          INTEGER,
			steps                    INTEGER,
			weight                   REAL,
			sleep_hours              REAL,
			heart_rate               INTEGER,
			blood_pressure           TEXT NOT NULL DEFAULT '',
			mood                     TEXT NOT NULL DEFAULT '',
			energy_level             INTEGER,
			notes                    TEXT NOT NULL DEFAULT '',
			created_at               TEXT NOT NULL,
			updated_at               TEXT NOT NULL
		)`,
		`CREATE TABLE profiles (
			id           INTEGER PRIMARY KEY,
			email        TEXT NOT NULL,
			full_name    TEXT NOT NULL DEFAULT '',
			username     TEXT NOT NULL DEFAULT '',
			age          INTEGER,
			weight       REAL,
			height       REAL,
			gender       TEXT NOT NULL DEFAULT '',
			health_goals TEXT NOT NULL DEFAULT '[]',
			avatar_url   TEXT NOT NULL DEFAULT '',
			created_at   TEXT NOT NULL,
			updated_at   TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }
