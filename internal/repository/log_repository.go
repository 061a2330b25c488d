package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/health-tracker/internal/model"
)

// LogRepo provides CRUD access to the `health_logs` table. Every query is
// scoped by the owning user id, so a valid row id belonging to another
// account behaves exactly like a missing row.
type LogRepo struct{ DB *sql.DB }

func NewLogRepo(db *sql.DB) *LogRepo { return &LogRepo{DB: db} }

const logColumns = "id,user_id,date,category,calories_consumed,protein_g,carbs_g,fats_g,water_intake_ml," +
	"workout_type,workout_duration_minutes,calories_burned,steps," +
	"weight,sleep_hours,heart_rate,blood_pressure,mood,energy_level,notes,created_at,updated_at"

type rowScanner interface{ Scan(dest ...any) error }

func scanLog(row rowScanner) (model.HealthLog, error) {
	var l model.HealthLog
	err := row.Scan(
		&l.ID, &l.UserID, &l.Date, &l.Category,
		&l.CaloriesConsumed, &l.ProteinG, &l.CarbsG, &l.FatsG, &l.WaterIntakeML,
		&l.WorkoutType, &l.WorkoutDurationMinutes, &l.CaloriesBurned, &l.Steps,
		&l.Weight, &l.SleepHours, &l.HeartRate, &l.BloodPressure, &l.Mood, &l.EnergyLevel,
		&l.Notes, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// Create inserts a new log row. The caller's identity must already be set
// on l.UserID by the handler; any client-supplied owner is overwritten
// there, never here. The persisted id and timestamps are written back into l.
func (r *LogRepo) Create(ctx context.Context, l *model.HealthLog) error {
	now := nowStamp()
	l.CreatedAt = now
	l.UpdatedAt = now
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO health_logs
		 (user_id,date,category,calories_consumed,protein_g,carbs_g,fats_g,water_intake_ml,
		  workout_type,workout_duration_minutes,calories_burned,steps,
		  weight,sleep_hours,heart_rate,blood_pressure,mood,energy_level,notes,created_at,updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		l.UserID, l.Date, l.Category,
		l.CaloriesConsumed, l.ProteinG, l.CarbsG, l.FatsG, l.WaterIntakeML,
		l.WorkoutType, l.WorkoutDurationMinutes, l.CaloriesBurned, l.Steps,
		l.Weight, l.SleepHours, l.HeartRate, l.BloodPressure, l.Mood, l.EnergyLevel,
		l.Notes, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// GetByID fetches a single log owned by userID.
func (r *LogRepo) GetByID(ctx context.Context, userID, id uint64) (model.HealthLog, error) {
	l, err := scanLog(r.DB.QueryRowContext(ctx,
		"SELECT "+logColumns+" FROM health_logs WHERE id=? AND user_id=? LIMIT 1",
		id, userID))
	if err == sql.ErrNoRows {
		return model.HealthLog{}, ErrNotFound
	}
	return l, err
}

// GetByDate fetches the log for one calendar day. Nothing stops a user
// from submitting several logs for the same day, so when more than one row
// matches the newest insertion wins deterministically.
func (r *LogRepo) GetByDate(ctx context.Context, userID uint64, date string) (model.HealthLog, error) {
	l, err := scanLog(r.DB.QueryRowContext(ctx,
		"SELECT "+logColumns+" FROM health_logs WHERE user_id=? AND date=? ORDER BY id DESC LIMIT 1",
		userID, date))
	if err == sql.ErrNoRows {
		return model.HealthLog{}, ErrNotFound
	}
	return l, err
}

// ListByUser fetches up to limit logs owned by userID, newest date first.
func (r *LogRepo) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.HealthLog, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+logColumns+" FROM health_logs WHERE user_id=? ORDER BY date DESC, id DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

// ListAll fetches every log owned by userID, newest date first. The
// statistics endpoint aggregates over the full history in memory.
func (r *LogRepo) ListAll(ctx context.Context, userID uint64) ([]model.HealthLog, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+logColumns+" FROM health_logs WHERE user_id=? ORDER BY date DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

// ListByCategory fetches up to limit logs of one category, newest date first.
func (r *LogRepo) ListByCategory(ctx context.Context, userID uint64, cat model.Category, limit int) ([]model.HealthLog, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+logColumns+" FROM health_logs WHERE user_id=? AND category=? ORDER BY date DESC, id DESC LIMIT ?",
		userID, cat, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

func collectLogs(rows *sql.Rows) ([]model.HealthLog, error) {
	out := []model.HealthLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update overwrites the mutable columns of the row matching both l.ID and
// l.UserID and stamps updated_at. ErrNotFound is returned when no row
// matched, which covers rows owned by another account.
func (r *LogRepo) Update(ctx context.Context, l *model.HealthLog) error {
	l.UpdatedAt = nowStamp()
	res, err := r.DB.ExecContext(ctx,
		`UPDATE health_logs SET
		 date=?,category=?,calories_consumed=?,protein_g=?,carbs_g=?,fats_g=?,water_intake_ml=?,
		 workout_type=?,workout_duration_minutes=?,calories_burned=?,steps=?,
		 weight=?,sleep_hours=?,heart_rate=?,blood_pressure=?,mood=?,energy_level=?,notes=?,updated_at=?
		 WHERE id=? AND user_id=?`,
		l.Date, l.Category,
		l.CaloriesConsumed, l.ProteinG, l.CarbsG, l.FatsG, l.WaterIntakeML,
		l.WorkoutType, l.WorkoutDurationMinutes, l.CaloriesBurned, l.Steps,
		l.Weight, l.SleepHours, l.HeartRate, l.BloodPressure, l.Mood, l.EnergyLevel,
		l.Notes, l.UpdatedAt,
		l.ID, l.UserID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row matching both id and userID. Deleting a row that
// does not exist (or belongs to someone else) is not an error.
func (r *LogRepo) Delete(ctx context.Context, userID, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM health_logs WHERE id=? AND user_id=?",
		id, userID)
	return err
}
