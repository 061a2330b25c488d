package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/iliyamo/health-tracker/internal/model"
)

// ProfileRepo provides access to the `profiles` table. Profiles share their
// primary key with the users table and are created lazily on first read.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

const profileColumns = "id,email,full_name,username,age,weight,height,gender,health_goals,avatar_url,created_at,updated_at"

func scanProfile(row rowScanner) (model.UserProfile, error) {
	var (
		p     model.UserProfile
		goals string
	)
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Username,
		&p.Age, &p.Weight, &p.Height, &p.Gender, &goals, &p.AvatarURL,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.UserProfile{}, err
	}
	if goals != "" {
		// A row with corrupt goals JSON still loads; the list just comes
		// back empty rather than failing the whole profile fetch.
		_ = json.Unmarshal([]byte(goals), &p.HealthGoals)
	}
	return p, nil
}

// GetOrCreate returns the caller's profile row, inserting a default one
// derived from the auth identity on first access. The insert tolerates a
// concurrent first-login race: a duplicate-key failure means the other
// request won, and the row is simply re-read.
func (r *ProfileRepo) GetOrCreate(ctx context.Context, userID uint64, email string) (model.UserProfile, error) {
	p, err := r.get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if err != sql.ErrNoRows {
		return model.UserProfile{}, err
	}

	username := email
	if i := strings.Index(email, "@"); i > 0 {
		username = email[:i]
	}
	now := nowStamp()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO profiles (id, email, full_name, username, gender, health_goals, avatar_url, created_at, updated_at) VALUES (?,?,?,?,?,?,?,?,?)",
		userID, email, "", username, "", "[]", "", now, now)
	if err != nil && !isDuplicate(err) {
		return model.UserProfile{}, err
	}
	return r.get(ctx, userID)
}

func (r *ProfileRepo) get(ctx context.Context, userID uint64) (model.UserProfile, error) {
	return scanProfile(r.DB.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id=? LIMIT 1", userID))
}

// Update overwrites the mutable columns of the caller's own row. The id is
// never taken from the payload, so no identity can touch another's profile.
func (r *ProfileRepo) Update(ctx context.Context, p *model.UserProfile) error {
	goals := "[]"
	if p.HealthGoals != nil {
		b, err := json.Marshal(p.HealthGoals)
		if err != nil {
			return err
		}
		goals = string(b)
	}
	p.UpdatedAt = nowStamp()
	res, err := r.DB.ExecContext(ctx,
		"UPDATE profiles SET full_name=?, username=?, age=?, weight=?, height=?, gender=?, health_goals=?, avatar_url=?, updated_at=? WHERE id=?",
		p.FullName, p.Username, p.Age, p.Weight, p.Height, p.Gender, goals, p.AvatarURL, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
