package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/health-tracker/internal/model"
	"github.com/iliyamo/health-tracker/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,full_name,oauth_provider,is_active,created_at,updated_at"

// Create inserts a user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, password, fullName string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	now := nowStamp()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, full_name, oauth_provider, is_active, created_at, updated_at) VALUES (?,?,?,?,?,?,?)",
		email, hash, fullName, "", true, now, now)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.OAuthProvider, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.OAuthProvider, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// UpdatePassword replaces the stored bcrypt hash for a user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=? WHERE id=?",
		hash, nowStamp(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// FindOrCreateOAuth resolves an OAuth callback identity to a local user.
// An existing account with the same email is reused regardless of how it
// was created; otherwise a new account is inserted with an unguessable
// random password so it cannot be signed into with credentials.
func (r *UserRepo) FindOrCreateOAuth(ctx context.Context, email, fullName, provider string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := r.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if err != sql.ErrNoRows {
		return model.User{}, err
	}
	random, err := utils.RandomHex(32)
	if err != nil {
		return model.User{}, err
	}
	hash, err := utils.HashPassword(random, cost)
	if err != nil {
		return model.User{}, err
	}
	now := nowStamp()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, full_name, oauth_provider, is_active, created_at, updated_at) VALUES (?,?,?,?,?,?,?)",
		email, hash, fullName, provider, true, now, now)
	if err != nil && !isDuplicate(err) {
		return model.User{}, err
	}
	// duplicate means a concurrent callback won the insert; re-read either way
	return r.GetByEmail(ctx, email)
}
