package repository

import (
	"context"
	"database/sql"
	"time"
)

// ResetRepo persists single-use password reset tokens, hashed the same way
// refresh tokens are.
type ResetRepo struct{ DB *sql.DB }

func NewResetRepo(db *sql.DB) *ResetRepo { return &ResetRepo{DB: db} }

// Store inserts a reset token hash row with its expiry.
func (r *ResetRepo) Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO password_resets (user_id, token_hash, expires_at, created_at) VALUES (?,?,?,?)",
		userID, tokenHash, exp.UTC().Format(time.RFC3339Nano), nowStamp())
	return err
}

// Consume validates a reset token and marks it used in the same call.
// It returns the owning user's id. A token that is unknown, expired or
// already consumed yields ErrInvalidToken.
func (r *ResetRepo) Consume(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		userID     uint64
		expiresAt  string
		consumedAt string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at, consumed_at FROM password_resets WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&userID, &expiresAt, &consumedAt)
	if err == sql.ErrNoRows {
		return 0, ErrInvalidToken
	}
	if err != nil {
		return 0, err
	}
	if consumedAt != "" {
		return 0, ErrInvalidToken
	}
	exp, err := parseStamp(expiresAt)
	if err != nil || time.Now().UTC().After(exp) {
		return 0, ErrInvalidToken
	}
	// Guard the consumed_at='' condition in the UPDATE as well so two
	// concurrent confirmations cannot both succeed.
	res, err := r.DB.ExecContext(ctx,
		"UPDATE password_resets SET consumed_at=? WHERE token_hash=? AND consumed_at=''",
		nowStamp(), tokenHash)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
