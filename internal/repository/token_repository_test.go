package repository

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRefreshTokenLifecycle(t *testing.T) {
	repo := NewTokenRepo(newTestDB(t))
	ctx := context.Background()

	hash := "a1b2c3"
	if err := repo.StoreRefresh(ctx, 7, hash, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("store: %v", err)
	}

	uid, err := repo.ValidateRefresh(ctx, hash)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if uid != 7 {
		t.Fatalf("uid = %d, want 7", uid)
	}

	if err := repo.RevokeByHash(ctx, hash); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := repo.ValidateRefresh(ctx, hash); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("validate revoked = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshTokenExpiredAndUnknown(t *testing.T) {
	repo := NewTokenRepo(newTestDB(t))
	ctx := context.Background()

	if err := repo.StoreRefresh(ctx, 7, "expired", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("store: %v", err)
	}
	if _, err := repo.ValidateRefresh(ctx, "expired"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("validate expired = %v, want ErrInvalidToken", err)
	}
	if _, err := repo.ValidateRefresh(ctx, "never-stored"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("validate unknown = %v, want ErrInvalidToken", err)
	}
}

func TestRevokeAllForUser(t *testing.T) {
	repo := NewTokenRepo(newTestDB(t))
	ctx := context.Background()

	exp := time.Now().Add(time.Hour)
	for _, h := range []string{"one", "two"} {
		if err := repo.StoreRefresh(ctx, 7, h, exp); err != nil {
			t.Fatalf("store %s: %v", h, err)
		}
	}
	if err := repo.StoreRefresh(ctx, 8, "other-user", exp); err != nil {
		t.Fatalf("store: %v", err)
	}

	if err := repo.RevokeAllForUser(ctx, 7); err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	for _, h := range []string{"one", "two"} {
		if _, err := repo.ValidateRefresh(ctx, h); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %s survived revoke all: %v", h, err)
		}
	}
	if _, err := repo.ValidateRefresh(ctx, "other-user"); err != nil {
		t.Fatalf("other user's token was revoked: %v", err)
	}
}

func TestResetTokenSingleUse(t *testing.T) {
	repo := NewResetRepo(newTestDB(t))
	ctx := context.Background()

	if err := repo.Store(ctx, 3, "reset-hash", time.Now().Add(30*time.Minute)); err != nil {
		t.Fatalf("store: %v", err)
	}

	uid, err := repo.Consume(ctx, "reset-hash")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if uid != 3 {
		t.Fatalf("uid = %d, want 3", uid)
	}

	// the same link cannot be used twice
	if _, err := repo.Consume(ctx, "reset-hash"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("second consume = %v, want ErrInvalidToken", err)
	}
}

func TestResetTokenExpired(t *testing.T) {
	repo := NewResetRepo(newTestDB(t))
	ctx := context.Background()

	if err := repo.Store(ctx, 3, "stale", time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("store: %v", err)
	}
	if _, err := repo.Consume(ctx, "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("consume expired = %v, want ErrInvalidToken", err)
	}
	if _, err := repo.Consume(ctx, "unknown"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("consume unknown = %v, want ErrInvalidToken", err)
	}
}
