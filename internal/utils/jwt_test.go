package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "a@b.c", 15)
	if err != nil {
		t.Fatalf("new access token: %v", err)
	}
	if at.Token == "" {
		t.Fatal("empty token")
	}
	if until := time.Until(at.Exp); until < 14*time.Minute || until > 16*time.Minute {
		t.Fatalf("expiry %v not near 15m", until)
	}

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Fatalf("sub = %v, want 42", claims["sub"])
	}
	if email, _ := claims["email"].(string); email != "a@b.c" {
		t.Fatalf("email = %v", claims["email"])
	}

	// a different secret must not verify
	if _, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	}); err == nil {
		t.Fatal("token verified with wrong secret")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("new refresh token: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("raw length = %d, want 96 hex chars", len(rt.Raw))
	}
	if h := HashRefreshRaw(rt.Raw); len(h) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(h))
	}
	if until := time.Until(rt.Exp); until < 6*24*time.Hour {
		t.Fatalf("expiry %v too soon for 7 days", until)
	}

	other, _ := NewRefreshToken(7)
	if other.Raw == rt.Raw {
		t.Fatal("two refresh tokens collided")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "hunter22") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "hunter23") {
		t.Fatal("wrong password accepted")
	}
}
