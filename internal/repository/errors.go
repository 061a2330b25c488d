// Package repository defines the data access layer and the error types
// reused across repositories. These sentinel values allow higher layers
// such as handlers to distinguish between failure scenarios: ErrNotFound
// covers both a missing row and a row owned by someone else (ownership
// misses are deliberately indistinguishable from absence), while
// ErrEmailExists and ErrInvalidToken map to conflict and unauthorized
// responses respectively.
package repository

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when no row matches both the requested id and
// the caller's identity. Handlers should translate this into an HTTP 404
// response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registration hits the unique email
// constraint. Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidToken is returned for refresh or reset tokens that are
// unknown, expired, revoked or already consumed. Handlers should translate
// this into an HTTP 401 response.
var ErrInvalidToken = errors.New("invalid token")

// isDuplicate recognizes unique-constraint violations from both backends:
// MySQL reports error 1062, sqlite reports "UNIQUE constraint failed".
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "unique constraint")
}

// nowStamp returns the current UTC time as an RFC3339Nano string. The
// nanosecond precision guarantees that consecutive mutations of the same
// row always produce a distinct updated_at, so a zero rows-affected result
// from an UPDATE reliably means "no matching row" rather than "no change".
func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// parseStamp parses an RFC3339 timestamp previously written by nowStamp.
func parseStamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
