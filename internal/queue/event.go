// Package queue defines message payloads exchanged over the message broker.
package queue

// PasswordResetRequestedEvent is published when a user asks for a password
// reset mail. It carries everything the mailer needs to compose and send
// the message without querying the primary database. The raw token appears
// only here and in the mail itself; the database stores its hash.
type PasswordResetRequestedEvent struct {
    UserID      uint64 `json:"user_id"`
    Email       string `json:"email"`
    FullName    string `json:"full_name"`
    ResetURL    string `json:"reset_url"`
    ExpiresAt   string `json:"expires_at"`
    RequestedAt string `json:"requested_at"`
}
