package model

// User represents an application user record as stored in the `users`
// table.  Passwords are stored as bcrypt hashes only.  Accounts created
// through an OAuth provider record the provider name and carry a random
// unusable password hash.
//
// Fields:
//  ID            – primary key identifier of the user.
//  Email         – unique, lowercased email address.
//  PasswordHash  – bcrypt hashed password.
//  FullName      – display name captured at signup; may be empty.
//  OAuthProvider – "google", "github" or empty for password accounts.
//  IsActive      – whether the account is active.
//  CreatedAt     – RFC3339 timestamp of creation.
//  UpdatedAt     – RFC3339 timestamp of last update.
type User struct {
	ID            uint64 // users.id
	Email         string // users.email
	PasswordHash  string // users.password_hash
	FullName      string // users.full_name
	OAuthProvider string // users.oauth_provider
	IsActive      bool   // users.is_active
	CreatedAt     string // users.created_at
	UpdatedAt     string // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each refresh
// token belongs to a user and contains metadata for expiry and revocation.
// The plain token is not stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – RFC3339 expiration timestamp.
//  RevokedAt – when the token was revoked (empty if still active).
//  CreatedAt – RFC3339 timestamp of creation.
type RefreshToken struct {
	ID        uint64 // refresh_tokens.id
	UserID    uint64 // refresh_tokens.user_id
	TokenHash string // refresh_tokens.token_hash
	ExpiresAt string // refresh_tokens.expires_at
	RevokedAt string // refresh_tokens.revoked_at (empty when active)
	CreatedAt string // refresh_tokens.created_at
}

// PasswordReset models an entry in the `password_resets` table.  Reset
// tokens are single use: ConsumedAt is set when the token is exchanged for
// a new password.  Only the SHA-256 hash of the token is stored.
type PasswordReset struct {
	ID         uint64 // password_resets.id
	UserID     uint64 // password_resets.user_id
	TokenHash  string // password_resets.token_hash
	ExpiresAt  string // password_resets.expires_at
	ConsumedAt string // password_resets.consumed_at (empty when unused)
	CreatedAt  string // password_resets.created_at
}
