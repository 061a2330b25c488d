package model

// UserProfile represents a row in the `profiles` table.  Exactly one row
// exists per authenticated user and its primary key equals the user's id.
// The row is created lazily on first access with a username derived from
// the local part of the email address.
//
// Fields:
//  ID          – primary key, equals users.id.
//  Email       – copied from the user record at creation.
//  FullName    – display name; may be empty.
//  Username    – short handle, defaults to the email local part.
//  Age         – optional, years.
//  Weight      – optional, kilograms.
//  Height      – optional, centimeters.
//  Gender      – free-text label; may be empty.
//  HealthGoals – ordered list of goal labels, stored JSON-encoded.
//  AvatarURL   – optional avatar image URL.
//  CreatedAt   – RFC3339 creation timestamp.
//  UpdatedAt   – RFC3339 timestamp of last update.
type UserProfile struct {
	ID          uint64   `json:"id"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name,omitempty"`
	Username    string   `json:"username,omitempty"`
	Age         *int64   `json:"age,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	HealthGoals []string `json:"health_goals,omitempty"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}
