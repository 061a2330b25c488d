package model

// Category tags a health log with the kind of activity it records.  The
// category is fixed at creation time.  When the client does not supply one
// it is derived from which metric group is populated, in a fixed precedence
// order: workout fields first, then nutrition, then hydration, then sleep,
// and finally the generic HEALTH bucket.
type Category string

const (
	CategoryFitness   Category = "fitness"
	CategoryNutrition Category = "nutrition"
	CategoryHydration Category = "hydration"
	CategorySleep     Category = "sleep"
	CategoryHealth    Category = "health"
)

// ValidCategory reports whether s is one of the known category tags.
func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryFitness, CategoryNutrition, CategoryHydration, CategorySleep, CategoryHealth:
		return true
	}
	return false
}

// Moods accepted in the `mood` column.  An empty string means the user did
// not log a mood.
const (
	MoodExcellent = "excellent"
	MoodGood      = "good"
	MoodNeutral   = "neutral"
	MoodBad       = "bad"
	MoodTerrible  = "terrible"
)

// ValidMood reports whether s is an accepted mood label or empty.
func ValidMood(s string) bool {
	switch s {
	case "", MoodExcellent, MoodGood, MoodNeutral, MoodBad, MoodTerrible:
		return true
	}
	return false
}

// HealthLog represents one row of the `health_logs` table.  Every numeric
// metric is a pointer: nil means the user did not log that metric, which is
// distinct from logging a zero (no water logged vs 0ml drunk).  Free-text
// fields use the empty string for absence.
//
// Fields:
//  ID        – primary key identifier, assigned by the store.
//  UserID    – owner of the row; every query is scoped by it.
//  Date      – calendar day in yyyy-MM-dd form.
//  Category  – activity tag decided at creation (see Category).
//  CreatedAt – RFC3339 creation timestamp.
//  UpdatedAt – RFC3339 timestamp stamped on every mutation.
type HealthLog struct {
	ID       uint64   `json:"id"`
	UserID   uint64   `json:"user_id"`
	Date     string   `json:"date"`
	Category Category `json:"category"`

	// Nutrition
	CaloriesConsumed *int64   `json:"calories_consumed,omitempty"`
	ProteinG         *float64 `json:"protein_g,omitempty"`
	CarbsG           *float64 `json:"carbs_g,omitempty"`
	FatsG            *float64 `json:"fats_g,omitempty"`
	WaterIntakeML    *int64   `json:"water_intake_ml,omitempty"`

	// Fitness
	WorkoutType            string `json:"workout_type,omitempty"`
	WorkoutDurationMinutes *int64 `json:"workout_duration_minutes,omitempty"`
	CaloriesBurned         *int64 `json:"calories_burned,omitempty"`
	Steps                  *int64 `json:"steps,omitempty"`

	// Vitals / wellness
	Weight        *float64 `json:"weight,omitempty"`
	SleepHours    *float64 `json:"sleep_hours,omitempty"`
	HeartRate     *int64   `json:"heart_rate,omitempty"`
	BloodPressure string   `json:"blood_pressure,omitempty"`
	Mood          string   `json:"mood,omitempty"`
	EnergyLevel   *int64   `json:"energy_level,omitempty"`
	Notes         string   `json:"notes,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// DeriveCategory picks the category for a log from which metric group is
// populated, using the fixed precedence order.  Logs that populate none of
// the groups fall into the generic HEALTH bucket.
func (l *HealthLog) DeriveCategory() Category {
	switch {
	case l.WorkoutType != "" || l.WorkoutDurationMinutes != nil || l.CaloriesBurned != nil || l.Steps != nil:
		return CategoryFitness
	case l.CaloriesConsumed != nil || l.ProteinG != nil || l.CarbsG != nil || l.FatsG != nil:
		return CategoryNutrition
	case l.WaterIntakeML != nil:
		return CategoryHydration
	case l.SleepHours != nil:
		return CategorySleep
	}
	return CategoryHealth
}
