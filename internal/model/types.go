package model

import "time"

const DateLayout = "2006-01-02"

type UserProfile struct {
	ID                   string   `json:"id,omitempty"`
	Nickname             *string  `json:"nickname,omitempty"`
	Email                *string  `json:"email,omitempty"`
	HeightCm             *float64 `json:"heightCm,omitempty"`
	Weight               *float64 `json:"weight,omitempty"`
	Age                  *float64 `json:"age,omitempty"`
	Birthdate            *string  `json:"birthdate,omitempty"`
	Sex                  *string  `json:"sex,omitempty"`
	ActivityLevel        *string  `json:"activityLevel,omitempty"`
	Goal                 *string  `json:"goal,omitempty"`
	TargetWeight         *float64 `json:"targetWeight,omitempty"`
	TargetIntakeCalories *float64 `json:"targetIntakeCalories,omitempty"`
	TargetBurnCalories   *float64 `json:"targetBurnCalories,omitempty"`
	Unit                 *string  `json:"unit,omitempty"`
	Theme                *string  `json:"theme,omitempty"`
}

// IsEmpty reports whether the profile has been cleared.
func (p UserProfile) IsEmpty() bool {
	return p == UserProfile{}
}

// Merge copies every field set on partial over p.
func (p UserProfile) Merge(partial UserProfile) UserProfile {
	if partial.ID != "" {
		p.ID = partial.ID
	}
	if partial.Nickname != nil {
		p.Nickname = partial.Nickname
	}
	if partial.Email != nil {
		p.Email = partial.Email
	}
	if partial.HeightCm != nil {
		p.HeightCm = partial.HeightCm
	}
	if partial.Weight != nil {
		p.Weight = partial.Weight
	}
	if partial.Age != nil {
		p.Age = partial.Age
	}
	if partial.Birthdate != nil {
		p.Birthdate = partial.Birthdate
	}
	if partial.Sex != nil {
		p.Sex = partial.Sex
	}
	if partial.ActivityLevel != nil {
		p.ActivityLevel = partial.ActivityLevel
	}
	if partial.Goal != nil {
		p.Goal = partial.Goal
	}
	if partial.TargetWeight != nil {
		p.TargetWeight = partial.TargetWeight
	}
	if partial.TargetIntakeCalories != nil {
		p.TargetIntakeCalories = partial.TargetIntakeCalories
	}
	if partial.TargetBurnCalories != nil {
		p.TargetBurnCalories = partial.TargetBurnCalories
	}
	if partial.Unit != nil {
		p.Unit = partial.Unit
	}
	if partial.Theme != nil {
		p.Theme = partial.Theme
	}
	return p
}

const (
	TimeOfDayMorning = "morning"
	TimeOfDayNight   = "night"
)

type WeightRecord struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Weight    float64 `json:"weight"`
	TimeOfDay string  `json:"timeOfDay,omitempty"`
}

// SlotKey identifies the upsertable (date, timeOfDay) slot.
func (w WeightRecord) SlotKey() string {
	return w.Date + "|" + w.TimeOfDay
}

type FoodItem struct {
	Name     string  `json:"name"`
	Portion  string  `json:"portion,omitempty"`
	Calories float64 `json:"calories"`
}

type MealRecord struct {
	ID            string     `json:"id"`
	Date          string     `json:"date"`
	MealType      string     `json:"mealType"`
	Memo          string     `json:"memo,omitempty"`
	Foods         []FoodItem `json:"foods"`
	TotalCalories float64    `json:"totalCalories"`
}

type ExerciseRecord struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Type          string  `json:"type"`
	Duration      float64 `json:"duration"`
	Calories      float64 `json:"calories"`
	Memo          string  `json:"memo,omitempty"`
	WorkoutTypeID string  `json:"workoutTypeId,omitempty"`
	Meta          string  `json:"meta,omitempty"`
}

const (
	MenuTypeReps    = "reps"
	MenuTypeSeconds = "seconds"
)

type WorkoutMenu struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Value            float64  `json:"value"`
	Sets             float64  `json:"sets"`
	ExpectedCalories *float64 `json:"expectedCalories"`
}

type WorkoutDay struct {
	Menus []WorkoutMenu `json:"menus"`
}

// WorkoutPlan is keyed by weekday index "0" (Sunday) through "6".
type WorkoutPlan map[string]WorkoutDay

var Weekdays = []string{"0", "1", "2", "3", "4", "5", "6"}

// NewWorkoutPlan returns a plan with seven empty days.
func NewWorkoutPlan() WorkoutPlan {
	plan := make(WorkoutPlan, len(Weekdays))
	for _, key := range Weekdays {
		plan[key] = WorkoutDay{Menus: []WorkoutMenu{}}
	}
	return plan
}

type WorkoutType struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ExpectedCalories *float64  `json:"expectedCalories"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type FoodSet struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Items         []FoodItem `json:"items"`
	TotalCalories float64    `json:"totalCalories"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type FoodMasterItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Portion   string    `json:"portion,omitempty"`
	Calories  float64   `json:"calories"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FitbitTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"`
	UserID       string `json:"userId,omitempty"`
	LastSync     string `json:"lastSync,omitempty"`
}

// ExpiresAtTime converts the epoch-millisecond expiry.
func (t FitbitTokens) ExpiresAtTime() time.Time {
	return time.UnixMilli(t.ExpiresAt)
}
