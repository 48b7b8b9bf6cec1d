package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type ExerciseRecordInput struct {
	Date          string   `json:"date"`
	Type          string   `json:"type"`
	Duration      *float64 `json:"duration"`
	Calories      *float64 `json:"calories"`
	Memo          string   `json:"memo"`
	WorkoutTypeID string   `json:"workoutTypeId"`
	Meta          string   `json:"meta"`
}

// ExerciseView is an exercise record with the expected calories of its
// matching workout type, if any.
type ExerciseView struct {
	model.ExerciseRecord
	ExpectedCalories *float64 `json:"expectedCalories"`
}

type WorkoutSummary struct {
	Date          string         `json:"date"`
	TotalCalories float64        `json:"totalCalories"`
	Count         int            `json:"count"`
	Records       []ExerciseView `json:"records"`
}

type WorkoutCompletion struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type TodayWorkout struct {
	Date             string              `json:"date"`
	Weekday          string              `json:"weekday"`
	Menus            []model.WorkoutMenu `json:"menus"`
	ExpectedCalories float64             `json:"expectedCalories"`
	Completed        bool                `json:"completed"`
}

// SanitizePlan coerces an arbitrary decoded payload into a seven-day plan.
// It accepts an object keyed by weekday or an array indexed by weekday, and
// sanitizing its own output returns the same plan.
func SanitizePlan(raw any) model.WorkoutPlan {
	plan := model.NewWorkoutPlan()

	var generic any
	if b, err := json.Marshal(raw); err == nil {
		_ = json.Unmarshal(b, &generic)
	}

	days := map[string]any{}
	switch v := generic.(type) {
	case map[string]any:
		days = v
	case []any:
		for i, day := range v {
			days[strconv.Itoa(i)] = day
		}
	}

	for _, key := range model.Weekdays {
		day, ok := days[key].(map[string]any)
		if !ok {
			continue
		}
		menus, ok := day["menus"].([]any)
		if !ok {
			continue
		}
		out := make([]model.WorkoutMenu, 0, len(menus))
		for _, m := range menus {
			menu, ok := m.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, sanitizeMenu(menu))
		}
		plan[key] = model.WorkoutDay{Menus: out}
	}
	return plan
}

func sanitizeMenu(raw map[string]any) model.WorkoutMenu {
	menu := model.WorkoutMenu{Type: model.MenuTypeReps}
	if name, ok := raw["name"].(string); ok {
		menu.Name = strings.TrimSpace(name)
	}
	if t, ok := raw["type"].(string); ok && t == model.MenuTypeSeconds {
		menu.Type = model.MenuTypeSeconds
	}
	if v, ok := toNumber(raw["value"]); ok {
		menu.Value = v
	}
	if v, ok := toNumber(raw["sets"]); ok {
		menu.Sets = v
	}
	if v, ok := toNumber(raw["expectedCalories"]); ok {
		menu.ExpectedCalories = floatPtr(v)
	}
	return menu
}

// toNumber accepts JSON numbers and numeric strings. Only plan sanitizing
// coerces; request payloads take JSON numbers.
func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, isFinite(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, isFinite(f)
	default:
		return 0, false
	}
}

func WorkoutSettings(st *store.Store) model.WorkoutPlan {
	return SanitizePlan(st.WorkoutSettings())
}

func SaveWorkoutSettings(st *store.Store, raw any) (model.WorkoutPlan, error) {
	return st.SaveWorkoutSettings(SanitizePlan(raw))
}

func AddExerciseRecord(st *store.Store, in ExerciseRecordInput) (model.ExerciseRecord, error) {
	date, err := requireDate(in.Date)
	if err != nil {
		return model.ExerciseRecord{}, err
	}
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		return model.ExerciseRecord{}, invalidf("type is required")
	}
	if in.Calories == nil || !isFinite(*in.Calories) || *in.Calories <= 0 {
		return model.ExerciseRecord{}, invalidf("calories must be a finite number > 0")
	}
	duration := 0.0
	if in.Duration != nil {
		duration = *in.Duration
	}
	if !isFinite(duration) || duration < 0 {
		return model.ExerciseRecord{}, invalidf("duration must be a finite number >= 0")
	}
	return st.AddExerciseRecord(model.ExerciseRecord{
		Date:          date,
		Type:          typ,
		Duration:      duration,
		Calories:      *in.Calories,
		Memo:          strings.TrimSpace(in.Memo),
		WorkoutTypeID: strings.TrimSpace(in.WorkoutTypeID),
		Meta:          strings.TrimSpace(in.Meta),
	})
}

// ExerciseRecords lists exercises newest first, resolving expected calories by
// workout type id and falling back to a type-name match.
func ExerciseRecords(st *store.Store, r DateRange) ([]ExerciseView, error) {
	r, err := normalizeRange(r)
	if err != nil {
		return nil, err
	}
	return enrichExercises(st.ListExercises(r), st.ListWorkoutTypes()), nil
}

func enrichExercises(records []model.ExerciseRecord, types []model.WorkoutType) []ExerciseView {
	byID := make(map[string]model.WorkoutType, len(types))
	byName := make(map[string]model.WorkoutType, len(types))
	for _, wt := range types {
		byID[wt.ID] = wt
		if _, ok := byName[wt.Name]; !ok {
			byName[wt.Name] = wt
		}
	}
	out := make([]ExerciseView, 0, len(records))
	for _, rec := range records {
		view := ExerciseView{ExerciseRecord: rec}
		if wt, ok := byID[rec.WorkoutTypeID]; ok && rec.WorkoutTypeID != "" {
			view.ExpectedCalories = wt.ExpectedCalories
		} else if wt, ok := byName[rec.Type]; ok {
			view.ExpectedCalories = wt.ExpectedCalories
		}
		out = append(out, view)
	}
	return out
}

func WorkoutSummaryForDate(st *store.Store, rawDate string) (WorkoutSummary, error) {
	date, err := requireDate(rawDate)
	if err != nil {
		return WorkoutSummary{}, err
	}
	records := enrichExercises(st.ListExercises(DateRange{From: date, To: date}), st.ListWorkoutTypes())
	summary := WorkoutSummary{Date: date, Count: len(records), Records: records}
	for _, r := range records {
		summary.TotalCalories += r.Calories
	}
	return summary, nil
}

// MarkWorkoutComplete marks the server's current date, never a client-supplied one.
func MarkWorkoutComplete(st *store.Store, now time.Time) (WorkoutCompletion, error) {
	date := today(now)
	if err := st.MarkWorkoutCompleted(date); err != nil {
		return WorkoutCompletion{}, fmt.Errorf("mark workout complete: %w", err)
	}
	return WorkoutCompletion{Date: date, Completed: true}, nil
}

func UnmarkWorkoutComplete(st *store.Store, now time.Time) (WorkoutCompletion, error) {
	date := today(now)
	if err := st.UnmarkWorkoutCompleted(date); err != nil {
		return WorkoutCompletion{}, fmt.Errorf("unmark workout complete: %w", err)
	}
	return WorkoutCompletion{Date: date, Completed: false}, nil
}

func GetWorkoutCompletion(st *store.Store, rawDate string, now time.Time) (WorkoutCompletion, error) {
	date := today(now)
	if strings.TrimSpace(rawDate) != "" {
		d, err := requireDate(rawDate)
		if err != nil {
			return WorkoutCompletion{}, err
		}
		date = d
	}
	return WorkoutCompletion{Date: date, Completed: st.IsWorkoutCompletedOn(date)}, nil
}

// GetTodayWorkout returns the plan's menus for now's weekday.
func GetTodayWorkout(st *store.Store, now time.Time) TodayWorkout {
	weekday := strconv.Itoa(int(now.Weekday()))
	plan := WorkoutSettings(st)
	menus := plan[weekday].Menus
	out := TodayWorkout{
		Date:      today(now),
		Weekday:   weekday,
		Menus:     menus,
		Completed: st.IsWorkoutCompletedOn(today(now)),
	}
	for _, m := range menus {
		if m.ExpectedCalories != nil {
			out.ExpectedCalories += *m.ExpectedCalories
		}
	}
	return out
}
