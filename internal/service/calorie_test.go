package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/saadjs/fitlog/internal/service"
)

func TestRecommendMifflinStJeor(t *testing.T) {
	t.Parallel()

	rec, err := service.Recommend(service.RecommendationInput{
		WeightKg: ptr(70.0), HeightCm: ptr(175.0), Age: ptr(30.0),
		Sex: "male", ActivityLevel: "moderate",
	})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.BMR != 1649 || rec.TDEE != 2556 || rec.ActivityLevel != "moderate" {
		t.Fatalf("unexpected recommendation: %+v", rec)
	}

	female, err := service.Recommend(service.RecommendationInput{
		WeightKg: ptr(60.0), HeightCm: ptr(160.0), Age: ptr(40.0),
		Sex: "female", ActivityLevel: "low",
	})
	if err != nil {
		t.Fatalf("recommend female: %v", err)
	}
	// 600 + 1000 - 200 - 161 = 1239; 1239 * 1.2 = 1486.8
	if female.BMR != 1239 || female.TDEE != 1487 {
		t.Fatalf("unexpected female recommendation: %+v", female)
	}
}

func TestRecommendValidation(t *testing.T) {
	t.Parallel()

	cases := []service.RecommendationInput{
		{HeightCm: ptr(175.0), Age: ptr(30.0), Sex: "male", ActivityLevel: "moderate"},
		{WeightKg: ptr(math.Inf(1)), HeightCm: ptr(175.0), Age: ptr(30.0), Sex: "male", ActivityLevel: "moderate"},
		{WeightKg: ptr(70.0), HeightCm: ptr(175.0), Age: ptr(30.0), Sex: "other", ActivityLevel: "moderate"},
		{WeightKg: ptr(70.0), HeightCm: ptr(175.0), Age: ptr(30.0), Sex: "male", ActivityLevel: "extreme"},
	}
	for _, in := range cases {
		_, err := service.Recommend(in)
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error for %+v, got %v", in, err)
		}
	}
}

func TestSaveProfileValidatesAndMerges(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	_, err := service.SaveProfile(st, service.ProfileInput{
		"heightCm": "tall", "age": 30.0, "sex": "male", "activityLevel": "moderate", "goal": "maintain",
	})
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for non-numeric height, got %v", err)
	}

	_, err = service.SaveProfile(st, service.ProfileInput{
		"heightCm": "182", "age": 41.0, "sex": "male", "activityLevel": "high", "goal": "lose",
	})
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for quoted height, got %v", err)
	}
	_, err = service.SaveProfile(st, service.ProfileInput{
		"heightCm": 182.0, "age": 41.0, "sex": "male", "activityLevel": "high", "goal": "lose", "targetWeight": "70",
	})
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for quoted target weight, got %v", err)
	}

	profile, err := service.SaveProfile(st, service.ProfileInput{
		"heightCm": 182.0, "age": 41.0, "sex": "male", "activityLevel": "high", "goal": "lose", "nickname": "ken",
	})
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if *profile.HeightCm != 182 || *profile.Age != 41 || *profile.Nickname != "ken" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.TargetWeight == nil {
		t.Fatalf("expected merge to keep default target weight")
	}

	if err := service.ClearProfile(st); err != nil {
		t.Fatalf("clear profile: %v", err)
	}
	var nf *service.NotFoundError
	if _, err := service.GetProfile(st); !errors.As(err, &nf) {
		t.Fatalf("expected not found after clear, got %v", err)
	}
}

type fakeSteps struct {
	steps int
	err   error
}

func (f fakeSteps) StepsOn(context.Context, string) (int, error) {
	return f.steps, f.err
}

func TestTodayCaloriesBlendsSteps(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	if _, err := service.AddExerciseRecord(st, service.ExerciseRecordInput{Date: "2026-03-10", Type: "run", Calories: ptr(250.0)}); err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if _, err := service.AddExerciseRecord(st, service.ExerciseRecordInput{Date: "2026-03-09", Type: "run", Calories: ptr(999.0)}); err != nil {
		t.Fatalf("add exercise: %v", err)
	}

	got := service.GetTodayCalories(context.Background(), st, fakeSteps{steps: 8012}, now)
	if !got.FitbitConnected || got.BaseCalories != 250 || got.StepCalories != 320 || got.TotalCalories != 570 {
		t.Fatalf("unexpected today calories: %+v", got)
	}

	degraded := service.GetTodayCalories(context.Background(), st, fakeSteps{err: errors.New("fitbit is not connected")}, now)
	if degraded.FitbitConnected || degraded.TotalCalories != 250 || degraded.Message == "" {
		t.Fatalf("expected base-only fallback, got %+v", degraded)
	}

	unconfigured := service.GetTodayCalories(context.Background(), st, nil, now)
	if unconfigured.FitbitConnected || unconfigured.StepCalories != 0 {
		t.Fatalf("unexpected unconfigured result: %+v", unconfigured)
	}
}
