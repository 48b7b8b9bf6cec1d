package service

import (
	"context"
	"math"
	"time"

	"github.com/saadjs/fitlog/internal/store"
)

// CaloriesPerStep converts tracker steps to burned kcal.
const CaloriesPerStep = 0.04

// StepCounter reports the step count recorded by an activity tracker for a date.
type StepCounter interface {
	StepsOn(ctx context.Context, date string) (int, error)
}

type TodayCalories struct {
	Date            string  `json:"date"`
	BaseCalories    float64 `json:"baseCalories"`
	Steps           int     `json:"steps"`
	StepCalories    float64 `json:"stepCalories"`
	TotalCalories   float64 `json:"totalCalories"`
	FitbitConnected bool    `json:"fitbitConnected"`
	Message         string  `json:"message,omitempty"`
}

// GetTodayCalories never fails: when steps is nil or errors, only the logged
// exercise calories are reported and Message says why.
func GetTodayCalories(ctx context.Context, st *store.Store, steps StepCounter, now time.Time) TodayCalories {
	date := today(now)
	out := TodayCalories{Date: date}
	for _, e := range st.ListExercises(DateRange{From: date, To: date}) {
		out.BaseCalories += e.Calories
	}
	out.TotalCalories = out.BaseCalories

	if steps == nil {
		out.Message = "Fitbit is not configured"
		return out
	}
	count, err := steps.StepsOn(ctx, date)
	if err != nil {
		out.Message = err.Error()
		return out
	}
	out.FitbitConnected = true
	out.Steps = count
	out.StepCalories = math.Round(float64(count) * CaloriesPerStep)
	out.TotalCalories = out.BaseCalories + out.StepCalories
	return out
}
