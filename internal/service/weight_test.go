package service_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/saadjs/fitlog/internal/service"
)

func TestAddWeightRecordUpsertsSlot(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	for _, w := range []float64{70.4, 69.8} {
		if _, err := service.AddWeightRecord(st, service.WeightRecordInput{Date: "2026-03-01", Weight: ptr(w), TimeOfDay: "morning"}); err != nil {
			t.Fatalf("add weight: %v", err)
		}
	}
	items, err := service.ListWeightRecords(st, service.DateRange{From: "2026-03-01", To: "2026-03-01"})
	if err != nil {
		t.Fatalf("list weights: %v", err)
	}
	if len(items) != 1 || items[0].Weight != 69.8 {
		t.Fatalf("expected one record with latest value, got %+v", items)
	}
}

func TestAddWeightRecordValidation(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	cases := []service.WeightRecordInput{
		{Date: "nope", Weight: ptr(70.0)},
		{Date: "2026-03-01"},
		{Date: "2026-03-01", Weight: ptr(0.0)},
		{Date: "2026-03-01", Weight: ptr(500.0)},
		{Date: "2026-03-01", Weight: ptr(70.0), TimeOfDay: "noon"},
	}
	for _, in := range cases {
		_, err := service.AddWeightRecord(st, in)
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error for %+v, got %v", in, err)
		}
	}
}

func TestWeightSummaryEmptyStore(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	summary := service.GetWeightSummary(st, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	if summary.CurrentWeight != nil || summary.MonthlyAverage != nil || summary.MonthlyDiff != nil ||
		summary.LatestRecord != nil || summary.PreviousRecord != nil {
		t.Fatalf("expected null fields on empty store, got %+v", summary)
	}
	if summary.TargetWeight == nil || *summary.TargetWeight != 60 {
		t.Fatalf("expected default target weight, got %+v", summary.TargetWeight)
	}
}

func TestWeightSummaryMonthlyDiff(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	add := func(date string, w float64) {
		t.Helper()
		if _, err := service.AddWeightRecord(st, service.WeightRecordInput{Date: date, Weight: ptr(w)}); err != nil {
			t.Fatalf("add weight: %v", err)
		}
	}
	add("2026-03-02", 70)
	add("2026-03-05", 69)

	summary := service.GetWeightSummary(st, now)
	if summary.MonthlyAverage == nil || *summary.MonthlyAverage != 69.5 {
		t.Fatalf("expected monthly average 69.5, got %+v", summary.MonthlyAverage)
	}
	// No February data: the diff falls back to the current average.
	if summary.MonthlyDiff == nil || *summary.MonthlyDiff != 69.5 {
		t.Fatalf("expected fallback diff 69.5, got %+v", summary.MonthlyDiff)
	}
	if summary.CurrentWeight == nil || *summary.CurrentWeight != 69 {
		t.Fatalf("expected current weight 69, got %+v", summary.CurrentWeight)
	}
	if summary.PreviousRecord == nil || summary.PreviousRecord.Date != "2026-03-02" {
		t.Fatalf("unexpected previous record: %+v", summary.PreviousRecord)
	}

	add("2026-02-20", 71)
	summary = service.GetWeightSummary(st, now)
	if summary.MonthlyDiff == nil || *summary.MonthlyDiff != -1.5 {
		t.Fatalf("expected diff -1.5, got %+v", summary.MonthlyDiff)
	}

	april := service.GetWeightSummary(st, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC))
	if april.MonthlyAverage != nil || april.MonthlyDiff != nil {
		t.Fatalf("expected null average and diff without current-month data, got %+v", april)
	}
}

func TestWeightTrendDailyWindow(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	for _, in := range []service.WeightRecordInput{
		{Date: "2026-02-01", Weight: ptr(72.0)},
		{Date: "2026-03-08", Weight: ptr(70.0), TimeOfDay: "morning"},
		{Date: "2026-03-08", Weight: ptr(70.5), TimeOfDay: "night"},
		{Date: "2026-03-10", Weight: ptr(69.6)},
	} {
		if _, err := service.AddWeightRecord(st, in); err != nil {
			t.Fatalf("add weight: %v", err)
		}
	}

	trend, err := service.GetWeightTrend(st, "7d", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("weight trend: %v", err)
	}
	if len(trend.Data) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(trend.Data))
	}
	if first, last := trend.Data[0].Date, trend.Data[6].Date; first != "2026-03-04" || last != "2026-03-10" {
		t.Fatalf("expected window anchored at latest record, got %s..%s", first, last)
	}
	if w := trend.Data[4].Weight; w == nil || *w != 70.3 {
		t.Fatalf("expected bucket mean 70.3 on 03-08, got %+v", w)
	}
	if trend.Data[5].Weight != nil {
		t.Fatalf("expected null weight on a day without records")
	}
	if trend.WeightStats.Latest == nil || *trend.WeightStats.Latest != 69.6 {
		t.Fatalf("unexpected latest: %+v", trend.WeightStats)
	}
	// The diff spans the whole series, including 02-01 outside the window.
	if trend.WeightStats.Diff == nil || *trend.WeightStats.Diff != -2.4 {
		t.Fatalf("expected diff -2.4, got %+v", trend.WeightStats.Diff)
	}

	raw, err := json.Marshal(trend.Data[0])
	if err != nil {
		t.Fatalf("marshal point: %v", err)
	}
	if strings.Contains(string(raw), "intake") || strings.Contains(string(raw), "burned") {
		t.Fatalf("expected calorie fields omitted without calorie data, got %s", raw)
	}
	if trend.CalorieStats.AvgIntake != nil {
		t.Fatalf("expected null calorie stats, got %+v", trend.CalorieStats)
	}
}

func TestWeightTrendCaloriesBecomeNullable(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	if _, err := service.AddMealRecord(st, service.MealRecordInput{
		Date: "2026-03-10", MealType: "lunch",
		Foods: []service.FoodItemInput{{Name: "ramen", Calories: ptr(801.0)}},
	}); err != nil {
		t.Fatalf("add meal: %v", err)
	}
	if _, err := service.AddExerciseRecord(st, service.ExerciseRecordInput{
		Date: "2026-03-10", Type: "run", Calories: ptr(300.0),
	}); err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if _, err := service.AddMealRecord(st, service.MealRecordInput{
		Date: "2026-03-09", MealType: "lunch",
		Foods: []service.FoodItemInput{{Name: "soba", Calories: ptr(400.0)}},
	}); err != nil {
		t.Fatalf("add meal: %v", err)
	}

	trend, err := service.GetWeightTrend(st, "", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("weight trend: %v", err)
	}
	if trend.Period != "30d" || len(trend.Data) != 30 {
		t.Fatalf("expected default 30d window, got %s with %d rows", trend.Period, len(trend.Data))
	}
	raw, err := json.Marshal(trend.Data[0])
	if err != nil {
		t.Fatalf("marshal point: %v", err)
	}
	if !strings.Contains(string(raw), `"intake":null`) || !strings.Contains(string(raw), `"burned":null`) {
		t.Fatalf("expected null calorie fields, got %s", raw)
	}
	last := trend.Data[29]
	if last.Intake == nil || *last.Intake != 801 || last.Burned == nil || *last.Burned != 300 {
		t.Fatalf("unexpected last row: %+v", last)
	}
	// Only 03-10 has both intake and burned.
	stats := trend.CalorieStats
	if stats.AvgIntake == nil || *stats.AvgIntake != 801 || *stats.AvgBurned != 300 || *stats.Diff != 501 {
		t.Fatalf("unexpected calorie stats: %+v", stats)
	}
}

func TestWeightTrendMonthlyAndInvalidPeriod(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	for _, in := range []service.WeightRecordInput{
		{Date: "2025-04-15", Weight: ptr(75.0)},
		{Date: "2026-01-05", Weight: ptr(72.0)},
		{Date: "2026-01-25", Weight: ptr(71.0)},
		{Date: "2026-03-01", Weight: ptr(70.0)},
	} {
		if _, err := service.AddWeightRecord(st, in); err != nil {
			t.Fatalf("add weight: %v", err)
		}
	}
	trend, err := service.GetWeightTrend(st, "1y", time.Now())
	if err != nil {
		t.Fatalf("weight trend: %v", err)
	}
	if len(trend.Data) != 12 || trend.Data[0].Date != "2025-04" || trend.Data[11].Date != "2026-03" {
		t.Fatalf("unexpected monthly window: %+v", trend.Data)
	}
	if w := trend.Data[9].Weight; w == nil || *w != 71.5 {
		t.Fatalf("expected January mean 71.5, got %+v", w)
	}

	if _, err := service.GetWeightTrend(st, "90d", time.Now()); err == nil {
		t.Fatalf("expected unknown period to fail")
	}
}
