package service

import (
	"fmt"
	"strings"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type FoodItemInput struct {
	Name     string   `json:"name"`
	Portion  string   `json:"portion"`
	Calories *float64 `json:"calories"`
}

type MealRecordInput struct {
	Date     string          `json:"date"`
	MealType string          `json:"mealType"`
	Memo     string          `json:"memo"`
	Foods    []FoodItemInput `json:"foods"`
}

type MealSummary struct {
	Date          string             `json:"date"`
	TotalCalories float64            `json:"totalCalories"`
	Count         int                `json:"count"`
	Records       []model.MealRecord `json:"records"`
}

func AddMealRecord(st *store.Store, in MealRecordInput) (model.MealRecord, error) {
	date, err := requireDate(in.Date)
	if err != nil {
		return model.MealRecord{}, err
	}
	mealType := strings.TrimSpace(in.MealType)
	if mealType == "" {
		return model.MealRecord{}, invalidf("mealType is required")
	}
	foods, total, err := normalizeFoodItems(in.Foods)
	if err != nil {
		return model.MealRecord{}, err
	}
	return st.AddMealRecord(model.MealRecord{
		Date:          date,
		MealType:      mealType,
		Memo:          strings.TrimSpace(in.Memo),
		Foods:         foods,
		TotalCalories: total,
	})
}

// normalizeFoodItems requires at least one named item and sums calories over
// every item, named or not.
func normalizeFoodItems(in []FoodItemInput) ([]model.FoodItem, float64, error) {
	out := make([]model.FoodItem, 0, len(in))
	named := 0
	total := 0.0
	for i, f := range in {
		calories := 0.0
		if f.Calories != nil {
			calories = *f.Calories
		}
		if err := validateCalories(fmt.Sprintf("foods[%d].calories", i), calories); err != nil {
			return nil, 0, err
		}
		name := strings.TrimSpace(f.Name)
		if name != "" {
			named++
		}
		total += calories
		out = append(out, model.FoodItem{Name: name, Portion: strings.TrimSpace(f.Portion), Calories: calories})
	}
	if named == 0 {
		return nil, 0, invalidf("at least one food with a name is required")
	}
	return out, total, nil
}

func ListMealRecords(st *store.Store, r DateRange) ([]model.MealRecord, error) {
	r, err := normalizeRange(r)
	if err != nil {
		return nil, err
	}
	return st.ListMealRecords(r), nil
}

func MealSummaryForDate(st *store.Store, rawDate string) (MealSummary, error) {
	date, err := requireDate(rawDate)
	if err != nil {
		return MealSummary{}, err
	}
	records := st.ListMealRecords(DateRange{From: date, To: date})
	summary := MealSummary{Date: date, Count: len(records), Records: records}
	for _, r := range records {
		summary.TotalCalories += r.TotalCalories
	}
	return summary, nil
}
