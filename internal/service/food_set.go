package service

import (
	"strings"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type FoodSetInput struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Items       []FoodItemInput `json:"items"`
}

type ApplyFoodSetInput struct {
	Date     string `json:"date"`
	MealType string `json:"mealType"`
}

type AppliedTo struct {
	Date     string `json:"date"`
	MealType string `json:"mealType"`
}

type ApplyFoodSetResult struct {
	AppliedSetID       string           `json:"appliedSetId"`
	TotalCaloriesAdded float64          `json:"totalCaloriesAdded"`
	AppliedTo          AppliedTo        `json:"appliedTo"`
	Record             model.MealRecord `json:"record"`
}

func ListFoodSets(st *store.Store) []model.FoodSet {
	return st.ListFoodSets()
}

func CreateFoodSet(st *store.Store, in FoodSetInput) (model.FoodSet, error) {
	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return model.FoodSet{}, invalidf("name is required")
	}
	items, total, err := validateFoodSetItems(in.Items)
	if err != nil {
		return model.FoodSet{}, err
	}
	description := ""
	if in.Description != nil {
		description = strings.TrimSpace(*in.Description)
	}
	return st.CreateFoodSet(model.FoodSet{
		Name:          name,
		Description:   description,
		Items:         items,
		TotalCalories: total,
	})
}

// UpdateFoodSet merges the fields present in in; replacing items recomputes the total.
func UpdateFoodSet(st *store.Store, id string, in FoodSetInput) (model.FoodSet, error) {
	patch := store.FoodSetPatch{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return model.FoodSet{}, invalidf("name must not be empty")
		}
		patch.Name = &name
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		patch.Description = &description
	}
	if in.Items != nil {
		items, total, err := validateFoodSetItems(in.Items)
		if err != nil {
			return model.FoodSet{}, err
		}
		patch.Items = items
		patch.TotalCalories = &total
	}
	fs, err := st.UpdateFoodSet(id, patch)
	if err != nil {
		return model.FoodSet{}, notFoundOr(err, "food set", id)
	}
	return fs, nil
}

func DeleteFoodSet(st *store.Store, id string) error {
	return notFoundOr(st.DeleteFoodSet(id), "food set", id)
}

func validateFoodSetItems(in []FoodItemInput) ([]model.FoodItem, float64, error) {
	if len(in) == 0 {
		return nil, 0, invalidf("at least one item is required")
	}
	return normalizeFoodItems(in)
}

// ApplyFoodSet logs the set's items as one meal. Portions are not carried over
// and the set description becomes the meal memo.
func ApplyFoodSet(st *store.Store, id string, in ApplyFoodSetInput) (ApplyFoodSetResult, error) {
	date, err := requireDate(in.Date)
	if err != nil {
		return ApplyFoodSetResult{}, err
	}
	mealType := strings.TrimSpace(in.MealType)
	if mealType == "" {
		return ApplyFoodSetResult{}, invalidf("mealType is required")
	}
	fs, ok := st.FoodSet(id)
	if !ok {
		return ApplyFoodSetResult{}, &NotFoundError{Resource: "food set", ID: id}
	}

	foods := make([]model.FoodItem, 0, len(fs.Items))
	for _, it := range fs.Items {
		foods = append(foods, model.FoodItem{Name: it.Name, Calories: it.Calories})
	}
	record, err := st.AddMealRecord(model.MealRecord{
		Date:          date,
		MealType:      mealType,
		Memo:          fs.Description,
		Foods:         foods,
		TotalCalories: fs.TotalCalories,
	})
	if err != nil {
		return ApplyFoodSetResult{}, err
	}
	return ApplyFoodSetResult{
		AppliedSetID:       fs.ID,
		TotalCaloriesAdded: fs.TotalCalories,
		AppliedTo:          AppliedTo{Date: date, MealType: mealType},
		Record:             record,
	}, nil
}
