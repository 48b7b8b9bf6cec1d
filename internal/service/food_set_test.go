package service_test

import (
	"errors"
	"testing"

	"github.com/saadjs/fitlog/internal/service"
)

func TestFoodSetValidation(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	cases := []service.FoodSetInput{
		{Items: []service.FoodItemInput{{Name: "egg"}}},
		{Name: ptr("breakfast")},
		{Name: ptr("breakfast"), Items: []service.FoodItemInput{{Name: "", Calories: ptr(10.0)}}},
		{Name: ptr("breakfast"), Items: []service.FoodItemInput{{Name: "egg", Calories: ptr(-3.0)}}},
	}
	for _, in := range cases {
		_, err := service.CreateFoodSet(st, in)
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error for %+v, got %v", in, err)
		}
	}
}

func TestApplyFoodSetTwiceCreatesIndependentMeals(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	fs, err := service.CreateFoodSet(st, service.FoodSetInput{
		Name:        ptr("usual breakfast"),
		Description: ptr("weekday default"),
		Items: []service.FoodItemInput{
			{Name: "egg", Portion: "2", Calories: ptr(160.0)},
			{Name: "toast", Calories: ptr(120.0)},
		},
	})
	if err != nil {
		t.Fatalf("create set: %v", err)
	}
	if fs.TotalCalories != 280 {
		t.Fatalf("expected total 280, got %.1f", fs.TotalCalories)
	}

	for _, date := range []string{"2026-03-01", "2026-03-02"} {
		res, err := service.ApplyFoodSet(st, fs.ID, service.ApplyFoodSetInput{Date: date, MealType: "breakfast"})
		if err != nil {
			t.Fatalf("apply set: %v", err)
		}
		if res.AppliedSetID != fs.ID || res.TotalCaloriesAdded != 280 || res.AppliedTo.Date != date {
			t.Fatalf("unexpected apply result: %+v", res)
		}
		if res.Record.Memo != "weekday default" || res.Record.Foods[0].Portion != "" {
			t.Fatalf("expected memo from description and portion dropped: %+v", res.Record)
		}
	}
	meals, err := service.ListMealRecords(st, service.DateRange{})
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 2 || meals[0].ID == meals[1].ID {
		t.Fatalf("expected two independent meals, got %+v", meals)
	}

	var nf *service.NotFoundError
	if _, err := service.ApplyFoodSet(st, "missing", service.ApplyFoodSetInput{Date: "2026-03-01", MealType: "lunch"}); !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
	var verr *service.ValidationError
	if _, err := service.ApplyFoodSet(st, fs.ID, service.ApplyFoodSetInput{Date: "2026-03-01"}); !errors.As(err, &verr) {
		t.Fatalf("expected validation error without meal type, got %v", err)
	}
}

func TestUpdateFoodSetRecomputesTotal(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	fs, err := service.CreateFoodSet(st, service.FoodSetInput{
		Name:  ptr("snack"),
		Items: []service.FoodItemInput{{Name: "apple", Calories: ptr(80.0)}},
	})
	if err != nil {
		t.Fatalf("create set: %v", err)
	}
	updated, err := service.UpdateFoodSet(st, fs.ID, service.FoodSetInput{
		Items: []service.FoodItemInput{{Name: "apple", Calories: ptr(80.0)}, {Name: "yogurt", Calories: ptr(100.0)}},
	})
	if err != nil {
		t.Fatalf("update set: %v", err)
	}
	if updated.Name != "snack" || updated.TotalCalories != 180 {
		t.Fatalf("unexpected update: %+v", updated)
	}
	if err := service.DeleteFoodSet(st, fs.ID); err != nil {
		t.Fatalf("delete set: %v", err)
	}
	if len(service.ListFoodSets(st)) != 0 {
		t.Fatalf("expected no food sets after delete")
	}
}

func TestFoodMasterCRUD(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	if _, err := service.CreateFoodMasterItem(st, service.FoodMasterInput{Name: ptr("rice"), Calories: ptr(-1.0)}); err == nil {
		t.Fatalf("expected negative calories to fail")
	}
	item, err := service.CreateFoodMasterItem(st, service.FoodMasterInput{Name: ptr("rice"), Portion: ptr("150g"), Calories: ptr(234.0)})
	if err != nil {
		t.Fatalf("create food: %v", err)
	}
	item, err = service.UpdateFoodMasterItem(st, item.ID, service.FoodMasterInput{Calories: ptr(240.0)})
	if err != nil {
		t.Fatalf("update food: %v", err)
	}
	if item.Name != "rice" || item.Portion != "150g" || item.Calories != 240 {
		t.Fatalf("unexpected food after update: %+v", item)
	}
	var nf *service.NotFoundError
	if err := service.DeleteFoodMasterItem(st, "missing"); !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := service.DeleteFoodMasterItem(st, item.ID); err != nil {
		t.Fatalf("delete food: %v", err)
	}
}
