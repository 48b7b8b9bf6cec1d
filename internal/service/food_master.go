package service

import (
	"strings"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type FoodMasterInput struct {
	Name     *string  `json:"name"`
	Portion  *string  `json:"portion"`
	Calories *float64 `json:"calories"`
}

func ListFoodMaster(st *store.Store) []model.FoodMasterItem {
	return st.ListFoodMaster()
}

func CreateFoodMasterItem(st *store.Store, in FoodMasterInput) (model.FoodMasterItem, error) {
	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return model.FoodMasterItem{}, invalidf("name is required")
	}
	calories := 0.0
	if in.Calories != nil {
		calories = *in.Calories
	}
	if err := validateCalories("calories", calories); err != nil {
		return model.FoodMasterItem{}, err
	}
	portion := ""
	if in.Portion != nil {
		portion = strings.TrimSpace(*in.Portion)
	}
	return st.CreateFoodMasterItem(model.FoodMasterItem{Name: name, Portion: portion, Calories: calories})
}

func UpdateFoodMasterItem(st *store.Store, id string, in FoodMasterInput) (model.FoodMasterItem, error) {
	patch := store.FoodMasterPatch{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return model.FoodMasterItem{}, invalidf("name must not be empty")
		}
		patch.Name = &name
	}
	if in.Portion != nil {
		portion := strings.TrimSpace(*in.Portion)
		patch.Portion = &portion
	}
	if in.Calories != nil {
		if err := validateCalories("calories", *in.Calories); err != nil {
			return model.FoodMasterItem{}, err
		}
		patch.Calories = in.Calories
	}
	item, err := st.UpdateFoodMasterItem(id, patch)
	if err != nil {
		return model.FoodMasterItem{}, notFoundOr(err, "food", id)
	}
	return item, nil
}

func DeleteFoodMasterItem(st *store.Store, id string) error {
	return notFoundOr(st.DeleteFoodMasterItem(id), "food", id)
}
