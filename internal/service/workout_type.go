package service

import (
	"encoding/json"
	"strings"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

// OptionalNumber tracks whether a JSON field was present and whether it was
// null. Anything other than a number or null fails to decode.
type OptionalNumber struct {
	Set   bool
	Value *float64
}

func (o *OptionalNumber) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = floatPtr(v)
	return nil
}

type WorkoutTypeInput struct {
	Name             *string        `json:"name"`
	ExpectedCalories OptionalNumber `json:"expectedCalories"`
}

func ListWorkoutTypes(st *store.Store) []model.WorkoutType {
	return st.ListWorkoutTypes()
}

func CreateWorkoutType(st *store.Store, in WorkoutTypeInput) (model.WorkoutType, error) {
	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return model.WorkoutType{}, invalidf("name is required")
	}
	return st.CreateWorkoutType(model.WorkoutType{Name: name, ExpectedCalories: in.ExpectedCalories.Value})
}

func UpdateWorkoutType(st *store.Store, id string, in WorkoutTypeInput) (model.WorkoutType, error) {
	patch := store.WorkoutTypePatch{
		SetExpectedCalories: in.ExpectedCalories.Set,
		ExpectedCalories:    in.ExpectedCalories.Value,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return model.WorkoutType{}, invalidf("name must not be empty")
		}
		patch.Name = &name
	}
	wt, err := st.UpdateWorkoutType(id, patch)
	if err != nil {
		return model.WorkoutType{}, notFoundOr(err, "workout type", id)
	}
	return wt, nil
}

// DeleteWorkoutType never checks for exercise records that still reference id.
func DeleteWorkoutType(st *store.Store, id string) error {
	return notFoundOr(st.DeleteWorkoutType(id), "workout type", id)
}
