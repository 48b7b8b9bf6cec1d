package store

import (
	"github.com/saadjs/fitlog/internal/model"
)

// Document is the whole persisted state of the tracker.
type Document struct {
	Version            int                    `json:"version"`
	Profile            model.UserProfile      `json:"profile"`
	Weights            []model.WeightRecord   `json:"weights"`
	Meals              []model.MealRecord     `json:"meals"`
	Exercises          []model.ExerciseRecord `json:"exercises"`
	WorkoutSettings    model.WorkoutPlan      `json:"workoutSettings"`
	WorkoutTypes       []model.WorkoutType    `json:"workoutTypes"`
	FoodSets           []model.FoodSet        `json:"foodSets"`
	FoodMaster         []model.FoodMasterItem `json:"foodMaster"`
	WorkoutCompletions []string               `json:"workoutCompletions"`
}

// DefaultProfile is the profile a fresh document starts with.
func DefaultProfile() model.UserProfile {
	str := func(v string) *string { return &v }
	num := func(v float64) *float64 { return &v }
	return model.UserProfile{
		ID:                   "me",
		Nickname:             str(""),
		Email:                str(""),
		HeightCm:             num(170),
		Weight:               num(65),
		Age:                  num(30),
		Sex:                  str("male"),
		ActivityLevel:        str("moderate"),
		Goal:                 str("maintain"),
		TargetWeight:         num(60),
		TargetIntakeCalories: num(2000),
		TargetBurnCalories:   num(300),
		Unit:                 str("kg"),
		Theme:                str("light"),
	}
}

func newDocument() Document {
	doc := Document{Profile: DefaultProfile()}
	ensureShape(&doc)
	return doc
}

// ensureShape guarantees non-nil collections and a seven-day plan.
func ensureShape(doc *Document) {
	if doc.Weights == nil {
		doc.Weights = []model.WeightRecord{}
	}
	if doc.Meals == nil {
		doc.Meals = []model.MealRecord{}
	}
	if doc.Exercises == nil {
		doc.Exercises = []model.ExerciseRecord{}
	}
	if doc.WorkoutTypes == nil {
		doc.WorkoutTypes = []model.WorkoutType{}
	}
	if doc.FoodSets == nil {
		doc.FoodSets = []model.FoodSet{}
	}
	if doc.FoodMaster == nil {
		doc.FoodMaster = []model.FoodMasterItem{}
	}
	if doc.WorkoutCompletions == nil {
		doc.WorkoutCompletions = []string{}
	}
	plan := model.NewWorkoutPlan()
	for _, key := range model.Weekdays {
		if day, ok := doc.WorkoutSettings[key]; ok && day.Menus != nil {
			plan[key] = day
		}
	}
	doc.WorkoutSettings = plan
}

// clone copies every collection so a failed write can leave the original untouched.
// Records are never mutated in place, so element copies are enough.
func (d Document) clone() Document {
	out := d
	out.Weights = append([]model.WeightRecord(nil), d.Weights...)
	out.Meals = append([]model.MealRecord(nil), d.Meals...)
	out.Exercises = append([]model.ExerciseRecord(nil), d.Exercises...)
	out.WorkoutTypes = append([]model.WorkoutType(nil), d.WorkoutTypes...)
	out.FoodSets = append([]model.FoodSet(nil), d.FoodSets...)
	out.FoodMaster = append([]model.FoodMasterItem(nil), d.FoodMaster...)
	out.WorkoutCompletions = append([]string(nil), d.WorkoutCompletions...)
	out.WorkoutSettings = make(model.WorkoutPlan, len(d.WorkoutSettings))
	for k, v := range d.WorkoutSettings {
		out.WorkoutSettings[k] = WorkoutDayCopy(v)
	}
	ensureShape(&out)
	return out
}

// WorkoutDayCopy returns a day whose menu slice is not shared with day.
func WorkoutDayCopy(day model.WorkoutDay) model.WorkoutDay {
	return model.WorkoutDay{Menus: append([]model.WorkoutMenu{}, day.Menus...)}
}

// DateRange filters records by inclusive YYYY-MM-DD bounds. Empty bounds are open.
type DateRange struct {
	From string
	To   string
}

func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}
