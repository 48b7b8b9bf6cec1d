package store

import (
	"sort"

	"github.com/saadjs/fitlog/internal/model"
)

// ListWeightRecords returns weights in the range, oldest first.
func (s *Store) ListWeightRecords(r DateRange) []model.WeightRecord {
	out := make([]model.WeightRecord, 0)
	s.read(func(doc *Document) {
		for _, w := range doc.Weights {
			if r.Contains(w.Date) {
				out = append(out, w)
			}
		}
	})
	return out
}

// UpsertWeightRecord replaces whatever occupies rec's (date, timeOfDay) slot.
func (s *Store) UpsertWeightRecord(rec model.WeightRecord) (model.WeightRecord, error) {
	if rec.ID == "" {
		rec.ID = s.newID()
	}
	err := s.update(func(doc *Document) error {
		kept := doc.Weights[:0]
		for _, w := range doc.Weights {
			if w.SlotKey() != rec.SlotKey() {
				kept = append(kept, w)
			}
		}
		kept = append(kept, rec)
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Date < kept[j].Date
		})
		doc.Weights = kept
		return nil
	})
	if err != nil {
		return model.WeightRecord{}, err
	}
	return rec, nil
}

// ListMealRecords returns meals in the range, newest date first.
func (s *Store) ListMealRecords(r DateRange) []model.MealRecord {
	out := make([]model.MealRecord, 0)
	s.read(func(doc *Document) {
		for _, m := range doc.Meals {
			if r.Contains(m.Date) {
				out = append(out, m)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

func (s *Store) AddMealRecord(rec model.MealRecord) (model.MealRecord, error) {
	if rec.ID == "" {
		rec.ID = s.newID()
	}
	if rec.Foods == nil {
		rec.Foods = []model.FoodItem{}
	}
	err := s.update(func(doc *Document) error {
		doc.Meals = append([]model.MealRecord{rec}, doc.Meals...)
		return nil
	})
	if err != nil {
		return model.MealRecord{}, err
	}
	return rec, nil
}

// ListExercises returns exercise records in the range, newest date first.
func (s *Store) ListExercises(r DateRange) []model.ExerciseRecord {
	out := make([]model.ExerciseRecord, 0)
	s.read(func(doc *Document) {
		for _, e := range doc.Exercises {
			if r.Contains(e.Date) {
				out = append(out, e)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

func (s *Store) AddExerciseRecord(rec model.ExerciseRecord) (model.ExerciseRecord, error) {
	if rec.ID == "" {
		rec.ID = s.newID()
	}
	err := s.update(func(doc *Document) error {
		doc.Exercises = append([]model.ExerciseRecord{rec}, doc.Exercises...)
		return nil
	})
	if err != nil {
		return model.ExerciseRecord{}, err
	}
	return rec, nil
}

func (s *Store) WorkoutSettings() model.WorkoutPlan {
	var out model.WorkoutPlan
	s.read(func(doc *Document) {
		out = make(model.WorkoutPlan, len(doc.WorkoutSettings))
		for k, v := range doc.WorkoutSettings {
			out[k] = WorkoutDayCopy(v)
		}
	})
	return out
}

// SaveWorkoutSettings replaces the whole plan; days missing from plan become empty.
func (s *Store) SaveWorkoutSettings(plan model.WorkoutPlan) (model.WorkoutPlan, error) {
	err := s.update(func(doc *Document) error {
		doc.WorkoutSettings = plan
		ensureShape(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.WorkoutSettings(), nil
}

func (s *Store) IsWorkoutCompletedOn(date string) bool {
	found := false
	s.read(func(doc *Document) {
		for _, d := range doc.WorkoutCompletions {
			if d == date {
				found = true
				return
			}
		}
	})
	return found
}

// MarkWorkoutCompleted records date once; repeated calls do not duplicate it.
func (s *Store) MarkWorkoutCompleted(date string) error {
	if s.IsWorkoutCompletedOn(date) {
		return nil
	}
	return s.update(func(doc *Document) error {
		for _, d := range doc.WorkoutCompletions {
			if d == date {
				return nil
			}
		}
		doc.WorkoutCompletions = append(doc.WorkoutCompletions, date)
		return nil
	})
}

func (s *Store) UnmarkWorkoutCompleted(date string) error {
	if !s.IsWorkoutCompletedOn(date) {
		return nil
	}
	return s.update(func(doc *Document) error {
		kept := doc.WorkoutCompletions[:0]
		for _, d := range doc.WorkoutCompletions {
			if d != date {
				kept = append(kept, d)
			}
		}
		doc.WorkoutCompletions = kept
		return nil
	})
}
