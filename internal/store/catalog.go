package store

import (
	"github.com/saadjs/fitlog/internal/model"
)

// WorkoutTypePatch holds the fields an update merges over an existing type.
type WorkoutTypePatch struct {
	Name *string
	// SetExpectedCalories distinguishes an explicit null from an absent field.
	SetExpectedCalories bool
	ExpectedCalories    *float64
}

func (s *Store) ListWorkoutTypes() []model.WorkoutType {
	var out []model.WorkoutType
	s.read(func(doc *Document) {
		out = append([]model.WorkoutType{}, doc.WorkoutTypes...)
	})
	return out
}

func (s *Store) CreateWorkoutType(wt model.WorkoutType) (model.WorkoutType, error) {
	now := s.now()
	wt.ID = s.newID()
	wt.CreatedAt = now
	wt.UpdatedAt = now
	err := s.update(func(doc *Document) error {
		doc.WorkoutTypes = append(doc.WorkoutTypes, wt)
		return nil
	})
	if err != nil {
		return model.WorkoutType{}, err
	}
	return wt, nil
}

func (s *Store) UpdateWorkoutType(id string, patch WorkoutTypePatch) (model.WorkoutType, error) {
	var out model.WorkoutType
	err := s.update(func(doc *Document) error {
		for i, wt := range doc.WorkoutTypes {
			if wt.ID != id {
				continue
			}
			if patch.Name != nil {
				wt.Name = *patch.Name
			}
			if patch.SetExpectedCalories {
				wt.ExpectedCalories = patch.ExpectedCalories
			}
			wt.UpdatedAt = s.now()
			doc.WorkoutTypes[i] = wt
			out = wt
			return nil
		}
		return ErrNotFound
	})
	return out, err
}

func (s *Store) DeleteWorkoutType(id string) error {
	return s.update(func(doc *Document) error {
		for i, wt := range doc.WorkoutTypes {
			if wt.ID == id {
				doc.WorkoutTypes = append(doc.WorkoutTypes[:i], doc.WorkoutTypes[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// FoodSetPatch holds the fields an update merges over an existing set.
// A nil Items keeps the current items.
type FoodSetPatch struct {
	Name          *string
	Description   *string
	Items         []model.FoodItem
	TotalCalories *float64
}

func (s *Store) ListFoodSets() []model.FoodSet {
	var out []model.FoodSet
	s.read(func(doc *Document) {
		out = append([]model.FoodSet{}, doc.FoodSets...)
	})
	return out
}

func (s *Store) FoodSet(id string) (model.FoodSet, bool) {
	var (
		out   model.FoodSet
		found bool
	)
	s.read(func(doc *Document) {
		for _, fs := range doc.FoodSets {
			if fs.ID == id {
				out, found = fs, true
				return
			}
		}
	})
	return out, found
}

func (s *Store) CreateFoodSet(fs model.FoodSet) (model.FoodSet, error) {
	now := s.now()
	fs.ID = s.newID()
	fs.CreatedAt = now
	fs.UpdatedAt = now
	err := s.update(func(doc *Document) error {
		doc.FoodSets = append(doc.FoodSets, fs)
		return nil
	})
	if err != nil {
		return model.FoodSet{}, err
	}
	return fs, nil
}

func (s *Store) UpdateFoodSet(id string, patch FoodSetPatch) (model.FoodSet, error) {
	var out model.FoodSet
	err := s.update(func(doc *Document) error {
		for i, fs := range doc.FoodSets {
			if fs.ID != id {
				continue
			}
			if patch.Name != nil {
				fs.Name = *patch.Name
			}
			if patch.Description != nil {
				fs.Description = *patch.Description
			}
			if patch.Items != nil {
				fs.Items = append([]model.FoodItem{}, patch.Items...)
			}
			if patch.TotalCalories != nil {
				fs.TotalCalories = *patch.TotalCalories
			}
			fs.UpdatedAt = s.now()
			doc.FoodSets[i] = fs
			out = fs
			return nil
		}
		return ErrNotFound
	})
	return out, err
}

func (s *Store) DeleteFoodSet(id string) error {
	return s.update(func(doc *Document) error {
		for i, fs := range doc.FoodSets {
			if fs.ID == id {
				doc.FoodSets = append(doc.FoodSets[:i], doc.FoodSets[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// FoodMasterPatch holds the fields an update merges over a catalogue item.
type FoodMasterPatch struct {
	Name     *string
	Portion  *string
	Calories *float64
}

func (s *Store) ListFoodMaster() []model.FoodMasterItem {
	var out []model.FoodMasterItem
	s.read(func(doc *Document) {
		out = append([]model.FoodMasterItem{}, doc.FoodMaster...)
	})
	return out
}

func (s *Store) CreateFoodMasterItem(item model.FoodMasterItem) (model.FoodMasterItem, error) {
	now := s.now()
	item.ID = s.newID()
	item.CreatedAt = now
	item.UpdatedAt = now
	err := s.update(func(doc *Document) error {
		doc.FoodMaster = append(doc.FoodMaster, item)
		return nil
	})
	if err != nil {
		return model.FoodMasterItem{}, err
	}
	return item, nil
}

func (s *Store) UpdateFoodMasterItem(id string, patch FoodMasterPatch) (model.FoodMasterItem, error) {
	var out model.FoodMasterItem
	err := s.update(func(doc *Document) error {
		for i, item := range doc.FoodMaster {
			if item.ID != id {
				continue
			}
			if patch.Name != nil {
				item.Name = *patch.Name
			}
			if patch.Portion != nil {
				item.Portion = *patch.Portion
			}
			if patch.Calories != nil {
				item.Calories = *patch.Calories
			}
			item.UpdatedAt = s.now()
			doc.FoodMaster[i] = item
			out = item
			return nil
		}
		return ErrNotFound
	})
	return out, err
}

func (s *Store) DeleteFoodMasterItem(id string) error {
	return s.update(func(doc *Document) error {
		for i, item := range doc.FoodMaster {
			if item.ID == id {
				doc.FoodMaster = append(doc.FoodMaster[:i], doc.FoodMaster[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
