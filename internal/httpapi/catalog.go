package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saadjs/fitlog/internal/service"
)

func (s *Server) listWorkoutTypes(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, service.ListWorkoutTypes(s.store))
}

func (s *Server) createWorkoutType(w http.ResponseWriter, r *http.Request) error {
	var in service.WorkoutTypeInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	wt, err := service.CreateWorkoutType(s.store, in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, wt)
}

func (s *Server) updateWorkoutType(w http.ResponseWriter, r *http.Request) error {
	var in service.WorkoutTypeInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	wt, err := service.UpdateWorkoutType(s.store, mux.Vars(r)["id"], in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, wt)
}

func (s *Server) deleteWorkoutType(w http.ResponseWriter, r *http.Request) error {
	if err := service.DeleteWorkoutType(s.store, mux.Vars(r)["id"]); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) listFoodSets(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, service.ListFoodSets(s.store))
}

func (s *Server) createFoodSet(w http.ResponseWriter, r *http.Request) error {
	var in service.FoodSetInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	fs, err := service.CreateFoodSet(s.store, in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, fs)
}

func (s *Server) updateFoodSet(w http.ResponseWriter, r *http.Request) error {
	var in service.FoodSetInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	fs, err := service.UpdateFoodSet(s.store, mux.Vars(r)["id"], in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, fs)
}

func (s *Server) deleteFoodSet(w http.ResponseWriter, r *http.Request) error {
	if err := service.DeleteFoodSet(s.store, mux.Vars(r)["id"]); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) applyFoodSet(w http.ResponseWriter, r *http.Request) error {
	var in service.ApplyFoodSetInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	res, err := service.ApplyFoodSet(s.store, mux.Vars(r)["id"], in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, res)
}

func (s *Server) listFoods(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, service.ListFoodMaster(s.store))
}

func (s *Server) createFood(w http.ResponseWriter, r *http.Request) error {
	var in service.FoodMasterInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	item, err := service.CreateFoodMasterItem(s.store, in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, item)
}

func (s *Server) updateFood(w http.ResponseWriter, r *http.Request) error {
	var in service.FoodMasterInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	item, err := service.UpdateFoodMasterItem(s.store, mux.Vars(r)["id"], in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, item)
}

func (s *Server) deleteFood(w http.ResponseWriter, r *http.Request) error {
	if err := service.DeleteFoodMasterItem(s.store, mux.Vars(r)["id"]); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
