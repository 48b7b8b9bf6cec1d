package httpapi

import (
	"net/http"

	"github.com/saadjs/fitlog/internal/service"
)

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) error {
	profile, err := service.GetProfile(s.store)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, profile)
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) error {
	var in service.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	profile, err := service.SaveProfile(s.store, in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, profile)
}

func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) error {
	if err := service.ClearProfile(s.store); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) error {
	var in service.RecommendationInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	rec, err := service.Recommend(in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rec)
}

func (s *Server) todayCalories(w http.ResponseWriter, r *http.Request) error {
	var steps service.StepCounter
	if s.fitbit != nil {
		steps = s.fitbit
	}
	return writeJSON(w, http.StatusOK, service.GetTodayCalories(r.Context(), s.store, steps, s.now()))
}
