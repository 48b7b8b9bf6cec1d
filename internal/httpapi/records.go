package httpapi

import (
	"net/http"
	"strings"

	"github.com/saadjs/fitlog/internal/service"
)

func rangeQuery(r *http.Request) service.DateRange {
	q := r.URL.Query()
	return service.DateRange{From: q.Get("from"), To: q.Get("to")}
}

// requiredQuery fails with 400 naming the parameter when it is absent.
func requiredQuery(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", badRequest("query parameter %q is required", name)
	}
	return v, nil
}

func (s *Server) listMeals(w http.ResponseWriter, r *http.Request) error {
	records, err := service.ListMealRecords(s.store, rangeQuery(r))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, records)
}

func (s *Server) addMeal(w http.ResponseWriter, r *http.Request) error {
	var in service.MealRecordInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	rec, err := service.AddMealRecord(s.store, in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) mealSummary(w http.ResponseWriter, r *http.Request) error {
	date, err := requiredQuery(r, "date")
	if err != nil {
		return err
	}
	summary, err := service.MealSummaryForDate(s.store, date)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, summary)
}

func (s *Server) listWeights(w http.ResponseWriter, r *http.Request) error {
	records, err := service.ListWeightRecords(s.store, rangeQuery(r))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, records)
}

func (s *Server) addWeight(w http.ResponseWriter, r *http.Request) error {
	var in service.WeightRecordInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	rec, err := service.AddWeightRecord(s.store, in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) weightSummary(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, service.GetWeightSummary(s.store, s.now()))
}

func (s *Server) weightTrend(w http.ResponseWriter, r *http.Request) error {
	trend, err := service.GetWeightTrend(s.store, r.URL.Query().Get("period"), s.now())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, trend)
}

func (s *Server) getWorkoutSettings(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, service.WorkoutSettings(s.store))
}

func (s *Server) saveWorkoutSettings(w http.ResponseWriter, r *http.Request) error {
	var raw any
	if err := decodeJSON(r, &raw); err != nil {
		return err
	}
	plan, err := service.SaveWorkoutSettings(s.store, raw)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, plan)
}

func (s *Server) listExercises(w http.ResponseWriter, r *http.Request) error {
	records, err := service.ExerciseRecords(s.store, rangeQuery(r))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, records)
}

func (s *Server) addExercise(w http.ResponseWriter, r *http.Request) error {
	var in service.ExerciseRecordInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	rec, err := service.AddExerciseRecord(s.store, in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) workoutSummary(w http.ResponseWriter, r *http.Request) error {
	date, err := requiredQuery(r, "date")
	if err != nil {
		return err
	}
	summary, err := service.WorkoutSummaryForDate(s.store, date)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, summary)
}

func (s *Server) todayWorkout(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, service.GetTodayWorkout(s.store, s.now()))
}

func (s *Server) getCompletion(w http.ResponseWriter, r *http.Request) error {
	completion, err := service.GetWorkoutCompletion(s.store, r.URL.Query().Get("date"), s.now())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, completion)
}

func (s *Server) markComplete(w http.ResponseWriter, r *http.Request) error {
	completion, err := service.MarkWorkoutComplete(s.store, s.now())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, completion)
}

func (s *Server) unmarkComplete(w http.ResponseWriter, r *http.Request) error {
	completion, err := service.UnmarkWorkoutComplete(s.store, s.now())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, completion)
}
