// Package httpapi exposes the tracker over a JSON REST API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/saadjs/fitlog/internal/provider/fitbit"
	"github.com/saadjs/fitlog/internal/store"
)

type Options struct {
	Store *store.Store
	// Fitbit is nil when no OAuth client credentials are configured.
	Fitbit      *fitbit.Client
	Logger      *zap.Logger
	CORSOrigins []string
	Now         func() time.Time
}

type Server struct {
	store   *store.Store
	fitbit  *fitbit.Client
	logger  *zap.Logger
	now     func() time.Time
	origins []string
	states  *stateSet
}

func New(opts Options) *Server {
	s := &Server{
		store:   opts.Store,
		fitbit:  opts.Fitbit,
		logger:  opts.Logger,
		now:     opts.Now,
		origins: opts.CORSOrigins,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	s.states = newStateSet(s.now)
	return s
}

// Handler returns the full middleware chain around the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(instrument)
	s.routes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.recoverer(s.requestLogger(r)))
}

func (s *Server) routes(r *mux.Router) {
	r.Handle("/health", s.handle(s.health)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.Handle("/calories/profile", s.handle(s.getProfile)).Methods(http.MethodGet)
	api.Handle("/calories/profile", s.handle(s.putProfile)).Methods(http.MethodPut)
	api.Handle("/calories/profile", s.handle(s.deleteProfile)).Methods(http.MethodDelete)
	api.Handle("/calories/recommendation", s.handle(s.recommend)).Methods(http.MethodPost)
	api.Handle("/calories/today", s.handle(s.todayCalories)).Methods(http.MethodGet)

	api.Handle("/meals/records", s.handle(s.listMeals)).Methods(http.MethodGet)
	api.Handle("/meals/records", s.handle(s.addMeal)).Methods(http.MethodPost)
	api.Handle("/meals/summary", s.handle(s.mealSummary)).Methods(http.MethodGet)

	api.Handle("/weight/records", s.handle(s.listWeights)).Methods(http.MethodGet)
	api.Handle("/weight/records", s.handle(s.addWeight)).Methods(http.MethodPost)
	api.Handle("/weight/summary", s.handle(s.weightSummary)).Methods(http.MethodGet)
	api.Handle("/weight/trend", s.handle(s.weightTrend)).Methods(http.MethodGet)

	api.Handle("/workouts/settings", s.handle(s.getWorkoutSettings)).Methods(http.MethodGet)
	api.Handle("/workouts/settings", s.handle(s.saveWorkoutSettings)).Methods(http.MethodPost)
	api.Handle("/workouts/records", s.handle(s.listExercises)).Methods(http.MethodGet)
	api.Handle("/workouts/records", s.handle(s.addExercise)).Methods(http.MethodPost)
	api.Handle("/workouts/summary", s.handle(s.workoutSummary)).Methods(http.MethodGet)
	api.Handle("/workouts/today", s.handle(s.todayWorkout)).Methods(http.MethodGet)
	api.Handle("/workouts/complete", s.handle(s.getCompletion)).Methods(http.MethodGet)
	api.Handle("/workouts/complete", s.handle(s.markComplete)).Methods(http.MethodPost)
	api.Handle("/workouts/complete", s.handle(s.unmarkComplete)).Methods(http.MethodDelete)

	api.Handle("/workout-types", s.handle(s.listWorkoutTypes)).Methods(http.MethodGet)
	api.Handle("/workout-types", s.handle(s.createWorkoutType)).Methods(http.MethodPost)
	api.Handle("/workout-types/{id}", s.handle(s.updateWorkoutType)).Methods(http.MethodPut)
	api.Handle("/workout-types/{id}", s.handle(s.deleteWorkoutType)).Methods(http.MethodDelete)

	api.Handle("/food-sets", s.handle(s.listFoodSets)).Methods(http.MethodGet)
	api.Handle("/food-sets", s.handle(s.createFoodSet)).Methods(http.MethodPost)
	api.Handle("/food-sets/{id}", s.handle(s.updateFoodSet)).Methods(http.MethodPut)
	api.Handle("/food-sets/{id}", s.handle(s.deleteFoodSet)).Methods(http.MethodDelete)
	api.Handle("/food-sets/{id}/apply", s.handle(s.applyFoodSet)).Methods(http.MethodPost)

	api.Handle("/foods", s.handle(s.listFoods)).Methods(http.MethodGet)
	api.Handle("/foods", s.handle(s.createFood)).Methods(http.MethodPost)
	api.Handle("/foods/{id}", s.handle(s.updateFood)).Methods(http.MethodPut)
	api.Handle("/foods/{id}", s.handle(s.deleteFood)).Methods(http.MethodDelete)

	api.Handle("/fitbit/today", s.handle(s.fitbitToday)).Methods(http.MethodGet)
	api.Handle("/fitbit/status", s.handle(s.fitbitStatus)).Methods(http.MethodGet)
	api.Handle("/fitbit", s.handle(s.fitbitUnlink)).Methods(http.MethodDelete)

	r.Handle("/auth/fitbit", s.handle(s.fitbitLogin)).Methods(http.MethodGet)
	r.HandleFunc("/auth/fitbit/callback", s.fitbitCallback).Methods(http.MethodGet)

	r.NotFoundHandler = s.handle(func(w http.ResponseWriter, r *http.Request) error {
		return StatusError{Code: http.StatusNotFound, Err: errNoRoute}
	})
	// A path that exists under another method. Set on the subrouter too, or
	// mux falls back to its bodyless default there.
	methodNotAllowed := s.handle(func(w http.ResponseWriter, r *http.Request) error {
		return StatusError{Code: http.StatusMethodNotAllowed, Err: errMethodNotAllowed}
	})
	r.MethodNotAllowedHandler = methodNotAllowed
	api.MethodNotAllowedHandler = methodNotAllowed
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
