package httpapi

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/provider/fitbit"
)

//go:embed templates/*.html
var templateFS embed.FS

var callbackTemplate = template.Must(template.ParseFS(templateFS, "templates/callback.html"))

const stateTTL = 10 * time.Minute

var errFitbitNotConfigured = errors.New("fitbit client credentials are not configured")

// stateSet holds the OAuth state values handed out by /auth/fitbit.
type stateSet struct {
	mu     sync.Mutex
	now    func() time.Time
	issued map[string]time.Time
}

func newStateSet(now func() time.Time) *stateSet {
	return &stateSet{now: now, issued: map[string]time.Time{}}
}

func (s *stateSet) issue() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, exp := range s.issued {
		if now.After(exp) {
			delete(s.issued, k)
		}
	}
	state := uuid.NewString()
	s.issued[state] = now.Add(stateTTL)
	return state
}

// consume reports whether state was issued and unexpired, and forgets it.
func (s *stateSet) consume(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.issued[state]
	delete(s.issued, state)
	return ok && !s.now().After(exp)
}

func (s *Server) fitbitLogin(w http.ResponseWriter, r *http.Request) error {
	if s.fitbit == nil {
		return StatusError{Code: http.StatusInternalServerError, Err: errFitbitNotConfigured}
	}
	http.Redirect(w, r, s.fitbit.AuthCodeURL(s.states.issue()), http.StatusFound)
	return nil
}

type callbackPage struct {
	OK      bool
	Message string
}

func (s *Server) renderCallback(w http.ResponseWriter, status int, page callbackPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := callbackTemplate.Execute(w, page); err != nil {
		s.logger.Error("render fitbit callback page", zap.Error(err))
	}
}

func (s *Server) fitbitCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if s.fitbit == nil {
		s.renderCallback(w, http.StatusInternalServerError, callbackPage{Message: errFitbitNotConfigured.Error()})
		return
	}
	if msg := q.Get("error"); msg != "" {
		if desc := q.Get("error_description"); desc != "" {
			msg += ": " + desc
		}
		s.renderCallback(w, http.StatusBadRequest, callbackPage{Message: msg})
		return
	}
	if !s.states.consume(q.Get("state")) {
		s.renderCallback(w, http.StatusBadRequest, callbackPage{Message: "The authorization request expired or was not started here. Please try again."})
		return
	}
	code := q.Get("code")
	if code == "" {
		s.renderCallback(w, http.StatusBadRequest, callbackPage{Message: "Missing authorization code."})
		return
	}
	if _, err := s.fitbit.Exchange(r.Context(), code); err != nil {
		s.logger.Error("fitbit code exchange failed", zap.Error(err))
		s.renderCallback(w, http.StatusBadGateway, callbackPage{Message: "Fitbit rejected the authorization code. Please try again."})
		return
	}
	s.renderCallback(w, http.StatusOK, callbackPage{OK: true})
}

type fitbitTodayBody struct {
	Connected bool            `json:"connected"`
	Summary   *fitbit.Summary `json:"summary,omitempty"`
	LastSync  string          `json:"lastSync,omitempty"`
	Message   string          `json:"message,omitempty"`
}

func (s *Server) fitbitToday(w http.ResponseWriter, r *http.Request) error {
	if s.fitbit == nil {
		return writeJSON(w, http.StatusUnauthorized, fitbitTodayBody{Message: errFitbitNotConfigured.Error()})
	}
	today, err := s.fitbit.TodaySummary(r.Context(), s.now().Format(model.DateLayout))
	if err != nil {
		if fitbit.IsAuthError(err) {
			return writeJSON(w, http.StatusUnauthorized, fitbitTodayBody{Message: err.Error()})
		}
		s.logger.Warn("fitbit summary failed", zap.Error(err))
		return writeJSON(w, http.StatusBadGateway, fitbitTodayBody{Connected: true, Message: "Fitbit request failed"})
	}
	return writeJSON(w, http.StatusOK, fitbitTodayBody{Connected: true, Summary: &today.Summary, LastSync: today.LastSync})
}

func (s *Server) fitbitStatus(w http.ResponseWriter, r *http.Request) error {
	if s.fitbit == nil {
		return writeJSON(w, http.StatusOK, map[string]any{"configured": false, "state": fitbit.Unlinked})
	}
	status := s.fitbit.Status()
	return writeJSON(w, http.StatusOK, map[string]any{
		"configured": true,
		"state":      status.State,
		"userId":     status.UserID,
		"lastSync":   status.LastSync,
	})
}

func (s *Server) fitbitUnlink(w http.ResponseWriter, r *http.Request) error {
	if s.fitbit == nil {
		return StatusError{Code: http.StatusInternalServerError, Err: errFitbitNotConfigured}
	}
	if err := s.fitbit.Unlink(); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
