package httpapi_test

import (
	"net/http"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/fitlog/internal/provider/fitbit"
	"github.com/saadjs/fitlog/internal/store"
)

func newFitbitClient(t *testing.T) *fitbit.Client {
	t.Helper()
	tokens := store.NewTokenStore(filepath.Join(t.TempDir(), "fitbit_tokens.json"), nil)
	return fitbit.NewClient(fitbit.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:3001/auth/fitbit/callback",
	}, tokens, nil)
}

func TestFitbitNotConfigured(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodGet, "/auth/fitbit", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = ts.do(http.MethodGet, "/api/fitbit/today", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, false, body["connected"])
	assert.NotEmpty(t, body["message"])
}

func TestFitbitLoginRedirectsWithState(t *testing.T) {
	ts := newTestServer(t, newFitbitClient(t))

	rec := ts.do(http.MethodGet, "/auth/fitbit", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "www.fitbit.com", loc.Host)
	assert.NotEmpty(t, loc.Query().Get("state"))
}

func TestFitbitCallbackErrors(t *testing.T) {
	ts := newTestServer(t, newFitbitClient(t))

	rec := ts.do(http.MethodGet, "/auth/fitbit/callback?error=access_denied", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "access_denied")

	rec = ts.do(http.MethodGet, "/auth/fitbit/callback?code=abc&state=forged", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFitbitTodayUnlinked(t *testing.T) {
	ts := newTestServer(t, newFitbitClient(t))

	rec := ts.do(http.MethodGet, "/api/fitbit/today", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, decode[map[string]any](t, rec)["connected"])

	rec = ts.do(http.MethodGet, "/api/fitbit/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unlinked", decode[map[string]any](t, rec)["state"])

	rec = ts.do(http.MethodGet, "/api/calories/today", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, false, body["fitbitConnected"])
	assert.Equal(t, "Fitbit is not connected", body["message"])
}
