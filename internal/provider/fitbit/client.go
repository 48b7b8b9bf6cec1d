// Package fitbit links a Fitbit account over OAuth2 and reads daily activity.
package fitbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/fitbit"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

const (
	defaultBaseURL = "https://api.fitbit.com"
	defaultTimeout = 10 * time.Second
)

var Scopes = []string{"activity", "heartrate", "profile"}

const (
	msgNotConnected = "Fitbit is not connected"
	msgRelink       = "Fitbit authorization expired, please link your account again"
)

// AuthError means the account is not linked or its tokens can no longer be refreshed.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Status() int { return http.StatusUnauthorized }

// IsAuthError reports whether err is an *AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Timeout      time.Duration
	// BaseURL and Endpoint default to the public Fitbit API.
	BaseURL  string
	Endpoint oauth2.Endpoint
}

type Summary struct {
	Steps            int  `json:"steps"`
	CaloriesOut      int  `json:"caloriesOut"`
	ActiveMinutes    int  `json:"activeMinutes"`
	RestingHeartRate *int `json:"restingHeartRate"`
}

type Today struct {
	Summary  Summary `json:"summary"`
	LastSync string  `json:"lastSync"`
}

type LinkStatus struct {
	State    LinkState `json:"state"`
	UserID   string    `json:"userId,omitempty"`
	LastSync string    `json:"lastSync,omitempty"`
}

type Client struct {
	oauth      *oauth2.Config
	tokens     *store.TokenStore
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time

	// refreshMu keeps concurrent requests from spending the same single-use refresh token.
	refreshMu sync.Mutex
}

func NewClient(cfg Config, tokens *store.TokenStore, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	endpoint := cfg.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = fitbit.Endpoint
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       Scopes,
			Endpoint:     endpoint,
		},
		tokens:     tokens,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}

// SetClock replaces the client's time source.
func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// oauthContext makes the oauth2 package use the bounded HTTP client.
func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// Exchange trades an authorization code for tokens and stores them.
func (c *Client) Exchange(ctx context.Context, code string) (model.FitbitTokens, error) {
	tok, err := c.oauth.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return model.FitbitTokens{}, fmt.Errorf("exchange fitbit authorization code: %w", err)
	}
	tokens := model.FitbitTokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry.UnixMilli(),
	}
	if uid, ok := tok.Extra("user_id").(string); ok {
		tokens.UserID = uid
	}
	if err := c.tokens.Save(tokens); err != nil {
		return model.FitbitTokens{}, err
	}
	c.logger.Info("fitbit account linked", zap.String("user_id", tokens.UserID))
	return tokens, nil
}

func (c *Client) Status() LinkStatus {
	tokens := c.tokens.Load()
	status := LinkStatus{State: StateOf(tokens, c.now())}
	if tokens != nil {
		status.UserID = tokens.UserID
		status.LastSync = tokens.LastSync
	}
	return status
}

// Unlink forgets the stored tokens.
func (c *Client) Unlink() error {
	return c.tokens.Clear()
}

// Refresh spends the stored refresh token. On failure the tokens are cleared
// and an *AuthError is returned.
func (c *Client) Refresh(ctx context.Context) (model.FitbitTokens, error) {
	current := c.tokens.Load()
	if current == nil {
		return model.FitbitTokens{}, &AuthError{Message: msgNotConnected}
	}
	return c.refresh(ctx, *current)
}

func (c *Client) refresh(ctx context.Context, stale model.FitbitTokens) (model.FitbitTokens, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another request may have refreshed while this one waited.
	if latest := c.tokens.Load(); latest != nil && latest.AccessToken != stale.AccessToken && StateOf(latest, c.now()) == Linked {
		return *latest, nil
	}
	if stale.RefreshToken == "" {
		c.clear()
		return model.FitbitTokens{}, &AuthError{Message: msgRelink}
	}

	expired := &oauth2.Token{RefreshToken: stale.RefreshToken, Expiry: time.Unix(1, 0)}
	tok, err := c.oauth.TokenSource(c.oauthContext(ctx), expired).Token()
	if err != nil {
		c.logger.Warn("fitbit token refresh failed, clearing tokens", zap.Error(err))
		c.clear()
		return model.FitbitTokens{}, &AuthError{Message: msgRelink}
	}

	next := stale
	next.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		next.RefreshToken = tok.RefreshToken
	}
	next.ExpiresAt = tok.Expiry.UnixMilli()
	if uid, ok := tok.Extra("user_id").(string); ok && uid != "" {
		next.UserID = uid
	}
	if err := c.tokens.Save(next); err != nil {
		return model.FitbitTokens{}, err
	}
	return next, nil
}

func (c *Client) clear() {
	if err := c.tokens.Clear(); err != nil {
		c.logger.Error("clear fitbit tokens failed", zap.Error(err))
	}
}

// TodaySummary fetches the activity summary for date. A stale token is
// refreshed first; an upstream 401 triggers exactly one refresh and retry.
func (c *Client) TodaySummary(ctx context.Context, date string) (Today, error) {
	tokens := c.tokens.Load()
	switch StateOf(tokens, c.now()) {
	case Unlinked:
		return Today{}, &AuthError{Message: msgNotConnected}
	case Refreshing:
		refreshed, err := c.refresh(ctx, *tokens)
		if err != nil {
			return Today{}, err
		}
		tokens = &refreshed
	}

	summary, status, err := c.fetchSummary(ctx, tokens.AccessToken, date)
	if status == http.StatusUnauthorized {
		refreshed, rerr := c.refresh(ctx, *tokens)
		if rerr != nil {
			return Today{}, rerr
		}
		tokens = &refreshed
		summary, status, err = c.fetchSummary(ctx, tokens.AccessToken, date)
		if status == http.StatusUnauthorized {
			c.clear()
			return Today{}, &AuthError{Message: msgRelink}
		}
	}
	if err != nil {
		return Today{}, err
	}

	lastSync := c.now().UTC().Format(time.RFC3339)
	c.recordSync(tokens.AccessToken, lastSync)
	return Today{Summary: summary, LastSync: lastSync}, nil
}

// recordSync stamps lastSync on the stored tokens, but only while they still
// hold accessToken. A pair saved by a concurrent refresh is left alone.
func (c *Client) recordSync(accessToken, lastSync string) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	latest := c.tokens.Load()
	if latest == nil || latest.AccessToken != accessToken {
		return
	}
	latest.LastSync = lastSync
	if err := c.tokens.Save(*latest); err != nil {
		c.logger.Warn("record fitbit last sync failed", zap.Error(err))
	}
}

// StepsOn returns the day's step count.
func (c *Client) StepsOn(ctx context.Context, date string) (int, error) {
	today, err := c.TodaySummary(ctx, date)
	if err != nil {
		return 0, err
	}
	return today.Summary.Steps, nil
}

type activityResponse struct {
	Summary struct {
		Steps               int  `json:"steps"`
		CaloriesOut         int  `json:"caloriesOut"`
		FairlyActiveMinutes int  `json:"fairlyActiveMinutes"`
		VeryActiveMinutes   int  `json:"veryActiveMinutes"`
		RestingHeartRate    *int `json:"restingHeartRate"`
	} `json:"summary"`
}

func (c *Client) fetchSummary(ctx context.Context, accessToken, date string) (Summary, int, error) {
	url := fmt.Sprintf("%s/1/user/-/activities/date/%s.json", c.baseURL, date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Summary{}, 0, fmt.Errorf("create fitbit request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Summary{}, 0, fmt.Errorf("execute fitbit request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Summary{}, resp.StatusCode, fmt.Errorf("read fitbit response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Summary{}, resp.StatusCode, fmt.Errorf("fitbit request failed with status %d", resp.StatusCode)
	}

	var parsed activityResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Summary{}, resp.StatusCode, fmt.Errorf("decode fitbit response: %w", err)
	}
	return Summary{
		Steps:            parsed.Summary.Steps,
		CaloriesOut:      parsed.Summary.CaloriesOut,
		ActiveMinutes:    parsed.Summary.FairlyActiveMinutes + parsed.Summary.VeryActiveMinutes,
		RestingHeartRate: parsed.Summary.RestingHeartRate,
	}, resp.StatusCode, nil
}
