package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/saadjs/fitlog/internal/model"
)

// TokenStore keeps the Fitbit OAuth tokens in their own file, apart from the
// main document, and always rewrites it wholesale.
type TokenStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

func NewTokenStore(path string, logger *zap.Logger) *TokenStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenStore{path: path, logger: logger}
}

// Load returns nil when no usable tokens are on disk.
func (t *TokenStore) Load() *model.FitbitTokens {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			t.logger.Warn("read fitbit tokens failed", zap.String("path", t.path), zap.Error(err))
		}
		return nil
	}
	var tokens model.FitbitTokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		t.logger.Warn("fitbit token file is not valid JSON", zap.String("path", t.path), zap.Error(err))
		return nil
	}
	if tokens.AccessToken == "" && tokens.RefreshToken == "" {
		return nil
	}
	return &tokens
}

func (t *TokenStore) Save(tokens model.FitbitTokens) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := writeJSON(t.path, tokens); err != nil {
		return fmt.Errorf("save fitbit tokens: %w", err)
	}
	return nil
}

// Clear drops the stored tokens, returning the integration to unlinked.
func (t *TokenStore) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear fitbit tokens: %w", err)
	}
	return nil
}
