// Package store persists the tracker's state as a single JSON document.
//
// Loading fails open: a missing or unreadable file yields a fresh document.
// Saving fails loud: every mutation rewrites the whole file and returns any
// write error to the caller, leaving the in-memory state untouched.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saadjs/fitlog/internal/model"
)

// ErrNotFound is returned by update and delete operations when no record has the id.
var ErrNotFound = errors.New("record not found")

type Store struct {
	path   string
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	mu  sync.Mutex
	doc Document
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// Open loads the document at path and applies pending migrations.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	s := &Store{
		path:   path,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	doc, unreadable := s.load()
	persist := true
	if unreadable {
		persist = s.quarantine()
	}
	s.doc = doc
	if _, err := applyMigrations(&s.doc, path, s.logger, persist); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// load reports unreadable when a data file exists but could not be read or
// decoded; the returned document is then the defaults.
func (s *Store) load() (doc Document, unreadable bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return newDocument(), false
		}
		s.logger.Warn("read data file failed, starting with defaults", zap.String("path", s.path), zap.Error(err))
		return newDocument(), true
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("data file is not valid JSON, starting with defaults", zap.String("path", s.path), zap.Error(err))
		return newDocument(), true
	}
	ensureShape(&doc)
	return doc, false
}

// quarantine moves an unreadable data file aside so the defaults never
// overwrite it. It reports whether the path is now free to write.
func (s *Store) quarantine() bool {
	aside := fmt.Sprintf("%s.corrupt-%s", s.path, s.now().UTC().Format("20060102T150405Z"))
	if err := os.Rename(s.path, aside); err != nil {
		s.logger.Error("move unreadable data file aside failed, leaving it untouched until the next write",
			zap.String("path", s.path), zap.Error(err))
		return false
	}
	s.logger.Warn("moved unreadable data file aside", zap.String("path", s.path), zap.String("moved_to", aside))
	return true
}

// WriteDocument atomically replaces the data file at path with doc.
func WriteDocument(path string, doc Document) error {
	ensureShape(&doc)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := writeJSON(path, doc); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// update runs fn against a copy of the document and commits it only once the
// copy has been written to disk.
func (s *Store) update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := writeJSON(s.path, next); err != nil {
		storeWrites.WithLabelValues("error").Inc()
		return fmt.Errorf("persist data file: %w", err)
	}
	storeWrites.WithLabelValues("ok").Inc()
	s.doc = next
	return nil
}

func (s *Store) read(fn func(doc *Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.doc)
}

// Snapshot returns a copy of the whole document.
func (s *Store) Snapshot() Document {
	var out Document
	s.read(func(doc *Document) { out = doc.clone() })
	return out
}

// Replace swaps in doc wholesale and persists it.
func (s *Store) Replace(doc Document) error {
	ensureShape(&doc)
	return s.update(func(d *Document) error {
		version := d.Version
		*d = doc.clone()
		d.Version = version
		return nil
	})
}

func (s *Store) UserProfile() model.UserProfile {
	var out model.UserProfile
	s.read(func(doc *Document) { out = doc.Profile })
	return out
}

func (s *Store) SaveUserProfile(partial model.UserProfile) (model.UserProfile, error) {
	var out model.UserProfile
	err := s.update(func(doc *Document) error {
		doc.Profile = doc.Profile.Merge(partial)
		out = doc.Profile
		return nil
	})
	return out, err
}

func (s *Store) ClearUserProfile() error {
	return s.update(func(doc *Document) error {
		doc.Profile = model.UserProfile{}
		return nil
	})
}

// writeJSON writes data pretty-printed to a temp file beside path, then renames it over path.
func writeJSON(path string, data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
