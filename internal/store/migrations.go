package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/saadjs/fitlog/internal/model"
)

// LegacyFoodSetsFile is the standalone food-set file older versions kept
// beside the main document.
const LegacyFoodSetsFile = "food_sets.json"

type migrationEnv struct {
	dir    string
	logger *zap.Logger
	// afterCommit runs once the migrated document is safely on disk.
	afterCommit []func() error
}

type migration struct {
	version int
	name    string
	apply   func(doc *Document, env *migrationEnv) error
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_shape",
		apply: func(doc *Document, env *migrationEnv) error {
			ensureShape(doc)
			return nil
		},
	},
	{
		version: 2,
		name:    "merge_legacy_food_sets",
		apply:   mergeLegacyFoodSets,
	},
	{
		version: 3,
		name:    "dedupe_completion_dates",
		apply: func(doc *Document, env *migrationEnv) error {
			seen := make(map[string]struct{}, len(doc.WorkoutCompletions))
			out := make([]string, 0, len(doc.WorkoutCompletions))
			for _, d := range doc.WorkoutCompletions {
				if _, ok := seen[d]; ok {
					continue
				}
				seen[d] = struct{}{}
				out = append(out, d)
			}
			sort.Strings(out)
			doc.WorkoutCompletions = out
			return nil
		},
	},
}

// CurrentVersion is the document version after all migrations.
func CurrentVersion() int {
	return migrations[len(migrations)-1].version
}

// applyMigrations brings doc up to CurrentVersion and reports how many ran.
// With persist false the migrated document stays in memory until the first
// mutation writes it.
func applyMigrations(doc *Document, path string, logger *zap.Logger, persist bool) (int, error) {
	env := &migrationEnv{dir: filepath.Dir(path), logger: logger}
	applied := 0
	for _, m := range migrations {
		if doc.Version >= m.version {
			continue
		}
		if err := m.apply(doc, env); err != nil {
			return applied, fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		doc.Version = m.version
		applied++
		logger.Info("applied document migration", zap.Int("version", m.version), zap.String("name", m.name))
	}
	if applied == 0 || !persist {
		return applied, nil
	}
	if err := writeJSON(path, doc); err != nil {
		return applied, fmt.Errorf("persist migrated document: %w", err)
	}
	for _, fn := range env.afterCommit {
		if err := fn(); err != nil {
			logger.Warn("post-migration cleanup failed", zap.Error(err))
		}
	}
	return applied, nil
}

type legacyFoodSet struct {
	ID            any              `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Items         []model.FoodItem `json:"items"`
	TotalCalories float64          `json:"totalCalories"`
	CreatedAt     string           `json:"createdAt"`
	UpdatedAt     string           `json:"updatedAt"`
}

func mergeLegacyFoodSets(doc *Document, env *migrationEnv) error {
	path := filepath.Join(env.dir, LegacyFoodSetsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		env.logger.Warn("legacy food sets unreadable, skipping", zap.String("path", path), zap.Error(err))
		return nil
	}

	var legacy []legacyFoodSet
	if err := json.Unmarshal(data, &legacy); err != nil {
		var wrapped struct {
			FoodSets []legacyFoodSet `json:"foodSets"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			env.logger.Warn("legacy food sets are not valid JSON, skipping", zap.String("path", path), zap.Error(err))
			return nil
		}
		legacy = wrapped.FoodSets
	}

	existing := make(map[string]struct{}, len(doc.FoodSets))
	for _, fs := range doc.FoodSets {
		existing[fs.ID] = struct{}{}
	}
	for _, l := range legacy {
		id := legacyID(l.ID)
		if id == "" {
			continue
		}
		if _, ok := existing[id]; ok {
			continue
		}
		items := append([]model.FoodItem{}, l.Items...)
		total := 0.0
		for _, it := range items {
			total += it.Calories
		}
		doc.FoodSets = append(doc.FoodSets, model.FoodSet{
			ID:            id,
			Name:          l.Name,
			Description:   l.Description,
			Items:         items,
			TotalCalories: total,
			CreatedAt:     parseLegacyTime(l.CreatedAt),
			UpdatedAt:     parseLegacyTime(l.UpdatedAt),
		})
		existing[id] = struct{}{}
	}

	env.afterCommit = append(env.afterCommit, func() error {
		return os.Rename(path, path+".migrated")
	})
	return nil
}

// legacyID renders the old file's ids, which were millisecond timestamps or strings.
func legacyID(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func parseLegacyTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
