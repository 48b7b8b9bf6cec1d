package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"createdAt"`
	SizeBytes int64     `json:"sizeBytes"`
}

type DoctorReport struct {
	MealTotalMismatches    int  `json:"mealTotalMismatches"`
	FoodSetTotalMismatches int  `json:"foodSetTotalMismatches"`
	DuplicateWeightSlots   int  `json:"duplicateWeightSlots"`
	InvalidDates           int  `json:"invalidDates"`
	MalformedPlanDays      int  `json:"malformedPlanDays"`
	Fixed                  bool `json:"fixed"`
}

// Clean reports whether the document needs no repairs.
func (r DoctorReport) Clean() bool {
	return r.MealTotalMismatches == 0 && r.FoodSetTotalMismatches == 0 &&
		r.DuplicateWeightSlots == 0 && r.InvalidDates == 0 && r.MalformedPlanDays == 0
}

// RunDoctor checks derived totals, weight slot uniqueness, record dates and
// the plan shape. With fix it recomputes totals, keeps the last record per
// weight slot, re-sanitizes the plan, and persists the result. Records with
// invalid dates are only counted.
func RunDoctor(st *store.Store, fix bool) (DoctorReport, error) {
	doc := st.Snapshot()
	report := DoctorReport{}

	for i, m := range doc.Meals {
		if !validDate(m.Date) {
			report.InvalidDates++
		}
		if sum := sumFoods(m.Foods); !sameCalories(sum, m.TotalCalories) {
			report.MealTotalMismatches++
			doc.Meals[i].TotalCalories = sum
		}
	}
	for i, fs := range doc.FoodSets {
		if sum := sumFoods(fs.Items); !sameCalories(sum, fs.TotalCalories) {
			report.FoodSetTotalMismatches++
			doc.FoodSets[i].TotalCalories = sum
		}
	}
	for _, e := range doc.Exercises {
		if !validDate(e.Date) {
			report.InvalidDates++
		}
	}

	slotIndex := map[string]int{}
	weights := make([]model.WeightRecord, 0, len(doc.Weights))
	for _, w := range doc.Weights {
		if !validDate(w.Date) {
			report.InvalidDates++
		}
		if idx, ok := slotIndex[w.SlotKey()]; ok {
			report.DuplicateWeightSlots++
			weights[idx] = w
			continue
		}
		slotIndex[w.SlotKey()] = len(weights)
		weights = append(weights, w)
	}
	doc.Weights = weights

	plan := SanitizePlan(doc.WorkoutSettings)
	for _, key := range model.Weekdays {
		if !reflect.DeepEqual(plan[key], doc.WorkoutSettings[key]) {
			report.MalformedPlanDays++
		}
	}
	doc.WorkoutSettings = plan

	if fix && !report.Clean() {
		if err := st.Replace(doc); err != nil {
			return report, fmt.Errorf("doctor fix: %w", err)
		}
		report.Fixed = true
	}
	return report, nil
}

func sumFoods(items []model.FoodItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Calories
	}
	return total
}

func sameCalories(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func validDate(date string) bool {
	_, err := time.Parse(model.DateLayout, date)
	return err == nil
}

// CreateBackup writes a snapshot of the live document to outPath, then a
// sibling .sha256 file holding its checksum.
func CreateBackup(st *store.Store, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := store.WriteDocument(outPath, st.Snapshot()); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	return backupInfo(outPath, checksum)
}

// RestoreBackup verifies the backup's checksum (when present), decodes it and
// atomically replaces dataPath with it. Documents written by a newer fitlog
// are refused.
func RestoreBackup(backupPath, dataPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dataPath) == "" {
		return fmt.Errorf("backup path and data path are required")
	}
	if !force {
		if _, err := os.Stat(dataPath); err == nil {
			return fmt.Errorf("target data file already exists; use --force to overwrite")
		}
	}
	raw, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		if strings.TrimSpace(string(expected)) != checksumOf(raw) {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	var doc store.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("backup is not a valid data file: %w", err)
	}
	if doc.Version > store.CurrentVersion() {
		return fmt.Errorf("backup has document version %d, newer than supported %d", doc.Version, store.CurrentVersion())
	}
	return store.WriteDocument(dataPath, doc)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		info, err := backupInfo(full, checksum)
		if err != nil {
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func fileSHA256(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file for checksum: %w", err)
	}
	return checksumOf(raw), nil
}

func checksumOf(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func backupInfo(path, checksum string) (BackupInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: path, Checksum: checksum, CreatedAt: fi.ModTime(), SizeBytes: fi.Size()}, nil
}
