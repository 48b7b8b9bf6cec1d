package service

import (
	"math"
	"strings"
	"time"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

// DateRange is an inclusive YYYY-MM-DD filter; either bound may be empty.
type DateRange = store.DateRange

// NormalizeDate parses a calendar date (YYYY-MM-DD or RFC 3339) and returns it as YYYY-MM-DD.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if t, err := time.Parse(model.DateLayout, raw); err == nil {
		return t.Format(model.DateLayout), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format(model.DateLayout), true
	}
	return "", false
}

func requireDate(raw string) (string, error) {
	date, ok := NormalizeDate(raw)
	if !ok {
		return "", invalidf("date %q is not a valid calendar date (expected YYYY-MM-DD)", raw)
	}
	return date, nil
}

func normalizeRange(r DateRange) (DateRange, error) {
	out := DateRange{}
	if strings.TrimSpace(r.From) != "" {
		from, ok := NormalizeDate(r.From)
		if !ok {
			return out, invalidf("from %q is not a valid date", r.From)
		}
		out.From = from
	}
	if strings.TrimSpace(r.To) != "" {
		to, ok := NormalizeDate(r.To)
		if !ok {
			return out, invalidf("to %q is not a valid date", r.To)
		}
		out.To = to
	}
	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateCalories(name string, value float64) error {
	if !isFinite(value) || value < 0 {
		return invalidf("%s must be a finite number >= 0", name)
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func floatPtr(v float64) *float64 {
	return &v
}

func today(now time.Time) string {
	return now.Format(model.DateLayout)
}
