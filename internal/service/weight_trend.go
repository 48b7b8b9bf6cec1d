package service

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

const (
	Period7Days  = "7d"
	Period30Days = "30d"
	Period1Year  = "1y"
)

// TrendPoint is one bucket of the trend series. When HasCalories is false the
// intake and burned fields are omitted from the JSON entirely.
type TrendPoint struct {
	Date        string
	Weight      *float64
	Intake      *float64
	Burned      *float64
	HasCalories bool
}

func (p TrendPoint) MarshalJSON() ([]byte, error) {
	if !p.HasCalories {
		return json.Marshal(struct {
			Date   string   `json:"date"`
			Weight *float64 `json:"weight"`
		}{p.Date, p.Weight})
	}
	return json.Marshal(struct {
		Date   string   `json:"date"`
		Weight *float64 `json:"weight"`
		Intake *float64 `json:"intake"`
		Burned *float64 `json:"burned"`
	}{p.Date, p.Weight, p.Intake, p.Burned})
}

type WeightStats struct {
	Latest *float64 `json:"latest"`
	Diff   *float64 `json:"diff"`
}

type CalorieStats struct {
	AvgIntake *float64 `json:"avgIntake"`
	AvgBurned *float64 `json:"avgBurned"`
	Diff      *float64 `json:"diff"`
}

type WeightTrend struct {
	Period       string       `json:"period"`
	Data         []TrendPoint `json:"data"`
	WeightStats  WeightStats  `json:"weightStats"`
	CalorieStats CalorieStats `json:"calorieStats"`
}

type trendBucket struct {
	weightSum   float64
	weightCount int
	intake      *float64
	burned      *float64
}

// GetWeightTrend merges weights, meal intake and exercise burn into daily (7d,
// 30d) or monthly (1y) buckets over a window ending at the most recent record.
func GetWeightTrend(st *store.Store, period string, now time.Time) (WeightTrend, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		period = Period30Days
	}
	var (
		rows    int
		monthly bool
	)
	switch period {
	case Period7Days:
		rows = 7
	case Period30Days:
		rows = 30
	case Period1Year:
		rows, monthly = 12, true
	default:
		return WeightTrend{}, invalidf("period must be one of %s, %s, %s", Period7Days, Period30Days, Period1Year)
	}

	key := func(date string) string {
		if monthly && len(date) >= 7 {
			return date[:7]
		}
		return date
	}

	weights := st.ListWeightRecords(DateRange{})
	meals := st.ListMealRecords(DateRange{})
	exercises := st.ListExercises(DateRange{})

	buckets := map[string]*trendBucket{}
	bucket := func(k string) *trendBucket {
		b, ok := buckets[k]
		if !ok {
			b = &trendBucket{}
			buckets[k] = b
		}
		return b
	}
	addTo := func(dst **float64, v float64) {
		if *dst == nil {
			*dst = floatPtr(0)
		}
		**dst += v
	}

	anchor := ""
	for _, w := range weights {
		b := bucket(key(w.Date))
		b.weightSum += w.Weight
		b.weightCount++
		anchor = maxDate(anchor, w.Date)
	}
	for _, m := range meals {
		addTo(&bucket(key(m.Date)).intake, m.TotalCalories)
		anchor = maxDate(anchor, m.Date)
	}
	for _, e := range exercises {
		addTo(&bucket(key(e.Date)).burned, e.Calories)
		anchor = maxDate(anchor, e.Date)
	}
	hasCalories := len(meals) > 0 || len(exercises) > 0

	anchorDay, err := time.Parse(model.DateLayout, anchor)
	if err != nil {
		anchorDay, _ = time.Parse(model.DateLayout, today(now))
	}

	trend := WeightTrend{Period: period, Data: make([]TrendPoint, 0, rows)}
	for i := rows - 1; i >= 0; i-- {
		var k string
		if monthly {
			first := time.Date(anchorDay.Year(), anchorDay.Month(), 1, 0, 0, 0, 0, time.UTC)
			k = first.AddDate(0, -i, 0).Format("2006-01")
		} else {
			k = anchorDay.AddDate(0, 0, -i).Format(model.DateLayout)
		}
		point := TrendPoint{Date: k, HasCalories: hasCalories}
		if b, ok := buckets[k]; ok {
			point.Weight = b.mean()
			if hasCalories {
				point.Intake = b.intake
				point.Burned = b.burned
			}
		}
		trend.Data = append(trend.Data, point)
	}

	trend.WeightStats = weightStats(buckets)
	trend.CalorieStats = calorieStats(trend.Data)
	return trend, nil
}

func (b *trendBucket) mean() *float64 {
	if b.weightCount == 0 {
		return nil
	}
	return floatPtr(round1(b.weightSum / float64(b.weightCount)))
}

// weightStats spans every bucket with a weight, not just the returned window.
func weightStats(buckets map[string]*trendBucket) WeightStats {
	keys := make([]string, 0, len(buckets))
	for k, b := range buckets {
		if b.weightCount > 0 {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return WeightStats{}
	}
	sort.Strings(keys)
	first := *buckets[keys[0]].mean()
	last := *buckets[keys[len(keys)-1]].mean()
	return WeightStats{Latest: floatPtr(last), Diff: floatPtr(round1(last - first))}
}

func calorieStats(points []TrendPoint) CalorieStats {
	var intake, burned float64
	n := 0
	for _, p := range points {
		if p.Intake == nil || p.Burned == nil {
			continue
		}
		intake += *p.Intake
		burned += *p.Burned
		n++
	}
	if n == 0 {
		return CalorieStats{}
	}
	avgIntake := intake / float64(n)
	avgBurned := burned / float64(n)
	return CalorieStats{
		AvgIntake: floatPtr(math.Round(avgIntake)),
		AvgBurned: floatPtr(math.Round(avgBurned)),
		Diff:      floatPtr(math.Round(avgIntake - avgBurned)),
	}
}

func maxDate(a, b string) string {
	if b > a {
		return b
	}
	return a
}
