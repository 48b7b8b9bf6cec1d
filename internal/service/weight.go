package service

import (
	"strings"
	"time"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

const maxWeightKg = 500

type WeightRecordInput struct {
	Date      string   `json:"date"`
	Weight    *float64 `json:"weight"`
	TimeOfDay string   `json:"timeOfDay"`
}

type WeightSummary struct {
	CurrentWeight  *float64            `json:"currentWeight"`
	TargetWeight   *float64            `json:"targetWeight"`
	MonthlyAverage *float64            `json:"monthlyAverage"`
	MonthlyDiff    *float64            `json:"monthlyDiff"`
	LatestRecord   *model.WeightRecord `json:"latestRecord"`
	PreviousRecord *model.WeightRecord `json:"previousRecord"`
}

// AddWeightRecord validates in and upserts it into its (date, timeOfDay) slot.
func AddWeightRecord(st *store.Store, in WeightRecordInput) (model.WeightRecord, error) {
	date, err := requireDate(in.Date)
	if err != nil {
		return model.WeightRecord{}, err
	}
	if in.Weight == nil {
		return model.WeightRecord{}, invalidf("weight is required")
	}
	weight := *in.Weight
	if !isFinite(weight) || weight <= 0 || weight >= maxWeightKg {
		return model.WeightRecord{}, invalidf("weight must be > 0 and < %d kg", maxWeightKg)
	}
	timeOfDay := strings.ToLower(strings.TrimSpace(in.TimeOfDay))
	switch timeOfDay {
	case "", model.TimeOfDayMorning, model.TimeOfDayNight:
	default:
		return model.WeightRecord{}, invalidf("timeOfDay must be %q or %q", model.TimeOfDayMorning, model.TimeOfDayNight)
	}
	return st.UpsertWeightRecord(model.WeightRecord{Date: date, Weight: weight, TimeOfDay: timeOfDay})
}

func ListWeightRecords(st *store.Store, r DateRange) ([]model.WeightRecord, error) {
	r, err := normalizeRange(r)
	if err != nil {
		return nil, err
	}
	return st.ListWeightRecords(r), nil
}

// GetWeightSummary reports the latest weight and month-over-month averages
// relative to now's calendar month.
func GetWeightSummary(st *store.Store, now time.Time) WeightSummary {
	summary := WeightSummary{TargetWeight: st.UserProfile().TargetWeight}

	records := st.ListWeightRecords(DateRange{})
	if n := len(records); n > 0 {
		latest := records[n-1]
		summary.LatestRecord = &latest
		summary.CurrentWeight = floatPtr(latest.Weight)
		if n > 1 {
			previous := records[n-2]
			summary.PreviousRecord = &previous
		}
	}

	currentMonth := now.Format("2006-01")
	previousMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0).Format("2006-01")
	current := monthAverage(records, currentMonth)
	previous := monthAverage(records, previousMonth)

	summary.MonthlyAverage = current
	switch {
	case current == nil:
		summary.MonthlyDiff = nil
	case previous == nil:
		// No previous month: the diff falls back to the current average itself.
		summary.MonthlyDiff = floatPtr(*current)
	default:
		summary.MonthlyDiff = floatPtr(round1(*current - *previous))
	}
	return summary
}

func monthAverage(records []model.WeightRecord, month string) *float64 {
	sum := 0.0
	count := 0
	for _, r := range records {
		if strings.HasPrefix(r.Date, month) {
			sum += r.Weight
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return floatPtr(round1(sum / float64(count)))
}
