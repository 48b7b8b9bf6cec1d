package service

import (
	"math"
	"sort"
	"strings"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

// ActivityFactors are the Mifflin-St Jeor TDEE multipliers by activity level.
var ActivityFactors = map[string]float64{
	"low":      1.2,
	"light":    1.375,
	"moderate": 1.55,
	"high":     1.725,
}

var (
	sexes = map[string]struct{}{"male": {}, "female": {}}
	goals = map[string]struct{}{"lose": {}, "maintain": {}, "gain": {}}
)

type RecommendationInput struct {
	WeightKg      *float64 `json:"weightKg"`
	HeightCm      *float64 `json:"heightCm"`
	Age           *float64 `json:"age"`
	Sex           string   `json:"sex"`
	ActivityLevel string   `json:"activityLevel"`
}

type Recommendation struct {
	BMR           int    `json:"bmr"`
	TDEE          int    `json:"tdee"`
	ActivityLevel string `json:"activityLevel"`
}

// Recommend rounds BMR before scaling it, so TDEE is round(round(bmr) * factor).
func Recommend(in RecommendationInput) (Recommendation, error) {
	for _, f := range []struct {
		name  string
		value *float64
	}{{"weightKg", in.WeightKg}, {"heightCm", in.HeightCm}, {"age", in.Age}} {
		if f.value == nil || !isFinite(*f.value) {
			return Recommendation{}, invalidf("%s must be a finite number", f.name)
		}
	}
	sex := strings.ToLower(strings.TrimSpace(in.Sex))
	if _, ok := sexes[sex]; !ok {
		return Recommendation{}, invalidf("sex must be male or female")
	}
	level := strings.ToLower(strings.TrimSpace(in.ActivityLevel))
	factor, ok := ActivityFactors[level]
	if !ok {
		return Recommendation{}, invalidf("activityLevel must be one of %s", strings.Join(activityLevels(), ", "))
	}

	bmr := 10**in.WeightKg + 6.25**in.HeightCm - 5**in.Age
	if sex == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	roundedBMR := math.Round(bmr)
	return Recommendation{
		BMR:           int(roundedBMR),
		TDEE:          int(math.Round(roundedBMR * factor)),
		ActivityLevel: level,
	}, nil
}

func activityLevels() []string {
	out := make([]string, 0, len(ActivityFactors))
	for k := range ActivityFactors {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return ActivityFactors[out[i]] < ActivityFactors[out[j]] })
	return out
}

// ProfileInput is the decoded profile payload. Fields are loosely typed so
// that a non-numeric height is reported as a validation error.
type ProfileInput map[string]any

var (
	profileStringFields = []string{"id", "nickname", "email", "birthdate", "sex", "activityLevel", "goal", "unit", "theme"}
	profileNumberFields = []string{"heightCm", "weight", "age", "targetWeight", "targetIntakeCalories", "targetBurnCalories"}
)

// jsonNumber accepts only finite JSON numbers, matching how the typed
// payloads decode. Numeric strings are rejected.
func jsonNumber(raw any) (float64, bool) {
	v, ok := raw.(float64)
	return v, ok && isFinite(v)
}

// ValidateProfile checks the required fields and converts in to a partial
// profile suitable for merging.
func ValidateProfile(in ProfileInput) (model.UserProfile, error) {
	for _, name := range []string{"heightCm", "age"} {
		if _, ok := jsonNumber(in[name]); !ok {
			return model.UserProfile{}, invalidf("%s must be a number", name)
		}
	}
	for _, check := range []struct {
		field string
		set   map[string]struct{}
	}{
		{"sex", sexes},
		{"activityLevel", factorSet()},
		{"goal", goals},
	} {
		v, _ := in[check.field].(string)
		if _, ok := check.set[v]; !ok {
			return model.UserProfile{}, invalidf("%s has an unsupported value %v", check.field, in[check.field])
		}
	}

	strs := map[string]*string{}
	for _, name := range profileStringFields {
		raw, present := in[name]
		if !present || raw == nil {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return model.UserProfile{}, invalidf("%s must be a string", name)
		}
		s = strings.TrimSpace(s)
		strs[name] = &s
	}
	nums := map[string]*float64{}
	for _, name := range profileNumberFields {
		raw, present := in[name]
		if !present || raw == nil {
			continue
		}
		v, ok := jsonNumber(raw)
		if !ok || v < 0 {
			return model.UserProfile{}, invalidf("%s must be a non-negative number", name)
		}
		nums[name] = floatPtr(v)
	}

	profile := model.UserProfile{
		Nickname:             strs["nickname"],
		Email:                strs["email"],
		Birthdate:            strs["birthdate"],
		Sex:                  strs["sex"],
		ActivityLevel:        strs["activityLevel"],
		Goal:                 strs["goal"],
		Unit:                 strs["unit"],
		Theme:                strs["theme"],
		HeightCm:             nums["heightCm"],
		Weight:               nums["weight"],
		Age:                  nums["age"],
		TargetWeight:         nums["targetWeight"],
		TargetIntakeCalories: nums["targetIntakeCalories"],
		TargetBurnCalories:   nums["targetBurnCalories"],
	}
	if id := strs["id"]; id != nil {
		profile.ID = *id
	}
	return profile, nil
}

func factorSet() map[string]struct{} {
	out := make(map[string]struct{}, len(ActivityFactors))
	for k := range ActivityFactors {
		out[k] = struct{}{}
	}
	return out
}

// GetProfile returns NotFoundError once the profile has been cleared.
func GetProfile(st *store.Store) (model.UserProfile, error) {
	profile := st.UserProfile()
	if profile.IsEmpty() {
		return model.UserProfile{}, &NotFoundError{Resource: "profile", ID: "me"}
	}
	return profile, nil
}

func SaveProfile(st *store.Store, in ProfileInput) (model.UserProfile, error) {
	partial, err := ValidateProfile(in)
	if err != nil {
		return model.UserProfile{}, err
	}
	return st.SaveUserProfile(partial)
}

func ClearProfile(st *store.Store) error {
	return st.ClearUserProfile()
}
