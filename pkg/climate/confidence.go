package climate

import (
	"fmt"
	"sort"
	"time"

	"agroscore/pkg/recommend/types"
)

const (
	BaseConfidence = 50
	TempHit        = 20
	TempMiss       = -15
	HumidityHit    = 15
	HumidityMiss   = -10
	MoistureHit    = 15
	MoistureMiss   = -10
)

// Confidence scores one weather-banded crop against a weather snapshot.
// A missing reading counts as out of range.
func Confidence(c types.CropProfile, w types.WeatherSnapshot) (int, []string) {
	score := BaseConfidence
	var factors []string
	check := func(label string, v *float64, b *types.Band, hit, miss int) {
		if b == nil {
			return
		}
		switch {
		case v == nil:
			score += miss
			factors = append(factors, fmt.Sprintf("%s not reported (%d)", label, miss))
		case b.Contains(*v):
			score += hit
			factors = append(factors, fmt.Sprintf("%s %.1f in range %.0f-%.0f (+%d)", label, *v, b.Min, b.Max, hit))
		default:
			score += miss
			factors = append(factors, fmt.Sprintf("%s %.1f outside %.0f-%.0f (%d)", label, *v, b.Min, b.Max, miss))
		}
	}
	check("Temperature", w.Temperature, c.Temperature, TempHit, TempMiss)
	check("Humidity", w.Humidity, c.Humidity, HumidityHit, HumidityMiss)
	check("Moisture", w.Moisture, c.Moisture, MoistureHit, MoistureMiss)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, factors
}

// SeasonalCrops runs the weather/season gated path. A crop is published only
// when it is in season for now and its confidence exceeds its threshold.
func SeasonalCrops(crops []types.CropProfile, w types.WeatherSnapshot, now time.Time, locale string) []types.SeasonalCrop {
	current := SeasonFor(now.Month())
	out := []types.SeasonalCrop{}
	for _, c := range crops {
		if !c.WeatherBanded() || !InSeason(c.Season, current) {
			continue
		}
		conf, factors := Confidence(c, w)
		if conf <= c.PublishThreshold {
			continue
		}
		out = append(out, types.SeasonalCrop{
			CropID:     c.ID,
			Name:       c.Name(locale),
			Season:     c.Season,
			Category:   c.Category,
			Confidence: conf,
			Threshold:  c.PublishThreshold,
			Factors:    factors,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}
