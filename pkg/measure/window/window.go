// Package window folds a run of stored readings into one soil sample and
// weather snapshot.
package window

import (
	"math"
	"time"

	"agroscore/entities"
	"agroscore/pkg/recommend/types"
)

type Window struct {
	Soil    types.SoilSample
	Weather *types.WeatherSnapshot // nil when no reading carried weather
	Samples int
	From    time.Time
	To      time.Time
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v *float64) {
	if v != nil {
		m.sum += *v
		m.n++
	}
}

func (m mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := math.Round(m.sum/float64(m.n)*100) / 100
	return &v
}

// Aggregate averages each axis over the readings that carry it. An axis no
// reading carried stays nil.
func Aggregate(ms []entities.Measurement) Window {
	var ph, n, p, k, om, temp, hum, moist, wind mean
	w := Window{Samples: len(ms)}
	for i, m := range ms {
		if i == 0 || m.TakenAt.Before(w.From) {
			w.From = m.TakenAt
		}
		if i == 0 || m.TakenAt.After(w.To) {
			w.To = m.TakenAt
		}
		ph.add(m.Ph)
		n.add(m.Nitrogen)
		p.add(m.Phosphorus)
		k.add(m.Potassium)
		om.add(m.OrganicMatter)
		temp.add(m.Temperature)
		hum.add(m.Humidity)
		moist.add(m.Moisture)
		wind.add(m.WindSpeed)
	}
	w.Soil = types.SoilSample{
		Ph:            ph.value(),
		Nitrogen:      n.value(),
		Phosphorus:    p.value(),
		Potassium:     k.value(),
		OrganicMatter: om.value(),
	}
	if temp.n+hum.n+moist.n+wind.n > 0 {
		w.Weather = &types.WeatherSnapshot{
			Temperature: temp.value(),
			Humidity:    hum.value(),
			Moisture:    moist.value(),
			WindSpeed:   wind.value(),
		}
	}
	return w
}

// Raw renders the window in the shape the report normalizer accepts, so
// field reports go through the same validation as ad-hoc ones.
func (w Window) Raw(location, locale string) types.RawInput {
	raw := types.RawInput{}
	put := func(m map[string]any, k string, v *float64) {
		if v != nil {
			m[k] = *v
		}
	}
	put(raw, "ph", w.Soil.Ph)
	put(raw, "nitrogen", w.Soil.Nitrogen)
	put(raw, "phosphorus", w.Soil.Phosphorus)
	put(raw, "potassium", w.Soil.Potassium)
	put(raw, "organicMatter", w.Soil.OrganicMatter)
	if w.Weather != nil {
		wm := map[string]any{}
		put(wm, "temperature", w.Weather.Temperature)
		put(wm, "humidity", w.Weather.Humidity)
		put(wm, "moisture", w.Weather.Moisture)
		put(wm, "windSpeed", w.Weather.WindSpeed)
		raw["weather"] = wm
	}
	if location != "" {
		raw["location"] = location
	}
	if locale != "" {
		raw["locale"] = locale
	}
	return raw
}
