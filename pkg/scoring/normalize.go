package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"agroscore/pkg/recommend/types"
)

// InvalidInputError reports a missing or non-numeric required field.
// It is the only error the recommendation pipeline returns to callers.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

const DefaultLocale = "en"

// Normalize validates a decoded request body and shapes it into an Input.
// ph, nitrogen, phosphorus and potassium are required; everything else is optional.
func Normalize(raw types.RawInput) (types.Input, error) {
	var in types.Input
	req := func(key string) (*float64, error) {
		v, ok := raw[key]
		if !ok || v == nil {
			return nil, &InvalidInputError{Field: key, Reason: "is required"}
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, &InvalidInputError{Field: key, Reason: fmt.Sprintf("must be numeric, got %v", v)}
		}
		return &f, nil
	}
	var err error
	if in.Soil.Ph, err = req("ph"); err != nil {
		return types.Input{}, err
	}
	if in.Soil.Nitrogen, err = req("nitrogen"); err != nil {
		return types.Input{}, err
	}
	if in.Soil.Phosphorus, err = req("phosphorus"); err != nil {
		return types.Input{}, err
	}
	if in.Soil.Potassium, err = req("potassium"); err != nil {
		return types.Input{}, err
	}
	if in.Soil.OrganicMatter, err = optional(raw, "organicMatter", "organic_matter"); err != nil {
		return types.Input{}, err
	}

	if v, ok := raw["location"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return types.Input{}, &InvalidInputError{Field: "location", Reason: "must be text"}
		}
		in.Location = strings.TrimSpace(s)
		in.LocationKey = strings.ToLower(in.Location)
		in.Soil.Location = in.Location
	}

	if v, ok := raw["weather"]; ok && v != nil {
		w, ok := v.(map[string]any)
		if !ok {
			return types.Input{}, &InvalidInputError{Field: "weather", Reason: "must be an object"}
		}
		ws, err := normalizeWeather(types.RawInput(w))
		if err != nil {
			return types.Input{}, err
		}
		in.Weather = ws
	}

	in.Locale = DefaultLocale
	if v, ok := raw["locale"].(string); ok && strings.TrimSpace(v) != "" {
		in.Locale = strings.ToLower(strings.TrimSpace(v))
	}
	return in, nil
}

func normalizeWeather(w types.RawInput) (*types.WeatherSnapshot, error) {
	var ws types.WeatherSnapshot
	var err error
	if ws.Temperature, err = optional(w, "temperature", "temp"); err != nil {
		return nil, err
	}
	if ws.Humidity, err = optional(w, "humidity"); err != nil {
		return nil, err
	}
	if ws.Moisture, err = optional(w, "moisture", "rainfall"); err != nil {
		return nil, err
	}
	if ws.WindSpeed, err = optional(w, "windSpeed", "wind_speed"); err != nil {
		return nil, err
	}
	return &ws, nil
}

// optional reads the first present key; absent or null yields nil.
func optional(raw types.RawInput, keys ...string) (*float64, error) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, &InvalidInputError{Field: k, Reason: fmt.Sprintf("must be numeric, got %v", v)}
		}
		return &f, nil
	}
	return nil, nil
}

// toFloat accepts JSON numbers and numeric strings; NaN and Inf are rejected.
func toFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
