package climate

import "agroscore/pkg/recommend/types"

// Rule turns one predicate over raw readings into a risk fact.
// High-severity rules also produce a critical action whose description is
// the mitigation text.
type Rule struct {
	Factor      string
	Severity    types.Severity
	Probability int
	Mitigation  string
	Action      types.ActionType
	Timeline    string
	Cost        float64
	When        func(s types.SoilSample, w *types.WeatherSnapshot) bool
}

// Thresholds referenced by the default rules.
const (
	PhLow          = 6.0
	PhHigh         = 8.0
	NitrogenLow    = 100
	PhosphorusLow  = 10
	PotassiumLow   = 100
	OrganicLow     = 0.5
	HumidityHigh   = 80
	HeatStress     = 35
	MoistureLow    = 30
	WindHigh       = 40
	SpoilHumidity  = 70
	SpoilTempAbove = 30
)

func below(v *float64, x float64) bool { return v != nil && *v < x }
func above(v *float64, x float64) bool { return v != nil && *v > x }

func weatherBelow(w *types.WeatherSnapshot, f func(*types.WeatherSnapshot) *float64, x float64) bool {
	return w != nil && below(f(w), x)
}

func weatherAbove(w *types.WeatherSnapshot, f func(*types.WeatherSnapshot) *float64, x float64) bool {
	return w != nil && above(f(w), x)
}

func temp(w *types.WeatherSnapshot) *float64     { return w.Temperature }
func humidity(w *types.WeatherSnapshot) *float64 { return w.Humidity }
func moisture(w *types.WeatherSnapshot) *float64 { return w.Moisture }
func wind(w *types.WeatherSnapshot) *float64     { return w.WindSpeed }

// DefaultRules is evaluated in order; every rule is independent.
var DefaultRules = []Rule{
	{
		Factor: "Suboptimal Soil pH", Severity: types.SeverityMedium, Probability: 70,
		Mitigation: "Apply agricultural lime to acidic soil or gypsum to alkaline soil before sowing",
		Action:     types.Fertilizer, Timeline: "Before next sowing", Cost: 3000,
		When: func(s types.SoilSample, _ *types.WeatherSnapshot) bool {
			return below(s.Ph, PhLow) || above(s.Ph, PhHigh)
		},
	},
	{
		Factor: "Low Nitrogen Content", Severity: types.SeverityHigh, Probability: 80,
		Mitigation: "Apply urea or another nitrogen-rich fertilizer in split doses",
		Action:     types.Fertilizer, Timeline: "Within 1 week", Cost: 2500,
		When: func(s types.SoilSample, _ *types.WeatherSnapshot) bool { return below(s.Nitrogen, NitrogenLow) },
	},
	{
		Factor: "Low Phosphorus Content", Severity: types.SeverityMedium, Probability: 60,
		Mitigation: "Apply DAP or single super phosphate at sowing",
		Action:     types.Fertilizer, Timeline: "At sowing", Cost: 2000,
		When: func(s types.SoilSample, _ *types.WeatherSnapshot) bool { return below(s.Phosphorus, PhosphorusLow) },
	},
	{
		Factor: "Low Potassium Content", Severity: types.SeverityMedium, Probability: 60,
		Mitigation: "Apply muriate of potash as basal dose",
		Action:     types.Fertilizer, Timeline: "At sowing", Cost: 1800,
		When: func(s types.SoilSample, _ *types.WeatherSnapshot) bool { return below(s.Potassium, PotassiumLow) },
	},
	{
		Factor: "Low Organic Matter", Severity: types.SeverityLow, Probability: 50,
		Mitigation: "Incorporate farmyard manure or green manure crops",
		Action:     types.Fertilizer, Timeline: "Next fallow period", Cost: 4000,
		When: func(s types.SoilSample, _ *types.WeatherSnapshot) bool { return below(s.OrganicMatter, OrganicLow) },
	},
	{
		Factor: "Disease Risk (High Humidity)", Severity: types.SeverityHigh, Probability: 75,
		Mitigation: "Apply preventive fungicide spray and improve field ventilation",
		Action:     types.Pesticide, Timeline: "Within 3 days", Cost: 1500,
		When: func(_ types.SoilSample, w *types.WeatherSnapshot) bool { return weatherAbove(w, humidity, HumidityHigh) },
	},
	{
		Factor: "Heat Stress", Severity: types.SeverityHigh, Probability: 65,
		Mitigation: "Irrigate during early morning or evening and mulch to cool the root zone",
		Action:     types.Irrigation, Timeline: "Immediately", Cost: 1200,
		When: func(_ types.SoilSample, w *types.WeatherSnapshot) bool { return weatherAbove(w, temp, HeatStress) },
	},
	{
		Factor: "Drought Stress", Severity: types.SeverityHigh, Probability: 70,
		Mitigation: "Schedule supplementary irrigation and conserve soil moisture with mulch",
		Action:     types.Irrigation, Timeline: "Within 2 days", Cost: 2000,
		When: func(_ types.SoilSample, w *types.WeatherSnapshot) bool { return weatherBelow(w, moisture, MoistureLow) },
	},
	{
		Factor: "Wind Damage", Severity: types.SeverityMedium, Probability: 40,
		Mitigation: "Stake tall crops and delay spraying until winds drop",
		Action:     types.Harvesting, Timeline: "Before next forecast storm", Cost: 800,
		When: func(_ types.SoilSample, w *types.WeatherSnapshot) bool { return weatherAbove(w, wind, WindHigh) },
	},
	{
		Factor: "Post-Harvest Spoilage Risk", Severity: types.SeverityMedium, Probability: 55,
		Mitigation: "Dry produce to safe moisture and store in ventilated, raised stacks",
		Action:     types.Storage, Timeline: "During harvest", Cost: 1000,
		When: func(_ types.SoilSample, w *types.WeatherSnapshot) bool {
			return weatherAbove(w, humidity, SpoilHumidity) && weatherAbove(w, temp, SpoilTempAbove)
		},
	},
}

// Derive evaluates rules against raw readings. w may be nil.
func Derive(rules []Rule, s types.SoilSample, w *types.WeatherSnapshot) ([]types.RiskFactor, []types.ActionRecommendation) {
	risks := []types.RiskFactor{}
	actions := []types.ActionRecommendation{}
	for _, r := range rules {
		if !r.When(s, w) {
			continue
		}
		risks = append(risks, types.RiskFactor{
			Factor:      r.Factor,
			Severity:    r.Severity,
			Probability: r.Probability,
			Mitigation:  r.Mitigation,
		})
		if r.Severity == types.SeverityHigh {
			actions = append(actions, types.ActionRecommendation{
				Type:          r.Action,
				Description:   r.Mitigation,
				Priority:      types.SeverityCritical,
				Timeline:      r.Timeline,
				EstimatedCost: r.Cost,
			})
		}
	}
	return risks, actions
}
