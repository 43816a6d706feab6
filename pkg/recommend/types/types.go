package types

import "time"

type Season string

const (
	Kharif    Season = "Kharif"
	Rabi      Season = "Rabi"
	Zaid      Season = "Zaid"
	YearRound Season = "YearRound"
)

type Category string

const (
	Cereal    Category = "cereal"
	Pulse     Category = "pulse"
	Oilseed   Category = "oilseed"
	CashCrop  Category = "cash_crop"
	Vegetable Category = "vegetable"
	Fruit     Category = "fruit"
	Spice     Category = "spice"
	Medicinal Category = "medicinal"
)

type Level string // high|medium|low

const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

type Severity string // low|medium|high|critical

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type ActionType string

const (
	Irrigation ActionType = "irrigation"
	Fertilizer ActionType = "fertilizer"
	Pesticide  ActionType = "pesticide"
	Harvesting ActionType = "harvesting"
	Storage    ActionType = "storage"
)

// Band is an inclusive [Min, Max] range.
type Band struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (b Band) Contains(v float64) bool { return v >= b.Min && v <= b.Max }

// SoilSample is request-scoped; nil pointers mean the value was not measured.
type SoilSample struct {
	Ph            *float64 `json:"ph"`
	Nitrogen      *float64 `json:"nitrogen"`
	Phosphorus    *float64 `json:"phosphorus"`
	Potassium     *float64 `json:"potassium"`
	OrganicMatter *float64 `json:"organicMatter,omitempty"`
	Location      string   `json:"location,omitempty"`
}

type WeatherSnapshot struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Moisture    *float64 `json:"moisture"`
	WindSpeed   *float64 `json:"windSpeed"`
}

// RawInput is the decoded request body before validation.
type RawInput map[string]any

// Input is the normalized form of a RawInput.
type Input struct {
	Soil        SoilSample       `json:"soil"`
	Weather     *WeatherSnapshot `json:"weather,omitempty"`
	Location    string           `json:"location,omitempty"`
	LocationKey string           `json:"-"`
	Locale      string           `json:"locale"`
}

type CropProfile struct {
	ID                 string            `json:"id"`
	Names              map[string]string `json:"names"`
	Season             Season            `json:"season"`
	Category           Category          `json:"category"`
	Ph                 Band              `json:"ph"`
	Nitrogen           Band              `json:"nitrogen"`
	Phosphorus         Band              `json:"phosphorus"`
	Potassium          Band              `json:"potassium"`
	Temperature        *Band             `json:"temperature,omitempty"`
	Humidity           *Band             `json:"humidity,omitempty"`
	Moisture           *Band             `json:"moisture,omitempty"`
	PublishThreshold   int               `json:"publishThreshold,omitempty"`
	MarketPotential    Level             `json:"marketPotential"`
	InvestmentRequired Level             `json:"investmentRequired"`

	// derived at load
	AcceptablePh         Band `json:"-"`
	AcceptableNitrogen   Band `json:"-"`
	AcceptablePhosphorus Band `json:"-"`
	AcceptablePotassium  Band `json:"-"`
}

// Name returns the display name for locale, falling back to English then the id.
func (c CropProfile) Name(locale string) string {
	if n, ok := c.Names[locale]; ok && n != "" {
		return n
	}
	if n, ok := c.Names["en"]; ok && n != "" {
		return n
	}
	return c.ID
}

// WeatherBanded reports whether the crop takes part in confidence scoring:
// it needs a publish threshold and at least one weather band. Axes without a
// band neither add nor subtract confidence.
func (c CropProfile) WeatherBanded() bool {
	return (c.Temperature != nil || c.Humidity != nil || c.Moisture != nil) && c.PublishThreshold > 0
}

type PreferredCrop struct {
	CropID   string `json:"cropId" yaml:"crop"`
	Priority int    `json:"priority" yaml:"priority"`
}

type LocationProfile struct {
	Region           string          `json:"region" yaml:"region"`
	Climate          string          `json:"climate" yaml:"climate"`
	Soil             string          `json:"soil" yaml:"soil"`
	PreferredCrops   []PreferredCrop `json:"preferredCrops" yaml:"preferred"`
	MarketAdvantages []string        `json:"marketAdvantages" yaml:"market_advantages"`
	Challenges       []string        `json:"challenges" yaml:"challenges"`
	Recommendations  []string        `json:"recommendations" yaml:"recommendations"`
}

func (l *LocationProfile) Prefers(cropID string) bool {
	if l == nil {
		return false
	}
	for _, p := range l.PreferredCrops {
		if p.CropID == cropID {
			return true
		}
	}
	return false
}

type ScoredCrop struct {
	CropID             string   `json:"cropId"`
	Name               string   `json:"name"`
	Rank               int      `json:"rank,omitempty"`
	Score              int      `json:"suitabilityScore"`
	Season             Season   `json:"season"`
	Category           Category `json:"category"`
	Rationale          []string `json:"rationale"`
	MarketPotential    Level    `json:"marketPotential"`
	InvestmentRequired Level    `json:"investmentRequired"`
}

type SeasonalCrop struct {
	CropID     string   `json:"cropId"`
	Name       string   `json:"name"`
	Season     Season   `json:"season"`
	Category   Category `json:"category"`
	Confidence int      `json:"confidence"`
	Threshold  int      `json:"threshold"`
	Factors    []string `json:"factors"`
}

type RiskFactor struct {
	Factor      string   `json:"factor"`
	Severity    Severity `json:"severity"`
	Probability int      `json:"probability"`
	Mitigation  string   `json:"mitigation"`
}

type ActionRecommendation struct {
	Type          ActionType `json:"type"`
	Description   string     `json:"description"`
	Priority      Severity   `json:"priority"`
	Timeline      string     `json:"timeline"`
	EstimatedCost float64    `json:"estimatedCost"`
}

type AxisAnalysis struct {
	Value          *float64 `json:"value"`
	Status         string   `json:"status"`
	Recommendation string   `json:"recommendation"`
}

type SoilAnalysis struct {
	Ph            AxisAnalysis  `json:"ph"`
	Nitrogen      AxisAnalysis  `json:"nitrogen"`
	Phosphorus    AxisAnalysis  `json:"phosphorus"`
	Potassium     AxisAnalysis  `json:"potassium"`
	OrganicMatter *AxisAnalysis `json:"organicMatter,omitempty"`
}

type CropRecommendation struct {
	Rank               int      `json:"rank"`
	CropID             string   `json:"cropId"`
	Name               string   `json:"name"`
	Suitability        int      `json:"suitability"`
	Season             Season   `json:"season"`
	Category           Category `json:"category"`
	MarketPotential    Level    `json:"marketPotential"`
	InvestmentRequired Level    `json:"investmentRequired"`
	Reason             string   `json:"reason"`
	AdvisoryNote       string   `json:"advisoryNote,omitempty"`
}

type LocationAnalysis struct {
	Location         string   `json:"location"`
	Region           string   `json:"region"`
	Matched          bool     `json:"matched"`
	Climate          string   `json:"climate"`
	Soil             string   `json:"soil"`
	PreferredCrops   []string `json:"preferredCrops"`
	MarketAdvantages []string `json:"marketAdvantages"`
	Challenges       []string `json:"challenges"`
	Recommendations  []string `json:"recommendations"`
}

// TimeSeriesSummary describes the stored readings a field report was built from.
type TimeSeriesSummary struct {
	Samples int       `json:"samples"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
	Source  string    `json:"source"`
}

// Advisory is the structured payload of the generative enhancement layer.
type Advisory struct {
	Summary   string                 `json:"summary"`
	CropNotes []AdvisoryCropNote     `json:"cropNotes,omitempty"`
	Actions   []ActionRecommendation `json:"actions,omitempty"`
	Locale    string                 `json:"locale"`
}

type AdvisoryCropNote struct {
	CropID string `json:"cropId"`
	Note   string `json:"note"`
}

const (
	SourceDeterministic = "deterministic"
	SourceAdvisory      = "deterministic+advisory"
)

type Report struct {
	SoilAnalysis          SoilAnalysis           `json:"soilAnalysis"`
	CropRecommendations   []CropRecommendation   `json:"cropRecommendations"`
	RiskFactors           []RiskFactor           `json:"riskFactors"`
	ActionRecommendations []ActionRecommendation `json:"actionRecommendations"`
	SeasonalCrops         []SeasonalCrop         `json:"seasonalCrops,omitempty"`
	LocationAnalysis      *LocationAnalysis      `json:"locationAnalysis,omitempty"`
	TimeSeries            *TimeSeriesSummary     `json:"timeSeries,omitempty"`
	Advisory              *Advisory              `json:"advisory,omitempty"`
	Source                string                 `json:"source"`
}
