package scoring

import (
	"fmt"
	"math"
	"strconv"

	"agroscore/pkg/recommend/types"
)

const (
	OptimalPoints    = 25
	AcceptablePoints = 15
	FloorPoints      = 5
	LocationBonus    = 10
	MaxScore         = 100
)

// Tier is the band a soil value falls into for one axis.
type Tier int

const (
	TierMissing Tier = iota
	TierOutside
	TierAcceptable
	TierOptimal
)

func (t Tier) Points() int {
	switch t {
	case TierOptimal:
		return OptimalPoints
	case TierAcceptable:
		return AcceptablePoints
	default:
		return FloorPoints
	}
}

// Classify places v in the optimal band, the acceptable band, or neither.
// Bounds are inclusive; a nil value is TierMissing.
func Classify(v *float64, optimal, acceptable types.Band) Tier {
	switch {
	case v == nil:
		return TierMissing
	case optimal.Contains(*v):
		return TierOptimal
	case acceptable.Contains(*v):
		return TierAcceptable
	default:
		return TierOutside
	}
}

type axis struct {
	label      string
	value      *float64
	optimal    types.Band
	acceptable types.Band
}

func axes(c types.CropProfile, soil types.SoilSample) [4]axis {
	return [4]axis{
		{"pH", soil.Ph, c.Ph, c.AcceptablePh},
		{"Nitrogen", soil.Nitrogen, c.Nitrogen, c.AcceptableNitrogen},
		{"Phosphorus", soil.Phosphorus, c.Phosphorus, c.AcceptablePhosphorus},
		{"Potassium", soil.Potassium, c.Potassium, c.AcceptablePotassium},
	}
}

// Score evaluates every crop against the soil sample, in catalog order.
// profile may be nil when no location was given.
func Score(crops []types.CropProfile, soil types.SoilSample, profile *types.LocationProfile, locale string) []types.ScoredCrop {
	out := make([]types.ScoredCrop, 0, len(crops))
	for _, c := range crops {
		out = append(out, ScoreOne(c, soil, profile, locale))
	}
	return out
}

func ScoreOne(c types.CropProfile, soil types.SoilSample, profile *types.LocationProfile, locale string) types.ScoredCrop {
	total := 0
	rationale := make([]string, 0, 5)
	for _, a := range axes(c, soil) {
		t := Classify(a.value, a.optimal, a.acceptable)
		total += t.Points()
		rationale = append(rationale, axisReason(a, t))
	}
	if profile.Prefers(c.ID) {
		total += LocationBonus
		rationale = append(rationale, fmt.Sprintf("Preferred crop for %s (+%d)", profile.Region, LocationBonus))
	}
	if total > MaxScore {
		total = MaxScore
	}
	return types.ScoredCrop{
		CropID:             c.ID,
		Name:               c.Name(locale),
		Score:              total,
		Season:             c.Season,
		Category:           c.Category,
		Rationale:          rationale,
		MarketPotential:    c.MarketPotential,
		InvestmentRequired: c.InvestmentRequired,
	}
}

func axisReason(a axis, t Tier) string {
	switch t {
	case TierMissing:
		return a.label + " not measured"
	case TierOptimal:
		return fmt.Sprintf("%s %s within optimal range %s", a.label, Num(*a.value), BandText(a.optimal))
	case TierAcceptable:
		return fmt.Sprintf("%s %s within acceptable range %s", a.label, Num(*a.value), BandText(a.acceptable))
	default:
		return fmt.Sprintf("%s %s outside acceptable range %s", a.label, Num(*a.value), BandText(a.acceptable))
	}
}

// Num formats v with at most two decimals and no trailing zeros.
func Num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func BandText(b types.Band) string { return Num(b.Min) + "-" + Num(b.Max) }
