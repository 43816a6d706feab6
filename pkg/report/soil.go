package report

import (
	"agroscore/pkg/catalog"
	"agroscore/pkg/recommend/types"
	"agroscore/pkg/scoring"
)

// Reference bands for the crop-independent soil summary. Acceptable bands are
// widened with the same factors the catalog uses.
var (
	ReferencePh         = types.Band{Min: 6.0, Max: 7.5}
	ReferenceNitrogen   = types.Band{Min: 140, Max: 280}
	ReferencePhosphorus = types.Band{Min: 10, Max: 25}
	ReferencePotassium  = types.Band{Min: 110, Max: 280}
	ReferenceOrganic    = types.Band{Min: 0.5, Max: 2.5}
)

type advice struct{ low, high string }

var axisAdvice = map[string]advice{
	"ph":         {"Apply agricultural lime to raise pH", "Apply gypsum or elemental sulphur to lower pH"},
	"nitrogen":   {"Add nitrogen through urea or legumes in rotation", "Cut nitrogen doses to avoid lodging and leaching"},
	"phosphorus": {"Apply DAP or single super phosphate", "Skip phosphatic fertilizer this season"},
	"potassium":  {"Apply muriate of potash", "Skip potash this season"},
	"organic":    {"Add farmyard manure or compost", "Maintain current residue management"},
}

// AnalyzeSoil summarises each axis using the optimal/acceptable tiers.
func AnalyzeSoil(s types.SoilSample) types.SoilAnalysis {
	out := types.SoilAnalysis{
		Ph:         analyzeAxis("ph", s.Ph, ReferencePh, catalog.AcceptablePh(ReferencePh)),
		Nitrogen:   analyzeAxis("nitrogen", s.Nitrogen, ReferenceNitrogen, catalog.AcceptableNutrient(ReferenceNitrogen)),
		Phosphorus: analyzeAxis("phosphorus", s.Phosphorus, ReferencePhosphorus, catalog.AcceptableNutrient(ReferencePhosphorus)),
		Potassium:  analyzeAxis("potassium", s.Potassium, ReferencePotassium, catalog.AcceptableNutrient(ReferencePotassium)),
	}
	if s.OrganicMatter != nil {
		om := analyzeAxis("organic", s.OrganicMatter, ReferenceOrganic, catalog.AcceptableNutrient(ReferenceOrganic))
		out.OrganicMatter = &om
	}
	return out
}

func analyzeAxis(key string, v *float64, optimal, acceptable types.Band) types.AxisAnalysis {
	a := types.AxisAnalysis{}
	if v != nil {
		val := *v
		a.Value = &val
	}
	adv := axisAdvice[key]
	switch scoring.Classify(v, optimal, acceptable) {
	case scoring.TierMissing:
		a.Status = "Not Measured"
		a.Recommendation = "Measure at the next soil test"
	case scoring.TierOptimal:
		a.Status = "Optimal"
		a.Recommendation = "Maintain current management"
	case scoring.TierAcceptable:
		if *v < optimal.Min {
			a.Status, a.Recommendation = "Slightly Low", adv.low
		} else {
			a.Status, a.Recommendation = "Slightly High", adv.high
		}
	default:
		low := *v < acceptable.Min
		switch {
		case key == "ph" && low:
			a.Status = "Acidic"
		case key == "ph":
			a.Status = "Alkaline"
		case low:
			a.Status = "Deficient"
		default:
			a.Status = "Excessive"
		}
		if low {
			a.Recommendation = adv.low
		} else {
			a.Recommendation = adv.high
		}
	}
	return a
}
