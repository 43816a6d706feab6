package report

import (
	"sort"
	"strings"

	"agroscore/pkg/catalog"
	"agroscore/pkg/recommend/types"
)

// Location carries the resolver outcome into the report.
type Location struct {
	Query          string
	Profile        types.LocationProfile
	Matched        bool
	PreferredNames []string
}

// Parts is everything a report is built from. Optional parts may be nil.
type Parts struct {
	Soil       types.SoilSample
	Ranked     []types.ScoredCrop
	Risks      []types.RiskFactor
	Actions    []types.ActionRecommendation
	Seasonal   []types.SeasonalCrop
	Location   *Location
	TimeSeries *types.TimeSeriesSummary
	Advisory   *types.Advisory
}

// Assemble merges the parts into a Report. It does no I/O and reads no
// clock; equal parts give equal reports.
func Assemble(p Parts) types.Report {
	r := types.Report{
		SoilAnalysis:          AnalyzeSoil(p.Soil),
		CropRecommendations:   make([]types.CropRecommendation, 0, len(p.Ranked)),
		RiskFactors:           append([]types.RiskFactor{}, p.Risks...),
		ActionRecommendations: append([]types.ActionRecommendation{}, p.Actions...),
		Source:                types.SourceDeterministic,
	}

	notes := map[string]string{}
	if p.Advisory != nil {
		for _, n := range p.Advisory.CropNotes {
			notes[n.CropID] = n.Note
		}
		adv := *p.Advisory
		r.Advisory = &adv
		r.Source = types.SourceAdvisory
	}

	for _, c := range p.Ranked {
		r.CropRecommendations = append(r.CropRecommendations, types.CropRecommendation{
			Rank:               c.Rank,
			CropID:             c.CropID,
			Name:               c.Name,
			Suitability:        c.Score,
			Season:             c.Season,
			Category:           c.Category,
			MarketPotential:    c.MarketPotential,
			InvestmentRequired: c.InvestmentRequired,
			Reason:             strings.Join(c.Rationale, "; "),
			AdvisoryNote:       notes[c.CropID],
		})
	}

	if len(p.Seasonal) > 0 {
		r.SeasonalCrops = append([]types.SeasonalCrop{}, p.Seasonal...)
	}

	if p.Location != nil {
		la := AnalyzeLocation(*p.Location)
		r.LocationAnalysis = &la
	}

	if p.TimeSeries != nil {
		ts := *p.TimeSeries
		r.TimeSeries = &ts
	}
	return r
}

// AnalyzeLocation renders a resolver outcome for the report.
func AnalyzeLocation(l Location) types.LocationAnalysis {
	return types.LocationAnalysis{
		Location:         l.Query,
		Region:           l.Profile.Region,
		Matched:          l.Matched,
		Climate:          l.Profile.Climate,
		Soil:             l.Profile.Soil,
		PreferredCrops:   append([]string{}, l.PreferredNames...),
		MarketAdvantages: append([]string{}, l.Profile.MarketAdvantages...),
		Challenges:       append([]string{}, l.Profile.Challenges...),
		Recommendations:  append([]string{}, l.Profile.Recommendations...),
	}
}

// PreferredNames resolves a profile's preferred crops to display names in
// priority order. Ids missing from the catalog are skipped and returned as
// *catalog.LookupMissError values for the caller to log.
func PreferredNames(cat *catalog.Catalog, profile types.LocationProfile, locale string) ([]string, []error) {
	prefs := append([]types.PreferredCrop(nil), profile.PreferredCrops...)
	sort.SliceStable(prefs, func(i, j int) bool { return prefs[i].Priority < prefs[j].Priority })
	names := []string{}
	var misses []error
	for _, pc := range prefs {
		c, err := cat.Get(pc.CropID)
		if err != nil {
			misses = append(misses, err)
			continue
		}
		names = append(names, c.Name(locale))
	}
	return names, misses
}
