package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"agroscore/entities"
	"agroscore/pkg/ai"
	"agroscore/pkg/catalog"
	"agroscore/pkg/climate"
	fieldrepo "agroscore/pkg/field/repository"
	"agroscore/pkg/location"
	measuresvc "agroscore/pkg/measure/service"
	"agroscore/pkg/metrics"
	"agroscore/pkg/recommend/service"
	"agroscore/pkg/recommend/types"
	"agroscore/pkg/report"
	"agroscore/pkg/scoring"
)

var (
	ErrFieldNotFound = errors.New("field not found")
	ErrNoReadings    = errors.New("no readings in window")
)

const (
	DefaultWindowDays = 30
	kbNoteChunks      = 4
	kbNoteBytes       = 4000
)

type kbSearcher interface {
	Search(ctx context.Context, query string, k int) ([]entities.KBChunk, error)
}

// Deps are the collaborators of the recommend service. Catalog and Resolver
// default to the built-in tables; everything else may be nil.
type Deps struct {
	Catalog       *catalog.Catalog
	Resolver      *location.Resolver
	Gateway       *ai.Gateway
	KB            kbSearcher
	Fields        fieldrepo.FieldRepository
	Measures      measuresvc.MeasureService
	ReadingSource string // label for field report time series, e.g. "sqlite"
	DefaultLocale string
	Metrics       *metrics.Metrics
	Now           func() time.Time
}

type RecommendSvc struct {
	cat      *catalog.Catalog
	res      *location.Resolver
	gw       *ai.Gateway
	kb       kbSearcher
	fields   fieldrepo.FieldRepository
	measures measuresvc.MeasureService
	source   string
	locale   string
	m        *metrics.Metrics
	now      func() time.Time
}

var _ service.RecommendService = (*RecommendSvc)(nil)

func NewRecommendService(d Deps) *RecommendSvc {
	if d.Catalog == nil {
		d.Catalog = catalog.Default()
	}
	if d.Resolver == nil {
		d.Resolver = location.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.ReadingSource == "" {
		d.ReadingSource = "sqlite"
	}
	if d.DefaultLocale == "" {
		d.DefaultLocale = scoring.DefaultLocale
	}
	return &RecommendSvc{
		cat: d.Catalog, res: d.Resolver, gw: d.Gateway, kb: d.KB,
		fields: d.Fields, measures: d.Measures, source: d.ReadingSource,
		locale: strings.ToLower(d.DefaultLocale),
		m: d.Metrics, now: d.Now,
	}
}

func (s *RecommendSvc) localeOr(l string) string {
	if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
		return l
	}
	return s.locale
}

// withLocale fills in the service default when the request names none.
func (s *RecommendSvc) withLocale(raw types.RawInput) types.RawInput {
	if v, ok := raw["locale"].(string); ok && strings.TrimSpace(v) != "" {
		return raw
	}
	out := make(types.RawInput, len(raw)+1)
	for k, v := range raw {
		out[k] = v
	}
	out["locale"] = s.locale
	return out
}

// profileFor resolves a location string. Empty input means no location
// context at all: no bonus and no location analysis.
func (s *RecommendSvc) profileFor(loc string) *types.LocationProfile {
	if strings.TrimSpace(loc) == "" {
		return nil
	}
	p, _ := s.res.Resolve(loc)
	return &p
}

func (s *RecommendSvc) ScoreCrops(soil types.SoilSample, loc, lc string) []types.ScoredCrop {
	profile := s.profileFor(loc)
	return scoring.Rank(scoring.Score(s.cat.All(), soil, profile, s.localeOr(lc)), 0)
}

func (s *RecommendSvc) SeasonalCrops(w types.WeatherSnapshot, lc string) []types.SeasonalCrop {
	return climate.SeasonalCrops(s.cat.All(), w, s.now(), s.localeOr(lc))
}

func (s *RecommendSvc) Crops() []types.CropProfile { return s.cat.All() }

func (s *RecommendSvc) Crop(id string) (types.CropProfile, error) {
	return s.cat.Get(strings.ToLower(strings.TrimSpace(id)))
}

func (s *RecommendSvc) ResolveLocation(q, lc string) types.LocationAnalysis {
	return report.AnalyzeLocation(s.location(q, s.localeOr(lc)))
}

func (s *RecommendSvc) location(q, lc string) report.Location {
	p, matched := s.res.Resolve(q)
	names, misses := report.PreferredNames(s.cat, p, lc)
	for _, err := range misses {
		log.Printf("[report] location %q: %v", q, err)
	}
	return report.Location{Query: strings.TrimSpace(q), Profile: p, Matched: matched, PreferredNames: names}
}

// ComputeReport validates the raw input and builds a full report. Only
// invalid input is an error; the advisory can fail without affecting it.
func (s *RecommendSvc) ComputeReport(ctx context.Context, raw types.RawInput) (*types.Report, error) {
	in, err := scoring.Normalize(s.withLocale(raw))
	if err != nil {
		return nil, err
	}
	return s.build(ctx, in, nil), nil
}

// ComputeFieldReport averages a field's readings over the last days and
// reports on them.
func (s *RecommendSvc) ComputeFieldReport(ctx context.Context, fieldID uint, days int) (*types.Report, error) {
	if s.fields == nil || s.measures == nil {
		return nil, fmt.Errorf("field reports not configured")
	}
	if days <= 0 {
		days = DefaultWindowDays
	}
	f, err := s.fields.FindByID(fieldID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrFieldNotFound, fieldID)
	}
	w, err := s.measures.Window(ctx, fieldID, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("load readings for field %d: %w", fieldID, err)
	}
	if w.Samples == 0 {
		return nil, fmt.Errorf("%w: field %d, last %d days", ErrNoReadings, fieldID, days)
	}
	in, err := scoring.Normalize(s.withLocale(w.Raw(f.Location, f.Locale)))
	if err != nil {
		return nil, err
	}
	ts := &types.TimeSeriesSummary{Samples: w.Samples, From: w.From, To: w.To, Source: s.source}
	return s.build(ctx, in, ts), nil
}

func (s *RecommendSvc) build(ctx context.Context, in types.Input, ts *types.TimeSeriesSummary) *types.Report {
	start := time.Now()

	// One deadline covers the knowledge base lookup and the model call.
	advCh := make(chan *types.Advisory, 1)
	advCtx := ctx
	if s.gw != nil {
		var cancel context.CancelFunc
		advCtx, cancel = context.WithTimeout(ctx, s.gw.Timeout())
		defer cancel()
		go func() { advCh <- s.gw.Enhance(advCtx, in, s.kbNotes(advCtx, in)) }()
	} else {
		advCh <- nil
	}

	crops := s.cat.All()
	profile := s.profileFor(in.Location)
	ranked := scoring.Rank(scoring.Score(crops, in.Soil, profile, in.Locale), scoring.TopN)
	risks, actions := climate.Derive(climate.DefaultRules, in.Soil, in.Weather)

	parts := report.Parts{
		Soil:       in.Soil,
		Ranked:     ranked,
		Risks:      risks,
		Actions:    actions,
		TimeSeries: ts,
	}
	if in.Weather != nil {
		parts.Seasonal = climate.SeasonalCrops(crops, *in.Weather, s.now(), in.Locale)
	}
	if profile != nil {
		loc := s.location(in.Location, in.Locale)
		parts.Location = &loc
	}

	select {
	case parts.Advisory = <-advCh:
	case <-advCtx.Done():
		log.Printf("[report] %v", fmt.Errorf("%w: %v", ai.ErrAdvisoryUnavailable, advCtx.Err()))
	}

	r := report.Assemble(parts)
	s.m.Report(r.Source, time.Since(start))
	return &r
}

// kbNotes gathers knowledge base text relevant to the sample for the
// advisory prompt. Failures only mean less context.
func (s *RecommendSvc) kbNotes(ctx context.Context, in types.Input) string {
	if s.kb == nil {
		return ""
	}
	q := strings.TrimSpace(in.Location + " soil nitrogen phosphorus potassium fertilizer crop")
	chunks, err := s.kb.Search(ctx, q, kbNoteChunks)
	if err != nil {
		log.Printf("[kb] search: %v", err)
		return ""
	}
	var b strings.Builder
	for _, ch := range chunks {
		if b.Len() > kbNoteBytes {
			break
		}
		b.WriteString("\n---\n")
		b.WriteString(ch.Text)
	}
	return b.String()
}
