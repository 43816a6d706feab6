package serviceImp

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"agroscore/entities"
	"agroscore/pkg/ai"
	"agroscore/pkg/catalog"
	measuresvc "agroscore/pkg/measure/serviceImp"
	"agroscore/pkg/recommend/types"
	"agroscore/pkg/scoring"
)

type stubClient struct {
	adv   *types.Advisory
	err   error
	delay time.Duration
}

func (c stubClient) Enhance(ctx context.Context, _ ai.Request) (*types.Advisory, error) {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return c.adv, c.err
}

func gateway(c ai.Client, timeout time.Duration) *ai.Gateway {
	return ai.NewGateway(c, timeout, catalogIDs(), nil)
}

func catalogIDs() []string {
	var ids []string
	for _, c := range catalog.Default().All() {
		ids = append(ids, c.ID)
	}
	return ids
}

func sampleRaw() types.RawInput {
	return types.RawInput{"ph": 6.8, "nitrogen": 130, "phosphorus": 25, "potassium": 120, "location": "Nashik"}
}

func cropIDs(r *types.Report) []string {
	out := make([]string, len(r.CropRecommendations))
	for i, c := range r.CropRecommendations {
		out[i] = c.CropID
	}
	return out
}

func TestComputeReport_FallsBackWhenAdvisoryFails(t *testing.T) {
	clients := map[string]ai.Client{
		"error":   stubClient{err: errors.New("503 from upstream")},
		"slow":    stubClient{adv: &types.Advisory{Summary: "late"}, delay: time.Second},
		"invalid": stubClient{adv: &types.Advisory{Summary: "x", CropNotes: []types.AdvisoryCropNote{{CropID: "castor"}}}},
	}
	for name, c := range clients {
		svc := NewRecommendService(Deps{Gateway: gateway(c, 30*time.Millisecond)})
		r, err := svc.ComputeReport(context.Background(), sampleRaw())
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if r.Source != types.SourceDeterministic || r.Advisory != nil {
			t.Errorf("%s: source %q advisory %+v", name, r.Source, r.Advisory)
		}
		if len(r.CropRecommendations) != scoring.TopN {
			t.Fatalf("%s: %d crops", name, len(r.CropRecommendations))
		}
		for i, c := range r.CropRecommendations {
			if c.Rank != i+1 {
				t.Errorf("%s: pos %d rank %d", name, i, c.Rank)
			}
			if i > 0 && c.Suitability > r.CropRecommendations[i-1].Suitability {
				t.Errorf("%s: ranking not descending at %d", name, i)
			}
		}
	}
}

func TestComputeReport_AdvisoryIsAdditive(t *testing.T) {
	plain, err := NewRecommendService(Deps{}).ComputeReport(context.Background(), sampleRaw())
	if err != nil {
		t.Fatal(err)
	}
	adv := &types.Advisory{
		Summary:   "Good onion soil",
		CropNotes: []types.AdvisoryCropNote{{CropID: "onion", Note: "Transplant in November"}},
	}
	svc := NewRecommendService(Deps{Gateway: gateway(stubClient{adv: adv}, time.Second)})
	r, err := svc.ComputeReport(context.Background(), sampleRaw())
	if err != nil {
		t.Fatal(err)
	}
	if r.Source != types.SourceAdvisory || r.Advisory == nil || r.Advisory.Locale != "en" {
		t.Fatalf("source %q advisory %+v", r.Source, r.Advisory)
	}
	if !reflect.DeepEqual(cropIDs(plain), cropIDs(r)) {
		t.Errorf("advisory changed ranking:\n%v\n%v", cropIDs(plain), cropIDs(r))
	}
	if !reflect.DeepEqual(plain.RiskFactors, r.RiskFactors) {
		t.Error("advisory changed risk factors")
	}
	for _, c := range r.CropRecommendations {
		if c.CropID == "onion" && c.AdvisoryNote != "Transplant in November" {
			t.Errorf("onion note = %q", c.AdvisoryNote)
		}
	}
}

func TestComputeReport_Sections(t *testing.T) {
	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	svc := NewRecommendService(Deps{DefaultLocale: "HI", Now: func() time.Time { return now }})

	raw := sampleRaw()
	raw["weather"] = map[string]any{"temperature": 20.0, "humidity": 60.0, "moisture": 50.0}
	r, err := svc.ComputeReport(context.Background(), raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.SeasonalCrops) == 0 || r.SeasonalCrops[0].CropID != "wheat" {
		t.Errorf("seasonal = %+v", r.SeasonalCrops)
	}
	if r.LocationAnalysis == nil || !r.LocationAnalysis.Matched || r.LocationAnalysis.PreferredCrops[0] != "प्याज" {
		t.Errorf("location = %+v", r.LocationAnalysis)
	}

	noLoc := sampleRaw()
	delete(noLoc, "location")
	r, _ = svc.ComputeReport(context.Background(), noLoc)
	if r.LocationAnalysis != nil || r.SeasonalCrops != nil {
		t.Errorf("optional sections without inputs: %+v %+v", r.LocationAnalysis, r.SeasonalCrops)
	}
}

func TestComputeReport_InvalidInput(t *testing.T) {
	raw := sampleRaw()
	raw["potassium"] = "plenty"
	_, err := NewRecommendService(Deps{}).ComputeReport(context.Background(), raw)
	var bad *scoring.InvalidInputError
	if !errors.As(err, &bad) || bad.Field != "potassium" {
		t.Fatalf("err = %v", err)
	}
}

func TestScoreCrops(t *testing.T) {
	svc := NewRecommendService(Deps{})
	soil := types.SoilSample{}
	for _, v := range []**float64{&soil.Ph, &soil.Nitrogen, &soil.Phosphorus, &soil.Potassium} {
		x := 6.5
		*v = &x
	}
	all := svc.ScoreCrops(soil, "", "")
	if len(all) != catalog.Default().Len() || all[0].Rank != 1 {
		t.Fatalf("scored %d, first rank %d", len(all), all[0].Rank)
	}
}

func TestCropAndLocation(t *testing.T) {
	svc := NewRecommendService(Deps{})
	if c, err := svc.Crop(" Onion "); err != nil || c.ID != "onion" {
		t.Errorf("Crop(onion) = %v, %v", c.ID, err)
	}
	var miss *catalog.LookupMissError
	if _, err := svc.Crop("castor"); !errors.As(err, &miss) {
		t.Errorf("Crop(castor) err = %v", err)
	}
	la := svc.ResolveLocation("Pune", "")
	if !la.Matched || la.Location != "Pune" {
		t.Errorf("ResolveLocation = %+v", la)
	}
	if la := svc.ResolveLocation("Atlantis", ""); la.Matched {
		t.Errorf("unknown location matched: %+v", la)
	}
}

type fieldRepo map[uint]entities.Field

func (r fieldRepo) Create(f *entities.Field) error { return nil }

func (r fieldRepo) FindByID(id uint) (*entities.Field, error) {
	f, ok := r[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return &f, nil
}

type readingRepo []entities.Measurement

func (r readingRepo) Create(context.Context, *entities.Measurement) error { return nil }

func (r readingRepo) Since(_ context.Context, fieldID uint, since time.Time) ([]entities.Measurement, error) {
	var out []entities.Measurement
	for _, m := range r {
		if m.FieldID == fieldID && !m.TakenAt.Before(since) {
			out = append(out, m)
		}
	}
	return out, nil
}

func f(v float64) *float64 { return &v }

func TestComputeFieldReport(t *testing.T) {
	now := time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	readings := readingRepo{
		{FieldID: 1, TakenAt: now.AddDate(0, 0, -3), Ph: f(6.4), Nitrogen: f(150), Phosphorus: f(14), Potassium: f(140)},
		{FieldID: 1, TakenAt: now.AddDate(0, 0, -1), Ph: f(6.6), Nitrogen: f(170), Phosphorus: f(16), Potassium: f(160), Humidity: f(85)},
		{FieldID: 1, TakenAt: now.AddDate(0, 0, -90), Ph: f(4.0), Nitrogen: f(10), Phosphorus: f(1), Potassium: f(10)},
		{FieldID: 2, TakenAt: now.AddDate(0, 0, -90), Ph: f(6.0)},
	}
	svc := NewRecommendService(Deps{
		Fields: fieldRepo{
			1: {FieldID: 1, Name: "North plot", Location: "Nashik", Locale: "mr"},
			2: {FieldID: 2, Name: "Old plot"},
		},
		Measures:      measuresvc.NewMeasureService(readings, clock),
		ReadingSource: "influxdb",
		Now:           clock,
	})

	r, err := svc.ComputeFieldReport(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("ComputeFieldReport: %v", err)
	}
	ts := r.TimeSeries
	if ts == nil || ts.Samples != 2 || ts.Source != "influxdb" || !ts.To.Equal(now.AddDate(0, 0, -1)) {
		t.Fatalf("time series = %+v", ts)
	}
	if *r.SoilAnalysis.Ph.Value != 6.5 || *r.SoilAnalysis.Nitrogen.Value != 160 {
		t.Errorf("averaged soil = %+v", r.SoilAnalysis)
	}
	if r.LocationAnalysis == nil || r.LocationAnalysis.Location != "Nashik" {
		t.Errorf("location = %+v", r.LocationAnalysis)
	}
	found := false
	for _, rf := range r.RiskFactors {
		found = found || rf.Factor == "Disease Risk (High Humidity)"
	}
	if !found {
		t.Errorf("weather from readings ignored: %+v", r.RiskFactors)
	}

	if _, err := svc.ComputeFieldReport(context.Background(), 9, 30); !errors.Is(err, ErrFieldNotFound) {
		t.Errorf("missing field err = %v", err)
	}
	if _, err := svc.ComputeFieldReport(context.Background(), 2, 30); !errors.Is(err, ErrNoReadings) {
		t.Errorf("empty window err = %v", err)
	}
	if _, err := svc.ComputeFieldReport(context.Background(), 2, 120); err == nil {
		t.Error("window without nutrients should fail validation")
	}
}

type slowKB struct{ delay time.Duration }

func (k slowKB) Search(context.Context, string, int) ([]entities.KBChunk, error) {
	time.Sleep(k.delay)
	return []entities.KBChunk{{Text: "late note"}}, nil
}

func TestComputeReport_DeadlineCoversKnowledgeBase(t *testing.T) {
	svc := NewRecommendService(Deps{
		Gateway: gateway(stubClient{adv: &types.Advisory{Summary: "fine"}}, 30*time.Millisecond),
		KB:      slowKB{delay: 600 * time.Millisecond},
	})
	start := time.Now()
	r, err := svc.ComputeReport(context.Background(), sampleRaw())
	took := time.Since(start)
	if err != nil {
		t.Fatal(err)
	}
	if took > 300*time.Millisecond {
		t.Errorf("report waited %v for a slow knowledge base", took)
	}
	if r.Source != types.SourceDeterministic || r.Advisory != nil {
		t.Errorf("source %q advisory %+v", r.Source, r.Advisory)
	}
}

func TestComputeReport_DepletedSoilRisks(t *testing.T) {
	r, err := NewRecommendService(Deps{}).ComputeReport(context.Background(),
		types.RawInput{"ph": 4.0, "nitrogen": 30, "phosphorus": 2, "potassium": 20})
	if err != nil {
		t.Fatal(err)
	}
	sev := map[string]types.Severity{}
	for _, rf := range r.RiskFactors {
		sev[rf.Factor] = rf.Severity
	}
	if _, ok := sev["Suboptimal Soil pH"]; !ok {
		t.Errorf("missing pH risk: %+v", r.RiskFactors)
	}
	if sev["Low Nitrogen Content"] != types.SeverityHigh {
		t.Errorf("nitrogen risk = %q", sev["Low Nitrogen Content"])
	}
	critical := 0
	for _, a := range r.ActionRecommendations {
		if a.Priority == types.SeverityCritical {
			critical++
		}
	}
	if critical != 1 {
		t.Errorf("critical actions = %d, want 1", critical)
	}
	for _, c := range r.CropRecommendations {
		if c.Suitability != 4*scoring.FloorPoints {
			t.Errorf("%s suitability %d", c.CropID, c.Suitability)
		}
	}
}
