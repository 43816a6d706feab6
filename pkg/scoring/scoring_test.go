package scoring

import (
	"errors"
	"reflect"
	"testing"

	"agroscore/pkg/catalog"
	"agroscore/pkg/location"
	"agroscore/pkg/recommend/types"
)

func f(v float64) *float64 { return &v }

func sample(ph, n, p, k float64) types.SoilSample {
	return types.SoilSample{Ph: f(ph), Nitrogen: f(n), Phosphorus: f(p), Potassium: f(k)}
}

func scoreOf(t *testing.T, out []types.ScoredCrop, id string) types.ScoredCrop {
	t.Helper()
	for _, c := range out {
		if c.CropID == id {
			return c
		}
	}
	t.Fatalf("crop %q not scored", id)
	return types.ScoredCrop{}
}

func TestScore_AllAxesOptimal(t *testing.T) {
	out := Score(catalog.Default().All(), sample(6.5, 160, 15, 150), nil, "en")
	onion := scoreOf(t, out, "onion")
	if onion.Score != 100 {
		t.Fatalf("onion score = %d, want 100 (rationale %v)", onion.Score, onion.Rationale)
	}
	if len(onion.Rationale) != 4 {
		t.Errorf("rationale = %v, want one line per axis", onion.Rationale)
	}
}

func TestScore_DepletedSoilFloorsEveryCrop(t *testing.T) {
	out := Score(catalog.Default().All(), sample(4.0, 30, 2, 20), nil, "en")
	if len(out) != catalog.Default().Len() {
		t.Fatalf("scored %d crops, want %d", len(out), catalog.Default().Len())
	}
	for _, c := range out {
		if c.Score != 4*FloorPoints {
			t.Errorf("%s score = %d, want %d", c.CropID, c.Score, 4*FloorPoints)
		}
	}
}

func TestScore_PreferredLocationBonus(t *testing.T) {
	soil := sample(6.5, 160, 15, 150)
	nashik, ok := location.Default().Resolve("Nashik")
	if !ok {
		t.Fatal("Nashik did not resolve")
	}
	crops := catalog.Default().All()
	plain := Score(crops, soil, nil, "en")
	local := Score(crops, soil, &nashik, "en")

	// onion is already at the cap
	if got := scoreOf(t, local, "onion").Score; got != MaxScore {
		t.Errorf("onion with Nashik = %d, want %d", got, MaxScore)
	}
	// grapes: pH optimal, N acceptable, P outside, K optimal = 70
	if got := scoreOf(t, plain, "grapes").Score; got != 70 {
		t.Fatalf("grapes without location = %d, want 70", got)
	}
	if got := scoreOf(t, local, "grapes").Score; got != 80 {
		t.Errorf("grapes with Nashik = %d, want 80", got)
	}
	// wheat is not preferred in Nashik
	if a, b := scoreOf(t, plain, "wheat").Score, scoreOf(t, local, "wheat").Score; a != b {
		t.Errorf("wheat changed with location: %d -> %d", a, b)
	}
}

func TestScore_MissingAxisScoresFloor(t *testing.T) {
	soil := sample(6.5, 160, 15, 150)
	soil.Nitrogen = nil
	onion := scoreOf(t, Score(catalog.Default().All(), soil, nil, "en"), "onion")
	if onion.Score != 3*OptimalPoints+FloorPoints {
		t.Errorf("onion score = %d, want %d", onion.Score, 3*OptimalPoints+FloorPoints)
	}
	if onion.Rationale[1] != "Nitrogen not measured" {
		t.Errorf("rationale[1] = %q", onion.Rationale[1])
	}
}

func TestScore_Deterministic(t *testing.T) {
	nashik, _ := location.Default().Resolve("nashik")
	soil := sample(7.1, 120, 22, 95)
	a := Rank(Score(catalog.Default().All(), soil, &nashik, "hi"), TopN)
	b := Rank(Score(catalog.Default().All(), soil, &nashik, "hi"), TopN)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs over the same input differ")
	}
}

func TestClassify_BoundsInclusive(t *testing.T) {
	opt := types.Band{Min: 10, Max: 20}
	acc := types.Band{Min: 7, Max: 26}
	tests := []struct {
		v    *float64
		want Tier
	}{
		{nil, TierMissing},
		{f(10), TierOptimal},
		{f(20), TierOptimal},
		{f(9.99), TierAcceptable},
		{f(7), TierAcceptable},
		{f(26), TierAcceptable},
		{f(6.99), TierOutside},
		{f(26.01), TierOutside},
	}
	for _, tc := range tests {
		if got := Classify(tc.v, opt, acc); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestRank_StableAndNumbered(t *testing.T) {
	in := []types.ScoredCrop{
		{CropID: "a", Score: 50},
		{CropID: "b", Score: 90},
		{CropID: "c", Score: 50},
		{CropID: "d", Score: 90},
		{CropID: "e", Score: 10},
	}
	got := Rank(in, 0)
	want := []string{"b", "d", "a", "c", "e"}
	for i, c := range got {
		if c.CropID != want[i] || c.Rank != i+1 {
			t.Errorf("pos %d = %s rank %d, want %s rank %d", i, c.CropID, c.Rank, want[i], i+1)
		}
	}
	if in[0].Rank != 0 {
		t.Error("Rank mutated its input")
	}
	if top := Rank(in, 2); len(top) != 2 || top[1].CropID != "d" {
		t.Errorf("Rank(in, 2) = %+v", top)
	}
}

func TestRank_TopNDescending(t *testing.T) {
	out := Rank(Score(catalog.Default().All(), sample(6.8, 130, 25, 120), nil, "en"), TopN)
	if len(out) != TopN {
		t.Fatalf("len = %d, want %d", len(out), TopN)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Score > out[i-1].Score {
			t.Errorf("rank %d (%d) above rank %d (%d)", i+1, out[i].Score, i, out[i-1].Score)
		}
	}
}

func TestNormalize(t *testing.T) {
	in, err := Normalize(types.RawInput{
		"ph": 6.5, "nitrogen": "160", "phosphorus": 15, "potassium": 150.0,
		"location": "  Nashik, Maharashtra ",
		"weather":  map[string]any{"temp": 24.0, "humidity": 60.0},
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if *in.Soil.Nitrogen != 160 || in.Location != "Nashik, Maharashtra" || in.LocationKey != "nashik, maharashtra" {
		t.Errorf("unexpected input %+v", in)
	}
	if in.Weather == nil || *in.Weather.Temperature != 24 || in.Weather.Moisture != nil {
		t.Errorf("weather = %+v", in.Weather)
	}
	if in.Locale != DefaultLocale {
		t.Errorf("locale = %q", in.Locale)
	}
	if in.Soil.OrganicMatter != nil {
		t.Error("organic matter should be absent")
	}
}

func TestNormalize_Rejects(t *testing.T) {
	base := func() types.RawInput {
		return types.RawInput{"ph": 6.5, "nitrogen": 160, "phosphorus": 15, "potassium": 150}
	}
	tests := []struct {
		name  string
		edit  func(types.RawInput)
		field string
	}{
		{"missing ph", func(r types.RawInput) { delete(r, "ph") }, "ph"},
		{"null potassium", func(r types.RawInput) { r["potassium"] = nil }, "potassium"},
		{"text nitrogen", func(r types.RawInput) { r["nitrogen"] = "lots" }, "nitrogen"},
		{"bool phosphorus", func(r types.RawInput) { r["phosphorus"] = true }, "phosphorus"},
		{"numeric location", func(r types.RawInput) { r["location"] = 12 }, "location"},
		{"weather list", func(r types.RawInput) { r["weather"] = []any{1} }, "weather"},
		{"bad humidity", func(r types.RawInput) { r["weather"] = map[string]any{"humidity": "wet"} }, "humidity"},
		{"bad organic", func(r types.RawInput) { r["organic_matter"] = "NaN" }, "organic_matter"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := base()
			tc.edit(raw)
			_, err := Normalize(raw)
			var bad *InvalidInputError
			if !errors.As(err, &bad) {
				t.Fatalf("err = %v, want *InvalidInputError", err)
			}
			if bad.Field != tc.field {
				t.Errorf("field = %q, want %q", bad.Field, tc.field)
			}
		})
	}
}
