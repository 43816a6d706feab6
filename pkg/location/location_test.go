package location

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"agroscore/pkg/recommend/types"
)

func TestResolve_FirstMatchWins(t *testing.T) {
	r := Default()
	tests := []struct {
		in      string
		region  string
		matched bool
	}{
		{"Nashik", "Nashik (North Maharashtra)", true},
		{"  NASHIK, Maharashtra ", "Nashik (North Maharashtra)", true},
		{"Lasalgaon market", "Nashik (North Maharashtra)", true},
		{"Nagpur", "Vidarbha", true},
		{"Ludhiana, Punjab", punjab.Region, true},
		{"somewhere in Maharashtra", maharashtra.Region, true},
		{"Atlantis", DefaultProfile.Region, false},
		{"", DefaultProfile.Region, false},
	}
	for _, tc := range tests {
		p, ok := r.Resolve(tc.in)
		if p.Region != tc.region || ok != tc.matched {
			t.Errorf("Resolve(%q) = %q,%v want %q,%v", tc.in, p.Region, ok, tc.region, tc.matched)
		}
	}
}

// Every built-in pattern must be reachable: no earlier pattern may be a
// substring of a later one.
func TestBuiltinEntries_NoShadowing(t *testing.T) {
	entries := Default().Entries()
	for i, e := range entries {
		p, ok := Default().Resolve(e.Pattern)
		if !ok {
			t.Fatalf("pattern %q does not match itself", e.Pattern)
		}
		if p.Region != e.Profile.Region {
			t.Errorf("pattern %d %q resolves to %q, want %q", i, e.Pattern, p.Region, e.Profile.Region)
		}
	}
}

func TestResolve_ReturnsCopies(t *testing.T) {
	p, _ := Default().Resolve("nashik")
	p.PreferredCrops[0].CropID = "changed"
	q, _ := Default().Resolve("nashik")
	if q.PreferredCrops[0].CropID != "onion" {
		t.Fatal("resolver table was mutated through a result")
	}
}

func TestPrefers(t *testing.T) {
	p, _ := Default().Resolve("nashik")
	if !p.Prefers("onion") || p.Prefers("wheat") {
		t.Error("Nashik preference mismatch")
	}
	var none *types.LocationProfile
	if none.Prefers("onion") {
		t.Error("nil profile prefers nothing")
	}
}

func TestNewResolver_Rejects(t *testing.T) {
	if _, err := NewResolver(nil, DefaultProfile); err == nil {
		t.Error("empty table: want error")
	}
	if _, err := NewResolver([]Entry{{Pattern: "  ", Profile: nashik}}, DefaultProfile); err == nil {
		t.Error("blank pattern: want error")
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
entries:
  - pattern: Sangamner
    profile:
      region: Sangamner Taluka
      climate: Semi-arid
      preferred:
        - {crop: onion, priority: 1}
        - {crop: pomegranate, priority: 2}
      challenges: [Water scarcity]
  - pattern: ahmednagar
    profile:
      region: Ahmednagar District
`
	path := filepath.Join(t.TempDir(), "locations.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	p, ok := r.Resolve("sangamner, ahmednagar")
	if !ok || p.Region != "Sangamner Taluka" {
		t.Fatalf("got %q,%v", p.Region, ok)
	}
	if len(p.PreferredCrops) != 2 || p.PreferredCrops[1] != (types.PreferredCrop{CropID: "pomegranate", Priority: 2}) {
		t.Errorf("preferred = %+v", p.PreferredCrops)
	}
	if d, ok := r.Resolve("Goa"); ok || d.Region != DefaultProfile.Region {
		t.Errorf("fallback = %q,%v", d.Region, ok)
	}
}

func TestLoadYAML_Bad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("entries: [pattern"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadYAML(path); err == nil {
		t.Error("malformed yaml: want error")
	}
}

func TestDefault_ConcurrentFirstUse(t *testing.T) {
	const n = 32
	start := make(chan struct{})
	got := make([]*Resolver, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			got[i] = Default()
			got[i].Resolve("nashik")
		}(i)
	}
	close(start)
	wg.Wait()
	for i, r := range got {
		if r == nil || r != got[0] {
			t.Fatalf("goroutine %d got %p, want %p", i, r, got[0])
		}
	}
}
