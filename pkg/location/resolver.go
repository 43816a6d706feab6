package location

import (
	"errors"
	"strings"

	"agroscore/pkg/recommend/types"
)

// Entry pairs a lower-case substring pattern with the profile it selects.
type Entry struct {
	Pattern string
	Profile types.LocationProfile
}

// Resolver matches free-text locations against an ordered table.
// The first entry whose pattern is contained in the input wins, so
// specific places must be listed before the regions that contain them.
type Resolver struct {
	entries  []Entry
	fallback types.LocationProfile
}

func NewResolver(entries []Entry, fallback types.LocationProfile) (*Resolver, error) {
	if len(entries) == 0 {
		return nil, errors.New("location: empty table")
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		p := strings.ToLower(strings.TrimSpace(e.Pattern))
		if p == "" {
			return nil, errors.New("location: empty pattern for region " + e.Profile.Region)
		}
		out = append(out, Entry{Pattern: p, Profile: e.Profile})
	}
	return &Resolver{entries: out, fallback: fallback}, nil
}

// Resolve returns the profile for loc and whether a pattern matched.
// Unmatched or empty input resolves to the default profile.
func (r *Resolver) Resolve(loc string) (types.LocationProfile, bool) {
	key := strings.ToLower(strings.TrimSpace(loc))
	if key == "" {
		return copyProfile(r.fallback), false
	}
	for _, e := range r.entries {
		if strings.Contains(key, e.Pattern) {
			return copyProfile(e.Profile), true
		}
	}
	return copyProfile(r.fallback), false
}

func (r *Resolver) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = Entry{Pattern: e.Pattern, Profile: copyProfile(e.Profile)}
	}
	return out
}

func (r *Resolver) Default() types.LocationProfile { return copyProfile(r.fallback) }

func copyProfile(p types.LocationProfile) types.LocationProfile {
	p.PreferredCrops = append([]types.PreferredCrop(nil), p.PreferredCrops...)
	p.MarketAdvantages = append([]string(nil), p.MarketAdvantages...)
	p.Challenges = append([]string(nil), p.Challenges...)
	p.Recommendations = append([]string(nil), p.Recommendations...)
	return p
}
