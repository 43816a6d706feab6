package catalog

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"agroscore/pkg/recommend/types"
)

// Acceptable-band derivation. N/P/K widen multiplicatively, pH additively.
const (
	NutrientLowFactor  = 0.7
	NutrientHighFactor = 1.3
	PhTolerance        = 0.5
)

// LookupMissError is returned when a crop id is not in the catalog.
type LookupMissError struct{ ID string }

func (e *LookupMissError) Error() string { return fmt.Sprintf("crop %q not in catalog", e.ID) }

// Catalog is an ordered, read-only table of crop profiles.
// Load order is the tie-breaker for ranking, so it is never re-sorted.
type Catalog struct {
	crops []types.CropProfile
	index map[string]int
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog, building it on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(builtinCrops())
		if err != nil {
			panic("catalog: built-in table invalid: " + err.Error())
		}
		defaultCat = c
	})
	return defaultCat
}

// New validates profiles, derives acceptable bands and indexes them by id.
func New(profiles []types.CropProfile) (*Catalog, error) {
	if len(profiles) == 0 {
		return nil, errors.New("catalog: no crops")
	}
	c := &Catalog{crops: make([]types.CropProfile, 0, len(profiles)), index: make(map[string]int, len(profiles))}
	for i, p := range profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: row %d: empty id", i+1)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate crop id %q", p.ID)
		}
		for name, b := range map[string]types.Band{"ph": p.Ph, "nitrogen": p.Nitrogen, "phosphorus": p.Phosphorus, "potassium": p.Potassium} {
			if b.Min > b.Max {
				return nil, fmt.Errorf("catalog: %s: %s band min %.2f > max %.2f", p.ID, name, b.Min, b.Max)
			}
		}
		p.Names = maps.Clone(p.Names)
		derive(&p)
		c.index[p.ID] = len(c.crops)
		c.crops = append(c.crops, p)
	}
	return c, nil
}

func derive(p *types.CropProfile) {
	p.AcceptablePh = AcceptablePh(p.Ph)
	p.AcceptableNitrogen = AcceptableNutrient(p.Nitrogen)
	p.AcceptablePhosphorus = AcceptableNutrient(p.Phosphorus)
	p.AcceptablePotassium = AcceptableNutrient(p.Potassium)
}

// AcceptablePh widens an optimal pH band by PhTolerance on both sides.
func AcceptablePh(b types.Band) types.Band {
	return types.Band{Min: b.Min - PhTolerance, Max: b.Max + PhTolerance}
}

// AcceptableNutrient widens an optimal nutrient band by the low/high factors.
func AcceptableNutrient(b types.Band) types.Band {
	return types.Band{Min: b.Min * NutrientLowFactor, Max: b.Max * NutrientHighFactor}
}

func (c *Catalog) Lookup(id string) (types.CropProfile, bool) {
	i, ok := c.index[id]
	if !ok {
		return types.CropProfile{}, false
	}
	return clone(c.crops[i]), true
}

// Get is Lookup with a typed miss error.
func (c *Catalog) Get(id string) (types.CropProfile, error) {
	if p, ok := c.Lookup(id); ok {
		return p, nil
	}
	return types.CropProfile{}, &LookupMissError{ID: id}
}

// All returns the profiles in load order. The slice is a copy.
func (c *Catalog) All() []types.CropProfile {
	out := make([]types.CropProfile, len(c.crops))
	for i, p := range c.crops {
		out[i] = clone(p)
	}
	return out
}

func (c *Catalog) Len() int { return len(c.crops) }

func clone(p types.CropProfile) types.CropProfile {
	p.Names = maps.Clone(p.Names)
	return p
}
