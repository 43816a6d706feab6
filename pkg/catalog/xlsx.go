package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"agroscore/pkg/recommend/types"
)

// SheetName is the worksheet LoadXLSX reads.
const SheetName = "crops"

// LoadXLSX builds a catalog from the "crops" sheet of an Excel workbook.
// The first row is a header; rows are kept in sheet order.
func LoadXLSX(path string) (*Catalog, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer x.Close()

	rows, err := x.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", SheetName, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no crop rows", SheetName)
	}

	norm := func(s string) string {
		s = strings.TrimSpace(strings.TrimPrefix(s, "\uFEFF"))
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		return strings.ReplaceAll(s, "_", "")
	}
	hmap := map[string]int{}
	for i, h := range rows[0] {
		hmap[norm(h)] = i
	}
	for _, req := range []string{"id", "name_en", "season", "category", "ph_min", "ph_max", "n_min", "n_max", "p_min", "p_max", "k_min", "k_max"} {
		if _, ok := hmap[norm(req)]; !ok {
			return nil, fmt.Errorf("sheet %q missing column %q; found %v", SheetName, req, rows[0])
		}
	}

	var profiles []types.CropProfile
	for n, rec := range rows[1:] {
		line := n + 2
		get := func(col string) string {
			idx, ok := hmap[norm(col)]
			if !ok || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		if get("id") == "" {
			continue // blank row
		}
		num := func(col string) (float64, error) {
			v, err := strconv.ParseFloat(get(col), 64)
			if err != nil {
				return 0, fmt.Errorf("row %d: column %s: %w", line, col, err)
			}
			return v, nil
		}
		pair := func(lo, hi string) (types.Band, error) {
			a, err := num(lo)
			if err != nil {
				return types.Band{}, err
			}
			b, err := num(hi)
			if err != nil {
				return types.Band{}, err
			}
			return band(a, b), nil
		}
		optPair := func(lo, hi string) (*types.Band, error) {
			if get(lo) == "" && get(hi) == "" {
				return nil, nil
			}
			b, err := pair(lo, hi)
			if err != nil {
				return nil, err
			}
			return bandPtr(b.Min, b.Max), nil
		}

		p := types.CropProfile{
			ID:                 get("id"),
			Names:              map[string]string{"en": get("name_en")},
			Season:             seasonOf(get("season")),
			Category:           types.Category(strings.ToLower(get("category"))),
			MarketPotential:    level(get("market")),
			InvestmentRequired: level(get("investment")),
		}
		if hi := get("name_hi"); hi != "" {
			p.Names["hi"] = hi
		}
		if !validSeason(p.Season) {
			return nil, fmt.Errorf("row %d: unknown season %q", line, p.Season)
		}
		if !validCategory(p.Category) {
			return nil, fmt.Errorf("row %d: unknown category %q", line, p.Category)
		}
		if p.Ph, err = pair("ph_min", "ph_max"); err != nil {
			return nil, err
		}
		if p.Nitrogen, err = pair("n_min", "n_max"); err != nil {
			return nil, err
		}
		if p.Phosphorus, err = pair("p_min", "p_max"); err != nil {
			return nil, err
		}
		if p.Potassium, err = pair("k_min", "k_max"); err != nil {
			return nil, err
		}
		if p.Temperature, err = optPair("temp_min", "temp_max"); err != nil {
			return nil, err
		}
		if p.Humidity, err = optPair("humidity_min", "humidity_max"); err != nil {
			return nil, err
		}
		if p.Moisture, err = optPair("moisture_min", "moisture_max"); err != nil {
			return nil, err
		}
		if t := get("threshold"); t != "" {
			if p.PublishThreshold, err = strconv.Atoi(t); err != nil {
				return nil, fmt.Errorf("row %d: column threshold: %w", line, err)
			}
		}
		profiles = append(profiles, p)
	}
	return New(profiles)
}

func level(s string) types.Level {
	switch types.Level(strings.ToLower(s)) {
	case types.High:
		return types.High
	case types.Low:
		return types.Low
	default:
		return types.Medium
	}
}

// seasonOf matches season names case-insensitively; unknown names pass
// through for validSeason to reject.
func seasonOf(s string) types.Season {
	for _, known := range []types.Season{types.Kharif, types.Rabi, types.Zaid, types.YearRound} {
		if strings.EqualFold(s, string(known)) {
			return known
		}
	}
	return types.Season(s)
}

func validSeason(s types.Season) bool {
	switch s {
	case types.Kharif, types.Rabi, types.Zaid, types.YearRound:
		return true
	}
	return false
}

func validCategory(c types.Category) bool {
	switch c {
	case types.Cereal, types.Pulse, types.Oilseed, types.CashCrop, types.Vegetable, types.Fruit, types.Spice, types.Medicinal:
		return true
	}
	return false
}
