package catalog

import "agroscore/pkg/recommend/types"

// Confidence publish thresholds per crop group. Carried over as-is from the
// field trials table; no derivation is recorded for them.
const (
	CerealThreshold    = 70
	PulseThreshold     = 70
	CashCropThreshold  = 65
	OilseedThreshold   = 65
	VegetableThreshold = 68
)

func band(min, max float64) types.Band { return types.Band{Min: min, Max: max} }

func bandPtr(min, max float64) *types.Band { b := band(min, max); return &b }

func crop(id, en, hi string, s types.Season, c types.Category, ph, n, p, k types.Band, market, invest types.Level) types.CropProfile {
	return types.CropProfile{
		ID:                 id,
		Names:              map[string]string{"en": en, "hi": hi},
		Season:             s,
		Category:           c,
		Ph:                 ph,
		Nitrogen:           n,
		Phosphorus:         p,
		Potassium:          k,
		MarketPotential:    market,
		InvestmentRequired: invest,
	}
}

// weather attaches the tolerance bands used by the seasonal confidence path.
func weather(p types.CropProfile, temp, humidity, moisture types.Band, threshold int) types.CropProfile {
	p.Temperature = &temp
	p.Humidity = &humidity
	p.Moisture = &moisture
	p.PublishThreshold = threshold
	return p
}

// builtinCrops is the default table. Units: N/P/K kg/ha, moisture and humidity %, temperature °C.
// Every lower bound keeps pH >= 5.0, N >= 50, P >= 5 and K >= 40 so that badly depleted
// soils land on the floor tier for every crop.
func builtinCrops() []types.CropProfile {
	return []types.CropProfile{
		weather(crop("rice", "Rice", "धान", types.Kharif, types.Cereal,
			band(5.5, 7.0), band(100, 150), band(15, 30), band(80, 120), types.High, types.Medium),
			band(20, 35), band(60, 90), band(60, 100), CerealThreshold),
		weather(crop("wheat", "Wheat", "गेहूं", types.Rabi, types.Cereal,
			band(6.0, 7.5), band(120, 180), band(20, 40), band(100, 150), types.High, types.Medium),
			band(10, 25), band(40, 70), band(40, 70), CerealThreshold),
		weather(crop("maize", "Maize", "मक्का", types.Kharif, types.Cereal,
			band(5.8, 7.0), band(120, 180), band(15, 30), band(80, 140), types.Medium, types.Medium),
			band(18, 32), band(50, 80), band(40, 70), CerealThreshold),
		crop("bajra", "Pearl Millet", "बाजरा", types.Kharif, types.Cereal,
			band(6.5, 8.0), band(60, 100), band(10, 25), band(50, 100), types.Medium, types.Low),
		crop("jowar", "Sorghum", "ज्वार", types.Kharif, types.Cereal,
			band(6.0, 8.0), band(80, 120), band(10, 30), band(60, 120), types.Medium, types.Low),
		weather(crop("chickpea", "Chickpea", "चना", types.Rabi, types.Pulse,
			band(6.0, 8.0), band(50, 80), band(15, 30), band(60, 100), types.High, types.Low),
			band(15, 30), band(30, 60), band(30, 60), PulseThreshold),
		crop("pigeonpea", "Pigeon Pea", "अरहर", types.Kharif, types.Pulse,
			band(6.0, 7.5), band(50, 80), band(12, 25), band(50, 90), types.High, types.Low),
		weather(crop("moong", "Green Gram", "मूंग", types.Zaid, types.Pulse,
			band(6.2, 7.2), band(50, 70), band(10, 25), band(40, 80), types.Medium, types.Low),
			band(25, 35), band(50, 75), band(30, 60), PulseThreshold),
		weather(crop("soybean", "Soybean", "सोयाबीन", types.Kharif, types.Oilseed,
			band(6.0, 7.5), band(60, 100), band(20, 40), band(60, 120), types.High, types.Medium),
			band(20, 32), band(60, 85), band(50, 80), OilseedThreshold),
		crop("mustard", "Mustard", "सरसों", types.Rabi, types.Oilseed,
			band(6.0, 7.5), band(80, 120), band(15, 30), band(60, 100), types.Medium, types.Low),
		crop("groundnut", "Groundnut", "मूंगफली", types.Kharif, types.Oilseed,
			band(6.0, 7.0), band(50, 80), band(20, 40), band(80, 120), types.High, types.Medium),
		weather(crop("cotton", "Cotton", "कपास", types.Kharif, types.CashCrop,
			band(6.0, 8.0), band(100, 160), band(20, 40), band(80, 150), types.High, types.High),
			band(21, 35), band(50, 80), band(40, 70), CashCropThreshold),
		weather(crop("sugarcane", "Sugarcane", "गन्ना", types.YearRound, types.CashCrop,
			band(6.5, 7.5), band(150, 250), band(30, 60), band(120, 200), types.High, types.High),
			band(20, 35), band(60, 85), band(60, 90), CashCropThreshold),
		crop("jute", "Jute", "जूट", types.Kharif, types.CashCrop,
			band(6.0, 7.5), band(60, 100), band(15, 30), band(40, 80), types.Medium, types.Medium),
		weather(crop("onion", "Onion", "प्याज", types.Rabi, types.Vegetable,
			band(6.0, 7.5), band(140, 200), band(10, 20), band(100, 200), types.High, types.Medium),
			band(13, 30), band(50, 75), band(40, 70), VegetableThreshold),
		crop("tomato", "Tomato", "टमाटर", types.YearRound, types.Vegetable,
			band(6.0, 7.0), band(100, 150), band(25, 50), band(120, 200), types.High, types.Medium),
		crop("potato", "Potato", "आलू", types.Rabi, types.Vegetable,
			band(5.2, 6.5), band(120, 180), band(40, 80), band(120, 200), types.High, types.High),
		crop("grapes", "Grapes", "अंगूर", types.YearRound, types.Fruit,
			band(6.5, 7.5), band(100, 150), band(30, 60), band(150, 250), types.High, types.High),
		crop("banana", "Banana", "केला", types.YearRound, types.Fruit,
			band(6.0, 7.5), band(150, 250), band(30, 60), band(200, 350), types.High, types.High),
		crop("mango", "Mango", "आम", types.YearRound, types.Fruit,
			band(5.5, 7.5), band(80, 120), band(20, 40), band(80, 150), types.High, types.High),
		crop("pomegranate", "Pomegranate", "अनार", types.YearRound, types.Fruit,
			band(6.5, 7.5), band(80, 120), band(20, 40), band(80, 160), types.High, types.High),
		crop("turmeric", "Turmeric", "हल्दी", types.Kharif, types.Spice,
			band(5.5, 7.5), band(100, 150), band(40, 80), band(100, 150), types.High, types.Medium),
		crop("chilli", "Chilli", "मिर्च", types.Kharif, types.Spice,
			band(6.0, 7.0), band(100, 150), band(30, 60), band(80, 120), types.High, types.Medium),
		crop("ashwagandha", "Ashwagandha", "अश्वगंधा", types.Kharif, types.Medicinal,
			band(7.0, 8.0), band(50, 80), band(15, 30), band(40, 80), types.Medium, types.Low),
		crop("aloe_vera", "Aloe Vera", "एलोवेरा", types.YearRound, types.Medicinal,
			band(7.0, 8.5), band(50, 80), band(10, 25), band(40, 80), types.Medium, types.Low),
	}
}
