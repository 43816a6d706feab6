package location

import (
	"sync"

	"agroscore/pkg/recommend/types"
)

func preferred(ids ...string) []types.PreferredCrop {
	out := make([]types.PreferredCrop, len(ids))
	for i, id := range ids {
		out[i] = types.PreferredCrop{CropID: id, Priority: i + 1}
	}
	return out
}

var (
	nashik = types.LocationProfile{
		Region:           "Nashik (North Maharashtra)",
		Climate:          "Semi-arid, mild winters, monsoon June to September",
		Soil:             "Medium black to red lateritic soils",
		PreferredCrops:   preferred("onion", "grapes", "tomato", "pomegranate", "sugarcane"),
		MarketAdvantages: []string{"Lasalgaon onion market nearby", "Established grape export chain"},
		Challenges:       []string{"Erratic monsoon onset", "Onion price volatility"},
		Recommendations:  []string{"Stagger onion transplanting to spread harvest", "Use drip irrigation for vineyards"},
	}
	pune = types.LocationProfile{
		Region:           "Pune (Western Maharashtra)",
		Climate:          "Tropical wet and dry",
		Soil:             "Deep black cotton soils",
		PreferredCrops:   preferred("sugarcane", "jowar", "onion", "tomato", "pomegranate"),
		MarketAdvantages: []string{"Large urban vegetable demand", "Sugar cooperatives"},
		Challenges:       []string{"Groundwater depletion"},
		Recommendations:  []string{"Adopt trash mulching in sugarcane"},
	}
	vidarbha = types.LocationProfile{
		Region:           "Vidarbha",
		Climate:          "Hot semi-arid, high summer temperatures",
		Soil:             "Black regur soils",
		PreferredCrops:   preferred("cotton", "soybean", "pigeonpea", "chickpea"),
		MarketAdvantages: []string{"Cotton ginning clusters", "Soybean processing plants"},
		Challenges:       []string{"Rain-fed dependence", "Pink bollworm pressure"},
		Recommendations:  []string{"Intercrop cotton with pigeon pea", "Use pheromone traps for bollworm"},
	}
	marathwada = types.LocationProfile{
		Region:           "Marathwada",
		Climate:          "Semi-arid, drought-prone",
		Soil:             "Shallow to medium black soils",
		PreferredCrops:   preferred("soybean", "cotton", "pigeonpea", "jowar", "bajra"),
		MarketAdvantages: []string{"Pulse mills in Latur"},
		Challenges:       []string{"Recurrent drought"},
		Recommendations:  []string{"Prefer short-duration varieties", "Build farm ponds"},
	}
	kolhapur = types.LocationProfile{
		Region:           "Kolhapur (South Maharashtra)",
		Climate:          "Humid, heavy monsoon",
		Soil:             "Alluvial and medium black soils",
		PreferredCrops:   preferred("sugarcane", "rice", "turmeric", "groundnut"),
		MarketAdvantages: []string{"Jaggery market", "Sangli turmeric market"},
		Challenges:       []string{"Waterlogging in low-lying fields"},
		Recommendations:  []string{"Improve field drainage before monsoon"},
	}
	maharashtra = types.LocationProfile{
		Region:           "Maharashtra",
		Climate:          "Tropical monsoon",
		Soil:             "Black cotton soils",
		PreferredCrops:   preferred("cotton", "soybean", "sugarcane", "onion", "jowar"),
		MarketAdvantages: []string{"Well-developed APMC network"},
		Challenges:       []string{"Uneven rainfall distribution"},
		Recommendations:  []string{"Match crop duration to local rainfall"},
	}
	punjab = types.LocationProfile{
		Region:           "Punjab",
		Climate:          "Sub-tropical, cold winters",
		Soil:             "Alluvial loam",
		PreferredCrops:   preferred("wheat", "rice", "maize", "cotton", "potato"),
		MarketAdvantages: []string{"Assured MSP procurement for wheat and rice"},
		Challenges:       []string{"Falling water table", "Residue burning"},
		Recommendations:  []string{"Diversify from paddy to maize", "Use happy seeder for residue"},
	}
	haryana = types.LocationProfile{
		Region:           "Haryana",
		Climate:          "Sub-tropical, semi-arid",
		Soil:             "Alluvial sandy loam",
		PreferredCrops:   preferred("wheat", "mustard", "bajra", "cotton", "rice"),
		MarketAdvantages: []string{"Proximity to Delhi markets"},
		Challenges:       []string{"Soil salinity in southern districts"},
		Recommendations:  []string{"Apply gypsum on saline-sodic patches"},
	}
	upper = types.LocationProfile{
		Region:           "Indo-Gangetic Plains",
		Climate:          "Humid sub-tropical",
		Soil:             "Deep alluvium",
		PreferredCrops:   preferred("wheat", "rice", "sugarcane", "potato", "mustard"),
		MarketAdvantages: []string{"Dense rural markets", "Sugar mills"},
		Challenges:       []string{"Small fragmented holdings"},
		Recommendations:  []string{"Use zero-till wheat after rice"},
	}
	bengal = types.LocationProfile{
		Region:           "Eastern Gangetic Delta",
		Climate:          "Humid tropical, heavy monsoon",
		Soil:             "New alluvium",
		PreferredCrops:   preferred("rice", "jute", "potato", "mustard"),
		MarketAdvantages: []string{"Jute mills around Kolkata"},
		Challenges:       []string{"Flooding", "High humidity disease pressure"},
		Recommendations:  []string{"Choose submergence-tolerant rice varieties"},
	}
	gujarat = types.LocationProfile{
		Region:           "Gujarat",
		Climate:          "Arid to semi-arid",
		Soil:             "Medium black and sandy soils",
		PreferredCrops:   preferred("groundnut", "cotton", "bajra", "castor", "mango"),
		MarketAdvantages: []string{"Oil mills in Saurashtra", "Port access for exports"},
		Challenges:       []string{"Low rainfall in Kutch"},
		Recommendations:  []string{"Use micro-irrigation subsidies"},
	}
	rajasthan = types.LocationProfile{
		Region:           "Rajasthan",
		Climate:          "Arid, extreme temperatures",
		Soil:             "Sandy desert soils",
		PreferredCrops:   preferred("bajra", "mustard", "chickpea", "moong", "aloe_vera"),
		MarketAdvantages: []string{"Mustard oil processing"},
		Challenges:       []string{"Water scarcity", "Wind erosion"},
		Recommendations:  []string{"Plant windbreaks", "Conserve moisture with mulching"},
	}
	madhya = types.LocationProfile{
		Region:           "Central India (Malwa)",
		Climate:          "Sub-tropical, moderate rainfall",
		Soil:             "Deep black soils",
		PreferredCrops:   preferred("soybean", "wheat", "chickpea", "maize", "ashwagandha"),
		MarketAdvantages: []string{"Soybean processing hub in Indore"},
		Challenges:       []string{"Waterlogging in heavy soils"},
		Recommendations:  []string{"Use broad bed furrow planting for soybean"},
	}
	south = types.LocationProfile{
		Region:           "Deccan Plateau (South)",
		Climate:          "Tropical semi-arid",
		Soil:             "Red and black soils",
		PreferredCrops:   preferred("rice", "chilli", "cotton", "turmeric", "groundnut"),
		MarketAdvantages: []string{"Guntur chilli market"},
		Challenges:       []string{"Cyclones along the coast"},
		Recommendations:  []string{"Insure kharif crops against cyclone loss"},
	}
	tamil = types.LocationProfile{
		Region:           "Tamil Nadu",
		Climate:          "Tropical, north-east monsoon",
		Soil:             "Red loam and alluvium",
		PreferredCrops:   preferred("rice", "banana", "sugarcane", "turmeric", "groundnut"),
		MarketAdvantages: []string{"Erode turmeric market"},
		Challenges:       []string{"Dependence on north-east monsoon"},
		Recommendations:  []string{"Use SRI method for rice"},
	}
	kerala = types.LocationProfile{
		Region:           "Kerala",
		Climate:          "Humid tropical",
		Soil:             "Laterite soils, acidic",
		PreferredCrops:   preferred("banana", "rice", "turmeric", "mango"),
		MarketAdvantages: []string{"Spice export network"},
		Challenges:       []string{"Soil acidity", "High humidity"},
		Recommendations:  []string{"Lime acidic laterite soils"},
	}
	karnataka = types.LocationProfile{
		Region:           "Karnataka",
		Climate:          "Tropical, varied",
		Soil:             "Red sandy loam",
		PreferredCrops:   preferred("maize", "jowar", "sugarcane", "tomato", "mango"),
		MarketAdvantages: []string{"Bengaluru vegetable demand"},
		Challenges:       []string{"Dry spells in north Karnataka"},
		Recommendations:  []string{"Use drought-tolerant maize hybrids"},
	}
	eastern = types.LocationProfile{
		Region:           "Eastern Plateau",
		Climate:          "Humid sub-tropical, high rainfall",
		Soil:             "Red and laterite soils",
		PreferredCrops:   preferred("rice", "pigeonpea", "maize", "turmeric"),
		MarketAdvantages: []string{"Tribal produce cooperatives"},
		Challenges:       []string{"Acidic uplands"},
		Recommendations:  []string{"Apply lime on upland rice fields"},
	}
	northeast = types.LocationProfile{
		Region:           "North-East",
		Climate:          "Humid, very high rainfall",
		Soil:             "Acidic hill soils",
		PreferredCrops:   preferred("rice", "turmeric", "jute", "banana"),
		MarketAdvantages: []string{"Organic produce premium"},
		Challenges:       []string{"Poor road connectivity"},
		Recommendations:  []string{"Register for organic certification"},
	}

	// DefaultProfile is returned when no pattern matches.
	DefaultProfile = types.LocationProfile{
		Region:          "General (India)",
		Climate:         "Varied",
		Soil:            "Varied",
		Recommendations: []string{"Test soil every season", "Follow state agriculture department crop calendar"},
	}
)

func builtinEntries() []Entry {
	return []Entry{
		{"nashik", nashik},
		{"lasalgaon", nashik},
		{"pune", pune},
		{"satara", pune},
		{"ahmednagar", pune},
		{"nagpur", vidarbha},
		{"amravati", vidarbha},
		{"akola", vidarbha},
		{"yavatmal", vidarbha},
		{"aurangabad", marathwada},
		{"latur", marathwada},
		{"beed", marathwada},
		{"kolhapur", kolhapur},
		{"sangli", kolhapur},
		{"maharashtra", maharashtra},
		{"ludhiana", punjab},
		{"amritsar", punjab},
		{"punjab", punjab},
		{"karnal", haryana},
		{"haryana", haryana},
		{"lucknow", upper},
		{"uttar pradesh", upper},
		{"patna", upper},
		{"bihar", upper},
		{"kolkata", bengal},
		{"west bengal", bengal},
		{"ahmedabad", gujarat},
		{"rajkot", gujarat},
		{"gujarat", gujarat},
		{"jaipur", rajasthan},
		{"jodhpur", rajasthan},
		{"rajasthan", rajasthan},
		{"indore", madhya},
		{"bhopal", madhya},
		{"madhya pradesh", madhya},
		{"hyderabad", south},
		{"guntur", south},
		{"telangana", south},
		{"andhra", south},
		{"chennai", tamil},
		{"coimbatore", tamil},
		{"tamil nadu", tamil},
		{"kerala", kerala},
		{"bangalore", karnataka},
		{"bengaluru", karnataka},
		{"karnataka", karnataka},
		{"odisha", eastern},
		{"jharkhand", eastern},
		{"assam", northeast},
		{"meghalaya", northeast},
	}
}

var (
	defaultOnce sync.Once
	defaultRes  *Resolver
)

// Default returns the resolver over the built-in table, built on first use.
func Default() *Resolver {
	defaultOnce.Do(func() {
		r, err := NewResolver(builtinEntries(), DefaultProfile)
		if err != nil {
			panic("location: built-in table invalid: " + err.Error())
		}
		defaultRes = r
	})
	return defaultRes
}
