package ipm

import (
	"sort"
	"strings"
)

// CompanionPlant is one companion planting recommendation.
type CompanionPlant struct {
	Plant     string `json:"plant"`
	Benefit   string `json:"benefit"`
	Placement string `json:"placement"`
}

// companionsByCrop supplies companion planting when the generated strategy
// omits it. Unknown crops fall back to the default row.
var companionsByCrop = map[string][]CompanionPlant{
	"tomato": {
		{Plant: "Basil", Benefit: "Repels aphids, whiteflies, and improves flavor", Placement: "Interplant every 2-3 tomato plants"},
		{Plant: "Marigold", Benefit: "Deters nematodes, whiteflies, and many pests", Placement: "Border planting around field"},
		{Plant: "Garlic", Benefit: "Natural fungicide, repels spider mites", Placement: "Interplant throughout"},
	},
	"potato": {
		{Plant: "Horseradish", Benefit: "Deters potato beetles", Placement: "Corners of the field"},
		{Plant: "Marigold", Benefit: "Reduces nematode population", Placement: "Border rows"},
	},
	"corn": {
		{Plant: "Beans", Benefit: "Fixes nitrogen, supports corn stalks", Placement: "Three Sisters method"},
		{Plant: "Squash", Benefit: "Shades soil, deters raccoons", Placement: "Three Sisters method"},
	},
	"default": {
		{Plant: "Marigold", Benefit: "General pest deterrent", Placement: "Field borders"},
		{Plant: "Nasturtium", Benefit: "Trap crop for aphids", Placement: "Field edges"},
	},
}

// CompanionPlants returns companion recommendations for a crop, matched
// case-insensitively.
func CompanionPlants(crop string) []CompanionPlant {
	if plants, ok := companionsByCrop[strings.ToLower(crop)]; ok {
		return plants
	}
	return companionsByCrop["default"]
}

// DiseaseInfo is a preset treatment sheet for a well-known disease or pest.
type DiseaseInfo struct {
	Name       string   `json:"name"`
	Crops      []string `json:"crops"`
	Organic    []string `json:"organic"`
	Chemical   []string `json:"chemical"`
	Prevention []string `json:"prevention"`
}

// diseaseDB holds preset sheets keyed by a lowercase snake_case disease key.
var diseaseDB = map[string]DiseaseInfo{
	"late_blight": {
		Name:       "Late Blight",
		Crops:      []string{"tomato", "potato"},
		Organic:    []string{"Copper fungicide", "Baking soda spray", "Remove infected leaves"},
		Chemical:   []string{"Mancozeb", "Chlorothalonil", "Metalaxyl"},
		Prevention: []string{"Avoid overhead watering", "Improve air circulation", "Resistant varieties"},
	},
	"powdery_mildew": {
		Name:       "Powdery Mildew",
		Crops:      []string{"cucumber", "squash", "grapes", "roses"},
		Organic:    []string{"Neem oil", "Milk spray (40% milk)", "Sulfur"},
		Chemical:   []string{"Myclobutanil", "Propiconazole"},
		Prevention: []string{"Space plants properly", "Morning watering", "Prune for airflow"},
	},
	"aphids": {
		Name:       "Aphid Infestation",
		Crops:      []string{"all"},
		Organic:    []string{"Neem oil", "Insecticidal soap", "Ladybugs", "Strong water spray"},
		Chemical:   []string{"Imidacloprid", "Acetamiprid"},
		Prevention: []string{"Companion planting with marigolds", "Remove weeds", "Attract beneficial insects"},
	},
	"fall_armyworm": {
		Name:       "Fall Armyworm",
		Crops:      []string{"corn", "rice", "sorghum"},
		Organic:    []string{"Bt (Bacillus thuringiensis)", "Neem oil", "Trichogramma wasps"},
		Chemical:   []string{"Spinosad", "Chlorantraniliprole", "Emamectin benzoate"},
		Prevention: []string{"Early planting", "Pheromone traps", "Destroy crop residue"},
	},
}

// LookupDisease fetches a preset sheet by key, matched case-insensitively.
func LookupDisease(key string) (DiseaseInfo, bool) {
	info, ok := diseaseDB[strings.ToLower(key)]
	return info, ok
}

// DiseaseKeys lists the available preset keys in sorted order.
func DiseaseKeys() []string {
	keys := make([]string, 0, len(diseaseDB))
	for k := range diseaseDB {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DiseaseDatabase returns the whole preset sheet collection.
func DiseaseDatabase() map[string]DiseaseInfo {
	return diseaseDB
}
