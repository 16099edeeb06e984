package diagnosis

// Pest pairs a common pest with the damage pattern it leaves.
type Pest struct {
	Name   string `json:"name"`
	Damage string `json:"damage"`
}

// CommonDiseases lists the diseases most frequently seen per crop.
var CommonDiseases = map[string][]string{
	"tomato": {
		"Late Blight", "Early Blight", "Septoria Leaf Spot",
		"Bacterial Spot", "Tomato Yellow Leaf Curl", "Fusarium Wilt",
	},
	"potato": {
		"Late Blight", "Early Blight", "Black Scurf",
		"Common Scab", "Potato Virus Y",
	},
	"rice": {
		"Rice Blast", "Bacterial Leaf Blight", "Brown Spot",
		"Sheath Blight", "Tungro Disease",
	},
	"wheat": {
		"Wheat Rust", "Powdery Mildew", "Septoria",
		"Fusarium Head Blight", "Take-all",
	},
	"corn": {
		"Gray Leaf Spot", "Northern Corn Leaf Blight",
		"Common Rust", "Southern Corn Leaf Blight",
	},
	"cotton": {
		"Cotton Leaf Curl", "Bacterial Blight", "Alternaria Leaf Spot",
		"Fusarium Wilt", "Verticillium Wilt",
	},
}

// CommonPests lists pests by crop, with a "universal" bucket for pests that
// attack most crops.
var CommonPests = map[string][]Pest{
	"universal": {
		{Name: "Aphids", Damage: "Sap sucking, virus transmission"},
		{Name: "Whiteflies", Damage: "Sap sucking, sooty mold"},
		{Name: "Spider Mites", Damage: "Leaf stippling, webbing"},
		{Name: "Thrips", Damage: "Leaf scarring, virus transmission"},
		{Name: "Caterpillars", Damage: "Leaf eating, fruit damage"},
	},
	"corn": {
		{Name: "Fall Armyworm", Damage: "Severe leaf and ear damage"},
		{Name: "Corn Borer", Damage: "Stalk tunneling"},
		{Name: "Corn Earworm", Damage: "Ear tip damage"},
	},
	"cotton": {
		{Name: "Bollworm", Damage: "Boll destruction"},
		{Name: "Pink Bollworm", Damage: "Seed and lint damage"},
	},
}

// CommonIssues reports the known diseases and pests for a crop. Crop-specific
// pests are appended after the universal set.
func CommonIssues(crop string) (diseases []string, pests []Pest) {
	diseases = append(diseases, CommonDiseases[crop]...)
	pests = append(pests, CommonPests["universal"]...)
	if crop != "universal" {
		pests = append(pests, CommonPests[crop]...)
	}
	return diseases, pests
}
