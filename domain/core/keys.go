package core

// Crop identifies a crop in the response parameter table
type Crop string

// Nutrient identifies an applied nutrient
type Nutrient string

// PreviousCrop identifies the prior-season crop used for nitrogen credits
type PreviousCrop string

// Known crops
const (
	CropCorn    Crop = "corn"
	CropWheat   Crop = "wheat"
	CropSoybean Crop = "soybean"
	CropCanola  Crop = "canola"
	CropBarley  Crop = "barley"
)

// Known nutrients
const (
	NutrientNitrogen   Nutrient = "nitrogen"
	NutrientPhosphorus Nutrient = "phosphorus"
	NutrientPotassium  Nutrient = "potassium"
	NutrientSulfur     Nutrient = "sulfur"
)

// Previous crops that carry a nitrogen credit
const (
	PrevCropSoybean PreviousCrop = "soybean"
	PrevCropAlfalfa PreviousCrop = "alfalfa"
	PrevCropClover  PreviousCrop = "clover"
	PrevCropFallow  PreviousCrop = "fallow"
)

// Nutrients returns the nutrients in allocation order
func Nutrients() []Nutrient {
	return []Nutrient{NutrientNitrogen, NutrientPhosphorus, NutrientPotassium, NutrientSulfur}
}

// SoilTestResponsive reports whether the nutrient's response is dampened
// by soil test levels (phosphorus and potassium build up in soil; nitrogen
// and sulfur are mobile and re-applied every season).
func (n Nutrient) SoilTestResponsive() bool {
	return n == NutrientPhosphorus || n == NutrientPotassium
}
