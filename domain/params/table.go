package params

import (
	"fmt"

	"agroyield/domain/core"
	"agroyield/internal/errors"
)

type pairKey struct {
	crop     core.Crop
	nutrient core.Nutrient
}

// table is the static response parameter table. Coefficients come from
// published state extension response trials, rounded to the precision the
// trials actually support. Loaded once; read-only for the process lifetime.
var table = map[pairKey]ResponseParameters{
	{core.CropCorn, core.NutrientNitrogen}: {
		Crop: core.CropCorn, Nutrient: core.NutrientNitrogen, Shape: ShapeQuadratic,
		BaseYield: 80, LinearCoef: 0.85, QuadraticCoef: 0.0022,
		PlateauYield: 220, MaintenanceRate: 0,
		SoilNCredit: map[core.PreviousCrop]float64{
			core.PrevCropSoybean: 40,
			core.PrevCropAlfalfa: 80,
			core.PrevCropClover:  60,
			core.PrevCropFallow:  20,
		},
	},
	{core.CropWheat, core.NutrientNitrogen}: {
		Crop: core.CropWheat, Nutrient: core.NutrientNitrogen, Shape: ShapeQuadraticPlateau,
		BaseYield: 38, LinearCoef: 0.52, QuadraticCoef: 0.0026,
		PlateauYield: 95,
		SoilNCredit: map[core.PreviousCrop]float64{
			core.PrevCropSoybean: 30,
			core.PrevCropAlfalfa: 60,
			core.PrevCropClover:  45,
			core.PrevCropFallow:  25,
		},
	},
	{core.CropBarley, core.NutrientNitrogen}: {
		Crop: core.CropBarley, Nutrient: core.NutrientNitrogen, Shape: ShapeQuadraticPlateau,
		BaseYield: 45, LinearCoef: 0.6, QuadraticCoef: 0.003,
		PlateauYield: 105,
		SoilNCredit: map[core.PreviousCrop]float64{
			core.PrevCropSoybean: 30,
			core.PrevCropAlfalfa: 55,
			core.PrevCropFallow:  20,
		},
	},
	{core.CropCanola, core.NutrientNitrogen}: {
		Crop: core.CropCanola, Nutrient: core.NutrientNitrogen, Shape: ShapeMitscherlich,
		BaseYield: 18, LinearCoef: 0.32, Curvature: 0.016,
		PlateauYield: 58,
		SoilNCredit: map[core.PreviousCrop]float64{
			core.PrevCropSoybean: 25,
			core.PrevCropAlfalfa: 50,
			core.PrevCropFallow:  18,
		},
	},
	// Soybean fixes its own nitrogen; zero coefficients make any applied
	// nitrogen uneconomical at positive cost.
	{core.CropSoybean, core.NutrientNitrogen}: {
		Crop: core.CropSoybean, Nutrient: core.NutrientNitrogen, Shape: ShapeQuadratic,
		BaseYield: 55, LinearCoef: 0, QuadraticCoef: 0,
		PlateauYield: 55,
	},

	{core.CropCorn, core.NutrientPhosphorus}: {
		Crop: core.CropCorn, Nutrient: core.NutrientPhosphorus, Shape: ShapeSquareRoot,
		BaseYield: 150, LinearCoef: 6.5, QuadraticCoef: 0.22,
		PlateauYield: 205, CriticalSoilTest: 20, MaintenanceRate: 35,
	},
	{core.CropWheat, core.NutrientPhosphorus}: {
		Crop: core.CropWheat, Nutrient: core.NutrientPhosphorus, Shape: ShapeLinearPlateau,
		BaseYield: 48, LinearCoef: 0.45, PlateauRate: 50,
		PlateauYield: 70.5, CriticalSoilTest: 16, MaintenanceRate: 22,
	},
	{core.CropSoybean, core.NutrientPhosphorus}: {
		Crop: core.CropSoybean, Nutrient: core.NutrientPhosphorus, Shape: ShapeQuadratic,
		BaseYield: 44, LinearCoef: 0.24, QuadraticCoef: 0.0016,
		PlateauYield: 64, CriticalSoilTest: 18, MaintenanceRate: 28,
	},

	{core.CropCorn, core.NutrientPotassium}: {
		Crop: core.CropCorn, Nutrient: core.NutrientPotassium, Shape: ShapeLinearPlateau,
		BaseYield: 160, LinearCoef: 0.5, PlateauRate: 80,
		PlateauYield: 200, CriticalSoilTest: 160, MaintenanceRate: 50,
	},
	{core.CropWheat, core.NutrientPotassium}: {
		Crop: core.CropWheat, Nutrient: core.NutrientPotassium, Shape: ShapeQuadratic,
		BaseYield: 52, LinearCoef: 0.3, QuadraticCoef: 0.0018,
		PlateauYield: 70, CriticalSoilTest: 130, MaintenanceRate: 30,
	},
	{core.CropSoybean, core.NutrientPotassium}: {
		Crop: core.CropSoybean, Nutrient: core.NutrientPotassium, Shape: ShapeSquareRoot,
		BaseYield: 42, LinearCoef: 1.8, QuadraticCoef: 0.055,
		PlateauYield: 60, CriticalSoilTest: 150, MaintenanceRate: 45,
	},

	{core.CropCorn, core.NutrientSulfur}: {
		Crop: core.CropCorn, Nutrient: core.NutrientSulfur, Shape: ShapeMitscherlich,
		BaseYield: 175, LinearCoef: 1.2, Curvature: 0.09,
		PlateauYield: 196, MaintenanceRate: 15,
	},
	{core.CropCanola, core.NutrientSulfur}: {
		Crop: core.CropCanola, Nutrient: core.NutrientSulfur, Shape: ShapeLinearPlateau,
		BaseYield: 32, LinearCoef: 0.85, PlateauRate: 25,
		PlateauYield: 53.25, MaintenanceRate: 12,
	},
	{core.CropWheat, core.NutrientSulfur}: {
		Crop: core.CropWheat, Nutrient: core.NutrientSulfur, Shape: ShapeQuadraticPlateau,
		BaseYield: 55, LinearCoef: 0.55, QuadraticCoef: 0.014,
		PlateauYield: 61,
	},
}

// defaultCommodityPrice is the fallback commodity price per yield unit
// when the caller supplies none (currency/bushel-equivalent).
var defaultCommodityPrice = map[core.Crop]float64{
	core.CropCorn:    4.50,
	core.CropWheat:   6.20,
	core.CropSoybean: 11.00,
	core.CropCanola:  13.50,
	core.CropBarley:  5.10,
}

// defaultNutrientCost is the fallback cost per unit of applied nutrient.
var defaultNutrientCost = map[core.Nutrient]float64{
	core.NutrientNitrogen:   0.50,
	core.NutrientPhosphorus: 0.65,
	core.NutrientPotassium:  0.45,
	core.NutrientSulfur:     0.55,
}

func init() {
	if err := validateTable(); err != nil {
		panic(fmt.Sprintf("response parameter table invalid: %v", err))
	}
}

func validateTable() error {
	for key, entry := range table {
		if entry.Crop != key.crop || entry.Nutrient != key.nutrient {
			return errors.InvalidParameters(
				fmt.Sprintf("table key %s/%s does not match entry %s/%s",
					key.crop, key.nutrient, entry.Crop, entry.Nutrient))
		}
		if err := entry.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the response parameters for a crop and nutrient
func Lookup(crop core.Crop, nutrient core.Nutrient) (ResponseParameters, error) {
	entry, ok := table[pairKey{crop, nutrient}]
	if !ok {
		return ResponseParameters{}, errors.UnknownCropNutrient(string(crop), string(nutrient))
	}
	return entry, nil
}

// Pairs returns every (crop, nutrient) pair present in the table
func Pairs() []ResponseParameters {
	out := make([]ResponseParameters, 0, len(table))
	for _, entry := range table {
		out = append(out, entry)
	}
	return out
}

// NutrientsFor returns the nutrients with a table entry for the crop,
// in standard allocation order.
func NutrientsFor(crop core.Crop) []core.Nutrient {
	var out []core.Nutrient
	for _, n := range core.Nutrients() {
		if _, ok := table[pairKey{crop, n}]; ok {
			out = append(out, n)
		}
	}
	return out
}

// DefaultCommodityPrice returns the fallback commodity price for a crop
func DefaultCommodityPrice(crop core.Crop) float64 {
	return defaultCommodityPrice[crop]
}

// DefaultNutrientCost returns the fallback per-unit nutrient cost
func DefaultNutrientCost(nutrient core.Nutrient) float64 {
	return defaultNutrientCost[nutrient]
}
