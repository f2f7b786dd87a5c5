package params

import (
	"agroyield/domain/core"
	"agroyield/internal/errors"
)

// Shape tags the functional form of a yield response curve
type Shape string

const (
	// ShapeQuadratic is an unbounded parabola: base + linear*rate - quad*rate^2
	ShapeQuadratic Shape = "quadratic"
	// ShapeQuadraticPlateau follows the parabola up to its apex, then holds flat
	ShapeQuadraticPlateau Shape = "quadratic_plateau"
	// ShapeLinearPlateau rises linearly to PlateauRate, then holds flat
	ShapeLinearPlateau Shape = "linear_plateau"
	// ShapeMitscherlich approaches the plateau asymptotically
	ShapeMitscherlich Shape = "mitscherlich"
	// ShapeSquareRoot is base + linear*sqrt(rate) - quad*rate
	ShapeSquareRoot Shape = "square_root"
)

// ResponseParameters holds the per-(crop, nutrient) response coefficients.
// Entries are constructed once at load time and never mutated.
type ResponseParameters struct {
	Crop     core.Crop
	Nutrient core.Nutrient
	Shape    Shape

	// BaseYield is the expected yield at zero applied input (yield units/acre)
	BaseYield float64
	// LinearCoef is the initial marginal yield per unit of input
	LinearCoef float64
	// QuadraticCoef is the diminishing-returns term (quadratic family and square root)
	QuadraticCoef float64
	// PlateauYield is the maximum achievable yield; hard ceiling for all shapes
	PlateauYield float64
	// PlateauRate is where a linear-plateau response flattens (shape-specific)
	PlateauRate float64
	// Curvature is the Mitscherlich response constant
	Curvature float64

	// CriticalSoilTest is the soil test level below which full response is
	// expected (phosphorus/potassium only; 0 when not applicable)
	CriticalSoilTest float64
	// MaintenanceRate is the crop-removal replacement rate, informational only
	MaintenanceRate float64

	// SoilNCredit maps previous crop to a nitrogen-equivalent credit
	// (nitrogen only; nil otherwise). Absent entries mean zero credit.
	SoilNCredit map[core.PreviousCrop]float64
}

// NitrogenCredit returns the nitrogen credit for a previous crop, zero when
// the table has no entry for it.
func (p ResponseParameters) NitrogenCredit(prev core.PreviousCrop) float64 {
	if p.SoilNCredit == nil || prev == "" {
		return 0
	}
	return p.SoilNCredit[prev]
}

// Validate checks the structural invariants of a single entry
func (p ResponseParameters) Validate() error {
	if p.PlateauYield < p.BaseYield {
		return errors.InvalidParameters("plateau yield below base yield for " + p.key())
	}
	if p.LinearCoef < 0 {
		return errors.InvalidParameters("negative linear coefficient for " + p.key())
	}
	switch p.Shape {
	case ShapeQuadratic, ShapeQuadraticPlateau, ShapeSquareRoot:
		if p.QuadraticCoef < 0 {
			return errors.InvalidParameters("negative quadratic coefficient for " + p.key())
		}
	case ShapeLinearPlateau:
		if p.PlateauRate <= 0 {
			return errors.InvalidParameters("linear plateau requires a positive plateau rate for " + p.key())
		}
	case ShapeMitscherlich:
		if p.Curvature <= 0 {
			return errors.InvalidParameters("mitscherlich requires a positive curvature for " + p.key())
		}
	default:
		return errors.InvalidParameters("unknown curve shape for " + p.key())
	}
	if p.Nutrient.SoilTestResponsive() && p.CriticalSoilTest <= 0 {
		return errors.InvalidParameters("soil-test responsive nutrient missing critical level for " + p.key())
	}
	return nil
}

func (p ResponseParameters) key() string {
	return string(p.Crop) + "/" + string(p.Nutrient)
}
