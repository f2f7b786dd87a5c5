package curve

import (
	"agroyield/domain/params"
	"agroyield/internal/errors"
)

// Model evaluates predicted yield at an applied input rate for one
// functional form of the response curve.
type Model interface {
	Name() string
	Description() string
	// Evaluate returns predicted yield at the effective input rate.
	// Negative rates are clamped to zero, output to [0, PlateauYield].
	Evaluate(rate float64, p params.ResponseParameters) float64
}

// ClosedForm is implemented by models whose economic optimum has an
// analytic solution. The solver falls back to a bounded grid search for
// everything else, and for degenerate coefficients (ok == false).
type ClosedForm interface {
	// EconomicOptimumRate solves d(netReturn)/d(rate) = 0 for the given
	// price ratio (nutrient cost / commodity price), floored at zero.
	EconomicOptimumRate(p params.ResponseParameters, priceRatio float64) (rate float64, ok bool)
	// AgronomicMaxRate is the yield-maximizing rate, ignoring price.
	AgronomicMaxRate(p params.ResponseParameters) (rate float64, ok bool)
}

var registry = map[params.Shape]Model{
	params.ShapeQuadratic:        &Quadratic{},
	params.ShapeQuadraticPlateau: &QuadraticPlateau{},
	params.ShapeLinearPlateau:    &LinearPlateau{},
	params.ShapeMitscherlich:     &Mitscherlich{},
	params.ShapeSquareRoot:       &SquareRoot{},
}

// ForShape resolves a shape tag to its model
func ForShape(shape params.Shape) (Model, error) {
	model, ok := registry[shape]
	if !ok {
		return nil, errors.InvalidParameters("no curve model for shape " + string(shape))
	}
	return model, nil
}

// Models returns every registered curve model
func Models() []Model {
	out := make([]Model, 0, len(registry))
	for _, shape := range []params.Shape{
		params.ShapeQuadratic,
		params.ShapeQuadraticPlateau,
		params.ShapeLinearPlateau,
		params.ShapeMitscherlich,
		params.ShapeSquareRoot,
	} {
		out = append(out, registry[shape])
	}
	return out
}

// clampYield bounds a raw curve value to [0, PlateauYield]
func clampYield(yield float64, p params.ResponseParameters) float64 {
	if yield < 0 {
		return 0
	}
	if yield > p.PlateauYield {
		return p.PlateauYield
	}
	return yield
}

// clampRate treats negative rates as zero; agronomic rates are never
// negative in practice and UI sliders occasionally overshoot.
func clampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	return rate
}
