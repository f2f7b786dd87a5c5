package curve

import (
	"agroyield/domain/params"
)

// QuadraticPlateau follows the parabola up to its apex and holds flat
// beyond it. Rates past the apex buy no additional yield.
type QuadraticPlateau struct{}

func (q *QuadraticPlateau) Name() string {
	return "quadratic_plateau"
}

func (q *QuadraticPlateau) Description() string {
	return "Parabolic response that flattens at the apex instead of declining"
}

func (q *QuadraticPlateau) Evaluate(rate float64, p params.ResponseParameters) float64 {
	rate = clampRate(rate)
	if apex, ok := q.AgronomicMaxRate(p); ok && rate > apex {
		rate = apex
	}
	yield := p.BaseYield + p.LinearCoef*rate - p.QuadraticCoef*rate*rate
	return clampYield(yield, p)
}

// EconomicOptimumRate is the quadratic solution capped at the apex:
// never spend past the rate where the ceiling is already reached.
func (q *QuadraticPlateau) EconomicOptimumRate(p params.ResponseParameters, priceRatio float64) (float64, bool) {
	if p.QuadraticCoef == 0 || p.LinearCoef == 0 {
		return 0, false
	}
	rate := (p.LinearCoef - priceRatio) / (2 * p.QuadraticCoef)
	if rate < 0 {
		rate = 0
	}
	apex := p.LinearCoef / (2 * p.QuadraticCoef)
	if rate > apex {
		rate = apex
	}
	return rate, true
}

func (q *QuadraticPlateau) AgronomicMaxRate(p params.ResponseParameters) (float64, bool) {
	if p.QuadraticCoef == 0 {
		return 0, false
	}
	return p.LinearCoef / (2 * p.QuadraticCoef), true
}
