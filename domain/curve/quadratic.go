package curve

import (
	"agroyield/domain/params"
)

// Quadratic models yield as an unbounded parabola in the applied rate.
// The plateau ceiling is applied as a clamp, not as part of the form.
type Quadratic struct{}

func (q *Quadratic) Name() string {
	return "quadratic"
}

func (q *Quadratic) Description() string {
	return "Diminishing-returns parabola; the classic nitrogen response form"
}

func (q *Quadratic) Evaluate(rate float64, p params.ResponseParameters) float64 {
	rate = clampRate(rate)
	yield := p.BaseYield + p.LinearCoef*rate - p.QuadraticCoef*rate*rate
	return clampYield(yield, p)
}

// EconomicOptimumRate sets marginal yield equal to the price ratio:
// linear - 2*quad*rate = ratio, so rate = (linear - ratio) / (2*quad).
func (q *Quadratic) EconomicOptimumRate(p params.ResponseParameters, priceRatio float64) (float64, bool) {
	if p.QuadraticCoef == 0 || p.LinearCoef == 0 {
		return 0, false
	}
	rate := (p.LinearCoef - priceRatio) / (2 * p.QuadraticCoef)
	if rate < 0 {
		rate = 0
	}
	return rate, true
}

// AgronomicMaxRate is the parabola apex, where marginal yield hits zero
func (q *Quadratic) AgronomicMaxRate(p params.ResponseParameters) (float64, bool) {
	if p.QuadraticCoef == 0 {
		return 0, false
	}
	return p.LinearCoef / (2 * p.QuadraticCoef), true
}
