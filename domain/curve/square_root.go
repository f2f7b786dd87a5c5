package curve

import (
	"math"

	"agroyield/domain/params"
)

// SquareRoot models a steep early response that flattens quickly:
// yield = base + linear*sqrt(rate) - quad*rate.
// No closed-form economic optimum is exposed; the solver grid-searches.
type SquareRoot struct{}

func (s *SquareRoot) Name() string {
	return "square_root"
}

func (s *SquareRoot) Description() string {
	return "Square-root response; strong low-rate payoff typical of phosphorus"
}

func (s *SquareRoot) Evaluate(rate float64, p params.ResponseParameters) float64 {
	rate = clampRate(rate)
	yield := p.BaseYield + p.LinearCoef*math.Sqrt(rate) - p.QuadraticCoef*rate
	return clampYield(yield, p)
}
