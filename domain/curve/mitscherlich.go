package curve

import (
	"math"

	"agroyield/domain/params"
)

// Mitscherlich approaches the plateau asymptotically:
// yield = base + (plateau - base) * (1 - e^(-c*rate)).
// No closed-form economic optimum is exposed; the solver grid-searches.
type Mitscherlich struct{}

func (m *Mitscherlich) Name() string {
	return "mitscherlich"
}

func (m *Mitscherlich) Description() string {
	return "Exponential approach to the yield plateau, law-of-diminishing-returns form"
}

func (m *Mitscherlich) Evaluate(rate float64, p params.ResponseParameters) float64 {
	rate = clampRate(rate)
	yield := p.BaseYield + (p.PlateauYield-p.BaseYield)*(1-math.Exp(-p.Curvature*rate))
	return clampYield(yield, p)
}
