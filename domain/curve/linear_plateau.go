package curve

import (
	"agroyield/domain/params"
)

// LinearPlateau rises at a constant marginal yield until PlateauRate,
// then holds flat. Marginal return is constant below the plateau, so the
// economic optimum is all-or-nothing: fund to the plateau or not at all.
type LinearPlateau struct{}

func (l *LinearPlateau) Name() string {
	return "linear_plateau"
}

func (l *LinearPlateau) Description() string {
	return "Constant response up to a plateau rate; common for potassium and sulfur"
}

func (l *LinearPlateau) Evaluate(rate float64, p params.ResponseParameters) float64 {
	rate = clampRate(rate)
	if rate > p.PlateauRate {
		rate = p.PlateauRate
	}
	yield := p.BaseYield + p.LinearCoef*rate
	return clampYield(yield, p)
}

// EconomicOptimumRate has no interior solution: every unit below the
// plateau returns LinearCoef yield units, so the response pays at all
// rates up to the plateau iff LinearCoef exceeds the price ratio.
func (l *LinearPlateau) EconomicOptimumRate(p params.ResponseParameters, priceRatio float64) (float64, bool) {
	if p.LinearCoef > priceRatio {
		return p.PlateauRate, true
	}
	return 0, true
}

func (l *LinearPlateau) AgronomicMaxRate(p params.ResponseParameters) (float64, bool) {
	return p.PlateauRate, true
}
