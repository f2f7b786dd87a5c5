package agronomy

import (
	"agroyield/domain/core"
	"agroyield/domain/curve"
	"agroyield/domain/params"
)

// Soil-test dampening policy. The scaling tiers and the 30% richer-response
// ceiling are calibration constants carried over from field practice, not
// derived values; change them only alongside the trials that back them.
const (
	veryHighSoilTestFactor = 0.1
	highSoilTestFactor     = 0.5
	lowSoilTestBoostCap    = 0.3
)

// Conditions carries the optional field context for a prediction.
// A nil SoilTest means no soil test is available; an empty PreviousCrop
// means no nitrogen credit applies.
type Conditions struct {
	SoilTest     *float64
	PreviousCrop core.PreviousCrop
}

// Predictor applies field adjustments, then delegates to the curve model.
// Stateless; safe for concurrent use.
type Predictor struct{}

func NewPredictor() *Predictor {
	return &Predictor{}
}

// Predict looks up the response parameters and predicts yield at an
// applied rate under the given conditions.
func (pr *Predictor) Predict(crop core.Crop, nutrient core.Nutrient, rate float64, cond Conditions) (float64, error) {
	p, err := params.Lookup(crop, nutrient)
	if err != nil {
		return 0, err
	}
	return pr.PredictWith(p, rate, cond)
}

// PredictWith predicts yield for already-resolved parameters.
func (pr *Predictor) PredictWith(p params.ResponseParameters, rate float64, cond Conditions) (float64, error) {
	model, err := curve.ForShape(p.Shape)
	if err != nil {
		return 0, err
	}
	adjusted := pr.Adjusted(p, cond)
	return model.Evaluate(pr.EffectiveRate(p, rate, cond), adjusted), nil
}

// EffectiveRate converts an applied rate to the rate the crop actually
// sees: applied plus any previous-crop nitrogen credit.
func (pr *Predictor) EffectiveRate(p params.ResponseParameters, rate float64, cond Conditions) float64 {
	if rate < 0 {
		rate = 0
	}
	if p.Nutrient == core.NutrientNitrogen {
		rate += p.NitrogenCredit(cond.PreviousCrop)
	}
	return rate
}

// Adjusted returns a copy of the parameters with the linear coefficient
// dampened (or boosted) by the soil test level. Only phosphorus and
// potassium respond to soil test; other nutrients pass through unchanged.
func (pr *Predictor) Adjusted(p params.ResponseParameters, cond Conditions) params.ResponseParameters {
	if !p.Nutrient.SoilTestResponsive() || cond.SoilTest == nil || p.CriticalSoilTest <= 0 {
		return p
	}
	soilTest := *cond.SoilTest
	adjusted := p
	switch {
	case soilTest >= 2*p.CriticalSoilTest:
		// Very high soil test: minimal response expected
		adjusted.LinearCoef = p.LinearCoef * veryHighSoilTestFactor
	case soilTest >= p.CriticalSoilTest:
		adjusted.LinearCoef = p.LinearCoef * highSoilTestFactor
	default:
		// Below critical: response is richer, up to +30% at a zero test
		boost := 1 + (p.CriticalSoilTest-soilTest)/p.CriticalSoilTest*lowSoilTestBoostCap
		adjusted.LinearCoef = p.LinearCoef * boost
	}
	return adjusted
}
