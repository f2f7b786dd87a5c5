package optimizer

import (
	"agroyield/domain/agronomy"
	"agroyield/domain/core"
	"agroyield/domain/curve"
	"agroyield/domain/economics"
	"agroyield/domain/params"
)

// Bounded search window for shapes without a closed-form optimum. The
// window covers every agronomically plausible rate; 5-unit steps match
// the resolution applicators can actually deliver.
const (
	searchMaxRate = 300.0
	searchStep    = 5.0
)

// Solution methods recorded on the result
const (
	MethodClosedForm = "closed_form"
	MethodGridSearch = "grid_search"
)

// Solver derives the economic optimum rate: the rate where marginal
// revenue from the next unit of input equals its marginal cost.
// Stateless; prices are taken per call and never retained.
type Solver struct {
	predictor *agronomy.Predictor
}

func NewSolver(predictor *agronomy.Predictor) *Solver {
	return &Solver{predictor: predictor}
}

// Compute resolves the parameter table entry and solves for the optimum.
func (s *Solver) Compute(crop core.Crop, nutrient core.Nutrient, cond agronomy.Conditions, prices economics.Prices) (economics.EconomicOptimum, error) {
	p, err := params.Lookup(crop, nutrient)
	if err != nil {
		return economics.EconomicOptimum{}, err
	}
	return s.ComputeWith(p, cond, prices)
}

// ComputeWith solves for already-resolved parameters. The closed form is
// used where the shape permits; degenerate coefficients and the
// non-analytic shapes fall back to the bounded grid search.
func (s *Solver) ComputeWith(p params.ResponseParameters, cond agronomy.Conditions, prices economics.Prices) (economics.EconomicOptimum, error) {
	model, err := curve.ForShape(p.Shape)
	if err != nil {
		return economics.EconomicOptimum{}, err
	}

	adjusted := s.predictor.Adjusted(p, cond)
	var credit float64
	if p.Nutrient == core.NutrientNitrogen {
		credit = p.NitrogenCredit(cond.PreviousCrop)
	}

	ratio := prices.Ratio()
	method := MethodClosedForm

	// The closed form solves for the effective rate the crop sees; the
	// nitrogen credit is a fixed offset, so it comes off afterwards.
	var applied float64
	if cf, ok := model.(curve.ClosedForm); ok {
		if effective, solvable := cf.EconomicOptimumRate(adjusted, ratio); solvable {
			applied = flooredAtZero(effective - credit)
		} else {
			applied = s.gridSearchOptimum(model, adjusted, credit, prices)
			method = MethodGridSearch
		}
	} else {
		applied = s.gridSearchOptimum(model, adjusted, credit, prices)
		method = MethodGridSearch
	}

	maxApplied := s.agronomicMaxApplied(model, adjusted, credit)
	optYield := model.Evaluate(applied+credit, adjusted)
	maxYield := model.Evaluate(maxApplied+credit, adjusted)

	inputCost := prices.InputCost(applied)
	gross := optYield * prices.CommodityPrice
	opt := economics.EconomicOptimum{
		Crop:              p.Crop,
		Nutrient:          p.Nutrient,
		OptimumRate:       applied,
		OptimumYield:      optYield,
		AgronomicMaxRate:  maxApplied,
		AgronomicMaxYield: maxYield,
		TotalInputCost:    inputCost,
		GrossRevenue:      gross,
		NetReturn:         gross - inputCost,
		ReturnPerDollar:   returnPerDollar(gross, inputCost),
		BreakevenRate:     s.breakevenRate(model, adjusted, credit, prices),
		PriceRatio:        ratio,
		Method:            method,
	}
	if maxYield > 0 {
		opt.YieldPctOfMax = optYield / maxYield * 100
	}
	return opt, nil
}

// gridSearchOptimum walks the bounded rate grid and keeps the applied
// rate with the best net return. O(60) curve evaluations.
func (s *Solver) gridSearchOptimum(model curve.Model, p params.ResponseParameters, credit float64, prices economics.Prices) float64 {
	bestRate := 0.0
	bestNet := s.netReturnAt(model, p, 0, credit, prices)
	for rate := searchStep; rate <= searchMaxRate; rate += searchStep {
		net := s.netReturnAt(model, p, rate, credit, prices)
		if net > bestNet {
			bestNet = net
			bestRate = rate
		}
	}
	return bestRate
}

// agronomicMaxApplied is the yield-maximizing applied rate, ignoring
// price entirely. Analytic where the shape allows, grid otherwise.
func (s *Solver) agronomicMaxApplied(model curve.Model, p params.ResponseParameters, credit float64) float64 {
	if cf, ok := model.(curve.ClosedForm); ok {
		if effective, solvable := cf.AgronomicMaxRate(p); solvable {
			return flooredAtZero(effective - credit)
		}
	}
	bestRate := 0.0
	bestYield := model.Evaluate(credit, p)
	for rate := searchStep; rate <= searchMaxRate; rate += searchStep {
		yield := model.Evaluate(rate+credit, p)
		if yield > bestYield {
			bestYield = yield
			bestRate = rate
		}
	}
	return bestRate
}

// breakevenRate scans for the first rate at which net return drops below
// the do-nothing baseline. The scan ceiling is reported as a sentinel
// when the response stays economical across the whole window.
func (s *Solver) breakevenRate(model curve.Model, p params.ResponseParameters, credit float64, prices economics.Prices) float64 {
	baseline := s.netReturnAt(model, p, 0, credit, prices)
	for rate := searchStep; rate <= searchMaxRate; rate += searchStep {
		if s.netReturnAt(model, p, rate, credit, prices) < baseline {
			return rate
		}
	}
	return searchMaxRate
}

func (s *Solver) netReturnAt(model curve.Model, p params.ResponseParameters, applied, credit float64, prices economics.Prices) float64 {
	yield := model.Evaluate(applied+credit, p)
	return yield*prices.CommodityPrice - prices.InputCost(applied)
}

func returnPerDollar(gross, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return gross / cost
}

func flooredAtZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
