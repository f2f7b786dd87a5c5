package optimizer

import (
	"context"
	"math"

	"golang.org/x/sync/semaphore"

	"agroyield/domain/agronomy"
	"agroyield/domain/economics"
	"agroyield/domain/params"
)

// PriceSensitiveThreshold is the optimum-rate shift (input units) beyond
// which a recommendation is flagged as price-sensitive.
const PriceSensitiveThreshold = 15.0

const maxConcurrentScenarios = 2

// priceScenario perturbs one price axis by a fixed factor
type priceScenario struct {
	name            string
	commodityFactor float64
	nutrientFactor  float64
}

// Four independent perturbations, not a cross-product: each price axis
// swings ±20% on its own.
var priceScenarios = []priceScenario{
	{name: "commodity_up_20", commodityFactor: 1.2, nutrientFactor: 1.0},
	{name: "commodity_down_20", commodityFactor: 0.8, nutrientFactor: 1.0},
	{name: "nutrient_cost_up_20", commodityFactor: 1.0, nutrientFactor: 1.2},
	{name: "nutrient_cost_down_20", commodityFactor: 1.0, nutrientFactor: 0.8},
}

// Analyzer quantifies how far the optimum moves under price swings.
type Analyzer struct {
	solver *Solver
}

func NewAnalyzer(solver *Solver) *Analyzer {
	return &Analyzer{solver: solver}
}

// Analyze re-solves under each perturbed price scenario and reports the
// rate delta per scenario plus whether any shift crosses the
// price-sensitivity threshold.
func (a *Analyzer) Analyze(ctx context.Context, p params.ResponseParameters, cond agronomy.Conditions, prices economics.Prices, baseRate float64) (map[string]float64, bool, error) {
	deltas := make([]float64, len(priceScenarios))
	errs := make([]error, len(priceScenarios))

	sem := semaphore.NewWeighted(maxConcurrentScenarios)
	for i, scenario := range priceScenarios {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, false, err
		}
		go func(i int, scenario priceScenario) {
			defer sem.Release(1)
			perturbed := economics.Prices{
				CommodityPrice:  prices.CommodityPrice * scenario.commodityFactor,
				NutrientCost:    prices.NutrientCost * scenario.nutrientFactor,
				ApplicationCost: prices.ApplicationCost,
			}
			opt, err := a.solver.ComputeWith(p, cond, perturbed)
			if err != nil {
				errs[i] = err
				return
			}
			deltas[i] = opt.OptimumRate - baseRate
		}(i, scenario)
	}
	if err := sem.Acquire(ctx, maxConcurrentScenarios); err != nil {
		return nil, false, err
	}

	result := make(map[string]float64, len(priceScenarios))
	sensitive := false
	for i, scenario := range priceScenarios {
		if errs[i] != nil {
			return nil, false, errs[i]
		}
		result[scenario.name] = deltas[i]
		if math.Abs(deltas[i]) > PriceSensitiveThreshold {
			sensitive = true
		}
	}
	return result, sensitive, nil
}
