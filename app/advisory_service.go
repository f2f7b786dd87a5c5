package app

import (
	"context"

	"agroyield/domain/agronomy"
	"agroyield/domain/core"
	"agroyield/domain/economics"
	"agroyield/domain/params"
	"agroyield/internal"
	"agroyield/internal/errors"
	"agroyield/internal/optimizer"
	"agroyield/models"
	"agroyield/ports"
)

// AdvisoryService is the engine's public surface. Every operation is a
// pure function of its inputs; the optional repository and override
// reader are collaborators, never caches — the service holds no state
// between calls and is safe for concurrent use.
type AdvisoryService struct {
	predictor *agronomy.Predictor
	solver    *optimizer.Solver
	generator *optimizer.Generator
	analyzer  *optimizer.Analyzer
	allocator *optimizer.Allocator

	results   ports.ResultRepository
	overrides ports.PriceOverrideReader
	log       *internal.Logger

	defaultApplicationCost float64
}

// NewAdvisoryService wires the engine. Both ports may be nil; the core
// computes identically without them.
func NewAdvisoryService(results ports.ResultRepository, overrides ports.PriceOverrideReader) *AdvisoryService {
	predictor := agronomy.NewPredictor()
	solver := optimizer.NewSolver(predictor)
	return &AdvisoryService{
		predictor: predictor,
		solver:    solver,
		generator: optimizer.NewGenerator(predictor, solver),
		analyzer:  optimizer.NewAnalyzer(solver),
		allocator: optimizer.NewAllocator(solver),
		results:   results,
		overrides: overrides,
		log:       internal.DefaultLogger.Named("advisory"),
	}
}

// SetDefaultApplicationCost sets the flat per-acre pass charge assumed
// when a request supplies none.
func (s *AdvisoryService) SetDefaultApplicationCost(cost float64) {
	s.defaultApplicationCost = cost
}

// PredictYield predicts yield at an applied rate under field conditions.
func (s *AdvisoryService) PredictYield(crop core.Crop, nutrient core.Nutrient, rate float64, cond agronomy.Conditions) (float64, error) {
	return s.predictor.Predict(crop, nutrient, rate, cond)
}

// ComputeOptimum solves for the economic optimum rate, runs the price
// sensitivity analysis, and records a result summary when a repository
// is wired.
func (s *AdvisoryService) ComputeOptimum(ctx context.Context, crop core.Crop, nutrient core.Nutrient, cond agronomy.Conditions, prices economics.Prices) (economics.EconomicOptimum, error) {
	p, err := params.Lookup(crop, nutrient)
	if err != nil {
		return economics.EconomicOptimum{}, err
	}
	prices = s.resolvePrices(ctx, crop, nutrient, prices)

	opt, err := s.solver.ComputeWith(p, cond, prices)
	if err != nil {
		return economics.EconomicOptimum{}, err
	}
	if err := s.attachSensitivity(ctx, &opt, p, cond, prices); err != nil {
		return economics.EconomicOptimum{}, err
	}

	if s.results != nil {
		if err := s.results.SaveResult(ctx, models.NewOptimizationRecord(opt)); err != nil {
			// Persistence is advisory; the computation stands on its own
			s.log.Warn("failed to save result summary: %v", err)
		}
	}
	return opt, nil
}

// GenerateCurve sweeps the response curve with per-point economics and
// attaches the optimum for the same inputs.
func (s *AdvisoryService) GenerateCurve(ctx context.Context, crop core.Crop, nutrient core.Nutrient, rng *optimizer.RateRange, step float64, cond agronomy.Conditions, prices economics.Prices) (economics.Curve, error) {
	p, err := params.Lookup(crop, nutrient)
	if err != nil {
		return economics.Curve{}, err
	}
	prices = s.resolvePrices(ctx, crop, nutrient, prices)

	curve, err := s.generator.Generate(crop, nutrient, rng, step, cond, prices)
	if err != nil {
		return economics.Curve{}, err
	}
	if err := s.attachSensitivity(ctx, &curve.Optimum, p, cond, prices); err != nil {
		return economics.Curve{}, err
	}
	return curve, nil
}

// CompareScenarios evaluates caller-chosen rates side by side and marks
// the best one, alongside the solved optimum for reference.
func (s *AdvisoryService) CompareScenarios(ctx context.Context, crop core.Crop, nutrient core.Nutrient, rates []float64, cond agronomy.Conditions, prices economics.Prices, acres float64) (economics.ScenarioComparison, error) {
	if len(rates) == 0 {
		return economics.ScenarioComparison{}, errors.InvalidInput("at least one scenario rate is required")
	}
	if acres <= 0 {
		return economics.ScenarioComparison{}, errors.InvalidInput("acres must be positive")
	}
	p, err := params.Lookup(crop, nutrient)
	if err != nil {
		return economics.ScenarioComparison{}, err
	}
	prices = s.resolvePrices(ctx, crop, nutrient, prices)

	comparison := economics.ScenarioComparison{
		Crop:     crop,
		Nutrient: nutrient,
		Acres:    acres,
	}
	bestIdx := 0
	for i, rate := range rates {
		if rate < 0 {
			rate = 0
		}
		yield, err := s.predictor.PredictWith(p, rate, cond)
		if err != nil {
			return economics.ScenarioComparison{}, err
		}
		cost := prices.InputCost(rate)
		net := yield*prices.CommodityPrice - cost
		scenario := economics.Scenario{
			Rate:             rate,
			PredictedYield:   yield,
			InputCostPerAcre: cost,
			NetReturnPerAcre: net,
			NetReturnTotal:   net * acres,
		}
		comparison.Scenarios = append(comparison.Scenarios, scenario)
		if net > comparison.Scenarios[bestIdx].NetReturnPerAcre {
			bestIdx = i
		}
	}
	comparison.Best = comparison.Scenarios[bestIdx]

	opt, err := s.solver.ComputeWith(p, cond, prices)
	if err != nil {
		return economics.ScenarioComparison{}, err
	}
	comparison.OptimumRate = opt.OptimumRate
	return comparison, nil
}

// AllocateBudget splits a capped spend across the crop's nutrients.
func (s *AdvisoryService) AllocateBudget(ctx context.Context, req optimizer.AllocationRequest) (economics.BudgetPlan, error) {
	req.Prices = s.resolvePriceSet(ctx, req.Crop, req.Prices)
	return s.allocator.Allocate(req)
}

// Recommendations formats a solved optimum into guidance strings.
func (s *AdvisoryService) Recommendations(opt economics.EconomicOptimum, cond agronomy.Conditions) ([]string, error) {
	p, err := params.Lookup(opt.Crop, opt.Nutrient)
	if err != nil {
		return nil, err
	}
	return optimizer.Recommend(opt, p, cond), nil
}

// BudgetRecommendations formats an allocation plan into guidance strings.
func (s *AdvisoryService) BudgetRecommendations(plan economics.BudgetPlan) []string {
	return optimizer.RecommendBudget(plan)
}

// RecentResults lists stored result summaries, empty when no repository
// is wired.
func (s *AdvisoryService) RecentResults(ctx context.Context, limit int) ([]models.OptimizationRecord, error) {
	if s.results == nil {
		return nil, nil
	}
	return s.results.RecentResults(ctx, limit)
}

func (s *AdvisoryService) attachSensitivity(ctx context.Context, opt *economics.EconomicOptimum, p params.ResponseParameters, cond agronomy.Conditions, prices economics.Prices) error {
	deltas, sensitive, err := s.analyzer.Analyze(ctx, p, cond, prices, opt.OptimumRate)
	if err != nil {
		return err
	}
	opt.Sensitivity = deltas
	opt.PriceSensitive = sensitive
	return nil
}

// resolvePrices fills zero-valued price fields from the override store
// (when wired) and then the table defaults. Caller-supplied prices
// always win; nothing read here is retained between calls.
func (s *AdvisoryService) resolvePrices(ctx context.Context, crop core.Crop, nutrient core.Nutrient, prices economics.Prices) economics.Prices {
	if prices.CommodityPrice > 0 && prices.NutrientCost > 0 && prices.ApplicationCost > 0 {
		return prices
	}
	if s.overrides != nil {
		override, ok, err := s.overrides.OverrideFor(ctx, crop, nutrient)
		if err != nil {
			s.log.Warn("price override lookup failed for %s/%s: %v", crop, nutrient, err)
		} else if ok {
			if prices.CommodityPrice == 0 {
				prices.CommodityPrice = override.CommodityPrice
			}
			if prices.NutrientCost == 0 {
				prices.NutrientCost = override.NutrientCost
			}
			if prices.ApplicationCost == 0 {
				prices.ApplicationCost = override.ApplicationCost
			}
		}
	}
	if prices.CommodityPrice == 0 {
		prices.CommodityPrice = params.DefaultCommodityPrice(crop)
	}
	if prices.NutrientCost == 0 {
		prices.NutrientCost = params.DefaultNutrientCost(nutrient)
	}
	if prices.ApplicationCost == 0 {
		prices.ApplicationCost = s.defaultApplicationCost
	}
	return prices
}

func (s *AdvisoryService) resolvePriceSet(ctx context.Context, crop core.Crop, set economics.PriceSet) economics.PriceSet {
	resolved := economics.PriceSet{
		CommodityPrice:  set.CommodityPrice,
		NutrientCosts:   make(map[core.Nutrient]float64, len(core.Nutrients())),
		ApplicationCost: set.ApplicationCost,
	}
	if resolved.CommodityPrice == 0 {
		resolved.CommodityPrice = params.DefaultCommodityPrice(crop)
	}
	if resolved.ApplicationCost == 0 {
		resolved.ApplicationCost = s.defaultApplicationCost
	}
	for _, nutrient := range core.Nutrients() {
		prices := s.resolvePrices(ctx, crop, nutrient, economics.Prices{
			CommodityPrice:  resolved.CommodityPrice,
			NutrientCost:    set.NutrientCosts[nutrient],
			ApplicationCost: resolved.ApplicationCost,
		})
		resolved.NutrientCosts[nutrient] = prices.NutrientCost
	}
	return resolved
}
