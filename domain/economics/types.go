package economics

import (
	"agroyield/domain/core"
)

// Prices are supplied per call and never cached inside the engine.
type Prices struct {
	// CommodityPrice is currency per yield unit (e.g. $/bushel)
	CommodityPrice float64 `json:"commodity_price"`
	// NutrientCost is currency per unit of applied nutrient
	NutrientCost float64 `json:"nutrient_cost"`
	// ApplicationCost is a flat per-acre charge for making a pass at all
	ApplicationCost float64 `json:"application_cost"`
}

// Ratio is the price ratio governing where the marginal-return curve
// crosses zero: nutrient cost per unit over commodity price per unit.
func (p Prices) Ratio() float64 {
	if p.CommodityPrice == 0 {
		return 0
	}
	return p.NutrientCost / p.CommodityPrice
}

// InputCost is the total per-acre cost of applying the given rate.
// Zero rate means no pass, so no application charge.
func (p Prices) InputCost(rate float64) float64 {
	if rate <= 0 {
		return 0
	}
	return rate*p.NutrientCost + p.ApplicationCost
}

// PriceSet carries prices across nutrients for multi-nutrient operations.
type PriceSet struct {
	CommodityPrice  float64                   `json:"commodity_price"`
	NutrientCosts   map[core.Nutrient]float64 `json:"nutrient_costs"`
	ApplicationCost float64                   `json:"application_cost"`
}

// For flattens the set into the single-nutrient Prices the solver takes.
func (ps PriceSet) For(nutrient core.Nutrient) Prices {
	return Prices{
		CommodityPrice:  ps.CommodityPrice,
		NutrientCost:    ps.NutrientCosts[nutrient],
		ApplicationCost: ps.ApplicationCost,
	}
}

// YieldPoint is one sampled point on a response curve with its economics.
type YieldPoint struct {
	Rate            float64 `json:"rate"`
	PredictedYield  float64 `json:"predicted_yield"`
	InputCost       float64 `json:"input_cost"`
	GrossRevenue    float64 `json:"gross_revenue"`
	NetReturn       float64 `json:"net_return"`
	ReturnPerDollar float64 `json:"return_per_dollar"`
}

// EconomicOptimum is the full result of one solver run. Derived fresh on
// every call; nothing here is persisted by the engine itself.
type EconomicOptimum struct {
	Crop     core.Crop     `json:"crop"`
	Nutrient core.Nutrient `json:"nutrient"`

	OptimumRate       float64 `json:"optimum_rate"`
	OptimumYield      float64 `json:"optimum_yield"`
	AgronomicMaxRate  float64 `json:"agronomic_max_rate"`
	AgronomicMaxYield float64 `json:"agronomic_max_yield"`
	// YieldPctOfMax is optimum yield as a percentage of the agronomic max
	YieldPctOfMax float64 `json:"yield_at_optimum_as_pct_of_max"`

	TotalInputCost  float64 `json:"total_input_cost"`
	GrossRevenue    float64 `json:"gross_revenue"`
	NetReturn       float64 `json:"net_return"`
	ReturnPerDollar float64 `json:"return_per_dollar"`

	// BreakevenRate is the smallest scanned rate at which revenue first
	// drops below the zero-rate baseline; the scan ceiling when never found
	BreakevenRate float64 `json:"breakeven_rate"`
	PriceRatio    float64 `json:"price_ratio"`

	// Method records whether the closed form or the grid search produced
	// the optimum
	Method string `json:"method"`

	// Sensitivity maps perturbation scenario name to the shift in optimum
	// rate under that scenario (populated by the sensitivity analyzer)
	Sensitivity    map[string]float64 `json:"sensitivity,omitempty"`
	PriceSensitive bool               `json:"price_sensitive"`
}

// CurveSummary aggregates a generated curve for reporting.
type CurveSummary struct {
	PeakNetReturn       float64 `json:"peak_net_return"`
	PeakNetReturnRate   float64 `json:"peak_net_return_rate"`
	MeanReturnPerDollar float64 `json:"mean_return_per_dollar"`
}

// Curve is a swept response curve plus its attached optimum.
type Curve struct {
	Crop     core.Crop       `json:"crop"`
	Nutrient core.Nutrient   `json:"nutrient"`
	Points   []YieldPoint    `json:"points"`
	Optimum  EconomicOptimum `json:"optimum"`
	Summary  CurveSummary    `json:"summary"`
}

// Scenario is one candidate application rate evaluated for comparison.
type Scenario struct {
	Rate             float64 `json:"rate"`
	PredictedYield   float64 `json:"predicted_yield"`
	InputCostPerAcre float64 `json:"input_cost_per_acre"`
	NetReturnPerAcre float64 `json:"net_return_per_acre"`
	NetReturnTotal   float64 `json:"net_return_total"`
}

// ScenarioComparison ranks caller-chosen rates against the solved optimum.
type ScenarioComparison struct {
	Crop        core.Crop     `json:"crop"`
	Nutrient    core.Nutrient `json:"nutrient"`
	Acres       float64       `json:"acres"`
	Scenarios   []Scenario    `json:"scenarios"`
	Best        Scenario      `json:"best"`
	OptimumRate float64       `json:"optimum_rate"`
}

// AllocationStatus tags how a nutrient fared under a budget cap.
type AllocationStatus string

const (
	AllocationFullOptimum AllocationStatus = "full_optimum"
	AllocationReduced     AllocationStatus = "reduced"
	AllocationSkipped     AllocationStatus = "skipped"
)

// NutrientAllocation is one nutrient's share of a constrained budget.
type NutrientAllocation struct {
	Nutrient          core.Nutrient    `json:"nutrient"`
	Status            AllocationStatus `json:"status"`
	Rate              float64          `json:"rate"`
	UnconstrainedRate float64          `json:"unconstrained_rate"`
	CostPerAcre       float64          `json:"cost_per_acre"`
	TotalCost         float64          `json:"total_cost"`
	ReturnPerDollar   float64          `json:"return_per_dollar"`
}

// BudgetPlan is the allocator's output across all nutrients for a crop.
type BudgetPlan struct {
	Crop        core.Crop            `json:"crop"`
	Acres       float64              `json:"acres"`
	Budget      float64              `json:"budget"`
	Constrained bool                 `json:"constrained"`
	TotalCost   float64              `json:"total_cost"`
	PerNutrient []NutrientAllocation `json:"per_nutrient"`
	// Priority is a short textual summary of the funding order
	Priority string `json:"priority"`
}
