package optimizer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"agroyield/domain/agronomy"
	"agroyield/domain/core"
	"agroyield/domain/economics"
	"agroyield/domain/params"
	"agroyield/internal/errors"
)

// AllocationRequest is one budget run across every nutrient the crop has
// a response entry for. A nil Budget means unconstrained.
type AllocationRequest struct {
	Crop         core.Crop
	Acres        float64
	Budget       *float64
	SoilTestP    *float64
	SoilTestK    *float64
	PreviousCrop core.PreviousCrop
	Prices       economics.PriceSet
}

// Allocator splits a capped spend across nutrients by descending return
// per dollar. Greedy by construction: each nutrient's optimum is solved
// independently, so cross-nutrient agronomic interactions are not
// modeled and the result is a ranking heuristic, not a joint optimum.
type Allocator struct {
	solver *Solver
}

func NewAllocator(solver *Solver) *Allocator {
	return &Allocator{solver: solver}
}

// Allocate funds each nutrient at its unconstrained optimum when the
// budget allows, otherwise walks the return-per-dollar ranking: full
// funding while budget lasts, one proportional partial allocation at the
// margin, zero for the rest.
func (a *Allocator) Allocate(req AllocationRequest) (economics.BudgetPlan, error) {
	if req.Acres <= 0 {
		return economics.BudgetPlan{}, errors.InvalidInput("acres must be positive")
	}

	nutrients := params.NutrientsFor(req.Crop)
	if len(nutrients) == 0 {
		return economics.BudgetPlan{}, errors.UnknownCropNutrient(string(req.Crop), "any")
	}

	type candidate struct {
		allocation economics.NutrientAllocation
		prices     economics.Prices
	}
	candidates := make([]candidate, 0, len(nutrients))
	totalCost := 0.0
	for _, nutrient := range nutrients {
		cond := a.conditionsFor(nutrient, req)
		prices := req.Prices.For(nutrient)
		opt, err := a.solver.Compute(req.Crop, nutrient, cond, prices)
		if err != nil {
			return economics.BudgetPlan{}, err
		}
		cost := opt.TotalInputCost * req.Acres
		candidates = append(candidates, candidate{
			allocation: economics.NutrientAllocation{
				Nutrient:          nutrient,
				Status:            economics.AllocationFullOptimum,
				Rate:              opt.OptimumRate,
				UnconstrainedRate: opt.OptimumRate,
				CostPerAcre:       opt.TotalInputCost,
				TotalCost:         cost,
				ReturnPerDollar:   opt.ReturnPerDollar,
			},
			prices: prices,
		})
		totalCost += cost
	}

	plan := economics.BudgetPlan{
		Crop:  req.Crop,
		Acres: req.Acres,
	}
	if req.Budget != nil {
		plan.Budget = *req.Budget
	}

	// Rank by return per dollar before deciding anything; the order also
	// drives the priority summary for the unconstrained case.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].allocation.ReturnPerDollar > candidates[j].allocation.ReturnPerDollar
	})

	if req.Budget == nil || totalCost <= *req.Budget {
		// Each optimum is individually profit-maximizing and independent
		// across nutrients here, so nothing is scaled.
		plan.Constrained = false
		plan.TotalCost = totalCost
		for _, c := range candidates {
			plan.PerNutrient = append(plan.PerNutrient, c.allocation)
		}
		plan.Priority = prioritySummary(plan.PerNutrient)
		return plan, nil
	}

	plan.Constrained = true
	remaining := *req.Budget
	exhausted := false
	for _, c := range candidates {
		alloc := c.allocation
		switch {
		case exhausted:
			alloc = zeroAllocation(alloc)
		case alloc.TotalCost <= remaining:
			remaining -= alloc.TotalCost
		case remaining <= 0:
			alloc = zeroAllocation(alloc)
		default:
			// Partial allocation at the margin: the largest rate the
			// remaining budget still covers, flat pass charge included.
			// Everything ranked below gets nothing.
			rate := math.Min(affordableRate(remaining/req.Acres, c.prices), alloc.UnconstrainedRate)
			if rate <= 0 {
				alloc = zeroAllocation(alloc)
			} else {
				alloc.Rate = rate
				alloc.CostPerAcre = c.prices.InputCost(rate)
				alloc.TotalCost = alloc.CostPerAcre * req.Acres
				alloc.Status = economics.AllocationReduced
				remaining -= alloc.TotalCost
			}
			exhausted = true
		}
		plan.TotalCost += alloc.TotalCost
		plan.PerNutrient = append(plan.PerNutrient, alloc)
	}
	plan.Priority = prioritySummary(plan.PerNutrient)
	return plan, nil
}

func (a *Allocator) conditionsFor(nutrient core.Nutrient, req AllocationRequest) agronomy.Conditions {
	cond := agronomy.Conditions{PreviousCrop: req.PreviousCrop}
	switch nutrient {
	case core.NutrientPhosphorus:
		cond.SoilTest = req.SoilTestP
	case core.NutrientPotassium:
		cond.SoilTest = req.SoilTestK
	}
	return cond
}

// affordableRate is the highest application rate whose per-acre input
// cost fits the per-acre budget. Zero when the budget cannot even cover
// the flat application charge.
func affordableRate(budgetPerAcre float64, prices economics.Prices) float64 {
	spend := budgetPerAcre - prices.ApplicationCost
	if spend <= 0 || prices.NutrientCost <= 0 {
		return 0
	}
	return spend / prices.NutrientCost
}

func zeroAllocation(alloc economics.NutrientAllocation) economics.NutrientAllocation {
	alloc.Rate = 0
	alloc.CostPerAcre = 0
	alloc.TotalCost = 0
	alloc.Status = economics.AllocationSkipped
	return alloc
}

func prioritySummary(allocations []economics.NutrientAllocation) string {
	parts := make([]string, 0, len(allocations))
	for _, alloc := range allocations {
		parts = append(parts, fmt.Sprintf("%s (%.2f/$)", alloc.Nutrient, alloc.ReturnPerDollar))
	}
	return strings.Join(parts, " > ")
}
