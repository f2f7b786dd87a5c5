package optimizer

import (
	"fmt"

	"agroyield/domain/agronomy"
	"agroyield/domain/economics"
	"agroyield/domain/params"
)

// Recommend turns a solved optimum into short guidance strings. Pure
// formatting; every number here was computed upstream.
func Recommend(opt economics.EconomicOptimum, p params.ResponseParameters, cond agronomy.Conditions) []string {
	var lines []string

	if opt.OptimumRate <= 0 {
		lines = append(lines, fmt.Sprintf(
			"Applying %s to %s is not economical at current prices; the expected response does not cover its cost.",
			opt.Nutrient, opt.Crop))
		return append(lines, soilTestCaveat(p, cond)...)
	}

	lines = append(lines, fmt.Sprintf(
		"Apply %.0f units/acre of %s to %s for a projected net return of $%.2f/acre.",
		opt.OptimumRate, opt.Nutrient, opt.Crop, opt.NetReturn))

	if gap := opt.AgronomicMaxRate - opt.OptimumRate; gap > 1 {
		sacrificed := opt.AgronomicMaxYield - opt.OptimumYield
		lines = append(lines, fmt.Sprintf(
			"Maximum yield would take %.0f more units/acre for only %.1f extra yield units; that yield is cheaper to forgo than to buy.",
			gap, sacrificed))
	}

	if opt.ReturnPerDollar > 0 {
		lines = append(lines, fmt.Sprintf(
			"Every input dollar returns $%.2f in gross revenue at this rate.", opt.ReturnPerDollar))
	}

	if opt.PriceSensitive {
		lines = append(lines, fmt.Sprintf(
			"This rate is price-sensitive: a 20%% price swing moves the optimum by more than %.0f units/acre. Re-check before committing.",
			PriceSensitiveThreshold))
	}

	return append(lines, soilTestCaveat(p, cond)...)
}

// RecommendBudget summarizes a constrained allocation plan.
func RecommendBudget(plan economics.BudgetPlan) []string {
	if !plan.Constrained {
		return []string{fmt.Sprintf(
			"Budget covers every nutrient at its optimum rate; total spend $%.2f across %.0f acres.",
			plan.TotalCost, plan.Acres)}
	}
	lines := []string{fmt.Sprintf(
		"Budget of $%.2f cannot fund all optima; nutrients funded in order of return per dollar: %s.",
		plan.Budget, plan.Priority)}
	for _, alloc := range plan.PerNutrient {
		switch alloc.Status {
		case economics.AllocationReduced:
			lines = append(lines, fmt.Sprintf(
				"%s is cut to %.0f units/acre (optimum %.0f) to fit the remaining budget.",
				alloc.Nutrient, alloc.Rate, alloc.UnconstrainedRate))
		case economics.AllocationSkipped:
			lines = append(lines, fmt.Sprintf(
				"%s is unfunded this season; its return ranks below the budgeted nutrients.", alloc.Nutrient))
		}
	}
	return lines
}

func soilTestCaveat(p params.ResponseParameters, cond agronomy.Conditions) []string {
	if !p.Nutrient.SoilTestResponsive() || cond.SoilTest == nil || p.CriticalSoilTest <= 0 {
		return nil
	}
	soilTest := *cond.SoilTest
	switch {
	case soilTest >= 2*p.CriticalSoilTest:
		return []string{fmt.Sprintf(
			"Soil test %.0f is far above the critical level of %.0f; expect minimal response and consider skipping maintenance applications.",
			soilTest, p.CriticalSoilTest)}
	case soilTest < p.CriticalSoilTest/2:
		return []string{fmt.Sprintf(
			"Soil test %.0f is well below the critical level of %.0f; responses should run strong until the soil builds up.",
			soilTest, p.CriticalSoilTest)}
	}
	return nil
}
