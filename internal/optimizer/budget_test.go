package optimizer

import (
	"math"
	"testing"

	"agroyield/domain/agronomy"
	"agroyield/domain/core"
	"agroyield/domain/economics"
)

func cornPriceSet() economics.PriceSet {
	return economics.PriceSet{
		CommodityPrice: 4.50,
		NutrientCosts: map[core.Nutrient]float64{
			core.NutrientNitrogen:   0.50,
			core.NutrientPhosphorus: 0.65,
			core.NutrientPotassium:  0.45,
			core.NutrientSulfur:     0.55,
		},
	}
}

func newTestAllocator() *Allocator {
	return NewAllocator(NewSolver(agronomy.NewPredictor()))
}

func budgetOf(v float64) *float64 { return &v }

func TestAllocate_UnconstrainedFundsEveryOptimum(t *testing.T) {
	allocator := newTestAllocator()
	plan, err := allocator.Allocate(AllocationRequest{
		Crop: core.CropCorn, Acres: 1, Prices: cornPriceSet(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Constrained {
		t.Error("no budget means unconstrained")
	}
	if len(plan.PerNutrient) != 4 {
		t.Fatalf("corn should allocate 4 nutrients, got %d", len(plan.PerNutrient))
	}
	total := 0.0
	for _, alloc := range plan.PerNutrient {
		if alloc.Status != economics.AllocationFullOptimum {
			t.Errorf("%s: status %s, want full_optimum", alloc.Nutrient, alloc.Status)
		}
		if alloc.Rate != alloc.UnconstrainedRate {
			t.Errorf("%s: rate %v differs from unconstrained %v",
				alloc.Nutrient, alloc.Rate, alloc.UnconstrainedRate)
		}
		total += alloc.TotalCost
	}
	if math.Abs(total-plan.TotalCost) > 1e-9 {
		t.Errorf("per-nutrient costs %v do not sum to plan total %v", total, plan.TotalCost)
	}
	if plan.Priority == "" {
		t.Error("priority summary must not be empty")
	}
}

func TestAllocate_GenerousBudgetMatchesUnconstrained(t *testing.T) {
	allocator := newTestAllocator()
	unconstrained, err := allocator.Allocate(AllocationRequest{
		Crop: core.CropCorn, Acres: 1, Prices: cornPriceSet(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	generous, err := allocator.Allocate(AllocationRequest{
		Crop: core.CropCorn, Acres: 1, Budget: budgetOf(100000), Prices: cornPriceSet(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if generous.Constrained {
		t.Error("a budget above the total optimum cost is unconstrained")
	}
	if math.Abs(generous.TotalCost-unconstrained.TotalCost) > 1e-9 {
		t.Errorf("generous budget total %v differs from unconstrained %v",
			generous.TotalCost, unconstrained.TotalCost)
	}
}

func TestAllocate_ConstrainedNeverExceedsBudget(t *testing.T) {
	allocator := newTestAllocator()
	for _, appCost := range []float64{0, 12, 40} {
		for _, budget := range []float64{10, 50, 100, 150, 180} {
			prices := cornPriceSet()
			prices.ApplicationCost = appCost
			plan, err := allocator.Allocate(AllocationRequest{
				Crop: core.CropCorn, Acres: 1, Budget: budgetOf(budget), Prices: prices,
			})
			if err != nil {
				t.Fatalf("budget %v app cost %v: %v", budget, appCost, err)
			}
			if !plan.Constrained {
				t.Errorf("budget %v app cost %v should constrain the corn plan", budget, appCost)
			}
			if plan.TotalCost > budget+1e-9 {
				t.Errorf("budget %v app cost %v: allocated %v", budget, appCost, plan.TotalCost)
			}
		}
	}
}

func TestAllocate_FlatApplicationCostAtTheMargin(t *testing.T) {
	allocator := newTestAllocator()
	prices := cornPriceSet()
	prices.ApplicationCost = 12

	// $180 leaves $39.50 for the marginal nutrient after the three
	// cheaper ones are fully funded: the reduced rate must price out to
	// exactly that, pass charge included, not the charge added on top.
	plan, err := allocator.Allocate(AllocationRequest{
		Crop: core.CropCorn, Acres: 1, Budget: budgetOf(180), Prices: prices,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.TotalCost > 180+1e-9 {
		t.Fatalf("allocated %v against a $180 budget", plan.TotalCost)
	}
	var reduced *economics.NutrientAllocation
	for i := range plan.PerNutrient {
		if plan.PerNutrient[i].Status == economics.AllocationReduced {
			reduced = &plan.PerNutrient[i]
		}
	}
	if reduced == nil {
		t.Fatal("expected a reduced nutrient at the margin")
	}
	nutrientCost := prices.NutrientCosts[reduced.Nutrient]
	want := reduced.Rate*nutrientCost + prices.ApplicationCost
	if math.Abs(reduced.CostPerAcre-want) > 1e-9 {
		t.Errorf("%s: reduced cost per acre %v, want %v (pass charge counted once)",
			reduced.Nutrient, reduced.CostPerAcre, want)
	}

	// $150 leaves $9.50 at the margin, below the $12 pass charge: the
	// marginal nutrient must be skipped, not funded past the budget.
	plan, err = allocator.Allocate(AllocationRequest{
		Crop: core.CropCorn, Acres: 1, Budget: budgetOf(150), Prices: prices,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.TotalCost > 150+1e-9 {
		t.Fatalf("allocated %v against a $150 budget", plan.TotalCost)
	}
	for _, alloc := range plan.PerNutrient {
		if alloc.Status == economics.AllocationReduced {
			t.Errorf("%s reduced although the remaining budget cannot cover the pass charge", alloc.Nutrient)
		}
	}
}

func TestAllocate_GreedyOrderAndStatuses(t *testing.T) {
	allocator := newTestAllocator()
	plan, err := allocator.Allocate(AllocationRequest{
		Crop: core.CropCorn, Acres: 1, Budget: budgetOf(100), Prices: cornPriceSet(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Output is ranked by return per dollar, descending
	for i := 1; i < len(plan.PerNutrient); i++ {
		if plan.PerNutrient[i].ReturnPerDollar > plan.PerNutrient[i-1].ReturnPerDollar {
			t.Errorf("allocation order not ranked by return per dollar at %d", i)
		}
	}

	var reduced, skipped int
	seenReduced := false
	for _, alloc := range plan.PerNutrient {
		switch alloc.Status {
		case economics.AllocationReduced:
			reduced++
			seenReduced = true
			if alloc.Rate >= alloc.UnconstrainedRate {
				t.Errorf("%s: reduced rate %v not below unconstrained %v",
					alloc.Nutrient, alloc.Rate, alloc.UnconstrainedRate)
			}
		case economics.AllocationSkipped:
			skipped++
			if !seenReduced {
				t.Errorf("%s skipped before any nutrient was reduced", alloc.Nutrient)
			}
			if alloc.Rate != 0 || alloc.TotalCost != 0 {
				t.Errorf("%s: skipped allocation must be zeroed", alloc.Nutrient)
			}
		}
	}
	if reduced != 1 {
		t.Errorf("expected exactly one reduced nutrient at the margin, got %d", reduced)
	}
	if skipped == 0 {
		t.Error("a $100 corn budget should leave at least one nutrient unfunded")
	}
}

func TestAllocate_AcresScaleCosts(t *testing.T) {
	allocator := newTestAllocator()
	one, err := allocator.Allocate(AllocationRequest{
		Crop: core.CropCorn, Acres: 1, Prices: cornPriceSet(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hundred, err := allocator.Allocate(AllocationRequest{
		Crop: core.CropCorn, Acres: 100, Prices: cornPriceSet(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(hundred.TotalCost-one.TotalCost*100) > 1e-6 {
		t.Errorf("100 acres should cost 100x one acre: %v vs %v", hundred.TotalCost, one.TotalCost)
	}
}

func TestAllocate_InvalidInputs(t *testing.T) {
	allocator := newTestAllocator()
	if _, err := allocator.Allocate(AllocationRequest{Crop: core.CropCorn, Acres: 0}); err == nil {
		t.Error("zero acres must be rejected")
	}
	if _, err := allocator.Allocate(AllocationRequest{Crop: "quinoa", Acres: 1}); err == nil {
		t.Error("crop without table entries must be rejected")
	}
}
