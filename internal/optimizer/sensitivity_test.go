package optimizer

import (
	"context"
	"math"
	"testing"

	"agroyield/domain/agronomy"
	"agroyield/domain/core"
	"agroyield/domain/economics"
	"agroyield/domain/params"
)

func TestAnalyze_FourScenarios(t *testing.T) {
	solver := newTestSolver()
	analyzer := NewAnalyzer(solver)
	p, err := params.Lookup(core.CropCorn, core.NutrientNitrogen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prices := cornPrices()

	base, err := solver.ComputeWith(p, agronomy.Conditions{}, prices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deltas, sensitive, err := analyzer.Analyze(context.Background(), p, agronomy.Conditions{}, prices, base.OptimumRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(deltas) != 4 {
		t.Fatalf("expected 4 perturbation scenarios, got %d", len(deltas))
	}
	for _, name := range []string{
		"commodity_up_20", "commodity_down_20",
		"nutrient_cost_up_20", "nutrient_cost_down_20",
	} {
		if _, ok := deltas[name]; !ok {
			t.Errorf("missing scenario %s", name)
		}
	}

	// A pricier commodity justifies more input; a pricier nutrient less
	if deltas["commodity_up_20"] < 0 {
		t.Errorf("commodity_up_20 delta = %v, want >= 0", deltas["commodity_up_20"])
	}
	if deltas["nutrient_cost_up_20"] > 0 {
		t.Errorf("nutrient_cost_up_20 delta = %v, want <= 0", deltas["nutrient_cost_up_20"])
	}
	if deltas["nutrient_cost_down_20"] < 0 {
		t.Errorf("nutrient_cost_down_20 delta = %v, want >= 0", deltas["nutrient_cost_down_20"])
	}

	// Corn nitrogen at a low price ratio moves only a few units per swing
	if sensitive {
		t.Errorf("corn nitrogen at these prices should not be price-sensitive: %v", deltas)
	}
}

func TestAnalyze_FlagsPriceSensitiveRates(t *testing.T) {
	solver := newTestSolver()
	analyzer := NewAnalyzer(solver)
	p, err := params.Lookup(core.CropCorn, core.NutrientNitrogen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A high price ratio amplifies rate shifts: delta per 20% cost swing
	// is 0.2*cost/(price*2*quad) ~ 20 units here.
	prices := economics.Prices{CommodityPrice: 4.50, NutrientCost: 2.0}

	base, err := solver.ComputeWith(p, agronomy.Conditions{}, prices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deltas, sensitive, err := analyzer.Analyze(context.Background(), p, agronomy.Conditions{}, prices, base.OptimumRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sensitive {
		t.Errorf("expected a price-sensitive flag, deltas: %v", deltas)
	}
	exceeds := false
	for _, delta := range deltas {
		if math.Abs(delta) > PriceSensitiveThreshold {
			exceeds = true
		}
	}
	if !exceeds {
		t.Error("sensitive flag set but no delta exceeds the threshold")
	}
}

func TestAnalyze_CancelledContext(t *testing.T) {
	solver := newTestSolver()
	analyzer := NewAnalyzer(solver)
	p, err := params.Lookup(core.CropCorn, core.NutrientNitrogen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := analyzer.Analyze(ctx, p, agronomy.Conditions{}, cornPrices(), 100); err == nil {
		t.Error("expected error from cancelled context")
	}
}
