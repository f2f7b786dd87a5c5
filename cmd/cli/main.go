package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"agroyield/app"
	"agroyield/domain/agronomy"
	"agroyield/domain/core"
	"agroyield/domain/economics"
	"agroyield/internal/optimizer"
)

// One-shot advisory runs from the command line: solve an optimum or
// allocate a budget without standing up the HTTP server.
func main() {
	crop := flag.String("crop", "corn", "crop to optimize for")
	nutrient := flag.String("nutrient", "nitrogen", "nutrient to optimize")
	commodity := flag.Float64("price", 0, "commodity price per yield unit (0 = table default)")
	cost := flag.Float64("cost", 0, "nutrient cost per unit (0 = table default)")
	appCost := flag.Float64("app-cost", 0, "flat application cost per acre")
	soilTest := flag.Float64("soil-test", -1, "soil test level (-1 = none)")
	prevCrop := flag.String("previous-crop", "", "previous crop for nitrogen credit")
	budget := flag.Float64("budget", -1, "total budget across nutrients (-1 = unconstrained optimum only)")
	acres := flag.Float64("acres", 1, "field size in acres")
	flag.Parse()

	service := app.NewAdvisoryService(nil, nil)
	ctx := context.Background()

	cond := agronomy.Conditions{PreviousCrop: core.PreviousCrop(*prevCrop)}
	if *soilTest >= 0 {
		cond.SoilTest = soilTest
	}
	prices := economics.Prices{
		CommodityPrice:  *commodity,
		NutrientCost:    *cost,
		ApplicationCost: *appCost,
	}

	if *budget >= 0 {
		plan, err := service.AllocateBudget(ctx, optimizer.AllocationRequest{
			Crop:         core.Crop(*crop),
			Acres:        *acres,
			Budget:       budget,
			PreviousCrop: core.PreviousCrop(*prevCrop),
			Prices: economics.PriceSet{
				CommodityPrice:  *commodity,
				ApplicationCost: *appCost,
			},
		})
		if err != nil {
			log.Fatalf("budget allocation failed: %v", err)
		}
		printBudget(service, plan)
		return
	}

	opt, err := service.ComputeOptimum(ctx, core.Crop(*crop), core.Nutrient(*nutrient), cond, prices)
	if err != nil {
		log.Fatalf("optimization failed: %v", err)
	}
	printOptimum(service, opt, cond)
}

func printOptimum(service *app.AdvisoryService, opt economics.EconomicOptimum, cond agronomy.Conditions) {
	fmt.Printf("%s / %s\n", opt.Crop, opt.Nutrient)
	fmt.Printf("  optimum rate:       %.1f units/acre (%s)\n", opt.OptimumRate, opt.Method)
	fmt.Printf("  optimum yield:      %.1f (%.1f%% of agronomic max)\n", opt.OptimumYield, opt.YieldPctOfMax)
	fmt.Printf("  agronomic max rate: %.1f units/acre\n", opt.AgronomicMaxRate)
	fmt.Printf("  net return:         $%.2f/acre\n", opt.NetReturn)
	fmt.Printf("  return per dollar:  %.2f\n", opt.ReturnPerDollar)
	fmt.Printf("  breakeven rate:     %.0f units/acre\n", opt.BreakevenRate)
	for name, delta := range opt.Sensitivity {
		fmt.Printf("  sensitivity %-22s %+.1f units\n", name+":", delta)
	}
	if lines, err := service.Recommendations(opt, cond); err == nil {
		fmt.Println(strings.Repeat("-", 40))
		for _, line := range lines {
			fmt.Println("  " + line)
		}
	}
}

func printBudget(service *app.AdvisoryService, plan economics.BudgetPlan) {
	fmt.Printf("%s budget plan (%.0f acres, constrained=%t)\n", plan.Crop, plan.Acres, plan.Constrained)
	for _, alloc := range plan.PerNutrient {
		fmt.Printf("  %-11s %-12s %.1f units/acre  $%.2f total\n",
			alloc.Nutrient, alloc.Status, alloc.Rate, alloc.TotalCost)
	}
	fmt.Printf("  total cost: $%.2f\n", plan.TotalCost)
	for _, line := range service.BudgetRecommendations(plan) {
		fmt.Println("  " + line)
	}
}
