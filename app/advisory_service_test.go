package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroyield/domain/agronomy"
	"agroyield/domain/core"
	"agroyield/domain/economics"
	"agroyield/internal/errors"
	"agroyield/internal/optimizer"
	"agroyield/models"
)

type fakeResultRepo struct {
	saved []*models.OptimizationRecord
}

func (f *fakeResultRepo) SaveResult(ctx context.Context, record *models.OptimizationRecord) error {
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakeResultRepo) RecentResults(ctx context.Context, limit int) ([]models.OptimizationRecord, error) {
	out := make([]models.OptimizationRecord, 0, len(f.saved))
	for _, r := range f.saved {
		out = append(out, *r)
	}
	return out, nil
}

type fakeOverrideReader struct {
	prices economics.Prices
	ok     bool
}

func (f *fakeOverrideReader) OverrideFor(ctx context.Context, crop core.Crop, nutrient core.Nutrient) (economics.Prices, bool, error) {
	return f.prices, f.ok, nil
}

func cornPrices() economics.Prices {
	return economics.Prices{CommodityPrice: 4.50, NutrientCost: 0.50}
}

func TestComputeOptimum_AttachesSensitivity(t *testing.T) {
	service := NewAdvisoryService(nil, nil)
	opt, err := service.ComputeOptimum(context.Background(), core.CropCorn, core.NutrientNitrogen,
		agronomy.Conditions{}, cornPrices())
	require.NoError(t, err)

	assert.Len(t, opt.Sensitivity, 4)
	assert.InDelta(t, 167.9, opt.OptimumRate, 0.1)
	assert.False(t, opt.PriceSensitive)
}

func TestGenerateCurve_OptimumMatchesDirectCompute(t *testing.T) {
	service := NewAdvisoryService(nil, nil)
	ctx := context.Background()
	prices := cornPrices()

	curve, err := service.GenerateCurve(ctx, core.CropCorn, core.NutrientNitrogen, nil, 10,
		agronomy.Conditions{}, prices)
	require.NoError(t, err)
	direct, err := service.ComputeOptimum(ctx, core.CropCorn, core.NutrientNitrogen,
		agronomy.Conditions{}, prices)
	require.NoError(t, err)

	assert.Equal(t, direct, curve.Optimum,
		"the optimum attached to a curve must equal a direct computation with identical inputs")
}

func TestComputeOptimum_PersistsSummary(t *testing.T) {
	repo := &fakeResultRepo{}
	service := NewAdvisoryService(repo, nil)

	_, err := service.ComputeOptimum(context.Background(), core.CropCorn, core.NutrientNitrogen,
		agronomy.Conditions{}, cornPrices())
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "corn", repo.saved[0].Crop)
	assert.Equal(t, "nitrogen", repo.saved[0].Nutrient)
	assert.NotZero(t, repo.saved[0].ID)

	records, err := service.RecentResults(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestComputeOptimum_ZeroPricesFallBackToDefaults(t *testing.T) {
	service := NewAdvisoryService(nil, nil)
	opt, err := service.ComputeOptimum(context.Background(), core.CropCorn, core.NutrientNitrogen,
		agronomy.Conditions{}, economics.Prices{})
	require.NoError(t, err)

	// Table defaults: $4.50 commodity, $0.50 nitrogen
	assert.InDelta(t, 0.1111, opt.PriceRatio, 0.001)
	assert.Greater(t, opt.OptimumRate, 0.0)
}

func TestComputeOptimum_UsesPriceOverrides(t *testing.T) {
	overrides := &fakeOverrideReader{
		prices: economics.Prices{CommodityPrice: 9.0, NutrientCost: 1.0},
		ok:     true,
	}
	service := NewAdvisoryService(nil, overrides)

	opt, err := service.ComputeOptimum(context.Background(), core.CropCorn, core.NutrientNitrogen,
		agronomy.Conditions{}, economics.Prices{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/9.0, opt.PriceRatio, 1e-9)

	// Caller-supplied prices always beat stored overrides
	opt, err = service.ComputeOptimum(context.Background(), core.CropCorn, core.NutrientNitrogen,
		agronomy.Conditions{}, cornPrices())
	require.NoError(t, err)
	assert.InDelta(t, 0.1111, opt.PriceRatio, 0.001)
}

func TestCompareScenarios(t *testing.T) {
	service := NewAdvisoryService(nil, nil)
	comparison, err := service.CompareScenarios(context.Background(), core.CropCorn, core.NutrientNitrogen,
		[]float64{0, 100, 168, 250}, agronomy.Conditions{}, cornPrices(), 80)
	require.NoError(t, err)

	require.Len(t, comparison.Scenarios, 4)
	assert.InDelta(t, 168, comparison.Best.Rate, 0.1,
		"the scenario nearest the optimum should win")
	assert.InDelta(t, 167.9, comparison.OptimumRate, 0.1)
	for _, scenario := range comparison.Scenarios {
		assert.InDelta(t, scenario.NetReturnPerAcre*80, scenario.NetReturnTotal, 1e-6)
	}
}

func TestCompareScenarios_InvalidInputs(t *testing.T) {
	service := NewAdvisoryService(nil, nil)
	ctx := context.Background()

	_, err := service.CompareScenarios(ctx, core.CropCorn, core.NutrientNitrogen,
		nil, agronomy.Conditions{}, cornPrices(), 80)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))

	_, err = service.CompareScenarios(ctx, core.CropCorn, core.NutrientNitrogen,
		[]float64{100}, agronomy.Conditions{}, cornPrices(), 0)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))

	_, err = service.CompareScenarios(ctx, "quinoa", core.NutrientNitrogen,
		[]float64{100}, agronomy.Conditions{}, cornPrices(), 80)
	assert.True(t, errors.HasCode(err, errors.CodeUnknownCropNutrient))
}

func TestAllocateBudget_FillsDefaultNutrientCosts(t *testing.T) {
	service := NewAdvisoryService(nil, nil)
	budget := 120.0
	plan, err := service.AllocateBudget(context.Background(), optimizer.AllocationRequest{
		Crop:   core.CropCorn,
		Acres:  1,
		Budget: &budget,
		Prices: economics.PriceSet{CommodityPrice: 4.50},
	})
	require.NoError(t, err)

	assert.True(t, plan.Constrained)
	assert.LessOrEqual(t, plan.TotalCost, budget)
	assert.Len(t, plan.PerNutrient, 4)
}

func TestRecommendations(t *testing.T) {
	service := NewAdvisoryService(nil, nil)
	ctx := context.Background()

	opt, err := service.ComputeOptimum(ctx, core.CropCorn, core.NutrientNitrogen,
		agronomy.Conditions{}, cornPrices())
	require.NoError(t, err)
	lines, err := service.Recommendations(opt, agronomy.Conditions{})
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "Apply")

	// An N-fixing crop gets the not-economical framing
	opt, err = service.ComputeOptimum(ctx, core.CropSoybean, core.NutrientNitrogen,
		agronomy.Conditions{}, economics.Prices{CommodityPrice: 11, NutrientCost: 0.5})
	require.NoError(t, err)
	lines, err = service.Recommendations(opt, agronomy.Conditions{})
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "not economical")
}

func TestPredictYield(t *testing.T) {
	service := NewAdvisoryService(nil, nil)
	yield, err := service.PredictYield(core.CropCorn, core.NutrientNitrogen, 0, agronomy.Conditions{})
	require.NoError(t, err)
	assert.Equal(t, 80.0, yield)

	_, err = service.PredictYield("quinoa", core.NutrientNitrogen, 0, agronomy.Conditions{})
	assert.True(t, errors.HasCode(err, errors.CodeUnknownCropNutrient))
}
