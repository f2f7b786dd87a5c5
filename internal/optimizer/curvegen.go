package optimizer

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"agroyield/domain/agronomy"
	"agroyield/domain/core"
	"agroyield/domain/curve"
	"agroyield/domain/economics"
	"agroyield/domain/params"
	"agroyield/internal/errors"
)

// Curve generation defaults. The sweep runs 20% past the agronomic max
// so reports show the flat (or declining) region beyond the optimum.
const (
	defaultCurveStep   = 10.0
	curveRangeHeadroom = 1.2
	minCurveMax        = 40.0
)

// RateRange bounds a curve sweep; nil means the generator picks one.
type RateRange struct {
	Lo float64
	Hi float64
}

// Generator sweeps the response curve and packages per-point economics.
type Generator struct {
	predictor *agronomy.Predictor
	solver    *Solver
}

func NewGenerator(predictor *agronomy.Predictor, solver *Solver) *Generator {
	return &Generator{predictor: predictor, solver: solver}
}

// Generate sweeps [lo, hi] at the given step (defaults applied when zero
// or nil), attaches the solved optimum, and summarizes the curve.
func (g *Generator) Generate(crop core.Crop, nutrient core.Nutrient, rng *RateRange, step float64, cond agronomy.Conditions, prices economics.Prices) (economics.Curve, error) {
	p, err := params.Lookup(crop, nutrient)
	if err != nil {
		return economics.Curve{}, err
	}
	model, err := curve.ForShape(p.Shape)
	if err != nil {
		return economics.Curve{}, err
	}
	if step <= 0 {
		step = defaultCurveStep
	}
	if rng != nil && rng.Hi < rng.Lo {
		return economics.Curve{}, errors.InvalidInput("curve range upper bound is below lower bound")
	}

	adjusted := g.predictor.Adjusted(p, cond)
	var credit float64
	if nutrient == core.NutrientNitrogen {
		credit = p.NitrogenCredit(cond.PreviousCrop)
	}

	lo, hi := g.sweepBounds(model, adjusted, credit, rng)
	rates := rateGrid(lo, hi, step)

	points := make([]economics.YieldPoint, 0, len(rates))
	netReturns := make([]float64, 0, len(rates))
	perDollar := make([]float64, 0, len(rates))
	for _, rate := range rates {
		yield := model.Evaluate(rate+credit, adjusted)
		cost := prices.InputCost(rate)
		gross := yield * prices.CommodityPrice
		point := economics.YieldPoint{
			Rate:            rate,
			PredictedYield:  yield,
			InputCost:       cost,
			GrossRevenue:    gross,
			NetReturn:       gross - cost,
			ReturnPerDollar: returnPerDollar(gross, cost),
		}
		points = append(points, point)
		netReturns = append(netReturns, point.NetReturn)
		perDollar = append(perDollar, point.ReturnPerDollar)
	}

	optimum, err := g.solver.ComputeWith(p, cond, prices)
	if err != nil {
		return economics.Curve{}, err
	}

	return economics.Curve{
		Crop:     crop,
		Nutrient: nutrient,
		Points:   points,
		Optimum:  optimum,
		Summary:  summarize(points, netReturns, perDollar),
	}, nil
}

// sweepBounds picks the default range [0, 1.2 x agronomic max] when the
// caller gave none, clamped so flat responses still get a readable sweep.
// A caller range with Hi == Lo is a single-point sweep, not a default.
func (g *Generator) sweepBounds(model curve.Model, p params.ResponseParameters, credit float64, rng *RateRange) (float64, float64) {
	if rng != nil {
		lo := flooredAtZero(rng.Lo)
		return lo, math.Max(lo, rng.Hi)
	}
	hi := g.solver.agronomicMaxApplied(model, p, credit) * curveRangeHeadroom
	if hi < minCurveMax {
		hi = minCurveMax
	}
	if hi > searchMaxRate {
		hi = searchMaxRate
	}
	return 0, hi
}

// rateGrid builds an ascending, evenly spaced rate grid covering
// [lo, hi] at the given step.
func rateGrid(lo, hi, step float64) []float64 {
	n := int((hi-lo)/step) + 1
	if n < 2 {
		return []float64{lo}
	}
	grid := make([]float64, n)
	floats.Span(grid, lo, lo+step*float64(n-1))
	return grid
}

func summarize(points []economics.YieldPoint, netReturns, perDollar []float64) economics.CurveSummary {
	if len(points) == 0 {
		return economics.CurveSummary{}
	}
	peak, err := stats.Max(netReturns)
	if err != nil {
		return economics.CurveSummary{}
	}
	summary := economics.CurveSummary{PeakNetReturn: peak}
	for _, point := range points {
		if point.NetReturn == peak {
			summary.PeakNetReturnRate = point.Rate
			break
		}
	}
	if mean, err := stats.Mean(perDollar); err == nil {
		summary.MeanReturnPerDollar = mean
	}
	return summary
}
