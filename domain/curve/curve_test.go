package curve

import (
	"math"
	"testing"

	"agroyield/domain/params"
)

func quadraticParams() params.ResponseParameters {
	return params.ResponseParameters{
		Shape:     params.ShapeQuadratic,
		BaseYield: 80, LinearCoef: 0.85, QuadraticCoef: 0.0022,
		PlateauYield: 220,
	}
}

func TestForShape_AllShapesRegistered(t *testing.T) {
	shapes := []params.Shape{
		params.ShapeQuadratic,
		params.ShapeQuadraticPlateau,
		params.ShapeLinearPlateau,
		params.ShapeMitscherlich,
		params.ShapeSquareRoot,
	}
	for _, shape := range shapes {
		model, err := ForShape(shape)
		if err != nil {
			t.Fatalf("ForShape(%s) returned error: %v", shape, err)
		}
		if model.Name() != string(shape) {
			t.Errorf("model name %q does not match shape tag %q", model.Name(), shape)
		}
	}
	if _, err := ForShape("cubic"); err == nil {
		t.Error("expected error for unregistered shape")
	}
}

func TestQuadratic_Evaluate(t *testing.T) {
	model := &Quadratic{}
	p := quadraticParams()

	tests := []struct {
		name string
		rate float64
		want float64
	}{
		{"zero rate returns base yield", 0, 80},
		{"mid rate", 100, 80 + 0.85*100 - 0.0022*10000},
		{"negative rate clamps to zero", -25, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Evaluate(tt.rate, p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.rate, got, tt.want)
			}
		})
	}
}

func TestQuadratic_ClampsToPlateau(t *testing.T) {
	model := &Quadratic{}
	p := quadraticParams()
	p.PlateauYield = 150

	apex := p.LinearCoef / (2 * p.QuadraticCoef)
	if got := model.Evaluate(apex, p); got != 150 {
		t.Errorf("apex yield should clamp to plateau 150, got %v", got)
	}
}

func TestQuadraticPlateau_FlatBeyondApex(t *testing.T) {
	model := &QuadraticPlateau{}
	p := params.ResponseParameters{
		Shape:     params.ShapeQuadraticPlateau,
		BaseYield: 38, LinearCoef: 0.52, QuadraticCoef: 0.0026,
		PlateauYield: 95,
	}
	apex := p.LinearCoef / (2 * p.QuadraticCoef)
	atApex := model.Evaluate(apex, p)
	beyond := model.Evaluate(apex+100, p)
	if atApex != beyond {
		t.Errorf("yield should hold flat beyond apex: %v vs %v", atApex, beyond)
	}
}

func TestQuadraticFamily_MonotoneBelowApex(t *testing.T) {
	for _, model := range []Model{&Quadratic{}, &QuadraticPlateau{}} {
		p := quadraticParams()
		apex := p.LinearCoef / (2 * p.QuadraticCoef)
		prev := model.Evaluate(0, p)
		for rate := 5.0; rate <= apex; rate += 5 {
			yield := model.Evaluate(rate, p)
			if yield < prev {
				t.Errorf("%s: yield decreased below apex at rate %v (%v < %v)",
					model.Name(), rate, yield, prev)
			}
			prev = yield
		}
	}
}

func TestLinearPlateau_Evaluate(t *testing.T) {
	model := &LinearPlateau{}
	p := params.ResponseParameters{
		Shape:     params.ShapeLinearPlateau,
		BaseYield: 160, LinearCoef: 0.5, PlateauRate: 80,
		PlateauYield: 200,
	}
	if got := model.Evaluate(40, p); got != 180 {
		t.Errorf("Evaluate(40) = %v, want 180", got)
	}
	if got := model.Evaluate(80, p); got != 200 {
		t.Errorf("Evaluate(80) = %v, want 200", got)
	}
	if got := model.Evaluate(200, p); got != 200 {
		t.Errorf("yield must stay constant past the plateau rate, got %v", got)
	}
}

func TestLinearPlateau_AllOrNothingOptimum(t *testing.T) {
	model := &LinearPlateau{}
	p := params.ResponseParameters{
		Shape:     params.ShapeLinearPlateau,
		BaseYield: 160, LinearCoef: 0.5, PlateauRate: 80,
		PlateauYield: 200,
	}
	if rate, ok := model.EconomicOptimumRate(p, 0.1); !ok || rate != 80 {
		t.Errorf("economical response should fund to the plateau, got %v ok=%t", rate, ok)
	}
	if rate, ok := model.EconomicOptimumRate(p, 0.6); !ok || rate != 0 {
		t.Errorf("uneconomical response should get zero, got %v ok=%t", rate, ok)
	}
}

func TestMitscherlich_ApproachesPlateau(t *testing.T) {
	model := &Mitscherlich{}
	p := params.ResponseParameters{
		Shape:     params.ShapeMitscherlich,
		BaseYield: 18, Curvature: 0.016,
		PlateauYield: 58,
	}
	if got := model.Evaluate(0, p); got != 18 {
		t.Errorf("zero rate should return base yield, got %v", got)
	}
	high := model.Evaluate(500, p)
	if high > 58 {
		t.Errorf("yield exceeded plateau: %v", high)
	}
	if 58-high > 0.1 {
		t.Errorf("yield should approach plateau at high rates, got %v", high)
	}
	if model.Evaluate(100, p) <= model.Evaluate(50, p) {
		t.Error("mitscherlich response must increase with rate")
	}
}

func TestSquareRoot_Evaluate(t *testing.T) {
	model := &SquareRoot{}
	p := params.ResponseParameters{
		Shape:     params.ShapeSquareRoot,
		BaseYield: 150, LinearCoef: 6.5, QuadraticCoef: 0.22,
		PlateauYield: 205,
	}
	want := 150 + 6.5*math.Sqrt(64) - 0.22*64
	if got := model.Evaluate(64, p); math.Abs(got-want) > 1e-9 {
		t.Errorf("Evaluate(64) = %v, want %v", got, want)
	}
	if got := model.Evaluate(-10, p); got != 150 {
		t.Errorf("negative rate should clamp to zero rate, got %v", got)
	}
}

func TestQuadratic_DegenerateCoefficients(t *testing.T) {
	model := &Quadratic{}
	p := quadraticParams()
	p.QuadraticCoef = 0

	if _, ok := model.EconomicOptimumRate(p, 0.1); ok {
		t.Error("zero quadratic coefficient must report not solvable")
	}
	if _, ok := model.AgronomicMaxRate(p); ok {
		t.Error("zero quadratic coefficient has no finite agronomic max")
	}
}

func TestQuadratic_ClosedFormOptimum(t *testing.T) {
	model := &Quadratic{}
	p := quadraticParams()

	rate, ok := model.EconomicOptimumRate(p, 0.5/4.5)
	if !ok {
		t.Fatal("expected solvable closed form")
	}
	if rate < 160 || rate > 175 {
		t.Errorf("optimum rate %v outside expected band (160, 175)", rate)
	}
	apex, _ := model.AgronomicMaxRate(p)
	if rate >= apex {
		t.Errorf("economic optimum %v must sit below the agronomic max %v", rate, apex)
	}
	if math.Abs(apex-193.18) > 0.01 {
		t.Errorf("agronomic max = %v, want about 193.18", apex)
	}
}
