package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"agroyield/domain/economics"
	"agroyield/internal/errors"
	"agroyield/ports"
)

// CurveExporter renders a generated response curve as an xlsx workbook:
// one sheet of swept points, one sheet for the optimum and summary.
type CurveExporter struct{}

func NewCurveExporter() ports.CurveExporter {
	return &CurveExporter{}
}

// Export builds the workbook and returns its bytes
func (e *CurveExporter) Export(curve economics.Curve) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const pointsSheet = "Response Curve"
	f.SetSheetName("Sheet1", pointsSheet)

	headers := []string{"Rate", "Predicted Yield", "Input Cost", "Gross Revenue", "Net Return", "Return per Dollar"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(pointsSheet, cell, header)
	}
	for rowIdx, point := range curve.Points {
		values := []float64{
			point.Rate, point.PredictedYield, point.InputCost,
			point.GrossRevenue, point.NetReturn, point.ReturnPerDollar,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(pointsSheet, cell, value)
		}
	}

	const summarySheet = "Optimum"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, errors.Wrap(err, "failed to create summary sheet")
	}
	summary := [][2]interface{}{
		{"Crop", string(curve.Crop)},
		{"Nutrient", string(curve.Nutrient)},
		{"Optimum Rate", curve.Optimum.OptimumRate},
		{"Optimum Yield", curve.Optimum.OptimumYield},
		{"Agronomic Max Rate", curve.Optimum.AgronomicMaxRate},
		{"Agronomic Max Yield", curve.Optimum.AgronomicMaxYield},
		{"Yield at Optimum (% of max)", curve.Optimum.YieldPctOfMax},
		{"Net Return", curve.Optimum.NetReturn},
		{"Return per Dollar", curve.Optimum.ReturnPerDollar},
		{"Breakeven Rate", curve.Optimum.BreakevenRate},
		{"Price Ratio", curve.Optimum.PriceRatio},
		{"Peak Net Return (curve)", curve.Summary.PeakNetReturn},
		{"Mean Return per Dollar (curve)", curve.Summary.MeanReturnPerDollar},
	}
	for i, pair := range summary {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), pair[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), pair[1])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to render curve workbook")
	}
	return buf.Bytes(), nil
}
