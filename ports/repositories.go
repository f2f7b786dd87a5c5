package ports

import (
	"context"

	"agroyield/domain/core"
	"agroyield/domain/economics"
	"agroyield/models"
)

// ResultRepository persists computed optimization summaries. The engine
// itself stays stateless; persistence is a collaborator behind this port
// and every operation works with a nil repository.
type ResultRepository interface {
	SaveResult(ctx context.Context, record *models.OptimizationRecord) error
	RecentResults(ctx context.Context, limit int) ([]models.OptimizationRecord, error)
}

// PriceOverrideReader supplies grower-specific price overrides from the
// record store. A miss returns ok == false, never an error.
type PriceOverrideReader interface {
	OverrideFor(ctx context.Context, crop core.Crop, nutrient core.Nutrient) (economics.Prices, bool, error)
}

// CurveExporter renders a generated curve into a downloadable report.
type CurveExporter interface {
	Export(curve economics.Curve) ([]byte, error)
}
