package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"agroyield/domain/core"
	"agroyield/domain/economics"
	"agroyield/internal/errors"
	"agroyield/ports"
)

// PriceOverrideRepository reads grower-specific price overrides from the
// record store. The engine only ever reads from this table.
type PriceOverrideRepository struct {
	db *sqlx.DB
}

// NewPriceOverrideRepository creates a new PostgreSQL override reader
func NewPriceOverrideRepository(db *sqlx.DB) ports.PriceOverrideReader {
	return &PriceOverrideRepository{db: db}
}

// OverrideFor returns the stored prices for a (crop, nutrient) pair.
// A missing row is not an error; it just means no override is set.
func (r *PriceOverrideRepository) OverrideFor(ctx context.Context, crop core.Crop, nutrient core.Nutrient) (economics.Prices, bool, error) {
	var row struct {
		CommodityPrice  float64 `db:"commodity_price"`
		NutrientCost    float64 `db:"nutrient_cost"`
		ApplicationCost float64 `db:"application_cost"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT commodity_price, nutrient_cost, application_cost
		FROM price_overrides
		WHERE crop = $1 AND nutrient = $2`, string(crop), string(nutrient))
	if err == sql.ErrNoRows {
		return economics.Prices{}, false, nil
	}
	if err != nil {
		return economics.Prices{}, false, errors.Wrap(err, "failed to read price override")
	}
	return economics.Prices{
		CommodityPrice:  row.CommodityPrice,
		NutrientCost:    row.NutrientCost,
		ApplicationCost: row.ApplicationCost,
	}, true, nil
}
