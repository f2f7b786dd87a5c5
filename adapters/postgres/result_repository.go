package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"agroyield/internal/errors"
	"agroyield/models"
	"agroyield/ports"
)

// ResultRepositoryImpl implements ports.ResultRepository for PostgreSQL
type ResultRepositoryImpl struct {
	db *sqlx.DB
}

// NewResultRepository creates a new PostgreSQL result repository
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &ResultRepositoryImpl{db: db}
}

// EnsureSchema creates the result table when it does not exist yet
func EnsureSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS optimization_results (
			id UUID PRIMARY KEY,
			crop TEXT NOT NULL,
			nutrient TEXT NOT NULL,
			optimum_rate DOUBLE PRECISION NOT NULL,
			optimum_yield DOUBLE PRECISION NOT NULL,
			net_return DOUBLE PRECISION NOT NULL,
			return_per_dollar DOUBLE PRECISION NOT NULL,
			price_ratio DOUBLE PRECISION NOT NULL,
			method TEXT NOT NULL,
			price_sensitive BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS price_overrides (
			crop TEXT NOT NULL,
			nutrient TEXT NOT NULL,
			commodity_price DOUBLE PRECISION NOT NULL,
			nutrient_cost DOUBLE PRECISION NOT NULL,
			application_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (crop, nutrient)
		)`)
	if err != nil {
		return errors.Wrap(err, "failed to ensure result schema")
	}
	return nil
}

// SaveResult stores one flattened optimization summary
func (r *ResultRepositoryImpl) SaveResult(ctx context.Context, record *models.OptimizationRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO optimization_results (
			id, crop, nutrient, optimum_rate, optimum_yield, net_return,
			return_per_dollar, price_ratio, method, price_sensitive, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		record.ID, record.Crop, record.Nutrient, record.OptimumRate,
		record.OptimumYield, record.NetReturn, record.ReturnPerDollar,
		record.PriceRatio, record.Method, record.PriceSensitive, record.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to save optimization result")
	}
	return nil
}

// RecentResults returns the newest stored summaries, newest first
func (r *ResultRepositoryImpl) RecentResults(ctx context.Context, limit int) ([]models.OptimizationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []models.OptimizationRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, crop, nutrient, optimum_rate, optimum_yield, net_return,
		       return_per_dollar, price_ratio, method, price_sensitive, created_at
		FROM optimization_results
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list optimization results")
	}
	return records, nil
}
