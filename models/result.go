package models

import (
	"time"

	"github.com/google/uuid"

	"agroyield/domain/economics"
)

// OptimizationRecord is the persistence-facing summary of one solver
// run. Flattened for the result store; the domain result stays pure.
type OptimizationRecord struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Crop            string    `db:"crop" json:"crop"`
	Nutrient        string    `db:"nutrient" json:"nutrient"`
	OptimumRate     float64   `db:"optimum_rate" json:"optimum_rate"`
	OptimumYield    float64   `db:"optimum_yield" json:"optimum_yield"`
	NetReturn       float64   `db:"net_return" json:"net_return"`
	ReturnPerDollar float64   `db:"return_per_dollar" json:"return_per_dollar"`
	PriceRatio      float64   `db:"price_ratio" json:"price_ratio"`
	Method          string    `db:"method" json:"method"`
	PriceSensitive  bool      `db:"price_sensitive" json:"price_sensitive"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// NewOptimizationRecord flattens a solved optimum for storage.
func NewOptimizationRecord(opt economics.EconomicOptimum) *OptimizationRecord {
	return &OptimizationRecord{
		ID:              uuid.New(),
		Crop:            string(opt.Crop),
		Nutrient:        string(opt.Nutrient),
		OptimumRate:     opt.OptimumRate,
		OptimumYield:    opt.OptimumYield,
		NetReturn:       opt.NetReturn,
		ReturnPerDollar: opt.ReturnPerDollar,
		PriceRatio:      opt.PriceRatio,
		Method:          opt.Method,
		PriceSensitive:  opt.PriceSensitive,
		CreatedAt:       time.Now().UTC(),
	}
}
