package ui

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gomarkdown/markdown"

	"agroyield/domain/agronomy"
	"agroyield/domain/core"
	"agroyield/domain/economics"
	"agroyield/domain/params"
	"agroyield/internal/errors"
	"agroyield/internal/optimizer"
)

// computeRequest is the shared request body for the single-nutrient
// operations. Zero prices fall back to overrides and table defaults.
type computeRequest struct {
	Crop         string    `json:"crop"`
	Nutrient     string    `json:"nutrient"`
	Rate         float64   `json:"rate,omitempty"`
	Rates        []float64 `json:"rates,omitempty"`
	SoilTest     *float64  `json:"soil_test,omitempty"`
	PreviousCrop string    `json:"previous_crop,omitempty"`
	Acres        float64   `json:"acres,omitempty"`

	RangeLo *float64 `json:"range_lo,omitempty"`
	RangeHi *float64 `json:"range_hi,omitempty"`
	Step    float64  `json:"step,omitempty"`

	Prices economics.Prices `json:"prices"`
}

func (r computeRequest) conditions() agronomy.Conditions {
	return agronomy.Conditions{
		SoilTest:     r.SoilTest,
		PreviousCrop: core.PreviousCrop(r.PreviousCrop),
	}
}

func (r computeRequest) rateRange() *optimizer.RateRange {
	if r.RangeLo == nil || r.RangeHi == nil {
		return nil
	}
	return &optimizer.RateRange{Lo: *r.RangeLo, Hi: *r.RangeHi}
}

type budgetRequest struct {
	Crop            string             `json:"crop"`
	Acres           float64            `json:"acres"`
	Budget          *float64           `json:"budget,omitempty"`
	SoilTestP       *float64           `json:"soil_test_p,omitempty"`
	SoilTestK       *float64           `json:"soil_test_k,omitempty"`
	PreviousCrop    string             `json:"previous_crop,omitempty"`
	CommodityPrice  float64            `json:"commodity_price,omitempty"`
	NutrientCosts   map[string]float64 `json:"nutrient_costs,omitempty"`
	ApplicationCost float64            `json:"application_cost,omitempty"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleListParameters(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, params.Pairs())
}

func (a *App) handleRecentResults(w http.ResponseWriter, r *http.Request) {
	records, err := a.service.RecentResults(r.Context(), 20)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, records)
}

func (a *App) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !a.decode(w, r, &req) {
		return
	}
	yield, err := a.service.PredictYield(core.Crop(req.Crop), core.Nutrient(req.Nutrient), req.Rate, req.conditions())
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, map[string]float64{"predicted_yield": yield})
}

func (a *App) handleOptimum(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !a.decode(w, r, &req) {
		return
	}
	opt, err := a.service.ComputeOptimum(r.Context(), core.Crop(req.Crop), core.Nutrient(req.Nutrient), req.conditions(), req.Prices)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, opt)
}

func (a *App) handleCurve(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !a.decode(w, r, &req) {
		return
	}
	curve, err := a.service.GenerateCurve(r.Context(), core.Crop(req.Crop), core.Nutrient(req.Nutrient), req.rateRange(), req.Step, req.conditions(), req.Prices)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, curve)
}

func (a *App) handleCurveExport(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !a.decode(w, r, &req) {
		return
	}
	curve, err := a.service.GenerateCurve(r.Context(), core.Crop(req.Crop), core.Nutrient(req.Nutrient), req.rateRange(), req.Step, req.conditions(), req.Prices)
	if err != nil {
		a.respondError(w, err)
		return
	}
	payload, err := a.exporter.Export(curve)
	if err != nil {
		a.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="response_curve.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		a.log.Warn("failed to write curve export: %v", err)
	}
}

func (a *App) handleScenarios(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !a.decode(w, r, &req) {
		return
	}
	acres := req.Acres
	if acres == 0 {
		acres = 1
	}
	comparison, err := a.service.CompareScenarios(r.Context(), core.Crop(req.Crop), core.Nutrient(req.Nutrient), req.Rates, req.conditions(), req.Prices, acres)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, comparison)
}

func (a *App) handleBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !a.decode(w, r, &req) {
		return
	}
	nutrientCosts := make(map[core.Nutrient]float64, len(req.NutrientCosts))
	for nutrient, cost := range req.NutrientCosts {
		nutrientCosts[core.Nutrient(nutrient)] = cost
	}
	plan, err := a.service.AllocateBudget(r.Context(), optimizer.AllocationRequest{
		Crop:         core.Crop(req.Crop),
		Acres:        req.Acres,
		Budget:       req.Budget,
		SoilTestP:    req.SoilTestP,
		SoilTestK:    req.SoilTestK,
		PreviousCrop: core.PreviousCrop(req.PreviousCrop),
		Prices: economics.PriceSet{
			CommodityPrice:  req.CommodityPrice,
			NutrientCosts:   nutrientCosts,
			ApplicationCost: req.ApplicationCost,
		},
	})
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, plan)
}

// handleReport computes the optimum and renders the guidance strings as
// an HTML fragment for embedding in grower-facing reports.
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !a.decode(w, r, &req) {
		return
	}
	cond := req.conditions()
	opt, err := a.service.ComputeOptimum(r.Context(), core.Crop(req.Crop), core.Nutrient(req.Nutrient), cond, req.Prices)
	if err != nil {
		a.respondError(w, err)
		return
	}
	lines, err := a.service.Recommendations(opt, cond)
	if err != nil {
		a.respondError(w, err)
		return
	}
	var md strings.Builder
	for _, line := range lines {
		md.WriteString("- ")
		md.WriteString(line)
		md.WriteString("\n")
	}
	html := markdown.ToHTML([]byte(md.String()), nil, nil)
	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"optimum":         opt,
		"recommendations": lines,
		"html":            string(html),
	})
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.respondError(w, errors.InvalidInput("invalid request body: "+err.Error()))
		return false
	}
	return true
}

func (a *App) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.log.Warn("failed to encode response: %v", err)
	}
}

func (a *App) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeUnknownCropNutrient:
		status = http.StatusNotFound
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}
	a.respondJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
