package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ovenstack/batchprice/internal/preset"
	"github.com/ovenstack/batchprice/internal/pricing"
)

type errorResponse struct {
	Error string `json:"error"`
}

type calculateRequest struct {
	Input  pricing.Input   `json:"input"`
	Config *pricing.Config `json:"config,omitempty"`
	Save   bool            `json:"save,omitempty"`
}

type calculateResponse struct {
	Result     pricing.Result `json:"result"`
	SnapshotID string         `json:"snapshotId,omitempty"`
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := s.resolveConfig(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := pricing.Calculate(req.Input, cfg)

	resp := calculateResponse{Result: result}
	if req.Save {
		id, err := s.presets.SaveCalculation("", req.Input, cfg, result)
		if err != nil {
			log.Printf("save calculation snapshot: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to save calculation")
			return
		}
		resp.SnapshotID = id
	}

	writeJSON(w, http.StatusOK, resp)
}

type marketPositionRequest struct {
	CurrentPrice float64   `json:"currentPrice"`
	Competitors  []float64 `json:"competitors"`
}

func (s *server) handleMarketPosition(w http.ResponseWriter, r *http.Request) {
	var req marketPositionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	market, err := pricing.MarketPosition(req.CurrentPrice, req.Competitors)
	if errors.Is(err, pricing.ErrNotEnoughCompetitors) {
		writeError(w, http.StatusUnprocessableEntity, "not_enough_competitors")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "market position failed")
		return
	}

	writeJSON(w, http.StatusOK, market)
}

type validateAllocationRequest struct {
	VariantID         string            `json:"variantId"`
	ProposedBatchSize float64           `json:"proposedBatchSize"`
	TotalBatchSize    float64           `json:"totalBatchSize"`
	Variants          []pricing.Variant `json:"variants"`
}

func (s *server) handleValidateAllocation(w http.ResponseWriter, r *http.Request) {
	var req validateAllocationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	check := pricing.ValidateAllocation(req.VariantID, req.ProposedBatchSize, req.TotalBatchSize, req.Variants)
	writeJSON(w, http.StatusOK, check)
}

type pricingDefaults struct {
	Strategy pricing.Strategy `json:"strategy"`
	Value    float64          `json:"value"`
	Currency string           `json:"currency"`
}

func (s *server) handleGetDefaults(w http.ResponseWriter, r *http.Request) {
	defaults, err := s.getPricingDefaults()
	if err != nil {
		log.Printf("load pricing defaults: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load pricing defaults")
		return
	}

	writeJSON(w, http.StatusOK, defaults)
}

func (s *server) handleUpdateDefaults(w http.ResponseWriter, r *http.Request) {
	var defaults pricingDefaults
	if err := readJSON(r, &defaults); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validateConfig(pricing.Config{Strategy: defaults.Strategy, Value: defaults.Value}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(defaults.Currency) == "" {
		writeError(w, http.StatusBadRequest, "currency is required")
		return
	}

	if err := s.updatePricingDefaults(defaults); err != nil {
		log.Printf("update pricing defaults: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update pricing defaults")
		return
	}

	writeJSON(w, http.StatusOK, defaults)
}

type createPresetRequest struct {
	Name   string         `json:"name"`
	Input  pricing.Input  `json:"input"`
	Config pricing.Config `json:"config"`
}

func (s *server) handleCreatePreset(w http.ResponseWriter, r *http.Request) {
	var req createPresetRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := validateConfig(req.Config); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.presets.Create(req.Name, req.Input, req.Config)
	if err != nil {
		log.Printf("create preset: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create preset")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.presets.List()
	if err != nil {
		log.Printf("list presets: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list presets")
		return
	}

	writeJSON(w, http.StatusOK, presets)
}

func (s *server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.presets.Get(chi.URLParam(r, "id"))
	if errors.Is(err, preset.ErrNotFound) {
		writeError(w, http.StatusNotFound, "preset not found")
		return
	}
	if err != nil {
		log.Printf("get preset: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load preset")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	err := s.presets.Delete(chi.URLParam(r, "id"))
	if errors.Is(err, preset.ErrNotFound) {
		writeError(w, http.StatusNotFound, "preset not found")
		return
	}
	if err != nil {
		log.Printf("delete preset: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete preset")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handlePresetCalculate(w http.ResponseWriter, r *http.Request) {
	p, err := s.presets.Get(chi.URLParam(r, "id"))
	if errors.Is(err, preset.ErrNotFound) {
		writeError(w, http.StatusNotFound, "preset not found")
		return
	}
	if err != nil {
		log.Printf("get preset: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load preset")
		return
	}

	result := pricing.Calculate(p.Input, p.Config)

	id, err := s.presets.SaveCalculation(p.ID, p.Input, p.Config, result)
	if err != nil {
		log.Printf("save calculation snapshot: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save calculation")
		return
	}

	writeJSON(w, http.StatusOK, calculateResponse{Result: result, SnapshotID: id})
}

func (s *server) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := s.presets.ListCalculations(limit)
	if err != nil {
		log.Printf("list calculations: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list calculations")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// resolveConfig falls back to the stored pricing defaults when the
// request carries no explicit config.
func (s *server) resolveConfig(cfg *pricing.Config) (pricing.Config, error) {
	if cfg == nil {
		defaults, err := s.getPricingDefaults()
		if err != nil {
			return pricing.Config{}, fmt.Errorf("no config given and defaults unavailable")
		}
		return pricing.Config{Strategy: defaults.Strategy, Value: defaults.Value}, nil
	}

	if err := validateConfig(*cfg); err != nil {
		return pricing.Config{}, err
	}
	return *cfg, nil
}

func validateConfig(cfg pricing.Config) error {
	switch cfg.Strategy {
	case pricing.StrategyMarkup:
		if cfg.Value < 0 {
			return fmt.Errorf("markup value must be 0 or greater")
		}
	case pricing.StrategyMargin:
		if cfg.Value < 0 || cfg.Value >= 100 {
			return fmt.Errorf("margin value must be between 0 and 100")
		}
	default:
		return fmt.Errorf("strategy must be markup or margin")
	}
	return nil
}

func (s *server) getPricingDefaults() (pricingDefaults, error) {
	var d pricingDefaults
	err := s.db.QueryRow(`
		SELECT strategy, value, currency
		FROM pricing_defaults
		WHERE id = 1
	`).Scan(&d.Strategy, &d.Value, &d.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return pricingDefaults{}, fmt.Errorf("pricing_defaults singleton not found")
	}
	if err != nil {
		return pricingDefaults{}, fmt.Errorf("query pricing_defaults: %w", err)
	}
	return d, nil
}

func (s *server) updatePricingDefaults(d pricingDefaults) error {
	_, err := s.db.Exec(`
		UPDATE pricing_defaults
		SET
			strategy = ?,
			value = ?,
			currency = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, string(d.Strategy), d.Value, d.Currency)
	if err != nil {
		return fmt.Errorf("update pricing_defaults: %w", err)
	}
	return nil
}

func readJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
