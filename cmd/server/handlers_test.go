package main

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ovenstack/batchprice/internal/db"
	"github.com/ovenstack/batchprice/internal/migrations"
	"github.com/ovenstack/batchprice/internal/preset"
	"github.com/ovenstack/batchprice/internal/pricing"
	"github.com/ovenstack/batchprice/internal/seed"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "server-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := seed.Run(database, seed.Config{Currency: "USD"}); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	return &server{db: database, presets: preset.NewStore(database)}
}

func doJSON(t *testing.T, srv *server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	newRouter(srv).ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response body: %v (body: %s)", err, rr.Body.String())
	}
}

func calculatorInput() pricing.Input {
	return pricing.Input{
		ProductName: "Sourdough",
		BatchSize:   10,
		Ingredients: []pricing.Ingredient{
			{ID: "flour", Name: "Flour", Amount: 5, Cost: 50},
		},
		LaborCost: 20,
		Overhead:  10,
	}
}

func TestHandleCalculate_ReturnsEngineResult(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/calculate", calculateRequest{
		Input:  calculatorInput(),
		Config: &pricing.Config{Strategy: pricing.StrategyMarkup, Value: 50},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp calculateResponse
	decodeBody(t, rr, &resp)

	if resp.Result.CostPerUnit != 8 || resp.Result.RecommendedPrice != 12 {
		t.Fatalf("unexpected result: %+v", resp.Result)
	}
	if resp.SnapshotID != "" {
		t.Fatalf("expected no snapshot without save flag, got %q", resp.SnapshotID)
	}
}

func TestHandleCalculate_FallsBackToStoredDefaults(t *testing.T) {
	srv := newTestServer(t)

	// Seed installs markup 50 as the default strategy.
	rr := doJSON(t, srv, http.MethodPost, "/api/calculate", calculateRequest{Input: calculatorInput()})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp calculateResponse
	decodeBody(t, rr, &resp)
	if resp.Result.RecommendedPrice != 12 {
		t.Fatalf("expected defaults-priced result, got %+v", resp.Result)
	}
}

func TestHandleCalculate_SaveRecordsSnapshot(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/calculate", calculateRequest{
		Input:  calculatorInput(),
		Config: &pricing.Config{Strategy: pricing.StrategyMarkup, Value: 50},
		Save:   true,
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp calculateResponse
	decodeBody(t, rr, &resp)
	if resp.SnapshotID == "" {
		t.Fatalf("expected snapshot id when save is requested")
	}

	list := doJSON(t, srv, http.MethodGet, "/api/calculations", nil)
	var records []preset.CalculationRecord
	decodeBody(t, list, &records)
	if len(records) != 1 || records[0].ID != resp.SnapshotID {
		t.Fatalf("expected the saved snapshot in history, got %+v", records)
	}
}

func TestHandleCalculate_RejectsInvalidConfig(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/calculate", calculateRequest{
		Input:  calculatorInput(),
		Config: &pricing.Config{Strategy: "cost-plus", Value: 10},
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleMarketPosition(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/market-position", marketPositionRequest{
		CurrentPrice: 100,
		Competitors:  []float64{80, 120},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var market pricing.Market
	decodeBody(t, rr, &market)
	if math.Abs(market.Percentile-50) > 1e-9 || market.Position != pricing.PositionMid {
		t.Fatalf("unexpected market position: %+v", market)
	}
}

func TestHandleMarketPosition_NotEnoughCompetitors(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/market-position", marketPositionRequest{
		CurrentPrice: 100,
		Competitors:  []float64{80},
	})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp errorResponse
	decodeBody(t, rr, &resp)
	if resp.Error != "not_enough_competitors" {
		t.Fatalf("expected tagged error, got %q", resp.Error)
	}
}

func TestHandleValidateAllocation(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/validate-allocation", validateAllocationRequest{
		VariantID:         "v1",
		ProposedBatchSize: 8,
		TotalBatchSize:    10,
		Variants: []pricing.Variant{
			{ID: "v1", BatchSize: 4},
			{ID: "v2", BatchSize: 3},
		},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var check pricing.AllocationCheck
	decodeBody(t, rr, &check)
	if check.Valid || math.Abs(check.MaxAllowed-7) > 1e-9 {
		t.Fatalf("expected over-allocation rejection with cap 7, got %+v", check)
	}
}

func TestPresetLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := doJSON(t, srv, http.MethodPost, "/api/presets", createPresetRequest{
		Name:   "Weekend bake",
		Input:  calculatorInput(),
		Config: pricing.Config{Strategy: pricing.StrategyMarkup, Value: 50},
	})
	if created.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", created.Code, created.Body.String())
	}

	var p preset.Preset
	decodeBody(t, created, &p)
	if p.ID == "" || p.Kind != preset.KindSingle {
		t.Fatalf("unexpected created preset: %+v", p)
	}

	calc := doJSON(t, srv, http.MethodPost, "/api/presets/"+p.ID+"/calculate", nil)
	if calc.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", calc.Code, calc.Body.String())
	}
	var resp calculateResponse
	decodeBody(t, calc, &resp)
	if resp.Result.RecommendedPrice != 12 || resp.SnapshotID == "" {
		t.Fatalf("unexpected preset calculation: %+v", resp)
	}

	deleted := doJSON(t, srv, http.MethodDelete, "/api/presets/"+p.ID, nil)
	if deleted.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", deleted.Code)
	}

	missing := doJSON(t, srv, http.MethodGet, "/api/presets/"+p.ID, nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", missing.Code)
	}
}

func TestHandleUpdateDefaults_ValidatesStrategy(t *testing.T) {
	srv := newTestServer(t)

	bad := doJSON(t, srv, http.MethodPut, "/api/defaults", pricingDefaults{
		Strategy: "cost-plus",
		Value:    10,
		Currency: "USD",
	})
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", bad.Code, bad.Body.String())
	}

	good := doJSON(t, srv, http.MethodPut, "/api/defaults", pricingDefaults{
		Strategy: pricing.StrategyMargin,
		Value:    40,
		Currency: "EUR",
	})
	if good.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", good.Code, good.Body.String())
	}

	get := doJSON(t, srv, http.MethodGet, "/api/defaults", nil)
	var defaults pricingDefaults
	decodeBody(t, get, &defaults)
	if defaults.Strategy != pricing.StrategyMargin || defaults.Value != 40 || defaults.Currency != "EUR" {
		t.Fatalf("defaults did not persist: %+v", defaults)
	}
}
