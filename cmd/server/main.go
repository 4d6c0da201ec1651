package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ovenstack/batchprice/internal/config"
	"github.com/ovenstack/batchprice/internal/db"
	"github.com/ovenstack/batchprice/internal/migrations"
	"github.com/ovenstack/batchprice/internal/preset"
	"github.com/ovenstack/batchprice/internal/seed"
)

type server struct {
	db      *sql.DB
	presets *preset.Store
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	if _, err := seed.Run(database, seed.Config{Currency: cfg.Currency}); err != nil {
		log.Fatalf("failed to run startup seed: %v", err)
	}

	srv := &server{db: database, presets: preset.NewStore(database)}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, newRouter(srv)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newRouter(srv *server) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", srv.handleHealth)
	r.Post("/api/calculate", srv.handleCalculate)
	r.Post("/api/market-position", srv.handleMarketPosition)
	r.Post("/api/validate-allocation", srv.handleValidateAllocation)
	r.Get("/api/defaults", srv.handleGetDefaults)
	r.Put("/api/defaults", srv.handleUpdateDefaults)
	r.Get("/api/presets", srv.handleListPresets)
	r.Post("/api/presets", srv.handleCreatePreset)
	r.Get("/api/presets/{id}", srv.handleGetPreset)
	r.Delete("/api/presets/{id}", srv.handleDeletePreset)
	r.Post("/api/presets/{id}/calculate", srv.handlePresetCalculate)
	r.Get("/api/calculations", srv.handleListCalculations)
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
