package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
	"github.com/forgo/statline/api/internal/service"
)

// Seeder defines the seeding operations the admin handler needs
type Seeder interface {
	Seed(ctx context.Context, entity string, recs []search.Record) (*service.SeedResult, error)
	SeedDemo(ctx context.Context, cfg service.DemoConfig) ([]service.SeedResult, error)
}

// SeedRequest is the body of POST /v1/admin/seed/{entity}
type SeedRequest struct {
	Records []search.Record `json:"records"`
}

// Demo league size used when the request body is empty
var defaultDemo = service.DemoConfig{Seasons: 2, Teams: 6}

// AdminSeederHandler handles admin seeding endpoints
type AdminSeederHandler struct {
	seeder Seeder
}

// NewAdminSeederHandler creates a new admin seeder handler
func NewAdminSeederHandler(seeder Seeder) *AdminSeederHandler {
	return &AdminSeederHandler{seeder: seeder}
}

// RegisterRoutes registers the seeding routes behind guard
func (h *AdminSeederHandler) RegisterRoutes(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	mux.Handle("POST /v1/admin/seed/demo", guard(http.HandlerFunc(h.SeedDemo)))
	mux.Handle("POST /v1/admin/seed/{entity}", guard(http.HandlerFunc(h.SeedEntity)))
}

// SeedEntity handles POST /v1/admin/seed/{entity}
func (h *AdminSeederHandler) SeedEntity(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")

	var req SeedRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	result, err := h.seeder.Seed(r.Context(), entity, req.Records)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "seed "+entity))
		return
	}

	WriteData(w, http.StatusCreated, result, map[string]string{
		"self":   "/v1/admin/seed/" + entity,
		"fields": PathEntities + "/" + entity,
	})
}

// SeedDemo handles POST /v1/admin/seed/demo
func (h *AdminSeederHandler) SeedDemo(w http.ResponseWriter, r *http.Request) {
	cfg := defaultDemo
	if err := DecodeJSON(r, &cfg); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, model.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	results, err := h.seeder.SeedDemo(r.Context(), cfg)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "seed demo league"))
		return
	}

	WriteData(w, http.StatusCreated, results, map[string]string{
		"self":     "/v1/admin/seed/demo",
		"entities": PathEntities,
	})
}
