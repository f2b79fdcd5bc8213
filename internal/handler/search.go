package handler

import (
	"context"
	"net/http"

	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
)

// StatsSearcher defines the search operations the handler serves
type StatsSearcher interface {
	Teams(ctx context.Context, req search.Request) ([]*model.Team, error)
	Managers(ctx context.Context, req search.Request) ([]*model.Manager, error)
	PlayerGames(ctx context.Context, req search.Request) ([]*model.PlayerGame, error)
	PlayerStats(ctx context.Context, req search.Request) ([]*model.PlayerStats, error)
	Schedules(ctx context.Context, req search.Request) ([]*model.Schedule, error)
	TeamOffense(ctx context.Context, req search.Request) ([]*model.TeamOffense, error)
	GameStates(ctx context.Context, req search.Request) ([]*model.GameState, error)
}

// SearchHandler handles the league search endpoints
type SearchHandler struct {
	stats StatsSearcher
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(stats StatsSearcher) *SearchHandler {
	return &SearchHandler{stats: stats}
}

// Route paths for each searchable entity
const (
	PathTeams       = "/v1/teams"
	PathManagers    = "/v1/managers"
	PathPlayerGames = "/v1/player-games"
	PathPlayerStats = "/v1/player-stats"
	PathSchedules   = "/v1/schedules"
	PathTeamOffense = "/v1/team-offense"
	PathGameStates  = "/v1/game-states"
	PathEntities    = "/v1/search/entities"
)

// RegisterRoutes registers the search routes
func (h *SearchHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+PathTeams, list(model.TeamSpec, PathTeams, h.stats.Teams))
	mux.HandleFunc("GET "+PathManagers, list(model.ManagerSpec, PathManagers, h.stats.Managers))
	mux.HandleFunc("GET "+PathPlayerGames, list(model.PlayerGameSpec, PathPlayerGames, h.stats.PlayerGames))
	mux.HandleFunc("GET "+PathPlayerStats, list(model.PlayerStatsSpec, PathPlayerStats, h.stats.PlayerStats))
	mux.HandleFunc("GET "+PathSchedules, list(model.ScheduleSpec, PathSchedules, h.stats.Schedules))
	mux.HandleFunc("GET "+PathTeamOffense, list(model.TeamOffenseSpec, PathTeamOffense, h.stats.TeamOffense))
	mux.HandleFunc("GET "+PathGameStates, list(model.GameStateSpec, PathGameStates, h.stats.GameStates))

	mux.HandleFunc("GET "+PathEntities, h.Entities)
	mux.HandleFunc("GET "+PathEntities+"/{entity}", h.Entity)
}

// list serves one entity: every query parameter is a filter field, and
// leaving all of them out returns every record
func list[T any](spec *search.Spec, path string, find func(context.Context, search.Request) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := search.RequestFromQuery(spec, r.URL.Query())
		if err != nil {
			WriteError(w, MapServiceError(err))
			return
		}

		results, err := find(r.Context(), req)
		if err != nil {
			WriteError(w, MapServiceErrorWithContext(err, "search "+spec.Entity))
			return
		}

		self := path
		if r.URL.RawQuery != "" {
			self += "?" + r.URL.RawQuery
		}
		WriteCollection(w, http.StatusOK, results, &CollectionMeta{
			Entity:  spec.Entity,
			Count:   len(results),
			Filters: req.Names(),
		}, map[string]string{
			"self":   self,
			"fields": PathEntities + "/" + spec.Entity,
		})
	}
}

// Entities handles GET /v1/search/entities
func (h *SearchHandler) Entities(w http.ResponseWriter, r *http.Request) {
	specs := model.Specs()
	infos := make([]model.EntityInfo, len(specs))
	for i, spec := range specs {
		infos[i] = model.DescribeSpec(spec)
	}
	WriteData(w, http.StatusOK, infos, map[string]string{"self": PathEntities})
}

// Entity handles GET /v1/search/entities/{entity}
func (h *SearchHandler) Entity(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")
	spec, ok := model.SpecFor(entity)
	if !ok {
		WriteError(w, model.NewNotFoundError("entity "+entity))
		return
	}
	WriteData(w, http.StatusOK, model.DescribeSpec(spec), map[string]string{
		"self":       PathEntities + "/" + entity,
		"collection": PathEntities,
	})
}
