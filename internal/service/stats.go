package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/forgo/statline/api/internal/metrics"
	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
)

// StatsService searches league statistics
type StatsService struct {
	exec    *search.Executor
	timeout time.Duration
	logger  *slog.Logger
}

// StatsServiceConfig holds configuration for the stats service
type StatsServiceConfig struct {
	Store search.RecordStore
	// Timeout bounds each store call; zero leaves the caller's deadline alone
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(cfg StatsServiceConfig) *StatsService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{
		exec:    search.NewExecutor(cfg.Store),
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Teams searches team seasons
func (s *StatsService) Teams(ctx context.Context, req search.Request) ([]*model.Team, error) {
	return find(ctx, s, model.TeamSpec, req, model.MapTeam)
}

// Managers searches manager tenures
func (s *StatsService) Managers(ctx context.Context, req search.Request) ([]*model.Manager, error) {
	return find(ctx, s, model.ManagerSpec, req, model.MapManager)
}

// PlayerGames searches per-game player lines
func (s *StatsService) PlayerGames(ctx context.Context, req search.Request) ([]*model.PlayerGame, error) {
	return find(ctx, s, model.PlayerGameSpec, req, model.MapPlayerGame)
}

// PlayerStats searches player season totals
func (s *StatsService) PlayerStats(ctx context.Context, req search.Request) ([]*model.PlayerStats, error) {
	return find(ctx, s, model.PlayerStatsSpec, req, model.MapPlayerStats)
}

// Schedules searches scheduled games
func (s *StatsService) Schedules(ctx context.Context, req search.Request) ([]*model.Schedule, error) {
	return find(ctx, s, model.ScheduleSpec, req, model.MapSchedule)
}

// TeamOffense searches team offensive totals
func (s *StatsService) TeamOffense(ctx context.Context, req search.Request) ([]*model.TeamOffense, error) {
	return find(ctx, s, model.TeamOffenseSpec, req, model.MapTeamOffense)
}

// GameStates searches live and final game states
func (s *StatsService) GameStates(ctx context.Context, req search.Request) ([]*model.GameState, error) {
	return find(ctx, s, model.GameStateSpec, req, model.MapGameState)
}

// Search dispatches on the stored entity name and returns the typed slice
func (s *StatsService) Search(ctx context.Context, entity string, req search.Request) (any, error) {
	switch entity {
	case model.TeamSpec.Entity:
		return s.Teams(ctx, req)
	case model.ManagerSpec.Entity:
		return s.Managers(ctx, req)
	case model.PlayerGameSpec.Entity:
		return s.PlayerGames(ctx, req)
	case model.PlayerStatsSpec.Entity:
		return s.PlayerStats(ctx, req)
	case model.ScheduleSpec.Entity:
		return s.Schedules(ctx, req)
	case model.TeamOffenseSpec.Entity:
		return s.TeamOffense(ctx, req)
	case model.GameStateSpec.Entity:
		return s.GameStates(ctx, req)
	}
	return nil, ErrUnknownEntity
}

// Ping reports whether the record store is reachable
func (s *StatsService) Ping(ctx context.Context) error {
	return s.exec.Ping(ctx)
}

func find[T any](ctx context.Context, s *StatsService, spec *search.Spec, req search.Request, mapFn search.Mapper[T]) ([]T, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := search.Find(ctx, s.exec, spec, req, mapFn)
	metrics.SearchDuration.WithLabelValues(spec.Entity).Observe(time.Since(start).Seconds())

	outcome := s.classify(spec.Entity, req, err)
	metrics.SearchTotal.WithLabelValues(spec.Entity, outcome).Inc()
	if err != nil {
		return nil, err
	}
	metrics.SearchResults.WithLabelValues(spec.Entity).Observe(float64(len(out)))
	return out, nil
}

// classify logs a failed search at the level its cause deserves and names
// the outcome for metrics
func (s *StatsService) classify(entity string, req search.Request, err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}

	var (
		invalidField *search.InvalidFieldError
		invalidValue *search.InvalidValueError
		unavailable  *search.StoreUnavailableError
		mapping      *search.MappingError
	)
	switch {
	case errors.As(err, &invalidField), errors.As(err, &invalidValue):
		return metrics.OutcomeInvalid
	case errors.As(err, &unavailable):
		s.logger.Warn("record store unavailable",
			slog.String("entity", entity),
			slog.String("store", unavailable.Store),
			slog.String("error", err.Error()),
		)
		return metrics.OutcomeUnavailable
	case errors.As(err, &mapping):
		s.logger.Error("stored record could not be mapped",
			slog.String("entity", entity),
			slog.Int("index", mapping.Index),
			slog.String("field", mapping.Field),
			slog.String("reason", mapping.Reason),
			slog.Any("fields", req.Names()),
		)
		return metrics.OutcomeMappingError
	}

	s.logger.Error("search failed",
		slog.String("entity", entity),
		slog.String("error", err.Error()),
	)
	return metrics.OutcomeError
}
