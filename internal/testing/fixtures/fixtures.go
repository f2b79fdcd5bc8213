// Package fixtures provides league record factories for tests.
//
// Each factory method saves one record with sensible defaults, allowing
// customization via option functions, and returns the mapped model.
//
// Usage:
//
//	f := fixtures.NewMemory()
//	team := f.CreateTeam(t)
//	game := f.CreateSchedule(t, func(o *fixtures.ScheduleOpts) {
//		o.HomeTeamID = team.TeamID
//	})
package fixtures

import (
	"sync/atomic"
	"testing"

	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/repository"
	"github.com/forgo/statline/api/internal/search"
)

// Factory creates league records in a record store
type Factory struct {
	store  search.RecordStore
	nextID atomic.Int64
}

// New creates a new fixture factory
func New(store search.RecordStore) *Factory {
	f := &Factory{store: store}
	f.nextID.Store(1000)
	return f
}

// NewMemory creates a factory over a fresh in-memory store
func NewMemory() *Factory {
	return New(repository.NewMemoryRecordStore())
}

// Store returns the underlying record store
func (f *Factory) Store() search.RecordStore {
	return f.store
}

// id hands out identifiers unique within the factory
func (f *Factory) id() int64 {
	return f.nextID.Add(1)
}

// save normalizes rec under spec, stores it and maps it back through mapFn
func save[T any](t *testing.T, f *Factory, spec *search.Spec, rec search.Record, mapFn search.Mapper[T]) T {
	t.Helper()

	normalized, err := search.Normalize(spec, rec)
	if err != nil {
		t.Fatalf("fixtures: invalid %s record: %v", spec.Entity, err)
	}
	if err := f.store.Save(t.Context(), spec, normalized); err != nil {
		t.Fatalf("fixtures: failed to save %s: %v", spec.Entity, err)
	}

	out, err := mapFn(normalized)
	if err != nil {
		t.Fatalf("fixtures: failed to map %s: %v", spec.Entity, err)
	}
	return out
}

// ============================================================================
// Team Fixtures
// ============================================================================

// TeamOpts customizes team creation
type TeamOpts struct {
	TeamID       int64
	Year         int64
	ConferenceID int64
	DivisionID   int64
	Allstar      bool
	Name         string
	Abbreviation string
}

// CreateTeam creates a team season
func (f *Factory) CreateTeam(t *testing.T, opts ...func(*TeamOpts)) *model.Team {
	t.Helper()

	o := &TeamOpts{
		TeamID:       f.id(),
		Year:         2010,
		ConferenceID: 1,
		DivisionID:   1,
		Name:         "Test Club",
		Abbreviation: "TST",
	}
	for _, fn := range opts {
		fn(o)
	}

	return save(t, f, model.TeamSpec, search.Record{
		"team_id":       o.TeamID,
		"year":          o.Year,
		"conference_id": o.ConferenceID,
		"division_id":   o.DivisionID,
		"allstar":       o.Allstar,
		"name":          o.Name,
		"abbreviation":  o.Abbreviation,
	}, model.MapTeam)
}

// ============================================================================
// Manager Fixtures
// ============================================================================

// ManagerOpts customizes manager creation
type ManagerOpts struct {
	ManagerID int64
	TeamID    int64
	Year      int64
	FirstName string
	LastName  string
	Interim   bool
}

// CreateManager creates a manager tenure for team
func (f *Factory) CreateManager(t *testing.T, team *model.Team, opts ...func(*ManagerOpts)) *model.Manager {
	t.Helper()

	o := &ManagerOpts{
		ManagerID: f.id(),
		TeamID:    team.TeamID,
		Year:      team.Year,
		FirstName: "Casey",
		LastName:  "Stengel",
	}
	for _, fn := range opts {
		fn(o)
	}

	return save(t, f, model.ManagerSpec, search.Record{
		"manager_id": o.ManagerID,
		"team_id":    o.TeamID,
		"year":       o.Year,
		"first_name": o.FirstName,
		"last_name":  o.LastName,
		"interim":    o.Interim,
	}, model.MapManager)
}

// ============================================================================
// Game Fixtures
// ============================================================================

// ScheduleOpts customizes scheduled game creation
type ScheduleOpts struct {
	GameID     int64
	Season     int64
	GameDate   string
	HomeTeamID int64
	AwayTeamID int64
	GameType   model.GameType
	Venue      string
}

// CreateSchedule creates a scheduled game
func (f *Factory) CreateSchedule(t *testing.T, opts ...func(*ScheduleOpts)) *model.Schedule {
	t.Helper()

	o := &ScheduleOpts{
		GameID:     f.id(),
		Season:     2010,
		GameDate:   "2010-04-05",
		HomeTeamID: 1,
		AwayTeamID: 2,
		GameType:   model.GameTypeRegular,
		Venue:      "Test Park",
	}
	for _, fn := range opts {
		fn(o)
	}

	return save(t, f, model.ScheduleSpec, search.Record{
		"game_id":      o.GameID,
		"season":       o.Season,
		"game_date":    o.GameDate,
		"home_team_id": o.HomeTeamID,
		"away_team_id": o.AwayTeamID,
		"game_type":    string(o.GameType),
		"venue":        o.Venue,
	}, model.MapSchedule)
}

// GameStateOpts customizes game state creation
type GameStateOpts struct {
	Status       model.GameStatus
	Inning       int64
	Half         model.InningHalf
	ExtraInnings bool
	Outs         int64
	HomeScore    int64
	AwayScore    int64
}

// CreateGameState records the state of game. Defaults to a final score.
func (f *Factory) CreateGameState(t *testing.T, game *model.Schedule, opts ...func(*GameStateOpts)) *model.GameState {
	t.Helper()

	o := &GameStateOpts{
		Status:    model.GameStatusFinal,
		Inning:    9,
		Half:      model.InningBottom,
		Outs:      3,
		HomeScore: 4,
		AwayScore: 2,
	}
	for _, fn := range opts {
		fn(o)
	}

	return save(t, f, model.GameStateSpec, search.Record{
		"game_id":       game.GameID,
		"status":        string(o.Status),
		"inning":        o.Inning,
		"half":          string(o.Half),
		"extra_innings": o.ExtraInnings,
		"outs":          o.Outs,
		"home_score":    o.HomeScore,
		"away_score":    o.AwayScore,
	}, model.MapGameState)
}

// ============================================================================
// Player Fixtures
// ============================================================================

// PlayerGameOpts customizes player game line creation
type PlayerGameOpts struct {
	PlayerID int64
	TeamID   int64
	Position model.Position
	Starter  bool
	Runs     int64
	Line     model.BattingLine
}

// CreatePlayerGame creates a player's line in game
func (f *Factory) CreatePlayerGame(t *testing.T, game *model.Schedule, opts ...func(*PlayerGameOpts)) *model.PlayerGame {
	t.Helper()

	o := &PlayerGameOpts{
		PlayerID: f.id(),
		TeamID:   game.HomeTeamID,
		Position: model.PositionShortstop,
		Starter:  true,
		Line:     model.BattingLine{AtBats: 4, Hits: 1},
	}
	for _, fn := range opts {
		fn(o)
	}

	return save(t, f, model.PlayerGameSpec, search.Record{
		"player_id":  o.PlayerID,
		"game_id":    game.GameID,
		"team_id":    o.TeamID,
		"season":     game.Season,
		"game_date":  game.GameDate,
		"position":   string(o.Position),
		"starter":    o.Starter,
		"runs":       o.Runs,
		"at_bats":    o.Line.AtBats,
		"hits":       o.Line.Hits,
		"home_runs":  o.Line.HomeRuns,
		"rbi":        o.Line.RBI,
		"walks":      o.Line.Walks,
		"strikeouts": o.Line.Strikeouts,
	}, model.MapPlayerGame)
}
