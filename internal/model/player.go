package model

import "github.com/forgo/statline/api/internal/search"

// BattingLine holds counting stats shared by game logs and season totals
type BattingLine struct {
	AtBats     int64 `json:"at_bats"`
	Hits       int64 `json:"hits"`
	HomeRuns   int64 `json:"home_runs"`
	RBI        int64 `json:"rbi"`
	Walks      int64 `json:"walks"`
	Strikeouts int64 `json:"strikeouts"`
}

func readBattingLine(r *search.Reader) BattingLine {
	return BattingLine{
		AtBats:     r.Int("at_bats"),
		Hits:       r.Int("hits"),
		HomeRuns:   r.Int("home_runs"),
		RBI:        r.Int("rbi"),
		Walks:      r.Int("walks"),
		Strikeouts: r.Int("strikeouts"),
	}
}

// ============================================================================
// Player games
// ============================================================================

var PlayerGameSpec = &search.Spec{
	Entity: "player_game",
	Fields: []search.Field{
		search.IntField("player_id"),
		search.IntField("game_id"),
		search.IntField("team_id"),
		search.IntField("season"),
		search.DateField("game_date"),
		search.EnumField("position", PositionCodes),
		search.BoolField("starter"),
	},
	Key: []string{"player_id", "game_id"},
}

// PlayerGame is a player's line in a single game
type PlayerGame struct {
	PlayerID int64    `json:"player_id"`
	GameID   int64    `json:"game_id"`
	TeamID   int64    `json:"team_id"`
	Season   int64    `json:"season"`
	GameDate string   `json:"game_date"`
	Position Position `json:"position"`
	Starter  bool     `json:"starter"`
	Runs     int64    `json:"runs"`
	BattingLine
}

type PlayerGameCriteria struct {
	PlayerID *int64
	GameID   *int64
	TeamID   *int64
	Season   *int64
	GameDate *string // YYYY-MM-DD
	Position *Position
	Starter  *bool
}

func (c PlayerGameCriteria) Request() search.Request {
	req := search.NewRequest()
	req = search.SetOptional(req, "player_id", c.PlayerID)
	req = search.SetOptional(req, "game_id", c.GameID)
	req = search.SetOptional(req, "team_id", c.TeamID)
	req = search.SetOptional(req, "season", c.Season)
	req = search.SetOptional(req, "game_date", c.GameDate)
	req = search.SetOptional(req, "position", c.Position)
	req = search.SetOptional(req, "starter", c.Starter)
	return req
}

func MapPlayerGame(rec search.Record) (*PlayerGame, error) {
	r := search.NewReader(PlayerGameSpec.Entity, rec)
	pg := &PlayerGame{
		PlayerID:    r.Int("player_id"),
		GameID:      r.Int("game_id"),
		TeamID:      r.Int("team_id"),
		Season:      r.Int("season"),
		GameDate:    r.Date("game_date"),
		Position:    Position(r.Symbol("position", PositionCodes)),
		Starter:     r.Flag("starter"),
		Runs:        r.Int("runs"),
		BattingLine: readBattingLine(r),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return pg, nil
}

// ============================================================================
// Player season stats
// ============================================================================

var PlayerStatsSpec = &search.Spec{
	Entity: "player_stats",
	Fields: []search.Field{
		search.IntField("player_id"),
		search.IntField("season"),
		search.IntField("team_id"),
		search.EnumField("phase", SeasonPhaseCodes),
	},
	Key: []string{"player_id", "season", "team_id", "phase"},
}

// PlayerStats is a player's totals for one team, season and phase
type PlayerStats struct {
	PlayerID int64       `json:"player_id"`
	Season   int64       `json:"season"`
	TeamID   int64       `json:"team_id"`
	Phase    SeasonPhase `json:"phase"`
	Games    int64       `json:"games"`
	BattingLine
}

type PlayerStatsCriteria struct {
	PlayerID *int64
	Season   *int64
	TeamID   *int64
	Phase    *SeasonPhase
}

func (c PlayerStatsCriteria) Request() search.Request {
	req := search.NewRequest()
	req = search.SetOptional(req, "player_id", c.PlayerID)
	req = search.SetOptional(req, "season", c.Season)
	req = search.SetOptional(req, "team_id", c.TeamID)
	req = search.SetOptional(req, "phase", c.Phase)
	return req
}

func MapPlayerStats(rec search.Record) (*PlayerStats, error) {
	r := search.NewReader(PlayerStatsSpec.Entity, rec)
	ps := &PlayerStats{
		PlayerID:    r.Int("player_id"),
		Season:      r.Int("season"),
		TeamID:      r.Int("team_id"),
		Phase:       SeasonPhase(r.Symbol("phase", SeasonPhaseCodes)),
		Games:       r.Int("games"),
		BattingLine: readBattingLine(r),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return ps, nil
}
