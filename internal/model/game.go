package model

import "github.com/forgo/statline/api/internal/search"

// ============================================================================
// Schedule
// ============================================================================

var ScheduleSpec = &search.Spec{
	Entity: "schedule",
	Fields: []search.Field{
		search.IntField("game_id"),
		search.IntField("season"),
		search.DateField("game_date"),
		search.IntField("home_team_id"),
		search.IntField("away_team_id"),
		search.EnumField("game_type", GameTypeCodes),
	},
	Key: []string{"game_id"},
}

// Schedule is one scheduled game
type Schedule struct {
	GameID     int64    `json:"game_id"`
	Season     int64    `json:"season"`
	GameDate   string   `json:"game_date"`
	HomeTeamID int64    `json:"home_team_id"`
	AwayTeamID int64    `json:"away_team_id"`
	GameType   GameType `json:"game_type"`
	Venue      string   `json:"venue"`
}

type ScheduleCriteria struct {
	GameID     *int64
	Season     *int64
	GameDate   *string
	HomeTeamID *int64
	AwayTeamID *int64
	GameType   *GameType
}

func (c ScheduleCriteria) Request() search.Request {
	req := search.NewRequest()
	req = search.SetOptional(req, "game_id", c.GameID)
	req = search.SetOptional(req, "season", c.Season)
	req = search.SetOptional(req, "game_date", c.GameDate)
	req = search.SetOptional(req, "home_team_id", c.HomeTeamID)
	req = search.SetOptional(req, "away_team_id", c.AwayTeamID)
	req = search.SetOptional(req, "game_type", c.GameType)
	return req
}

func MapSchedule(rec search.Record) (*Schedule, error) {
	r := search.NewReader(ScheduleSpec.Entity, rec)
	s := &Schedule{
		GameID:     r.Int("game_id"),
		Season:     r.Int("season"),
		GameDate:   r.Date("game_date"),
		HomeTeamID: r.Int("home_team_id"),
		AwayTeamID: r.Int("away_team_id"),
		GameType:   GameType(r.Symbol("game_type", GameTypeCodes)),
		Venue:      r.String("venue"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// ============================================================================
// Team offense
// ============================================================================

var TeamOffenseSpec = &search.Spec{
	Entity: "team_offense",
	Fields: []search.Field{
		search.IntField("team_id"),
		search.IntField("season"),
		search.EnumField("phase", SeasonPhaseCodes),
	},
	Key: []string{"team_id", "season", "phase"},
}

// TeamOffense is a team's batting totals for a season phase
type TeamOffense struct {
	TeamID      int64       `json:"team_id"`
	Season      int64       `json:"season"`
	Phase       SeasonPhase `json:"phase"`
	Games       int64       `json:"games"`
	Runs        int64       `json:"runs"`
	Hits        int64       `json:"hits"`
	Doubles     int64       `json:"doubles"`
	Triples     int64       `json:"triples"`
	HomeRuns    int64       `json:"home_runs"`
	Walks       int64       `json:"walks"`
	Strikeouts  int64       `json:"strikeouts"`
	StolenBases int64       `json:"stolen_bases"`
}

type TeamOffenseCriteria struct {
	TeamID *int64
	Season *int64
	Phase  *SeasonPhase
}

func (c TeamOffenseCriteria) Request() search.Request {
	req := search.NewRequest()
	req = search.SetOptional(req, "team_id", c.TeamID)
	req = search.SetOptional(req, "season", c.Season)
	req = search.SetOptional(req, "phase", c.Phase)
	return req
}

func MapTeamOffense(rec search.Record) (*TeamOffense, error) {
	r := search.NewReader(TeamOffenseSpec.Entity, rec)
	o := &TeamOffense{
		TeamID:      r.Int("team_id"),
		Season:      r.Int("season"),
		Phase:       SeasonPhase(r.Symbol("phase", SeasonPhaseCodes)),
		Games:       r.Int("games"),
		Runs:        r.Int("runs"),
		Hits:        r.Int("hits"),
		Doubles:     r.Int("doubles"),
		Triples:     r.Int("triples"),
		HomeRuns:    r.Int("home_runs"),
		Walks:       r.Int("walks"),
		Strikeouts:  r.Int("strikeouts"),
		StolenBases: r.Int("stolen_bases"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

// ============================================================================
// Game state
// ============================================================================

var GameStateSpec = &search.Spec{
	Entity: "game_state",
	Fields: []search.Field{
		search.IntField("game_id"),
		search.EnumField("status", GameStatusCodes),
		search.IntField("inning"),
		search.EnumField("half", InningHalfCodes),
		search.BoolField("extra_innings"),
	},
	Key: []string{"game_id"},
}

// GameState is the latest known state of a game
type GameState struct {
	GameID       int64      `json:"game_id"`
	Status       GameStatus `json:"status"`
	Inning       int64      `json:"inning"`
	Half         InningHalf `json:"half"`
	ExtraInnings bool       `json:"extra_innings"`
	Outs         int64      `json:"outs"`
	HomeScore    int64      `json:"home_score"`
	AwayScore    int64      `json:"away_score"`
}

type GameStateCriteria struct {
	GameID       *int64
	Status       *GameStatus
	Inning       *int64
	Half         *InningHalf
	ExtraInnings *bool
}

func (c GameStateCriteria) Request() search.Request {
	req := search.NewRequest()
	req = search.SetOptional(req, "game_id", c.GameID)
	req = search.SetOptional(req, "status", c.Status)
	req = search.SetOptional(req, "inning", c.Inning)
	req = search.SetOptional(req, "half", c.Half)
	req = search.SetOptional(req, "extra_innings", c.ExtraInnings)
	return req
}

func MapGameState(rec search.Record) (*GameState, error) {
	r := search.NewReader(GameStateSpec.Entity, rec)
	gs := &GameState{
		GameID:       r.Int("game_id"),
		Status:       GameStatus(r.Symbol("status", GameStatusCodes)),
		Inning:       r.Int("inning"),
		Half:         InningHalf(r.Symbol("half", InningHalfCodes)),
		ExtraInnings: r.Flag("extra_innings"),
		Outs:         r.Int("outs"),
		HomeScore:    r.Int("home_score"),
		AwayScore:    r.Int("away_score"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return gs, nil
}
