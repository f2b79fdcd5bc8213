package service

import (
	"fmt"
	mrand "math/rand/v2"
	"time"

	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
)

// DemoConfig sizes a generated league
type DemoConfig struct {
	Seasons     int    `json:"seasons"`
	Teams       int    `json:"teams"`
	FirstSeason int    `json:"first_season,omitempty"`
	Seed        uint64 `json:"seed,omitempty"`
}

const (
	demoMaxSeasons = 10
	demoMaxTeams   = 16
	demoRosterSize = 10 // nine starters and a designated hitter off the bench
)

var demoTeamNames = []string{
	"Comets", "Harbors", "Miners", "Pilots", "Rangers", "Foxes", "Owls", "Rivets",
	"Lanterns", "Herons", "Anchors", "Falcons", "Sparks", "Badgers", "Ravens", "Tides",
}

var demoManagerNames = [][2]string{
	{"Ada", "Okafor"}, {"Luis", "Moreno"}, {"June", "Park"}, {"Sam", "Kowalski"},
	{"Rita", "Haddad"}, {"Tom", "Brennan"}, {"Mei", "Tanaka"}, {"Ike", "Adeyemi"},
}

// DemoLeague generates a consistent league: team seasons, managers, a round
// robin schedule with one playoff game per season, every player's game
// lines, and season totals that add up to those lines. The same config
// always yields the same records.
func DemoLeague(cfg DemoConfig) (map[string][]search.Record, error) {
	if cfg.Seasons < 1 || cfg.Teams < 2 {
		return nil, ErrInvalidDemoSize
	}
	if cfg.Seasons > demoMaxSeasons || cfg.Teams > demoMaxTeams {
		return nil, fmt.Errorf("%w: at most %d seasons and %d teams", ErrInvalidDemoSize, demoMaxSeasons, demoMaxTeams)
	}
	first := cfg.FirstSeason
	if first == 0 {
		first = 2020
	}

	l := &demoLeague{
		rng:     mrand.New(mrand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		records: make(map[string][]search.Record),
		players: make(map[demoStatKey]*demoTotals),
		teams:   make(map[demoStatKey]*demoTotals),
	}
	for i := 0; i < cfg.Seasons; i++ {
		l.playSeason(int64(first+i), i, cfg.Teams)
	}
	l.flushTotals()
	return l.records, nil
}

type demoStatKey struct {
	id     int64 // player or team
	season int64
	team   int64
	phase  model.SeasonPhase
}

type demoTotals struct {
	games int64
	runs  int64
	model.BattingLine
	doubles     int64
	triples     int64
	stolenBases int64
}

func (t *demoTotals) add(line demoLine) {
	t.runs += line.runs
	t.AtBats += line.AtBats
	t.Hits += line.Hits
	t.HomeRuns += line.HomeRuns
	t.RBI += line.RBI
	t.Walks += line.Walks
	t.Strikeouts += line.Strikeouts
	t.doubles += line.doubles
	t.triples += line.triples
}

type demoLine struct {
	player   int64
	position int
	starter  bool
	runs     int64
	model.BattingLine
	doubles int64
	triples int64
}

type demoLeague struct {
	rng     *mrand.Rand
	records map[string][]search.Record
	gameID  int64

	players     map[demoStatKey]*demoTotals
	playerOrder []demoStatKey
	teams       map[demoStatKey]*demoTotals
	teamOrder   []demoStatKey
}

func (l *demoLeague) add(entity string, rec search.Record) {
	l.records[entity] = append(l.records[entity], rec)
}

func demoPlayerID(team int64, slot int) int64 {
	return team*100 + int64(slot)
}

func (l *demoLeague) playSeason(season int64, index, teams int) {
	host := int64(index%teams) + 1

	for t := 1; t <= teams; t++ {
		team := int64(t)
		l.add(model.TeamSpec.Entity, search.Record{
			"team_id":       team,
			"year":          season,
			"conference_id": int64((t-1)%2) + 1,
			"division_id":   int64((t-1)/2%3) + 1,
			"allstar":       team == host,
			"name":          demoTeamNames[t-1],
			"abbreviation":  fmt.Sprintf("%.3s", demoTeamNames[t-1]),
		})

		// managers turn over every third season
		tenure := index / 3
		name := demoManagerNames[(t+tenure)%len(demoManagerNames)]
		l.add(model.ManagerSpec.Entity, search.Record{
			"manager_id": int64(1000 + t*10 + tenure),
			"team_id":    team,
			"year":       season,
			"first_name": name[0],
			"last_name":  name[1],
			"interim":    index%3 == 2 && t%4 == 0,
		})
	}

	opening := time.Date(int(season), time.April, 1, 0, 0, 0, 0, time.UTC)
	wins := make([]int, teams+1)
	perDay := teams / 2
	games := 0
	for a := 1; a <= teams; a++ {
		for b := a + 1; b <= teams; b++ {
			home, away := int64(a), int64(b)
			if (a+b)%2 == 0 {
				home, away = away, home
			}
			date := opening.AddDate(0, 0, games/perDay)
			winner := l.playGame(season, date, home, away, model.GameTypeRegular, model.PhaseRegularSeason)
			wins[winner]++
			games++
		}
	}

	// the two best records meet in a single playoff game
	best, second := 1, 2
	if wins[second] > wins[best] {
		best, second = second, best
	}
	for t := 3; t <= teams; t++ {
		switch {
		case wins[t] > wins[best]:
			best, second = t, best
		case wins[t] > wins[second]:
			second = t
		}
	}
	october := time.Date(int(season), time.October, 1, 0, 0, 0, 0, time.UTC)
	l.playGame(season, october, int64(best), int64(second), model.GameTypePlayoff, model.PhasePostseason)
}

// playGame records the schedule entry, final state and every player line,
// and returns the winning team
func (l *demoLeague) playGame(season int64, date time.Time, home, away int64, gameType model.GameType, phase model.SeasonPhase) int64 {
	l.gameID++
	gameID := l.gameID
	day := date.Format(search.DateLayout)

	l.add(model.ScheduleSpec.Entity, search.Record{
		"game_id":      gameID,
		"season":       season,
		"game_date":    day,
		"home_team_id": home,
		"away_team_id": away,
		"game_type":    string(gameType),
		"venue":        demoTeamNames[home-1] + " Park",
	})

	homeLines, homeRuns := l.lineup(home)
	awayLines, awayRuns := l.lineup(away)
	extra := homeRuns == awayRuns
	if extra {
		homeLines[0].runs++
		homeLines[0].RBI++
		homeRuns++
	}

	winner, half, inning := home, model.InningTop, int64(9)
	if awayRuns > homeRuns {
		winner, half = away, model.InningBottom
	}
	if extra {
		half, inning = model.InningBottom, 10
	}

	l.add(model.GameStateSpec.Entity, search.Record{
		"game_id":       gameID,
		"status":        string(model.GameStatusFinal),
		"inning":        inning,
		"half":          string(half),
		"extra_innings": extra,
		"outs":          int64(3),
		"home_score":    homeRuns,
		"away_score":    awayRuns,
	})

	for _, side := range []struct {
		team  int64
		lines []demoLine
	}{{home, homeLines}, {away, awayLines}} {
		teamTotals := track(l.teams, &l.teamOrder, demoStatKey{id: side.team, season: season, team: side.team, phase: phase})
		teamTotals.games++
		teamTotals.stolenBases += int64(l.rng.IntN(3))

		for _, line := range side.lines {
			l.add(model.PlayerGameSpec.Entity, search.Record{
				"player_id":  line.player,
				"game_id":    gameID,
				"team_id":    side.team,
				"season":     season,
				"game_date":  day,
				"position":   string(model.Positions[line.position-1]),
				"starter":    line.starter,
				"runs":       line.runs,
				"at_bats":    line.AtBats,
				"hits":       line.Hits,
				"home_runs":  line.HomeRuns,
				"rbi":        line.RBI,
				"walks":      line.Walks,
				"strikeouts": line.Strikeouts,
			})

			playerTotals := track(l.players, &l.playerOrder, demoStatKey{id: line.player, season: season, team: side.team, phase: phase})
			playerTotals.games++
			playerTotals.add(line)
			teamTotals.add(line)
		}
	}
	return winner
}

// lineup draws every player line for one team and returns the team's runs
func (l *demoLeague) lineup(team int64) ([]demoLine, int64) {
	lines := make([]demoLine, 0, demoRosterSize)
	var runs int64
	for slot := 1; slot <= demoRosterSize; slot++ {
		starter := slot < demoRosterSize
		if !starter && l.rng.IntN(3) != 0 {
			continue
		}
		line := l.drawLine(starter)
		line.player = demoPlayerID(team, slot)
		line.position = slot
		lines = append(lines, line)
		runs += line.runs
	}
	return lines, runs
}

func (l *demoLeague) drawLine(starter bool) demoLine {
	var line demoLine
	line.starter = starter
	line.AtBats = 1
	if starter {
		line.AtBats = int64(3 + l.rng.IntN(3))
	}
	for i := int64(0); i < line.AtBats; i++ {
		if l.rng.IntN(4) != 0 {
			continue
		}
		line.Hits++
		switch n := l.rng.IntN(20); {
		case n < 2:
			line.HomeRuns++
		case n == 2:
			line.triples++
		case n < 7:
			line.doubles++
		}
	}
	line.Walks = int64(l.rng.IntN(2))
	line.Strikeouts = int64(l.rng.IntN(int(line.AtBats-line.Hits) + 1))
	line.runs = line.HomeRuns + (line.Hits-line.HomeRuns+line.Walks)/3
	line.RBI = line.HomeRuns + int64(l.rng.IntN(int(line.Hits-line.HomeRuns)+1))
	return line
}

// track returns the running totals for key, remembering first-seen order
func track(m map[demoStatKey]*demoTotals, order *[]demoStatKey, key demoStatKey) *demoTotals {
	t, ok := m[key]
	if !ok {
		t = &demoTotals{}
		m[key] = t
		*order = append(*order, key)
	}
	return t
}

func (l *demoLeague) flushTotals() {
	for _, key := range l.playerOrder {
		t := l.players[key]
		l.add(model.PlayerStatsSpec.Entity, search.Record{
			"player_id":  key.id,
			"season":     key.season,
			"team_id":    key.team,
			"phase":      string(key.phase),
			"games":      t.games,
			"at_bats":    t.AtBats,
			"hits":       t.Hits,
			"home_runs":  t.HomeRuns,
			"rbi":        t.RBI,
			"walks":      t.Walks,
			"strikeouts": t.Strikeouts,
		})
	}
	for _, key := range l.teamOrder {
		t := l.teams[key]
		l.add(model.TeamOffenseSpec.Entity, search.Record{
			"team_id":      key.team,
			"season":       key.season,
			"phase":        string(key.phase),
			"games":        t.games,
			"runs":         t.runs,
			"hits":         t.Hits,
			"doubles":      t.doubles,
			"triples":      t.triples,
			"home_runs":    t.HomeRuns,
			"walks":        t.Walks,
			"strikeouts":   t.Strikeouts,
			"stolen_bases": t.stolenBases,
		})
	}
}
