package model

import (
	"errors"

	"github.com/forgo/statline/api/internal/search"
)

// Position is a fielding position
type Position string

const (
	PositionPitcher          Position = "PITCHER"
	PositionCatcher          Position = "CATCHER"
	PositionFirstBase        Position = "FIRST_BASE"
	PositionSecondBase       Position = "SECOND_BASE"
	PositionThirdBase        Position = "THIRD_BASE"
	PositionShortstop        Position = "SHORTSTOP"
	PositionLeftField        Position = "LEFT_FIELD"
	PositionCenterField      Position = "CENTER_FIELD"
	PositionRightField       Position = "RIGHT_FIELD"
	PositionDesignatedHitter Position = "DESIGNATED_HITTER"
)

// Positions lists every position in scorebook order
var Positions = []Position{
	PositionPitcher, PositionCatcher, PositionFirstBase, PositionSecondBase, PositionThirdBase,
	PositionShortstop, PositionLeftField, PositionCenterField, PositionRightField, PositionDesignatedHitter,
}

// PositionCodes stores positions by scorebook number
var PositionCodes = search.MustCodeTable("position", map[int64]string{
	1:  string(PositionPitcher),
	2:  string(PositionCatcher),
	3:  string(PositionFirstBase),
	4:  string(PositionSecondBase),
	5:  string(PositionThirdBase),
	6:  string(PositionShortstop),
	7:  string(PositionLeftField),
	8:  string(PositionCenterField),
	9:  string(PositionRightField),
	10: string(PositionDesignatedHitter),
})

// SeasonPhase separates regular season, postseason and all-star totals
type SeasonPhase string

const (
	PhaseRegularSeason SeasonPhase = "REGULAR_SEASON"
	PhasePostseason    SeasonPhase = "POSTSEASON"
	PhaseAllstar       SeasonPhase = "ALLSTAR"
)

var SeasonPhases = []SeasonPhase{PhaseRegularSeason, PhasePostseason, PhaseAllstar}

var SeasonPhaseCodes = search.MustCodeTable("season phase", map[int64]string{
	0: string(PhaseRegularSeason),
	1: string(PhasePostseason),
	2: string(PhaseAllstar),
})

// GameType classifies a scheduled game
type GameType string

const (
	GameTypeRegular    GameType = "REGULAR"
	GameTypePlayoff    GameType = "PLAYOFF"
	GameTypeExhibition GameType = "EXHIBITION"
	GameTypeAllstar    GameType = "ALLSTAR"
)

var GameTypes = []GameType{GameTypeRegular, GameTypePlayoff, GameTypeExhibition, GameTypeAllstar}

var GameTypeCodes = search.MustCodeTable("game type", map[int64]string{
	0: string(GameTypeRegular),
	1: string(GameTypePlayoff),
	2: string(GameTypeExhibition),
	3: string(GameTypeAllstar),
})

// GameStatus is where a game is in its lifecycle
type GameStatus string

const (
	GameStatusScheduled  GameStatus = "SCHEDULED"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
	GameStatusFinal      GameStatus = "FINAL"
	GameStatusPostponed  GameStatus = "POSTPONED"
)

var GameStatuses = []GameStatus{GameStatusScheduled, GameStatusInProgress, GameStatusFinal, GameStatusPostponed}

var GameStatusCodes = search.MustCodeTable("game status", map[int64]string{
	0: string(GameStatusScheduled),
	1: string(GameStatusInProgress),
	2: string(GameStatusFinal),
	3: string(GameStatusPostponed),
})

// InningHalf is the top or bottom of an inning
type InningHalf string

const (
	InningTop    InningHalf = "TOP"
	InningBottom InningHalf = "BOTTOM"
)

var InningHalves = []InningHalf{InningTop, InningBottom}

var InningHalfCodes = search.MustCodeTable("inning half", map[int64]string{
	0: string(InningTop),
	1: string(InningBottom),
})

// ValidateCodeTables checks that every enumerated type and its code table
// describe the same set of values.
func ValidateCodeTables() error {
	return errors.Join(
		PositionCodes.Covers(symbols(Positions)...),
		SeasonPhaseCodes.Covers(symbols(SeasonPhases)...),
		GameTypeCodes.Covers(symbols(GameTypes)...),
		GameStatusCodes.Covers(symbols(GameStatuses)...),
		InningHalfCodes.Covers(symbols(InningHalves)...),
	)
}

func symbols[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
