// Package model defines the league entities served by the Statline API.
//
// Each entity file declares three things side by side:
//
//   - a search.Spec naming the entity's filter fields and natural key
//   - a Criteria struct of pointer fields, one per filter, whose Request
//     method builds a search.Request from the non-nil fields
//   - the response struct and its MapXxx function, which reads a stored
//     search.Record and translates stored codes into symbols
//
// # Entities
//
//   - Team: a franchise's season (team.go)
//   - Manager: a manager's tenure with a team (manager.go)
//   - PlayerGame, PlayerStats: per-game lines and season totals (player.go)
//   - Schedule, TeamOffense, GameState: games and team batting (game.go)
//
// # Code Tables
//
// Enumerated values are persisted as small integers. enums.go defines each
// enum type, the list of its values and the search.CodeTable translating
// between the two. ValidateCodeTables fails if a value and its table drift
// apart; Validate runs it together with every spec's own checks at startup.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
