package model

import "github.com/forgo/statline/api/internal/search"

// TeamSpec declares how team seasons are searched
var TeamSpec = &search.Spec{
	Entity: "team",
	Fields: []search.Field{
		search.IntField("team_id"),
		search.IntField("year"),
		search.IntField("conference_id"),
		search.IntField("division_id"),
		search.BoolField("allstar"),
	},
	Key: []string{"team_id", "year"},
}

// Team is a franchise's record for one season
type Team struct {
	TeamID       int64  `json:"team_id"`
	Year         int64  `json:"year"`
	ConferenceID int64  `json:"conference_id"`
	DivisionID   int64  `json:"division_id"`
	Allstar      bool   `json:"allstar"` // Hosted the all-star game
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// TeamCriteria filters team seasons. Nil fields are not filtered on.
type TeamCriteria struct {
	TeamID       *int64
	Year         *int64
	ConferenceID *int64
	DivisionID   *int64
	Allstar      *bool
}

// Request converts the criteria into a search request
func (c TeamCriteria) Request() search.Request {
	req := search.NewRequest()
	req = search.SetOptional(req, "team_id", c.TeamID)
	req = search.SetOptional(req, "year", c.Year)
	req = search.SetOptional(req, "conference_id", c.ConferenceID)
	req = search.SetOptional(req, "division_id", c.DivisionID)
	req = search.SetOptional(req, "allstar", c.Allstar)
	return req
}

// MapTeam projects a stored team record
func MapTeam(rec search.Record) (*Team, error) {
	r := search.NewReader(TeamSpec.Entity, rec)
	team := &Team{
		TeamID:       r.Int("team_id"),
		Year:         r.Int("year"),
		ConferenceID: r.Int("conference_id"),
		DivisionID:   r.Int("division_id"),
		Allstar:      r.Flag("allstar"),
		Name:         r.String("name"),
		Abbreviation: r.String("abbreviation"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return team, nil
}
