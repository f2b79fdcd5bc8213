package model

import "github.com/forgo/statline/api/internal/search"

var ManagerSpec = &search.Spec{
	Entity: "manager",
	Fields: []search.Field{
		search.IntField("manager_id"),
		search.IntField("team_id"),
		search.IntField("year"),
		search.StringField("last_name"),
		search.BoolField("interim"),
	},
	Key: []string{"manager_id", "team_id", "year"},
}

// Manager is one manager's tenure with a team in a season
type Manager struct {
	ManagerID int64  `json:"manager_id"`
	TeamID    int64  `json:"team_id"`
	Year      int64  `json:"year"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Interim   bool   `json:"interim"`
}

type ManagerCriteria struct {
	ManagerID *int64
	TeamID    *int64
	Year      *int64
	LastName  *string
	Interim   *bool
}

func (c ManagerCriteria) Request() search.Request {
	req := search.NewRequest()
	req = search.SetOptional(req, "manager_id", c.ManagerID)
	req = search.SetOptional(req, "team_id", c.TeamID)
	req = search.SetOptional(req, "year", c.Year)
	req = search.SetOptional(req, "last_name", c.LastName)
	req = search.SetOptional(req, "interim", c.Interim)
	return req
}

func MapManager(rec search.Record) (*Manager, error) {
	r := search.NewReader(ManagerSpec.Entity, rec)
	m := &Manager{
		ManagerID: r.Int("manager_id"),
		TeamID:    r.Int("team_id"),
		Year:      r.Int("year"),
		FirstName: r.String("first_name"),
		LastName:  r.String("last_name"),
		Interim:   r.Flag("interim"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
