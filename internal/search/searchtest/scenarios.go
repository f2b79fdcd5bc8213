package searchtest

import (
	"context"
	"testing"

	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TeamRecord builds a complete team season record
func TeamRecord(teamID, year, conference, division int64, allstar bool) search.Record {
	return search.Record{
		"team_id":       teamID,
		"year":          year,
		"conference_id": conference,
		"division_id":   division,
		"allstar":       allstar,
		"name":          "Team",
		"abbreviation":  "TM",
	}
}

func findTeams(t *testing.T, store search.RecordStore, criteria model.TeamCriteria) []*model.Team {
	t.Helper()
	teams, err := search.Find(context.Background(), search.NewExecutor(store), model.TeamSpec, criteria.Request(), model.MapTeam)
	require.NoError(t, err)
	return teams
}

func runTeamScenarios(t *testing.T, open Factory) {
	t.Run("SingleFieldMatch", func(t *testing.T) {
		store := open(t)
		seed(t, store, model.TeamSpec, []search.Record{TeamRecord(1, 2000, 1, 1, false)})

		teams := findTeams(t, store, model.TeamCriteria{TeamID: ptr(int64(1))})
		require.Len(t, teams, 1)
		assert.Equal(t, int64(2000), teams[0].Year)
	})

	t.Run("EmptyRequestReturnsAll", func(t *testing.T) {
		store := open(t)
		seed(t, store, model.TeamSpec, []search.Record{
			TeamRecord(1, 2000, 1, 1, false),
			TeamRecord(2, 2000, 1, 2, false),
		})

		assert.Len(t, findTeams(t, store, model.TeamCriteria{}), 2)
	})

	t.Run("NonKeyFieldDistinguishes", func(t *testing.T) {
		store := open(t)
		seed(t, store, model.TeamSpec, []search.Record{
			TeamRecord(1, 2000, 1, 1, false),
			TeamRecord(2, 2000, 2, 1, false),
		})

		teams := findTeams(t, store, model.TeamCriteria{ConferenceID: ptr(int64(1))})
		require.Len(t, teams, 1)
		assert.Equal(t, int64(1), teams[0].ConferenceID)
		assert.Equal(t, int64(1), teams[0].TeamID)
	})

	t.Run("EmptyStore", func(t *testing.T) {
		store := open(t)

		assert.Empty(t, findTeams(t, store, model.TeamCriteria{}))
		assert.Empty(t, findTeams(t, store, model.TeamCriteria{TeamID: ptr(int64(1)), Allstar: ptr(true)}))
	})

	t.Run("AllFieldsWithNearMisses", func(t *testing.T) {
		store := open(t)
		seed(t, store, model.TeamSpec, []search.Record{
			TeamRecord(1, 2000, 1, 1, true),
			// a near-miss may only differ on a key field or it would replace the match
			TeamRecord(2, 2000, 1, 1, true),
			TeamRecord(1, 2001, 1, 1, true),
			TeamRecord(1, 1999, 1, 1, true),
		})

		teams := findTeams(t, store, model.TeamCriteria{
			TeamID:       ptr(int64(1)),
			Year:         ptr(int64(2000)),
			ConferenceID: ptr(int64(1)),
			DivisionID:   ptr(int64(1)),
			Allstar:      ptr(true),
		})
		require.Len(t, teams, 1)
		assert.Equal(t, &model.Team{
			TeamID:       1,
			Year:         2000,
			ConferenceID: 1,
			DivisionID:   1,
			Allstar:      true,
			Name:         "Team",
			Abbreviation: "TM",
		}, teams[0])
	})
}

func ptr[T any](v T) *T { return &v }
