package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonKeys(t *testing.T, raw json.RawMessage) []string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestRosterEntrySerializesProjectionOnly(t *testing.T) {
	team := Team{
		ID:        1,
		Name:      "Brazil",
		Country:   "Brazil",
		Coach:     "Dorival Junior",
		Group:     "A",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Players: []PlayerSummary{
			{ID: 7, Name: "Vinicius Junior", Position: "LW", Number: 7},
		},
	}

	raw, err := json.Marshal(team)
	require.NoError(t, err)

	var payload struct {
		Players []json.RawMessage `json:"players"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Len(t, payload.Players, 1)

	// The team list roster carries id/name/position/number and nothing else;
	// the detail view adds age on top.
	assert.ElementsMatch(t, []string{"id", "name", "position", "number"}, jsonKeys(t, payload.Players[0]))

	team.Players[0].Age = 25
	raw, err = json.Marshal(team)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.ElementsMatch(t, []string{"id", "name", "position", "number", "age"}, jsonKeys(t, payload.Players[0]))
}

func TestEmbeddedTeamSerializesProjectionOnly(t *testing.T) {
	player := Player{
		ID:       7,
		Name:     "Vinicius Junior",
		Position: "LW",
		Number:   7,
		Age:      25,
		TeamID:   1,
		Team:     &TeamSummary{ID: 1, Name: "Brazil", Country: "Brazil"},
	}

	raw, err := json.Marshal(player)
	require.NoError(t, err)

	var payload struct {
		Team json.RawMessage `json:"team"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))

	// Player list reads embed id/name/country; the detail view adds coach.
	assert.ElementsMatch(t, []string{"id", "name", "country"}, jsonKeys(t, payload.Team))

	player.Team.Coach = "Dorival Junior"
	raw, err = json.Marshal(player)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.ElementsMatch(t, []string{"id", "name", "country", "coach"}, jsonKeys(t, payload.Team))
}

func TestMatchTeamsSerializeProjectionOnly(t *testing.T) {
	flag := "https://cdn.example.com/teams/1/flag"
	match := Match{
		ID:         1,
		HomeTeamID: 1,
		AwayTeamID: 2,
		MatchDate:  time.Now(),
		Stadium:    "Maracana",
		Status:     MatchStatusScheduled,
		HomeTeam:   &TeamSummary{ID: 1, Name: "Brazil", Country: "Brazil", FlagURL: &flag},
		AwayTeam:   &TeamSummary{ID: 2, Name: "France", Country: "France"},
	}

	raw, err := json.Marshal(match)
	require.NoError(t, err)

	var payload struct {
		HomeTeam json.RawMessage `json:"home_team"`
		AwayTeam json.RawMessage `json:"away_team"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.ElementsMatch(t, []string{"id", "name", "country", "flag_url"}, jsonKeys(t, payload.HomeTeam))
	// flag_url only appears when the team has one.
	assert.ElementsMatch(t, []string{"id", "name", "country"}, jsonKeys(t, payload.AwayTeam))
}
