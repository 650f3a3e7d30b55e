package models

import "time"

// TeamGroups is the set of valid tournament groups.
var TeamGroups = []string{"A", "B", "C", "D", "E", "F"}

func ValidTeamGroup(group string) bool {
	for _, g := range TeamGroups {
		if g == group {
			return true
		}
	}
	return false
}

type Team struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	FlagURL   *string   `json:"flag_url,omitempty"`
	Coach     string    `json:"coach"`
	Group     string    `json:"group"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Players []PlayerSummary `json:"players,omitempty"`
}

// TeamSummary is the projection of a team embedded in player and match
// payloads. Detail reads add the coach; list reads leave it out.
type TeamSummary struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	FlagURL *string `json:"flag_url,omitempty"`
	Coach   string  `json:"coach,omitempty"`
}
