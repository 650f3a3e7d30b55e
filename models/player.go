package models

import "time"

// PlayerPositions lists every accepted position, full names and their
// common abbreviations alike.
var PlayerPositions = []string{
	"Goalkeeper", "GK",
	"Defender", "Right Back", "RB", "Left Back", "LB", "Center Back", "CB",
	"Right Wing Back", "RWB", "Left Wing Back", "LWB",
	"Midfielder", "CDM", "CM", "CAM", "RM", "LM",
	"Forward", "RW", "LW", "ST", "CF",
}

func ValidPlayerPosition(position string) bool {
	for _, p := range PlayerPositions {
		if p == position {
			return true
		}
	}
	return false
}

type Player struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Number    int       `json:"number"`
	Age       int       `json:"age"`
	TeamID    int       `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Team *TeamSummary `json:"team,omitempty"`
}

// PlayerSummary is the projection of a player embedded in team payloads.
// The team detail read adds the age; the team list leaves it out.
type PlayerSummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Number   int    `json:"number"`
	Age      int    `json:"age,omitempty"`
}
