package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusFinished  MatchStatus = "finished"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusLive, MatchStatusFinished:
		return true
	default:
		return false
	}
}

type Match struct {
	ID         int         `json:"id"`
	HomeTeamID int         `json:"home_team_id"`
	AwayTeamID int         `json:"away_team_id"`
	ScoreHome  int         `json:"score_home"`
	ScoreAway  int         `json:"score_away"`
	MatchDate  time.Time   `json:"match_date"`
	Stadium    string      `json:"stadium"`
	Status     MatchStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	HomeTeam *TeamSummary `json:"home_team,omitempty"`
	AwayTeam *TeamSummary `json:"away_team,omitempty"`
}
