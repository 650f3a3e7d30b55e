package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/footdata/worldcup-api/live"
	"github.com/footdata/worldcup-api/models"
	"github.com/footdata/worldcup-api/repositories"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	ListUpcomingMatches(ctx context.Context) ([]models.Match, error)
	UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error
}

type CreateMatchInput struct {
	HomeTeamID int                 `json:"home_team_id"`
	AwayTeamID int                 `json:"away_team_id"`
	MatchDate  time.Time           `json:"match_date"`
	Stadium    string              `json:"stadium"`
	Status     *models.MatchStatus `json:"status,omitempty"`
	ScoreHome  *int                `json:"score_home,omitempty"`
	ScoreAway  *int                `json:"score_away,omitempty"`
}

// UpdateMatchInput uses pointers throughout so a score of 0 is
// distinguishable from an omitted field.
type UpdateMatchInput struct {
	HomeTeamID *int                `json:"home_team_id,omitempty"`
	AwayTeamID *int                `json:"away_team_id,omitempty"`
	ScoreHome  *int                `json:"score_home,omitempty"`
	ScoreAway  *int                `json:"score_away,omitempty"`
	MatchDate  *time.Time          `json:"match_date,omitempty"`
	Stadium    *string             `json:"stadium,omitempty"`
	Status     *models.MatchStatus `json:"status,omitempty"`
}

type matchService struct {
	matchRepo     repositories.MatchRepository
	teamRepo      repositories.TeamRepository
	hub           *live.Hub
	upcomingLimit int
}

func NewMatchService(matchRepo repositories.MatchRepository, teamRepo repositories.TeamRepository, hub *live.Hub, upcomingLimit int) MatchService {
	return &matchService{
		matchRepo:     matchRepo,
		teamRepo:      teamRepo,
		hub:           hub,
		upcomingLimit: upcomingLimit,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	input.Stadium = strings.TrimSpace(input.Stadium)

	fields := fieldErrors{}
	if input.HomeTeamID <= 0 {
		fields.add("home_team_id", "home_team_id is required")
	}
	if input.AwayTeamID <= 0 {
		fields.add("away_team_id", "away_team_id is required")
	}
	if input.MatchDate.IsZero() {
		fields.add("match_date", "match_date is required")
	}
	validateStadium(fields, input.Stadium)
	if input.Status != nil && !input.Status.Valid() {
		fields.add("status", "status must be scheduled, live or finished")
	}
	if input.ScoreHome != nil && *input.ScoreHome < 0 {
		fields.add("score_home", "score_home must not be negative")
	}
	if input.ScoreAway != nil && *input.ScoreAway < 0 {
		fields.add("score_away", "score_away must not be negative")
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	// Cross-field invariant: a team cannot play itself.
	if input.HomeTeamID == input.AwayTeamID {
		return nil, newValidationError("away_team_id", "away team must differ from home team")
	}

	if err := s.checkTeamExists(ctx, input.HomeTeamID); err != nil {
		return nil, err
	}
	if err := s.checkTeamExists(ctx, input.AwayTeamID); err != nil {
		return nil, err
	}

	match := &models.Match{
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		MatchDate:  input.MatchDate,
		Stadium:    input.Stadium,
		Status:     models.MatchStatusScheduled,
	}
	if input.Status != nil {
		match.Status = *input.Status
	}
	if input.ScoreHome != nil {
		match.ScoreHome = *input.ScoreHome
	}
	if input.ScoreAway != nil {
		match.ScoreAway = *input.ScoreAway
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return s.reload(ctx, match.ID)
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) ListUpcomingMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.ListUpcoming(ctx, time.Now(), s.upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d for update: %w", id, err)
	}

	fields := fieldErrors{}
	homeChanged := false
	awayChanged := false

	if input.HomeTeamID != nil {
		if *input.HomeTeamID <= 0 {
			fields.add("home_team_id", "home_team_id must be a positive id")
		}
		homeChanged = *input.HomeTeamID != match.HomeTeamID
		match.HomeTeamID = *input.HomeTeamID
	}
	if input.AwayTeamID != nil {
		if *input.AwayTeamID <= 0 {
			fields.add("away_team_id", "away_team_id must be a positive id")
		}
		awayChanged = *input.AwayTeamID != match.AwayTeamID
		match.AwayTeamID = *input.AwayTeamID
	}
	if input.ScoreHome != nil {
		if *input.ScoreHome < 0 {
			fields.add("score_home", "score_home must not be negative")
		}
		match.ScoreHome = *input.ScoreHome
	}
	if input.ScoreAway != nil {
		if *input.ScoreAway < 0 {
			fields.add("score_away", "score_away must not be negative")
		}
		match.ScoreAway = *input.ScoreAway
	}
	if input.MatchDate != nil {
		if input.MatchDate.IsZero() {
			fields.add("match_date", "match_date must be a valid timestamp")
		}
		match.MatchDate = *input.MatchDate
	}
	if input.Stadium != nil {
		stadium := strings.TrimSpace(*input.Stadium)
		validateStadium(fields, stadium)
		match.Stadium = stadium
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			fields.add("status", "status must be scheduled, live or finished")
		}
		match.Status = *input.Status
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	// Re-checked on the effective pair, whichever side changed.
	if match.HomeTeamID == match.AwayTeamID {
		return nil, newValidationError("away_team_id", "away team must differ from home team")
	}
	if homeChanged {
		if err := s.checkTeamExists(ctx, match.HomeTeamID); err != nil {
			return nil, err
		}
	}
	if awayChanged {
		if err := s.checkTeamExists(ctx, match.AwayTeamID); err != nil {
			return nil, err
		}
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrMatchTeamInvalid):
			return nil, ErrTeamNotFound
		default:
			return nil, fmt.Errorf("failed to update match %d: %w", id, err)
		}
	}

	updated, err := s.reload(ctx, match.ID)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(live.MatchRoom(updated.ID), live.Message{
			Type:    live.EventMatchUpdated,
			Payload: updated,
		})
	}

	return updated, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	err := s.matchRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrMatchNotFound) {
		return ErrMatchNotFound
	}
	return err
}

func (s *matchService) checkTeamExists(ctx context.Context, teamID int) error {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to check team %d: %w", teamID, err)
	}
	return nil
}

func (s *matchService) reload(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload match %d: %w", id, err)
	}
	return match, nil
}

func validateStadium(fields fieldErrors, stadium string) {
	switch {
	case stadium == "":
		fields.add("stadium", "stadium is required")
	case !lengthBetween(stadium, 3, 100):
		fields.add("stadium", "stadium must be between 3 and 100 characters")
	}
}
