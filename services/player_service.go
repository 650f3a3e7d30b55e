package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/footdata/worldcup-api/models"
	"github.com/footdata/worldcup-api/repositories"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID int) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
}

type CreatePlayerInput struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Number   int    `json:"number"`
	Age      int    `json:"age"`
	TeamID   int    `json:"team_id"`
}

type UpdatePlayerInput struct {
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
	Number   *int    `json:"number,omitempty"`
	Age      *int    `json:"age,omitempty"`
	TeamID   *int    `json:"team_id,omitempty"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Position = strings.TrimSpace(input.Position)

	fields := fieldErrors{}
	validatePlayerName(fields, input.Name)
	validatePlayerPosition(fields, input.Position)
	validatePlayerNumber(fields, input.Number)
	validatePlayerAge(fields, input.Age)
	if input.TeamID <= 0 {
		fields.add("team_id", "team_id is required")
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to check team %d: %w", input.TeamID, err)
	}

	taken, err := s.playerRepo.NumberTaken(ctx, input.TeamID, input.Number, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check jersey number availability: %w", err)
	}
	if taken {
		return nil, ErrPlayerNumberConflict
	}

	player := &models.Player{
		Name:     input.Name,
		Position: input.Position,
		Number:   input.Number,
		Age:      input.Age,
		TeamID:   input.TeamID,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, s.mapPlayerWriteError(err)
	}

	return s.reload(ctx, player.ID)
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to check team %d: %w", teamID, err)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %d: %w", teamID, err)
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d for update: %w", id, err)
	}

	fields := fieldErrors{}
	teamChanged := false
	numberChanged := false

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		validatePlayerName(fields, name)
		player.Name = name
	}
	if input.Position != nil {
		position := strings.TrimSpace(*input.Position)
		validatePlayerPosition(fields, position)
		player.Position = position
	}
	if input.Number != nil {
		validatePlayerNumber(fields, *input.Number)
		numberChanged = *input.Number != player.Number
		player.Number = *input.Number
	}
	if input.Age != nil {
		validatePlayerAge(fields, *input.Age)
		player.Age = *input.Age
	}
	if input.TeamID != nil {
		if *input.TeamID <= 0 {
			fields.add("team_id", "team_id must be a positive id")
		}
		teamChanged = *input.TeamID != player.TeamID
		player.TeamID = *input.TeamID
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	// A team that is not changing is trusted from the stored row.
	if teamChanged {
		if _, err := s.teamRepo.GetByID(ctx, player.TeamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to check team %d: %w", player.TeamID, err)
		}
	}

	// Jersey uniqueness is scoped to the effective team: the new team when
	// it changes, the current one otherwise.
	if numberChanged || teamChanged {
		taken, err := s.playerRepo.NumberTaken(ctx, player.TeamID, player.Number, player.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check jersey number availability: %w", err)
		}
		if taken {
			return nil, ErrPlayerNumberConflict
		}
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, s.mapPlayerWriteError(err)
	}

	return s.reload(ctx, player.ID)
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	err := s.playerRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return ErrPlayerNotFound
	}
	return err
}

// reload re-reads the player so the response carries the expanded team.
func (s *playerService) reload(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload player %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) mapPlayerWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPlayerNumberConflict):
		return ErrPlayerNumberConflict
	case errors.Is(err, repositories.ErrPlayerTeamInvalid):
		return ErrTeamNotFound
	default:
		return fmt.Errorf("failed to write player: %w", err)
	}
}

func validatePlayerName(fields fieldErrors, name string) {
	switch {
	case name == "":
		fields.add("name", "name is required")
	case !lengthBetween(name, 2, 100):
		fields.add("name", "name must be between 2 and 100 characters")
	}
}

func validatePlayerPosition(fields fieldErrors, position string) {
	switch {
	case position == "":
		fields.add("position", "position is required")
	case !models.ValidPlayerPosition(position):
		fields.add("position", "position is not a recognized position")
	}
}

func validatePlayerNumber(fields fieldErrors, number int) {
	if number < 1 || number > 99 {
		fields.add("number", "number must be between 1 and 99")
	}
}

func validatePlayerAge(fields fieldErrors, age int) {
	if age < 16 || age > 50 {
		fields.add("age", "age must be between 16 and 50")
	}
}
