package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/footdata/worldcup-api/models"
	"github.com/footdata/worldcup-api/repositories"
	"github.com/footdata/worldcup-api/storage"
	"golang.org/x/sync/errgroup"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int, cascade bool) error
	UploadFlag(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error)
}

type CreateTeamInput struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	FlagURL *string `json:"flag_url,omitempty"`
	Coach   string  `json:"coach"`
	Group   string  `json:"group"`
}

// UpdateTeamInput uses pointers so an absent field is distinguishable from a
// deliberately set value; absent means "leave unchanged".
type UpdateTeamInput struct {
	Name    *string `json:"name,omitempty"`
	Country *string `json:"country,omitempty"`
	FlagURL *string `json:"flag_url,omitempty"`
	Coach   *string `json:"coach,omitempty"`
	Group   *string `json:"group,omitempty"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Country = strings.TrimSpace(input.Country)
	input.Coach = strings.TrimSpace(input.Coach)
	input.Group = strings.TrimSpace(input.Group)

	fields := fieldErrors{}
	validateTeamName(fields, input.Name)
	validateTeamCountry(fields, input.Country)
	if input.Coach == "" {
		fields.add("coach", "coach is required")
	}
	if !models.ValidTeamGroup(input.Group) {
		fields.add("group", "group must be one of A, B, C, D, E, F")
	}
	if input.FlagURL != nil && !validHTTPURL(*input.FlagURL) {
		fields.add("flag_url", "flag_url must be a valid URL")
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	exists, err := s.teamRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check team name availability: %w", err)
	}
	if exists {
		return nil, ErrTeamNameConflict
	}

	team := &models.Team{
		Name:    input.Name,
		Country: input.Country,
		FlagURL: input.FlagURL,
		Coach:   input.Coach,
		Group:   input.Group,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	team.Players = []models.PlayerSummary{}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d for update: %w", id, err)
	}

	fields := fieldErrors{}
	nameChanged := false

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		validateTeamName(fields, name)
		if name != team.Name {
			team.Name = name
			nameChanged = true
		}
	}
	if input.Country != nil {
		country := strings.TrimSpace(*input.Country)
		validateTeamCountry(fields, country)
		team.Country = country
	}
	if input.Coach != nil {
		coach := strings.TrimSpace(*input.Coach)
		if coach == "" {
			fields.add("coach", "coach is required")
		}
		team.Coach = coach
	}
	if input.Group != nil {
		group := strings.TrimSpace(*input.Group)
		if !models.ValidTeamGroup(group) {
			fields.add("group", "group must be one of A, B, C, D, E, F")
		}
		team.Group = group
	}
	if input.FlagURL != nil {
		if !validHTTPURL(*input.FlagURL) {
			fields.add("flag_url", "flag_url must be a valid URL")
		}
		team.FlagURL = input.FlagURL
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	// Name uniqueness is only re-checked when the name actually changes.
	if nameChanged {
		exists, err := s.teamRepo.ExistsByName(ctx, team.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check team name availability: %w", err)
		}
		if exists {
			return nil, ErrTeamNameConflict
		}
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		default:
			return nil, fmt.Errorf("failed to update team %d: %w", id, err)
		}
	}

	return team, nil
}

// DeleteTeam blocks when dependent players or matches exist, unless the
// caller explicitly opts into a cascading delete.
func (s *teamService) DeleteTeam(ctx context.Context, id int, cascade bool) error {
	if cascade {
		err := s.teamRepo.DeleteCascade(ctx, id)
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		if err == nil {
			s.removeFlagObject(ctx, id)
		}
		return err
	}

	var playerCount, matchCount int
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		playerCount, err = s.teamRepo.CountPlayers(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		matchCount, err = s.teamRepo.CountMatches(gCtx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to count team dependents: %w", err)
	}
	if playerCount > 0 || matchCount > 0 {
		return fmt.Errorf("%w: %d players, %d matches", ErrTeamHasDependents, playerCount, matchCount)
	}

	err := s.teamRepo.Delete(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamReferenced):
		// A dependent row appeared between the counts and the delete.
		return ErrTeamHasDependents
	case err == nil:
		s.removeFlagObject(ctx, id)
	}
	return err
}

// removeFlagObject drops the team's flag object from storage once the row is
// gone. Best effort: deleting a key that was never uploaded is a no-op, and a
// failure here must not undo a committed delete.
func (s *teamService) removeFlagObject(ctx context.Context, teamID int) {
	if s.uploader == nil {
		return
	}
	if err := s.uploader.Delete(ctx, flagObjectKey(teamID)); err != nil {
		slog.Warn("failed to remove flag object", slog.Int("team_id", teamID), slog.Any("error", err))
	}
}

func flagObjectKey(teamID int) string {
	return fmt.Sprintf("teams/%d/flag", teamID)
}

func (s *teamService) UploadFlag(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrFlagStorageUnavailable
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, newValidationError("flag", "flag must be an image")
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d for flag upload: %w", teamID, err)
	}

	result, err := s.uploader.Upload(ctx, flagObjectKey(teamID), contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload flag for team %d: %w", teamID, err)
	}

	team.FlagURL = &result.Location
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to store flag url for team %d: %w", teamID, err)
	}
	return team, nil
}

func validateTeamName(fields fieldErrors, name string) {
	switch {
	case name == "":
		fields.add("name", "name is required")
	case !lengthBetween(name, 2, 50):
		fields.add("name", "name must be between 2 and 50 characters")
	}
}

func validateTeamCountry(fields fieldErrors, country string) {
	switch {
	case country == "":
		fields.add("country", "country is required")
	case !lengthBetween(country, 2, 50):
		fields.add("country", "country must be between 2 and 50 characters")
	}
}
