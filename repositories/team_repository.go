package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/footdata/worldcup-api/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict")
	ErrTeamReferenced   = errors.New("team is referenced by other rows")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
	DeleteCascade(ctx context.Context, id int) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	CountPlayers(ctx context.Context, teamID int) (int, error)
	CountMatches(ctx context.Context, teamID int) (int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, country, flag_url, coach, "group")
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		team.Country,
		team.FlagURL,
		team.Coach,
		team.Group,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == "teams_name_key" {
			return ErrTeamNameConflict
		}
		return translateError(err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, country, flag_url, coach, "group", created_at, updated_at
		FROM teams
		WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Country,
		&team.FlagURL,
		&team.Coach,
		&team.Group,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, translateError(err)
	}

	// The team detail view is the only roster projection that carries age.
	rosters, err := r.listRosters(ctx, []int{team.ID}, true)
	if err != nil {
		return nil, err
	}
	team.Players = rosters[team.ID]
	if team.Players == nil {
		team.Players = []models.PlayerSummary{}
	}

	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	query := `
		SELECT id, name, country, flag_url, coach, "group", created_at, updated_at
		FROM teams
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	teamIDs := make([]int, 0)
	for rows.Next() {
		var team models.Team
		scanErr := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Country,
			&team.FlagURL,
			&team.Coach,
			&team.Group,
			&team.CreatedAt,
			&team.UpdatedAt,
		)
		if scanErr != nil {
			return nil, translateError(scanErr)
		}
		teams = append(teams, team)
		teamIDs = append(teamIDs, team.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, translateError(err)
	}

	if len(teams) == 0 {
		return teams, nil
	}

	rosters, err := r.listRosters(ctx, teamIDs, false)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		teams[i].Players = rosters[teams[i].ID]
		if teams[i].Players == nil {
			teams[i].Players = []models.PlayerSummary{}
		}
	}

	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams SET
			name = $1,
			country = $2,
			flag_url = $3,
			coach = $4,
			"group" = $5,
			updated_at = now()
		WHERE id = $6
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		team.Country,
		team.FlagURL,
		team.Coach,
		team.Group,
		team.ID,
	).Scan(&team.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTeamNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == "teams_name_key" {
			return ErrTeamNameConflict
		}
		return translateError(err)
	}
	return nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return ErrTeamReferenced
		}
		return translateError(err)
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// DeleteCascade removes the team together with its players and matches in a
// single transaction.
func (r *postgresTeamRepository) DeleteCascade(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE home_team_id = $1 OR away_team_id = $1`, id); err != nil {
		return translateError(err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE team_id = $1`, id); err != nil {
		return translateError(err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cascade delete of team %d: %w", id, translateError(err))
	}
	return nil
}

func (r *postgresTeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM teams WHERE name = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, translateError(err)
	}
	return exists, nil
}

func (r *postgresTeamRepository) CountPlayers(ctx context.Context, teamID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players WHERE team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (r *postgresTeamRepository) CountMatches(ctx context.Context, teamID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE home_team_id = $1 OR away_team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// listRosters loads the roster projections for a set of teams in one query,
// keyed by team id. Only the columns the payload carries are selected.
func (r *postgresTeamRepository) listRosters(ctx context.Context, teamIDs []int, includeAge bool) (map[int][]models.PlayerSummary, error) {
	columns := `team_id, id, name, position, number`
	if includeAge {
		columns += `, age`
	}
	query := `
		SELECT ` + columns + `
		FROM players
		WHERE team_id = ANY($1)
		ORDER BY number ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(teamIDs))
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	byTeam := make(map[int][]models.PlayerSummary)
	for rows.Next() {
		var teamID int
		var player models.PlayerSummary
		dest := []interface{}{&teamID, &player.ID, &player.Name, &player.Position, &player.Number}
		if includeAge {
			dest = append(dest, &player.Age)
		}
		if scanErr := rows.Scan(dest...); scanErr != nil {
			return nil, translateError(scanErr)
		}
		byTeam[teamID] = append(byTeam[teamID], player)
	}
	if err = rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return byTeam, nil
}
