package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/footdata/worldcup-api/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound       = errors.New("player not found")
	ErrPlayerNumberConflict = errors.New("player number conflict")
	ErrPlayerTeamInvalid    = errors.New("player team invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
	NumberTaken(ctx context.Context, teamID, number, excludePlayerID int) (bool, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, position, number, age, team_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Position,
		player.Number,
		player.Age,
		player.TeamID,
	).Scan(&player.ID, &player.CreatedAt, &player.UpdatedAt)

	return r.handlePlayerError(err)
}

// The embedded team is projected, not the full row: list reads carry
// id/name/country, the player detail read adds the coach.
const (
	playerListSelect = `
		SELECT
			p.id, p.name, p.position, p.number, p.age, p.team_id, p.created_at, p.updated_at,
			t.id, t.name, t.country
		FROM players p
		JOIN teams t ON p.team_id = t.id`

	playerDetailSelect = `
		SELECT
			p.id, p.name, p.position, p.number, p.age, p.team_id, p.created_at, p.updated_at,
			t.id, t.name, t.country, t.coach
		FROM players p
		JOIN teams t ON p.team_id = t.id`
)

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player := &models.Player{}
	team := &models.TeamSummary{}
	err := r.db.QueryRowContext(ctx, playerDetailSelect+` WHERE p.id = $1`, id).Scan(
		&player.ID,
		&player.Name,
		&player.Position,
		&player.Number,
		&player.Age,
		&player.TeamID,
		&player.CreatedAt,
		&player.UpdatedAt,
		&team.ID,
		&team.Name,
		&team.Country,
		&team.Coach,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, translateError(err)
	}

	player.Team = team
	return player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	return r.listPlayers(ctx, playerListSelect+` ORDER BY p.name ASC`)
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	return r.listPlayers(ctx, playerListSelect+` WHERE p.team_id = $1 ORDER BY p.number ASC`, teamID)
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players SET
			name = $1,
			position = $2,
			number = $3,
			age = $4,
			team_id = $5,
			updated_at = now()
		WHERE id = $6
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Position,
		player.Number,
		player.Age,
		player.TeamID,
		player.ID,
	).Scan(&player.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrPlayerNotFound
	}
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// NumberTaken reports whether a jersey number is already used inside a team.
// Pass excludePlayerID > 0 to ignore the player being updated.
func (r *postgresPlayerRepository) NumberTaken(ctx context.Context, teamID, number, excludePlayerID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM players WHERE team_id = $1 AND number = $2 AND id <> $3)`

	var taken bool
	if err := r.db.QueryRowContext(ctx, query, teamID, number, excludePlayerID).Scan(&taken); err != nil {
		return false, translateError(err)
	}
	return taken, nil
}

func (r *postgresPlayerRepository) listPlayers(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		team := &models.TeamSummary{}
		scanErr := rows.Scan(
			&player.ID,
			&player.Name,
			&player.Position,
			&player.Number,
			&player.Age,
			&player.TeamID,
			&player.CreatedAt,
			&player.UpdatedAt,
			&team.ID,
			&team.Name,
			&team.Country,
		)
		if scanErr != nil {
			return nil, translateError(scanErr)
		}
		player.Team = team
		players = append(players, player)
	}
	if err = rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return players, nil
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			if pqErr.Constraint == "players_team_id_number_key" {
				return ErrPlayerNumberConflict
			}
		case pqForeignKeyViolation:
			if pqErr.Constraint == "players_team_id_fkey" {
				return ErrPlayerTeamInvalid
			}
		}
	}
	return translateError(err)
}
