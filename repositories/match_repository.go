package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/footdata/worldcup-api/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

// Both teams are projected, not scanned whole: list reads carry
// id/name/country/flag_url, the match detail read adds the coach.
const (
	matchListSelect = `
	SELECT
		m.id, m.home_team_id, m.away_team_id, m.score_home, m.score_away,
		m.match_date, m.stadium, m.status, m.created_at, m.updated_at,
		ht.id, ht.name, ht.country, ht.flag_url,
		awt.id, awt.name, awt.country, awt.flag_url
	FROM matches m
	JOIN teams ht ON m.home_team_id = ht.id
	JOIN teams awt ON m.away_team_id = awt.id`

	matchDetailSelect = `
	SELECT
		m.id, m.home_team_id, m.away_team_id, m.score_home, m.score_away,
		m.match_date, m.stadium, m.status, m.created_at, m.updated_at,
		ht.id, ht.name, ht.country, ht.flag_url, ht.coach,
		awt.id, awt.name, awt.country, awt.flag_url, awt.coach
	FROM matches m
	JOIN teams ht ON m.home_team_id = ht.id
	JOIN teams awt ON m.away_team_id = awt.id`
)

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (home_team_id, away_team_id, score_home, score_away, match_date, stadium, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		match.HomeTeamID,
		match.AwayTeamID,
		match.ScoreHome,
		match.ScoreAway,
		match.MatchDate,
		match.Stadium,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, matchDetailSelect+` WHERE m.id = $1`, id)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	matches, err := scanMatches(rows, true)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrMatchNotFound
	}
	return &matches[0], nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, matchListSelect+` ORDER BY m.match_date ASC`)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	return scanMatches(rows, false)
}

// ListUpcoming returns matches yet to be played or currently underway,
// soonest first, capped at limit rows.
func (r *postgresMatchRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]models.Match, error) {
	query := matchListSelect + `
	WHERE m.match_date >= $1 AND m.status = ANY($2)
	ORDER BY m.match_date ASC
	LIMIT $3`

	statuses := []string{string(models.MatchStatusScheduled), string(models.MatchStatusLive)}
	rows, err := r.db.QueryContext(ctx, query, from, pq.Array(statuses), limit)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	return scanMatches(rows, false)
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			home_team_id = $1,
			away_team_id = $2,
			score_home = $3,
			score_away = $4,
			match_date = $5,
			stadium = $6,
			status = $7,
			updated_at = now()
		WHERE id = $8
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		match.HomeTeamID,
		match.AwayTeamID,
		match.ScoreHome,
		match.ScoreAway,
		match.MatchDate,
		match.Stadium,
		match.Status,
		match.ID,
	).Scan(&match.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrMatchNotFound
	}
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		switch pqErr.Constraint {
		case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
			return ErrMatchTeamInvalid
		}
	}
	return translateError(err)
}

func scanMatches(rows *sql.Rows, includeCoach bool) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	for rows.Next() {
		var match models.Match
		homeTeam := &models.TeamSummary{}
		awayTeam := &models.TeamSummary{}

		dest := []interface{}{
			&match.ID,
			&match.HomeTeamID,
			&match.AwayTeamID,
			&match.ScoreHome,
			&match.ScoreAway,
			&match.MatchDate,
			&match.Stadium,
			&match.Status,
			&match.CreatedAt,
			&match.UpdatedAt,
			&homeTeam.ID, &homeTeam.Name, &homeTeam.Country, &homeTeam.FlagURL,
		}
		if includeCoach {
			dest = append(dest, &homeTeam.Coach)
		}
		dest = append(dest, &awayTeam.ID, &awayTeam.Name, &awayTeam.Country, &awayTeam.FlagURL)
		if includeCoach {
			dest = append(dest, &awayTeam.Coach)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, translateError(err)
		}
		match.HomeTeam = homeTeam
		match.AwayTeam = awayTeam
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	return matches, nil
}
