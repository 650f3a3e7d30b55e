package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/footdata/worldcup-api/models"
	"github.com/footdata/worldcup-api/repositories"
)

// In-memory repository fakes. Every fake carries a forcedErr that, when set,
// is returned from all methods to simulate an unreachable datastore.

type fakeUserRepo struct {
	users     map[int]*models.User
	nextID    int
	forcedErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repositories.ErrUserEmailConflict
		}
		if existing.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	if r.forcedErr != nil {
		return false, r.forcedErr
	}
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) || user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeTeamRepo struct {
	teams     map[int]*models.Team
	nextID    int
	players   *fakePlayerRepo
	matches   *fakeMatchRepo
	forcedErr error
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[int]*models.Team{}, nextID: 1}
}

func (r *fakeTeamRepo) seed(team models.Team) *models.Team {
	team.ID = r.nextID
	r.nextID++
	stored := team
	r.teams[team.ID] = &stored
	return &stored
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	for _, existing := range r.teams {
		if existing.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	team.ID = r.nextID
	r.nextID++
	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now
	stored := *team
	r.teams[team.ID] = &stored
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) List(_ context.Context) ([]models.Team, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	teams := make([]models.Team, 0, len(r.teams))
	for _, team := range r.teams {
		teams = append(teams, *team)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	for _, existing := range r.teams {
		if existing.ID != team.ID && existing.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	team.UpdatedAt = time.Now()
	stored := *team
	r.teams[team.ID] = &stored
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	if r.countPlayers(id) > 0 || r.countMatches(id) > 0 {
		return repositories.ErrTeamReferenced
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) DeleteCascade(_ context.Context, id int) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	if r.players != nil {
		for playerID, player := range r.players.players {
			if player.TeamID == id {
				delete(r.players.players, playerID)
			}
		}
	}
	if r.matches != nil {
		for matchID, match := range r.matches.matches {
			if match.HomeTeamID == id || match.AwayTeamID == id {
				delete(r.matches.matches, matchID)
			}
		}
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	if r.forcedErr != nil {
		return false, r.forcedErr
	}
	for _, team := range r.teams {
		if team.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeamRepo) CountPlayers(_ context.Context, teamID int) (int, error) {
	if r.forcedErr != nil {
		return 0, r.forcedErr
	}
	return r.countPlayers(teamID), nil
}

func (r *fakeTeamRepo) CountMatches(_ context.Context, teamID int) (int, error) {
	if r.forcedErr != nil {
		return 0, r.forcedErr
	}
	return r.countMatches(teamID), nil
}

func (r *fakeTeamRepo) countPlayers(teamID int) int {
	if r.players == nil {
		return 0
	}
	count := 0
	for _, player := range r.players.players {
		if player.TeamID == teamID {
			count++
		}
	}
	return count
}

func (r *fakeTeamRepo) countMatches(teamID int) int {
	if r.matches == nil {
		return 0
	}
	count := 0
	for _, match := range r.matches.matches {
		if match.HomeTeamID == teamID || match.AwayTeamID == teamID {
			count++
		}
	}
	return count
}

type fakePlayerRepo struct {
	players   map[int]*models.Player
	nextID    int
	forcedErr error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: map[int]*models.Player{}, nextID: 1}
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	player.ID = r.nextID
	r.nextID++
	now := time.Now()
	player.CreatedAt = now
	player.UpdatedAt = now
	stored := *player
	r.players[player.ID] = &stored
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (r *fakePlayerRepo) List(_ context.Context) ([]models.Player, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	players := make([]models.Player, 0, len(r.players))
	for _, player := range r.players {
		players = append(players, *player)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (r *fakePlayerRepo) ListByTeam(_ context.Context, teamID int) ([]models.Player, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	players := make([]models.Player, 0)
	for _, player := range r.players {
		if player.TeamID == teamID {
			players = append(players, *player)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	player.UpdatedAt = time.Now()
	stored := *player
	r.players[player.ID] = &stored
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id int) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *fakePlayerRepo) NumberTaken(_ context.Context, teamID, number, excludePlayerID int) (bool, error) {
	if r.forcedErr != nil {
		return false, r.forcedErr
	}
	for _, player := range r.players {
		if player.TeamID == teamID && player.Number == number && player.ID != excludePlayerID {
			return true, nil
		}
	}
	return false, nil
}

type fakeMatchRepo struct {
	matches   map[int]*models.Match
	nextID    int
	forcedErr error
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[int]*models.Match{}, nextID: 1}
}

func (r *fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	match.ID = r.nextID
	r.nextID++
	now := time.Now()
	match.CreatedAt = now
	match.UpdatedAt = now
	stored := *match
	r.matches[match.ID] = &stored
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) List(_ context.Context) ([]models.Match, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	matches := make([]models.Match, 0, len(r.matches))
	for _, match := range r.matches {
		matches = append(matches, *match)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (r *fakeMatchRepo) ListUpcoming(_ context.Context, from time.Time, limit int) ([]models.Match, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	matches := make([]models.Match, 0)
	for _, match := range r.matches {
		if match.MatchDate.Before(from) {
			continue
		}
		if match.Status != models.MatchStatusScheduled && match.Status != models.MatchStatusLive {
			continue
		}
		matches = append(matches, *match)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].MatchDate.Before(matches[j].MatchDate) })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *fakeMatchRepo) Update(_ context.Context, match *models.Match) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	if _, ok := r.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	match.UpdatedAt = time.Now()
	stored := *match
	r.matches[match.ID] = &stored
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id int) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}
