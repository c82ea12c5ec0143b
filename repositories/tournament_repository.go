package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/matchplay/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
)

type TournamentRepository interface {
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error
	SetWinner(ctx context.Context, exec SQLExecutor, id int, teamID int) error
	ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error)
	// ListRegistrationDue возвращает турниры в статусе registration с
	// истёкшим дедлайном, кандидатов на автоматическую генерацию сетки.
	ListRegistrationDue(ctx context.Context, now time.Time) ([]*models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `
	id, name, description, format, status, reg_deadline, start_date,
	max_teams, winner_id, created_at`

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t, err := scanTournament(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament by id %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx, `UPDATE tournaments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) SetWinner(ctx context.Context, exec SQLExecutor, id int, teamID int) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx, `UPDATE tournaments SET winner_id = $1 WHERE id = $2`, teamID, id)
	if err != nil {
		return fmt.Errorf("failed to set winner of tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error) {
	query := `
		SELECT id, tournament_id, name, seed, player1_id, player2_id
		FROM teams
		WHERE tournament_id = $1
		ORDER BY seed NULLS LAST, id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.Name, &t.Seed, &t.Player1ID, &t.Player2ID); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("team rows iteration error: %w", err)
	}
	return teams, nil
}

func (r *postgresTournamentRepository) ListRegistrationDue(ctx context.Context, now time.Time) ([]*models.Tournament, error) {
	query := `SELECT` + tournamentColumns + `
		FROM tournaments
		WHERE status = $1 AND reg_deadline <= $2
		ORDER BY reg_deadline`

	rows, err := r.db.QueryContext(ctx, query, models.StatusRegistration, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments due for bracket generation: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tournament rows iteration error: %w", err)
	}
	return tournaments, nil
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	t := &models.Tournament{}
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.Format,
		&t.Status,
		&t.RegDeadline,
		&t.StartDate,
		&t.MaxTeams,
		&t.WinnerID,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
