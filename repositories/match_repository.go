package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/matchplay/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchInvalidSlot = errors.New("match team slot must be 1 or 2")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	GetByRoundPosition(ctx context.Context, exec SQLExecutor, tournamentID, round, position int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, round *int, status *models.MatchStatus) ([]*models.Match, error)
	UpdateScoreStatusWinner(ctx context.Context, exec SQLExecutor, id int, score *string, status models.MatchStatus, winnerTeamID *int) error
	// UpdateTeamSlot записывает команду в первый или второй слот матча
	// (продвижение победителя или bye в следующий раунд).
	UpdateTeamSlot(ctx context.Context, exec SQLExecutor, id int, slot int, teamID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, tournament_id, round, position, team1_id, team2_id, score, status,
	winner_team_id, next_round, next_position, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO matches
			(tournament_id, round, position, team1_id, team2_id, score, status,
			 winner_team_id, next_round, next_position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		match.TournamentID,
		match.Round,
		match.Position,
		match.Team1ID,
		match.Team2ID,
		match.Score,
		match.Status,
		match.WinnerTeamID,
		match.NextRound,
		match.NextPosition,
	).Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create match (tournament %d, round %d, position %d): %w",
			match.TournamentID, match.Round, match.Position, err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) GetByRoundPosition(ctx context.Context, exec SQLExecutor, tournamentID, round, position int) (*models.Match, error) {
	if exec == nil {
		exec = r.db
	}
	query := `SELECT` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1 AND round = $2 AND position = $3`

	match, err := scanMatch(exec.QueryRowContext(ctx, query, tournamentID, round, position))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match (tournament %d, round %d, position %d): %w",
			tournamentID, round, position, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, round *int, status *models.MatchStatus) ([]*models.Match, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT` + matchColumns + ` FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	if round != nil {
		args = append(args, *round)
		sb.WriteString(` AND round = $` + strconv.Itoa(len(args)))
	}
	if status != nil {
		args = append(args, *status)
		sb.WriteString(` AND status = $` + strconv.Itoa(len(args)))
	}
	sb.WriteString(` ORDER BY round, position`)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("match rows iteration error: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateScoreStatusWinner(ctx context.Context, exec SQLExecutor, id int, score *string, status models.MatchStatus, winnerTeamID *int) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		UPDATE matches
		SET score = $1, status = $2, winner_team_id = $3
		WHERE id = $4`

	result, err := exec.ExecContext(ctx, query, score, status, winnerTeamID, id)
	if err != nil {
		return fmt.Errorf("failed to update score for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateTeamSlot(ctx context.Context, exec SQLExecutor, id int, slot int, teamID int) error {
	if exec == nil {
		exec = r.db
	}

	var column string
	switch slot {
	case 1:
		column = "team1_id"
	case 2:
		column = "team2_id"
	default:
		return ErrMatchInvalidSlot
	}

	query := fmt.Sprintf(`UPDATE matches SET %s = $1 WHERE id = $2`, column)
	result, err := exec.ExecContext(ctx, query, teamID, id)
	if err != nil {
		return fmt.Errorf("failed to set team %d into slot %d of match %d: %w", teamID, slot, id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func scanMatch(row rowScanner) (*models.Match, error) {
	match := &models.Match{}
	err := row.Scan(
		&match.ID,
		&match.TournamentID,
		&match.Round,
		&match.Position,
		&match.Team1ID,
		&match.Team2ID,
		&match.Score,
		&match.Status,
		&match.WinnerTeamID,
		&match.NextRound,
		&match.NextPosition,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return match, nil
}
