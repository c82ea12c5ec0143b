package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/matchplay/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound = errors.New("player not found")

	// ErrPlayerVersionConflict: рейтинг или надёжность игрока были
	// изменены параллельно. Два одновременно завершившихся матча не должны
	// молча затирать друг друга.
	ErrPlayerVersionConflict = errors.New("player record was modified concurrently")
)

type PlayerRepository interface {
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListCandidates(ctx context.Context, excludeID int, limit int) ([]*models.Player, error)
	ListByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]*models.Player, error)
	// UpdateRating обновляет уровень, счётчик матчей и надёжность с
	// optimistic-проверкой версии записи.
	UpdateRating(ctx context.Context, exec SQLExecutor, id int, level, reliability float64, matchesPlayed, version int) error
	UpdateReliability(ctx context.Context, exec SQLExecutor, id int, reliability float64, version int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `
	id, first_name, last_name, nickname, level, side, latitude, longitude,
	reliability, matches_played, availability, version, created_at`

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT` + playerColumns + ` FROM players WHERE id = $1`

	player, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player by id %d: %w", id, err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListCandidates(ctx context.Context, excludeID int, limit int) ([]*models.Player, error) {
	query := `SELECT` + playerColumns + `
		FROM players
		WHERE id <> $1
		ORDER BY id
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list match candidates: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]*models.Player, error) {
	if len(ids) == 0 {
		return []*models.Player{}, nil
	}
	if exec == nil {
		exec = r.db
	}

	query := `SELECT` + playerColumns + ` FROM players WHERE id = ANY($1)`

	rows, err := exec.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list players by ids: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func (r *postgresPlayerRepository) UpdateRating(ctx context.Context, exec SQLExecutor, id int, level, reliability float64, matchesPlayed, version int) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		UPDATE players
		SET level = $1, reliability = $2, matches_played = $3, version = version + 1
		WHERE id = $4 AND version = $5`

	result, err := exec.ExecContext(ctx, query, level, reliability, matchesPlayed, id, version)
	if err != nil {
		return fmt.Errorf("failed to update rating for player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerVersionConflict)
}

func (r *postgresPlayerRepository) UpdateReliability(ctx context.Context, exec SQLExecutor, id int, reliability float64, version int) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		UPDATE players
		SET reliability = $1, version = version + 1
		WHERE id = $2 AND version = $3`

	result, err := exec.ExecContext(ctx, query, reliability, id, version)
	if err != nil {
		return fmt.Errorf("failed to update reliability for player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerVersionConflict)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	player := &models.Player{}
	var availabilityRaw []byte

	err := row.Scan(
		&player.ID,
		&player.FirstName,
		&player.LastName,
		&player.Nickname,
		&player.Level,
		&player.Side,
		&player.Latitude,
		&player.Longitude,
		&player.Reliability,
		&player.MatchesPlayed,
		&availabilityRaw,
		&player.Version,
		&player.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(availabilityRaw) > 0 {
		if err := json.Unmarshal(availabilityRaw, &player.Availability); err != nil {
			return nil, fmt.Errorf("failed to decode availability for player %d: %w", player.ID, err)
		}
	}
	return player, nil
}

func collectPlayers(rows *sql.Rows) ([]*models.Player, error) {
	players := make([]*models.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("player rows iteration error: %w", err)
	}
	return players, nil
}
