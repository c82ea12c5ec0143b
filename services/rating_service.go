package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/Dosada05/matchplay/metrics"
	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/ranking"
	"github.com/Dosada05/matchplay/realtime"
	"github.com/Dosada05/matchplay/reliability"
	"github.com/Dosada05/matchplay/repositories"
)

// MatchResultRequest: завершённый матч: составы команд и итог.
// Для одиночного матча в каждой команде один игрок, для парного два.
type MatchResultRequest struct {
	Team1PlayerIDs []int              `json:"team1_player_ids"`
	Team2PlayerIDs []int              `json:"team2_player_ids"`
	Outcome        models.MatchOutcome `json:"outcome"`

	// TournamentID задаёт комнату для live-уведомления; nil для
	// товарищеских матчей.
	TournamentID *int `json:"tournament_id,omitempty"`
}

// RatingChange: изменение рейтинга одного игрока вместе с новым рангом.
type RatingChange struct {
	ranking.Change
	Tier ranking.Tier `json:"tier"`
}

type RatingService interface {
	// CompleteMatch применяет результат матча: пересчитывает уровни,
	// начисляет played-событие надёжности и сохраняет всё одной
	// транзакцией с optimistic-проверкой версий.
	CompleteMatch(ctx context.Context, req MatchResultRequest) ([]RatingChange, error)
}

type ratingService struct {
	db         *sql.DB
	playerRepo repositories.PlayerRepository
	hub        *realtime.Hub
}

func NewRatingService(db *sql.DB, playerRepo repositories.PlayerRepository, hub *realtime.Hub) RatingService {
	return &ratingService{
		db:         db,
		playerRepo: playerRepo,
		hub:        hub,
	}
}

func (s *ratingService) CompleteMatch(ctx context.Context, req MatchResultRequest) ([]RatingChange, error) {
	if err := validateMatchResult(req); err != nil {
		return nil, err
	}

	allIDs := append(append([]int{}, req.Team1PlayerIDs...), req.Team2PlayerIDs...)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Rollback failed after rating update error: %v (original: %v)", rbErr, txErr)
			}
		}
	}()

	players, err := s.playerRepo.ListByIDs(ctx, tx, allIDs)
	if err != nil {
		txErr = err
		return nil, fmt.Errorf("failed to load match participants: %w", err)
	}
	if len(players) != len(allIDs) {
		txErr = ErrPlayerNotFound
		return nil, ErrPlayerNotFound
	}

	byID := make(map[int]*models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	participants := make([]ranking.Participant, 0, len(allIDs))
	for _, id := range req.Team1PlayerIDs {
		participants = append(participants, toParticipant(byID[id], 1))
	}
	for _, id := range req.Team2PlayerIDs {
		participants = append(participants, toParticipant(byID[id], 2))
	}

	changes, err := ranking.UpdateRatings(participants, req.Outcome)
	if err != nil {
		txErr = err
		return nil, mapRankingError(err)
	}

	results := make([]RatingChange, 0, len(changes))
	for _, change := range changes {
		player := byID[change.PlayerID]

		// Сыгранный матч также подталкивает показатель надёжности.
		newReliability := reliability.Update(player.Reliability, player.MatchesPlayed, reliability.EventPlayed)

		if err := s.playerRepo.UpdateRating(ctx, tx, player.ID, change.After, newReliability, player.MatchesPlayed+1, player.Version); err != nil {
			txErr = err
			if errors.Is(err, repositories.ErrPlayerVersionConflict) {
				return nil, ErrConcurrentUpdate
			}
			return nil, err
		}

		results = append(results, RatingChange{
			Change: change,
			Tier:   ranking.TierForLevel(change.After),
		})
	}

	if err := tx.Commit(); err != nil {
		txErr = err
		return nil, fmt.Errorf("failed to commit rating update: %w", err)
	}

	metrics.RatingsUpdated.Inc()

	if req.TournamentID != nil {
		s.hub.BroadcastToRoom(tournamentRoom(*req.TournamentID), realtime.MessageRatingsUpdated, results)
	}

	return results, nil
}

func toParticipant(p *models.Player, team int) ranking.Participant {
	return ranking.Participant{
		PlayerID:      p.ID,
		Level:         p.Level,
		MatchesPlayed: p.MatchesPlayed,
		Team:          team,
	}
}

func validateMatchResult(req MatchResultRequest) error {
	if len(req.Team1PlayerIDs) == 0 || len(req.Team2PlayerIDs) == 0 {
		return ErrParticipantsRequired
	}
	return validateOutcome(req.Outcome)
}

func mapRankingError(err error) error {
	switch {
	case errors.Is(err, ranking.ErrNoSets):
		return ErrOutcomeNoSets
	case errors.Is(err, ranking.ErrInvalidWinner):
		return ErrOutcomeInvalidWinner
	case errors.Is(err, ranking.ErrNoParticipants), errors.Is(err, ranking.ErrInvalidTeams):
		return ErrParticipantsRequired
	default:
		return err
	}
}

func tournamentRoom(tournamentID int) string {
	return fmt.Sprintf("tournament_%d", tournamentID)
}
