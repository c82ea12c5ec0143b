package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/matchplay/matchmaking"
	"github.com/Dosada05/matchplay/metrics"
	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/repositories"
)

const defaultCandidatePool = 200

// Suggestion: кандидат в напарники с оценкой совместимости.
type Suggestion struct {
	Player *models.Player     `json:"player"`
	Result matchmaking.Result `json:"result"`
}

type SuggestionService interface {
	// SuggestPartners возвращает limit лучших кандидатов для игрока,
	// отсортированных по убыванию совместимости.
	SuggestPartners(ctx context.Context, playerID int, limit int) ([]Suggestion, error)
}

type suggestionService struct {
	playerRepo    repositories.PlayerRepository
	maxDistanceKm float64
}

func NewSuggestionService(playerRepo repositories.PlayerRepository) SuggestionService {
	return &suggestionService{
		playerRepo:    playerRepo,
		maxDistanceKm: matchmaking.DefaultMaxDistanceKm,
	}
}

func (s *suggestionService) SuggestPartners(ctx context.Context, playerID int, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		return nil, ErrSuggestionLimit
	}

	self, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player %d for suggestions: %w", playerID, err)
	}

	candidates, err := s.playerRepo.ListCandidates(ctx, playerID, defaultCandidatePool)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates for player %d: %w", playerID, err)
	}

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		suggestions = append(suggestions, Suggestion{
			Player: candidate,
			Result: matchmaking.Score(self, candidate, s.maxDistanceKm),
		})
	}

	// Сортировка по убыванию оценки; при равенстве по ID для
	// детерминированного порядка.
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Result.Score != suggestions[j].Result.Score {
			return suggestions[i].Result.Score > suggestions[j].Result.Score
		}
		return suggestions[i].Player.ID < suggestions[j].Player.ID
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	metrics.SuggestionsComputed.Inc()
	return suggestions, nil
}
