package services

import (
	"context"
	"testing"

	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPlayerRepository подменяет БД в тестах сервисов.
type stubPlayerRepository struct {
	players map[int]*models.Player
}

func (r *stubPlayerRepository) GetByID(_ context.Context, id int) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return p, nil
}

func (r *stubPlayerRepository) ListCandidates(_ context.Context, excludeID, limit int) ([]*models.Player, error) {
	out := make([]*models.Player, 0, len(r.players))
	for id, p := range r.players {
		if id == excludeID || len(out) >= limit {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubPlayerRepository) ListByIDs(_ context.Context, _ repositories.SQLExecutor, ids []int) ([]*models.Player, error) {
	out := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.players[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPlayerRepository) UpdateRating(_ context.Context, _ repositories.SQLExecutor, id int, level, reliability float64, matchesPlayed, version int) error {
	p, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	if p.Version != version {
		return repositories.ErrPlayerVersionConflict
	}
	p.Level = level
	p.Reliability = reliability
	p.MatchesPlayed = matchesPlayed
	p.Version++
	return nil
}

func (r *stubPlayerRepository) UpdateReliability(_ context.Context, _ repositories.SQLExecutor, id int, reliability float64, version int) error {
	p, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	if p.Version != version {
		return repositories.ErrPlayerVersionConflict
	}
	p.Reliability = reliability
	p.Version++
	return nil
}

func stubRepoWithPlayers(players ...*models.Player) *stubPlayerRepository {
	repo := &stubPlayerRepository{players: make(map[int]*models.Player, len(players))}
	for _, p := range players {
		repo.players[p.ID] = p
	}
	return repo
}

func suggestionPlayer(id int, level float64, side models.PlayerSide, reliability float64) *models.Player {
	return &models.Player{
		ID:          id,
		Level:       level,
		Side:        side,
		Reliability: reliability,
	}
}

func TestSuggestPartners_OrdersByScoreDescending(t *testing.T) {
	repo := stubRepoWithPlayers(
		suggestionPlayer(1, 5.0, models.SideLeft, 80),
		// Дополняющая сторона, тот же уровень: лучший кандидат.
		suggestionPlayer(2, 5.0, models.SideRight, 90),
		// Большой разрыв в уровне тянет оценку вниз.
		suggestionPlayer(3, 9.5, models.SideRight, 90),
		suggestionPlayer(4, 5.5, models.SideLeft, 70),
	)
	svc := NewSuggestionService(repo)

	suggestions, err := svc.SuggestPartners(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 3)

	assert.Equal(t, 2, suggestions[0].Player.ID)
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Result.Score, suggestions[i].Result.Score)
	}
}

func TestSuggestPartners_TruncatesToLimit(t *testing.T) {
	repo := stubRepoWithPlayers(
		suggestionPlayer(1, 5.0, models.SideLeft, 80),
		suggestionPlayer(2, 5.0, models.SideRight, 90),
		suggestionPlayer(3, 5.5, models.SideRight, 60),
		suggestionPlayer(4, 6.0, models.SideBoth, 70),
	)
	svc := NewSuggestionService(repo)

	suggestions, err := svc.SuggestPartners(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, suggestions, 2)
}

func TestSuggestPartners_InvalidLimit(t *testing.T) {
	svc := NewSuggestionService(stubRepoWithPlayers())

	_, err := svc.SuggestPartners(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrSuggestionLimit)
}

func TestSuggestPartners_UnknownPlayer(t *testing.T) {
	svc := NewSuggestionService(stubRepoWithPlayers())

	_, err := svc.SuggestPartners(context.Background(), 42, 5)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
