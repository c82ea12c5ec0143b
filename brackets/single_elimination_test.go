package brackets

import (
	"testing"

	"github.com/Dosada05/matchplay/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func seededTeams(ids ...int) []TeamSeed {
	teams := make([]TeamSeed, 0, len(ids))
	for i, id := range ids {
		teams = append(teams, TeamSeed{TeamID: id, Seed: intPtr(i + 1)})
	}
	return teams
}

func matchAt(t *testing.T, matches []*Match, round, position int) *Match {
	t.Helper()
	for _, m := range matches {
		if m.Round == round && m.Position == position {
			return m
		}
	}
	t.Fatalf("match (%d, %d) not found", round, position)
	return nil
}

func TestSlotCount(t *testing.T) {
	assert.Equal(t, 2, SlotCount(2))
	assert.Equal(t, 4, SlotCount(3))
	assert.Equal(t, 8, SlotCount(5))
	assert.Equal(t, 8, SlotCount(8))
	assert.Equal(t, 16, SlotCount(9))
}

func TestTotalRounds(t *testing.T) {
	assert.Equal(t, 1, TotalRounds(2))
	assert.Equal(t, 2, TotalRounds(4))
	assert.Equal(t, 3, TotalRounds(8))
	assert.Equal(t, 4, TotalRounds(16))
}

func TestAdvanceWinner(t *testing.T) {
	nr, np, ok := AdvanceWinner(1, 1, 3)
	require.True(t, ok)
	assert.Equal(t, 2, nr)
	assert.Equal(t, 1, np)

	nr, np, ok = AdvanceWinner(1, 4, 3)
	require.True(t, ok)
	assert.Equal(t, 2, nr)
	assert.Equal(t, 2, np)

	_, _, ok = AdvanceWinner(3, 1, 3)
	assert.False(t, ok)
}

func TestRoundLabel(t *testing.T) {
	assert.Equal(t, "Final", RoundLabel(4, 4))
	assert.Equal(t, "Semifinals", RoundLabel(3, 4))
	assert.Equal(t, "Quarterfinals", RoundLabel(2, 4))
	assert.Equal(t, "Round of 16", RoundLabel(1, 4))
	assert.Equal(t, "Round 1", RoundLabel(1, 5))
	assert.Equal(t, "Final", RoundLabel(1, 1))
}

func TestGenerate_RejectsFewerThanTwoTeams(t *testing.T) {
	gen := NewSingleEliminationGenerator()

	_, err := gen.Generate(nil)
	assert.ErrorIs(t, err, ErrNotEnoughTeams)

	_, err = gen.Generate(seededTeams(101))
	assert.ErrorIs(t, err, ErrNotEnoughTeams)
}

func TestGenerate_TwoTeamsSingleFinal(t *testing.T) {
	matches, err := NewSingleEliminationGenerator().Generate(seededTeams(101, 102))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	final := matches[0]
	assert.Equal(t, 1, final.Round)
	assert.Equal(t, intPtr(101), final.Team1ID)
	assert.Equal(t, intPtr(102), final.Team2ID)
	assert.Equal(t, models.MatchStatusPending, final.Status)
	assert.Nil(t, final.NextRound)
	assert.Nil(t, final.NextPosition)
}

func TestGenerate_FourTeamsTopSeedsSeparated(t *testing.T) {
	matches, err := NewSingleEliminationGenerator().Generate(seededTeams(101, 102, 103, 104))
	require.NoError(t, err)
	require.Len(t, matches, 3)

	semi1 := matchAt(t, matches, 1, 1)
	semi2 := matchAt(t, matches, 1, 2)

	// Посевы 1 и 2 в противоположных половинах, 1 играет с 4, 2 с 3.
	assert.Equal(t, intPtr(101), semi1.Team1ID)
	assert.Equal(t, intPtr(104), semi1.Team2ID)
	assert.Equal(t, intPtr(102), semi2.Team1ID)
	assert.Equal(t, intPtr(103), semi2.Team2ID)

	final := matchAt(t, matches, 2, 1)
	assert.Nil(t, final.Team1ID)
	assert.Nil(t, final.Team2ID)
	assert.Nil(t, final.NextRound)
}

func TestGenerate_FiveTeamsByesPreAdvanced(t *testing.T) {
	matches, err := NewSingleEliminationGenerator().Generate(seededTeams(101, 102, 103, 104, 105))
	require.NoError(t, err)
	require.Len(t, matches, 7) // 4 + 2 + 1

	byes := 0
	for _, m := range matches {
		if m.Status == models.MatchStatusBye {
			byes++
		}
	}
	assert.Equal(t, 3, byes)

	// Посевы 1, 2 и 3 получают bye, 4 и 5 играют в первом раунде.
	bye1 := matchAt(t, matches, 1, 1)
	assert.Equal(t, models.MatchStatusBye, bye1.Status)
	assert.Equal(t, intPtr(101), bye1.Team1ID)
	assert.Nil(t, bye1.Team2ID)
	assert.Equal(t, intPtr(101), bye1.WinnerTeamID)

	playoff := matchAt(t, matches, 1, 2)
	assert.Equal(t, models.MatchStatusPending, playoff.Status)
	assert.Equal(t, intPtr(104), playoff.Team1ID)
	assert.Equal(t, intPtr(105), playoff.Team2ID)

	assert.Equal(t, models.MatchStatusBye, matchAt(t, matches, 1, 3).Status)
	assert.Equal(t, models.MatchStatusBye, matchAt(t, matches, 1, 4).Status)

	// Команды с bye уже расставлены по второму раунду.
	semi1 := matchAt(t, matches, 2, 1)
	assert.Equal(t, intPtr(101), semi1.Team1ID)
	assert.Nil(t, semi1.Team2ID) // ждёт победителя матча (1, 2)

	semi2 := matchAt(t, matches, 2, 2)
	assert.Equal(t, intPtr(102), semi2.Team1ID)
	assert.Equal(t, intPtr(103), semi2.Team2ID)
	assert.Equal(t, models.MatchStatusPending, semi2.Status)
}

func TestGenerate_AdvancePointersAreConsistent(t *testing.T) {
	matches, err := NewSingleEliminationGenerator().Generate(seededTeams(101, 102, 103, 104, 105, 106, 107, 108))
	require.NoError(t, err)

	for _, m := range matches {
		if m.Round == 3 {
			assert.Nil(t, m.NextRound)
			assert.Nil(t, m.NextPosition)
			continue
		}
		require.NotNil(t, m.NextRound)
		require.NotNil(t, m.NextPosition)
		assert.Equal(t, m.Round+1, *m.NextRound)
		assert.Equal(t, (m.Position+1)/2, *m.NextPosition)
	}
}

func TestGenerate_UnseededTeamsKeepRegistrationOrder(t *testing.T) {
	teams := []TeamSeed{
		{TeamID: 301},
		{TeamID: 302},
		{TeamID: 303, Seed: intPtr(1)},
		{TeamID: 304},
	}

	matches, err := NewSingleEliminationGenerator().Generate(teams)
	require.NoError(t, err)

	// Посеянная команда получает первую строку, непосеянные идут
	// в порядке регистрации: 303, 301, 302, 304.
	semi1 := matchAt(t, matches, 1, 1)
	assert.Equal(t, intPtr(303), semi1.Team1ID)
	assert.Equal(t, intPtr(304), semi1.Team2ID)

	semi2 := matchAt(t, matches, 1, 2)
	assert.Equal(t, intPtr(301), semi2.Team1ID)
	assert.Equal(t, intPtr(302), semi2.Team2ID)
}

func TestPlaceWinner_SlotByPositionParity(t *testing.T) {
	next := &Match{Round: 2, Position: 1}

	PlaceWinner(next, 1, 501)
	require.NotNil(t, next.Team1ID)
	assert.Equal(t, 501, *next.Team1ID)
	assert.Nil(t, next.Team2ID)

	PlaceWinner(next, 2, 502)
	require.NotNil(t, next.Team2ID)
	assert.Equal(t, 502, *next.Team2ID)
}
