package brackets

import (
	"fmt"
	"testing"

	"github.com/Dosada05/matchplay/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairKey(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}

func TestRoundRobin_EveryPairPlaysOnce(t *testing.T) {
	matches, err := NewRoundRobinGenerator().Generate(seededTeams(201, 202, 203, 204))
	require.NoError(t, err)
	require.Len(t, matches, 6) // C(4, 2)

	pairs := make(map[string]int)
	for _, m := range matches {
		require.NotNil(t, m.Team1ID)
		require.NotNil(t, m.Team2ID)
		pairs[pairKey(*m.Team1ID, *m.Team2ID)]++

		assert.Equal(t, models.MatchStatusPending, m.Status)
		assert.Nil(t, m.NextRound)
		assert.Nil(t, m.NextPosition)
	}

	assert.Len(t, pairs, 6)
	for pair, count := range pairs {
		assert.Equal(t, 1, count, "pair %s", pair)
	}
}

func TestRoundRobin_OddTeamCountSitsOneOutPerRound(t *testing.T) {
	matches, err := NewRoundRobinGenerator().Generate(seededTeams(201, 202, 203, 204, 205))
	require.NoError(t, err)
	require.Len(t, matches, 10) // C(5, 2)

	perRound := make(map[int]int)
	gamesPerTeam := make(map[int]int)
	for _, m := range matches {
		perRound[m.Round]++
		gamesPerTeam[*m.Team1ID]++
		gamesPerTeam[*m.Team2ID]++
	}

	// Пять раундов по два матча, одна команда каждый раунд отдыхает.
	assert.Len(t, perRound, 5)
	for round, count := range perRound {
		assert.Equal(t, 2, count, "round %d", round)
	}

	for team, games := range gamesPerTeam {
		assert.Equal(t, 4, games, "team %d", team)
	}
}

func TestRoundRobin_NoTeamPlaysTwicePerRound(t *testing.T) {
	matches, err := NewRoundRobinGenerator().Generate(seededTeams(201, 202, 203, 204, 205, 206))
	require.NoError(t, err)

	seen := make(map[int]map[int]bool)
	for _, m := range matches {
		if seen[m.Round] == nil {
			seen[m.Round] = make(map[int]bool)
		}
		assert.False(t, seen[m.Round][*m.Team1ID], "team %d twice in round %d", *m.Team1ID, m.Round)
		assert.False(t, seen[m.Round][*m.Team2ID], "team %d twice in round %d", *m.Team2ID, m.Round)
		seen[m.Round][*m.Team1ID] = true
		seen[m.Round][*m.Team2ID] = true
	}
}

func TestRoundRobin_RejectsFewerThanTwoTeams(t *testing.T) {
	_, err := NewRoundRobinGenerator().Generate(seededTeams(201))
	assert.ErrorIs(t, err, ErrNotEnoughTeams)
}
