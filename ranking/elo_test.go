package ranking

import (
	"testing"

	"github.com/Dosada05/matchplay/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcome(winner int, sets ...models.SetScore) models.MatchOutcome {
	return models.MatchOutcome{WinnerTeam: winner, Sets: sets}
}

func set(t1, t2 int) models.SetScore {
	return models.SetScore{Team1: t1, Team2: t2}
}

func TestUpdateRatings_EqualSinglesExchangeSymmetric(t *testing.T) {
	participants := []Participant{
		{PlayerID: 1, Level: 5.0, MatchesPlayed: 20, Team: 1},
		{PlayerID: 2, Level: 5.0, MatchesPlayed: 20, Team: 2},
	}

	changes, err := UpdateRatings(participants, outcome(1, set(6, 4), set(6, 4)))
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, 5.1, changes[0].After)
	assert.Equal(t, 0.1, changes[0].Delta)
	assert.Equal(t, 4.9, changes[1].After)
	assert.Equal(t, -0.1, changes[1].Delta)
}

func TestUpdateRatings_NewcomerMovesFasterThanVeteran(t *testing.T) {
	sweep := outcome(1, set(6, 0), set(6, 0))

	newcomer, err := UpdateRatings([]Participant{
		{PlayerID: 1, Level: 5.0, MatchesPlayed: 5, Team: 1},
		{PlayerID: 2, Level: 5.0, MatchesPlayed: 5, Team: 2},
	}, sweep)
	require.NoError(t, err)

	veteran, err := UpdateRatings([]Participant{
		{PlayerID: 1, Level: 5.0, MatchesPlayed: 50, Team: 1},
		{PlayerID: 2, Level: 5.0, MatchesPlayed: 50, Team: 2},
	}, sweep)
	require.NoError(t, err)

	assert.Equal(t, 0.2, newcomer[0].Delta)
	assert.Equal(t, 0.1, veteran[0].Delta)
	assert.Greater(t, newcomer[0].Delta, veteran[0].Delta)
}

func TestUpdateRatings_SweepBeatsNarrowWin(t *testing.T) {
	participants := func() []Participant {
		return []Participant{
			{PlayerID: 1, Level: 5.0, MatchesPlayed: 5, Team: 1},
			{PlayerID: 2, Level: 5.0, MatchesPlayed: 5, Team: 2},
		}
	}

	sweep, err := UpdateRatings(participants(), outcome(1, set(6, 0), set(6, 0)))
	require.NoError(t, err)

	narrow, err := UpdateRatings(participants(), outcome(1, set(6, 4), set(4, 6), set(7, 5)))
	require.NoError(t, err)

	assert.Equal(t, 0.2, sweep[0].Delta)
	assert.Equal(t, 0.1, narrow[0].Delta)
	assert.Greater(t, sweep[0].Delta, narrow[0].Delta)
}

func TestUpdateRatings_UpsetPaysMoreThanExpectedWin(t *testing.T) {
	match := func(winner int) ([]Change, error) {
		return UpdateRatings([]Participant{
			{PlayerID: 1, Level: 3.0, MatchesPlayed: 20, Team: 1},
			{PlayerID: 2, Level: 7.0, MatchesPlayed: 20, Team: 2},
		}, outcome(winner, set(6, 4), set(6, 4)))
	}

	upset, err := match(1)
	require.NoError(t, err)
	assert.Equal(t, 0.2, upset[0].Delta)
	assert.Equal(t, -0.2, upset[1].Delta)

	// Ожидаемая победа фаворита почти ничего не стоит.
	expected, err := match(2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, expected[0].Delta)
	assert.Equal(t, 0.0, expected[1].Delta)
}

func TestUpdateRatings_DoublesUseTeamAverage(t *testing.T) {
	participants := []Participant{
		{PlayerID: 1, Level: 4.0, MatchesPlayed: 20, Team: 1},
		{PlayerID: 2, Level: 6.0, MatchesPlayed: 20, Team: 1},
		{PlayerID: 3, Level: 5.0, MatchesPlayed: 20, Team: 2},
		{PlayerID: 4, Level: 5.0, MatchesPlayed: 20, Team: 2},
	}

	changes, err := UpdateRatings(participants, outcome(1, set(6, 4), set(6, 4)))
	require.NoError(t, err)
	require.Len(t, changes, 4)

	// Средние уровни команд равны: партнёры двигаются одинаково
	// независимо от собственного уровня.
	assert.Equal(t, 0.1, changes[0].Delta)
	assert.Equal(t, 0.1, changes[1].Delta)
	assert.Equal(t, -0.1, changes[2].Delta)
	assert.Equal(t, -0.1, changes[3].Delta)
}

func TestUpdateRatings_ClampsToScale(t *testing.T) {
	changes, err := UpdateRatings([]Participant{
		{PlayerID: 1, Level: 10.0, MatchesPlayed: 20, Team: 1},
		{PlayerID: 2, Level: 1.0, MatchesPlayed: 20, Team: 2},
	}, outcome(1, set(6, 0), set(6, 0)))
	require.NoError(t, err)

	assert.Equal(t, MaxLevel, changes[0].After)
	assert.Equal(t, MinLevel, changes[1].After)
}

func TestUpdateRatings_FloorHoldsOnEqualLoss(t *testing.T) {
	changes, err := UpdateRatings([]Participant{
		{PlayerID: 1, Level: 1.0, MatchesPlayed: 20, Team: 1},
		{PlayerID: 2, Level: 1.0, MatchesPlayed: 20, Team: 2},
	}, outcome(2, set(4, 6), set(4, 6)))
	require.NoError(t, err)

	assert.Equal(t, MinLevel, changes[0].After)
	assert.Equal(t, 0.0, changes[0].Delta)
}

func TestKFactor_TierBoundariesInclusive(t *testing.T) {
	assert.Equal(t, 48.0, KFactor(0))
	assert.Equal(t, 48.0, KFactor(10))
	assert.Equal(t, 32.0, KFactor(11))
	assert.Equal(t, 32.0, KFactor(30))
	assert.Equal(t, 24.0, KFactor(31))
	assert.Equal(t, 24.0, KFactor(1000))
}

func TestUpdateRatings_Validation(t *testing.T) {
	valid := []Participant{
		{PlayerID: 1, Level: 5, MatchesPlayed: 5, Team: 1},
		{PlayerID: 2, Level: 5, MatchesPlayed: 5, Team: 2},
	}

	_, err := UpdateRatings(nil, outcome(1, set(6, 4)))
	assert.ErrorIs(t, err, ErrNoParticipants)

	_, err = UpdateRatings(valid, outcome(1))
	assert.ErrorIs(t, err, ErrNoSets)

	_, err = UpdateRatings(valid, outcome(3, set(6, 4)))
	assert.ErrorIs(t, err, ErrInvalidWinner)

	_, err = UpdateRatings([]Participant{
		{PlayerID: 1, Level: 5, MatchesPlayed: 5, Team: 1},
		{PlayerID: 2, Level: 5, MatchesPlayed: 5, Team: 5},
	}, outcome(1, set(6, 4)))
	assert.ErrorIs(t, err, ErrInvalidTeams)

	_, err = UpdateRatings([]Participant{
		{PlayerID: 1, Level: 5, MatchesPlayed: 5, Team: 1},
		{PlayerID: 2, Level: 5, MatchesPlayed: 5, Team: 1},
	}, outcome(1, set(6, 4)))
	assert.ErrorIs(t, err, ErrInvalidTeams)
}
