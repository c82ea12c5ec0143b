package services

import (
	"context"
	"testing"

	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/reliability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAttendance_NoShowLowersScore(t *testing.T) {
	repo := stubRepoWithPlayers(&models.Player{ID: 1, Reliability: 80, MatchesPlayed: 0, Version: 1})
	svc := NewAttendanceService(repo)

	result, err := svc.RecordAttendance(context.Background(), 1, reliability.EventNoShow)
	require.NoError(t, err)

	assert.Equal(t, 80.0, result.Before)
	assert.Equal(t, 65.0, result.After)
	assert.Equal(t, 65.0, repo.players[1].Reliability)
	assert.Equal(t, 2, repo.players[1].Version)
}

func TestRecordAttendance_ConfirmedSkipsWrite(t *testing.T) {
	repo := stubRepoWithPlayers(&models.Player{ID: 1, Reliability: 72.5, MatchesPlayed: 9, Version: 3})
	svc := NewAttendanceService(repo)

	result, err := svc.RecordAttendance(context.Background(), 1, reliability.EventConfirmed)
	require.NoError(t, err)

	assert.Equal(t, result.Before, result.After)
	assert.Equal(t, 3, repo.players[1].Version) // запись не обновлялась
}

func TestRecordAttendance_InvalidKind(t *testing.T) {
	svc := NewAttendanceService(stubRepoWithPlayers())

	_, err := svc.RecordAttendance(context.Background(), 1, reliability.EventKind("overslept"))
	assert.ErrorIs(t, err, ErrAttendanceInvalidKind)
}

func TestRecordAttendance_UnknownPlayer(t *testing.T) {
	svc := NewAttendanceService(stubRepoWithPlayers())

	_, err := svc.RecordAttendance(context.Background(), 404, reliability.EventNoShow)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
