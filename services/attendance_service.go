package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/matchplay/metrics"
	"github.com/Dosada05/matchplay/reliability"
	"github.com/Dosada05/matchplay/repositories"
)

// AttendanceResult: показатель надёжности до и после события.
type AttendanceResult struct {
	PlayerID int     `json:"player_id"`
	Before   float64 `json:"before"`
	After    float64 `json:"after"`
}

type AttendanceService interface {
	// RecordAttendance применяет событие посещаемости (неявка, поздняя
	// отмена, подтверждение) к показателю надёжности игрока.
	// Событие played начисляется сервисом рейтинга при завершении матча.
	RecordAttendance(ctx context.Context, playerID int, kind reliability.EventKind) (*AttendanceResult, error)
}

type attendanceService struct {
	playerRepo repositories.PlayerRepository
}

func NewAttendanceService(playerRepo repositories.PlayerRepository) AttendanceService {
	return &attendanceService{playerRepo: playerRepo}
}

func (s *attendanceService) RecordAttendance(ctx context.Context, playerID int, kind reliability.EventKind) (*AttendanceResult, error) {
	switch kind {
	case reliability.EventNoShow, reliability.EventCancelledLate, reliability.EventConfirmed, reliability.EventPlayed:
	default:
		return nil, ErrAttendanceInvalidKind
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player %d for attendance event: %w", playerID, err)
	}

	newScore := reliability.Update(player.Reliability, player.MatchesPlayed, kind)

	// confirmed: no-op, запись не трогаем
	if newScore != player.Reliability {
		if err := s.playerRepo.UpdateReliability(ctx, nil, playerID, newScore, player.Version); err != nil {
			if errors.Is(err, repositories.ErrPlayerVersionConflict) {
				return nil, ErrConcurrentUpdate
			}
			return nil, err
		}
	}

	metrics.AttendanceEvents.WithLabelValues(string(kind)).Inc()

	return &AttendanceResult{
		PlayerID: playerID,
		Before:   player.Reliability,
		After:    newScore,
	}, nil
}
