// Package reliability ведёт показатель надёжности игрока: ограниченный скаляр
// 0-100, реагирующий на события посещаемости. Чем больше матчей за плечами,
// тем медленнее двигается показатель, но он никогда не замирает полностью.
package reliability

import "math"

type EventKind string

const (
	EventPlayed        EventKind = "played"
	EventNoShow        EventKind = "no_show"
	EventCancelledLate EventKind = "cancelled_late"
	EventConfirmed     EventKind = "confirmed"
)

const (
	MinScore = 0.0
	MaxScore = 100.0

	// Базовые поправки до взвешивания опытом. Неявка бьёт заметно сильнее
	// поздней отмены, обе перевешивают прибавку за сыгранный матч.
	playedGain           = 2.0
	cancelledLatePenalty = 6.0
	noShowPenalty        = 15.0

	// Вес опыта: 1/(1 + matches/10) с полом, чтобы показатель ветеранов
	// продолжал двигаться.
	experienceScale = 10.0
	experienceFloor = 0.25
)

// Update возвращает новый показатель после события посещаемости.
// Результат всегда в [MinScore, MaxScore], округлён до двух знаков.
func Update(current float64, totalMatches int, kind EventKind) float64 {
	if totalMatches < 0 {
		totalMatches = 0
	}

	w := experienceWeight(totalMatches)

	var next float64
	switch kind {
	case EventPlayed:
		next = current + playedGain*w
	case EventNoShow:
		next = current - noShowPenalty*w
	case EventCancelledLate:
		next = current - cancelledLatePenalty*w
	case EventConfirmed:
		return current
	default:
		return current
	}

	return round2(clamp(next))
}

func experienceWeight(totalMatches int) float64 {
	w := 1.0 / (1.0 + float64(totalMatches)/experienceScale)
	if w < experienceFloor {
		return experienceFloor
	}
	return w
}

func clamp(v float64) float64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
