// Package ranking пересчитывает уровень игроков после завершённого матча.
// Модель производная от ELO: уровень 1.0-10.0 линейно отображается в
// ELO-шкалу, ожидаемый исход считается стандартной логистической кривой,
// скорость изменения зависит от опыта, выигрыш усиливается за разгром.
package ranking

import (
	"errors"
	"math"

	"github.com/Dosada05/matchplay/models"
)

const (
	MinLevel = 1.0
	MaxLevel = 10.0

	// Линейное отображение уровня в ELO: 400 + (level-1)*200.
	eloBase     = 400.0
	eloPerLevel = 200.0

	// Разница в 400 ELO даёт 10-кратные шансы на победу.
	logisticSpread = 400.0

	// BaseK: базовый K-фактор для игроков со средним опытом.
	BaseK = 32.0

	// Бонусы множителя за характер победы. Применяются только к выигравшей
	// стороне, проигрыш никогда не усиливается.
	sweepBonus       = 0.1
	maxGameDiffBonus = 0.2
)

// KTier: ступень K-фактора по опыту. MaxMatches включительно: игрок ровно
// на границе двигается по более быстрой ступени.
type KTier struct {
	MaxMatches int // -1 = без ограничения
	Multiplier float64
}

// KTiers: таблица ступеней, строго убывающая по множителю.
var KTiers = []KTier{
	{MaxMatches: 10, Multiplier: 1.5},
	{MaxMatches: 30, Multiplier: 1.0},
	{MaxMatches: -1, Multiplier: 0.75},
}

var (
	ErrNoParticipants = errors.New("rating update requires participants")
	ErrInvalidTeams   = errors.New("participants must cover exactly teams 1 and 2")
	ErrNoSets         = errors.New("match outcome contains no sets")
	ErrInvalidWinner  = errors.New("winner team must be 1 or 2")
)

// Participant: участник матча с текущим уровнем и командой (1 или 2).
type Participant struct {
	PlayerID      int
	Level         float64
	MatchesPlayed int
	Team          int
}

// Change: результат пересчёта для одного участника.
type Change struct {
	PlayerID int     `json:"player_id"`
	Before   float64 `json:"before"`
	After    float64 `json:"after"`
	Delta    float64 `json:"delta"`
}

// UpdateRatings пересчитывает уровни всех участников по итогу матча.
// Работает для 1v1 и 2v2: рейтинг команды считается средним уровней её игроков.
func UpdateRatings(participants []Participant, outcome models.MatchOutcome) ([]Change, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if len(outcome.Sets) == 0 {
		return nil, ErrNoSets
	}
	if outcome.WinnerTeam != 1 && outcome.WinnerTeam != 2 {
		return nil, ErrInvalidWinner
	}

	team1Level, team2Level, err := teamLevels(participants)
	if err != nil {
		return nil, err
	}

	margin := marginMultiplier(outcome)

	elo1 := levelToElo(team1Level)
	elo2 := levelToElo(team2Level)
	expected1 := expectedScore(elo1, elo2)
	expected2 := 1 - expected1

	changes := make([]Change, 0, len(participants))
	for _, p := range participants {
		expected := expected1
		if p.Team == 2 {
			expected = expected2
		}

		actual := 0.0
		if p.Team == outcome.WinnerTeam {
			actual = 1.0
		}

		raw := kFactor(p.MatchesPlayed) * (actual - expected)
		if p.Team == outcome.WinnerTeam {
			raw *= margin
		}

		after := clampLevel(round1(p.Level + raw/eloPerLevel))
		changes = append(changes, Change{
			PlayerID: p.PlayerID,
			Before:   p.Level,
			After:    after,
			Delta:    round1(after - p.Level),
		})
	}

	return changes, nil
}

// KFactor возвращает K для игрока с данным числом сыгранных матчей.
func KFactor(totalMatches int) float64 {
	return kFactor(totalMatches)
}

func kFactor(totalMatches int) float64 {
	for _, tier := range KTiers {
		if tier.MaxMatches < 0 || totalMatches <= tier.MaxMatches {
			return BaseK * tier.Multiplier
		}
	}
	return BaseK
}

// marginMultiplier: база 1.0, +0.1 за сухую победу по сетам,
// плюс до +0.2 за нормализованную разницу геймов.
func marginMultiplier(outcome models.MatchOutcome) float64 {
	setsWon := [3]int{}
	games := [3]int{}
	for _, set := range outcome.Sets {
		games[1] += set.Team1
		games[2] += set.Team2
		switch {
		case set.Team1 > set.Team2:
			setsWon[1]++
		case set.Team2 > set.Team1:
			setsWon[2]++
		}
	}

	winner := outcome.WinnerTeam
	loser := 3 - winner

	m := 1.0
	if setsWon[loser] == 0 {
		m += sweepBonus
	}

	total := games[1] + games[2]
	if total > 0 && games[winner] > games[loser] {
		m += maxGameDiffBonus * float64(games[winner]-games[loser]) / float64(total)
	}

	return m
}

func teamLevels(participants []Participant) (float64, float64, error) {
	var sum1, sum2 float64
	var n1, n2 int
	for _, p := range participants {
		switch p.Team {
		case 1:
			sum1 += p.Level
			n1++
		case 2:
			sum2 += p.Level
			n2++
		default:
			return 0, 0, ErrInvalidTeams
		}
	}
	if n1 == 0 || n2 == 0 {
		return 0, 0, ErrInvalidTeams
	}
	return sum1 / float64(n1), sum2 / float64(n2), nil
}

func levelToElo(level float64) float64 {
	return eloBase + (level-MinLevel)*eloPerLevel
}

func expectedScore(own, opponent float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponent-own)/logisticSpread))
}

func clampLevel(v float64) float64 {
	if v < MinLevel {
		return MinLevel
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
