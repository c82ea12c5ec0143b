package matchmaking

import (
	"math"

	"github.com/Dosada05/matchplay/models"
)

// ScoreWeights: весовые коэффициенты итоговой оценки совместимости.
type ScoreWeights struct {
	Level        float64
	Position     float64
	Proximity    float64
	Availability float64
	Reliability  float64
}

// Weights: канонический вектор весов. Сумма равна 1.0; тесты опираются
// на эту же таблицу, а не на собственные копии констант.
var Weights = ScoreWeights{
	Level:        0.40,
	Position:     0.20,
	Proximity:    0.15,
	Availability: 0.15,
	Reliability:  0.10,
}

const (
	// DefaultMaxDistanceKm: радиус, за которым географическая близость
	// считается нулевой. 100 - 2*50 = 0, так что штраф за километраж
	// насыщается на той же отметке.
	DefaultMaxDistanceKm = 50.0

	levelPenaltyPerPoint  = 20.0
	proximityPenaltyPerKm = 2.0
	pointsPerSharedSlot   = 20.0

	positionComplementary = 100.0
	positionOneFlexible   = 80.0
	positionBothFlexible  = 70.0
	positionSameSide      = 50.0
)

// Breakdown: под-оценки, каждая независимо в диапазоне [0,100].
type Breakdown struct {
	Level        float64 `json:"level"`
	Position     float64 `json:"position"`
	Proximity    float64 `json:"proximity"`
	Availability float64 `json:"availability"`
	Reliability  float64 `json:"reliability"`
}

// Result: итог оценки совместимости с кандидатом.
type Result struct {
	PlayerID  int       `json:"player_id"`
	Score     int       `json:"score"` // 0-100
	Breakdown Breakdown `json:"breakdown"`
}

// Score оценивает совместимость self с кандидатом. Чистая функция:
// все пограничные случаи (нет координат, пустое расписание) дают
// нулевую под-оценку, а не ошибку.
func Score(self, candidate *models.Player, maxDistanceKm float64) Result {
	if maxDistanceKm <= 0 {
		maxDistanceKm = DefaultMaxDistanceKm
	}

	b := Breakdown{
		Level:        levelScore(self.Level, candidate.Level),
		Position:     positionScore(self.Side, candidate.Side),
		Proximity:    proximityScore(self, candidate, maxDistanceKm),
		Availability: availabilityScore(self.Availability, candidate.Availability),
		Reliability:  clampScore(candidate.Reliability),
	}

	total := b.Level*Weights.Level +
		b.Position*Weights.Position +
		b.Proximity*Weights.Proximity +
		b.Availability*Weights.Availability +
		b.Reliability*Weights.Reliability

	return Result{
		PlayerID:  candidate.ID,
		Score:     int(clampScore(math.Round(total))),
		Breakdown: b,
	}
}

// Разрыв в 5 пунктов уровня уже даёт 0.
func levelScore(a, b float64) float64 {
	return clampScore(100 - math.Abs(a-b)*levelPenaltyPerPoint)
}

func positionScore(a, b models.PlayerSide) float64 {
	switch {
	case a == models.SideBoth && b == models.SideBoth:
		return positionBothFlexible
	case a == models.SideBoth || b == models.SideBoth:
		return positionOneFlexible
	case a != b:
		// одна левая, другая правая: идеальная пара
		return positionComplementary
	default:
		return positionSameSide
	}
}

func proximityScore(self, candidate *models.Player, maxDistanceKm float64) float64 {
	if !self.HasCoordinates() || !candidate.HasCoordinates() {
		return 0
	}
	dist := DistanceKm(*self.Latitude, *self.Longitude, *candidate.Latitude, *candidate.Longitude)
	if dist > maxDistanceKm {
		return 0
	}
	return clampScore(100 - dist*proximityPenaltyPerKm)
}

// Каждый общий слот (совпадение дня и метки) стоит 20 очков, потолок 100.
func availabilityScore(a, b models.Availability) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for day, slots := range a {
		other := b[day]
		if len(other) == 0 {
			continue
		}
		otherSet := make(map[string]struct{}, len(other))
		for _, s := range other {
			otherSet[s] = struct{}{}
		}
		for _, s := range slots {
			if _, ok := otherSet[s]; ok {
				shared++
			}
		}
	}
	return clampScore(float64(shared) * pointsPerSharedSlot)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
