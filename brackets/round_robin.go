package brackets

import (
	"sort"

	"github.com/Dosada05/matchplay/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate строит круговой турнир: каждая команда играет с каждой один раз.
// Раунды раскладываются методом круга (первая команда фиксирована,
// остальные вращаются), при нечётном числе команд добавляется фиктивный
// соперник и его пары пропускаются. Матчи не продвигают победителя:
// NextRound/NextPosition всегда nil.
func (g *RoundRobinGenerator) Generate(teams []TeamSeed) ([]*Match, error) {
	n := len(teams)
	if n < 2 {
		return nil, ErrNotEnoughTeams
	}

	ids := make([]int, 0, n+1)
	for _, t := range rankTeams(teams) {
		ids = append(ids, t.TeamID)
	}
	if len(ids)%2 != 0 {
		ids = append(ids, 0) // фиктивная команда, её пары пропускаем
	}
	size := len(ids)
	rounds := size - 1
	half := size / 2

	matches := make([]*Match, 0, n*(n-1)/2)
	for round := 1; round <= rounds; round++ {
		pos := 1
		for i := 0; i < half; i++ {
			t1, t2 := ids[i], ids[size-1-i]
			if t1 == 0 || t2 == 0 {
				continue
			}
			id1, id2 := t1, t2
			matches = append(matches, &Match{
				Round:    round,
				Position: pos,
				Team1ID:  &id1,
				Team2ID:  &id2,
				Status:   models.MatchStatusPending,
			})
			pos++
		}
		// вращение: ids[0] на месте, остальные по кругу
		last := ids[size-1]
		copy(ids[2:], ids[1:size-1])
		ids[1] = last
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Round != matches[j].Round {
			return matches[i].Round < matches[j].Round
		}
		return matches[i].Position < matches[j].Position
	})

	return matches, nil
}
