package brackets

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/matchplay/models"
)

var ErrNotEnoughTeams = errors.New("not enough teams to generate a single elimination bracket (minimum 2)")

type SingleEliminationGenerator struct {
}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// SlotCount возвращает размер сетки: ближайшая степень двойки >= teamCount.
func SlotCount(teamCount int) int {
	size := 1
	for size < teamCount {
		size <<= 1
	}
	return size
}

// TotalRounds возвращает число раундов для сетки из slotCount слотов.
func TotalRounds(slotCount int) int {
	rounds := 0
	for size := 1; size < slotCount; size <<= 1 {
		rounds++
	}
	return rounds
}

// AdvanceWinner возвращает раунд и позицию, куда проходит победитель
// матча (round, position). ok=false, если матч финальный.
func AdvanceWinner(round, position, totalRounds int) (nextRound, nextPosition int, ok bool) {
	if round >= totalRounds {
		return 0, 0, false
	}
	return round + 1, (position + 1) / 2, true
}

// RoundLabel возвращает название раунда: последний называется "Final", дальше
// "Semifinals", "Quarterfinals", "Round of 16", ранние просто "Round N".
func RoundLabel(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return "Final"
	case 1:
		return "Semifinals"
	case 2:
		return "Quarterfinals"
	case 3:
		return "Round of 16"
	default:
		return fmt.Sprintf("Round %d", round)
	}
}

// Generate строит полную сетку на вылет. Посев стандартный "змейкой":
// номера 1 и 2 попадают в противоположные половины, и вообще посев k не
// может встретить посев k-1 раньше последнего возможного раунда. Слоты
// сверх числа команд становятся bye: команда в таком матче сразу записывается в
// соответствующий слот следующего раунда.
func (g *SingleEliminationGenerator) Generate(teams []TeamSeed) ([]*Match, error) {
	n := len(teams)
	if n < 2 {
		return nil, ErrNotEnoughTeams
	}

	slotCount := SlotCount(n)
	totalRounds := TotalRounds(slotCount)

	// Команды в порядке силы: сначала посеянные по возрастанию номера,
	// затем непосеянные в исходном (стабильном) порядке.
	ranked := rankTeams(teams)

	// order[i] хранит, какой номер силы (1-based) занимает слот i. Номера
	// больше n остаются пустыми и превращаются в bye.
	order := seedingOrder(slotCount)

	byRoundPos := make(map[[2]int]*Match, slotCount-1)
	all := make([]*Match, 0, slotCount-1)

	for round := 1; round <= totalRounds; round++ {
		matchesInRound := slotCount >> uint(round)
		for pos := 1; pos <= matchesInRound; pos++ {
			m := &Match{
				Round:    round,
				Position: pos,
				Status:   models.MatchStatusPending,
			}
			if round < totalRounds {
				nr, np, _ := AdvanceWinner(round, pos, totalRounds)
				m.NextRound = &nr
				m.NextPosition = &np
			}
			byRoundPos[[2]int{round, pos}] = m
			all = append(all, m)
		}
	}

	// Рассадка первого раунда по посеву.
	for pos := 1; pos <= slotCount/2; pos++ {
		m := byRoundPos[[2]int{1, pos}]
		m.Team1ID = teamAtRank(ranked, order[2*pos-2])
		m.Team2ID = teamAtRank(ranked, order[2*pos-1])

		switch {
		case m.Team1ID != nil && m.Team2ID != nil:
			// обычный матч, остаётся pending
		case m.Team1ID == nil && m.Team2ID == nil:
			// невозможно при slotCount = ближайшей степени двойки
			return nil, fmt.Errorf("bracket slot (1, %d) has no teams for %d registered", pos, n)
		default:
			team := m.Team1ID
			if team == nil {
				team = m.Team2ID
				m.Team1ID = team
				m.Team2ID = nil
			}
			m.Status = models.MatchStatusBye
			m.WinnerTeamID = team
			// Bye разрешается на этапе генерации: команда сразу
			// занимает свой слот в следующем раунде.
			if m.NextRound != nil {
				placeTeam(byRoundPos[[2]int{*m.NextRound, *m.NextPosition}], pos, *team)
			}
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Round != all[j].Round {
			return all[i].Round < all[j].Round
		}
		return all[i].Position < all[j].Position
	})

	return all, nil
}

// PlaceWinner записывает команду в слот матча следующего раунда.
// Победитель матча с нечётной позицией занимает первый слот, с чётной
// позицией второй.
func PlaceWinner(next *Match, sourcePosition, teamID int) {
	placeTeam(next, sourcePosition, teamID)
}

func placeTeam(next *Match, sourcePosition, teamID int) {
	if next == nil {
		return
	}
	id := teamID
	if sourcePosition%2 == 1 {
		next.Team1ID = &id
	} else {
		next.Team2ID = &id
	}
}

// rankTeams возвращает команды в порядке силы: посеянные по номеру посева,
// затем непосеянные в порядке регистрации.
func rankTeams(teams []TeamSeed) []TeamSeed {
	ranked := make([]TeamSeed, len(teams))
	copy(ranked, teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := ranked[i].Seed, ranked[j].Seed
		switch {
		case si != nil && sj != nil:
			return *si < *sj
		case si != nil:
			return true
		default:
			return false
		}
	})
	return ranked
}

func teamAtRank(ranked []TeamSeed, rank int) *int {
	if rank > len(ranked) {
		return nil
	}
	id := ranked[rank-1].TeamID
	return &id
}

// seedingOrder строит порядок рассадки для сетки из slotCount слотов.
// Начиная с [1], на каждом удвоении рядом с номером s встаёт его
// зеркальный номер 2*len+1-s: для 8 слотов получается
// [1 8 4 5 2 7 3 6], то есть пары (1,8), (4,5), (2,7), (3,6).
func seedingOrder(slotCount int) []int {
	order := []int{1}
	for len(order) < slotCount {
		mirror := len(order)*2 + 1
		next := make([]int, 0, len(order)*2)
		for _, s := range order {
			next = append(next, s, mirror-s)
		}
		order = next
	}
	return order
}
