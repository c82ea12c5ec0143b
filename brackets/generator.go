package brackets

import "github.com/Dosada05/matchplay/models"

// TeamSeed: команда на входе генератора. Seed: 1 = сильнейший,
// nil = без посева.
type TeamSeed struct {
	TeamID int
	Seed   *int
}

// Match: слот сетки. Позиция задаётся арифметически (раунд + номер в
// раунде, оба 1-based), а не ссылками между узлами: победитель матча
// (r, p) проходит в (r+1, ceil(p/2)).
type Match struct {
	Round        int
	Position     int
	Team1ID      *int
	Team2ID      *int
	Score        *string
	WinnerTeamID *int
	Status       models.MatchStatus
	NextRound    *int // nil для финала
	NextPosition *int
}

// Generator строит сетку турнира из списка зарегистрированных команд.
type Generator interface {
	Generate(teams []TeamSeed) ([]*Match, error)

	Name() string
}
