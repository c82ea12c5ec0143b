package models

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusBye       MatchStatus = "bye"
	MatchStatusCompleted MatchStatus = "completed"
)

// SetScore: результат одного сета, геймы первой и второй команды.
type SetScore struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// MatchOutcome: итог завершённого матча. Команды всегда помечены 1 и 2.
// Инвариант: минимум один сет, счёт каждого сета неотрицателен.
type MatchOutcome struct {
	WinnerTeam int        `json:"winner_team"` // 1 или 2
	Sets       []SetScore `json:"sets"`
}

// Match: матч турнирной сетки, как он хранится в БД.
// Round/Position задают позицию в сетке (1-based), NextRound/NextPosition задают,
// куда проходит победитель; nil для финала.
type Match struct {
	ID           int         `json:"id"`
	TournamentID int         `json:"tournament_id"`
	Round        int         `json:"round"`
	Position     int         `json:"position"`
	Team1ID      *int        `json:"team1_id,omitempty"`
	Team2ID      *int        `json:"team2_id,omitempty"`
	Score        *string     `json:"score,omitempty"`
	Status       MatchStatus `json:"status"`
	WinnerTeamID *int        `json:"winner_team_id,omitempty"`
	NextRound    *int        `json:"next_round,omitempty"`
	NextPosition *int        `json:"next_position,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
