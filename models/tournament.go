package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

// BracketFormat: тип сетки турнира.
type BracketFormat string

const (
	FormatSingleElimination BracketFormat = "single_elimination"
	FormatRoundRobin        BracketFormat = "round_robin"
)

// Tournament представляет турнир.
type Tournament struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Format      BracketFormat    `json:"format"`
	Status      TournamentStatus `json:"status"`
	RegDeadline time.Time        `json:"reg_deadline"`
	StartDate   time.Time        `json:"start_date"`
	MaxTeams    int              `json:"max_teams"`
	WinnerID    *int             `json:"winner_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Teams   []Team  `json:"teams,omitempty"`
	Matches []Match `json:"matches,omitempty"`
}

// Team: зарегистрированная на турнир команда (пара игроков).
type Team struct {
	ID           int    `json:"id"`
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
	Seed         *int   `json:"seed,omitempty"` // 1 = сильнейший, nil = без посева
	Player1ID    int    `json:"player1_id"`
	Player2ID    *int   `json:"player2_id,omitempty"`
}
