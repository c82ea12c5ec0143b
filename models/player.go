package models

import "time"

// PlayerSide представляет предпочитаемую сторону корта, соответствует ENUM в БД.
type PlayerSide string

const (
	SideLeft  PlayerSide = "left"
	SideRight PlayerSide = "right"
	SideBoth  PlayerSide = "both"
)

// Availability хранит слоты доступности игрока по дням недели.
// Ключ: день ("monday".."sunday"), значение: список меток слотов ("18:00-19:30").
// Метки сравниваются только на точное равенство, не парсятся как время.
type Availability map[string][]string

// Player представляет игрока с точки зрения подбора и рейтинга.
type Player struct {
	ID            int          `json:"id"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Nickname      *string      `json:"nickname,omitempty"`
	Level         float64      `json:"level"` // 1.0 - 10.0
	Side          PlayerSide   `json:"side"`
	Latitude      *float64     `json:"latitude,omitempty"` // оба поля либо nil, либо заданы
	Longitude     *float64     `json:"longitude,omitempty"`
	Reliability   float64      `json:"reliability"` // 0 - 100
	MatchesPlayed int          `json:"matches_played"`
	Availability  Availability `json:"availability,omitempty"`
	Version       int          `json:"-"` // для optimistic lock при обновлении рейтинга
	CreatedAt     time.Time    `json:"created_at"`
}

// HasCoordinates сообщает, задана ли геопозиция игрока полностью.
func (p *Player) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}
