package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed      = errors.New("validation failed")
	ErrOutcomeNoSets         = errors.New("match outcome must contain at least one set")
	ErrOutcomeInvalidWinner  = errors.New("match outcome winner must be team 1 or 2")
	ErrOutcomeNegativeGames  = errors.New("set scores must be non-negative")
	ErrParticipantsRequired  = errors.New("match requires participants on both teams")
	ErrAttendanceInvalidKind = errors.New("unknown attendance event kind")
	ErrSuggestionLimit       = errors.New("suggestion limit must be positive")

	// Ошибки состояний турнира
	ErrRegistrationNotOpen      = errors.New("tournament registration is not open")
	ErrTournamentNotActive      = errors.New("tournament is not active")
	ErrNotEnoughTeams           = errors.New("not enough registered teams (minimum 2)")
	ErrMatchAlreadyCompleted    = errors.New("match is already completed")
	ErrMatchIsBye               = errors.New("bye matches cannot be scored")
	ErrMatchTeamsNotSet         = errors.New("match teams are not determined yet")
	ErrWinnerNotInMatch         = errors.New("winner team is not part of this match")
	ErrBracketAlreadyGenerated  = errors.New("bracket has already been generated for this tournament")
	ErrUnsupportedBracketFormat = errors.New("unsupported bracket format")

	// Конфликт параллельного обновления, запрос стоит повторить
	ErrConcurrentUpdate = errors.New("record was updated concurrently, retry the operation")

	// Ошибки, специфичные для сущностей
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
)
