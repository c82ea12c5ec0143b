package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Dosada05/matchplay/brackets"
	"github.com/Dosada05/matchplay/metrics"
	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/realtime"
	"github.com/Dosada05/matchplay/repositories"
	"github.com/Dosada05/matchplay/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// TournamentWinnerPayload рассылается в комнату турнира по завершении финала.
type TournamentWinnerPayload struct {
	TournamentID int    `json:"tournament_id"`
	WinnerTeamID int    `json:"winner_team_id"`
	Message      string `json:"message"`
}

type TournamentService interface {
	// GenerateBracket закрывает регистрацию и строит сетку турнира.
	GenerateBracket(ctx context.Context, tournamentID int) (*models.Tournament, error)

	// RecordMatchResult записывает счёт матча сетки и продвигает
	// победителя в следующий раунд.
	RecordMatchResult(ctx context.Context, matchID int, outcome models.MatchOutcome) (*models.Match, error)

	// GetBracket возвращает турнир с командами и матчами.
	GetBracket(ctx context.Context, tournamentID int) (*models.Tournament, error)

	// RoundLabels возвращает подписи раундов сетки ("Final", "Semifinals", ...).
	RoundLabels(ctx context.Context, tournamentID int) (map[int]string, error)

	// AutoGenerateDueBrackets строит сетки турниров с истёкшим дедлайном
	// регистрации. Вызывается планировщиком.
	AutoGenerateDueBrackets(ctx context.Context) error
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	hub            *realtime.Hub
	snapshots      storage.SnapshotStore // nil = выгрузка отключена
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	hub *realtime.Hub,
	snapshots storage.SnapshotStore,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		hub:            hub,
		snapshots:      snapshots,
	}
}

func (s *tournamentService) GenerateBracket(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	switch tournament.Status {
	case models.StatusRegistration:
		// ok
	case models.StatusActive:
		return nil, ErrBracketAlreadyGenerated
	default:
		return nil, ErrRegistrationNotOpen
	}

	teams, err := s.tournamentRepo.ListTeams(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	seeds := make([]brackets.TeamSeed, 0, len(teams))
	for _, t := range teams {
		seeds = append(seeds, brackets.TeamSeed{TeamID: t.ID, Seed: t.Seed})
	}

	var generator brackets.Generator
	switch tournament.Format {
	case models.FormatSingleElimination:
		generator = brackets.NewSingleEliminationGenerator()
	case models.FormatRoundRobin:
		generator = brackets.NewRoundRobinGenerator()
	default:
		return nil, ErrUnsupportedBracketFormat
	}

	generated, err := generator.Generate(seeds)
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughTeams) {
			return nil, ErrNotEnoughTeams
		}
		return nil, fmt.Errorf("failed to generate bracket for tournament %d: %w", tournamentID, err)
	}

	log.Printf("Generated %s bracket for tournament %d: %d teams, %d matches",
		generator.Name(), tournamentID, len(teams), len(generated))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Rollback failed after bracket generation error: %v (original: %v)", rbErr, txErr)
			}
		}
	}()

	for _, bm := range generated {
		match := &models.Match{
			TournamentID: tournamentID,
			Round:        bm.Round,
			Position:     bm.Position,
			Team1ID:      bm.Team1ID,
			Team2ID:      bm.Team2ID,
			Score:        bm.Score,
			Status:       bm.Status,
			WinnerTeamID: bm.WinnerTeamID,
			NextRound:    bm.NextRound,
			NextPosition: bm.NextPosition,
		}
		if txErr = s.matchRepo.Create(ctx, tx, match); txErr != nil {
			return nil, txErr
		}
	}

	if txErr = s.tournamentRepo.UpdateStatus(ctx, tx, tournamentID, models.StatusActive); txErr != nil {
		return nil, txErr
	}

	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("failed to commit bracket for tournament %d: %w", tournamentID, txErr)
	}

	metrics.BracketsGenerated.Inc()

	full, err := s.GetBracket(ctx, tournamentID)
	if err != nil {
		log.Printf("Bracket saved for tournament %d, but failed to fetch full data: %v", tournamentID, err)
		return tournament, nil
	}

	s.hub.BroadcastToRoom(tournamentRoom(tournamentID), realtime.MessageBracketUpdated, full)
	s.uploadSnapshot(ctx, full)

	return full, nil
}

func (s *tournamentService) RecordMatchResult(ctx context.Context, matchID int, outcome models.MatchOutcome) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	switch match.Status {
	case models.MatchStatusBye:
		return nil, ErrMatchIsBye
	case models.MatchStatusCompleted:
		return nil, ErrMatchAlreadyCompleted
	}
	if match.Team1ID == nil || match.Team2ID == nil {
		return nil, ErrMatchTeamsNotSet
	}

	if err := validateOutcome(outcome); err != nil {
		return nil, err
	}

	tournament, err := s.loadTournament(ctx, match.TournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}

	winnerTeamID := *match.Team1ID
	if outcome.WinnerTeam == 2 {
		winnerTeamID = *match.Team2ID
	}
	score := formatScore(outcome.Sets)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Rollback failed after match result error: %v (original: %v)", rbErr, txErr)
			}
		}
	}()

	if txErr = s.matchRepo.UpdateScoreStatusWinner(ctx, tx, matchID, &score, models.MatchStatusCompleted, &winnerTeamID); txErr != nil {
		return nil, txErr
	}

	isFinal := match.NextRound == nil && tournament.Format == models.FormatSingleElimination
	if match.NextRound != nil {
		// Победитель занимает свой слот в следующем раунде: нечётная
		// позиция идёт в первый слот, чётная во второй.
		next, err := s.matchRepo.GetByRoundPosition(ctx, tx, match.TournamentID, *match.NextRound, *match.NextPosition)
		if err != nil {
			txErr = err
			return nil, err
		}
		slot := 2
		if match.Position%2 == 1 {
			slot = 1
		}
		if txErr = s.matchRepo.UpdateTeamSlot(ctx, tx, next.ID, slot, winnerTeamID); txErr != nil {
			return nil, txErr
		}
	} else if isFinal {
		if txErr = s.tournamentRepo.SetWinner(ctx, tx, match.TournamentID, winnerTeamID); txErr != nil {
			return nil, txErr
		}
		if txErr = s.tournamentRepo.UpdateStatus(ctx, tx, match.TournamentID, models.StatusCompleted); txErr != nil {
			return nil, txErr
		}
	}

	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("failed to commit result of match %d: %w", matchID, txErr)
	}

	updated, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		updated = match
	}

	room := tournamentRoom(match.TournamentID)
	s.hub.BroadcastToRoom(room, realtime.MessageMatchCompleted, updated)
	if isFinal {
		s.hub.BroadcastToRoom(room, realtime.MessageTournamentCompleted, TournamentWinnerPayload{
			TournamentID: match.TournamentID,
			WinnerTeamID: winnerTeamID,
			Message:      "Tournament completed",
		})
	}

	if full, err := s.GetBracket(ctx, match.TournamentID); err == nil {
		s.uploadSnapshot(ctx, full)
	}

	return updated, nil
}

func (s *tournamentService) GetBracket(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		teams, err := s.tournamentRepo.ListTeams(gCtx, tournamentID)
		if err != nil {
			return err
		}
		tournament.Teams = teams
		return nil
	})

	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gCtx, tournamentID, nil, nil)
		if err != nil {
			return err
		}
		tournament.Matches = make([]models.Match, len(matches))
		for i, m := range matches {
			tournament.Matches[i] = *m
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load bracket data for tournament %d: %w", tournamentID, err)
	}
	return tournament, nil
}

func (s *tournamentService) RoundLabels(ctx context.Context, tournamentID int) (map[int]string, error) {
	tournament, err := s.GetBracket(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	totalRounds := 0
	for _, m := range tournament.Matches {
		if m.Round > totalRounds {
			totalRounds = m.Round
		}
	}

	labels := make(map[int]string, totalRounds)
	for round := 1; round <= totalRounds; round++ {
		if tournament.Format == models.FormatSingleElimination {
			labels[round] = brackets.RoundLabel(round, totalRounds)
		} else {
			labels[round] = fmt.Sprintf("Round %d", round)
		}
	}
	return labels, nil
}

func (s *tournamentService) AutoGenerateDueBrackets(ctx context.Context) error {
	due, err := s.tournamentRepo.ListRegistrationDue(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, t := range due {
		if _, err := s.GenerateBracket(ctx, t.ID); err != nil {
			// Недобор команд не повод останавливать остальные турниры.
			log.Printf("Scheduler: bracket generation for tournament %d failed: %v", t.ID, err)
		}
	}
	return nil
}

func (s *tournamentService) loadTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

// uploadSnapshot выгружает JSON-снапшот сетки в объектное хранилище.
// Ошибка не фатальна: снапшот лишь производная, сетка уже в БД.
func (s *tournamentService) uploadSnapshot(ctx context.Context, tournament *models.Tournament) {
	if s.snapshots == nil {
		return
	}

	data, err := json.Marshal(tournament)
	if err != nil {
		log.Printf("Failed to marshal bracket snapshot for tournament %d: %v", tournament.ID, err)
		return
	}

	key := fmt.Sprintf("brackets/tournament_%d/%s.json", tournament.ID, uuid.NewString())
	if _, err := s.snapshots.Upload(ctx, key, "application/json", bytes.NewReader(data)); err != nil {
		log.Printf("Failed to upload bracket snapshot for tournament %d: %v", tournament.ID, err)
		return
	}
	log.Printf("Bracket snapshot uploaded for tournament %d: %s", tournament.ID, key)
}

func validateOutcome(outcome models.MatchOutcome) error {
	if len(outcome.Sets) == 0 {
		return ErrOutcomeNoSets
	}
	if outcome.WinnerTeam != 1 && outcome.WinnerTeam != 2 {
		return ErrOutcomeInvalidWinner
	}
	for _, set := range outcome.Sets {
		if set.Team1 < 0 || set.Team2 < 0 {
			return ErrOutcomeNegativeGames
		}
	}
	return nil
}

func formatScore(sets []models.SetScore) string {
	parts := make([]string, 0, len(sets))
	for _, set := range sets {
		parts = append(parts, fmt.Sprintf("%d-%d", set.Team1, set.Team2))
	}
	return strings.Join(parts, ",")
}
