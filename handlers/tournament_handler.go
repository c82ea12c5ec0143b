package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/services"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

// GenerateBracket закрывает регистрацию и строит сетку.
// POST /tournaments/{tournamentID}/bracket
func (h *TournamentHandler) GenerateBracket(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GenerateBracket(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, tournament, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBracket отдаёт турнир с командами и матчами.
// GET /tournaments/{tournamentID}/bracket
func (h *TournamentHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetBracket(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, tournament, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetRoundLabels отдаёт подписи раундов сетки.
// GET /tournaments/{tournamentID}/rounds
func (h *TournamentHandler) GetRoundLabels(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	labels, err := h.tournamentService.RoundLabels(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": labels}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordMatchResult записывает счёт матча сетки и продвигает победителя.
// POST /tournaments/matches/{matchID}/result
func (h *TournamentHandler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var outcome models.MatchOutcome
	if err := readJSON(w, r, &outcome); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.tournamentService.RecordMatchResult(r.Context(), matchID, outcome)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
