package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dosada05/matchplay/reliability"
	"github.com/Dosada05/matchplay/services"
	"github.com/go-chi/chi/v5"
)

const defaultSuggestionLimit = 10

type PlayerHandler struct {
	suggestionService services.SuggestionService
	attendanceService services.AttendanceService
}

func NewPlayerHandler(suggestionService services.SuggestionService, attendanceService services.AttendanceService) *PlayerHandler {
	return &PlayerHandler{
		suggestionService: suggestionService,
		attendanceService: attendanceService,
	}
}

// GetSuggestions отдаёт список кандидатов в напарники.
// GET /players/{playerID}/suggestions?limit=10
func (h *PlayerHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	limit := defaultSuggestionLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	suggestions, err := h.suggestionService.SuggestPartners(r.Context(), playerID, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"suggestions": suggestions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type attendanceRequest struct {
	Kind string `json:"kind"` // no_show | cancelled_late | confirmed
}

// RecordAttendance применяет событие посещаемости к показателю надёжности.
// POST /players/{playerID}/attendance
func (h *PlayerHandler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input attendanceRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.attendanceService.RecordAttendance(r.Context(), playerID, reliability.EventKind(input.Kind))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
