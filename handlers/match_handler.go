package handlers

import (
	"net/http"

	"github.com/Dosada05/matchplay/services"
)

type MatchHandler struct {
	ratingService services.RatingService
}

func NewMatchHandler(ratingService services.RatingService) *MatchHandler {
	return &MatchHandler{ratingService: ratingService}
}

// CompleteMatch принимает результат завершённого матча (товарищеского или
// турнирного) и возвращает изменения рейтингов участников.
// POST /matches/results
func (h *MatchHandler) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	var input services.MatchResultRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	changes, err := h.ratingService.CompleteMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rating_changes": changes}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
