package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quizlive/quizlive/internal/api/apierr"
	"github.com/quizlive/quizlive/internal/api/response"
	"github.com/quizlive/quizlive/internal/model"
	"github.com/quizlive/quizlive/internal/services/stats"
)

// StatsHandler handles the aggregated read-only views
type StatsHandler struct {
	stats *stats.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats *stats.Service) *StatsHandler {
	return &StatsHandler{
		stats: stats,
	}
}

// Dashboard handles GET /dashboard
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.stats.Dashboard(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result := make([]response.DashboardEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, response.DashboardEntryFromModel(entry))
	}
	response.JSON(w, http.StatusOK, result)
}

// PlayerQuestions handles GET /players/{player_id}/questions
func (h *StatsHandler) PlayerQuestions(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	status, err := h.stats.PlayerQuestionStatus(r.Context(), playerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerQuestionStatusFromModel(status))
}

// PlayerTimes handles GET /players/{player_id}/times
func (h *StatsHandler) PlayerTimes(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	times, err := h.stats.PlayerTimes(r.Context(), playerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerTimesFromModel(times))
}

// QuestionStats handles GET /questions/{question_id}/stats
func (h *StatsHandler) QuestionStats(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(mux.Vars(r)["question_id"])
	if err != nil {
		apierr.WriteError(w, apierr.NewValidationError("Question ID must be an integer"))
		return
	}

	result, err := h.stats.QuestionStats(r.Context(), model.QuestionID(questionID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.QuestionStatsFromModel(result))
}

// GlobalStats handles GET /stats
func (h *StatsHandler) GlobalStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.stats.GlobalStats(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GlobalStatsFromModel(result))
}
