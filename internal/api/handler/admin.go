package handler

import (
	"net/http"

	"github.com/quizlive/quizlive/internal/api/apierr"
	"github.com/quizlive/quizlive/internal/api/response"
	"github.com/quizlive/quizlive/internal/dependencies/clock"
	"github.com/quizlive/quizlive/internal/services/registry"
	"github.com/quizlive/quizlive/internal/services/stats"
)

// AdminHandler handles the cleanup and health endpoints
type AdminHandler struct {
	registry *registry.Controller
	stats    *stats.Service
	clock    clock.Clock
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(registry *registry.Controller, stats *stats.Service, clock clock.Clock) *AdminHandler {
	return &AdminHandler{
		registry: registry,
		stats:    stats,
		clock:    clock,
	}
}

// Cleanup handles GET/POST /cleanup
func (h *AdminHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	timestamp, err := h.registry.Cleanup(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CleanupResponse{
		Message:            "All game data has been cleared successfully",
		ActivePlayersCount: 0,
		CleanupTimestamp:   timestamp,
	})
}

// Health handles GET /health
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	activePlayers, questionsWithBonus, err := h.stats.Health(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status:             "healthy",
		ActivePlayers:      activePlayers,
		QuestionsWithBonus: questionsWithBonus,
		ServerTime:         h.clock.Now(),
	})
}
