package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quizlive/quizlive/internal/api/handler"
	apimiddleware "github.com/quizlive/quizlive/internal/api/middleware"
	"github.com/quizlive/quizlive/internal/dependencies/clock"
	"github.com/quizlive/quizlive/internal/middleware"
	"github.com/quizlive/quizlive/internal/services/registry"
	"github.com/quizlive/quizlive/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	RegistryController *registry.Controller
	StatsService       *stats.Service
	Clock              clock.Clock
}

// NewRouter creates a new API router with all routes configured.
// Routes are mounted at the root to stay wire-compatible with existing
// game clients.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.RegistryController)
	statsHandler := handler.NewStatsHandler(cfg.StatsService)
	adminHandler := handler.NewAdminHandler(cfg.RegistryController, cfg.StatsService, cfg.Clock)

	// Common middleware
	r.Use(apimiddleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Player routes
	r.HandleFunc("/register", playerHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/update_status", playerHandler.UpdateStatus).Methods(http.MethodPost)

	// Aggregated views
	r.HandleFunc("/dashboard", statsHandler.Dashboard).Methods(http.MethodGet)
	r.HandleFunc("/players/{player_id}/questions", statsHandler.PlayerQuestions).Methods(http.MethodGet)
	r.HandleFunc("/players/{player_id}/times", statsHandler.PlayerTimes).Methods(http.MethodGet)
	r.HandleFunc("/questions/{question_id}/stats", statsHandler.QuestionStats).Methods(http.MethodGet)
	r.HandleFunc("/stats", statsHandler.GlobalStats).Methods(http.MethodGet)

	// Admin routes; cleanup supports GET for ease of triggering between rounds
	r.HandleFunc("/cleanup", adminHandler.Cleanup).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/health", adminHandler.Health).Methods(http.MethodGet)

	return r
}
