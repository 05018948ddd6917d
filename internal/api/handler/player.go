package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/quizlive/quizlive/internal/api/apierr"
	"github.com/quizlive/quizlive/internal/api/request"
	"github.com/quizlive/quizlive/internal/api/response"
	"github.com/quizlive/quizlive/internal/model"
	"github.com/quizlive/quizlive/internal/services/registry"
)

// PlayerHandler handles player registration and status updates
type PlayerHandler struct {
	registry *registry.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(registry *registry.Controller) *PlayerHandler {
	return &PlayerHandler{
		registry: registry,
	}
}

// Register handles POST /register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("Name is required"))
		return
	}

	if req.Name == "" {
		apierr.WriteError(w, apierr.NewValidationError("Name is required"))
		return
	}

	player, err := h.registry.Register(r.Context(), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RegisterResponse{
		Message:    fmt.Sprintf("Welcome, %s! You have been registered successfully.", player.Name),
		PlayerID:   string(player.ID),
		PlayerData: response.PlayerFromModel(player),
	})
}

// UpdateStatus handles POST /update_status
func (h *PlayerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("Player ID is required"))
		return
	}

	if req.PlayerID == "" {
		apierr.WriteError(w, apierr.NewValidationError("Player ID is required"))
		return
	}

	update := model.PlayerUpdate{
		Name:                  req.Name,
		Score:                 req.Score,
		CurrentQuestionNumber: req.CurrentQuestionNumber,
		TotalQuestionsInGame:  req.TotalQuestionsInGame,
	}
	if req.Status != nil {
		status := model.PlayerStatus(*req.Status)
		update.Status = &status
	}
	if req.QuestionID != nil && req.LastAnswerCorrect != nil {
		submission := &model.AnswerSubmission{
			QuestionID: model.QuestionID(*req.QuestionID),
			Correct:    *req.LastAnswerCorrect,
		}
		if req.TimeSpentMS != nil {
			submission.TimeSpentMS = *req.TimeSpentMS
		}
		update.Answer = submission
	}

	player, bonusInfo, err := h.registry.Update(r.Context(), model.PlayerID(req.PlayerID), update)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UpdateStatusResponse{
		Message:    "Player status updated successfully",
		PlayerData: response.PlayerFromModel(player),
		BonusInfo:  response.BonusInfoFromModel(bonusInfo),
	})
}
