package redis

import (
	"fmt"

	"github.com/quizlive/quizlive/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "quizlive"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// activityKey returns the Redis key for a player's last-activity timestamp
func activityKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:activity:%s", keyPrefix, id)
}

// answersKey returns the Redis key for a player's answer ledger HASH
// (field = question id, value = JSON answer record)
func answersKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:answers:%s", keyPrefix, id)
}

// bonusKey returns the Redis key for a question's bonus state
func bonusKey(questionID model.QuestionID) string {
	return fmt.Sprintf("%s:bonus:%d", keyPrefix, questionID)
}

// playersIndexKey returns the Redis key for the SET of all player ids
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// bonusIndexKey returns the Redis key for the SET of questions with a bonus
func bonusIndexKey() string {
	return fmt.Sprintf("%s:idx:bonus_questions", keyPrefix)
}
