package storage

import (
	"context"
	"time"

	"github.com/quizlive/quizlive/internal/model"
)

// Storage defines the interface for the live game state stores.
//
// Implementations must make ClaimQuestionBonus a single atomic
// insert-if-absent decision, and EvictPlayer / Clear atomic with respect
// to concurrent readers: a player is never visible in one store and
// absent from another.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Activity operations
	TouchActivity(ctx context.Context, id model.PlayerID, at time.Time) error
	// GetActivity returns ErrPlayerNotFound when the player has no
	// activity record (e.g. it was already evicted).
	GetActivity(ctx context.Context, id model.PlayerID) (*model.ActivityRecord, error)
	ListActivities(ctx context.Context) ([]*model.ActivityRecord, error)

	// Answer ledger operations
	SaveAnswer(ctx context.Context, answer *model.AnswerRecord) error
	GetAnswersForPlayer(ctx context.Context, id model.PlayerID) (map[model.QuestionID]*model.AnswerRecord, error)
	GetAnswersForQuestion(ctx context.Context, questionID model.QuestionID) ([]*model.AnswerRecord, error)

	// Question bonus operations
	// ClaimQuestionBonus atomically records playerID as the first-correct
	// winner for the question if no winner exists yet. It returns the
	// recorded bonus state and whether this call created it.
	ClaimQuestionBonus(ctx context.Context, questionID model.QuestionID, playerID model.PlayerID, at time.Time) (*model.QuestionBonus, bool, error)
	// GetQuestionBonus returns nil when no winner has been recorded.
	GetQuestionBonus(ctx context.Context, questionID model.QuestionID) (*model.QuestionBonus, error)
	ListQuestionBonuses(ctx context.Context) ([]*model.QuestionBonus, error)
	CountQuestionBonuses(ctx context.Context) (int, error)

	// EvictPlayer removes the player, its activity record and its answer
	// collection as one unit.
	EvictPlayer(ctx context.Context, id model.PlayerID) error

	// Clear wipes all stores.
	Clear(ctx context.Context) error
}
