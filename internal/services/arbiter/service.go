package arbiter

import (
	"context"
	"log/slog"

	"github.com/quizlive/quizlive/internal/dependencies/clock"
	"github.com/quizlive/quizlive/internal/model"
	"github.com/quizlive/quizlive/internal/storage"
)

// DefaultBonusPoints is the fixed award for the first correct answer to a
// question.
const DefaultBonusPoints = 10

// BonusReason is the reason string attached to awarded bonuses.
const BonusReason = "first_correct_answer"

// Service decides the single first-correct winner per question.
//
// The decision runs through the storage layer's insert-if-absent claim,
// so concurrent correct submissions for the same question observe exactly
// one winner.
type Service struct {
	storage     storage.Storage
	clock       clock.Clock
	bonusPoints int
	logger      *slog.Logger
}

// New creates a new arbiter service
func New(storage storage.Storage, clock clock.Clock, bonusPoints int, logger *slog.Logger) *Service {
	if bonusPoints <= 0 {
		bonusPoints = DefaultBonusPoints
	}
	return &Service{
		storage:     storage,
		clock:       clock,
		bonusPoints: bonusPoints,
		logger:      logger,
	}
}

// BonusPoints returns the configured award amount
func (s *Service) BonusPoints() int {
	return s.bonusPoints
}

// Submit records the player's answer and applies any score change to the
// player record in place. The caller must hold the player's lock and is
// responsible for persisting the mutated player.
//
// baseScore is the client-reported base score, nil when the request did
// not carry one. The returned BonusInfo is non-nil only for the winning
// submission of a question bonus.
func (s *Service) Submit(ctx context.Context, player *model.Player, sub model.AnswerSubmission, baseScore *int) (*model.BonusInfo, error) {
	now := s.clock.Now()

	// The ledger always records the latest submission for the pair,
	// regardless of the bonus outcome.
	answer := &model.AnswerRecord{
		PlayerID:    player.ID,
		QuestionID:  sub.QuestionID,
		TimeSpentMS: sub.TimeSpentMS,
		AnsweredAt:  now,
		Correct:     sub.Correct,
	}
	if err := s.storage.SaveAnswer(ctx, answer); err != nil {
		return nil, err
	}

	if !sub.Correct {
		if baseScore != nil {
			player.Score = *baseScore
		}
		return nil, nil
	}

	bonus, won, err := s.storage.ClaimQuestionBonus(ctx, sub.QuestionID, player.ID, now)
	if err != nil {
		return nil, err
	}

	if !won {
		if baseScore != nil {
			player.Score = *baseScore
		}
		return nil, nil
	}

	base := player.Score
	if baseScore != nil {
		base = *baseScore
	}
	player.Score = base + s.bonusPoints
	player.BonusEarned += s.bonusPoints

	s.logger.Info("question bonus awarded",
		slog.Int("question_id", int(bonus.QuestionID)),
		slog.String("player_id", string(player.ID)),
		slog.Int("bonus_points", s.bonusPoints),
	)

	return &model.BonusInfo{
		BonusPoints: s.bonusPoints,
		QuestionID:  sub.QuestionID,
		Reason:      BonusReason,
	}, nil
}
