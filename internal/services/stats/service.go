package stats

import (
	"context"
	"log/slog"
	"sort"

	"github.com/quizlive/quizlive/internal/dependencies/clock"
	"github.com/quizlive/quizlive/internal/model"
	"github.com/quizlive/quizlive/internal/services/sweep"
	"github.com/quizlive/quizlive/internal/storage"
)

// DefaultQuestionCount is the size of the question range enumerated by
// the per-question views when not configured.
const DefaultQuestionCount = 10

// Service composes read-only views over the registry, the answer ledger
// and the recorded question bonuses. It owns no state of its own.
type Service struct {
	storage       storage.Storage
	sweeper       *sweep.Service
	clock         clock.Clock
	questionCount int
	bonusPoints   int
	logger        *slog.Logger
}

// New creates a new stats service
func New(storage storage.Storage, sweeper *sweep.Service, clock clock.Clock, questionCount, bonusPoints int, logger *slog.Logger) *Service {
	if questionCount <= 0 {
		questionCount = DefaultQuestionCount
	}
	return &Service{
		storage:       storage,
		sweeper:       sweeper,
		clock:         clock,
		questionCount: questionCount,
		bonusPoints:   bonusPoints,
		logger:        logger,
	}
}

// Dashboard returns all current players sorted by score descending with
// names ascending as tie-break, each enriched with per-question detail
// over the configured question range.
func (s *Service) Dashboard(ctx context.Context) ([]*model.DashboardEntry, error) {
	s.sweepEntry(ctx)

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	winners, err := s.bonusWinners(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		if players[i].Name != players[j].Name {
			return players[i].Name < players[j].Name
		}
		return players[i].ID < players[j].ID
	})

	entries := make([]*model.DashboardEntry, 0, len(players))
	for _, player := range players {
		answers, err := s.storage.GetAnswersForPlayer(ctx, player.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &model.DashboardEntry{
			Player:    *player,
			Questions: s.questionDetails(player.ID, answers, winners),
		})
	}
	return entries, nil
}

// PlayerQuestionStatus returns the per-question join for a single player
func (s *Service) PlayerQuestionStatus(ctx context.Context, id model.PlayerID) (*model.PlayerQuestionStatus, error) {
	s.sweepEntry(ctx)

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	answers, err := s.storage.GetAnswersForPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	winners, err := s.bonusWinners(ctx)
	if err != nil {
		return nil, err
	}

	return &model.PlayerQuestionStatus{
		PlayerID:  player.ID,
		Name:      player.Name,
		Questions: s.questionDetails(player.ID, answers, winners),
	}, nil
}

// PlayerTimes returns the per-question timing view for a single player
func (s *Service) PlayerTimes(ctx context.Context, id model.PlayerID) (*model.PlayerTimes, error) {
	s.sweepEntry(ctx)

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	answers, err := s.storage.GetAnswersForPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	winners, err := s.bonusWinners(ctx)
	if err != nil {
		return nil, err
	}

	times := make(map[model.QuestionID]model.AnswerTime, len(answers))
	var total int64
	for questionID, answer := range answers {
		times[questionID] = model.AnswerTime{
			TimeSpentMS: answer.TimeSpentMS,
			AnsweredAt:  answer.AnsweredAt,
			Correct:     answer.Correct,
			Fastest:     winners[questionID] == id,
		}
		total += answer.TimeSpentMS
	}

	return &model.PlayerTimes{
		PlayerID:      player.ID,
		Name:          player.Name,
		Times:         times,
		AnsweredCount: len(times),
		TotalTimeMS:   total,
	}, nil
}

// QuestionStats aggregates all players' answers for one question.
// An unattempted question yields the zero aggregate, never an error.
func (s *Service) QuestionStats(ctx context.Context, questionID model.QuestionID) (*model.QuestionStats, error) {
	s.sweepEntry(ctx)

	answers, err := s.storage.GetAnswersForQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	bonus, err := s.storage.GetQuestionBonus(ctx, questionID)
	if err != nil {
		return nil, err
	}

	result := aggregateQuestion(questionID, answers)
	if bonus != nil {
		result.BonusAwarded = true
		result.BonusWinner = bonus.FirstCorrectPlayer
	}
	return &result, nil
}

// GlobalStats computes the aggregate view over all live players.
// With no players it returns the documented zero state, never an error.
func (s *Service) GlobalStats(ctx context.Context) (*model.GlobalStats, error) {
	s.sweepEntry(ctx)

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	bonuses, err := s.storage.ListQuestionBonuses(ctx)
	if err != nil {
		return nil, err
	}
	winners := make(map[model.QuestionID]model.PlayerID, len(bonuses))
	for _, bonus := range bonuses {
		winners[bonus.QuestionID] = bonus.FirstCorrectPlayer
	}

	result := &model.GlobalStats{
		PlayersByStatus:  make(map[model.PlayerStatus]int),
		Questions:        make(map[model.QuestionID]model.QuestionStats),
		TotalBonusPoints: len(bonuses) * s.bonusPoints,
		LastUpdated:      s.clock.Now(),
	}

	if len(players) == 0 {
		return result, nil
	}

	byQuestion := make(map[model.QuestionID][]*model.AnswerRecord)
	var scoreSum int
	for i, player := range players {
		scoreSum += player.Score
		if i == 0 || player.Score > result.HighestScore {
			result.HighestScore = player.Score
		}
		if i == 0 || player.Score < result.LowestScore {
			result.LowestScore = player.Score
		}
		result.PlayersByStatus[player.Status]++

		answers, err := s.storage.GetAnswersForPlayer(ctx, player.ID)
		if err != nil {
			return nil, err
		}
		for questionID, answer := range answers {
			byQuestion[questionID] = append(byQuestion[questionID], answer)
		}
	}

	result.TotalPlayers = len(players)
	result.AverageScore = float64(scoreSum) / float64(len(players))

	for questionID := model.QuestionID(1); int(questionID) <= s.questionCount; questionID++ {
		aggregate := aggregateQuestion(questionID, byQuestion[questionID])
		if winner, ok := winners[questionID]; ok {
			aggregate.BonusAwarded = true
			aggregate.BonusWinner = winner
		}
		result.Questions[questionID] = aggregate
	}

	return result, nil
}

// Health reports the live player count and the number of questions with
// an awarded bonus, sweeping first so the counts reflect active players.
func (s *Service) Health(ctx context.Context) (activePlayers, questionsWithBonus int, err error) {
	s.sweepEntry(ctx)

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return 0, 0, err
	}

	count, err := s.storage.CountQuestionBonuses(ctx)
	if err != nil {
		return 0, 0, err
	}

	return len(players), count, nil
}

// questionDetails joins a player's answers against the recorded winners
// over the fixed question range.
func (s *Service) questionDetails(id model.PlayerID, answers map[model.QuestionID]*model.AnswerRecord, winners map[model.QuestionID]model.PlayerID) map[model.QuestionID]model.QuestionDetail {
	details := make(map[model.QuestionID]model.QuestionDetail, s.questionCount)
	for questionID := model.QuestionID(1); int(questionID) <= s.questionCount; questionID++ {
		detail := model.QuestionDetail{}
		if answer, ok := answers[questionID]; ok {
			answeredAt := answer.AnsweredAt
			detail = model.QuestionDetail{
				Answered:    true,
				Correct:     answer.Correct,
				Fastest:     winners[questionID] == id,
				TimeSpentMS: answer.TimeSpentMS,
				AnsweredAt:  &answeredAt,
			}
		}
		details[questionID] = detail
	}
	return details
}

func (s *Service) bonusWinners(ctx context.Context) (map[model.QuestionID]model.PlayerID, error) {
	bonuses, err := s.storage.ListQuestionBonuses(ctx)
	if err != nil {
		return nil, err
	}
	winners := make(map[model.QuestionID]model.PlayerID, len(bonuses))
	for _, bonus := range bonuses {
		winners[bonus.QuestionID] = bonus.FirstCorrectPlayer
	}
	return winners, nil
}

func aggregateQuestion(questionID model.QuestionID, answers []*model.AnswerRecord) model.QuestionStats {
	result := model.QuestionStats{QuestionID: questionID}
	if len(answers) == 0 {
		return result
	}

	var timeSum int64
	for i, answer := range answers {
		result.TotalAttempts++
		if answer.Correct {
			result.CorrectAttempts++
		}
		timeSum += answer.TimeSpentMS
		if i == 0 || answer.TimeSpentMS < result.MinTimeMS {
			result.MinTimeMS = answer.TimeSpentMS
		}
		if i == 0 || answer.TimeSpentMS > result.MaxTimeMS {
			result.MaxTimeMS = answer.TimeSpentMS
		}
	}
	result.AccuracyRate = float64(result.CorrectAttempts) / float64(result.TotalAttempts) * 100
	result.AvgTimeMS = float64(timeSum) / float64(result.TotalAttempts)
	return result
}

func (s *Service) sweepEntry(ctx context.Context) {
	if _, err := s.sweeper.Sweep(ctx); err != nil {
		s.logger.Warn("eviction sweep failed", slog.String("error", err.Error()))
	}
}
