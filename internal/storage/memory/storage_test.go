package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quizlive/quizlive/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:           "player-1",
		Name:         "Alice",
		Status:       model.StatusWaiting,
		RegisteredAt: time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.Name, retrieved.Name)
	s.Equal(model.StatusWaiting, retrieved.Status)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerReturnsCopy() {
	player := &model.Player{ID: "player-1", Name: "Alice", Score: 5}
	_ = s.storage.SavePlayer(s.ctx, player)

	first, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	first.Score = 999

	second, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(5, second.Score)
}

func (s *StorageSuite) TestListPlayers() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob"})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestListPlayersEmpty() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

// Activity tests

func (s *StorageSuite) TestTouchAndGetActivity() {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	err := s.storage.TouchActivity(s.ctx, "player-1", at)
	s.Require().NoError(err)

	record, err := s.storage.GetActivity(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), record.PlayerID)
	s.True(record.LastActivity.Equal(at))
}

func (s *StorageSuite) TestGetActivityNotFound() {
	_, err := s.storage.GetActivity(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestTouchActivityOverwrites() {
	first := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(5 * time.Minute)

	_ = s.storage.TouchActivity(s.ctx, "player-1", first)
	_ = s.storage.TouchActivity(s.ctx, "player-1", second)

	record, err := s.storage.GetActivity(s.ctx, "player-1")
	s.Require().NoError(err)
	s.True(record.LastActivity.Equal(second))
}

func (s *StorageSuite) TestListActivities() {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.TouchActivity(s.ctx, "player-1", at)
	_ = s.storage.TouchActivity(s.ctx, "player-2", at)

	records, err := s.storage.ListActivities(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 2)
}

// Answer ledger tests

func (s *StorageSuite) TestSaveAndGetAnswers() {
	answer := &model.AnswerRecord{
		PlayerID:    "player-1",
		QuestionID:  3,
		TimeSpentMS: 450,
		AnsweredAt:  time.Now(),
		Correct:     true,
	}

	err := s.storage.SaveAnswer(s.ctx, answer)
	s.Require().NoError(err)

	answers, err := s.storage.GetAnswersForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().Contains(answers, model.QuestionID(3))
	s.Equal(int64(450), answers[3].TimeSpentMS)
	s.True(answers[3].Correct)
}

func (s *StorageSuite) TestSaveAnswerOverwritesSamePair() {
	_ = s.storage.SaveAnswer(s.ctx, &model.AnswerRecord{
		PlayerID: "player-1", QuestionID: 1, TimeSpentMS: 500, Correct: false,
	})
	_ = s.storage.SaveAnswer(s.ctx, &model.AnswerRecord{
		PlayerID: "player-1", QuestionID: 1, TimeSpentMS: 300, Correct: true,
	})

	answers, err := s.storage.GetAnswersForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Len(answers, 1)
	s.Equal(int64(300), answers[1].TimeSpentMS)
	s.True(answers[1].Correct)
}

func (s *StorageSuite) TestGetAnswersForQuestion() {
	_ = s.storage.SaveAnswer(s.ctx, &model.AnswerRecord{
		PlayerID: "player-1", QuestionID: 1, TimeSpentMS: 300,
	})
	_ = s.storage.SaveAnswer(s.ctx, &model.AnswerRecord{
		PlayerID: "player-2", QuestionID: 1, TimeSpentMS: 500,
	})
	_ = s.storage.SaveAnswer(s.ctx, &model.AnswerRecord{
		PlayerID: "player-1", QuestionID: 2, TimeSpentMS: 100,
	})

	answers, err := s.storage.GetAnswersForQuestion(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(answers, 2)
}

func (s *StorageSuite) TestGetAnswersForPlayerEmpty() {
	answers, err := s.storage.GetAnswersForPlayer(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.Empty(answers)
}

// Question bonus tests

func (s *StorageSuite) TestClaimQuestionBonusFirstWins() {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	bonus, created, err := s.storage.ClaimQuestionBonus(s.ctx, 1, "player-1", at)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(model.PlayerID("player-1"), bonus.FirstCorrectPlayer)

	bonus, created, err = s.storage.ClaimQuestionBonus(s.ctx, 1, "player-2", at.Add(time.Second))
	s.Require().NoError(err)
	s.False(created)
	s.Equal(model.PlayerID("player-1"), bonus.FirstCorrectPlayer)
	s.True(bonus.AwardedAt.Equal(at))
}

func (s *StorageSuite) TestClaimQuestionBonusConcurrent() {
	const goroutines = 32

	var wg sync.WaitGroup
	wins := make(chan model.PlayerID, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := model.PlayerID("player-" + string(rune('a'+n%26)))
			_, created, err := s.storage.ClaimQuestionBonus(s.ctx, 7, id, time.Now())
			s.NoError(err)
			if created {
				wins <- id
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	s.Len(wins, 1)
}

func (s *StorageSuite) TestGetQuestionBonusAbsent() {
	bonus, err := s.storage.GetQuestionBonus(s.ctx, 42)
	s.Require().NoError(err)
	s.Nil(bonus)
}

func (s *StorageSuite) TestListAndCountQuestionBonuses() {
	_, _, _ = s.storage.ClaimQuestionBonus(s.ctx, 1, "player-1", time.Now())
	_, _, _ = s.storage.ClaimQuestionBonus(s.ctx, 2, "player-2", time.Now())

	bonuses, err := s.storage.ListQuestionBonuses(s.ctx)
	s.Require().NoError(err)
	s.Len(bonuses, 2)

	count, err := s.storage.CountQuestionBonuses(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

// Eviction and cleanup tests

func (s *StorageSuite) TestEvictPlayerRemovesAllStores() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_ = s.storage.TouchActivity(s.ctx, "player-1", time.Now())
	_ = s.storage.SaveAnswer(s.ctx, &model.AnswerRecord{PlayerID: "player-1", QuestionID: 1})

	err := s.storage.EvictPlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, err = s.storage.GetActivity(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	answers, err := s.storage.GetAnswersForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Empty(answers)
}

func (s *StorageSuite) TestEvictPlayerKeepsBonusRecord() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_, _, _ = s.storage.ClaimQuestionBonus(s.ctx, 1, "player-1", time.Now())

	err := s.storage.EvictPlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	bonus, err := s.storage.GetQuestionBonus(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().NotNil(bonus)
	s.Equal(model.PlayerID("player-1"), bonus.FirstCorrectPlayer)
}

func (s *StorageSuite) TestClear() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_ = s.storage.TouchActivity(s.ctx, "player-1", time.Now())
	_ = s.storage.SaveAnswer(s.ctx, &model.AnswerRecord{PlayerID: "player-1", QuestionID: 1})
	_, _, _ = s.storage.ClaimQuestionBonus(s.ctx, 1, "player-1", time.Now())

	err := s.storage.Clear(s.ctx)
	s.Require().NoError(err)

	players, _ := s.storage.ListPlayers(s.ctx)
	s.Empty(players)

	records, _ := s.storage.ListActivities(s.ctx)
	s.Empty(records)

	count, _ := s.storage.CountQuestionBonuses(s.ctx)
	s.Zero(count)
}
