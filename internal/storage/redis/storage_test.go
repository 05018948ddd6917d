package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/quizlive/quizlive/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:           "player-1",
		Name:         "Alice",
		Score:        20,
		Status:       model.StatusPlaying,
		RegisteredAt: time.Now().UTC(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.Name, retrieved.Name)
	s.Equal(player.Score, retrieved.Score)
	s.Equal(model.StatusPlaying, retrieved.Status)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayers() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob"})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestListPlayersSkipsExpiredRecords() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob"})

	// Expire the record but leave the index member behind
	s.mini.Del(playerKey("player-2"))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(model.PlayerID("player-1"), players[0].ID)
}

// Activity tests

func (s *StorageSuite) TestTouchAndGetActivity() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})

	at := time.Date(2024, 1, 1, 12, 0, 0, 123456789, time.UTC)
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

func (s *StorageSuite) TestListActivities() {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob"})
	_ = s.storage.TouchActivity(s.ctx, "player-1", at)
	_ = s.storage.TouchActivity(s.ctx, "player-2", at.Add(time.Minute))

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
		AnsweredAt:  time.Now().UTC(),
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
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob"})
	_ = s.storage.SaveAnswer(s.ctx, &model.AnswerRecord{PlayerID: "player-1", QuestionID: 1, TimeSpentMS: 300})
	_ = s.storage.SaveAnswer(s.ctx, &model.AnswerRecord{PlayerID: "player-2", QuestionID: 1, TimeSpentMS: 500})
	_ = s.storage.SaveAnswer(s.ctx, &model.AnswerRecord{PlayerID: "player-1", QuestionID: 2, TimeSpentMS: 100})

	answers, err := s.storage.GetAnswersForQuestion(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(answers, 2)
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

func (s *StorageSuite) TestGetQuestionBonusAbsent() {
	bonus, err := s.storage.GetQuestionBonus(s.ctx, 42)
	s.Require().NoError(err)
	s.Nil(bonus)
}

func (s *StorageSuite) TestListAndCountQuestionBonuses() {
	_, _, _ = s.storage.ClaimQuestionBonus(s.ctx, 1, "player-1", time.Now().UTC())
	_, _, _ = s.storage.ClaimQuestionBonus(s.ctx, 2, "player-2", time.Now().UTC())

	bonuses, err := s.storage.ListQuestionBonuses(s.ctx)
	s.Require().NoError(err)
	s.Len(bonuses, 2)

	count, err := s.storage.CountQuestionBonuses(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

// Eviction and cleanup tests

func (s *StorageSuite) TestEvictPlayerRemovesAllKeys() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_ = s.storage.TouchActivity(s.ctx, "player-1", time.Now().UTC())
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

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestClear() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_ = s.storage.TouchActivity(s.ctx, "player-1", time.Now().UTC())
	_ = s.storage.SaveAnswer(s.ctx, &model.AnswerRecord{PlayerID: "player-1", QuestionID: 1})
	_, _, _ = s.storage.ClaimQuestionBonus(s.ctx, 1, "player-1", time.Now().UTC())

	err := s.storage.Clear(s.ctx)
	s.Require().NoError(err)

	players, _ := s.storage.ListPlayers(s.ctx)
	s.Empty(players)

	count, _ := s.storage.CountQuestionBonuses(s.ctx)
	s.Zero(count)

	bonus, err := s.storage.GetQuestionBonus(s.ctx, 1)
	s.Require().NoError(err)
	s.Nil(bonus)
}
