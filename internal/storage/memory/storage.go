package memory

import (
	"context"
	"sync"
	"time"

	"github.com/quizlive/quizlive/internal/model"
	"github.com/quizlive/quizlive/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
//
// A single RWMutex guards all four stores, which makes eviction and
// global cleanup atomic with respect to concurrent readers. Records are
// stored and returned by value so callers can mutate their copies freely.
type Storage struct {
	mu sync.RWMutex

	players    map[model.PlayerID]model.Player
	activities map[model.PlayerID]time.Time
	answers    map[model.PlayerID]map[model.QuestionID]model.AnswerRecord
	bonuses    map[model.QuestionID]model.QuestionBonus
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:    make(map[model.PlayerID]model.Player),
		activities: make(map[model.PlayerID]time.Time),
		answers:    make(map[model.PlayerID]map[model.QuestionID]model.AnswerRecord),
		bonuses:    make(map[model.QuestionID]model.QuestionBonus),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = *player
	if _, ok := s.answers[player.ID]; !ok {
		s.answers[player.ID] = make(map[model.QuestionID]model.AnswerRecord)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		p := player
		players = append(players, &p)
	}
	return players, nil
}

// Activity operations

func (s *Storage) TouchActivity(ctx context.Context, id model.PlayerID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities[id] = at
	return nil
}

func (s *Storage) GetActivity(ctx context.Context, id model.PlayerID) (*model.ActivityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.activities[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &model.ActivityRecord{PlayerID: id, LastActivity: at}, nil
}

func (s *Storage) ListActivities(ctx context.Context) ([]*model.ActivityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*model.ActivityRecord, 0, len(s.activities))
	for id, at := range s.activities {
		records = append(records, &model.ActivityRecord{PlayerID: id, LastActivity: at})
	}
	return records, nil
}

// Answer ledger operations

func (s *Storage) SaveAnswer(ctx context.Context, answer *model.AnswerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger, ok := s.answers[answer.PlayerID]
	if !ok {
		ledger = make(map[model.QuestionID]model.AnswerRecord)
		s.answers[answer.PlayerID] = ledger
	}
	ledger[answer.QuestionID] = *answer
	return nil
}

func (s *Storage) GetAnswersForPlayer(ctx context.Context, id model.PlayerID) (map[model.QuestionID]*model.AnswerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[model.QuestionID]*model.AnswerRecord, len(s.answers[id]))
	for questionID, answer := range s.answers[id] {
		a := answer
		result[questionID] = &a
	}
	return result, nil
}

func (s *Storage) GetAnswersForQuestion(ctx context.Context, questionID model.QuestionID) ([]*model.AnswerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.AnswerRecord
	for _, ledger := range s.answers {
		if answer, ok := ledger[questionID]; ok {
			a := answer
			result = append(result, &a)
		}
	}
	return result, nil
}

// Question bonus operations

func (s *Storage) ClaimQuestionBonus(ctx context.Context, questionID model.QuestionID, playerID model.PlayerID, at time.Time) (*model.QuestionBonus, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.bonuses[questionID]; ok {
		b := existing
		return &b, false, nil
	}
	bonus := model.QuestionBonus{
		QuestionID:         questionID,
		FirstCorrectPlayer: playerID,
		AwardedAt:          at,
	}
	s.bonuses[questionID] = bonus
	return &bonus, true, nil
}

func (s *Storage) GetQuestionBonus(ctx context.Context, questionID model.QuestionID) (*model.QuestionBonus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bonus, ok := s.bonuses[questionID]
	if !ok {
		return nil, nil
	}
	b := bonus
	return &b, nil
}

func (s *Storage) ListQuestionBonuses(ctx context.Context) ([]*model.QuestionBonus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bonuses := make([]*model.QuestionBonus, 0, len(s.bonuses))
	for _, bonus := range s.bonuses {
		b := bonus
		bonuses = append(bonuses, &b)
	}
	return bonuses, nil
}

func (s *Storage) CountQuestionBonuses(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bonuses), nil
}

// Eviction and cleanup

func (s *Storage) EvictPlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	delete(s.activities, id)
	delete(s.answers, id)
	return nil
}

func (s *Storage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[model.PlayerID]model.Player)
	s.activities = make(map[model.PlayerID]time.Time)
	s.answers = make(map[model.PlayerID]map[model.QuestionID]model.AnswerRecord)
	s.bonuses = make(map[model.QuestionID]model.QuestionBonus)
	return nil
}
