package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizlive/quizlive/internal/model"
	"github.com/quizlive/quizlive/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(player.ID), data, s.cfg.SessionTTL)
	pipe.SAdd(ctx, playersIndexKey(), string(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Index member whose record expired; skip it
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	return players, nil
}

// Activity operations

func (s *Storage) TouchActivity(ctx context.Context, id model.PlayerID, at time.Time) error {
	return s.client.Set(ctx, activityKey(id), at.Format(time.RFC3339Nano), s.cfg.SessionTTL).Err()
}

func (s *Storage) GetActivity(ctx context.Context, id model.PlayerID) (*model.ActivityRecord, error) {
	raw, err := s.client.Get(ctx, activityKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, err
	}
	return &model.ActivityRecord{PlayerID: id, LastActivity: at}, nil
}

func (s *Storage) ListActivities(ctx context.Context) ([]*model.ActivityRecord, error) {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = activityKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.ActivityRecord, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, &model.ActivityRecord{
			PlayerID:     model.PlayerID(ids[i]),
			LastActivity: at,
		})
	}
	return records, nil
}

// Answer ledger operations

func (s *Storage) SaveAnswer(ctx context.Context, answer *model.AnswerRecord) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return err
	}

	key := answersKey(answer.PlayerID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, strconv.Itoa(int(answer.QuestionID)), data)
	pipe.Expire(ctx, key, s.cfg.SessionTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAnswersForPlayer(ctx context.Context, id model.PlayerID) (map[model.QuestionID]*model.AnswerRecord, error) {
	fields, err := s.client.HGetAll(ctx, answersKey(id)).Result()
	if err != nil {
		return nil, err
	}

	result := make(map[model.QuestionID]*model.AnswerRecord, len(fields))
	for field, raw := range fields {
		questionID, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		var answer model.AnswerRecord
		if err := json.Unmarshal([]byte(raw), &answer); err != nil {
			return nil, err
		}
		result[model.QuestionID(questionID)] = &answer
	}
	return result, nil
}

func (s *Storage) GetAnswersForQuestion(ctx context.Context, questionID model.QuestionID) ([]*model.AnswerRecord, error) {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	field := strconv.Itoa(int(questionID))
	var result []*model.AnswerRecord
	for _, id := range ids {
		raw, err := s.client.HGet(ctx, answersKey(model.PlayerID(id)), field).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var answer model.AnswerRecord
		if err := json.Unmarshal([]byte(raw), &answer); err != nil {
			return nil, err
		}
		result = append(result, &answer)
	}
	return result, nil
}

// Question bonus operations

func (s *Storage) ClaimQuestionBonus(ctx context.Context, questionID model.QuestionID, playerID model.PlayerID, at time.Time) (*model.QuestionBonus, bool, error) {
	bonus := model.QuestionBonus{
		QuestionID:         questionID,
		FirstCorrectPlayer: playerID,
		AwardedAt:          at,
	}
	data, err := json.Marshal(&bonus)
	if err != nil {
		return nil, false, err
	}

	// SET NX is the atomic insert-if-absent decision point: exactly one
	// concurrent claimant observes created=true.
	created, err := s.client.SetNX(ctx, bonusKey(questionID), data, 0).Result()
	if err != nil {
		return nil, false, err
	}

	if created {
		if err := s.client.SAdd(ctx, bonusIndexKey(), strconv.Itoa(int(questionID))).Err(); err != nil {
			return nil, false, err
		}
		return &bonus, true, nil
	}

	existing, err := s.GetQuestionBonus(ctx, questionID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *Storage) GetQuestionBonus(ctx context.Context, questionID model.QuestionID) (*model.QuestionBonus, error) {
	data, err := s.client.Get(ctx, bonusKey(questionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var bonus model.QuestionBonus
	if err := json.Unmarshal(data, &bonus); err != nil {
		return nil, err
	}
	return &bonus, nil
}

func (s *Storage) ListQuestionBonuses(ctx context.Context) ([]*model.QuestionBonus, error) {
	questions, err := s.client.SMembers(ctx, bonusIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(questions))
	for _, q := range questions {
		questionID, err := strconv.Atoi(q)
		if err != nil {
			return nil, err
		}
		keys = append(keys, bonusKey(model.QuestionID(questionID)))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	bonuses := make([]*model.QuestionBonus, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var bonus model.QuestionBonus
		if err := json.Unmarshal([]byte(raw), &bonus); err != nil {
			return nil, err
		}
		bonuses = append(bonuses, &bonus)
	}
	return bonuses, nil
}

func (s *Storage) CountQuestionBonuses(ctx context.Context) (int, error) {
	count, err := s.client.SCard(ctx, bonusIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Eviction and cleanup

func (s *Storage) EvictPlayer(ctx context.Context, id model.PlayerID) error {
	pipe := s.client.TxPipeline()
	pipe.SRem(ctx, playersIndexKey(), string(id))
	pipe.Del(ctx, playerKey(id), activityKey(id), answersKey(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) Clear(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return err
	}
	questions, err := s.client.SMembers(ctx, bonusIndexKey()).Result()
	if err != nil {
		return err
	}

	keys := []string{playersIndexKey(), bonusIndexKey()}
	for _, id := range ids {
		pid := model.PlayerID(id)
		keys = append(keys, playerKey(pid), activityKey(pid), answersKey(pid))
	}
	for _, q := range questions {
		questionID, err := strconv.Atoi(q)
		if err != nil {
			return err
		}
		keys = append(keys, bonusKey(model.QuestionID(questionID)))
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, keys...)
	_, err = pipe.Exec(ctx)
	return err
}
