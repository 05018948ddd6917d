package sweep

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quizlive/quizlive/internal/dependencies/clock"
	"github.com/quizlive/quizlive/internal/model"
	"github.com/quizlive/quizlive/internal/services/playerlock"
	"github.com/quizlive/quizlive/internal/storage"
)

// DefaultPlayerTimeout is how long a player may stay silent before the
// sweeper evicts them.
const DefaultPlayerTimeout = 30 * time.Minute

// Service tracks per-player activity and lazily evicts inactive players.
// Sweeps run at the entry of incoming operations rather than on a timer;
// game sessions are short-lived and read-heavy at exactly the moments
// sweeps matter (dashboard polling).
type Service struct {
	storage storage.Storage
	locks   *playerlock.Table
	clock   clock.Clock
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a new sweep service
func New(storage storage.Storage, locks *playerlock.Table, clock clock.Clock, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultPlayerTimeout
	}
	return &Service{
		storage: storage,
		locks:   locks,
		clock:   clock,
		timeout: timeout,
		logger:  logger,
	}
}

// Touch marks the player as active now
func (s *Service) Touch(ctx context.Context, id model.PlayerID) error {
	return s.storage.TouchActivity(ctx, id, s.clock.Now())
}

// Sweep evicts every player whose last activity is older than the
// configured timeout and returns the number of evicted players.
//
// Each candidate is evicted under its player lock after re-checking
// staleness, so a concurrent update either completes before the eviction
// or observes the player as gone.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	now := s.clock.Now()

	records, err := s.storage.ListActivities(ctx)
	if err != nil {
		return 0, err
	}

	evicted := 0
	for _, record := range records {
		if now.Sub(record.LastActivity) <= s.timeout {
			continue
		}

		unlock := s.locks.Lock(record.PlayerID)
		current, err := s.storage.GetActivity(ctx, record.PlayerID)
		if err != nil {
			unlock()
			if errors.Is(err, model.ErrPlayerNotFound) {
				// Already evicted by a concurrent sweep
				continue
			}
			return evicted, err
		}
		if now.Sub(current.LastActivity) <= s.timeout {
			// Player came back between the scan and the lock
			unlock()
			continue
		}

		err = s.storage.EvictPlayer(ctx, record.PlayerID)
		unlock()
		if err != nil {
			return evicted, err
		}
		evicted++
	}

	if evicted > 0 {
		s.logger.Info("evicted inactive players",
			slog.Int("count", evicted),
			slog.Duration("timeout", s.timeout),
		)
	}

	return evicted, nil
}
