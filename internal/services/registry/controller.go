package registry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/quizlive/quizlive/internal/dependencies/clock"
	"github.com/quizlive/quizlive/internal/dependencies/ident"
	"github.com/quizlive/quizlive/internal/model"
	"github.com/quizlive/quizlive/internal/services/arbiter"
	"github.com/quizlive/quizlive/internal/services/playerlock"
	"github.com/quizlive/quizlive/internal/services/sweep"
	"github.com/quizlive/quizlive/internal/storage"
)

// Controller owns player records: registration, lookups and partial
// updates. Answer submissions inside an update are delegated to the
// arbiter while the player's lock is held.
type Controller struct {
	storage storage.Storage
	locks   *playerlock.Table
	sweeper *sweep.Service
	arbiter *arbiter.Service
	clock   clock.Clock
	ident   ident.Generator
	logger  *slog.Logger
}

// NewController creates a new registry controller
func NewController(
	storage storage.Storage,
	locks *playerlock.Table,
	sweeper *sweep.Service,
	arbiter *arbiter.Service,
	clock clock.Clock,
	ident ident.Generator,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		locks:   locks,
		sweeper: sweeper,
		arbiter: arbiter,
		clock:   clock,
		ident:   ident,
		logger:  logger,
	}
}

// Register creates a new player with a fresh identifier.
// The name must be non-blank after trimming.
func (c *Controller) Register(ctx context.Context, name string) (*model.Player, error) {
	c.sweepEntry(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrNameRequired
	}

	now := c.clock.Now()
	player := &model.Player{
		ID:           model.PlayerID(c.ident.NewID()),
		Name:         name,
		Status:       model.StatusWaiting,
		RegisteredAt: now,
		LastUpdated:  now,
	}

	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	if err := c.sweeper.Touch(ctx, player.ID); err != nil {
		return nil, err
	}

	c.logger.Info("player registered",
		slog.String("player_id", string(player.ID)),
		slog.String("name", player.Name),
	)

	return player, nil
}

// Get retrieves a player by id
func (c *Controller) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return c.storage.GetPlayer(ctx, id)
}

// Update merges the provided fields into the player record. When the
// update carries an answer submission the arbiter records it and applies
// the score outcome, including any first-correct bonus.
func (c *Controller) Update(ctx context.Context, id model.PlayerID, update model.PlayerUpdate) (*model.Player, *model.BonusInfo, error) {
	c.sweepEntry(ctx)

	unlock := c.locks.Lock(id)
	defer unlock()

	player, err := c.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if err := c.sweeper.Touch(ctx, id); err != nil {
		return nil, nil, err
	}

	if update.Name != nil {
		player.Name = *update.Name
	}
	if update.CurrentQuestionNumber != nil {
		player.CurrentQuestionNumber = *update.CurrentQuestionNumber
	}
	if update.TotalQuestionsInGame != nil {
		player.TotalQuestionsInGame = *update.TotalQuestionsInGame
	}
	if update.Status != nil {
		// Accepted verbatim: the game client owns status semantics
		player.Status = *update.Status
	}

	var bonusInfo *model.BonusInfo
	if update.Answer != nil {
		bonusInfo, err = c.arbiter.Submit(ctx, player, *update.Answer, update.Score)
		if err != nil {
			return nil, nil, err
		}
	} else if update.Score != nil {
		player.Score = *update.Score
	}

	player.LastUpdated = c.clock.Now()

	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, nil, err
	}

	return player, bonusInfo, nil
}

// Cleanup wipes all game state for the next round and returns the
// cleanup timestamp.
func (c *Controller) Cleanup(ctx context.Context) (time.Time, error) {
	if err := c.storage.Clear(ctx); err != nil {
		return time.Time{}, err
	}

	c.logger.Info("game state cleared")

	return c.clock.Now(), nil
}

// sweepEntry runs the lazy eviction sweep at the start of an operation.
// Sweep failures are logged, not surfaced: they are not part of the
// operation's own transaction.
func (c *Controller) sweepEntry(ctx context.Context) {
	if _, err := c.sweeper.Sweep(ctx); err != nil {
		c.logger.Warn("eviction sweep failed", slog.String("error", err.Error()))
	}
}
