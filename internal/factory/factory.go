package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/quizlive/quizlive/internal/dependencies/clock"
	"github.com/quizlive/quizlive/internal/dependencies/ident"
	"github.com/quizlive/quizlive/internal/services/arbiter"
	"github.com/quizlive/quizlive/internal/services/playerlock"
	"github.com/quizlive/quizlive/internal/services/registry"
	"github.com/quizlive/quizlive/internal/services/stats"
	"github.com/quizlive/quizlive/internal/services/sweep"
	"github.com/quizlive/quizlive/internal/storage"
	"github.com/quizlive/quizlive/internal/storage/memory"
	redisstorage "github.com/quizlive/quizlive/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	Ident ident.Generator

	// Services
	Locks              *playerlock.Table
	Sweeper            *sweep.Service
	Arbiter            *arbiter.Service
	RegistryController *registry.Controller
	StatsService       *stats.Service
}

// Config holds configuration for the application factory
type Config struct {
	// PlayerTimeout is how long a player may stay inactive before
	// eviction (optional; defaults to sweep.DefaultPlayerTimeout)
	PlayerTimeout time.Duration
	// BonusPoints is the first-correct award amount (optional; defaults
	// to arbiter.DefaultBonusPoints)
	BonusPoints int
	// QuestionCount is the size of the enumerated question range
	// (optional; defaults to stats.DefaultQuestionCount)
	QuestionCount int
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	idg := ident.New()

	return newWithDependencies(store, clk, idg, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, idg ident.Generator, cfg Config, logger *slog.Logger) *App {
	locks := playerlock.New()
	sweeper := sweep.New(store, locks, clk, cfg.PlayerTimeout, logger)
	arbiterService := arbiter.New(store, clk, cfg.BonusPoints, logger)
	registryController := registry.NewController(store, locks, sweeper, arbiterService, clk, idg, logger)
	statsService := stats.New(store, sweeper, clk, cfg.QuestionCount, arbiterService.BonusPoints(), logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Ident:              idg,
		Locks:              locks,
		Sweeper:            sweeper,
		Arbiter:            arbiterService,
		RegistryController: registryController,
		StatsService:       statsService,
	}
}
