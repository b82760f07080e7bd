package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

const (
	StageDev  = "dev"
	StageProd = "prod"

	DefaultPort = 8000
)

const (
	envStage                  = "STAGE"
	envPort                   = "PORT"
	envDatabaseUrl            = "DATABASE_URL"
	envLogLevel               = "LOG_LEVEL"
	envSessionCleanupInterval = "SESSION_CLEANUP_INTERVAL"
	envGridSize               = "GRID_SIZE"
	envGoalScore              = "GOAL_SCORE"
	envBullseyeBonus          = "BULLSEYE_BONUS"
	envBullseyeDistance       = "BULLSEYE_DISTANCE"
	envNearTriggerDistance    = "NEAR_TRIGGER_DISTANCE"
	envMaxPlacementTries      = "MAX_PLACEMENT_TRIES"
)

type Config struct {
	Stage                  string
	Port                   int
	DatabaseUrl            string
	LogLevel               log.Level
	SessionCleanupInterval time.Duration
	Game                   mb.Config
}

// Load reads the server configuration from the environment. Outside prod the
// variables in envFile are loaded first; a missing file is not an error.
func Load(envFile string) (Config, error) {
	if os.Getenv(envStage) != StageProd && envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the configuration from any key lookup, reporting every
// invalid variable at once.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	var result *multierror.Error
	p := parser{lookup: lookup, result: &result}

	c := Config{
		Stage:                  p.strVar(envStage, ""),
		Port:                   p.intVar(envPort, DefaultPort),
		DatabaseUrl:            p.strVar(envDatabaseUrl, ""),
		SessionCleanupInterval: p.durationVar(envSessionCleanupInterval, 20*time.Minute),
	}

	if c.Stage != StageDev && c.Stage != StageProd {
		result = multierror.Append(result, cerr.ErrConfigField(envStage, c.Stage, "must be either dev or prod"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		result = multierror.Append(result, cerr.ErrConfigField(envPort, c.Port, "must be a valid tcp port"))
	}

	defaultLevel := log.InfoLevel
	if c.Stage == StageDev {
		defaultLevel = log.DebugLevel
	}
	c.LogLevel = defaultLevel
	if level := p.strVar(envLogLevel, ""); level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			result = multierror.Append(result, cerr.ErrConfigField(envLogLevel, level, "must be debug, info, warn or error"))
		} else {
			c.LogLevel = parsed
		}
	}

	game := mb.DefaultConfig()
	game.GridSize = p.intVar(envGridSize, game.GridSize)
	game.GoalScore = p.intVar(envGoalScore, game.GoalScore)
	game.BullseyeBonus = p.intVar(envBullseyeBonus, game.BullseyeBonus)
	game.BullseyeDistance = p.floatVar(envBullseyeDistance, game.BullseyeDistance)
	game.NearTriggerDistance = p.floatVar(envNearTriggerDistance, game.NearTriggerDistance)
	game.MaxPlacementTries = p.intVar(envMaxPlacementTries, game.MaxPlacementTries)
	if err := game.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	c.Game = game

	if err := result.ErrorOrNil(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) IsDev() bool {
	return c.Stage == StageDev
}

func (c Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

type parser struct {
	lookup func(string) (string, bool)
	result **multierror.Error
}

func (p parser) strVar(key, fallback string) string {
	value, ok := p.lookup(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func (p parser) intVar(key string, fallback int) int {
	value := p.strVar(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*p.result = multierror.Append(*p.result, cerr.ErrConfigField(key, value, "must be an integer"))
		return fallback
	}
	return n
}

func (p parser) floatVar(key string, fallback float64) float64 {
	value := p.strVar(key, "")
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*p.result = multierror.Append(*p.result, cerr.ErrConfigField(key, value, "must be a number"))
		return fallback
	}
	return f
}

func (p parser) durationVar(key string, fallback time.Duration) time.Duration {
	value := p.strVar(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		*p.result = multierror.Append(*p.result, cerr.ErrConfigField(key, value, "must be a positive duration"))
		return fallback
	}
	return d
}
