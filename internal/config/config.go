package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	defaultPort              = 9191
	defaultComputerMoveDelay = time.Second
	defaultComputerStrategy  = mb.AttackStrategyHunt
	defaultLogLevel          = log.InfoLevel
)

type Config struct {
	Stage string
	Port  int

	// Empty disables the analytics store
	PsqlUrl string

	ComputerStrategy  string
	ComputerMoveDelay time.Duration

	// Seeded is false when GAME_SEED is not set
	GameSeed uint64
	Seeded   bool

	LogLevel log.Level

	// Tracing is enabled only when set
	OtlpEndpoint string
}

// Load reads envFile unless STAGE is prod, then builds the config
// from the process environment. Variables already set in the
// environment win over the file.
func Load(envFile string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return Parse(os.Getenv)
}

func Parse(getenv func(string) string) (Config, error) {
	cfg := Config{
		Stage:             getenv("STAGE"),
		Port:              defaultPort,
		PsqlUrl:           getenv("PSQL_URL"),
		ComputerStrategy:  defaultComputerStrategy,
		ComputerMoveDelay: defaultComputerMoveDelay,
		LogLevel:          defaultLogLevel,
		OtlpEndpoint:      getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod, got: %q", cfg.Stage)
	}

	if portEnv := getenv("PORT"); portEnv != "" {
		port, err := strconv.Atoi(portEnv)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT: %w", err)
		}
		if port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("PORT out of range: %d", port)
		}
		cfg.Port = port
	}

	if strategy := strings.TrimSpace(getenv("COMPUTER_STRATEGY")); strategy != "" {
		cfg.ComputerStrategy = strategy
	}

	if delayEnv := getenv("COMPUTER_MOVE_DELAY"); delayEnv != "" {
		delay, err := time.ParseDuration(delayEnv)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COMPUTER_MOVE_DELAY: %w", err)
		}
		if delay < 0 {
			return Config{}, fmt.Errorf("COMPUTER_MOVE_DELAY cannot be negative: %s", delay)
		}
		cfg.ComputerMoveDelay = delay
	}

	if seedEnv := getenv("GAME_SEED"); seedEnv != "" {
		seed, err := strconv.ParseUint(seedEnv, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GAME_SEED: %w", err)
		}
		cfg.GameSeed = seed
		cfg.Seeded = true
	}

	if levelEnv := getenv("LOG_LEVEL"); levelEnv != "" {
		level, err := log.ParseLevel(levelEnv)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func (c Config) AnalyticsEnabled() bool {
	return c.PsqlUrl != ""
}
