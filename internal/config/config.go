// Package config loads game and logging settings from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/zappabad/stockmarket/internal/broker"
	"github.com/zappabad/stockmarket/internal/game"
	"github.com/zappabad/stockmarket/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. STOCKMARKET_GAME_SEED.
const EnvPrefix = "STOCKMARKET"

var ErrInvalid = errors.New("invalid config")

// Config holds all application configuration.
type Config struct {
	Game GameConfig `mapstructure:"game"`
	Log  LogConfig  `mapstructure:"log"`
}

// GameConfig holds the rules of a session.
type GameConfig struct {
	StartingCash float64 `mapstructure:"starting_cash"`
	BrokerageFee float64 `mapstructure:"brokerage_fee"`
	Seed         int64   `mapstructure:"seed"` // 0 seeds from the clock
	NewsCapacity int     `mapstructure:"news_capacity"`
	HistoryDays  int     `mapstructure:"history_days"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	Console    bool   `mapstructure:"console"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// DefaultConfigDir returns the directory searched when no file is given.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "stockmarket")
}

func setDefaults(v *viper.Viper) {
	g := game.DefaultConfig()
	l := logging.DefaultConfig()

	v.SetDefault("game.starting_cash", g.StartingCash)
	v.SetDefault("game.brokerage_fee", g.Broker.Fee)
	v.SetDefault("game.seed", int64(0))
	v.SetDefault("game.news_capacity", g.NewsCapacity)
	v.SetDefault("game.history_days", g.HistoryDays)

	v.SetDefault("log.level", l.Level)
	v.SetDefault("log.file", l.File)
	v.SetDefault("log.console", l.Console)
	v.SetDefault("log.max_size", l.MaxSize)
	v.SetDefault("log.max_backups", l.MaxBackups)
	v.SetDefault("log.max_age", l.MaxAge)
}

// Load reads configuration from path, or from a "config" file in the current
// and default directories when path is empty. A missing file is not an error
// unless path was given explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Game.StartingCash < 0 {
		return fmt.Errorf("%w: starting_cash must be non-negative", ErrInvalid)
	}
	if c.Game.BrokerageFee < 0 || c.Game.BrokerageFee >= 1 {
		return fmt.Errorf("%w: brokerage_fee must be in [0, 1)", ErrInvalid)
	}
	if c.Game.NewsCapacity <= 0 {
		return fmt.Errorf("%w: news_capacity must be positive", ErrInvalid)
	}
	if c.Game.HistoryDays <= 0 {
		return fmt.Errorf("%w: history_days must be positive", ErrInvalid)
	}
	return nil
}

// GameConfig returns the session rules.
func (c *Config) GameConfig() game.Config {
	return game.Config{
		StartingCash: c.Game.StartingCash,
		Broker:       broker.Config{Fee: c.Game.BrokerageFee},
		NewsCapacity: c.Game.NewsCapacity,
		HistoryDays:  c.Game.HistoryDays,
	}
}

// LoggingConfig returns the logger settings.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:      c.Log.Level,
		Console:    c.Log.Console,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
	}
}
