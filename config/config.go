// Package config holds the settings of the move service and the experiments, read
// from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"goban/game"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     Server     `yaml:"server"`
	Search     Search     `yaml:"search"`
	Log        Log        `yaml:"log"`
	Experiment Experiment `yaml:"experiment"`
}

type Server struct {
	Addr            string        `yaml:"addr"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

type Search struct {
	ThinkingMs  int     `yaml:"thinking_ms"` // used when a request omits thinking_ms
	MaxMs       int     `yaml:"max_ms"`      // upper bound on requested thinking time
	Komi        float64 `yaml:"komi"`
	Exploration float64 `yaml:"exploration"`
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type Experiment struct {
	OutputDir  string        `yaml:"output_dir"`
	Games      int           `yaml:"games"` // per match up
	Parallel   int           `yaml:"parallel"`
	BoardSize  int           `yaml:"board_size"`
	TimeBudget time.Duration `yaml:"time_budget"`
	Seed       uint64        `yaml:"seed"`
	RemoteURL  string        `yaml:"remote_url"` // optional move service to play against
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:            "127.0.0.1:8000",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Search: Search{
			ThinkingMs:  700,
			MaxMs:       20000,
			Komi:        6.5,
			Exploration: 1.35,
		},
		Log: Log{
			Level:  "info",
			Pretty: true,
		},
		Experiment: Experiment{
			OutputDir:  "experiments",
			Games:      10,
			Parallel:   4,
			BoardSize:  9,
			TimeBudget: 100 * time.Millisecond,
			Seed:       1,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.RequestTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("server.max_body_bytes must be positive"))
	}
	if c.Search.ThinkingMs <= 0 {
		errs = append(errs, errors.New("search.thinking_ms must be positive"))
	}
	if c.Search.MaxMs < c.Search.ThinkingMs {
		errs = append(errs, errors.New("search.max_ms is below search.thinking_ms"))
	}
	if time.Duration(c.Search.MaxMs)*time.Millisecond >= c.Server.RequestTimeout {
		errs = append(errs, errors.New("search.max_ms must be below server.request_timeout"))
	}
	if c.Search.Exploration < 0 {
		errs = append(errs, errors.New("search.exploration is negative"))
	}
	if !game.ValidSize(c.Experiment.BoardSize) {
		errs = append(errs, fmt.Errorf("experiment.board_size %d: %w", c.Experiment.BoardSize, game.ErrBoardSize))
	}
	if c.Experiment.Games < 0 || c.Experiment.Parallel < 0 {
		errs = append(errs, errors.New("experiment.games and experiment.parallel cannot be negative"))
	}
	return errors.Join(errs...)
}
