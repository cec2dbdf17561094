package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goban/config"
	"goban/experiments"
	"goban/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	mode := flag.String("mode", "serve", "serve, or an experiment: budget, exploration, cutoff, temperature, remote")
	addr := flag.String("addr", "", "Listen address, overrides server.addr")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	setupLogging(cfg.Log)

	switch *mode {
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := server.New(cfg).Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("move service stopped")
		}
	case "budget":
		runExperiment(cfg, experiments.Budget(cfg.Experiment))
	case "exploration":
		runExperiment(cfg, experiments.Exploration(cfg.Experiment))
	case "cutoff":
		runExperiment(cfg, experiments.Cutoff(cfg.Experiment))
	case "temperature":
		runExperiment(cfg, experiments.Temperature(cfg.Experiment))
	case "remote":
		if cfg.Experiment.RemoteURL == "" {
			log.Fatal().Msg("experiment.remote_url is required for the remote experiment")
		}
		runExperiment(cfg, experiments.Remote(cfg.Experiment))
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func runExperiment(cfg config.Config, exp experiments.Experiment) {
	if _, err := experiments.Run(cfg, exp); err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", exp.Name)
	}
}

func setupLogging(cfg config.Log) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		log.Warn().Err(err).Msgf("unknown log level %q, using info", cfg.Level)
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
