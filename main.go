package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"retirement-engine/internal/assumptions"
	"retirement-engine/internal/config"
	"retirement-engine/internal/engine"
	"retirement-engine/internal/handler"
	"retirement-engine/internal/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	assumptions.Configure(cfg.MarketAssumptionsURL)

	store := profile.NewStore(cfg.DataDir, log)
	eng := engine.New(store, log)
	h := handler.New(eng, log)

	log.Info().Int("port", cfg.Port).Str("data_dir", cfg.DataDir).Msg("retirement engine starting")
	if err := fasthttp.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), h.Handle); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
