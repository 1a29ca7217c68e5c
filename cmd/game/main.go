package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/sunnix1818/geo-countries/internal/game"
	"github.com/sunnix1818/geo-countries/internal/geojson"
	"github.com/sunnix1818/geo-countries/internal/world"
)

func main() {
	dataPath := flag.String("data", "data/sample.geojson", "GeoJSON FeatureCollection of countries")
	capitalsPath := flag.String("capitals", "", "optional JSON list of capitals")
	configPath := flag.String("config", "", "optional YAML config file")
	player := flag.String("player", "", "country the player starts as")
	verbose := flag.Bool("v", false, "log verbose simulation events")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := world.LoadConfig(*configPath)
	if err != nil {
		fatal(logger, "load config", err)
	}
	if *player != "" {
		cfg.Player = *player
	}
	if *verbose {
		cfg.Verbose = true
	}

	res, err := geojson.LoadFile(*dataPath)
	if err != nil {
		fatal(logger, "load countries", err)
	}
	for _, d := range res.Dropped {
		logger.Warn("malformed feature", "index", d.Index, "name", d.Name, "reason", d.Reason)
	}

	var caps []world.Capital
	if *capitalsPath != "" {
		var skipped int
		caps, skipped, err = geojson.LoadCapitalsFile(*capitalsPath)
		if err != nil {
			fatal(logger, "load capitals", err)
		}
		if skipped > 0 {
			logger.Warn("capitals skipped", "count", skipped)
		}
	}

	w, err := world.New(cfg, world.Source{Features: res.Features, Capitals: caps}, logger)
	if err != nil {
		fatal(logger, "build world", err)
	}
	logger.Info("world ready", "session", w.SessionID, "countries", w.Store.Len(), "player", w.Player())

	vw, vh := w.View.Size()
	ebiten.SetWindowTitle("Geo Countries")
	ebiten.SetWindowSize(int(vw), int(vh))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game.New(w, logger)); err != nil {
		fatal(logger, "run game", err)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
