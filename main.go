package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/matchstrike/config"
	"github.com/milk9111/matchstrike/ecs/system"
	"github.com/milk9111/matchstrike/journal"
	"github.com/milk9111/matchstrike/logging"
	"github.com/milk9111/matchstrike/prefabs"
	"github.com/spf13/pflag"
)

func main() {
	fs := config.Flags("matchstrike")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	settings, err := config.Load("", fs)
	log := logging.New(logging.Options{Level: settings.LogLevel, Debug: settings.Debug, Console: true})
	if err != nil {
		log.Fatal().Err(err).Msg("load settings")
	}

	prefabs.SetDir(settings.PrefabDir)

	var sinks []system.EventSink
	if settings.Journal.Enabled {
		store, err := journal.Open(settings.Journal.Path, log)
		if err != nil {
			log.Fatal().Err(err).Str("path", settings.Journal.Path).Msg("open journal")
		}
		defer store.Close()
		log.Info().Str("session", store.SessionID()).Msg("journal enabled")
		sinks = append(sinks, store)
	}

	game, err := NewGame(settings, log, sinks...)
	if err != nil {
		log.Fatal().Err(err).Msg("build game")
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle("matchstrike")

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("game exited")
	}
}
