package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/keyoverlay/core/beat"
	"github.com/ingyamilmolinar/keyoverlay/core/engine"
	"github.com/ingyamilmolinar/keyoverlay/core/model"
	"github.com/ingyamilmolinar/keyoverlay/internal/input"
	game_log "github.com/ingyamilmolinar/keyoverlay/internal/log"
	"github.com/ingyamilmolinar/keyoverlay/internal/overlay"
	"github.com/ingyamilmolinar/keyoverlay/internal/profile"
	"github.com/ingyamilmolinar/keyoverlay/internal/skin"
	"github.com/ingyamilmolinar/keyoverlay/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "keyoverlay:", err)
		os.Exit(1)
	}
}

func run() error {
	defaultPath, err := profile.DefaultPath()
	if err != nil {
		defaultPath = "profile.yml"
	}
	configPath := flag.String("config", defaultPath, "profile file")
	skinsDir := flag.String("skins", "", "skins directory, overrides the profile")
	exportSkin := flag.String("export-skin", "", "write the built-in skin into this directory under the skins root and exit")
	logLevel := flag.String("log-level", "", "debug, info, warn, error or none; overrides the profile")
	flag.Parse()

	settings, err := profile.Load(*configPath)
	if err != nil {
		return err
	}
	if *skinsDir != "" {
		settings.SkinsDir = *skinsDir
	}
	if *logLevel != "" {
		settings.LogLevel = *logLevel
	}
	logger := game_log.New(os.Stderr, game_log.LevelFromString(settings.LogLevel))

	catalog := skin.NewCatalog(settings.SkinsDir, logger)
	if *exportSkin != "" {
		return catalog.Save(*exportSkin, model.DefaultSkin())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := catalog.Refresh(ctx); err != nil {
		return err
	}

	reloads := make(chan profile.Settings, 1)
	if _, err := os.Stat(*configPath); err == nil {
		if err := profile.Watch(*configPath, logger, reloads); err != nil {
			logger.Warnf("[MAIN] %v; profile edits need a restart", err)
		}
	}
	skinChanges := make(chan struct{}, 1)
	if err := catalog.Watch(ctx, skinChanges); err != nil {
		logger.Warnf("[MAIN] %v; use Reload skins in the panel", err)
	}

	in, closeInput := openInput(ctx, settings.InputBackend, logger)
	defer closeInput()

	eng := engine.New(ctx, beatSource(settings.Profile), logger)
	defer eng.Close()

	g, err := ui.New(ctx, ui.Config{
		Settings:    settings,
		ProfilePath: *configPath,
		Catalog:     catalog,
		Input:       in,
		Beat:        eng,
		Logger:      logger,
		Reloads:     reloads,
		SkinChanges: skinChanges,
	})
	if err != nil {
		return err
	}
	defer g.Close()

	printStartupBanner(os.Stdout, settings, *configPath, g.Skin())

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle("KeyOverlay")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowFloating(settings.Window.Floating)
	ebiten.SetTPS(settings.Profile.FPS)

	return ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		ScreenTransparent: settings.Window.Transparent,
	})
}

// openInput returns the configured input source, falling back to ebiten's
// focused-window polling when device access fails.
func openInput(ctx context.Context, backend string, logger *game_log.Logger) (overlay.InputSource, func()) {
	if backend == profile.BackendEvdev {
		p, err := input.NewEvdevPoller(ctx, input.DefaultDeviceDir, logger)
		if err == nil {
			return p, func() { _ = p.Close() }
		}
		logger.Warnf("[MAIN] evdev input unavailable: %v; falling back to window input", err)
	}
	return input.NewPoller(logger), func() {}
}

// beatSource picks a fixed-tempo clock when a BPM is configured and the
// simulated analyzer otherwise.
func beatSource(p model.Profile) beat.Source {
	if p.BeatBPM > 0 {
		return beat.NewScheduler(p.BeatBPM)
	}
	return beat.NewAnalyzer(uint64(time.Now().UnixNano()))
}
