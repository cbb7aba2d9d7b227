// Package ui hosts the overlay in an ebiten window: it owns the offscreen
// canvas, the settings panel and the plumbing that feeds profile and skin
// changes into the running overlay.
package ui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/ingyamilmolinar/keyoverlay/core/beat"
	game_log "github.com/ingyamilmolinar/keyoverlay/internal/log"
	"github.com/ingyamilmolinar/keyoverlay/internal/overlay"
	"github.com/ingyamilmolinar/keyoverlay/internal/profile"
	"github.com/ingyamilmolinar/keyoverlay/internal/skin"
)

// Config wires a Game to its collaborators.
type Config struct {
	Settings    profile.Settings
	ProfilePath string
	Catalog     *skin.Catalog
	Input       overlay.InputSource
	Beat        beat.Source
	Logger      *game_log.Logger
	// Reloads delivers settings re-read from the profile file.
	Reloads <-chan profile.Settings
	// SkinChanges signals that the skins directory changed on disk.
	SkinChanges <-chan struct{}
	Rand        *rand.Rand
}

type Game struct {
	ctx         context.Context
	settings    profile.Settings
	profilePath string
	catalog     *skin.Catalog
	entry       skin.Entry
	logger      *game_log.Logger
	reloads     <-chan profile.Settings
	skinChanges <-chan struct{}

	overlay *overlay.Overlay
	panel   *Panel
	fonts   *fontCache
	builtin *fontCache

	canvas *ebiten.Image
	drawn  bool
	width  int
	height int

	now  func() time.Time
	last time.Time
}

func New(ctx context.Context, cfg Config) (*Game, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("ui: a skin catalog is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = game_log.Discard()
	}
	src, err := builtinFontSource()
	if err != nil {
		return nil, err
	}
	g := &Game{
		ctx:         ctx,
		settings:    cfg.Settings,
		profilePath: cfg.ProfilePath,
		catalog:     cfg.Catalog,
		logger:      logger,
		reloads:     cfg.Reloads,
		skinChanges: cfg.SkinChanges,
		builtin:     newFontCache(src),
		width:       cfg.Settings.Window.Width,
		height:      cfg.Settings.Window.Height,
		now:         time.Now,
	}
	g.entry = g.catalog.Initial(cfg.Settings.Profile.Skin)
	g.settings.Profile.Skin = g.entry.Dir
	g.fonts = g.loadFonts(g.entry.FontPath)

	g.overlay = overlay.New(g.settings.Profile, g.entry.Skin, g.width, g.height, overlay.Options{
		Input:   cfg.Input,
		Beat:    cfg.Beat,
		Grabber: canvasGrabber{canvas: g.lastCanvas},
		Rand:    cfg.Rand,
		Logger:  logger,
	})
	g.panel = NewPanel(g.settings, g.catalog.Names(), g.entry.Skin.Panel, PanelHooks{
		Apply:       g.apply,
		Save:        g.save,
		ReloadSkins: g.reloadSkins,
	}, logger)
	g.panel.Layout(g.width, g.height)
	logger.Infof("[UI] using skin %q (%s)", g.entry.Skin.Name, g.entry.Dir)
	return g, nil
}

// Overlay exposes the running overlay.
func (g *Game) Overlay() *overlay.Overlay { return g.overlay }

// Panel exposes the settings panel.
func (g *Game) Panel() *Panel { return g.panel }

// Settings returns the settings currently in effect.
func (g *Game) Settings() profile.Settings { return g.settings }

// Skin returns the active catalog entry.
func (g *Game) Skin() skin.Entry { return g.entry }

func (g *Game) lastCanvas() *ebiten.Image {
	if !g.drawn {
		return nil
	}
	return g.canvas
}

// loadFonts returns a cache for path, falling back to the built-in font.
func (g *Game) loadFonts(path string) *fontCache {
	if path == "" {
		return g.builtin
	}
	src, err := loadFontSource(path)
	if err != nil {
		g.logger.Warnf("[UI] %v; using built-in font", err)
		return g.builtin
	}
	return newFontCache(src)
}

func (g *Game) useSkin(e skin.Entry) {
	if e.FontPath != g.entry.FontPath {
		g.fonts = g.loadFonts(e.FontPath)
	}
	g.entry = e
	g.overlay.SetSkin(e.Skin)
	g.panel.SetTheme(e.Skin.Panel)
}

func (g *Game) selectSkin(dir string) {
	e, ok := g.catalog.Lookup(dir)
	if !ok {
		g.logger.Warnf("[UI] skin %q not found", dir)
		e = g.catalog.Initial(dir)
	}
	g.useSkin(e)
}

// apply makes s the live configuration.
func (g *Game) apply(s profile.Settings) {
	prev := g.settings
	g.settings = s
	if s.Profile.Skin != prev.Profile.Skin {
		g.selectSkin(s.Profile.Skin)
	}
	g.overlay.SetProfile(s.Profile)
	if s.Profile.FPS != prev.Profile.FPS {
		setTPS(s.Profile.FPS)
	}
	if s.LogLevel != prev.LogLevel {
		g.logger.SetLevel(game_log.LevelFromString(s.LogLevel))
	}
}

func (g *Game) save(s profile.Settings) error {
	if g.profilePath == "" {
		return errors.New("no profile path configured")
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if err := profile.Save(g.profilePath, s); err != nil {
		return err
	}
	g.logger.Infof("[UI] saved profile to %s", g.profilePath)
	return nil
}

// reloadSkins rescans the catalog and re-applies the active skin if its
// files changed.
func (g *Game) reloadSkins() []string {
	if err := g.catalog.Refresh(g.ctx); err != nil {
		g.logger.Warnf("[UI] reload skins: %v", err)
	}
	e, ok := g.catalog.Lookup(g.entry.Dir)
	if !ok {
		g.logger.Warnf("[UI] skin %q disappeared", g.entry.Dir)
		e = g.catalog.Initial(g.settings.Profile.Skin)
	}
	if e != g.entry {
		g.useSkin(e)
	}
	return g.catalog.Names()
}

func (g *Game) drain() {
	select {
	case s := <-g.reloads:
		g.panel.SetSettings(s)
		g.apply(s)
	default:
	}
	select {
	case <-g.skinChanges:
		g.panel.SetSkins(g.reloadSkins())
	default:
	}
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	now := g.now()
	var dt time.Duration
	if !g.last.IsZero() {
		dt = max(0, now.Sub(g.last))
	}
	g.last = now

	if isKeyJustPressed(ebiten.KeyF1) {
		g.panel.Toggle()
	}
	g.drain()
	g.panel.Update()
	g.overlay.Update(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		return
	}
	bg := g.entry.Skin.Background
	g.canvas.Fill(bg)
	surf := &imageSurface{dst: g.canvas, fonts: g.fonts}
	g.overlay.Render(surf)
	if g.settings.Profile.Fading {
		drawFading(surf, bg, g.settings.Profile)
	}
	g.drawn = true

	screen.DrawImage(g.canvas, nil)
	g.panel.Draw(&imageSurface{dst: screen, fonts: g.builtin})
	if g.settings.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.0f  TPS %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *Game) Layout(w, h int) (int, int) {
	if g.canvas == nil || w != g.width || h != g.height {
		g.resize(w, h)
	}
	return w, h
}

func (g *Game) resize(w, h int) {
	if g.canvas != nil {
		g.canvas.Deallocate()
	}
	g.canvas = ebiten.NewImage(max(1, w), max(1, h))
	g.drawn = false
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.overlay.Resize(w, h)
		g.panel.Layout(w, h)
	}
}

// Close releases every live effect snapshot and the canvas.
func (g *Game) Close() {
	g.overlay.Close()
	if g.canvas != nil {
		g.canvas.Deallocate()
		g.canvas = nil
	}
}
