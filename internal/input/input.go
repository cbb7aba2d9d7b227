// Package input answers "is this binding held right now" for the overlay.
// Poller reads ebiten's focused-window state; EvdevPoller reads Linux input
// devices directly so the overlay keeps working while unfocused.
package input

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
	game_log "github.com/ingyamilmolinar/keyoverlay/internal/log"
)

var (
	isKeyPressed         = ebiten.IsKeyPressed
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(key func(ebiten.Key) bool, mouse func(ebiten.MouseButton) bool) func() {
	oldKey := isKeyPressed
	oldMouse := isMouseButtonPressed
	isKeyPressed = key
	isMouseButtonPressed = mouse
	return func() {
		isKeyPressed = oldKey
		isMouseButtonPressed = oldMouse
	}
}

// ResolveKey maps a key name such as "D", "space" or "ArrowLeft" to an
// ebiten key.
func ResolveKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}

func ebitenButton(b model.MouseButton) (ebiten.MouseButton, bool) {
	switch b {
	case model.MouseLeft:
		return ebiten.MouseButtonLeft, true
	case model.MouseRight:
		return ebiten.MouseButtonRight, true
	case model.MouseMiddle:
		return ebiten.MouseButtonMiddle, true
	}
	return 0, false
}

// Poller reads ebiten's input state. It must be used from the game loop.
type Poller struct {
	logger *game_log.Logger
	keys   map[string]ebiten.Key
	bad    map[string]bool
}

func NewPoller(logger *game_log.Logger) *Poller {
	if logger == nil {
		logger = game_log.Discard()
	}
	return &Poller{
		logger: logger,
		keys:   make(map[string]ebiten.Key),
		bad:    make(map[string]bool),
	}
}

func (p *Poller) key(name string) (ebiten.Key, bool) {
	if k, ok := p.keys[name]; ok {
		return k, true
	}
	if p.bad[name] {
		return 0, false
	}
	k, err := ResolveKey(name)
	if err != nil {
		p.bad[name] = true
		p.logger.Warnf("[INPUT] %v, binding will never press", err)
		return 0, false
	}
	p.keys[name] = k
	return k, true
}

// Pressed reports whether b is held.
func (p *Poller) Pressed(b model.Binding) bool {
	if name, ok := b.KeyName(); ok {
		k, ok := p.key(name)
		return ok && isKeyPressed(k)
	}
	if btn, ok := b.Button(); ok {
		mb, ok := ebitenButton(btn)
		return ok && isMouseButtonPressed(mb)
	}
	return false
}
