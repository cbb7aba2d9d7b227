//go:build linux

package input

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/holoplot/go-evdev"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
	game_log "github.com/ingyamilmolinar/keyoverlay/internal/log"
)

// DefaultDeviceDir is where Linux exposes input event devices.
const DefaultDeviceDir = "/dev/input"

var evdevButtons = map[model.MouseButton]evdev.EvCode{
	model.MouseLeft:   evdev.BTN_LEFT,
	model.MouseRight:  evdev.BTN_RIGHT,
	model.MouseMiddle: evdev.BTN_MIDDLE,
}

// EvdevPoller reads key events from every keyboard-like device under a
// directory. Reading the devices usually needs membership of the "input"
// group.
type EvdevPoller struct {
	logger  *game_log.Logger
	table   *pressTable
	devices []*evdev.InputDevice
	codes   map[model.Binding]evdev.EvCode
	bad     map[model.Binding]bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	once    sync.Once
}

// NewEvdevPoller opens the devices under dir and starts one reader goroutine
// per device. Readers stop when ctx is cancelled or Close is called.
func NewEvdevPoller(ctx context.Context, dir string, logger *game_log.Logger) (*EvdevPoller, error) {
	if logger == nil {
		logger = game_log.Discard()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("evdev: %w", err)
	}
	p := &EvdevPoller{
		logger: logger,
		table:  newPressTable(),
		codes:  make(map[model.Binding]evdev.EvCode),
		bad:    make(map[model.Binding]bool),
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		dev, err := evdev.OpenWithFlags(path, os.O_RDONLY)
		if err != nil {
			continue
		}
		if !hasKeys(dev) {
			dev.Close()
			continue
		}
		name, _ := dev.Name()
		logger.Debugf("[INPUT] evdev device %s (%s)", path, name)
		p.devices = append(p.devices, dev)
	}
	if len(p.devices) == 0 {
		return nil, errors.New("evdev: no readable key devices (check /dev/input permissions)")
	}

	ctx, p.cancel = context.WithCancel(ctx)
	for _, dev := range p.devices {
		p.wg.Add(1)
		go p.read(dev)
	}
	go func() {
		<-ctx.Done()
		p.closeDevices()
	}()
	logger.Infof("[INPUT] evdev reading %d devices", len(p.devices))
	return p, nil
}

func hasKeys(dev *evdev.InputDevice) bool {
	for _, t := range dev.CapableTypes() {
		if t == evdev.EV_KEY {
			return true
		}
	}
	return false
}

func (p *EvdevPoller) read(dev *evdev.InputDevice) {
	defer p.wg.Done()
	for {
		evt, err := dev.ReadOne()
		if err != nil {
			p.logger.Debugf("[INPUT] evdev %s stopped: %v", dev.Path(), err)
			return
		}
		if evt.Type == evdev.EV_KEY {
			p.table.apply(uint16(evt.Code), evt.Value)
		}
	}
}

func (p *EvdevPoller) code(b model.Binding) (evdev.EvCode, bool) {
	if c, ok := p.codes[b]; ok {
		return c, true
	}
	if p.bad[b] {
		return 0, false
	}
	var c evdev.EvCode
	var ok bool
	if name, isKey := b.KeyName(); isKey {
		c, ok = evdev.KEYFromString[evdevKeyName(name)]
	} else if btn, isMouse := b.Button(); isMouse {
		c, ok = evdevButtons[btn]
	}
	if !ok {
		p.logger.Warnf("[INPUT] no evdev code for %s", b)
		p.bad[b] = true
		return 0, false
	}
	p.codes[b] = c
	return c, true
}

// Pressed reports whether b is held on any device.
func (p *EvdevPoller) Pressed(b model.Binding) bool {
	c, ok := p.code(b)
	return ok && p.table.pressed(uint16(c))
}

func (p *EvdevPoller) closeDevices() {
	p.once.Do(func() {
		for _, dev := range p.devices {
			dev.Close()
		}
		p.table.reset()
	})
}

// Close stops every reader and waits for them to exit.
func (p *EvdevPoller) Close() error {
	p.cancel()
	p.closeDevices()
	p.wg.Wait()
	return nil
}
