//go:build !linux

package input

import (
	"context"
	"errors"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
	game_log "github.com/ingyamilmolinar/keyoverlay/internal/log"
)

const DefaultDeviceDir = ""

// EvdevPoller is only available on Linux.
type EvdevPoller struct{}

func NewEvdevPoller(context.Context, string, *game_log.Logger) (*EvdevPoller, error) {
	return nil, errors.New("evdev: global input is only supported on linux")
}

func (*EvdevPoller) Pressed(model.Binding) bool { return false }

func (*EvdevPoller) Close() error { return nil }
