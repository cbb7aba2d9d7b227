package profile

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	game_log "github.com/ingyamilmolinar/keyoverlay/internal/log"
)

// Watch reloads path whenever it changes on disk and posts the new settings
// to out. out should have capacity 1: a pending, unconsumed reload is
// replaced by the newer one. Invalid edits are logged and skipped. The file
// must exist; watching lasts for the life of the process.
func Watch(path string, logger *game_log.Logger, out chan Settings) error {
	if logger == nil {
		logger = game_log.Discard()
	}
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("watch profile %s: %w", path, err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		// decode through a fresh instance; v belongs to viper's watcher
		s, err := Load(path)
		if err != nil {
			logger.Warnf("[PROFILE] ignoring change to %s: %v", e.Name, err)
			return
		}
		logger.Infof("[PROFILE] reloaded %s", e.Name)
		post(out, s)
	})
	v.WatchConfig()
	return nil
}

// post delivers s, dropping a stale pending value first.
func post(out chan Settings, s Settings) {
	for {
		select {
		case out <- s:
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}

