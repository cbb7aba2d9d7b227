package skin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch signals on changed whenever something under the skins root is
// created, written, removed or renamed. Signals coalesce; the receiver is
// expected to call Refresh from its own loop. Watching stops with ctx.
func (c *Catalog) Watch(ctx context.Context, changed chan<- struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch skins: %w", err)
	}
	if err := w.Add(c.root); err != nil {
		w.Close()
		return fmt.Errorf("watch skins: %w", err)
	}
	if dirs, err := os.ReadDir(c.root); err == nil {
		for _, d := range dirs {
			if d.IsDir() {
				_ = w.Add(filepath.Join(c.root, d.Name()))
			}
		}
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Create) {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						_ = w.Add(ev.Name)
					}
				}
				if ev.Op == fsnotify.Chmod {
					continue
				}
				c.logger.Debugf("[SKIN] %s", ev)
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				c.logger.Warnf("[SKIN] watcher: %v", err)
			}
		}
	}()
	return nil
}
