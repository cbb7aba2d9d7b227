// Package skin discovers, loads and saves skin directories. Each skin lives
// in its own directory under the skins root as <dir>/skin.yaml, optionally
// next to the font file it names.
package skin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
	game_log "github.com/ingyamilmolinar/keyoverlay/internal/log"
)

const (
	// BuiltinName is the catalog name of the compiled-in skin.
	BuiltinName = "Default (Built-in)"
	// FileName is the skin document inside each skin directory.
	FileName = "skin.yaml"

	loadConcurrency = 4
)

// Entry is one selectable skin.
type Entry struct {
	// Dir is the directory name under the skins root, or BuiltinName.
	Dir  string
	Skin model.Skin
	// FontPath is the resolved font file, empty when the skin names none.
	FontPath string
}

func builtinEntry() Entry {
	return Entry{Dir: BuiltinName, Skin: model.DefaultSkin()}
}

// Catalog is the set of skins available under one root directory. The
// built-in skin is always present and always first.
type Catalog struct {
	root    string
	logger  *game_log.Logger
	entries []Entry
}

func NewCatalog(root string, logger *game_log.Logger) *Catalog {
	if logger == nil {
		logger = game_log.Discard()
	}
	return &Catalog{
		root:    root,
		logger:  logger,
		entries: []Entry{builtinEntry()},
	}
}

// Root returns the skins directory.
func (c *Catalog) Root() string { return c.root }

// Refresh rescans the root. Skins that fail to load are logged and left out;
// a missing root leaves only the built-in skin.
func (c *Catalog) Refresh(ctx context.Context) error {
	dirs, err := os.ReadDir(c.root)
	if errors.Is(err, fs.ErrNotExist) {
		c.logger.Infof("[SKIN] no skins directory at %s, using built-in skin only", c.root)
		c.entries = []Entry{builtinEntry()}
		return nil
	}
	if err != nil {
		return fmt.Errorf("scan skins: %w", err)
	}

	var candidates []string
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(c.root, d.Name(), FileName)); err == nil {
			candidates = append(candidates, d.Name())
		}
	}

	loaded := make([]*Entry, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, dir := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e, err := c.load(dir)
			if err != nil {
				c.logger.Warnf("[SKIN] skipping %s: %v", dir, err)
				return nil
			}
			loaded[i] = &e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load skins: %w", err)
	}

	entries := []Entry{builtinEntry()}
	for _, e := range loaded {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	sort.SliceStable(entries[1:], func(i, j int) bool { return entries[1+i].Dir < entries[1+j].Dir })
	c.entries = entries
	c.logger.Infof("[SKIN] %d skins available in %s", len(entries)-1, c.root)
	return nil
}

func (c *Catalog) load(dir string) (Entry, error) {
	path := filepath.Join(c.root, dir, FileName)
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", path, err)
	}
	e := Entry{Dir: dir, Skin: s}
	if s.FontFile != "" {
		font := filepath.Join(c.root, dir, s.FontFile)
		if _, err := os.Stat(font); err == nil {
			e.FontPath = font
		} else {
			c.logger.Warnf("[SKIN] %s: font %s not found, using built-in font", dir, s.FontFile)
		}
	}
	return e, nil
}

// Names lists every selectable skin in display order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Dir
	}
	return names
}

// Lookup returns the skin stored under dir.
func (c *Catalog) Lookup(dir string) (Entry, bool) {
	for _, e := range c.entries {
		if e.Dir == dir {
			return e, true
		}
	}
	return Entry{}, false
}

// Initial picks the startup skin: preferred when present, else a discovered
// skin named "Default", else the first discovered one, else the built-in.
func (c *Catalog) Initial(preferred string) Entry {
	if e, ok := c.Lookup(preferred); ok {
		return e
	}
	discovered := c.entries[1:]
	for _, e := range discovered {
		if e.Skin.Name == "Default" {
			return e
		}
	}
	if len(discovered) > 0 {
		return discovered[0]
	}
	return c.entries[0]
}

// Save writes s to <root>/<dir>/skin.yaml, replacing any existing file.
func (c *Catalog) Save(dir string, s model.Skin) error {
	if dir == "" || dir == BuiltinName || filepath.Base(dir) != dir {
		return fmt.Errorf("save skin: invalid directory name %q", dir)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("save skin: %w", err)
	}
	target := filepath.Join(c.root, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("save skin: %w", err)
	}
	tmp, err := os.CreateTemp(target, ".skin-*.yaml")
	if err != nil {
		return fmt.Errorf("save skin: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := Encode(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("save skin: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save skin: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(target, FileName)); err != nil {
		return fmt.Errorf("save skin: %w", err)
	}
	c.logger.Infof("[SKIN] saved %q to %s", s.Name, target)
	return nil
}
