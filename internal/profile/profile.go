// Package profile loads and saves the user's settings file with viper.
// Every key can be overridden from the environment with the KEYOVERLAY_
// prefix, e.g. KEYOVERLAY_KEY_SIZE=90 or KEYOVERLAY_WINDOW_WIDTH=1024.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ingyamilmolinar/keyoverlay/core/model"
)

const envPrefix = "KEYOVERLAY"

// Window holds host window options.
type Window struct {
	Width       int
	Height      int
	Transparent bool
	Floating    bool
}

// Settings is everything the profile file configures: the overlay Profile
// plus options that only the host reads.
type Settings struct {
	Profile      model.Profile
	LogLevel     string
	InputBackend string
	SkinsDir     string
	ShowFPS      bool
	Window       Window
}

const (
	BackendEbiten = "ebiten"
	BackendEvdev  = "evdev"
)

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{
		Profile:      model.DefaultProfile(),
		LogLevel:     "info",
		InputBackend: BackendEbiten,
		SkinsDir:     "Skins",
		Window:       Window{Width: 800, Height: 600},
	}
}

// Validate checks the overlay profile and host options.
func (s Settings) Validate() error {
	var errs []error
	if err := s.Profile.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.InputBackend != BackendEbiten && s.InputBackend != BackendEvdev {
		errs = append(errs, fmt.Errorf("profile.input-backend must be %q or %q (got %q)", BackendEbiten, BackendEvdev, s.InputBackend))
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("profile.window must have a positive size (got %dx%d)", s.Window.Width, s.Window.Height))
	}
	return errors.Join(errs...)
}

// DefaultPath returns $HOME/.config/keyoverlay/profile.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "keyoverlay", "profile.yml"), nil
}

type fileKey struct {
	Label   string `mapstructure:"label"`
	Binding string `mapstructure:"binding"`
}

type fileWindow struct {
	Width       int  `mapstructure:"width"`
	Height      int  `mapstructure:"height"`
	Transparent bool `mapstructure:"transparent"`
	Floating    bool `mapstructure:"floating"`
}

type fileSettings struct {
	Fading           bool    `mapstructure:"fading"`
	Counter          bool    `mapstructure:"counter"`
	KeySize          float64 `mapstructure:"key-size"`
	Margin           float64 `mapstructure:"margin"`
	OutlineThickness float64 `mapstructure:"outline-thickness"`
	FPS              int     `mapstructure:"fps"`

	TapEffects        bool          `mapstructure:"tap-effects"`
	TapEffectDuration time.Duration `mapstructure:"tap-effect-duration"`
	TapEffectScale    float64       `mapstructure:"tap-effect-scale"`

	Glitch          bool    `mapstructure:"glitch"`
	GlitchFrequency float64 `mapstructure:"glitch-frequency"`
	GlitchPalette   string  `mapstructure:"glitch-palette"`

	Pixelation bool `mapstructure:"pixelation"`
	PixelSize  int  `mapstructure:"pixel-size"`

	AudioReactive bool    `mapstructure:"audio-reactive"`
	BeatBPM       float64 `mapstructure:"beat-bpm"`

	Keys []fileKey `mapstructure:"keys"`
	Skin string    `mapstructure:"skin"`

	LogLevel     string     `mapstructure:"log-level"`
	InputBackend string     `mapstructure:"input-backend"`
	SkinsDir     string     `mapstructure:"skins-dir"`
	ShowFPS      bool       `mapstructure:"show-fps"`
	Window       fileWindow `mapstructure:"window"`
}

// values flattens s into viper keys.
func values(s Settings) map[string]interface{} {
	p := s.Profile
	keys := make([]map[string]interface{}, len(p.Keys))
	for i, k := range p.Keys {
		keys[i] = map[string]interface{}{"label": k.Label, "binding": k.Binding.String()}
	}
	return map[string]interface{}{
		"fading":              p.Fading,
		"counter":             p.Counter,
		"key-size":            p.KeySize,
		"margin":              p.Margin,
		"outline-thickness":   p.OutlineThickness,
		"fps":                 p.FPS,
		"tap-effects":         p.EnableTapEffects,
		"tap-effect-duration": p.TapEffectDuration,
		"tap-effect-scale":    p.TapEffectScale,
		"glitch":              p.EnableGlitch,
		"glitch-frequency":    p.GlitchFrequency,
		"glitch-palette":      p.GlitchPalette.String(),
		"pixelation":          p.EnablePixelation,
		"pixel-size":          p.PixelSize,
		"audio-reactive":      p.AudioReactive,
		"beat-bpm":            p.BeatBPM,
		"keys":                keys,
		"skin":                p.Skin,
		"log-level":           s.LogLevel,
		"input-backend":       s.InputBackend,
		"skins-dir":           s.SkinsDir,
		"show-fps":            s.ShowFPS,
		"window.width":        s.Window.Width,
		"window.height":       s.Window.Height,
		"window.transparent":  s.Window.Transparent,
		"window.floating":     s.Window.Floating,
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for k, val := range values(Defaults()) {
		v.SetDefault(k, val)
	}
	v.SetConfigFile(path)
	return v
}

func (f fileSettings) toSettings() (Settings, error) {
	palette, err := model.ParseGlitchPalette(f.GlitchPalette)
	if err != nil {
		return Settings{}, fmt.Errorf("profile.glitch-palette: %w", err)
	}
	keys := make([]model.KeySpec, 0, len(f.Keys))
	for i, k := range f.Keys {
		b, err := model.ParseBinding(k.Binding)
		if err != nil {
			return Settings{}, fmt.Errorf("profile.keys[%d]: %w", i, err)
		}
		label := k.Label
		if label == "" {
			label, _ = b.KeyName()
		}
		keys = append(keys, model.KeySpec{Label: label, Binding: b})
	}
	return Settings{
		Profile: model.Profile{
			Fading:            f.Fading,
			Counter:           f.Counter,
			KeySize:           f.KeySize,
			Margin:            f.Margin,
			OutlineThickness:  f.OutlineThickness,
			FPS:               f.FPS,
			EnableTapEffects:  f.TapEffects,
			TapEffectDuration: f.TapEffectDuration,
			TapEffectScale:    f.TapEffectScale,
			EnableGlitch:      f.Glitch,
			GlitchFrequency:   f.GlitchFrequency,
			GlitchPalette:     palette,
			EnablePixelation:  f.Pixelation,
			PixelSize:         f.PixelSize,
			AudioReactive:     f.AudioReactive,
			BeatBPM:           f.BeatBPM,
			Keys:              keys,
			Skin:              f.Skin,
		},
		LogLevel:     f.LogLevel,
		InputBackend: strings.ToLower(f.InputBackend),
		SkinsDir:     f.SkinsDir,
		ShowFPS:      f.ShowFPS,
		Window: Window{
			Width:       f.Window.Width,
			Height:      f.Window.Height,
			Transparent: f.Window.Transparent,
			Floating:    f.Window.Floating,
		},
	}, nil
}

// Load reads path on top of the defaults and environment. A missing file is
// not an error.
func Load(path string) (Settings, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("read profile %s: %w", path, err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (Settings, error) {
	var f fileSettings
	if err := v.Unmarshal(&f); err != nil {
		return Settings{}, fmt.Errorf("decode profile: %w", err)
	}
	s, err := f.toSettings()
	if err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes s to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	v := viper.New()
	for k, val := range values(s) {
		v.Set(k, val)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("save profile %s: %w", path, err)
	}
	return nil
}
