package skin

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/ingyamilmolinar/keyoverlay/core/easing"
	"github.com/ingyamilmolinar/keyoverlay/core/model"
)

// colorValue accepts "#rgb", "#rrggbb", "#rrggbbaa" or {r, g, b, a}.
type colorValue model.Color

func parseHexColor(s string) (model.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return model.Color{}, fmt.Errorf("color %q: bad alpha: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return model.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return model.Color{R: r, G: g, B: b, A: alpha}, nil
}

func formatHexColor(c model.Color) string {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A != 255 {
		hex += fmt.Sprintf("%02x", c.A)
	}
	return hex
}

func (c *colorValue) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		v, err := parseHexColor(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		*c = colorValue(v)
		return nil
	case yaml.MappingNode:
		m := struct {
			R uint8  `yaml:"r"`
			G uint8  `yaml:"g"`
			B uint8  `yaml:"b"`
			A *uint8 `yaml:"a"`
		}{}
		if err := n.Decode(&m); err != nil {
			return err
		}
		v := model.Color{R: m.R, G: m.G, B: m.B, A: 255}
		if m.A != nil {
			v.A = *m.A
		}
		*c = colorValue(v)
		return nil
	}
	return fmt.Errorf("line %d: colour must be a hex string or an r/g/b/a map", n.Line)
}

func (c colorValue) MarshalYAML() (interface{}, error) {
	return formatHexColor(model.Color(c)), nil
}

type fileAnimation struct {
	Enabled          bool          `yaml:"enabled"`
	PressDuration    time.Duration `yaml:"press_duration"`
	ReleaseDuration  time.Duration `yaml:"release_duration"`
	TargetScalePress float64       `yaml:"target_scale_press"`
	PressEasing      string        `yaml:"press_easing"`
	ReleaseEasing    string        `yaml:"release_easing"`
}

type fileColors struct {
	Background     colorValue `yaml:"background"`
	KeyDefault     colorValue `yaml:"key_default"`
	KeyPressed     colorValue `yaml:"key_pressed"`
	KeyOutline     colorValue `yaml:"key_outline"`
	KeyLabel       colorValue `yaml:"key_label"`
	Counter        colorValue `yaml:"counter"`
	Glitch         colorValue `yaml:"glitch"`
	TapEffect      colorValue `yaml:"tap_effect"`
	TapEffectShape string     `yaml:"tap_effect_shape"`
}

type filePanel struct {
	Background        colorValue `yaml:"background"`
	Text              colorValue `yaml:"text"`
	HeaderText        colorValue `yaml:"header_text"`
	ControlBackground colorValue `yaml:"control_background"`
	ControlOutline    colorValue `yaml:"control_outline"`
	ControlText       colorValue `yaml:"control_text"`
	ControlAccent     colorValue `yaml:"control_accent"`
	ButtonBackground  colorValue `yaml:"button_background"`
	ButtonText        colorValue `yaml:"button_text"`
	ButtonHover       colorValue `yaml:"button_hover"`
	DirtyIndicator    colorValue `yaml:"dirty_indicator"`
}

// fileSkin is the on-disk layout of skin.yaml.
type fileSkin struct {
	Name        string        `yaml:"name"`
	Author      string        `yaml:"author,omitempty"`
	Description string        `yaml:"description,omitempty"`
	FontFile    string        `yaml:"font_file,omitempty"`
	KeyShape    string        `yaml:"key_shape"`
	Animation   fileAnimation `yaml:"animation"`
	Colors      fileColors    `yaml:"colors"`
	Panel       filePanel     `yaml:"panel"`
}

func toFile(s model.Skin) fileSkin {
	a := s.Animation
	p := s.Panel
	return fileSkin{
		Name:        s.Name,
		Author:      s.Author,
		Description: s.Description,
		FontFile:    s.FontFile,
		KeyShape:    s.KeyShape.String(),
		Animation: fileAnimation{
			Enabled:          a.Enabled,
			PressDuration:    a.PressDuration,
			ReleaseDuration:  a.ReleaseDuration,
			TargetScalePress: a.TargetPressScale,
			PressEasing:      a.PressEasing.String(),
			ReleaseEasing:    a.ReleaseEasing.String(),
		},
		Colors: fileColors{
			Background:     colorValue(s.Background),
			KeyDefault:     colorValue(s.KeyDefault),
			KeyPressed:     colorValue(s.KeyPressed),
			KeyOutline:     colorValue(s.KeyOutline),
			KeyLabel:       colorValue(s.KeyLabel),
			Counter:        colorValue(s.Counter),
			Glitch:         colorValue(s.Glitch),
			TapEffect:      colorValue(s.TapEffect),
			TapEffectShape: s.TapShape.String(),
		},
		Panel: filePanel{
			Background:        colorValue(p.Background),
			Text:              colorValue(p.Text),
			HeaderText:        colorValue(p.HeaderText),
			ControlBackground: colorValue(p.ControlBackground),
			ControlOutline:    colorValue(p.ControlOutline),
			ControlText:       colorValue(p.ControlText),
			ControlAccent:     colorValue(p.ControlAccent),
			ButtonBackground:  colorValue(p.ButtonBackground),
			ButtonText:        colorValue(p.ButtonText),
			ButtonHover:       colorValue(p.ButtonHover),
			DirtyIndicator:    colorValue(p.DirtyIndicator),
		},
	}
}

func (f fileSkin) toModel() model.Skin {
	a := f.Animation
	c := f.Colors
	p := f.Panel
	return model.Skin{
		Name:        f.Name,
		Author:      f.Author,
		Description: f.Description,
		FontFile:    f.FontFile,
		KeyShape:    model.ParseShape(f.KeyShape),
		Animation: model.Animation{
			Enabled:          a.Enabled,
			PressDuration:    a.PressDuration,
			ReleaseDuration:  a.ReleaseDuration,
			TargetPressScale: a.TargetScalePress,
			PressEasing:      easing.Parse(a.PressEasing),
			ReleaseEasing:    easing.Parse(a.ReleaseEasing),
		},
		Background: model.Color(c.Background),
		KeyDefault: model.Color(c.KeyDefault),
		KeyPressed: model.Color(c.KeyPressed),
		KeyOutline: model.Color(c.KeyOutline),
		KeyLabel:   model.Color(c.KeyLabel),
		Counter:    model.Color(c.Counter),
		Glitch:     model.Color(c.Glitch),
		TapEffect:  model.Color(c.TapEffect),
		TapShape:   model.ParseShape(c.TapEffectShape),
		Panel: model.PanelTheme{
			Background:        model.Color(p.Background),
			Text:              model.Color(p.Text),
			HeaderText:        model.Color(p.HeaderText),
			ControlBackground: model.Color(p.ControlBackground),
			ControlOutline:    model.Color(p.ControlOutline),
			ControlText:       model.Color(p.ControlText),
			ControlAccent:     model.Color(p.ControlAccent),
			ButtonBackground:  model.Color(p.ButtonBackground),
			ButtonText:        model.Color(p.ButtonText),
			ButtonHover:       model.Color(p.ButtonHover),
			DirtyIndicator:    model.Color(p.DirtyIndicator),
		},
	}
}

// Decode reads one skin document. Fields the document omits keep the
// built-in values; unknown fields are rejected.
func Decode(r io.Reader) (model.Skin, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return model.Skin{}, fmt.Errorf("read skin: %w", err)
	}
	f := toFile(model.DefaultSkin())
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return model.Skin{}, fmt.Errorf("decode skin yaml: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err == nil {
		return model.Skin{}, errors.New("decode skin yaml: unexpected trailing document")
	}
	s := f.toModel()
	if err := s.Validate(); err != nil {
		return model.Skin{}, err
	}
	return s, nil
}

// Encode writes s as a skin document.
func Encode(w io.Writer, s model.Skin) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toFile(s)); err != nil {
		return fmt.Errorf("encode skin yaml: %w", err)
	}
	return enc.Close()
}
