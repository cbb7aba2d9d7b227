package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ingyamilmolinar/keyoverlay/internal/profile"
	"github.com/ingyamilmolinar/keyoverlay/internal/skin"
)

func printStartupBanner(w io.Writer, s profile.Settings, configPath string, active skin.Entry) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	bold := lipgloss.NewStyle().Bold(true)

	on := green.Render("●")
	off := dim.Render("●")
	flag := func(enabled bool) string {
		if enabled {
			return on
		}
		return off
	}

	p := s.Profile
	labels := make([]string, len(p.Keys))
	for i, k := range p.Keys {
		labels[i] = k.Label
	}

	lines := []string{
		"",
		cyan.Bold(true).Render("    KeyOverlay"),
		"",
		dim.Render("    ─────────────────────────────────"),
		"",
		bold.Render("    Profile"),
		"",
		fmt.Sprintf("    %s  Config         %s", on, dim.Render(configPath)),
		fmt.Sprintf("    %s  Skin           %s", on, cyan.Render(active.Skin.Name)+" "+dim.Render("("+active.Dir+")")),
		fmt.Sprintf("    %s  Keys           %s", on, cyan.Render(strings.Join(labels, " "))),
		fmt.Sprintf("    %s  Input          %s", on, cyan.Render(s.InputBackend)),
		"",
		bold.Render("    Effects"),
		"",
		fmt.Sprintf("    %s  Tap effects", flag(p.EnableTapEffects)),
		fmt.Sprintf("    %s  Glitch         %s", flag(p.EnableGlitch), dim.Render(fmt.Sprintf("%.0f/s", p.GlitchFrequency))),
		fmt.Sprintf("    %s  Pixelation     %s", flag(p.EnablePixelation), dim.Render(fmt.Sprintf("%d px", p.PixelSize))),
		fmt.Sprintf("    %s  Audio reactive", flag(p.AudioReactive)),
		"",
		dim.Render("    Press F1 for settings."),
		"",
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}
