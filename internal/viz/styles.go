package viz

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/submoonsim/internal/stability"
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(48)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	sectionStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusRecording = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444")).
			Blink(true)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

var tierStyles = map[stability.Tier]lipgloss.Style{
	stability.TierHigh:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
	stability.TierMedium:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffcc00")),
	stability.TierLow:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff8800")),
	stability.TierVeryLow: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444")),
}

// Theme colors the bodies and orbit lines.
type Theme struct {
	Name    string
	Orbit   lipgloss.Color
	Star    lipgloss.Color
	Planet  lipgloss.Color
	Moon    lipgloss.Color
	Submoon lipgloss.Color
}

var Themes = []Theme{
	{
		Name:    "deep space",
		Orbit:   lipgloss.Color("#444466"),
		Star:    lipgloss.Color("#ffdd33"),
		Planet:  lipgloss.Color("#3388ff"),
		Moon:    lipgloss.Color("#cccccc"),
		Submoon: lipgloss.Color("#ff8844"),
	},
	{
		Name:    "retro",
		Orbit:   lipgloss.Color("#005500"),
		Star:    lipgloss.Color("#88ff88"),
		Planet:  lipgloss.Color("#00ff00"),
		Moon:    lipgloss.Color("#00cc00"),
		Submoon: lipgloss.Color("#ffff00"),
	},
	{
		Name:    "minimal",
		Orbit:   lipgloss.Color("#555555"),
		Star:    lipgloss.Color("#ffffff"),
		Planet:  lipgloss.Color("#ffffff"),
		Moon:    lipgloss.Color("#cccccc"),
		Submoon: lipgloss.Color("#0088ff"),
	},
}

func (t Theme) color(ink Ink) lipgloss.Color {
	switch ink {
	case InkOrbit:
		return t.Orbit
	case InkStar:
		return t.Star
	case InkPlanet:
		return t.Planet
	case InkMoon:
		return t.Moon
	case InkSubmoon:
		return t.Submoon
	default:
		return lipgloss.Color("#000000")
	}
}

// Styles maps every ink to a foreground style.
func (t Theme) Styles() map[Ink]lipgloss.Style {
	styles := make(map[Ink]lipgloss.Style, numInks)
	for ink := InkOrbit; ink < numInks; ink++ {
		styles[ink] = lipgloss.NewStyle().Foreground(t.color(ink))
	}
	return styles
}

// Palette is the GIF palette, indexed by Ink. Index 0 is the background.
func (t Theme) Palette() color.Palette {
	p := color.Palette{color.Black}
	for ink := InkOrbit; ink < numInks; ink++ {
		r, g, b := parseHex(string(t.color(ink)))
		p = append(p, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff})
	}
	return p
}

// ProgressBar renders a bar colored by how full it is.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent >= 0.8 {
		return SparkHigh.Render(bar)
	} else if percent >= 0.5 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}
