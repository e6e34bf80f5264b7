// Package theme holds the dashboard color palette and shared styles.
package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the semantic palette of the dashboard.
type Theme struct {
	Base    lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Profit  lipgloss.Color
	Loss    lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
}

// Default uses the CharmTone palette.
var Default = Theme{
	Base:    lipgloss.Color("#201F26"),
	Surface: lipgloss.Color("#2D2C35"),
	Border:  lipgloss.Color("#4D4C57"),
	Muted:   lipgloss.Color("#858392"),
	Text:    lipgloss.Color("#DFDBDD"),
	Primary: lipgloss.Color("#6B50FF"),
	Accent:  lipgloss.Color("#FF60FF"),
	Profit:  lipgloss.Color("#00FFB2"),
	Loss:    lipgloss.Color("#E94090"),
	Warning: lipgloss.Color("#FFD300"),
	Info:    lipgloss.Color("#00CED1"),
}

// Label styles a field name.
func (t Theme) Label() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

// Value styles a plain field value.
func (t Theme) Value() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Text).Bold(true)
}

// Card is the bordered box around a dashboard section.
func (t Theme) Card() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
}

// Alert is the bordered box of a notification the user has to dismiss.
func (t Theme) Alert() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(t.Warning).
		Foreground(t.Text).
		Padding(1, 3)
}

// Signed colors a formatted profit/loss value by its sign. Zero and non-numeric
// text such as placeholders keep the plain value color.
func (t Theme) Signed(text string) lipgloss.Style {
	s := t.Value()
	v := strings.TrimPrefix(text, "$")
	switch {
	case strings.HasPrefix(v, "-"):
		return s.Foreground(t.Loss)
	case v == "" || strings.Trim(v, "0.") == "":
		return s
	case v[0] >= '0' && v[0] <= '9':
		return s.Foreground(t.Profit)
	}
	return s
}

// GradientText colors each line of text with a horizontal gradient between two colors.
func GradientText(text string, from, to lipgloss.Color) string {
	fr, fg, fb := rgb(from)
	tr, tg, tb := rgb(to)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		runes := []rune(line)
		n := len(runes)
		if n == 0 {
			continue
		}
		var sb strings.Builder
		for j, r := range runes {
			pos := 0.0
			if n > 1 {
				pos = float64(j) / float64(n-1)
			}
			c := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x",
				lerp(fr, tr, pos), lerp(fg, tg, pos), lerp(fb, tb, pos)))
			sb.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(r)))
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func lerp(from, to uint8, pos float64) uint8 {
	return uint8(math.Round(float64(from) + pos*float64(int(to)-int(from))))
}

func rgb(c lipgloss.Color) (uint8, uint8, uint8) {
	hex := strings.TrimPrefix(string(c), "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	var r, g, b uint8
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
