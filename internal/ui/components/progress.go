package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemarcade/internal/ui/theme"
)

// ProgressBar displays a horizontal bar with an optional trailing label.
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string
	Width   int
	Fill    lipgloss.Style
}

// NewProgressBar creates a progress bar filled with the secondary color.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Width:   width,
		Fill:    lipgloss.NewStyle().Background(theme.Secondary),
	}
}

// Countdown builds the session timer bar: it drains as time runs out and
// changes color near the end.
func Countdown(remaining, total, width int) ProgressBar {
	pct := 0.0
	if total > 0 {
		pct = float64(remaining) / float64(total)
	}
	p := NewProgressBar("⏱", pct, width)
	p.Suffix = fmt.Sprintf("%d:%02d", remaining/60, remaining%60)
	p.Fill = lipgloss.NewStyle().Background(theme.Timer(remaining, total).GetForeground())
	return p
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  ")
	}

	labelWidth := lipgloss.Width(b.String())
	suffixWidth := 0
	if p.Suffix != "" {
		suffixWidth = lipgloss.Width(p.Suffix) + 2
	}

	barWidth := max(p.Width-labelWidth-suffixWidth, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	b.WriteString(p.Fill.Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)))

	if p.Suffix != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Suffix))
	}
	return b.String()
}
