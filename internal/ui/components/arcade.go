package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemarcade/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all arcade sections
// so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	// cabinet border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// CabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded-border card at the given content width.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(max(cw-2, 0)).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// Banner renders a bold centered line in the arcade yellow.
func Banner(text string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.ArcadeYellow).
		Render(text)
}
