package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemarcade/internal/ui/theme"
)

const bannerArt = `╔═╗╔╦╗╔═╗╔╦╗  ╔═╗╦═╗╔═╗╔═╗╔╦╗╔═╗
╚═╗ ║ ║╣ ║║║  ╠═╣╠╦╝║  ╠═╣ ║║║╣
╚═╝ ╩ ╚═╝╩ ╩  ╩ ╩╩╚═╚═╝╩ ╩═╩╝╚═╝`

const bannerCompact = "S T E M   A R C A D E"

// RenderBanner returns the title banner in the arcade yellow, falling back
// to spaced letters below 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
