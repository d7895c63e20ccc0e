package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemarcade/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Hint     string // shown next to the selected item
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu rendered as arcade buttons.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{Items: items, Selected: selected}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu, one button per line.
func (m Menu) View(width int) string {
	selected := lipgloss.NewStyle().
		Width(width).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow)
	normal := lipgloss.NewStyle().Width(width).Foreground(theme.Text)
	disabled := lipgloss.NewStyle().Width(width).Foreground(theme.TextDim)
	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			b.WriteString(disabled.Render("   " + item.Label))
		case i == m.Selected:
			b.WriteString(selected.Render(" ▸ " + item.Label))
			if item.Hint != "" {
				b.WriteString("\n" + hint.Render("   "+item.Hint))
			}
		default:
			b.WriteString(normal.Render("   " + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
