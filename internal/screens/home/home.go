// Package home is the game menu.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemarcade/internal/config"
	"github.com/abhisek/stemarcade/internal/router"
	"github.com/abhisek/stemarcade/internal/screen"
	"github.com/abhisek/stemarcade/internal/ui/components"
	"github.com/abhisek/stemarcade/internal/ui/layout"
	"github.com/abhisek/stemarcade/internal/ui/theme"
)

// Options wires the menu to the rest of the program.
type Options struct {
	Player  string
	Presets config.Presets

	// Play builds the session screen for a game.
	Play func(p config.Preset) screen.Screen

	// History builds the history screen. Nil hides the entry.
	History func() screen.Screen
}

// HomeScreen lists the games.
type HomeScreen struct {
	opts Options
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen with one entry per preset, then History and Exit.
func New(opts Options) *HomeScreen {
	items := make([]components.MenuItem, 0, len(opts.Presets)+2)
	for _, p := range opts.Presets {
		items = append(items, components.MenuItem{
			Label: strings.ToUpper(p.Title),
			Hint:  describe(p),
			Action: func() tea.Cmd {
				s := opts.Play(p)
				return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "HISTORY",
			Disabled: opts.History == nil,
			Action: func() tea.Cmd {
				s := opts.History()
				return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
			},
		},
		components.MenuItem{
			Label:  "EXIT GAME",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	return &HomeScreen{opts: opts, menu: components.NewMenu(items)}
}

func describe(p config.Preset) string {
	text := fmt.Sprintf("%d questions · %ds · %s", p.Questions, p.Duration, p.Difficulty)
	if p.Description != "" {
		text = p.Description + " (" + text + ")"
	}
	return text
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{components.Banner("PICK A GAME", cw)}
	if h.opts.Player != "" {
		sections = append(sections, theme.Subtitle.Width(cw).Render("Player: "+h.opts.Player))
	}
	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(h.menu.View(cw)))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
