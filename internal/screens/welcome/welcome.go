// Package welcome is the first screen: a title banner and the player-name
// prompt.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemarcade/internal/router"
	"github.com/abhisek/stemarcade/internal/screen"
	"github.com/abhisek/stemarcade/internal/ui/components"
	"github.com/abhisek/stemarcade/internal/ui/layout"
	"github.com/abhisek/stemarcade/internal/ui/theme"
)

const (
	tickInterval = 300 * time.Millisecond
	nameLimit    = 24
)

var sparkleFrames = []string{"★", "✦", "✧", "✦"}

type tickMsg time.Time

// WelcomeScreen asks for the player's name, then replaces itself with the
// screen built by next.
type WelcomeScreen struct {
	next         func(player string) screen.Screen
	input        components.TextInput
	tickCount    int
	nameMissing  bool
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen with the name input prefilled with player.
func New(player string, next func(player string) screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		next:  next,
		input: components.NewTextInput("your name", player, nameLimit),
	}
}

func (w *WelcomeScreen) Title() string {
	return "Welcome"
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		w.tickCount++
		if w.transitioned {
			return w, nil
		}
		return w, tick()

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return w, w.submit()
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	if w.input.Value() != "" {
		w.nameMissing = false
	}
	return w, cmd
}

func (w *WelcomeScreen) submit() tea.Cmd {
	name := w.input.Value()
	if name == "" {
		w.nameMissing = true
		return nil
	}
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next(name)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
	sparkleStyle := lipgloss.NewStyle().Foreground(theme.Accent)

	sections := []string{
		RenderBanner(width),
		"",
		sparkleStyle.Render(sparkle) + "  " +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Build, count, and code your way to a high score!") +
			"  " + sparkleStyle.Render(sparkle),
		"",
		theme.Body.Render("Who's playing?"),
		w.input.View(),
	}
	if w.nameMissing {
		sections = append(sections, theme.Incorrect.Render("Type a name first"))
	} else {
		sections = append(sections, theme.Hint.Render("press enter to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
