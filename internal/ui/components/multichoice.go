package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemarcade/internal/ui/theme"
)

// MultiChoice is a numbered multiple-choice selector. Number keys pick an
// option directly; arrows move the highlight and Enter picks it. Once
// Revealed it shows which option was right and which was chosen.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int

	revealed bool
	correct  int
	chosen   int
}

// Choice is returned by Update when the player picks an option.
type Choice struct {
	Index int
	Value string
}

// NewMultiChoice creates a selector with the first option highlighted.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{Question: question, Options: options, correct: -1, chosen: -1}
}

// Update handles navigation. It reports a Choice when one is made; after
// Reveal it ignores input.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, *Choice) {
	if m.revealed {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		return m, m.choice(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(m.Options) {
				m.Selected = idx
				return m, m.choice(idx)
			}
		}
	}
	return m, nil
}

func (m MultiChoice) choice(idx int) *Choice {
	if idx < 0 || idx >= len(m.Options) {
		return nil
	}
	return &Choice{Index: idx, Value: m.Options[idx]}
}

// Reveal freezes the selector and marks the correct and chosen options.
func (m MultiChoice) Reveal(correct, chosen int) MultiChoice {
	m.revealed = true
	m.correct = correct
	m.chosen = chosen
	return m
}

// Revealed reports whether Reveal was called.
func (m MultiChoice) Revealed() bool { return m.revealed }

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.revealed && i == m.correct:
			style = theme.Correct
			line += "  ✓"
		case m.revealed && i == m.chosen:
			style = theme.Incorrect
			line += "  ✗"
		case m.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
