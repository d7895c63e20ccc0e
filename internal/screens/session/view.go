package session

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemarcade/internal/rewards"
	sess "github.com/abhisek/stemarcade/internal/session"
	"github.com/abhisek/stemarcade/internal/ui/components"
	"github.com/abhisek/stemarcade/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.errMsg != "":
		body = renderMessage(cw, "Something went wrong", s.errMsg, theme.Error)
	case s.confirmQuit:
		body = renderMessage(cw, "Quit this game?", "Your score will not be saved.", theme.Warning)
	case s.question == nil:
		body = renderMessage(cw, "Get ready!", "Building your questions...", theme.Secondary)
	default:
		body = s.renderQuestion(cw)
	}
	return components.CabinetFrame(body, width, height)
}

func (s *SessionScreen) renderQuestion(cw int) string {
	var sections []string

	progress := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", s.index+1, s.total))
	sections = append(sections, progress)
	sections = append(sections, components.Countdown(s.remaining, s.cfg.Duration, cw).View())

	card := s.choice.View()
	if s.question.Visual != nil {
		if v := renderVisual(s.question.Visual); v != "" {
			card = v + "\n\n" + card
		}
	}
	sections = append(sections, components.ArcadeCard(card, cw))

	if s.phase == sess.PhaseResult && s.outcome != nil {
		sections = append(sections, s.renderOutcome(cw))
	}
	return strings.Join(sections, "\n\n")
}

func (s *SessionScreen) renderOutcome(cw int) string {
	var lines []string
	if s.outcome.Correct {
		lines = append(lines, theme.Correct.Render(fmt.Sprintf("Correct! +%d", s.outcome.Points)))
	} else {
		lines = append(lines, theme.Incorrect.Render("Not quite. The answer is "+s.question.Answer))
	}
	if s.question.Explanation != "" {
		lines = append(lines, theme.Hint.Render(s.question.Explanation))
	}
	if c := s.celebration; c != nil {
		lines = append(lines, renderCelebration(*c))
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

func renderCelebration(c rewards.Celebration) string {
	text := fmt.Sprintf("%s %s %s: %s", c.Kind.Icon(), c.Rarity.DisplayName(), c.Kind.DisplayName(), c.Reason)
	return lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(text)
}

// renderVisual draws the optional question payload. Only bar charts are
// drawn; other payloads are ignored.
func renderVisual(v map[string]any) string {
	if v["chart"] != "bar" {
		return ""
	}
	labels, _ := v["labels"].([]string)
	values, _ := v["values"].([]int)
	if len(labels) == 0 || len(labels) != len(values) {
		return ""
	}

	peak, pad := 1, 0
	for i, n := range values {
		peak = max(peak, n)
		pad = max(pad, lipgloss.Width(labels[i]))
	}
	bar := lipgloss.NewStyle().Foreground(theme.Secondary)

	var b strings.Builder
	if title, ok := v["title"].(string); ok && title != "" {
		b.WriteString(theme.Subtitle.Render(title) + "\n")
	}
	for i, n := range values {
		width := max(n*20/peak, 1)
		fmt.Fprintf(&b, "%-*s %s %d\n", pad, labels[i], bar.Render(strings.Repeat("█", width)), n)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderMessage(cw int, title, detail string, accent color.Color) string {
	body := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(title) + "\n\n" + theme.Hint.Render(detail)
	return components.ArcadeCard(body, cw)
}
