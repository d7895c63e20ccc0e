// Package summary shows the result of a finished game.
package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemarcade/internal/rewards"
	"github.com/abhisek/stemarcade/internal/router"
	"github.com/abhisek/stemarcade/internal/screen"
	"github.com/abhisek/stemarcade/internal/session"
	"github.com/abhisek/stemarcade/internal/ui/components"
	"github.com/abhisek/stemarcade/internal/ui/layout"
	"github.com/abhisek/stemarcade/internal/ui/theme"
)

// SummaryScreen displays a ProgressSummary and the celebrations earned.
type SummaryScreen struct {
	summary      session.ProgressSummary
	game         string
	completion   *rewards.Celebration
	celebrations []rewards.Celebration
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. completion and celebrations may be empty.
func New(sum session.ProgressSummary, game string, completion *rewards.Celebration, celebrations []rewards.Celebration) *SummaryScreen {
	return &SummaryScreen{
		summary:      sum,
		game:         game,
		completion:   completion,
		celebrations: celebrations,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Game Over"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

// Summary returns the summary being shown.
func (s *SummaryScreen) Summary() session.ProgressSummary {
	return s.summary
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)

	headline := "Game complete!"
	if sum.Expired {
		headline = "Time's up!"
	}

	var sections []string
	sections = append(sections, components.Banner(headline, cw))
	if s.game != "" {
		sections = append(sections, theme.Subtitle.Width(cw).Render(s.game))
	}

	score := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("★ %d points", sum.FinalScore))
	stats := []string{
		score,
		fmt.Sprintf("Answered %d of %d   Correct %d   Accuracy %.0f%%",
			sum.QuestionsAnswered, sum.QuestionsTotal, sum.CorrectAnswers, sum.Accuracy()*100),
		fmt.Sprintf("Best streak %d   Time %d:%02d", sum.BestStreak, sum.ElapsedSeconds/60, sum.ElapsedSeconds%60),
	}
	sections = append(sections, components.ArcadeCard(strings.Join(stats, "\n"), cw))

	bar := components.NewProgressBar("Completed", sum.CompletionRatio, cw)
	bar.Suffix = fmt.Sprintf("%.0f%%", sum.CompletionRatio*100)
	sections = append(sections, bar.View())

	if lines := s.rewardLines(); len(lines) > 0 {
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *SummaryScreen) rewardLines() []string {
	var all []rewards.Celebration
	if s.completion != nil {
		all = append(all, *s.completion)
	}
	all = append(all, s.celebrations...)

	lines := make([]string, 0, len(all))
	for _, c := range all {
		line := fmt.Sprintf("%s %s %s: %s", c.Kind.Icon(), c.Rarity.DisplayName(), c.Kind.DisplayName(), c.Reason)
		lines = append(lines, lipgloss.NewStyle().Foreground(rarityColor(c.Rarity)).Render(line))
	}
	return lines
}

// rarityColor returns the theme color for a celebration rarity.
func rarityColor(r rewards.Rarity) color.Color {
	switch r {
	case rewards.RarityRare:
		return theme.Secondary
	case rewards.RarityEpic:
		return theme.Primary
	case rewards.RarityLegendary:
		return theme.Accent
	default:
		return theme.Text
	}
}
