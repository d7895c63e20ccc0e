// Package history lists finished games from the progress store.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemarcade/internal/router"
	"github.com/abhisek/stemarcade/internal/screen"
	"github.com/abhisek/stemarcade/internal/store"
	"github.com/abhisek/stemarcade/internal/ui/layout"
	"github.com/abhisek/stemarcade/internal/ui/theme"
)

// Limit caps how many games the screen lists.
const Limit = 50

// Source is the part of *store.Store the screen reads.
type Source interface {
	QuerySummaries(ctx context.Context, opts store.QueryOpts) ([]store.SummaryRecord, error)
	Totals(ctx context.Context) ([]store.GameTotals, error)
	SessionEvents(ctx context.Context, sessionID string) ([]store.SessionEventRecord, error)
}

type historyLoadedMsg struct {
	sessions []store.SummaryRecord
	totals   []store.GameTotals
	err      error
}

type eventsLoadedMsg struct {
	sessionID string
	events    []store.SessionEventRecord
}

// HistoryScreen displays past games and per-game totals.
type HistoryScreen struct {
	source   Source
	sessions []store.SummaryRecord
	totals   []store.GameTotals
	events   map[string][]store.SessionEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen reading from source.
func New(source Source) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		events:   make(map[string][]store.SessionEventRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	source := s.source
	return func() tea.Msg {
		ctx := context.Background()
		sessions, err := source.QuerySummaries(ctx, store.QueryOpts{Limit: Limit})
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		totals, err := source.Totals(ctx)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		return historyLoadedMsg{sessions: sessions, totals: totals}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.sessions = msg.sessions
			s.totals = msg.totals
		}
		s.loaded = true
		return s, nil

	case eventsLoadedMsg:
		s.events[msg.sessionID] = msg.events
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.sessions[s.selected].SessionID
			if _, ok := s.events[id]; s.expanded[s.selected] && !ok {
				return s, s.loadEvents(id)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadEvents(sessionID string) tea.Cmd {
	source := s.source
	return func() tea.Msg {
		events, err := source.SessionEvents(context.Background(), sessionID)
		if err != nil {
			events = nil
		}
		return eventsLoadedMsg{sessionID: sessionID, events: events}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No games yet. Pick one from the menu!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, t := range s.totals {
		line := fmt.Sprintf("%-20s %3d games   best %4d   avg completion %3.0f%%",
			t.Game, t.Sessions, t.BestScore, t.AvgCompletion*100)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Subtitle.Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		flag := ""
		if rec.Expired {
			flag = "  ⏱"
		}
		line := fmt.Sprintf("%s%s  %-18s %4d pts  %d/%d answered%s",
			prefix, rec.Timestamp.Format("Jan 02 15:04"), rec.Game, rec.FinalScore,
			rec.QuestionsAnswered, rec.QuestionsTotal, flag)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, detail := range s.details(rec) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(detail)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (s *HistoryScreen) details(rec store.SummaryRecord) []string {
	player := rec.Player
	if player == "" {
		player = "anonymous"
	}
	lines := []string{
		fmt.Sprintf("    player %s   correct %d   best streak %d   time %ds",
			player, rec.CorrectAnswers, rec.BestStreak, rec.ElapsedSeconds),
	}
	for _, ev := range s.events[rec.SessionID] {
		lines = append(lines, fmt.Sprintf("    %s  %s", ev.Timestamp.Format("15:04:05"), ev.Action))
	}
	return lines
}
