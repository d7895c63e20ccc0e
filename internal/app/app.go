// Package app is the terminal front-end: a Bubble Tea program whose play
// screens drive session engines.
package app

import (
	"fmt"
	"log/slog"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stemarcade/internal/config"
	"github.com/abhisek/stemarcade/internal/rewards"
	"github.com/abhisek/stemarcade/internal/router"
	"github.com/abhisek/stemarcade/internal/screen"
	"github.com/abhisek/stemarcade/internal/screens/history"
	"github.com/abhisek/stemarcade/internal/screens/home"
	sessionscreen "github.com/abhisek/stemarcade/internal/screens/session"
	"github.com/abhisek/stemarcade/internal/screens/welcome"
	"github.com/abhisek/stemarcade/internal/session"
	"github.com/abhisek/stemarcade/internal/ui/layout"
)

// Options holds the dependencies of the front-end.
type Options struct {
	Player  string
	Presets config.Presets

	// EngineOptions are applied to every session engine, before the
	// player and listener options the app adds itself.
	EngineOptions []session.Option

	// History backs the history screen. Nil hides it.
	History history.Source

	// Rewards persists notable celebrations. Each engine gets its own
	// rewards.Service writing to it; nil keeps them in memory only.
	Rewards rewards.Sink

	Logger *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// sender delivers engine events to the running program. It is set after
// the program is created, before any engine starts.
type sender struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	engines []*session.Engine
}

func (s *sender) Send(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (s *sender) track(e *session.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engines = append(s.engines, e)
}

// closeAll stops every engine. Only safe once the program has exited,
// when sends no longer block.
func (s *sender) closeAll() {
	s.mu.Lock()
	engines := s.engines
	s.engines = nil
	s.mu.Unlock()
	for _, e := range engines {
		e.Close()
	}
}

func newAppModel(opts Options, out *sender) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	play := func(player string) func(p config.Preset) screen.Screen {
		return func(p config.Preset) screen.Screen {
			engineOpts := append([]session.Option{}, opts.EngineOptions...)
			engineOpts = append(engineOpts,
				session.WithPlayer(player),
				session.WithLogger(logger),
				session.WithRewards(rewards.NewService(opts.Rewards, logger)),
				session.WithListener(sessionscreen.Listener(out.Send)),
			)
			e := session.NewEngine(engineOpts...)
			out.track(e)
			logger.Debug("game selected", "game", p.Name, "player", player)
			return sessionscreen.New(e, p.Title, p.SessionConfig())
		}
	}

	var historyScreen func() screen.Screen
	if opts.History != nil {
		historyScreen = func() screen.Screen { return history.New(opts.History) }
	}

	root := welcome.New(opts.Player, func(player string) screen.Screen {
		return home.New(home.Options{
			Player:  player,
			Presets: opts.Presets,
			Play:    play(player),
			History: historyScreen,
		})
	})
	return AppModel{router: router.New(root)}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var status layout.Status
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(active.Title(), status, m.width)

	hints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits. Every
// session engine created along the way is closed before Run returns.
func Run(opts Options) error {
	out := &sender{}
	model := newAppModel(opts, out)

	p := tea.NewProgram(model)
	out.mu.Lock()
	out.send = p.Send
	out.mu.Unlock()

	final, err := p.Run()
	if m, ok := final.(AppModel); ok {
		m.router.CloseAll()
	}
	out.closeAll()
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
