package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/stemarcade/internal/clock"
	"github.com/abhisek/stemarcade/internal/config"
	"github.com/abhisek/stemarcade/internal/problemgen"
	"github.com/abhisek/stemarcade/internal/rewards"
	"github.com/abhisek/stemarcade/internal/session"
	"github.com/abhisek/stemarcade/internal/store"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play sessions with bots to exercise a game preset",
	Long: `Run several bot players against a game preset concurrently. Each bot
answers correctly with the given probability. The countdown runs at --tick
per second so expiry paths are exercised too.

Results are printed; pass --record to store them like real sessions.`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.String("game", "fraction-pizza", "Game preset to play")
	f.Int("sessions", 4, "Number of bot sessions")
	f.Int("parallel", 4, "Sessions to run at once")
	f.Float64("accuracy", 0.7, "Probability a bot answers correctly (0..1)")
	f.Duration("tick", 10*time.Millisecond, "Wall time of one countdown second")
	f.Duration("think", 2*time.Millisecond, "Bot delay before each answer")
	f.Uint64("seed", 0, "Base seed; session i uses seed+i (0 = random)")
	f.Bool("record", false, "Record results in the database and leaderboard")
}

type botParams struct {
	id       int
	cfg      session.Config
	accuracy float64
	think    time.Duration
	seed     uint64
	sink     rewards.Sink
}

func runSimulate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	game, _ := flags.GetString("game")
	sessions, _ := flags.GetInt("sessions")
	parallel, _ := flags.GetInt("parallel")
	accuracy, _ := flags.GetFloat64("accuracy")
	tick, _ := flags.GetDuration("tick")
	think, _ := flags.GetDuration("think")
	seed, _ := flags.GetUint64("seed")
	record, _ := flags.GetBool("record")

	if sessions < 1 {
		return fmt.Errorf("sessions must be positive, got %d", sessions)
	}
	if accuracy < 0 || accuracy > 1 {
		return fmt.Errorf("accuracy must be within 0..1, got %v", accuracy)
	}

	closeLog, err := setupLogging(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	presets, err := loadPresets()
	if err != nil {
		return err
	}
	preset, err := presets.Find(game)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, presets.Names())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	engineOpts := []session.Option{
		session.WithClockOptions(clock.WithInterval(tick)),
		session.WithLogger(slog.Default()),
	}
	var sink rewards.Sink
	if record {
		opts, st, cleanup, err := recordingOptions(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		engineOpts = append(engineOpts, opts...)
		sink = st
	}

	results := make([]session.ProgressSummary, sessions)
	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i := range sessions {
		p := botParams{
			id:       i + 1,
			cfg:      preset.SessionConfig(),
			accuracy: accuracy,
			think:    think,
			sink:     sink,
		}
		if seed != 0 {
			p.seed = seed + uint64(i)
			p.cfg.Seed = p.seed
		}
		g.Go(func() error {
			sum, err := playBot(gctx, p, engineOpts)
			if err != nil {
				return fmt.Errorf("bot %d: %w", p.id, err)
			}
			results[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSimulation(cmd.OutOrStdout(), preset, results)
	return nil
}

// recordingOptions opens the stores a real session would write to.
func recordingOptions(ctx context.Context) ([]session.Option, *store.Store, func(), error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, nil, err
	}
	progress := session.ProgressStores{st}
	rs, closeRedis, err := openRedis(ctx)
	if err != nil {
		slog.Warn("leaderboard unavailable", "error", err)
		closeRedis = func() {}
	} else if rs != nil {
		progress = append(progress, rs)
	}

	opts := []session.Option{
		session.WithProgressStore(progress),
		session.WithAnswerRecorder(st),
		session.WithSessionEventRecorder(st),
	}
	cleanup := func() {
		closeRedis()
		st.Close()
	}
	return opts, st, cleanup, nil
}

// playBot runs one session to completion and returns its summary.
func playBot(ctx context.Context, p botParams, base []session.Option) (session.ProgressSummary, error) {
	completed := make(chan session.ProgressSummary, 1)
	listener := session.ListenerFuncs{
		Completed: func(sum session.ProgressSummary) {
			select {
			case completed <- sum:
			default:
			}
		},
	}

	opts := append([]session.Option{}, base...)
	opts = append(opts,
		session.WithListener(listener),
		session.WithPlayer(fmt.Sprintf("bot-%d", p.id)),
		session.WithRewards(rewards.NewService(p.sink, slog.Default())),
	)
	eng := session.NewEngine(opts...)
	defer eng.Close()

	if err := eng.Start(ctx, p.cfg); err != nil {
		return session.ProgressSummary{}, err
	}
	rng := problemgen.NewRand(p.seed)

	// Each pass makes one transition; Completed blocks on the listener.
	for {
		st, err := eng.Snapshot(ctx)
		if err != nil {
			return session.ProgressSummary{}, err
		}

		switch st.Phase {
		case session.PhaseActive:
			if p.think > 0 {
				time.Sleep(p.think)
			}
			q := st.CurrentQuestion()
			answer := q.Answer
			if rng.Float64() >= p.accuracy {
				answer = wrongChoice(q)
			}
			_, err = eng.SubmitAnswer(ctx, answer)
		case session.PhaseResult:
			err = eng.Advance(ctx)
		case session.PhaseCompleted:
			select {
			case sum := <-completed:
				return sum, nil
			case <-ctx.Done():
				return session.ProgressSummary{}, ctx.Err()
			}
		default:
			return session.ProgressSummary{}, fmt.Errorf("unexpected phase %s", st.Phase)
		}

		// The clock may expire the session between Snapshot and the call.
		if err != nil && !errors.Is(err, session.ErrPrecondition) {
			return session.ProgressSummary{}, err
		}
	}
}

func wrongChoice(q *problemgen.Question) string {
	for _, c := range q.Choices {
		if c != q.Answer {
			return c
		}
	}
	return ""
}

func printSimulation(w io.Writer, preset config.Preset, results []session.ProgressSummary) {
	fmt.Fprintf(w, "%s: %d sessions\n\n", preset.Title, len(results))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tSCORE\tANSWERED\tCORRECT\tBEST STREAK\tELAPSED\tENDED")
	var total, expired int
	for _, r := range results {
		ended := "finished"
		if r.Expired {
			ended = "time up"
			expired++
		}
		fmt.Fprintf(tw, "%s\t%d\t%d/%d\t%d\t%d\t%ds\t%s\n",
			r.Player, r.FinalScore, r.QuestionsAnswered, r.QuestionsTotal,
			r.CorrectAnswers, r.BestStreak, r.ElapsedSeconds, ended)
		total += r.FinalScore
	}
	tw.Flush()

	fmt.Fprintf(w, "\nAverage score: %.1f  Expired: %d\n", float64(total)/float64(len(results)), expired)
}
