package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/stemarcade/internal/rewards"
	"github.com/abhisek/stemarcade/internal/store"
	"github.com/abhisek/stemarcade/internal/store/redisstore"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent sessions, per-game totals and leaderboards",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent sessions to show")
	statsCmd.Flags().String("game", "", "Only show this game")
}

func runStats(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	game, _ := cmd.Flags().GetString("game")
	ctx := cmd.Context()

	closeLog, err := setupLogging(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()

	recent, err := st.QuerySummaries(ctx, store.QueryOpts{Limit: limit, Game: game})
	if err != nil {
		return err
	}
	printRecent(out, recent)

	totals, err := st.Totals(ctx)
	if err != nil {
		return err
	}
	printTotals(out, totals, game)

	accuracy, err := st.AccuracyByKind(ctx)
	if err != nil {
		return err
	}
	printAccuracy(out, accuracy)

	byKind, total, err := st.CelebrationCounts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nCelebrations: %d\n", total)
	for _, k := range rewards.AllKinds() {
		if n := byKind[string(k)]; n > 0 {
			fmt.Fprintf(out, "  %s %s: %d\n", k.Icon(), k.DisplayName(), n)
		}
	}

	rs, closeRedis, err := openRedis(ctx)
	if err != nil {
		slog.Warn("leaderboard unavailable", "error", err)
		return nil
	}
	defer closeRedis()
	if rs == nil {
		return nil
	}
	board := redisstore.AllGames
	if game != "" {
		board = game
	}
	top, err := rs.Top(ctx, board, env.LeaderboardSize)
	if err != nil {
		return err
	}
	printLeaderboard(out, board, top)
	return nil
}

func printRecent(w io.Writer, recs []store.SummaryRecord) {
	fmt.Fprintln(w, "Recent sessions")
	if len(recs) == 0 {
		fmt.Fprintln(w, "  (none yet)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  WHEN\tGAME\tPLAYER\tSCORE\tANSWERED\tCORRECT\tSTREAK\tENDED")
	for _, r := range recs {
		ended := "finished"
		if r.Expired {
			ended = "time up"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%d/%d\t%d\t%d\t%s\n",
			r.Timestamp.Local().Format("Jan 02 15:04"), r.Game, r.Player, r.FinalScore,
			r.QuestionsAnswered, r.QuestionsTotal, r.CorrectAnswers, r.BestStreak, ended)
	}
	tw.Flush()
}

func printTotals(w io.Writer, totals []store.GameTotals, game string) {
	fmt.Fprintln(w, "\nTotals by game")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  GAME\tSESSIONS\tTOTAL\tBEST\tAVG COMPLETION")
	shown := 0
	for _, t := range totals {
		if game != "" && t.Game != game {
			continue
		}
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%d\t%.0f%%\n", t.Game, t.Sessions, t.TotalScore, t.BestScore, 100*t.AvgCompletion)
		shown++
	}
	tw.Flush()
	if shown == 0 {
		fmt.Fprintln(w, "  (none yet)")
	}
}

func printAccuracy(w io.Writer, acc []store.KindAccuracy) {
	if len(acc) == 0 {
		return
	}
	fmt.Fprintln(w, "\nAccuracy by question kind")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, k := range acc {
		fmt.Fprintf(tw, "  %s\t%d/%d\t%.0f%%\n", k.Kind, k.Correct, k.Answered, 100*k.Accuracy())
	}
	tw.Flush()
}

func printLeaderboard(w io.Writer, board string, top []redisstore.Entry) {
	fmt.Fprintf(w, "\nLeaderboard (%s)\n", board)
	if len(top) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, e := range top {
		fmt.Fprintf(tw, "  %d.\t%s\t%d\n", i+1, e.Player, e.Score)
	}
	tw.Flush()
}
