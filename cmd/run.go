package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/stemarcade/internal/app"
	"github.com/abhisek/stemarcade/internal/session"
)

// runApp opens the stores, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	// The TUI owns the terminal, so logs go to --log-file or nowhere.
	closeLog, err := setupLogging(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	presets, err := loadPresets()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	progress := session.ProgressStores{st}
	rs, closeRedis, err := openRedis(ctx)
	if err != nil {
		slog.Warn("leaderboard unavailable", "error", err)
	} else {
		defer closeRedis()
		if rs != nil {
			progress = append(progress, rs)
		}
	}

	logger := slog.Default()
	opts := app.Options{
		Player:  env.Player,
		Presets: presets,
		History: st,
		Rewards: st,
		Logger:  logger,
		EngineOptions: []session.Option{
			session.WithProgressStore(progress),
			session.WithAnswerRecorder(st),
			session.WithSessionEventRecorder(st),
		},
	}
	if err := app.Run(opts); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}
