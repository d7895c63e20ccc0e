package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/stemarcade/internal/config"
	"github.com/abhisek/stemarcade/internal/store"
	"github.com/abhisek/stemarcade/internal/store/redisstore"
)

// env holds STEMARCADE_* settings; flags that were set on the command line
// override them in PersistentPreRunE.
var env config.Config

var rootCmd = &cobra.Command{
	Use:   "stemarcade",
	Short: "Timed STEM quiz games in the terminal",
	Long: `STEM Arcade: timed quiz mini-games (bridge builder, fraction pizza, geometry
builder, graph explorer, pattern master, probability casino, code creator)
with procedurally generated questions, streak scoring and a countdown.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides STEMARCADE_DB)")
	pf.String("presets", "", "Path to a games YAML file (overrides STEMARCADE_PRESETS)")
	pf.String("redis-addr", "", "Redis address for leaderboards, e.g. localhost:6379 (overrides STEMARCADE_REDIS_ADDR)")
	pf.String("redis-password", "", "Redis password")
	pf.Int("redis-db", 0, "Redis database number")
	pf.String("player", "", "Player name (overrides STEMARCADE_PLAYER)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")
	pf.String("log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, target *string) {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}
	override("db", &cfg.DBPath)
	override("presets", &cfg.PresetsPath)
	override("redis-addr", &cfg.RedisAddr)
	override("redis-password", &cfg.RedisPassword)
	override("player", &cfg.Player)
	override("log-level", &cfg.LogLevel)
	override("log-format", &cfg.LogFormat)
	if flags.Changed("redis-db") {
		cfg.RedisDB, _ = flags.GetInt("redis-db")
	}
	env = cfg
	return nil
}

// setupLogging installs the default slog logger. Output goes to --log-file
// when set, otherwise to fallback.
func setupLogging(cmd *cobra.Command, fallback io.Writer) (func(), error) {
	var w io.Writer = fallback
	closeFn := func() {}
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	var logLevel slog.Level
	switch strings.ToLower(env.LogLevel) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(env.LogFormat) {
	case "json":
		logHandler = slog.NewJSONHandler(w, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(w, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
	return closeFn, nil
}

// resolveDBPath returns the database path: --db flag or STEMARCADE_DB, then
// the default XDG path.
func resolveDBPath() (string, error) {
	if env.DBPath != "" {
		return env.DBPath, store.EnsureDir(env.DBPath)
	}
	return store.DefaultDBPath()
}

func loadPresets() (config.Presets, error) {
	return config.LoadPresets(env.PresetsPath)
}

func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openRedis connects to the configured Redis, or returns nil when none is
// configured.
func openRedis(ctx context.Context) (*redisstore.Store, func(), error) {
	if !env.RedisEnabled() {
		return nil, func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
		DB:       env.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", env.RedisAddr, err)
	}
	return redisstore.New(client), func() { client.Close() }, nil
}

var errAborted = errors.New("aborted")
