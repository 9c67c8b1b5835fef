package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/remivoice/remi/internal/quiz"
	"github.com/remivoice/remi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "remi",
	Short: "Remi, a memory companion for Alzheimer's patients",
	Long: "Remi runs short adaptive memory-check sessions: it asks questions, " +
		"grades spoken answers leniently, and adjusts difficulty to keep the " +
		"patient comfortable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return playCmd.RunE(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Local overrides, same precedence as the process environment.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides REMI_DB env var)")
	rootCmd.PersistentFlags().String("questions", "", "Path to a CSV question file (default: built-in questions)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger. Logs go to stderr so the TUI owns
// stdout. Level comes from REMI_LOG_LEVEL; --verbose forces debug.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("REMI_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then REMI_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, os.MkdirAll(filepath.Dir(p), 0o755)
	}
	return store.DefaultDBPath()
}

// loadQuestions returns the question bank from --questions, or the built-in
// set when the flag is empty.
func loadQuestions(cmd *cobra.Command) ([]quiz.Question, error) {
	path, _ := cmd.Flags().GetString("questions")
	if path == "" {
		return quiz.DefaultQuestions(), nil
	}
	qs, err := quiz.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return qs, nil
}
