package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "learnpath",
	Short:        "Adaptive mastery tracking and learning path recommendations",
	Long:         "learnpath tracks per-student concept mastery with Bayesian Knowledge Tracing and recommends what each student should learn next.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides LEARNPATH_DB env var)")
	flags.String("config", "", "Path to YAML config file")
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides LEARNPATH_LOG_LEVEL)")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file after the command")
	flags.Bool("json", false, "Print results as JSON")

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(masteryCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then LEARNPATH_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
