package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/codequiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "codequiz",
	Short: "Gamified coding quizzes in your terminal",
	Long:  "CodeQuiz: a terminal quiz game for programming concepts: O/X, multiple choice, fill-in-the-blank and debugging levels.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CODEQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./config.yaml or $XDG_CONFIG_HOME/codequiz/config.yaml)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(poolsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db.path from config, then CODEQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
