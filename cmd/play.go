package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codequiz/internal/config"
	"github.com/abhisek/codequiz/internal/problem"
	"github.com/abhisek/codequiz/internal/screen"
	"github.com/abhisek/codequiz/internal/screens/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice quiz of one problem type",
	Long:  "Start a free-play quiz directly. Practice quizzes do not count as level attempts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, _ := cmd.Flags().GetString("type")
		t, err := problem.ParseType(typeName)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		if count < 0 {
			return fmt.Errorf("--count must be >= 0")
		}

		return runApp(cmd, func(deps quiz.Deps, cfg *config.Config) screen.Screen {
			if count == 0 {
				count = cfg.Session.ProblemCount
			}
			return quiz.New(deps, t, count)
		})
	},
}

func init() {
	playCmd.Flags().String("type", "ox", "Problem type: ox, multiple-choice, fill-blank, debugging")
	playCmd.Flags().Int("count", 0, "Number of problems (default session.problem_count)")
}
