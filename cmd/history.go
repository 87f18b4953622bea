package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codequiz/internal/screens/history"
	"github.com/abhisek/codequiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		repo := st.EventRepo()
		records, err := repo.QuerySessionSummaries(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No quizzes yet.")
			return nil
		}
		for _, rec := range records {
			fmt.Fprintln(out, history.FormatRecord(rec))
		}

		hintXP, err := repo.TotalHintXP(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nTotal XP spent on hints: %d\n", hintXP)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of quizzes to show (0 = all)")
}
