package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/codequiz/internal/progression"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog as a new player sees it",
	Long:  "List the level catalog with attempt budgets and unlock rules. Progress is kept per run, so this shows the starting state with the configured pass mark.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		tracker := progression.NewTracker(progression.DefaultCatalog(), cfg.Progression.PassAccuracy)
		return printLevels(cmd.OutOrStdout(), tracker)
	},
}

// printLevels writes the gate status of every level as a table, followed
// by the pass mark.
func printLevels(w io.Writer, tracker *progression.Tracker) error {
	gate, st := tracker.Gate(), tracker.State()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tTYPE\tPROBLEMS\tATTEMPTS\tSTATUS")
	for _, s := range gate.Overview(st) {
		attempts := "unlimited"
		if s.Level.MaxAttempts < progression.Unlimited {
			attempts = fmt.Sprintf("%d/%d", s.AttemptsRemaining, s.Level.MaxAttempts)
		}
		status := "open"
		switch {
		case s.Completed:
			status = "completed"
		case !s.Unlocked:
			status = s.Reason
		case !s.CanEnter:
			status = "no attempts left"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			s.Level.Name, s.Level.ProblemType.DisplayName(), s.Level.ProblemCount, attempts, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nPass mark: %d%% accuracy\n", tracker.PassAccuracy())
	return err
}
