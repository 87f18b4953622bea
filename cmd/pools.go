package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/codequiz/internal/problem"
)

var poolsCmd = &cobra.Command{
	Use:   "pools",
	Short: "Validate the built-in problem pools and show their sizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := problem.LoadEmbedded()
		if err != nil {
			return err
		}
		return printPools(cmd.OutOrStdout(), repo)
	},
}

func printPools(w io.Writer, repo *problem.Repository) error {
	total := 0
	for _, t := range problem.AllTypes() {
		n := repo.Size(t)
		total += n
		if _, err := fmt.Fprintf(w, "%-18s %3d problems\n", t.DisplayName(), n); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%-18s %3d problems\n", "Total", total)
	return err
}
