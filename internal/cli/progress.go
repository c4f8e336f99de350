package cli

import (
	"github.com/spf13/cobra"
)

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <username>",
		Short: "Show visit statistics and streaks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newAPIClient().Progress(args[0])
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(out(cmd), r)
			}
			return printReport(out(cmd), r)
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <username>",
		Short: "Show how much of the campus a user has seen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newAPIClient().Summary(args[0])
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(out(cmd), s)
			}
			printSummary(out(cmd), s)
			return nil
		},
	}
}
