package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkin <username> <landmark>",
		Short: "Check in at a landmark",
		Long:  "Record a visit by a user at a landmark, timestamped now.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[1:], " ")

			v, err := newAPIClient().CheckIn(args[0], name)
			if err != nil {
				return fmt.Errorf("checking in: %w", err)
			}

			if isJSON() {
				return printJSON(out(cmd), v)
			}
			fmt.Fprintf(out(cmd), "Checked in at %s (%s)\n", v.LandmarkName, v.ID)
			return nil
		},
	}
}

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <username> <visit-id>",
		Short: "Remove a recorded visit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient().Undo(args[0], args[1]); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(out(cmd), map[string]interface{}{"id": args[1], "removed": true})
			}
			fmt.Fprintf(out(cmd), "Visit %s removed.\n", args[1])
			return nil
		},
	}
}

func newVisitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visits <username>",
		Short: "List a user's visits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			visits, err := newAPIClient().ListVisits(args[0])
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(out(cmd), visits)
			}
			return printVisits(out(cmd), visits)
		},
	}
}
