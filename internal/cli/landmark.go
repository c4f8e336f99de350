package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/campus-explorer/internal/landmark"
)

func newLandmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "landmark",
		Aliases: []string{"landmarks"},
		Short:   "Manage the landmark catalog",
	}
	cmd.AddCommand(newLandmarkAddCmd(), newLandmarkListCmd(), newLandmarkRemoveCmd())
	return cmd
}

func newLandmarkAddCmd() *cobra.Command {
	var in landmark.Input

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a landmark",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = strings.Join(args, " ")

			l, err := newAPIClient().AddLandmark(in)
			if err != nil {
				return fmt.Errorf("adding landmark: %w", err)
			}

			if isJSON() {
				return printJSON(out(cmd), l)
			}
			fmt.Fprintf(out(cmd), "Landmark added: %s (%.5f, %.5f)\n", l.Name, l.Latitude, l.Longitude)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Description, "description", "", "short description")
	cmd.Flags().Float64Var(&in.Latitude, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&in.Longitude, "lon", 0, "longitude in degrees")

	return cmd
}

func newLandmarkListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List landmarks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			landmarks, err := newAPIClient().ListLandmarks()
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(out(cmd), landmarks)
			}
			return printLandmarkTable(out(cmd), landmarks)
		},
	}
}

func newLandmarkRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a landmark and all visits to it",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if err := newAPIClient().DeleteLandmark(name); err != nil {
				return err
			}

			if isJSON() {
				return printJSON(out(cmd), map[string]interface{}{"name": name, "removed": true})
			}
			fmt.Fprintf(out(cmd), "Landmark %q removed.\n", name)
			return nil
		},
	}
}
