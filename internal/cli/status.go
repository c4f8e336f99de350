package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection to the server",
		Long:  "Tests the connection to the configured API server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
	w := out(cmd)
	serverURL := getServerURL()

	err := newAPIClient().Health()

	if isJSON() {
		resp := map[string]interface{}{"server": serverURL, "reachable": err == nil}
		if err != nil {
			resp["error"] = err.Error()
		}
		return printJSON(w, resp)
	}

	fmt.Fprintf(w, "Server:  %s\n", serverURL)
	if err != nil {
		fmt.Fprintf(w, "Status:  ✗ cannot reach server (%v)\n", err)
		fmt.Fprintln(w, "\nRun 'ce serve' or 'ce config set-server <url>'.")
		return nil
	}
	fmt.Fprintln(w, "Status:  ✓ connected")
	return nil
}
