package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage explorers",
	}
	cmd.AddCommand(newUserAddCmd(), newUserListCmd(), newUserShowCmd(), newUserRemoveCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <username>",
		Short: "Add a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := newAPIClient().AddUser(args[0])
			if err != nil {
				return fmt.Errorf("adding user: %w", err)
			}
			if isJSON() {
				return printJSON(out(cmd), u)
			}
			fmt.Fprintf(out(cmd), "User added: %s\n", u.Username)
			return nil
		},
	}
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := newAPIClient().ListUsers()
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(out(cmd), users)
			}
			if len(users) == 0 {
				fmt.Fprintln(out(cmd), "No users found.")
				return nil
			}
			for _, u := range users {
				fmt.Fprintln(out(cmd), u.Username)
			}
			return nil
		},
	}
}

func newUserShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <username>",
		Short: "Show a user and their visits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := newAPIClient().GetUser(args[0])
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(out(cmd), u)
			}
			fmt.Fprintf(out(cmd), "User:    %s\n", u.Username)
			fmt.Fprintf(out(cmd), "Joined:  %s\n", u.CreatedAt.Local().Format("2006-01-02"))
			fmt.Fprintf(out(cmd), "Visits:  %d\n\n", len(u.Visits))
			return printVisits(out(cmd), u.Visits)
		},
	}
}

func newUserRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <username>",
		Aliases: []string{"remove"},
		Short:   "Remove a user and their visits",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient().DeleteUser(args[0]); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(out(cmd), map[string]interface{}{"username": args[0], "removed": true})
			}
			fmt.Fprintf(out(cmd), "User %s removed.\n", args[0])
			return nil
		},
	}
}
