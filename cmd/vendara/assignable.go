package main

import (
	"github.com/spf13/cobra"
)

// NewAssignableCmd creates the assignable subcommand.
func NewAssignableCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "assignable",
		Short: "Print the roles a user may assign to others",
		Long: `Print the roles the given user may assign to other identities.
Only the top role in the hierarchy may assign roles, and it may never
assign that top role itself.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			d, err := buildDeps(ctx, cmd.Flags())
			if err != nil {
				return err
			}
			defer d.Close()

			user, err := d.store.GetByUsername(ctx, username)
			if err != nil {
				return err
			}

			roles := d.engine.AssignableRoles(user)
			if len(roles) == 0 {
				cmd.Printf("%s (role %s) may not assign roles\n", user.Username, user.Role)
				return nil
			}
			cmd.Printf("%s may assign:\n", user.Username)
			for _, r := range roles {
				cmd.Printf("  %s (level %d)\n", r, r.Level())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "username of the assigner (required)")
	_ = cmd.MarkFlagRequired("user") //nolint:errcheck // Flag is registered above.

	return cmd
}
