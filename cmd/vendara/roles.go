package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewRolesCmd creates the roles subcommand.
func NewRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "roles",
		Short:        "Print the role catalog with levels and effective permissions",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := buildDeps(cmd.Context(), cmd.Flags())
			if err != nil {
				return err
			}
			defer d.Close()

			registry := d.engine.Registry()
			for _, def := range registry.Roles() {
				effective := registry.RolePermissions(def.Role)
				cmd.Printf("%s (level %d) - %s\n", def.Role, def.Role.Level(), def.Name)
				if def.Description != "" {
					cmd.Printf("  %s\n", def.Description)
				}
				if len(def.Inherits) > 0 {
					parents := make([]string, len(def.Inherits))
					for i, p := range def.Inherits {
						parents[i] = string(p)
					}
					cmd.Printf("  inherits: %s\n", strings.Join(parents, ", "))
				}
				cmd.Printf("  effective permissions (%d):\n", len(effective))
				for _, p := range effective.Sorted() {
					cmd.Printf("    %s\n", p)
				}
			}
			return nil
		},
	}
}
