package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vendara/vendara/internal/config"
)

// NewValidateConfigCmd creates the validate-config subcommand.
func NewValidateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config <catalog.yaml>",
		Short: "Validate a role catalog file without evaluating anything",
		Long: `Validates a role catalog override file against the catalog JSON
Schema and the role model (unknown roles/permissions, undefined parents,
inheritance cycles). Exits with code 0 on success, non-zero on failure.

Useful in CI pipelines to catch catalog errors early:
  vendara validate-config catalog.yaml`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			registry, err := config.LoadCatalog(args[0])
			if err != nil {
				slog.Error("catalog validation failed", "path", args[0], "error", err)
				return err
			}
			slog.Info("catalog valid", "path", args[0], "roles", len(registry.Roles()))
			return nil
		},
	}
}
