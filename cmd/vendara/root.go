package main

import (
	"github.com/spf13/cobra"

	"github.com/vendara/vendara/internal/logging"
)

// Global flags available to all subcommands.
var (
	configFile string
	logFormat  string
)

// NewRootCmd creates the root command for the vendara CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendara",
		Short: "Vendara - access control for the Vendara POS platform",
		Long: `Vendara evaluates role-based access decisions for the Vendara
point-of-sale platform: role hierarchy, permission resolution with
inheritance, custom grants and explicit denials, and the role
assignment policy.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.SetDefault("vendara", version, logFormat)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format: json or text")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewRolesCmd())
	cmd.AddCommand(NewEffectiveCmd())
	cmd.AddCommand(NewAssignableCmd())
	cmd.AddCommand(NewValidateConfigCmd())

	return cmd
}
