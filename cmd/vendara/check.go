package main

import (
	"log/slog"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/vendara/vendara/internal/access"
	"github.com/vendara/vendara/internal/rbac"

	"github.com/vendara/vendara/pkg/errutil"
)

// checkConfig holds flags for the check subcommand.
type checkConfig struct {
	username    string
	minRole     string
	permissions []string
	requireAll  bool
}

// NewCheckCmd creates the check subcommand.
func NewCheckCmd() *cobra.Command {
	cfg := &checkConfig{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate an access decision for a user",
		Long: `Evaluate a combined role-floor and permission check for a user,
printing the structured decision. Exits non-zero when access is denied.

Examples:
  vendara check --user cashier --permissions product:create
  vendara check --user manager --min-role moderator --permissions system:settings --all`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.username, "user", "", "username to evaluate (required)")
	cmd.Flags().StringVar(&cfg.minRole, "min-role", "", "minimum required role")
	cmd.Flags().StringSliceVar(&cfg.permissions, "permissions", nil, "required permissions")
	cmd.Flags().BoolVar(&cfg.requireAll, "all", false, "require all permissions instead of any")
	_ = cmd.MarkFlagRequired("user") //nolint:errcheck // Flag is registered above.

	return cmd
}

func runCheck(cmd *cobra.Command, cfg *checkConfig) error {
	ctx := cmd.Context()
	d, err := buildDeps(ctx, cmd.Flags())
	if err != nil {
		errutil.LogError(slog.Default(), "failed to build dependencies", err)
		return err
	}
	defer d.Close()

	req := access.Requirement{RequireAll: cfg.requireAll}
	if cfg.minRole != "" {
		role, err := rbac.ParseRole(cfg.minRole)
		if err != nil {
			return err
		}
		req.MinRole = role
	}
	for _, raw := range cfg.permissions {
		p, err := rbac.ParsePermission(raw)
		if err != nil {
			return err
		}
		req.Permissions = append(req.Permissions, p)
	}

	user, err := d.store.GetByUsername(ctx, cfg.username)
	if err != nil {
		// No authenticated identity: substitute a no-access decision
		// instead of asking the engine to evaluate a missing user.
		cmd.Printf("denied: no identity for username %q\n", cfg.username)
		return oops.Code("ACCESS_DENIED").Errorf("access denied")
	}

	res := d.engine.CanAccess(ctx, user, req)
	cmd.Println(res.String())
	if !res.Granted() {
		return oops.Code("ACCESS_DENIED").Errorf("access denied")
	}
	return nil
}
