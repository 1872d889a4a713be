package main

import (
	"github.com/spf13/cobra"

	"github.com/vendara/vendara/internal/rbac"
	"github.com/vendara/vendara/internal/session"
)

// effectiveConfig holds flags for the effective subcommand.
type effectiveConfig struct {
	username string
	filter   string
}

// NewEffectiveCmd creates the effective subcommand.
func NewEffectiveCmd() *cobra.Command {
	cfg := &effectiveConfig{}

	cmd := &cobra.Command{
		Use:   "effective",
		Short: "Print a user's effective permissions and their sources",
		Long: `Print the final resolved permission set for a user: role-derived
permissions union custom grants, minus explicit denials. Each permission
is annotated with its source (role or custom grant).

The optional --filter flag narrows output with a glob pattern using ':'
as the separator, e.g. "product:*" or "*:delete".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEffective(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.username, "user", "", "username to inspect (required)")
	cmd.Flags().StringVar(&cfg.filter, "filter", "", "glob pattern to filter permissions")
	_ = cmd.MarkFlagRequired("user") //nolint:errcheck // Flag is registered above.

	return cmd
}

func runEffective(cmd *cobra.Command, cfg *effectiveConfig) error {
	ctx := cmd.Context()
	d, err := buildDeps(ctx, cmd.Flags())
	if err != nil {
		return err
	}
	defer d.Close()

	user, err := d.store.GetByUsername(ctx, cfg.username)
	if err != nil {
		return err
	}

	var allowed map[rbac.Permission]bool
	if cfg.filter != "" {
		matched, err := rbac.PermissionsMatching(cfg.filter)
		if err != nil {
			return err
		}
		allowed = make(map[rbac.Permission]bool, len(matched))
		for _, p := range matched {
			allowed[p] = true
		}
	}

	sess := session.New(d.engine, user)
	sources := sess.Sources()

	cmd.Printf("%s: role %s (%s), %d effective permissions\n",
		user.Username, user.Role, sess.RoleName(), sess.PermissionCount())
	for _, p := range sess.EffectivePermissions() {
		if allowed != nil && !allowed[p] {
			continue
		}
		cmd.Printf("  %s (%s)\n", p, sources[p])
	}
	if len(user.DeniedPermissions) > 0 {
		cmd.Println("explicitly denied:")
		for _, p := range user.DeniedPermissions {
			cmd.Printf("  %s\n", p)
		}
	}
	return nil
}
