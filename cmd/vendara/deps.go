package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/vendara/vendara/internal/access"
	"github.com/vendara/vendara/internal/config"
	"github.com/vendara/vendara/internal/identity"
	"github.com/vendara/vendara/internal/rbac"
)

// deps wires the access stack for a CLI invocation: configuration, role
// registry, identity store, and the engine with audit logging attached.
type deps struct {
	cfg    *config.Config
	engine *access.Engine
	store  *identity.Store
	audit  *access.AuditLogger
}

// buildDeps loads configuration and assembles the engine and seeded
// identity store. Callers must Close the returned deps.
func buildDeps(ctx context.Context, flags *pflag.FlagSet) (*deps, error) {
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return nil, err
	}

	registry := rbac.DefaultRegistry()
	if cfg.CatalogFile != "" {
		registry, err = config.LoadCatalog(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
	}

	audit := access.NewAuditLogger(access.AuditMode(cfg.AuditMode), nil)
	engine := access.NewEngine(registry, access.WithAudit(audit))

	store := identity.NewStore(nil)
	seeds, err := cfg.SeedUsers()
	if err != nil {
		audit.Close()
		return nil, err
	}
	if err := identity.Seed(ctx, store, seeds); err != nil {
		audit.Close()
		return nil, err
	}

	return &deps{cfg: cfg, engine: engine, store: store, audit: audit}, nil
}

// Close drains the audit logger.
func (d *deps) Close() {
	d.audit.Close()
}
