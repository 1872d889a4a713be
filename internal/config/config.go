// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

// Package config loads Vendara configuration from an optional YAML file
// and command-line flags, flags taking precedence.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Default configuration values.
const (
	DefaultLogFormat = "json"
	DefaultAuditMode = "denials_only"
)

// SeedUserEntry configures one seeded demo account.
type SeedUserEntry struct {
	Username string   `koanf:"username"`
	Password string   `koanf:"password"`
	Role     string   `koanf:"role"`
	Custom   []string `koanf:"custom_permissions"`
	Denied   []string `koanf:"denied_permissions"`
}

// Config holds process configuration.
type Config struct {
	// LogFormat is "json" or "text".
	LogFormat string `koanf:"log_format"`

	// AuditMode is "denials_only" or "all".
	AuditMode string `koanf:"audit_mode"`

	// CatalogFile optionally overrides the shipped role catalog.
	CatalogFile string `koanf:"catalog_file"`

	// Users optionally overrides the default seed user table.
	Users []SeedUserEntry `koanf:"users"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.In("config").
			Code("INVALID_LOG_FORMAT").
			Errorf("log_format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if c.AuditMode != "denials_only" && c.AuditMode != "all" {
		return oops.In("config").
			Code("INVALID_AUDIT_MODE").
			Errorf("audit_mode must be 'denials_only' or 'all', got %q", c.AuditMode)
	}
	return nil
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when empty or missing), then flag overrides. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, oops.In("config").
					Code("CONFIG_LOAD_FAILED").
					With("path", path).
					Wrap(err)
			}
		} else if !os.IsNotExist(err) {
			return nil, oops.In("config").
				Code("CONFIG_LOAD_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		// Flag names use dashes; config keys use underscores.
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.In("config").
				Code("CONFIG_LOAD_FAILED").
				Wrap(err)
		}
	}

	cfg := &Config{
		LogFormat: DefaultLogFormat,
		AuditMode: DefaultAuditMode,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.In("config").
			Code("CONFIG_UNMARSHAL_FAILED").
			Wrap(err)
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.AuditMode == "" {
		cfg.AuditMode = DefaultAuditMode
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
