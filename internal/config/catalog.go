// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package config

import (
	"encoding/json"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/vendara/vendara/internal/rbac"
)

// schemaCache holds the compiled catalog schema to avoid recompilation.
var schemaCache *jschema.Schema

// Catalog is the on-disk role catalog override format (YAML).
type Catalog struct {
	Roles []CatalogRole `yaml:"roles" json:"roles" jsonschema:"required"`
}

// CatalogRole is one role entry in a catalog file.
type CatalogRole struct {
	Role        string   `yaml:"role" json:"role" jsonschema:"required"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Permissions []string `yaml:"permissions" json:"permissions"`
	Inherits    []string `yaml:"inherits" json:"inherits"`
}

// CatalogSchemaID is the schema $id for catalog files.
const CatalogSchemaID = "https://vendara.dev/schemas/catalog.schema.json"

// GenerateCatalogSchema generates a JSON Schema from the Catalog struct.
func GenerateCatalogSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Catalog{})

	schema.ID = jsonschema.ID(CatalogSchemaID)
	schema.Title = "Vendara Role Catalog"
	schema.Description = "Schema for role catalog override files"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.In("config").Code("SCHEMA_MARSHAL_FAILED").Wrap(err)
	}
	return data, nil
}

// ValidateCatalog validates YAML catalog data against the JSON Schema.
func ValidateCatalog(data []byte) error {
	if len(data) == 0 {
		return oops.In("config").Code("CATALOG_EMPTY").Errorf("catalog data is empty")
	}

	var yamlData any
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return oops.In("config").Code("CATALOG_INVALID_YAML").Wrap(err)
	}

	jsonData := convertToJSONTypes(yamlData)

	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	if err := sch.Validate(jsonData); err != nil {
		return oops.In("config").Code("CATALOG_SCHEMA_VIOLATION").Wrap(err)
	}
	return nil
}

// LoadCatalog reads, validates, and compiles a catalog file into a
// role registry.
func LoadCatalog(path string) (*rbac.Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from operator configuration.
	if err != nil {
		return nil, oops.In("config").
			Code("CATALOG_READ_FAILED").
			With("path", path).
			Wrap(err)
	}
	if err := ValidateCatalog(data); err != nil {
		return nil, err
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, oops.In("config").Code("CATALOG_INVALID_YAML").Wrap(err)
	}
	return cat.Registry()
}

// Registry converts the catalog entries into a validated rbac.Registry.
func (c *Catalog) Registry() (*rbac.Registry, error) {
	defs := make([]rbac.RoleDefinition, 0, len(c.Roles))
	for _, entry := range c.Roles {
		role, err := rbac.ParseRole(entry.Role)
		if err != nil {
			return nil, err
		}
		perms := make([]rbac.Permission, 0, len(entry.Permissions))
		for _, raw := range entry.Permissions {
			p, err := rbac.ParsePermission(raw)
			if err != nil {
				return nil, err
			}
			perms = append(perms, p)
		}
		inherits := make([]rbac.Role, 0, len(entry.Inherits))
		for _, raw := range entry.Inherits {
			parent, err := rbac.ParseRole(raw)
			if err != nil {
				return nil, err
			}
			inherits = append(inherits, parent)
		}
		defs = append(defs, rbac.RoleDefinition{
			Role:        role,
			Name:        entry.Name,
			Description: entry.Description,
			Permissions: perms,
			Inherits:    inherits,
		})
	}
	return rbac.NewRegistry(defs)
}

// compiledSchema returns the cached compiled schema or compiles it.
func compiledSchema() (*jschema.Schema, error) {
	if schemaCache != nil {
		return schemaCache, nil
	}

	schemaBytes, err := GenerateCatalogSchema()
	if err != nil {
		return nil, err
	}

	var schemaData any
	if err := json.Unmarshal(schemaBytes, &schemaData); err != nil {
		return nil, oops.In("config").Code("SCHEMA_PARSE_FAILED").Wrap(err)
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("catalog.schema.json", schemaData); err != nil {
		return nil, oops.In("config").Code("SCHEMA_COMPILE_FAILED").Wrap(err)
	}
	sch, err := c.Compile("catalog.schema.json")
	if err != nil {
		return nil, oops.In("config").Code("SCHEMA_COMPILE_FAILED").Wrap(err)
	}

	schemaCache = sch
	return sch, nil
}

// convertToJSONTypes converts YAML-parsed data to JSON-compatible types.
// YAML uses map[string]any which is compatible, but nested structures
// need recursive handling.
func convertToJSONTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, inner := range val {
			result[k] = convertToJSONTypes(inner)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, inner := range val {
			result[i] = convertToJSONTypes(inner)
		}
		return result
	case string, int, int64, float64, bool, nil:
		return val
	default:
		if b, err := json.Marshal(val); err == nil {
			var result any
			if err := json.Unmarshal(b, &result); err == nil {
				return result
			}
		}
		return val
	}
}
