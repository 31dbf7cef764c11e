// CUE schema validation code
package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

// schemaDefinition is the closed definition a tile config must satisfy.
const schemaDefinition = "#Tile"

// ValidateWithCue validates YAML config bytes against a CUE schema.
func ValidateWithCue(configYAML, cueSchema []byte) error {
	ctx := cuecontext.New()

	file, err := yaml.Extract("config.yaml", configYAML)
	if err != nil {
		return fmt.Errorf("cannot parse YAML config: %w", err)
	}
	configVal := ctx.BuildFile(file)
	if configVal.Err() != nil {
		return fmt.Errorf("cannot build YAML config: %w", configVal.Err())
	}

	schemaVal := ctx.CompileBytes(cueSchema)
	if schemaVal.Err() != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", schemaVal.Err())
	}
	def := schemaVal.LookupPath(cue.ParsePath(schemaDefinition))
	if !def.Exists() {
		return fmt.Errorf("CUE schema has no %s definition", schemaDefinition)
	}

	// Merge values with schema
	final := def.Unify(configVal)
	if final.Err() != nil {
		return fmt.Errorf("schema unify failed: %w", final.Err())
	}

	// Validate final structure
	if err := final.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
