package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

//go:embed schema.json
var embeddedSchema string

const embeddedSchemaURL = "model-service.v1.schema.json"

// LoadAndValidate loads and validates the configuration.
// An empty schemaPath validates against the embedded schema.
func LoadAndValidate(path, schemaPath string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read config: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	schema, err := compileSchema(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to compile schema: %w", err)
	}

	if raw != nil {
		if err := schema.Validate(raw); err != nil {
			return nil, fmt.Errorf("config: config validation failed: %w", err)
		}
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal into Config struct: %w", err)
	}
	config.applyDefaults()

	return config, nil
}

// Load returns the defaults overlaid with the config file at path (when it
// exists or was explicitly requested) and then with environment variables.
func Load(path, schemaPath string, required bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			loaded, err := LoadAndValidate(path, schemaPath)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		case required || !os.IsNotExist(statErr):
			return nil, fmt.Errorf("config: failed to stat config: %w", statErr)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.Release.Extension = normalizeExtension(cfg.Release.Extension)
	cfg.Release.BaseURL = strings.TrimRight(cfg.Release.BaseURL, "/")

	return cfg, nil
}

func compileSchema(schemaPath string) (*jsonschema.Schema, error) {
	if schemaPath == "" {
		return jsonschema.CompileString(embeddedSchemaURL, embeddedSchema)
	}

	return jsonschema.Compile(schemaPath)
}

func normalizeExtension(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}

	return "." + ext
}
