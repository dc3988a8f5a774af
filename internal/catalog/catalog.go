// Package catalog holds the static TestConfig for every registered taxonomy.
// Configs are stored as JSON files, embedded at compile time, schema-checked
// and structurally validated once, then served read-only.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/assessment-engine/internal/schemas"
	"github.com/jonathan/assessment-engine/internal/types"
)

//go:embed configs/*.json
var configFiles embed.FS

var (
	loadOnce sync.Once
	configs  map[types.Taxonomy]*types.TestConfig
	loadErr  error
)

// Get returns the config registered for taxonomy. The returned config is shared
// and must not be modified.
func Get(taxonomy types.Taxonomy) (*types.TestConfig, error) {
	if err := Load(); err != nil {
		return nil, err
	}
	cfg, ok := configs[taxonomy]
	if !ok {
		return nil, &UnknownTaxonomyError{Taxonomy: taxonomy}
	}
	return cfg, nil
}

// MustGet returns the config for taxonomy, panicking if it is not registered.
// Use this only for taxonomies known at compile time.
func MustGet(taxonomy types.Taxonomy) *types.TestConfig {
	cfg, err := Get(taxonomy)
	if err != nil {
		panic(fmt.Sprintf("failed to load test config: %v", err))
	}
	return cfg
}

// Load parses and validates every embedded config. It runs once per process;
// later calls return the first result.
func Load() error {
	loadOnce.Do(func() {
		configs, loadErr = loadAll()
	})
	return loadErr
}

func loadAll() (map[types.Taxonomy]*types.TestConfig, error) {
	out := make(map[types.Taxonomy]*types.TestConfig, len(types.AllTaxonomies()))

	for _, taxonomy := range types.AllTaxonomies() {
		cfg, err := loadFile(taxonomy)
		if err != nil {
			return nil, err
		}
		out[taxonomy] = cfg
	}

	return out, nil
}

func loadFile(taxonomy types.Taxonomy) (*types.TestConfig, error) {
	filename := "configs/" + string(taxonomy) + ".json"
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return nil, &ConfigError{Taxonomy: taxonomy, Message: "config file not embedded", Cause: err}
	}

	if err := schemas.Validate(schemas.TestConfig, data); err != nil {
		return nil, &ConfigError{Taxonomy: taxonomy, Message: "config does not match schema", Cause: err}
	}

	var cfg types.TestConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Taxonomy: taxonomy, Message: "failed to parse config JSON", Cause: err}
	}

	if cfg.Taxonomy != taxonomy {
		return nil, &ConfigError{Taxonomy: taxonomy, Message: fmt.Sprintf("file declares taxonomy %q", cfg.Taxonomy)}
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
