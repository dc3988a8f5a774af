package catalog

import (
	"fmt"

	"github.com/jonathan/assessment-engine/internal/types"
)

// UnknownTaxonomyError is returned when no config is registered for a taxonomy.
// It indicates a deployment defect rather than bad user input.
type UnknownTaxonomyError struct {
	Taxonomy types.Taxonomy
}

func (e *UnknownTaxonomyError) Error() string {
	return fmt.Sprintf("no test config registered for taxonomy %q", e.Taxonomy)
}

// ConfigError represents an invalid static config
type ConfigError struct {
	Taxonomy types.Taxonomy
	Message  string
	Cause    error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid config %s: %s: %v", e.Taxonomy, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid config %s: %s", e.Taxonomy, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
