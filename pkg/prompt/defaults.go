package prompt

import (
	"github.com/sprout-cli/sprout/pkg/schema"
)

// DefaultsCollector answers every visible question with its default,
// without touching the terminal. Used for --yes runs.
type DefaultsCollector struct{}

// NewDefaultsCollector creates the non-interactive collector
func NewDefaultsCollector() *DefaultsCollector {
	return &DefaultsCollector{}
}

// Collect returns the schema defaults
func (c *DefaultsCollector) Collect(s *schema.Schema) (schema.Answers, error) {
	return s.Defaults(), nil
}
