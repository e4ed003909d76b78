// Package modules prunes unselected feature subtrees from a freshly
// cloned template.
package modules

import (
	"github.com/sprout-cli/sprout/pkg/config"
)

// FeatureModule is one independently removable subtree of the template
type FeatureModule struct {
	DisplayName  string
	RelativePath string
}

// Registry is the fixed name-to-path mapping of feature modules. It is
// built from configuration and not extensible at runtime.
type Registry struct {
	modules []FeatureModule
}

// NewRegistry builds the registry from the configured module list
func NewRegistry(cfg *config.Config) *Registry {
	modules := make([]FeatureModule, 0, len(cfg.Modules))
	for _, m := range cfg.Modules {
		modules = append(modules, FeatureModule{
			DisplayName:  m.Name,
			RelativePath: m.Path,
		})
	}
	return &Registry{modules: modules}
}

// Modules returns the registered feature modules in declaration order
func (r *Registry) Modules() []FeatureModule {
	return r.modules
}

// Unselected returns the modules whose display name is not in keep
func (r *Registry) Unselected(keep map[string]bool) []FeatureModule {
	var out []FeatureModule
	for _, m := range r.modules {
		if !keep[m.DisplayName] {
			out = append(out, m)
		}
	}
	return out
}
