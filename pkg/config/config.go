// Package config loads sprout's configuration: embedded TOML defaults
// merged with an optional user override file from the XDG config dir.
// Template locations, the feature-module registry and the env key policy
// all live here, so extending any of them is a data change.
package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	sprouterr "github.com/sprout-cli/sprout/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// UserConfigFile is the name of the optional override file
const UserConfigFile = "sprout.toml"

// Runtime describes the runtime prerequisite gate
type Runtime struct {
	Command        string `koanf:"command"`
	MinimumVersion string `koanf:"minimum_version"`
}

// Templates holds the candidate template repositories
type Templates struct {
	GrowthRepo        string `koanf:"growth_repo"`
	StarterRepo       string `koanf:"starter_repo"`
	DefaultProject    string `koanf:"default_project"`
	Branch            string `koanf:"branch"`
	PlaceholderOrigin string `koanf:"placeholder_origin"`
}

// Command is an external command with its arguments
type Command struct {
	Command        string   `koanf:"command"`
	Args           []string `koanf:"args"`
	TimeoutMinutes int      `koanf:"timeout_minutes"`
}

// Module maps a feature display name to its subtree in the template
type Module struct {
	Name string `koanf:"name"`
	Path string `koanf:"path"`
}

// Env holds the environment-file policy data
type Env struct {
	ExampleFile    string            `koanf:"example_file"`
	OutputFile     string            `koanf:"output_file"`
	SecretKeys     []string          `koanf:"secret_keys"`
	OpenAccessFlag string            `koanf:"open_access_flag"`
	AnswerKeys     map[string]string `koanf:"answer_keys"`
}

// Config is the fully resolved configuration
type Config struct {
	Runtime   Runtime   `koanf:"runtime"`
	Templates Templates `koanf:"templates"`
	Install   Command   `koanf:"install"`
	Launch    Command   `koanf:"launch"`
	Modules   []Module  `koanf:"modules"`
	Env       Env       `koanf:"env"`
}

// rawBytesProvider implements a koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load resolves the configuration: embedded defaults first, then the
// user override file if one exists.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, sprouterr.Wrap(err, sprouterr.ErrConfigLoad, "failed to load embedded defaults")
	}

	userPath := filepath.Join(xdg.ConfigHome, "sprout", UserConfigFile)
	if _, err := os.Stat(userPath); err == nil {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, sprouterr.Wrapf(err, sprouterr.ErrConfigParse,
				"failed to load user config from %s", userPath)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, sprouterr.Wrap(err, sprouterr.ErrConfigParse, "failed to unmarshal config")
	}

	return &cfg, nil
}

// ModulePaths returns the registry as a displayName to relativePath map
func (c *Config) ModulePaths() map[string]string {
	paths := make(map[string]string, len(c.Modules))
	for _, m := range c.Modules {
		paths[m.Name] = m.Path
	}
	return paths
}

// ModuleNames returns the registered display names in declaration order
func (c *Config) ModuleNames() []string {
	names := make([]string, 0, len(c.Modules))
	for _, m := range c.Modules {
		names = append(names, m.Name)
	}
	return names
}
