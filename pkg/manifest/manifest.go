// Package manifest records how a project was scaffolded.
package manifest

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/sprout-cli/sprout/pkg/errors"
)

// FileName is the manifest file written into the scaffolded project
const FileName = "sprout.toml"

// Manifest describes one scaffolding run
type Manifest struct {
	Project   string    `toml:"project"`
	Template  string    `toml:"template"`
	Features  []string  `toml:"features"`
	CreatedAt time.Time `toml:"created_at"`
}

// Write stores the manifest in the project directory
func Write(projectDir string, m Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, errors.ErrWriteFailed, "failed to encode manifest")
	}

	path := filepath.Join(projectDir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrWriteFailed, "failed to write %s", path)
	}
	return nil
}

// Read loads the manifest from a scaffolded project
func Read(projectDir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, FileName))
	if err != nil {
		return Manifest{}, errors.Wrap(err, errors.ErrWriteFailed, "failed to read manifest")
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, errors.Wrap(err, errors.ErrWriteFailed, "failed to decode manifest")
	}
	return m, nil
}
