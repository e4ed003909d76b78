package modules

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/sprout-cli/sprout/pkg/errors"
	"github.com/sprout-cli/sprout/pkg/logging"
)

// Pruner deletes unselected module subtrees through a synthfs pipeline
type Pruner struct {
	logger   zerolog.Logger
	registry *Registry
}

// NewPruner creates a pruner over the module registry
func NewPruner(registry *Registry) *Pruner {
	return &Pruner{
		logger:   logging.GetLogger("modules.pruner"),
		registry: registry,
	}
}

// Prune removes every registered module subtree whose display name is
// not in keep. keepAll short-circuits to a no-op. Modules whose path is
// already absent are skipped, so pruning the same tree twice is safe.
// Must only run after a successful clone; projectRoot is that clone.
func (p *Pruner) Prune(ctx context.Context, projectRoot string, keep map[string]bool, keepAll bool) error {
	if keepAll {
		p.logger.Debug().Msg("All features selected, nothing to prune")
		return nil
	}

	var targets []string
	for _, m := range p.registry.Unselected(keep) {
		abs := filepath.Join(projectRoot, m.RelativePath)
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			p.logger.Debug().
				Str("module", m.DisplayName).
				Str("path", m.RelativePath).
				Msg("Module path already absent, skipping")
			continue
		}

		paths, err := subtreePaths(projectRoot, m.RelativePath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrPruneFailed,
				"failed to walk module %s", m.DisplayName)
		}

		p.logger.Info().
			Str("module", m.DisplayName).
			Str("path", m.RelativePath).
			Int("entries", len(paths)).
			Msg("Pruning unselected module")
		targets = append(targets, paths...)
	}

	if len(targets) == 0 {
		p.logger.Debug().Msg("No module paths to delete")
		return nil
	}

	pipeline := synthfs.NewMemPipeline()
	for i, relPath := range targets {
		opID := core.OperationID(fmt.Sprintf("prune-%d-%s", i, relPath))
		deleteOp := operations.NewDeleteOperation(opID, relPath)
		if err := pipeline.Add(synthfs.NewOperationsPackageAdapter(deleteOp)); err != nil {
			return errors.Wrap(err, errors.ErrPruneFailed,
				"failed to add delete operation to pipeline")
		}
	}

	executor := synthfs.NewExecutor()
	result := executor.Run(ctx, pipeline, filesystem.NewOSFileSystem(projectRoot))
	if result.GetError() != nil {
		return errors.Wrap(result.GetError(), errors.ErrPruneFailed,
			"failed to delete module subtrees")
	}

	return nil
}

// subtreePaths lists a module subtree as deletable entries relative to
// the project root: files first, directories deepest-first, so every
// directory is empty by the time its delete operation runs.
func subtreePaths(projectRoot, relativePath string) ([]string, error) {
	root := filepath.Join(projectRoot, relativePath)

	var files, dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(projectRoot, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, rel)
		} else {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// WalkDir yields directories top-down; reverse for bottom-up deletes
	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}

	return append(files, dirs...), nil
}
