// Package scaffold sequences a scaffolding run: resolve template
// access, validate the destination, collect answers, clone, install,
// prune and materialize. Stages run strictly in order; the first
// failure terminates the run and a partial project directory is left
// in place for inspection.
package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/sprout-cli/sprout/pkg/access"
	"github.com/sprout-cli/sprout/pkg/config"
	"github.com/sprout-cli/sprout/pkg/errors"
	"github.com/sprout-cli/sprout/pkg/gitops"
	"github.com/sprout-cli/sprout/pkg/installer"
	"github.com/sprout-cli/sprout/pkg/logging"
	"github.com/sprout-cli/sprout/pkg/manifest"
	"github.com/sprout-cli/sprout/pkg/modules"
	"github.com/sprout-cli/sprout/pkg/schema"
)

// AccessResolver selects the template source for a run
type AccessResolver interface {
	Resolve(ctx context.Context, override *access.Label) (access.TemplateSource, access.Result, error)
}

// EnvMaterializer writes the final env file
type EnvMaterializer interface {
	Materialize(templatePath, destPath string, answers schema.Answers) error
}

// Options wires one scaffolding run
type Options struct {
	Config       *config.Config
	ProjectName  string
	Override     *access.Label // explicit repoType from the CLI, nil when absent
	Resolver     AccessResolver
	Collector    schema.Collector
	Cloner       gitops.Cloner
	Runner       installer.Runner
	Pruner       *modules.Pruner
	Materializer EnvMaterializer
	Events       EventSink
}

// Result is the outcome of a completed run
type Result struct {
	ProjectDir string
	Source     access.TemplateSource
	Answers    schema.Answers
	// LaunchErr reports a failed post-completion launch. The scaffold
	// itself succeeded when Run returns a nil error.
	LaunchErr error
}

// Orchestrator drives the pipeline
type Orchestrator struct {
	logger zerolog.Logger
	opts   Options
}

// New creates an orchestrator for one run
func New(opts Options) *Orchestrator {
	return &Orchestrator{
		logger: logging.GetLogger("scaffold"),
		opts:   opts,
	}
}

// Run executes the pipeline. Precondition failures (NO_ACCESS,
// DESTINATION_EXISTS) occur before any prompt or filesystem change;
// later failures may leave a partial directory behind, which is
// deliberately not cleaned up.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	opts := o.opts
	projectDir, err := filepath.Abs(opts.ProjectName)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot resolve project path")
	}

	var source access.TemplateSource
	err = o.step(StageResolvingAccess, func() error {
		var resolveErr error
		source, _, resolveErr = opts.Resolver.Resolve(ctx, opts.Override)
		return resolveErr
	})
	if err != nil {
		return nil, err
	}

	// The destination check precedes answer collection so a doomed run
	// never costs the user interactive input.
	err = o.step(StageValidatingPath, func() error {
		_, statErr := os.Stat(projectDir)
		switch {
		case statErr == nil:
			return errors.Newf(errors.ErrDestinationExists,
				"directory %s already exists, choose another project name", opts.ProjectName).
				WithDetail("path", projectDir)
		case os.IsNotExist(statErr):
			return nil
		default:
			// An unreadable parent would only fail later, mid-clone.
			return errors.Wrapf(statErr, errors.ErrInvalidInput,
				"cannot check project path %s", opts.ProjectName)
		}
	})
	if err != nil {
		return nil, err
	}

	questions := schema.ForProject(opts.Config, opts.ProjectName)
	var answers schema.Answers
	err = o.step(StageCollectingAnswers, func() error {
		if validateErr := questions.Validate(); validateErr != nil {
			return validateErr
		}
		collected, collectErr := opts.Collector.Collect(questions)
		if collectErr != nil {
			return collectErr
		}
		answers = questions.Sanitize(collected)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.step(StageCloning, func() error {
		if cloneErr := opts.Cloner.Clone(ctx, source.Identifier, opts.Config.Templates.Branch, projectDir); cloneErr != nil {
			return cloneErr
		}
		return opts.Cloner.ResetOrigin(projectDir, opts.Config.Templates.PlaceholderOrigin)
	})
	if err != nil {
		return nil, err
	}

	err = o.step(StageInstallingDeps, func() error {
		return opts.Runner.Install(ctx, projectDir)
	})
	if err != nil {
		return nil, err
	}

	keep, keepAll := schema.SelectedFeatures(opts.Config, answers)
	err = o.step(StagePruning, func() error {
		return opts.Pruner.Prune(ctx, projectDir, keep, keepAll)
	})
	if err != nil {
		return nil, err
	}

	err = o.step(StageMaterializingEnv, func() error {
		templatePath := filepath.Join(projectDir, opts.Config.Env.ExampleFile)
		destPath := filepath.Join(projectDir, opts.Config.Env.OutputFile)
		if envErr := opts.Materializer.Materialize(templatePath, destPath, answers); envErr != nil {
			return envErr
		}
		return manifest.Write(projectDir, manifest.Manifest{
			Project:   opts.ProjectName,
			Template:  string(source.Label),
			Features:  featureList(opts.Config, keep, keepAll),
			CreatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		ProjectDir: projectDir,
		Source:     source,
		Answers:    answers,
	}

	// Post-completion: launch is opt-in and its failure never reverts
	// the finished scaffold.
	if answers.String(schema.KeyLaunch) == schema.LaunchYes {
		result.LaunchErr = o.step(StageLaunching, func() error {
			return opts.Runner.Launch(ctx, projectDir)
		})
	}

	return result, nil
}

// step emits lifecycle events around one stage
func (o *Orchestrator) step(stage Stage, fn func() error) error {
	o.opts.Events.emit(Event{Stage: stage, Kind: StageStarted})
	o.logger.Debug().Str("stage", string(stage)).Msg("Stage started")

	if err := fn(); err != nil {
		o.opts.Events.emit(Event{Stage: stage, Kind: StageFailed, Err: err})
		o.logger.Error().Err(err).Str("stage", string(stage)).Msg("Stage failed")
		return err
	}

	o.opts.Events.emit(Event{Stage: stage, Kind: StageSucceeded})
	o.logger.Debug().Str("stage", string(stage)).Msg("Stage succeeded")
	return nil
}

// featureList names the features kept in this run, for the manifest
func featureList(cfg *config.Config, keep map[string]bool, keepAll bool) []string {
	if keepAll {
		return cfg.ModuleNames()
	}
	var names []string
	for _, name := range cfg.ModuleNames() {
		if keep[name] {
			names = append(names, name)
		}
	}
	return names
}
