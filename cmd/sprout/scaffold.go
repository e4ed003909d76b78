package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sprout-cli/sprout/internal/version"
	"github.com/sprout-cli/sprout/pkg/access"
	"github.com/sprout-cli/sprout/pkg/config"
	"github.com/sprout-cli/sprout/pkg/envfile"
	"github.com/sprout-cli/sprout/pkg/gitops"
	"github.com/sprout-cli/sprout/pkg/installer"
	"github.com/sprout-cli/sprout/pkg/logging"
	"github.com/sprout-cli/sprout/pkg/modules"
	"github.com/sprout-cli/sprout/pkg/prompt"
	"github.com/sprout-cli/sprout/pkg/runtimever"
	"github.com/sprout-cli/sprout/pkg/scaffold"
	"github.com/sprout-cli/sprout/pkg/schema"
	"github.com/sprout-cli/sprout/pkg/secrets"
	"github.com/sprout-cli/sprout/pkg/style"
	"github.com/sprout-cli/sprout/pkg/ui"
)

// parseArgs resolves the positional [repoType] [projectName] contract:
// a recognized repoType becomes the explicit override, anything else is
// the project name.
func parseArgs(args []string, defaultProject string) (*access.Label, string) {
	var override *access.Label
	projectName := defaultProject

	if len(args) > 0 {
		if label, ok := access.ParseLabel(args[0]); ok {
			override = &label
			if len(args) > 1 {
				projectName = args[1]
			}
		} else {
			projectName = args[0]
		}
	}

	return override, projectName
}

func runScaffold(ctx context.Context, args []string) error {
	logger := logging.GetLogger("cmd.scaffold")
	format := ui.Resolve(ui.FormatAuto, os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		fatal(style.RenderError(err, format))
		return err
	}

	override, projectName := parseArgs(args, cfg.Templates.DefaultProject)
	logger.Info().
		Str("project", projectName).
		Bool("override", override != nil).
		Msg("Starting scaffold")

	fmt.Println(ui.Banner(version.Version, format))

	// Preconditions run before the pipeline touches anything
	if err := runtimever.Probe(ctx, cfg.Runtime.Command, cfg.Runtime.MinimumVersion); err != nil {
		fatal(style.RenderError(err, format))
		return err
	}

	var collector schema.Collector = prompt.NewCollector()
	if defaults {
		collector = prompt.NewDefaultsCollector()
	}

	renderer := style.NewStageRenderer(format)
	orchestrator := scaffold.New(scaffold.Options{
		Config:      cfg,
		ProjectName: projectName,
		Override:    override,
		Resolver: access.NewResolver(access.NewProber(),
			cfg.Templates.GrowthRepo, cfg.Templates.StarterRepo),
		Collector: collector,
		Cloner:    gitops.NewCloner(),
		Runner:    installer.NewRunner(cfg.Install, cfg.Launch),
		Pruner:    modules.NewPruner(modules.NewRegistry(cfg)),
		Materializer: envfile.NewMaterializer(
			envfile.PolicyFromConfig(cfg.Env), secrets.NewGenerator(), cfg.Env.OpenAccessFlag),
		Events: renderer.Sink(),
	})

	result, err := orchestrator.Run(ctx)
	if err != nil {
		fatal(style.RenderError(err, format))
		return err
	}

	fmt.Println(ui.NextSteps(filepath.Base(result.ProjectDir), string(result.Source.Label), format))

	if result.LaunchErr != nil {
		// Setup itself succeeded; the launch failure is informational
		fmt.Fprintln(os.Stderr, style.RenderError(result.LaunchErr, format))
	}

	return nil
}
