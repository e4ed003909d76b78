// pkg/scaffold/scaffold_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Filesystem (t.TempDir), stub collaborators
// PURPOSE: Test pipeline sequencing, preconditions and event emission

package scaffold_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sprout-cli/sprout/pkg/access"
	"github.com/sprout-cli/sprout/pkg/config"
	"github.com/sprout-cli/sprout/pkg/envfile"
	"github.com/sprout-cli/sprout/pkg/errors"
	"github.com/sprout-cli/sprout/pkg/manifest"
	"github.com/sprout-cli/sprout/pkg/modules"
	"github.com/sprout-cli/sprout/pkg/scaffold"
	"github.com/sprout-cli/sprout/pkg/schema"
	"github.com/sprout-cli/sprout/pkg/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Templates: config.Templates{
			GrowthRepo:  "https://example.com/growth.git",
			StarterRepo: "https://example.com/starter.git",
			Branch:      "main",
		},
		Modules: []config.Module{
			{Name: "File storage", Path: "server/modules/storage"},
			{Name: "Email", Path: "server/modules/email"},
		},
		Env: config.Env{
			ExampleFile:    ".env.example",
			OutputFile:     ".env",
			SecretKeys:     []string{"JWT_SECRET"},
			OpenAccessFlag: "DISABLE_AUTH",
			AnswerKeys:     map[string]string{"MONGO_URI": "mongoUri"},
		},
	}
}

type stubResolver struct {
	source access.TemplateSource
	err    error
	calls  int
}

func (r *stubResolver) Resolve(_ context.Context, _ *access.Label) (access.TemplateSource, access.Result, error) {
	r.calls++
	return r.source, access.Result{}, r.err
}

type stubCollector struct {
	answers schema.Answers
	err     error
	calls   int
}

func (c *stubCollector) Collect(_ *schema.Schema) (schema.Answers, error) {
	c.calls++
	return c.answers, c.err
}

// fakeCloner materializes a minimal template tree instead of hitting
// the network
type fakeCloner struct {
	err        error
	noTemplate bool
}

func (c *fakeCloner) Clone(_ context.Context, _, _, dest string) error {
	if c.err != nil {
		return c.err
	}
	for _, dir := range []string{"server/modules/storage", "server/modules/email"} {
		if err := os.MkdirAll(filepath.Join(dest, dir), 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(filepath.Join(dest, "server/modules/storage/index.js"), []byte("// stub\n"), 0644); err != nil {
		return err
	}
	if c.noTemplate {
		return nil
	}
	env := "# template\nMONGO_URI=\nJWT_SECRET=\n"
	return os.WriteFile(filepath.Join(dest, ".env.example"), []byte(env), 0644)
}

func (c *fakeCloner) ResetOrigin(_, _ string) error { return nil }

type stubRunner struct {
	installErr error
	launchErr  error
	installed  int
	launched   int
}

func (r *stubRunner) Install(_ context.Context, _ string) error {
	r.installed++
	return r.installErr
}

func (r *stubRunner) Launch(_ context.Context, _ string) error {
	r.launched++
	return r.launchErr
}

type fixture struct {
	resolver  *stubResolver
	collector *stubCollector
	cloner    *fakeCloner
	runner    *stubRunner
	events    []scaffold.Event
	opts      scaffold.Options
}

func newFixture(t *testing.T, answers schema.Answers) *fixture {
	t.Helper()
	cfg := testConfig()

	f := &fixture{
		resolver: &stubResolver{source: access.TemplateSource{
			Identifier: cfg.Templates.GrowthRepo,
			Label:      access.Growth,
		}},
		collector: &stubCollector{answers: answers},
		cloner:    &fakeCloner{},
		runner:    &stubRunner{},
	}

	f.opts = scaffold.Options{
		Config:      cfg,
		ProjectName: filepath.Join(t.TempDir(), "my-app"),
		Resolver:    f.resolver,
		Collector:   f.collector,
		Cloner:      f.cloner,
		Runner:      f.runner,
		Pruner:      modules.NewPruner(modules.NewRegistry(cfg)),
		Materializer: envfile.NewMaterializer(
			envfile.PolicyFromConfig(cfg.Env), secrets.NewGenerator(), cfg.Env.OpenAccessFlag),
		Events: func(e scaffold.Event) { f.events = append(f.events, e) },
	}
	return f
}

func (f *fixture) run(t *testing.T) (*scaffold.Result, error) {
	t.Helper()
	return scaffold.New(f.opts).Run(context.Background())
}

func (f *fixture) stages(kind scaffold.EventKind) []scaffold.Stage {
	var out []scaffold.Stage
	for _, e := range f.events {
		if e.Kind == kind {
			out = append(out, e.Stage)
		}
	}
	return out
}

func TestRunHappyPath(t *testing.T) {
	f := newFixture(t, schema.Answers{
		schema.KeyMongoURI:   "mongodb://localhost/my-app",
		schema.KeyAccessMode: schema.AccessStandard,
		schema.KeyFeatures:   []string{"Email"},
		schema.KeyLaunch:     schema.LaunchNo,
	})

	result, err := f.run(t)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NoError(t, result.LaunchErr)

	// Env file materialized from the cloned template
	env, readErr := os.ReadFile(filepath.Join(result.ProjectDir, ".env"))
	require.NoError(t, readErr)
	assert.Contains(t, string(env), "MONGO_URI=mongodb://localhost/my-app\n")
	assert.Regexp(t, `JWT_SECRET=[0-9a-f]{64}\n`, string(env))

	// Unselected storage module pruned, selected email kept
	_, statErr := os.Stat(filepath.Join(result.ProjectDir, "server/modules/storage"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(result.ProjectDir, "server/modules/email"))
	assert.NoError(t, statErr)

	// Manifest records the run
	m, mErr := manifest.Read(result.ProjectDir)
	require.NoError(t, mErr)
	assert.Equal(t, "growth", m.Template)
	assert.Equal(t, []string{"Email"}, m.Features)

	assert.Equal(t, 1, f.runner.installed)
	assert.Equal(t, 0, f.runner.launched, "launch is opt-in")

	// Started/Succeeded pairs in pipeline order, no failures
	want := []scaffold.Stage{
		scaffold.StageResolvingAccess,
		scaffold.StageValidatingPath,
		scaffold.StageCollectingAnswers,
		scaffold.StageCloning,
		scaffold.StageInstallingDeps,
		scaffold.StagePruning,
		scaffold.StageMaterializingEnv,
	}
	assert.Equal(t, want, f.stages(scaffold.StageStarted))
	assert.Equal(t, want, f.stages(scaffold.StageSucceeded))
	assert.Empty(t, f.stages(scaffold.StageFailed))
}

func TestRunNoAccessFailsBeforePrompts(t *testing.T) {
	f := newFixture(t, schema.Answers{})
	f.resolver.err = errors.New(errors.ErrNoAccess, "no template repository is reachable")

	_, err := f.run(t)

	assert.True(t, errors.IsErrorCode(err, errors.ErrNoAccess))
	assert.Equal(t, 0, f.collector.calls, "prompts must not run without access")
	assert.Equal(t, []scaffold.Stage{scaffold.StageResolvingAccess}, f.stages(scaffold.StageFailed))
	assert.NotContains(t, f.stages(scaffold.StageStarted), scaffold.StageValidatingPath,
		"path validation stage must not be reached")
}

func TestRunDestinationExistsFailsBeforePrompts(t *testing.T) {
	f := newFixture(t, schema.Answers{})
	require.NoError(t, os.MkdirAll(f.opts.ProjectName, 0755))

	_, err := f.run(t)

	assert.True(t, errors.IsErrorCode(err, errors.ErrDestinationExists))
	assert.Equal(t, 0, f.collector.calls, "prompts must not run for a doomed destination")
	assert.Equal(t, 0, f.runner.installed)
}

func TestRunUncheckablePathFailsBeforePrompts(t *testing.T) {
	f := newFixture(t, schema.Answers{})

	// A path through a regular file cannot be stat'ed: the failure must
	// surface during validation, not later as a failed clone.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	f.opts.ProjectName = filepath.Join(blocker, "my-app")

	_, err := f.run(t)

	require.Error(t, err)
	assert.False(t, errors.IsErrorCode(err, errors.ErrDestinationExists), "got %v", err)
	assert.Equal(t, 0, f.collector.calls, "prompts must not run for an uncheckable destination")
	assert.Equal(t, []scaffold.Stage{scaffold.StageValidatingPath}, f.stages(scaffold.StageFailed))
}

func TestRunCloneFailureTerminates(t *testing.T) {
	f := newFixture(t, schema.Answers{
		schema.KeyFeatures: []string{schema.AllFeatures},
	})
	f.cloner.err = errors.New(errors.ErrCloneFailed, "transport error")

	_, err := f.run(t)

	assert.True(t, errors.IsErrorCode(err, errors.ErrCloneFailed))
	assert.Equal(t, 0, f.runner.installed, "install must not run after a failed clone")
	assert.Equal(t, []scaffold.Stage{scaffold.StageCloning}, f.stages(scaffold.StageFailed))
}

func TestRunMissingTemplateEnvIsTemplateCorrupt(t *testing.T) {
	f := newFixture(t, schema.Answers{
		schema.KeyFeatures: []string{schema.AllFeatures},
	})
	f.cloner.noTemplate = true

	_, err := f.run(t)

	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateCorrupt), "got %v", err)

	// The partial project directory is left in place for inspection
	_, statErr := os.Stat(f.opts.ProjectName)
	assert.NoError(t, statErr)
}

func TestRunLaunchFailureDoesNotFailTheRun(t *testing.T) {
	f := newFixture(t, schema.Answers{
		schema.KeyFeatures: []string{schema.AllFeatures},
		schema.KeyLaunch:   schema.LaunchYes,
	})
	f.runner.launchErr = errors.New(errors.ErrLaunchFailed, "dev server crashed")

	result, err := f.run(t)
	require.NoError(t, err, "scaffolding itself succeeded")

	assert.Equal(t, 1, f.runner.launched)
	assert.True(t, errors.IsErrorCode(result.LaunchErr, errors.ErrLaunchFailed))
	assert.Contains(t, f.stages(scaffold.StageFailed), scaffold.StageLaunching)

	// The scaffolded project stays on disk
	_, statErr := os.Stat(filepath.Join(result.ProjectDir, ".env"))
	assert.NoError(t, statErr)
}

func TestRunAllFeaturesKeepsEverything(t *testing.T) {
	f := newFixture(t, schema.Answers{
		schema.KeyFeatures: []string{schema.AllFeatures},
	})

	result, err := f.run(t)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(result.ProjectDir, "server/modules/storage/index.js"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(result.ProjectDir, "server/modules/email"))
	assert.NoError(t, statErr)
}
