// Package installer runs the package-install and app-launch commands in
// the scaffolded project.
package installer

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/sprout-cli/sprout/pkg/config"
	"github.com/sprout-cli/sprout/pkg/errors"
	"github.com/sprout-cli/sprout/pkg/logging"
)

// defaultInstallTimeout applies when the config leaves the timeout unset
const defaultInstallTimeout = 10 * time.Minute

// Runner executes the external commands of a scaffolding run
type Runner interface {
	Install(ctx context.Context, projectDir string) error
	Launch(ctx context.Context, projectDir string) error
}

// CommandRunner executes configured commands through os/exec
type CommandRunner struct {
	logger  zerolog.Logger
	install config.Command
	launch  config.Command
}

// NewRunner creates a runner from the configured commands
func NewRunner(install, launch config.Command) *CommandRunner {
	return &CommandRunner{
		logger:  logging.GetLogger("installer"),
		install: install,
		launch:  launch,
	}
}

// Install runs the package-install command inside projectDir with a
// hard timeout. Output is captured and attached to the error on
// failure; the caller only needs the success/failure outcome.
func (r *CommandRunner) Install(ctx context.Context, projectDir string) error {
	timeout := defaultInstallTimeout
	if r.install.TimeoutMinutes > 0 {
		timeout = time.Duration(r.install.TimeoutMinutes) * time.Minute
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r.logger.Info().
		Str("command", r.install.Command).
		Strs("args", r.install.Args).
		Str("workingDir", projectDir).
		Msg("Installing dependencies")

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, r.install.Command, r.install.Args...)
	cmd.Dir = projectDir
	cmd.Stdout = &output
	cmd.Stderr = &output

	start := time.Now()
	if err := cmd.Run(); err != nil {
		r.logger.Error().
			Err(err).
			Str("output", tail(output.String(), 2000)).
			Msg("Install command failed")
		return errors.Wrapf(err, errors.ErrInstallFailed,
			"%s failed in %s", r.install.Command, projectDir).
			WithDetail("output", tail(output.String(), 2000))
	}

	r.logger.Info().Dur("duration", time.Since(start)).Msg("Dependencies installed")
	return nil
}

// Launch starts the app command with the user's terminal attached.
// It blocks until the process exits; failure is reported as
// LAUNCH_FAILED and never affects the completed scaffold.
func (r *CommandRunner) Launch(ctx context.Context, projectDir string) error {
	r.logger.Info().
		Str("command", r.launch.Command).
		Strs("args", r.launch.Args).
		Str("workingDir", projectDir).
		Msg("Launching app")

	cmd := exec.CommandContext(ctx, r.launch.Command, r.launch.Args...)
	cmd.Dir = projectDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrLaunchFailed,
			"%s exited with an error", r.launch.Command)
	}
	return nil
}

// tail returns at most the last n bytes of s
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
