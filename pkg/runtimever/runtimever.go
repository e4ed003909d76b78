// Package runtimever gates the run on the installed runtime version.
package runtimever

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/blang/semver/v4"

	"github.com/sprout-cli/sprout/pkg/errors"
	"github.com/sprout-cli/sprout/pkg/logging"
)

// probeTimeout bounds the `node --version` invocation
const probeTimeout = 10 * time.Second

// Check verifies that the given version string satisfies the minimum.
// Version strings may carry a leading "v" and trailing whitespace, as
// `node --version` prints them.
func Check(version, minimum string) error {
	v, err := semver.ParseTolerant(strings.TrimSpace(version))
	if err != nil {
		return errors.Wrapf(err, errors.ErrUnsupportedRuntime,
			"cannot parse runtime version %q", strings.TrimSpace(version))
	}

	min, err := semver.ParseTolerant(minimum)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput,
			"cannot parse minimum version %q", minimum)
	}

	if v.LT(min) {
		return errors.Newf(errors.ErrUnsupportedRuntime,
			"runtime version %s is below the required minimum %s", v, min).
			WithDetail("version", v.String()).
			WithDetail("minimum", min.String())
	}

	return nil
}

// Probe runs `<command> --version` and checks the reported version
// against the minimum.
func Probe(ctx context.Context, command, minimum string) error {
	logger := logging.GetLogger("runtimever")

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, command, "--version").Output()
	if err != nil {
		return errors.Wrapf(err, errors.ErrUnsupportedRuntime,
			"%s is not installed or not on PATH", command)
	}

	version := strings.TrimSpace(string(out))
	logger.Debug().
		Str("command", command).
		Str("version", version).
		Str("minimum", minimum).
		Msg("Probed runtime version")

	return Check(version, minimum)
}
