// pkg/style/renderer_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error line rendering

package style_test

import (
	"testing"

	"github.com/sprout-cli/sprout/pkg/errors"
	"github.com/sprout-cli/sprout/pkg/style"
	"github.com/sprout-cli/sprout/pkg/ui"
	"github.com/stretchr/testify/assert"
)

func TestRenderErrorPlain(t *testing.T) {
	err := errors.New(errors.ErrNoAccess, "no template repository is reachable")

	out := style.RenderError(err, ui.FormatText)
	assert.Equal(t, "error: [NO_ACCESS] no template repository is reachable", out)
}

func TestRenderErrorCarriesCode(t *testing.T) {
	err := errors.New(errors.ErrDestinationExists, "directory exists")

	out := style.RenderError(err, ui.FormatTerminal)
	assert.Contains(t, out, "DESTINATION_EXISTS")
	assert.Contains(t, out, "directory exists")
}

func TestRenderErrorNil(t *testing.T) {
	assert.Empty(t, style.RenderError(nil, ui.FormatText))
}
