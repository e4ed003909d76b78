// Package style renders pipeline progress on the terminal. It consumes
// the orchestrator's stage events; the pipeline itself never prints.
package style

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/sprout-cli/sprout/pkg/errors"
	"github.com/sprout-cli/sprout/pkg/scaffold"
	"github.com/sprout-cli/sprout/pkg/ui"
)

// StageRenderer turns scaffold events into terminal output
type StageRenderer struct {
	format  ui.Format
	spinner *pterm.SpinnerPrinter
}

// NewStageRenderer creates a renderer for the resolved output format
func NewStageRenderer(format ui.Format) *StageRenderer {
	return &StageRenderer{format: format}
}

// Sink returns the renderer as an orchestrator event sink
func (r *StageRenderer) Sink() scaffold.EventSink {
	return r.Handle
}

// Handle renders one pipeline event
func (r *StageRenderer) Handle(e scaffold.Event) {
	title, ok := stageTitles[e.Stage]
	if !ok {
		title = string(e.Stage)
	}

	if r.format == ui.FormatText || interactiveStages[e.Stage] {
		r.renderPlain(e, title)
		return
	}

	switch e.Kind {
	case scaffold.StageStarted:
		r.spinner, _ = pterm.DefaultSpinner.Start(title)
	case scaffold.StageSucceeded:
		if r.spinner != nil {
			r.spinner.Success(title)
			r.spinner = nil
		}
	case scaffold.StageFailed:
		if r.spinner != nil {
			r.spinner.Fail(title)
			r.spinner = nil
		}
	}
}

// renderPlain prints without spinners, for dumb terminals and for
// stages that own the terminal themselves
func (r *StageRenderer) renderPlain(e scaffold.Event, title string) {
	switch e.Kind {
	case scaffold.StageStarted:
		if interactiveStages[e.Stage] && r.format != ui.FormatText {
			pterm.Info.Println(title)
			return
		}
		fmt.Fprintf(os.Stderr, "-> %s\n", title)
	case scaffold.StageFailed:
		fmt.Fprintf(os.Stderr, "-> %s: failed\n", title)
	}
}

// RenderError formats a terminal-friendly error line with its code
func RenderError(err error, format ui.Format) string {
	if err == nil {
		return ""
	}

	if format == ui.FormatText {
		return fmt.Sprintf("error: %v", err)
	}

	code := errors.GetErrorCode(err)
	return fmt.Sprintf("%s %s %s",
		pterm.Error.Prefix.Text,
		pterm.Error.MessageStyle.Sprint(fmt.Sprintf("[%s]", code)),
		err.Error())
}
