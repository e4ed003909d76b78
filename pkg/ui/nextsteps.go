package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// nextStepsTemplate is rendered after a successful scaffold
const nextStepsTemplate = `# %s is ready

Your project was scaffolded from the **%s** template.

Next steps:

1. ` + "`cd %s`" + `
2. Review the generated ` + "`.env`" + ` (secrets were generated for you)
3. ` + "`npm run dev`" + `
`

// NextSteps renders the post-success summary. Rich terminals get
// glamour-rendered markdown; everything else gets the raw markdown,
// which reads fine as plain text.
func NextSteps(projectName, template string, format Format) string {
	content := fmt.Sprintf(nextStepsTemplate, projectName, template, projectName)

	if format == FormatText {
		return content
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
