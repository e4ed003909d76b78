// Package prompt collects answers interactively through pterm. It is
// the presentation-side implementation of the schema's Collector
// contract; non-TTY runs fall back to the schema defaults so scripted
// invocations stay deterministic.
package prompt

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/sprout-cli/sprout/pkg/errors"
	"github.com/sprout-cli/sprout/pkg/logging"
	"github.com/sprout-cli/sprout/pkg/schema"
)

// Collector asks the schema's questions on the terminal
type Collector struct {
	logger zerolog.Logger
}

// NewCollector creates the interactive collector
func NewCollector() *Collector {
	return &Collector{logger: logging.GetLogger("prompt")}
}

// Collect walks the questions in order, skipping the ones whose
// visibility predicate rejects the answers gathered so far.
func (c *Collector) Collect(s *schema.Schema) (schema.Answers, error) {
	if !interactive() {
		c.logger.Info().Msg("stdin is not a terminal, using default answers")
		return s.Defaults(), nil
	}

	answers := make(schema.Answers, len(s.Questions))
	for i := range s.Questions {
		q := &s.Questions[i]
		if !q.Visible(answers) {
			c.logger.Debug().Str("key", q.Key).Msg("Question not visible, skipping")
			continue
		}

		value, err := c.ask(q)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal,
				"answer collection aborted at %q", q.Key)
		}
		answers[q.Key] = value
	}

	return answers, nil
}

// ask renders one question with the pterm printer matching its kind
func (c *Collector) ask(q *schema.Question) (interface{}, error) {
	switch q.Kind {
	case schema.SingleChoice:
		def, _ := q.Default.(string)
		return pterm.DefaultInteractiveSelect.
			WithOptions(q.Options).
			WithDefaultOption(def).
			Show(q.Prompt)

	case schema.MultiChoice:
		defs, _ := q.Default.([]string)
		return pterm.DefaultInteractiveMultiselect.
			WithOptions(q.Options).
			WithDefaultOptions(defs).
			Show(q.Prompt)

	default:
		def, _ := q.Default.(string)
		return pterm.DefaultInteractiveTextInput.
			WithDefaultValue(def).
			Show(q.Prompt)
	}
}

func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
