package style

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/sprout-cli/sprout/pkg/scaffold"
)

// StageDef is one stage's presentation entry in stages.yaml
type StageDef struct {
	Title       string `yaml:"title"`
	Interactive bool   `yaml:"interactive,omitempty"`
}

// stageTitles maps pipeline stages to user-facing progress text
var stageTitles map[scaffold.Stage]string

// interactiveStages render prompts themselves; a spinner would fight
// with them for the terminal
var interactiveStages map[scaffold.Stage]bool

//go:embed stages.yaml
var embeddedStages []byte

func init() {
	if err := LoadStagesFromData(embeddedStages); err != nil {
		initDefaultStages()
	}
}

// LoadStagesFromData replaces the stage presentation table from YAML
func LoadStagesFromData(data []byte) error {
	var defs map[string]StageDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return err
	}

	stageTitles = make(map[scaffold.Stage]string)
	interactiveStages = make(map[scaffold.Stage]bool)
	for name, def := range defs {
		stage := scaffold.Stage(name)
		if def.Title != "" {
			stageTitles[stage] = def.Title
		}
		if def.Interactive {
			interactiveStages[stage] = true
		}
	}
	return nil
}

// initDefaultStages keeps the renderer usable if the embedded table is
// unreadable: stage names become titles, prompting stages stay plain.
func initDefaultStages() {
	stageTitles = make(map[scaffold.Stage]string)
	interactiveStages = map[scaffold.Stage]bool{
		scaffold.StageCollectingAnswers: true,
		scaffold.StageLaunching:         true,
	}
}
