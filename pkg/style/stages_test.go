// pkg/style/stages_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Embedded stages.yaml
// PURPOSE: Test stage presentation table loading

package style

import (
	"testing"

	"github.com/sprout-cli/sprout/pkg/scaffold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStagesCoverPipeline(t *testing.T) {
	stages := []scaffold.Stage{
		scaffold.StageResolvingAccess,
		scaffold.StageValidatingPath,
		scaffold.StageCollectingAnswers,
		scaffold.StageCloning,
		scaffold.StageInstallingDeps,
		scaffold.StagePruning,
		scaffold.StageMaterializingEnv,
		scaffold.StageLaunching,
	}

	for _, stage := range stages {
		assert.NotEmpty(t, stageTitles[stage], "stage %s has no title", stage)
	}

	// Prompting stages must not run under a spinner
	assert.True(t, interactiveStages[scaffold.StageCollectingAnswers])
	assert.True(t, interactiveStages[scaffold.StageLaunching])
	assert.False(t, interactiveStages[scaffold.StageCloning])
}

func TestLoadStagesFromData(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, LoadStagesFromData(embeddedStages))
	})

	data := []byte("cloning:\n  title: Downloading\nlaunching:\n  interactive: true\n")
	require.NoError(t, LoadStagesFromData(data))

	assert.Equal(t, "Downloading", stageTitles[scaffold.StageCloning])
	assert.True(t, interactiveStages[scaffold.StageLaunching])
	assert.Empty(t, stageTitles[scaffold.StageResolvingAccess])

	assert.Error(t, LoadStagesFromData([]byte("\t: not yaml")))
}
