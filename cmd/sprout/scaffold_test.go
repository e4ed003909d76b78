// cmd/sprout/scaffold_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test positional argument resolution

package main

import (
	"testing"

	"github.com/sprout-cli/sprout/pkg/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	const defaultProject = "my-sprout-app"

	tests := []struct {
		name         string
		args         []string
		wantOverride *access.Label
		wantProject  string
	}{
		{
			name:        "no_args_uses_defaults",
			args:        nil,
			wantProject: defaultProject,
		},
		{
			name:         "repo_type_only",
			args:         []string{"starter"},
			wantOverride: labelPtr(access.Starter),
			wantProject:  defaultProject,
		},
		{
			name:         "repo_type_and_project",
			args:         []string{"growth", "acme-shop"},
			wantOverride: labelPtr(access.Growth),
			wantProject:  "acme-shop",
		},
		{
			name:        "unrecognized_first_arg_is_project_name",
			args:        []string{"acme-shop"},
			wantProject: "acme-shop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override, project := parseArgs(tt.args, defaultProject)

			assert.Equal(t, tt.wantProject, project)
			if tt.wantOverride == nil {
				assert.Nil(t, override)
			} else {
				require.NotNil(t, override)
				assert.Equal(t, *tt.wantOverride, *override)
			}
		})
	}
}

func labelPtr(l access.Label) *access.Label { return &l }
