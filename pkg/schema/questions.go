package schema

import (
	"fmt"

	"github.com/sprout-cli/sprout/pkg/config"
)

// Question keys consumed by the pipeline
const (
	KeyMongoURI         = "mongoUri"
	KeyAccessMode       = "accessMode"
	KeyFeatures         = "features"
	KeyStorageProvider  = "storageProvider"
	KeyStorageBucket    = "storageBucket"
	KeyStorageRegion    = "storageRegion"
	KeyStorageAccessKey = "storageAccessKey"
	KeyStorageSecretKey = "storageSecretKey"
	KeyLaunch           = "launch"
)

// Access mode answers
const (
	AccessStandard = "standard"
	AccessOpen     = "open"
)

// Storage provider answers
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// AllFeatures is the multiselect sentinel that disables pruning
const AllFeatures = "All features"

// StorageFeature is the registry display name whose selection makes the
// storage questions relevant
const StorageFeature = "File storage"

// Yes/no answers for the launch question
const (
	LaunchYes = "yes"
	LaunchNo  = "no"
)

// ForProject builds the question sequence for one scaffolding run.
// The feature list comes from the configured module registry; the
// project name only shapes the suggested database name.
func ForProject(cfg *config.Config, projectName string) *Schema {
	featureOptions := append([]string{AllFeatures}, cfg.ModuleNames()...)

	wantsStorage := func(a Answers) bool {
		return a.Contains(KeyFeatures, AllFeatures) || a.Contains(KeyFeatures, StorageFeature)
	}
	wantsS3 := func(a Answers) bool {
		return a.String(KeyStorageProvider) == StorageS3
	}

	return &Schema{Questions: []Question{
		{
			Key:     KeyMongoURI,
			Kind:    FreeText,
			Prompt:  "MongoDB connection string",
			Default: fmt.Sprintf("mongodb://localhost:27017/%s", projectName),
		},
		{
			Key:     KeyAccessMode,
			Kind:    SingleChoice,
			Prompt:  "Access mode",
			Options: []string{AccessStandard, AccessOpen},
			Default: AccessStandard,
		},
		{
			Key:     KeyFeatures,
			Kind:    MultiChoice,
			Prompt:  "Features to include",
			Options: featureOptions,
			Default: []string{AllFeatures},
		},
		{
			Key:       KeyStorageProvider,
			Kind:      SingleChoice,
			Prompt:    "File storage provider",
			Options:   []string{StorageLocal, StorageS3},
			Default:   StorageLocal,
			DependsOn: []string{KeyFeatures},
			VisibleIf: wantsStorage,
		},
		{
			Key:       KeyStorageBucket,
			Kind:      FreeText,
			Prompt:    "S3 bucket name",
			DependsOn: []string{KeyStorageProvider},
			VisibleIf: wantsS3,
		},
		{
			Key:       KeyStorageRegion,
			Kind:      FreeText,
			Prompt:    "S3 region",
			Default:   "us-east-1",
			DependsOn: []string{KeyStorageProvider},
			VisibleIf: wantsS3,
		},
		{
			Key:       KeyStorageAccessKey,
			Kind:      FreeText,
			Prompt:    "S3 access key ID",
			DependsOn: []string{KeyStorageProvider},
			VisibleIf: wantsS3,
		},
		{
			Key:       KeyStorageSecretKey,
			Kind:      FreeText,
			Prompt:    "S3 secret access key",
			DependsOn: []string{KeyStorageProvider},
			VisibleIf: wantsS3,
		},
		{
			Key:     KeyLaunch,
			Kind:    SingleChoice,
			Prompt:  "Run the app after setup",
			Options: []string{LaunchNo, LaunchYes},
			Default: LaunchNo,
		},
	}}
}

// SelectedFeatures resolves the features answer to the set of display
// names to keep. The sentinel, an empty answer or a selection covering
// every registered module all mean "keep everything" and return
// (nil, true).
func SelectedFeatures(cfg *config.Config, answers Answers) (map[string]bool, bool) {
	selected := answers.Strings(KeyFeatures)
	if len(selected) == 0 {
		return nil, true
	}

	keep := make(map[string]bool, len(selected))
	for _, name := range selected {
		if name == AllFeatures {
			return nil, true
		}
		keep[name] = true
	}

	for _, name := range cfg.ModuleNames() {
		if !keep[name] {
			return keep, false
		}
	}
	return nil, true
}
