package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/sprout-cli/sprout/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/sprout-cli/sprout/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/sprout-cli/sprout/internal/version.Date={{.Date}}
)
