// Package access decides which template repository a run will clone.
// Both candidate repositories are probed independently; the growth
// template wins when reachable, the public starter is the fallback.
package access

import (
	"context"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/sprout-cli/sprout/pkg/errors"
	"github.com/sprout-cli/sprout/pkg/logging"
)

// Label identifies which template variant a source refers to
type Label string

const (
	// Growth is the full-featured template
	Growth Label = "growth"
	// Starter is the public template
	Starter Label = "starter"
)

// ParseLabel recognizes a label from a CLI argument. The boolean is
// false for anything that is not a known label.
func ParseLabel(s string) (Label, bool) {
	switch s {
	case string(Growth):
		return Growth, true
	case string(Starter):
		return Starter, true
	}
	return "", false
}

// TemplateSource is the selected template repository. Selection is
// immutable once made.
type TemplateSource struct {
	Identifier string
	Label      Label
}

// Result records per-repository reachability, derived once per run
type Result struct {
	GrowthReachable  bool
	StarterReachable bool
}

// Prober reports whether a repository identifier is reachable with the
// current credentials
type Prober interface {
	Reachable(ctx context.Context, url string) bool
}

// GitProber probes repositories by listing remote references over an
// in-memory remote, without cloning anything
type GitProber struct{}

// NewProber returns the default go-git backed prober
func NewProber() *GitProber {
	return &GitProber{}
}

// Reachable lists the remote's advertised refs; any response counts as
// reachable, any transport or auth error as not.
func (p *GitProber) Reachable(ctx context.Context, url string) bool {
	logger := logging.GetLogger("access")

	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	_, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		logger.Debug().Err(err).Str("url", url).Msg("Repository not reachable")
		return false
	}

	logger.Debug().Str("url", url).Msg("Repository reachable")
	return true
}

// Resolver selects the effective template source for a run
type Resolver struct {
	prober     Prober
	growthURL  string
	starterURL string
}

// NewResolver creates a resolver over the two candidate repositories
func NewResolver(prober Prober, growthURL, starterURL string) *Resolver {
	return &Resolver{
		prober:     prober,
		growthURL:  growthURL,
		starterURL: starterURL,
	}
}

// Resolve probes both repositories and applies the selection rule.
// An explicit override picks that repository unconditionally; clone
// failure is then deferred to the clone stage. Without an override the
// growth template is preferred, then the starter, and a run with no
// reachable repository fails with NO_ACCESS before any prompt is shown.
func (r *Resolver) Resolve(ctx context.Context, override *Label) (TemplateSource, Result, error) {
	result := Result{
		GrowthReachable:  r.prober.Reachable(ctx, r.growthURL),
		StarterReachable: r.prober.Reachable(ctx, r.starterURL),
	}

	if override != nil {
		return r.source(*override), result, nil
	}

	switch {
	case result.GrowthReachable:
		return r.source(Growth), result, nil
	case result.StarterReachable:
		return r.source(Starter), result, nil
	}

	return TemplateSource{}, result, errors.New(errors.ErrNoAccess,
		"no template repository is reachable with the current credentials").
		WithDetail("growth", r.growthURL).
		WithDetail("starter", r.starterURL)
}

func (r *Resolver) source(label Label) TemplateSource {
	if label == Starter {
		return TemplateSource{Identifier: r.starterURL, Label: Starter}
	}
	return TemplateSource{Identifier: r.growthURL, Label: Growth}
}
