// Package gitops fetches the template repository onto disk.
package gitops

import (
	"context"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"

	"github.com/sprout-cli/sprout/pkg/errors"
	"github.com/sprout-cli/sprout/pkg/logging"
)

// Cloner fetches a template repository to a local path
type Cloner interface {
	Clone(ctx context.Context, url, branch, dest string) error
	ResetOrigin(dest, placeholderURL string) error
}

// GitCloner clones with go-git, depth 1
type GitCloner struct {
	logger zerolog.Logger
}

// NewCloner returns the default go-git backed cloner
func NewCloner() *GitCloner {
	return &GitCloner{logger: logging.GetLogger("gitops")}
}

// Clone performs a shallow single-branch clone of url into dest
func (c *GitCloner) Clone(ctx context.Context, url, branch, dest string) error {
	done := logging.LogOperationStart(c.logger, "clone")
	defer done()

	opts := &git.CloneOptions{
		URL:   url,
		Depth: 1,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, dest, false, opts); err != nil {
		return errors.Wrapf(err, errors.ErrCloneFailed,
			"failed to clone template from %s", url).
			WithDetail("url", url).
			WithDetail("dest", dest)
	}

	c.logger.Info().Str("url", url).Str("dest", dest).Msg("Template cloned")
	return nil
}

// ResetOrigin detaches the clone from the template repository: the
// template's origin remote is removed and a placeholder origin is
// registered for the user's own repository.
func (c *GitCloner) ResetOrigin(dest, placeholderURL string) error {
	repo, err := git.PlainOpen(dest)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCloneFailed, "failed to open clone at %s", dest)
	}

	if err := repo.DeleteRemote("origin"); err != nil && err != git.ErrRemoteNotFound {
		return errors.Wrap(err, errors.ErrCloneFailed, "failed to remove template origin")
	}

	if placeholderURL != "" {
		_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{placeholderURL},
		})
		if err != nil {
			return errors.Wrap(err, errors.ErrCloneFailed, "failed to register placeholder origin")
		}
	}

	c.logger.Debug().Str("origin", placeholderURL).Msg("Origin remote reset")
	return nil
}
